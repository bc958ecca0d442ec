// Copyright 2025 Dask
// Licensed under the EUPL-1.2

package email

import (
	"bytes"
	"fmt"
	"math/rand/v2"
	"text/template"

	"github.com/BurntSushi/toml"
)

// Template is one verification email variant. The body must contain a
// {{.Code}} placeholder.
type Template struct {
	Subject string `toml:"subject"`
	Body    string `toml:"body"`
}

// defaultTemplate is used when no template file is configured.
var defaultTemplate = Template{
	Subject: "Email Verification Code",
	Body: `We sent an email with a verification code to {{.Email}}.
Enter it below to confirm your email.

Verification code: {{.Code}}

A verification code is required.`,
}

type templatesFile struct {
	Templates []Template `toml:"templates"`
}

// loadTemplates reads the verification templates from a TOML file and
// verifies each one renders.
func loadTemplates(path string) ([]Template, error) {
	var file templatesFile
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return nil, fmt.Errorf("failed to read templates file: %w", err)
	}
	if len(file.Templates) == 0 {
		return nil, fmt.Errorf("templates file %s contains no templates", path)
	}

	for i, tpl := range file.Templates {
		if _, _, err := tpl.render("probe@example.com", "000000"); err != nil {
			return nil, fmt.Errorf("template %d is invalid: %w", i, err)
		}
	}

	return file.Templates, nil
}

// render substitutes the code (and recipient) into the template.
func (t Template) render(email, code string) (subject, body string, err error) {
	tpl, err := template.New("body").Parse(t.Body)
	if err != nil {
		return "", "", err
	}

	var buf bytes.Buffer
	data := struct {
		Email string
		Code  string
	}{Email: email, Code: code}
	if err := tpl.Execute(&buf, data); err != nil {
		return "", "", err
	}

	return t.Subject, buf.String(), nil
}

// pickTemplate chooses one of the configured variants at random.
func pickTemplate(templates []Template) Template {
	if len(templates) == 0 {
		return defaultTemplate
	}
	return templates[rand.IntN(len(templates))]
}
