// Copyright 2025 Dask
// Licensed under the EUPL-1.2

package main

import (
	"context"
	"log"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/daskng/blog/internal/config"
	"github.com/daskng/blog/internal/database"
	"github.com/daskng/blog/internal/server"
)

func main() {
	cmd := &cli.Command{
		Name:   "blog",
		Usage:  "Start the blog server",
		Flags:  config.Flags(),
		Action: server.Run,
		Commands: []*cli.Command{
			{
				Name:  "migrate",
				Usage: "Manage database migrations",
				Flags: config.Flags(),
				Commands: []*cli.Command{
					{
						Name:   "down",
						Usage:  "Roll back the last migration",
						Flags:  config.Flags(),
						Action: migrateAction(database.MigrateDown),
					},
					{
						Name:   "reset",
						Usage:  "Roll back all migrations",
						Flags:  config.Flags(),
						Action: migrateAction(database.MigrateReset),
					},
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func migrateAction(fn database.MigrateFunc) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		cfg := config.NewFromCLI(cmd)
		db, err := database.Open(cfg.Database.DSN)
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()
		return fn(db.DB)
	}
}
