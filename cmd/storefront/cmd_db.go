package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/storefront/config"
	"github.com/shashiranjanraj/storefront/database/seeders"
	"github.com/shashiranjanraj/storefront/pkg/database"
	"github.com/shashiranjanraj/storefront/pkg/logger"
	"github.com/shashiranjanraj/storefront/pkg/migration"
)

// bootDB loads config and opens the database the command will own.
func bootDB() (*database.Database, error) {
	if err := config.Load(); err != nil {
		return nil, err
	}
	db, err := database.Open(config.DatabaseDriver(), config.DatabaseDSN())
	if err != nil {
		return nil, err
	}
	logger.Debug("database connected", "driver", config.DatabaseDriver())
	return db, nil
}

// withDB runs fn against a freshly opened database and closes it afterwards.
func withDB(fn func(db *database.Database) error) error {
	db, err := bootDB()
	if err != nil {
		return err
	}
	defer db.Close()
	return fn(db)
}

// storefront migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run all pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(db *database.Database) error {
			fmt.Fprintln(cmd.OutOrStdout(), "Running migrations…")
			return migration.New(db.Conn(cmd.Context()), cmd.OutOrStdout()).Run()
		})
	},
}

// storefront migrate:rollback
var migrateRollbackCmd = &cobra.Command{
	Use:   "migrate:rollback",
	Short: "Rollback the last batch of migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(db *database.Database) error {
			fmt.Fprintln(cmd.OutOrStdout(), "Rolling back last batch…")
			return migration.New(db.Conn(cmd.Context()), cmd.OutOrStdout()).Rollback()
		})
	},
}

// storefront migrate:status
var migrateStatusCmd = &cobra.Command{
	Use:   "migrate:status",
	Short: "Show the status of each migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(db *database.Database) error {
			return migration.New(db.Conn(cmd.Context()), cmd.OutOrStdout()).Status()
		})
	},
}

// storefront seed
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed demo users and products",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(db *database.Database) error {
			fmt.Fprintln(cmd.OutOrStdout(), "Running seeders…")
			return seeders.RunAll(db.Conn(cmd.Context()), cmd.OutOrStdout())
		})
	},
}
