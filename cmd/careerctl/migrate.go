package main

import (
	"context"
	"fmt"

	"careerpath/internal/database/migration"
	dbpostgres "careerpath/internal/database/postgres"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	applied, err := migration.Runner{}.Run(ctx, db)
	if err != nil {
		return err
	}
	if len(applied) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "schema is up to date")
		return nil
	}
	for _, m := range applied {
		fmt.Fprintf(cmd.OutOrStdout(), "applied V%d %s\n", m.Version, m.Name)
	}
	return nil
}
