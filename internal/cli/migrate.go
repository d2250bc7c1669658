package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/club-fixtures/internal/storage/postgres"
)

var flagMigrateSteps int

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the postgres schema",
	}

	up := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: run(func(cmd *cobra.Command, a *app, _ []string) error {
			return withMigrator(a, func(mg *postgres.Migrator) error {
				if err := mg.Up(); err != nil {
					return err
				}
				return printVersion(cmd, mg)
			})
		}),
	}

	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		Args:  cobra.NoArgs,
		RunE: run(func(cmd *cobra.Command, a *app, _ []string) error {
			return withMigrator(a, func(mg *postgres.Migrator) error {
				if err := mg.Down(flagMigrateSteps); err != nil {
					return err
				}
				return printVersion(cmd, mg)
			})
		}),
	}
	down.Flags().IntVar(&flagMigrateSteps, "steps", 1, "Number of migrations to roll back")

	version := &cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		Args:  cobra.NoArgs,
		RunE: run(func(cmd *cobra.Command, a *app, _ []string) error {
			return withMigrator(a, func(mg *postgres.Migrator) error {
				return printVersion(cmd, mg)
			})
		}),
	}

	cmd.AddCommand(up, down, version)
	return cmd
}

func withMigrator(a *app, fn func(*postgres.Migrator) error) error {
	if a.cfg.Storage.DatabaseURL == "" {
		return fmt.Errorf("storage.database_url (or DATABASE_URL) is not set")
	}
	mg, err := postgres.NewMigrator(a.cfg.Storage.DatabaseURL)
	if err != nil {
		return err
	}
	defer mg.Close()
	return fn(mg)
}

func printVersion(cmd *cobra.Command, mg *postgres.Migrator) error {
	v, dirty, ok, err := mg.Version()
	if err != nil {
		return err
	}
	switch {
	case !ok:
		fmt.Fprintln(cmd.OutOrStdout(), "Schema version: none")
	case dirty:
		fmt.Fprintf(cmd.OutOrStdout(), "Schema version: %d (dirty)\n", v)
	default:
		fmt.Fprintf(cmd.OutOrStdout(), "Schema version: %d\n", v)
	}
	return nil
}
