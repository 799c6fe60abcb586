package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/Veraticus/hireflow/internal/cli"
	"github.com/Veraticus/hireflow/internal/config"
	"github.com/Veraticus/hireflow/internal/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Bring the database schema up to date",
		Long: `Initialize or update the applicant database schema.

Every other command migrates automatically; use --status to see what would run.`,
		Args: cobra.NoArgs,
		RunE: runMigrate,
	}

	cmd.Flags().Bool("status", false, "show the schema version and pending migrations without applying them")

	return cmd
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	status, _ := cmd.Flags().GetBool("status")
	out := cmd.OutOrStdout()

	settings, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}

	db, err := storage.NewSQLiteStorage(settings.DatabasePath)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if status {
		return writeMigrationStatus(ctx, out, db, settings.DatabasePath)
	}

	version, err := db.SchemaVersion(ctx)
	if err != nil {
		return err
	}
	pending, err := db.PendingMigrations(ctx)
	if err != nil {
		return err
	}

	if len(pending) == 0 {
		_, _ = fmt.Fprintln(out, cli.FormatInfo(fmt.Sprintf("Schema is already at version %d", version)))
		return nil
	}

	slog.Info("running database migrations", "database", settings.DatabasePath, "from", version, "pending", len(pending))
	if err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	_, _ = fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Applied %d migration(s), schema is at version %d", len(pending), storage.ExpectedSchemaVersion)))
	return nil
}

// writeMigrationStatus reports the schema version and pending migrations.
// The applicant count is shown once the applicants table exists.
func writeMigrationStatus(ctx context.Context, out io.Writer, db *storage.SQLiteStorage, path string) error {
	version, err := db.SchemaVersion(ctx)
	if err != nil {
		return err
	}
	pending, err := db.PendingMigrations(ctx)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(out, cli.FormatTitle("Database Migration Status"))
	_, _ = fmt.Fprintf(out, "Database: %s\n", path)
	_, _ = fmt.Fprintf(out, "Current version: %d\n", version)
	_, _ = fmt.Fprintf(out, "Latest version: %d\n", storage.ExpectedSchemaVersion)
	if version > 0 {
		count, err := db.CountApplicants(ctx)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(out, "Applicants: %d\n", count)
	}
	for _, m := range pending {
		_, _ = fmt.Fprintf(out, "  pending %d: %s\n", m.Version, m.Description)
	}
	return nil
}
