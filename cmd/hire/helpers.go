package main

import (
	"context"
	"fmt"
	"time"

	"github.com/Veraticus/hireflow/internal/config"
	"github.com/Veraticus/hireflow/internal/engine"
	"github.com/Veraticus/hireflow/internal/export"
	"github.com/Veraticus/hireflow/internal/storage"
	"github.com/Veraticus/hireflow/internal/store"
	"github.com/spf13/viper"
)

// initStorage opens the configured database and brings its schema up to date.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	settings, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, err
	}

	db, err := storage.NewSQLiteStorage(settings.DatabasePath)
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return db, nil
}

// openSession loads the saved book into a new engine that persists to db.
func openSession(ctx context.Context, db *storage.SQLiteStorage) (*engine.Engine, error) {
	settings, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, err
	}

	cfg := engine.DefaultConfig()
	cfg.Exporter = export.NewFileExporter(settings.ExportDir)

	e := engine.NewWithConfig(store.NewBook(), db, cfg)
	if err := e.Load(ctx, db); err != nil {
		return nil, err
	}
	return e, nil
}

func formatFileSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}

func formatRelativeTime(t, now time.Time) string {
	d := now.Sub(t)
	plural := func(n int, unit string) string {
		if n == 1 {
			return "1 " + unit + " ago"
		}
		return fmt.Sprintf("%d %ss ago", n, unit)
	}

	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return plural(int(d.Minutes()), "minute")
	case d < 24*time.Hour:
		return plural(int(d.Hours()), "hour")
	case d < 48*time.Hour:
		return "yesterday"
	case d < 7*24*time.Hour:
		return plural(int(d.Hours()/24), "day")
	default:
		return t.Format("2006-01-02 15:04")
	}
}
