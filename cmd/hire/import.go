package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/Veraticus/hireflow/internal/cli"
	"github.com/Veraticus/hireflow/internal/common"
	"github.com/Veraticus/hireflow/internal/config"
	"github.com/Veraticus/hireflow/internal/export"
	"github.com/Veraticus/hireflow/internal/storage"
	"github.com/Veraticus/hireflow/internal/store"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func importCmd() *cobra.Command {
	var dryRun, noSnapshot bool

	cmd := &cobra.Command{
		Use:   "import FILE.csv",
		Short: "Add applicants from a CSV file",
		Long: `Read applicants from a CSV file with a header row and add them to the book.

Required columns are Name, Phone, Email, Job Position, Status and Address.
Rating, Tags (separated by ';'), Created At (RFC 3339) and Avatar are
optional. Rows that fail validation or name someone already in the book are
skipped and reported. A snapshot is taken first unless --no-snapshot is set.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			f, err := os.Open(args[0]) // #nosec G304
			if err != nil {
				return fmt.Errorf("failed to open import file: %w", err)
			}
			rows, err := export.ReadCSV(f)
			_ = f.Close()
			if err != nil {
				return err
			}

			db, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			settings, err := config.Load(viper.GetViper())
			if err != nil {
				return err
			}
			if settings.AutoSnapshot && !noSnapshot && !dryRun {
				snapshotBeforeImport(ctx, db, out)
			}

			existing, err := db.LoadApplicants(ctx)
			if err != nil {
				return err
			}
			book := store.NewBook()
			if err := book.Reset(existing); err != nil {
				return fmt.Errorf("failed to fill applicant book: %w", err)
			}

			report, err := importRows(ctx, book, rows, time.Now(), newProgressBar(len(rows), out))
			if err != nil {
				return err
			}

			if !dryRun && report.Added > 0 {
				if err := db.SaveApplicants(ctx, book.All()); err != nil {
					return fmt.Errorf("failed to save imported applicants: %w", err)
				}
			}

			printImportReport(out, report, dryRun)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "validate the file without saving")
	cmd.Flags().BoolVar(&noSnapshot, "no-snapshot", false, "skip the automatic snapshot")

	return cmd
}

func snapshotBeforeImport(ctx context.Context, db *storage.SQLiteStorage, out io.Writer) {
	manager, err := db.NewSnapshotManager()
	if errors.Is(err, storage.ErrInMemory) {
		return
	}
	if err == nil {
		var info *storage.SnapshotInfo
		if info, err = manager.AutoSnapshot(ctx, "import"); err == nil {
			_, _ = fmt.Fprintln(out, cli.FormatInfo("Snapshot "+info.ID+" taken before import"))
			return
		}
	}
	slog.Warn("continuing import without snapshot", "error", err)
}

type rowIssue struct {
	Reason string
	Line   int
}

type importReport struct {
	Skipped []rowIssue
	Added   int
}

// importRows inserts each valid row into book, recording why others were
// skipped. Rows are independent: one bad row does not stop the import.
func importRows(ctx context.Context, book store.Store, rows []export.Row, now time.Time, bar *progressbar.ProgressBar) (importReport, error) {
	var report importReport

	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		a, err := row.Applicant(now)
		switch {
		case err != nil:
			report.Skipped = append(report.Skipped, rowIssue{Line: row.Line, Reason: common.UserMessage(err)})
		case book.Contains(a):
			report.Skipped = append(report.Skipped, rowIssue{Line: row.Line, Reason: a.Name + " is already in the applicant book"})
		default:
			if err := book.Insert(a); err != nil {
				report.Skipped = append(report.Skipped, rowIssue{Line: row.Line, Reason: err.Error()})
			} else {
				report.Added++
			}
		}

		if bar != nil {
			if err := bar.Add(1); err != nil {
				slog.Warn("failed to update progress bar", "error", err)
			}
		}
	}
	return report, nil
}

func newProgressBar(total int, w io.Writer) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Importing applicants...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			_, _ = fmt.Fprintln(w)
		}),
	)
}

func printImportReport(w io.Writer, report importReport, dryRun bool) {
	verb := "Imported"
	if dryRun {
		verb = "Would import"
	}
	_, _ = fmt.Fprintln(w, cli.FormatSuccess(fmt.Sprintf("%s %d applicant(s)", verb, report.Added)))

	if len(report.Skipped) == 0 {
		return
	}
	_, _ = fmt.Fprintln(w, cli.FormatWarning(fmt.Sprintf("Skipped %d row(s):", len(report.Skipped))))
	for _, issue := range report.Skipped {
		_, _ = fmt.Fprintf(w, "  line %d: %s\n", issue.Line, issue.Reason)
	}
}
