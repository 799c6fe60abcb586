package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/Veraticus/hireflow/internal/cli"
	"github.com/Veraticus/hireflow/internal/storage"
	"github.com/spf13/cobra"
)

func checkpointCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checkpoint",
		Short: "Manage applicant database snapshots",
		Long: `Create, list, restore, and delete snapshots of the applicant database.

Take a snapshot before a large import or bulk change and restore it if the
result is not what you wanted.`,
		Example: `  hire checkpoint create --tag before-spring-hiring
  hire checkpoint list
  hire checkpoint restore before-spring-hiring
  hire checkpoint delete before-spring-hiring`,
	}

	cmd.AddCommand(createCheckpointCmd())
	cmd.AddCommand(listCheckpointsCmd())
	cmd.AddCommand(restoreCheckpointCmd())
	cmd.AddCommand(deleteCheckpointCmd())

	return cmd
}

// withSnapshots opens storage and hands its snapshot manager to fn.
func withSnapshots(ctx context.Context, fn func(*storage.SnapshotManager) error) error {
	db, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	manager, err := db.NewSnapshotManager()
	if err != nil {
		return fmt.Errorf("failed to create snapshot manager: %w", err)
	}
	return fn(manager)
}

func createCheckpointCmd() *cobra.Command {
	var tag, description string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Snapshot the current database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSnapshots(cmd.Context(), func(m *storage.SnapshotManager) error {
				info, err := m.Create(cmd.Context(), tag, description)
				if err != nil {
					return fmt.Errorf("failed to create checkpoint: %w", err)
				}

				out := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(out, "%s Created checkpoint %s (%s, %d applicants)\n",
					cli.SuccessStyle.Render(cli.SuccessIcon),
					cli.InfoStyle.Render(info.ID),
					formatFileSize(info.FileSize),
					info.Applicants)
				if info.Description != "" {
					_, _ = fmt.Fprintf(out, "  Description: %s\n", info.Description)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&tag, "tag", "t", "", "checkpoint name (generated from the time if empty)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "what the checkpoint is for")

	return cmd
}

func listCheckpointsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List snapshots, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSnapshots(cmd.Context(), func(m *storage.SnapshotManager) error {
				infos, err := m.List(cmd.Context())
				if err != nil {
					return fmt.Errorf("failed to list checkpoints: %w", err)
				}
				writeCheckpointTable(cmd.OutOrStdout(), infos, time.Now())
				return nil
			})
		},
	}
}

func writeCheckpointTable(out io.Writer, infos []storage.SnapshotInfo, now time.Time) {
	if len(infos) == 0 {
		_, _ = fmt.Fprintln(out, cli.SubtleStyle.Render("No checkpoints found."))
		return
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	header := []string{"NAME", "CREATED", "SIZE", "APPLICANTS", "TYPE"}
	for i, h := range header {
		header[i] = cli.TableHeaderStyle.Render(h)
	}
	_, _ = fmt.Fprintln(w, strings.Join(header, "\t"))

	for _, info := range infos {
		kind := "manual"
		if info.IsAuto {
			kind = "auto"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
			cli.InfoStyle.Render(info.ID),
			formatRelativeTime(info.CreatedAt, now),
			formatFileSize(info.FileSize),
			info.Applicants,
			cli.SubtleStyle.Render(kind),
		)
	}
	_ = w.Flush()
}

func restoreCheckpointCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "restore <checkpoint>",
		Short: "Replace the database with a snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id := args[0]
			out := cmd.OutOrStdout()

			db, err := initStorage(ctx)
			if err != nil {
				return err
			}
			manager, err := db.NewSnapshotManager()
			if err != nil {
				_ = db.Close()
				return fmt.Errorf("failed to create snapshot manager: %w", err)
			}

			info, err := findSnapshot(ctx, manager, id)
			if err != nil {
				_ = db.Close()
				return err
			}

			if !force {
				ok, err := confirmRestore(ctx, cmd.InOrStdin(), out, info)
				if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, cli.ErrInputCancelled) {
					_ = db.Close()
					return err
				}
				if !ok {
					_ = db.Close()
					_, _ = fmt.Fprintln(out, cli.SubtleStyle.Render("Restore cancelled."))
					return nil
				}
			}

			// Restore closes the connection itself.
			if err := manager.Restore(ctx, id); err != nil {
				return fmt.Errorf("failed to restore checkpoint: %w", err)
			}
			_, _ = fmt.Fprintf(out, "%s Restored checkpoint %s (%d applicants)\n",
				cli.SuccessStyle.Render(cli.SuccessIcon),
				cli.InfoStyle.Render(id),
				info.Applicants)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "restore without asking")

	return cmd
}

func findSnapshot(ctx context.Context, m *storage.SnapshotManager, id string) (storage.SnapshotInfo, error) {
	infos, err := m.List(ctx)
	if err != nil {
		return storage.SnapshotInfo{}, fmt.Errorf("failed to list checkpoints: %w", err)
	}
	for _, info := range infos {
		if info.ID == id {
			return info, nil
		}
	}
	return storage.SnapshotInfo{}, fmt.Errorf("checkpoint %q: %w", id, storage.ErrSnapshotNotFound)
}

func confirmRestore(ctx context.Context, in io.Reader, out io.Writer, info storage.SnapshotInfo) (bool, error) {
	_, _ = fmt.Fprintf(out, "%s This will replace your current database with checkpoint %s.\n",
		cli.WarningStyle.Render(cli.WarningIcon),
		cli.InfoStyle.Render(info.ID))
	_, _ = fmt.Fprintf(out, "  Created: %s\n", info.CreatedAt.Format("2006-01-02 15:04:05"))
	if info.Description != "" {
		_, _ = fmt.Fprintf(out, "  Description: %s\n", info.Description)
	}
	_, _ = fmt.Fprint(out, "\nContinue? (y/N) ")

	answer, err := cli.NewLineReader(in).ReadLine(ctx)
	if err != nil {
		return false, err
	}
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(answer)), "y"), nil
}

func deleteCheckpointCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <checkpoint>",
		Short: "Remove a snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSnapshots(cmd.Context(), func(m *storage.SnapshotManager) error {
				if err := m.Delete(cmd.Context(), args[0]); err != nil {
					return fmt.Errorf("failed to delete checkpoint: %w", err)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s Deleted checkpoint %s\n",
					cli.SuccessStyle.Render(cli.SuccessIcon),
					cli.InfoStyle.Render(args[0]))
				return nil
			})
		},
	}
}
