package main

import (
	"context"
	"errors"
	"os"

	"github.com/Veraticus/hireflow/internal/cli"
	"github.com/Veraticus/hireflow/internal/engine"
	"github.com/Veraticus/hireflow/internal/tui"
	"github.com/Veraticus/hireflow/internal/tui/themes"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func shellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start the interactive command shell",
		Long: `Read commands line by line and run them against the applicant book.

Destructive commands (delete, status) ask for confirmation; answer "yes" to
proceed or pass -f to skip the question. Type "help" for the command list.`,
		Args: cobra.NoArgs,
		RunE: runShell,
	}
}

func runShell(cmd *cobra.Command, _ []string) error {
	db, err := initStorage(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	e, err := openSession(cmd.Context(), db)
	if err != nil {
		return err
	}

	handler := cli.NewInterruptHandler(cmd.ErrOrStderr())
	ctx := handler.HandleInterrupts(cmd.Context(), func() bool {
		return e.State() == engine.AwaitingConfirmation
	})

	err = cli.NewShell(e, os.Stdin, cmd.OutOrStdout()).Run(ctx)
	if errors.Is(err, context.Canceled) && handler.WasInterrupted() {
		return nil
	}
	return err
}

func tuiCmd() *cobra.Command {
	var theme string

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Start the full-screen interface",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := initStorage(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			e, err := openSession(cmd.Context(), db)
			if err != nil {
				return err
			}

			if theme == "" {
				theme = viper.GetString("tui.theme")
			}
			return tui.Run(cmd.Context(), e,
				tui.WithTheme(themes.GetTheme(theme)),
				tui.WithMouse(viper.GetBool("tui.mouse")),
			)
		},
	}

	cmd.Flags().StringVar(&theme, "theme", "", "color theme (default, catppuccin-mocha)")
	viper.SetDefault("tui.mouse", true)

	return cmd
}
