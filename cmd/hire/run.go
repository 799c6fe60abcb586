package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Veraticus/hireflow/internal/cli"
	"github.com/Veraticus/hireflow/internal/engine"
	"github.com/spf13/cobra"
)

func runCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "run -- COMMAND...",
		Short: "Run a single command against the applicant book",
		Long: `Run one line of the command language and exit.

When the command needs confirmation the answer is read from standard input
unless --yes is given.`,
		Example: `  hire run -- add n/Alex Yeoh p/98765432 e/alex@example.com j/Engineer s/Preliminary a/1 Main St
  hire run --yes -- status j/Engineer to/Interviewed
  hire run -- export engineers.csv`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := initStorage(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			e, err := openSession(cmd.Context(), db)
			if err != nil {
				return err
			}
			return runLine(cmd.Context(), e, strings.Join(args, " "), yes, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "answer yes to the confirmation prompt")

	return cmd
}

// errCommandFailed marks a failure whose message the shell already printed.
var errCommandFailed = errors.New("command failed")

// runLine evaluates line and, when it is held for confirmation, the answer.
func runLine(ctx context.Context, session cli.Session, line string, yes bool, in io.Reader, out io.Writer) error {
	shell := cli.NewShell(session, in, out)

	if _, err := shell.Eval(ctx, line); err != nil {
		return fmt.Errorf("%w: %w", errCommandFailed, err)
	}
	if session.State() != engine.AwaitingConfirmation {
		return nil
	}

	answer := "yes"
	if !yes {
		_, _ = fmt.Fprint(out, cli.FormatPrompt("confirm"))
		read, err := cli.NewLineReader(in).ReadLine(ctx)
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		answer = read
	}
	if _, err := shell.Eval(ctx, answer); err != nil {
		return fmt.Errorf("%w: %w", errCommandFailed, err)
	}
	return nil
}
