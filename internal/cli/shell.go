package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/Veraticus/hireflow/internal/command"
	"github.com/Veraticus/hireflow/internal/common"
	"github.com/Veraticus/hireflow/internal/engine"
	"github.com/Veraticus/hireflow/internal/parser"
	"github.com/Veraticus/hireflow/internal/store"
)

// Session is the engine surface the shell drives.
type Session interface {
	Execute(ctx context.Context, line string) (command.Result, error)
	State() engine.GateState
	Store() store.Store
}

// Shell is an interactive read-eval-print loop over a Session.
type Shell struct {
	session Session
	in      *LineReader
	out     io.Writer
	prompt  string
}

// NewShell creates a shell reading commands from in and writing to out.
func NewShell(session Session, in io.Reader, out io.Writer) *Shell {
	return &Shell{
		session: session,
		in:      NewLineReader(in),
		out:     out,
		prompt:  "hire",
	}
}

// Run processes lines until exit, end of input or cancellation of ctx.
// Reaching the end of input is not an error.
func (s *Shell) Run(ctx context.Context) error {
	s.println(FormatTitle("hireflow"))
	s.println(SubtleStyle.Render("Type 'help' to see the available commands."))
	s.println(RenderApplicants(s.session.Store().View()))

	for {
		s.print(FormatPrompt(s.currentPrompt()))

		line, err := s.in.ReadLine(ctx)
		switch {
		case errors.Is(err, io.EOF):
			s.println("")
			return nil
		case errors.Is(err, ErrInputCancelled):
			return ctx.Err()
		case err != nil:
			return fmt.Errorf("failed to read command: %w", err)
		}

		if line == "" && s.session.State() == engine.Idle {
			continue
		}

		if res, _ := s.Eval(ctx, line); res.Exit {
			return nil
		}
	}
}

// Eval runs one line and prints its outcome. The result and error are
// returned after printing.
func (s *Shell) Eval(ctx context.Context, line string) (command.Result, error) {
	res, err := s.session.Execute(ctx, line)

	if res.Feedback != "" {
		switch {
		case res.NeedsConfirmation:
			s.println(FormatWarning(res.Feedback))
		case err != nil:
			s.println(res.Feedback)
		default:
			s.println(FormatSuccess(res.Feedback))
		}
	}
	if err != nil {
		slog.Debug("command failed", "error", err)
		s.println(FormatError(common.UserMessage(err)))
	}
	if res.ShowHelp {
		s.println(RenderBox("Help", parser.HelpText()))
	}
	if res.ShowView {
		s.println(RenderApplicants(s.session.Store().View()))
	}
	return res, err
}

func (s *Shell) currentPrompt() string {
	if s.session.State() == engine.AwaitingConfirmation {
		return "confirm"
	}
	return s.prompt
}

func (s *Shell) print(text string) {
	_, _ = fmt.Fprint(s.out, text)
}

func (s *Shell) println(text string) {
	_, _ = fmt.Fprintln(s.out, text)
}
