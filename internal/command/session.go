package command

import (
	"context"
	"fmt"
)

// ClearCommand removes every applicant.
type ClearCommand struct{}

// Kind implements Command.
func (ClearCommand) Kind() Kind { return KindClear }

// Execute implements Command.
func (ClearCommand) Execute(_ context.Context, env *Env) (Result, error) {
	if err := env.Store.Reset(nil); err != nil {
		return Result{}, fmt.Errorf("failed to clear applicant book: %w", err)
	}
	return Result{Feedback: MessageCleared}, nil
}

// HelpCommand asks the front end to show usage.
type HelpCommand struct{}

// Kind implements Command.
func (HelpCommand) Kind() Kind { return KindHelp }

// Execute implements Command.
func (HelpCommand) Execute(context.Context, *Env) (Result, error) {
	return Result{Feedback: MessageHelp, ShowHelp: true}, nil
}

// ExitCommand ends the session.
type ExitCommand struct{}

// Kind implements Command.
func (ExitCommand) Kind() Kind { return KindExit }

// Execute implements Command.
func (ExitCommand) Execute(context.Context, *Env) (Result, error) {
	return Result{Feedback: MessageExit, Exit: true}, nil
}
