package command

import (
	"context"
	"fmt"

	"github.com/Veraticus/hireflow/internal/model"
)

// DeleteCommand removes the targeted applicants. It asks for confirmation
// unless forced.
type DeleteCommand struct {
	Target Target
	Force  bool
}

// Kind implements Command.
func (c DeleteCommand) Kind() Kind { return KindDelete }

// Forced implements Gated.
func (c DeleteCommand) Forced() bool { return c.Force }

// WithForced implements Gated.
func (c DeleteCommand) WithForced() Gated {
	c.Force = true
	return c
}

// Confirmation implements Gated.
func (c DeleteCommand) Confirmation(_ context.Context, env *Env) (string, error) {
	targets, err := Resolve(env.Store, c.Target, MatchAll)
	if err != nil {
		return "", err
	}
	switch {
	case c.Target.ByIndex():
		return fmt.Sprintf(PromptDeleteOne, targets[0].Describe()), nil
	case len(targets) == 1:
		return fmt.Sprintf(PromptDeleteOnlyMatch, targets[0].Describe()), nil
	default:
		return fmt.Sprintf(PromptDeleteMany, len(targets), describeAll(targets, "\n")), nil
	}
}

// Execute implements Command.
func (c DeleteCommand) Execute(_ context.Context, env *Env) (Result, error) {
	targets, err := Resolve(env.Store, c.Target, MatchAll)
	if err != nil {
		return Result{}, err
	}

	deleted := make([]model.Applicant, 0, len(targets))
	for _, a := range targets {
		if err := env.Store.Remove(a); err != nil {
			return Result{}, mutationError(err, a)
		}
		deleted = append(deleted, a)
	}

	if c.Target.ByIndex() {
		return Result{Feedback: fmt.Sprintf(MessageDeletedOne, deleted[0].Describe())}, nil
	}
	return Result{Feedback: fmt.Sprintf(MessageDeletedMany, describeAll(deleted, "\n\n"))}, nil
}
