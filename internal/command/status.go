package command

import (
	"context"
	"fmt"

	"github.com/Veraticus/hireflow/internal/model"
)

// StatusCommand moves every targeted applicant to a new status. It asks for
// confirmation unless forced.
type StatusCommand struct {
	Target Target
	Status model.Status
	Force  bool
}

// Kind implements Command.
func (c StatusCommand) Kind() Kind { return KindStatus }

// Forced implements Gated.
func (c StatusCommand) Forced() bool { return c.Force }

// WithForced implements Gated.
func (c StatusCommand) WithForced() Gated {
	c.Force = true
	return c
}

// Confirmation implements Gated.
func (c StatusCommand) Confirmation(_ context.Context, env *Env) (string, error) {
	targets, err := Resolve(env.Store, c.Target, MatchAll)
	if err != nil {
		return "", err
	}
	switch {
	case c.Target.ByIndex():
		return fmt.Sprintf(PromptStatusOne, c.Status, targets[0].Describe()), nil
	case len(targets) == 1:
		return fmt.Sprintf(PromptStatusOnlyMatch, c.Status, targets[0].Describe()), nil
	default:
		return fmt.Sprintf(PromptStatusMany, len(targets), c.Status, describeAll(targets, "\n")), nil
	}
}

// Execute implements Command.
func (c StatusCommand) Execute(_ context.Context, env *Env) (Result, error) {
	targets, err := Resolve(env.Store, c.Target, MatchAll)
	if err != nil {
		return Result{}, err
	}

	updated := make([]model.Applicant, 0, len(targets))
	for _, a := range targets {
		next := a.WithStatus(c.Status)
		if err := env.Store.Replace(a, next); err != nil {
			return Result{}, mutationError(err, a)
		}
		updated = append(updated, next)
	}

	return Result{
		Feedback: fmt.Sprintf(MessageStatusUpdated, len(updated), c.Status, describeAll(updated, "\n")),
	}, nil
}
