package command

import (
	"context"
	"fmt"

	"github.com/Veraticus/hireflow/internal/common"
	"github.com/Veraticus/hireflow/internal/model"
)

// EditCommand replaces fields of the applicant at Index.
type EditCommand struct {
	Overrides model.Overrides
	Index     int
}

// Kind implements Command.
func (c EditCommand) Kind() Kind { return KindEdit }

// Execute implements Command.
func (c EditCommand) Execute(_ context.Context, env *Env) (Result, error) {
	if c.Overrides.IsEmpty() {
		return Result{}, common.NewUserError(MessageNothingToEdit, ErrInvalidCommand)
	}

	targets, err := Resolve(env.Store, IndexTarget(c.Index), MatchAll)
	if err != nil {
		return Result{}, err
	}
	original := targets[0]

	edited, err := original.With(c.Overrides)
	if err != nil {
		return Result{}, common.NewUserError(common.UserMessage(err), err)
	}

	if err := env.Store.Replace(original, edited); err != nil {
		return Result{}, mutationError(err, edited)
	}
	env.Store.ShowAll()

	return Result{Feedback: fmt.Sprintf(MessageEdited, edited.Describe())}, nil
}
