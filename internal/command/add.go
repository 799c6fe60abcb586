package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/Veraticus/hireflow/internal/common"
	"github.com/Veraticus/hireflow/internal/model"
	"github.com/Veraticus/hireflow/internal/store"
)

// AddCommand adds a new applicant to the book.
type AddCommand struct {
	Fields model.ApplicantFields
	Rating model.Rating
}

// Kind implements Command.
func (c AddCommand) Kind() Kind { return KindAdd }

// Execute implements Command.
func (c AddCommand) Execute(_ context.Context, env *Env) (Result, error) {
	applicant, err := model.NewApplicant(c.Fields, c.Rating, env.now())
	if err != nil {
		return Result{}, common.NewUserError(common.UserMessage(err), err)
	}

	if env.Store.Contains(applicant) {
		return Result{}, duplicateError(applicant)
	}
	if err := env.Store.Insert(applicant); err != nil {
		return Result{}, mutationError(err, applicant)
	}
	env.Store.ShowAll()

	return Result{Feedback: fmt.Sprintf(MessageAdded, applicant.Describe())}, nil
}

func duplicateError(a model.Applicant) error {
	return common.NewUserError(MessageDuplicateApplicant, fmt.Errorf("%w: %s", ErrDuplicateIdentity, a.Name))
}

// mutationError maps a store failure onto the command error space.
func mutationError(err error, a model.Applicant) error {
	switch {
	case errors.Is(err, store.ErrDuplicate):
		return duplicateError(a)
	case errors.Is(err, store.ErrNotFound):
		return common.NewUserError(MessageNoMatch, fmt.Errorf("%w: %w", ErrNoMatch, err))
	default:
		return fmt.Errorf("failed to update applicant %s: %w", a.Name, err)
	}
}
