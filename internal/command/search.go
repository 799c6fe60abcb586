package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/Veraticus/hireflow/internal/common"
	"github.com/Veraticus/hireflow/internal/predicate"
)

// SearchCommand narrows the view to applicants matching any of Predicates.
type SearchCommand struct {
	Predicates []predicate.Predicate
}

// Kind implements Command.
func (c SearchCommand) Kind() Kind { return KindSearch }

// Execute implements Command.
func (c SearchCommand) Execute(_ context.Context, env *Env) (Result, error) {
	if len(c.Predicates) == 0 {
		return Result{}, common.NewUserError("At least one search criterion must be provided.", ErrInvalidCommand)
	}

	matches, err := Resolve(env.Store, PredicateTarget(c.Predicates...), MatchAny)
	if errors.Is(err, ErrNoMatch) {
		return Result{}, common.NewUserError(MessageNoResult, err)
	}
	if err != nil {
		return Result{}, err
	}
	return Result{Feedback: fmt.Sprintf(MessageListed, len(matches)), ShowView: true}, nil
}

// ListCommand shows every applicant.
type ListCommand struct{}

// Kind implements Command.
func (ListCommand) Kind() Kind { return KindList }

// Execute implements Command.
func (ListCommand) Execute(_ context.Context, env *Env) (Result, error) {
	env.Store.ShowAll()
	return Result{Feedback: MessageListedAll, ShowView: true}, nil
}
