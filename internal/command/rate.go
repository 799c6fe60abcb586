package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/Veraticus/hireflow/internal/common"
	"github.com/Veraticus/hireflow/internal/model"
)

// RateCommand sets the interview rating of a single applicant. A predicate
// target must match exactly one applicant.
type RateCommand struct {
	Target Target
	Rating model.Rating
}

// Kind implements Command.
func (c RateCommand) Kind() Kind { return KindRate }

// Execute implements Command.
func (c RateCommand) Execute(_ context.Context, env *Env) (Result, error) {
	if err := c.Rating.Validate(); err != nil {
		return Result{}, common.NewUserError(common.UserMessage(err), err)
	}

	targets, err := Resolve(env.Store, c.Target, MatchAll)
	if errors.Is(err, ErrNoMatch) {
		return Result{}, common.NewUserError(MessageNoResult, err)
	}
	if err != nil {
		return Result{}, err
	}
	if len(targets) > 1 {
		return Result{}, common.NewUserError(fmt.Sprintf(MessageTooManyMatches, len(targets)),
			fmt.Errorf("%w: %d matched %s", ErrTooManyMatches, len(targets), c.Target))
	}

	rated := targets[0].WithRating(c.Rating)
	if err := env.Store.Replace(targets[0], rated); err != nil {
		return Result{}, mutationError(err, rated)
	}

	return Result{Feedback: fmt.Sprintf(MessageRated, rated.Describe())}, nil
}
