package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/Veraticus/hireflow/internal/common"
)

// AvatarCommand points the applicant at Index to a new avatar image.
type AvatarCommand struct {
	Path  string
	Index int
}

// Kind implements Command.
func (c AvatarCommand) Kind() Kind { return KindAvatar }

// Execute implements Command.
func (c AvatarCommand) Execute(_ context.Context, env *Env) (Result, error) {
	if strings.TrimSpace(c.Path) == "" {
		return Result{}, common.NewUserError("An avatar path must be provided.", ErrInvalidCommand)
	}

	targets, err := Resolve(env.Store, IndexTarget(c.Index), MatchAll)
	if err != nil {
		return Result{}, err
	}

	updated := targets[0].WithAvatar(c.Path)
	if err := env.Store.Replace(targets[0], updated); err != nil {
		return Result{}, mutationError(err, updated)
	}
	return Result{Feedback: fmt.Sprintf(MessageAvatarUpdated, updated.Name)}, nil
}
