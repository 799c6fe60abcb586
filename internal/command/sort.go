package command

import (
	"context"
	"fmt"

	"github.com/Veraticus/hireflow/internal/ordering"
)

// SortCommand reorders the whole book by Key.
type SortCommand struct {
	Key       ordering.Key
	Ascending bool
}

// Kind implements Command.
func (c SortCommand) Kind() Kind { return KindSort }

// Execute implements Command. An unknown key leaves the order untouched and
// is reported in the feedback rather than as an error.
func (c SortCommand) Execute(_ context.Context, env *Env) (Result, error) {
	if !ordering.Sort(env.Store, c.Key, c.Ascending) {
		return Result{Feedback: fmt.Sprintf(MessageUnknownSort, string(c.Key))}, nil
	}
	direction := "ascending"
	if !c.Ascending {
		direction = "descending"
	}
	return Result{Feedback: fmt.Sprintf(MessageSorted, c.Key, direction), ShowView: true}, nil
}
