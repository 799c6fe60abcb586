package command

import (
	"context"

	"github.com/Veraticus/hireflow/internal/model"
	"github.com/Veraticus/hireflow/internal/predicate"
	"github.com/Veraticus/hireflow/internal/report"
)

// SummaryCommand reports applicant counts per job position and status,
// optionally restricted to those matching every predicate.
type SummaryCommand struct {
	Predicates []predicate.Predicate
}

// Kind implements Command.
func (c SummaryCommand) Kind() Kind { return KindSummary }

// Execute implements Command. An empty subset is summarized, not rejected.
func (c SummaryCommand) Execute(_ context.Context, env *Env) (Result, error) {
	var subset []model.Applicant
	if len(c.Predicates) == 0 {
		subset = env.Store.All()
	} else {
		env.Store.SetView(MatchAll.Combine(c.Predicates))
		subset = env.Store.View()
	}
	return Result{Feedback: report.Summarize(subset).Render()}, nil
}
