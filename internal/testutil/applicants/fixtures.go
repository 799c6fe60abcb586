package applicants

import "github.com/Veraticus/hireflow/internal/model"

// Fixture is a predefined set of applicants.
type Fixture interface {
	Name() string
	Specs() []Spec
}

type fixture struct {
	name  string
	specs []Spec
}

func (f *fixture) Name() string  { return f.name }
func (f *fixture) Specs() []Spec { return f.specs }

// Predefined fixtures.
var (
	// FixtureTeam is a small book spread over several jobs and statuses.
	FixtureTeam Fixture = &fixture{
		name: "Team",
		specs: []Spec{
			{Name: "Alex Yeoh", Job: "Software Engineer", Status: model.StatusPreliminary, Tags: []string{"friends"}},
			{Name: "Bernice Yu", Job: "Designer", Status: model.StatusInterviewed, Rating: 4},
			{Name: "Charlotte Oliveiro", Job: "Software Engineer", Status: model.StatusInterviewed, Rating: 3},
			{Name: "David Li", Job: "Product Manager", Status: model.StatusOffered},
			{Name: "Irfan Ibrahim", Job: "Software Engineer", Status: model.StatusRejected, Rating: 1},
		},
	}

	// FixtureCaseVariants holds names that differ only in letter case
	// patterns, for ordering tests.
	FixtureCaseVariants Fixture = &fixture{
		name: "CaseVariants",
		specs: []Spec{
			{Name: "bbB", Job: "Tester"},
			{Name: "aaa", Job: "Tester"},
			{Name: "Bbc", Job: "Tester"},
			{Name: "Aa", Job: "Tester"},
		},
	}
)
