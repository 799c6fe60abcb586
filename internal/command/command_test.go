package command

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/hireflow/internal/common"
	"github.com/Veraticus/hireflow/internal/model"
	"github.com/Veraticus/hireflow/internal/ordering"
	"github.com/Veraticus/hireflow/internal/predicate"
	"github.com/Veraticus/hireflow/internal/store"
	"github.com/Veraticus/hireflow/internal/testutil/applicants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newEnv(t *testing.T) *Env {
	t.Helper()
	return &Env{
		Store: applicants.NewBuilder(t).WithFixture(applicants.FixtureTeam).Book(),
		Now:   func() time.Time { return testNow },
	}
}

func job(keyword string) predicate.Predicate {
	return predicate.FieldEquals{Field: predicate.FieldJob, Keyword: keyword}
}

func status(keyword string) predicate.Predicate {
	return predicate.FieldEquals{Field: predicate.FieldStatus, Keyword: keyword}
}

func name(keyword string) predicate.Predicate {
	return predicate.FieldEquals{Field: predicate.FieldName, Keyword: keyword}
}

func namesOf(as []model.Applicant) []string {
	out := make([]string, len(as))
	for i, a := range as {
		out[i] = a.Name
	}
	return out
}

func find(t *testing.T, s store.Store, n string) model.Applicant {
	t.Helper()
	for _, a := range s.All() {
		if a.Name == n {
			return a
		}
	}
	t.Fatalf("applicant %q not in book", n)
	return model.Applicant{}
}

func strPtr(s string) *string { return &s }

func TestKind_Mutates(t *testing.T) {
	mutating := []Kind{KindAdd, KindDelete, KindEdit, KindRate, KindStatus, KindClear, KindSort, KindAvatar}
	readOnly := []Kind{KindSearch, KindSummary, KindExport, KindExit, KindHelp, KindList}

	for _, k := range mutating {
		assert.True(t, k.Mutates(), k)
	}
	for _, k := range readOnly {
		assert.False(t, k.Mutates(), k)
	}
}

func TestResolve_Index(t *testing.T) {
	env := newEnv(t)

	got, err := Resolve(env.Store, IndexTarget(2), MatchAll)
	require.NoError(t, err)
	assert.Equal(t, []string{"Bernice Yu"}, namesOf(got))

	for _, index := range []int{0, -1, 6} {
		_, err := Resolve(env.Store, IndexTarget(index), MatchAll)
		assert.ErrorIs(t, err, ErrInvalidTargeting, "index %d", index)
		assert.Equal(t, MessageInvalidIndex, common.UserMessage(err))
	}
}

func TestResolve_IndexUsesCurrentView(t *testing.T) {
	env := newEnv(t)
	env.Store.SetView(job("designer"))

	got, err := Resolve(env.Store, IndexTarget(1), MatchAll)
	require.NoError(t, err)
	assert.Equal(t, "Bernice Yu", got[0].Name)

	_, err = Resolve(env.Store, IndexTarget(2), MatchAll)
	assert.ErrorIs(t, err, ErrInvalidTargeting)
}

func TestResolve_PredicatesIntersectAndUnion(t *testing.T) {
	env := newEnv(t)
	target := PredicateTarget(job("software engineer"), status("interviewed"))

	all, err := Resolve(env.Store, target, MatchAll)
	require.NoError(t, err)
	assert.Equal(t, []string{"Charlotte Oliveiro"}, namesOf(all))

	anyOf, err := Resolve(env.Store, target, MatchAny)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alex Yeoh", "Bernice Yu", "Charlotte Oliveiro", "Irfan Ibrahim"}, namesOf(anyOf))
}

func TestResolve_EmptyMatchStillReplacesView(t *testing.T) {
	env := newEnv(t)

	_, err := Resolve(env.Store, PredicateTarget(job("astronaut")), MatchAll)
	assert.ErrorIs(t, err, ErrNoMatch)
	assert.Equal(t, MessageNoMatch, common.UserMessage(err))
	assert.Empty(t, env.Store.View())
	assert.Equal(t, 5, env.Store.Len())
}

func TestAddCommand(t *testing.T) {
	fields := model.ApplicantFields{
		Name:        "Roy Balakrishnan",
		Phone:       "92624417",
		Email:       "royb@example.com",
		JobPosition: "Data Analyst",
		Status:      "preliminary",
		Address:     "Blk 45 Aljunied Street 85",
		Tags:        []string{"colleagues"},
	}

	t.Run("adds and shows all", func(t *testing.T) {
		env := newEnv(t)
		env.Store.SetView(job("designer"))

		res, err := AddCommand{Fields: fields}.Execute(context.Background(), env)
		require.NoError(t, err)

		added := find(t, env.Store, "Roy Balakrishnan")
		assert.Equal(t, fmt.Sprintf(MessageAdded, added.Describe()), res.Feedback)
		assert.Equal(t, testNow, added.CreatedAt)
		assert.Equal(t, model.StatusPreliminary, added.Status)
		assert.Len(t, env.Store.View(), 6)
	})

	t.Run("same name in another case is a duplicate", func(t *testing.T) {
		env := newEnv(t)
		dup := fields
		dup.Name = "alex YEOH"

		_, err := AddCommand{Fields: dup}.Execute(context.Background(), env)
		assert.ErrorIs(t, err, ErrDuplicateIdentity)
		assert.Equal(t, MessageDuplicateApplicant, common.UserMessage(err))
		assert.Equal(t, 5, env.Store.Len())
	})

	t.Run("same phone and email under a new name is allowed", func(t *testing.T) {
		env := newEnv(t)
		alex := find(t, env.Store, "Alex Yeoh")
		twin := fields
		twin.Phone = alex.Phone
		twin.Email = alex.Email

		_, err := AddCommand{Fields: twin}.Execute(context.Background(), env)
		require.NoError(t, err)
		assert.Equal(t, 6, env.Store.Len())
	})

	t.Run("invalid field", func(t *testing.T) {
		env := newEnv(t)
		bad := fields
		bad.Email = "not-an-email"

		_, err := AddCommand{Fields: bad}.Execute(context.Background(), env)
		assert.ErrorIs(t, err, model.ErrInvalidField)
		assert.Equal(t, 5, env.Store.Len())
	})
}

func TestDeleteCommand_Confirmation(t *testing.T) {
	ctx := context.Background()

	t.Run("index", func(t *testing.T) {
		env := newEnv(t)
		prompt, err := DeleteCommand{Target: IndexTarget(1)}.Confirmation(ctx, env)
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf(PromptDeleteOne, find(t, env.Store, "Alex Yeoh").Describe()), prompt)
	})

	t.Run("single match", func(t *testing.T) {
		env := newEnv(t)
		prompt, err := DeleteCommand{Target: PredicateTarget(job("designer"))}.Confirmation(ctx, env)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(prompt, "Are you sure you want to delete the only applicant matching the criteria?\n"))
		assert.True(t, strings.HasSuffix(prompt, "\nType 'yes' to confirm, anything else to cancel."))
	})

	t.Run("many matches", func(t *testing.T) {
		env := newEnv(t)
		prompt, err := DeleteCommand{Target: PredicateTarget(job("software engineer"))}.Confirmation(ctx, env)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(prompt, "Are you sure you want to delete these 3 applicants?\n"))
		assert.Equal(t, 5, env.Store.Len(), "confirmation never mutates")
	})

	t.Run("no match", func(t *testing.T) {
		env := newEnv(t)
		_, err := DeleteCommand{Target: PredicateTarget(job("astronaut"))}.Confirmation(ctx, env)
		assert.ErrorIs(t, err, ErrNoMatch)
	})
}

func TestDeleteCommand_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("by index", func(t *testing.T) {
		env := newEnv(t)
		bernice := find(t, env.Store, "Bernice Yu")

		res, err := DeleteCommand{Target: IndexTarget(2), Force: true}.Execute(ctx, env)
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf(MessageDeletedOne, bernice.Describe()), res.Feedback)
		assert.False(t, env.Store.Contains(bernice))
	})

	t.Run("by criteria deletes every match", func(t *testing.T) {
		env := newEnv(t)
		alex := find(t, env.Store, "Alex Yeoh")
		charlotte := find(t, env.Store, "Charlotte Oliveiro")
		irfan := find(t, env.Store, "Irfan Ibrahim")

		res, err := DeleteCommand{Target: PredicateTarget(job("SOFTWARE ENGINEER")), Force: true}.Execute(ctx, env)
		require.NoError(t, err)

		want := "Deleted Applicants:\n" + alex.Describe() + "\n\n" + charlotte.Describe() + "\n\n" + irfan.Describe()
		assert.Equal(t, want, res.Feedback)
		assert.Equal(t, []string{"Bernice Yu", "David Li"}, namesOf(env.Store.All()))
	})

	t.Run("invalid index mutates nothing", func(t *testing.T) {
		env := newEnv(t)
		_, err := DeleteCommand{Target: IndexTarget(9), Force: true}.Execute(ctx, env)
		assert.ErrorIs(t, err, ErrInvalidTargeting)
		assert.Equal(t, 5, env.Store.Len())
	})
}

func TestGatedCommands_WithForced(t *testing.T) {
	var gated []Gated = []Gated{
		DeleteCommand{Target: IndexTarget(1)},
		StatusCommand{Target: IndexTarget(1), Status: model.StatusOffered},
	}
	for _, g := range gated {
		assert.False(t, g.Forced())
		forced := g.WithForced()
		assert.True(t, forced.Forced())
		assert.Equal(t, g.Kind(), forced.Kind())
		assert.False(t, g.Forced(), "original is unchanged")
	}
}

func TestEditCommand(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces fields and keeps identity data", func(t *testing.T) {
		env := newEnv(t)
		env.Store.SetView(job("designer"))
		bernice := find(t, env.Store, "Bernice Yu")

		res, err := EditCommand{Index: 1, Overrides: model.Overrides{JobPosition: strPtr("Lead Designer")}}.Execute(ctx, env)
		require.NoError(t, err)

		edited := find(t, env.Store, "Bernice Yu")
		assert.Equal(t, "Lead Designer", edited.JobPosition)
		assert.Equal(t, bernice.ID, edited.ID)
		assert.Equal(t, bernice.CreatedAt, edited.CreatedAt)
		assert.Equal(t, bernice.Rating, edited.Rating)
		assert.Equal(t, fmt.Sprintf(MessageEdited, edited.Describe()), res.Feedback)
		assert.Len(t, env.Store.View(), 5, "edit shows all applicants")
	})

	t.Run("collision with another applicant", func(t *testing.T) {
		env := newEnv(t)
		_, err := EditCommand{Index: 1, Overrides: model.Overrides{Name: strPtr("bernice yu")}}.Execute(ctx, env)
		assert.ErrorIs(t, err, ErrDuplicateIdentity)
		assert.Equal(t, "Alex Yeoh", env.Store.All()[0].Name)
	})

	t.Run("renaming to own name in another case", func(t *testing.T) {
		env := newEnv(t)
		_, err := EditCommand{Index: 1, Overrides: model.Overrides{Name: strPtr("ALEX YEOH")}}.Execute(ctx, env)
		require.NoError(t, err)
		assert.Equal(t, "ALEX YEOH", env.Store.All()[0].Name)
	})

	t.Run("nothing to edit", func(t *testing.T) {
		env := newEnv(t)
		_, err := EditCommand{Index: 1}.Execute(ctx, env)
		assert.ErrorIs(t, err, ErrInvalidCommand)
		assert.Equal(t, MessageNothingToEdit, common.UserMessage(err))
	})

	t.Run("invalid value", func(t *testing.T) {
		env := newEnv(t)
		_, err := EditCommand{Index: 1, Overrides: model.Overrides{Phone: strPtr("12")}}.Execute(ctx, env)
		assert.ErrorIs(t, err, model.ErrInvalidField)
	})
}

func TestRateCommand(t *testing.T) {
	ctx := context.Background()

	t.Run("by index", func(t *testing.T) {
		env := newEnv(t)
		res, err := RateCommand{Target: IndexTarget(1), Rating: 5}.Execute(ctx, env)
		require.NoError(t, err)

		alex := find(t, env.Store, "Alex Yeoh")
		assert.Equal(t, model.Rating(5), alex.Rating)
		assert.Equal(t, fmt.Sprintf(MessageRated, alex.Describe()), res.Feedback)
	})

	t.Run("criteria matching exactly one", func(t *testing.T) {
		env := newEnv(t)
		_, err := RateCommand{Target: PredicateTarget(name("david li")), Rating: 2}.Execute(ctx, env)
		require.NoError(t, err)
		assert.Equal(t, model.Rating(2), find(t, env.Store, "David Li").Rating)
	})

	t.Run("criteria matching several is rejected", func(t *testing.T) {
		env := newEnv(t)
		before := env.Store.All()

		_, err := RateCommand{Target: PredicateTarget(status("interviewed")), Rating: 5}.Execute(ctx, env)
		assert.ErrorIs(t, err, ErrTooManyMatches)
		assert.Equal(t, "2 persons matched keyword, please be more specific.", common.UserMessage(err))
		assert.Equal(t, before, env.Store.All())
	})

	t.Run("criteria matching none", func(t *testing.T) {
		env := newEnv(t)
		_, err := RateCommand{Target: PredicateTarget(name("nobody")), Rating: 5}.Execute(ctx, env)
		assert.ErrorIs(t, err, ErrNoMatch)
		assert.Equal(t, MessageNoResult, common.UserMessage(err))
	})

	t.Run("out of range rating", func(t *testing.T) {
		env := newEnv(t)
		_, err := RateCommand{Target: IndexTarget(1), Rating: 6}.Execute(ctx, env)
		assert.ErrorIs(t, err, model.ErrInvalidField)
	})
}

func TestStatusCommand(t *testing.T) {
	ctx := context.Background()

	t.Run("confirmation wording", func(t *testing.T) {
		env := newEnv(t)

		prompt, err := StatusCommand{Target: IndexTarget(4), Status: model.StatusAccepted}.Confirmation(ctx, env)
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf(PromptStatusOne, "Accepted", find(t, env.Store, "David Li").Describe()), prompt)

		prompt, err = StatusCommand{Target: PredicateTarget(status("interviewed")), Status: model.StatusOffered}.Confirmation(ctx, env)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(prompt, "Are you sure you want to update the status of these 2 applicants to Offered?\n"))

		prompt, err = StatusCommand{Target: PredicateTarget(job("designer")), Status: model.StatusOffered}.Confirmation(ctx, env)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(prompt, "Are you sure you want to update the status of the only applicant matching the criteria to Offered?\n"))
	})

	t.Run("updates every match", func(t *testing.T) {
		env := newEnv(t)
		res, err := StatusCommand{
			Target: PredicateTarget(status("interviewed")),
			Status: model.StatusOffered,
			Force:  true,
		}.Execute(ctx, env)
		require.NoError(t, err)

		assert.Equal(t, model.StatusOffered, find(t, env.Store, "Bernice Yu").Status)
		assert.Equal(t, model.StatusOffered, find(t, env.Store, "Charlotte Oliveiro").Status)
		assert.True(t, strings.HasPrefix(res.Feedback, "Updated status of 2 applicant(s) to Offered:\n"))
		assert.Empty(t, env.Store.View(), "the view still filters on the old status")
	})
}

func TestSearchCommand(t *testing.T) {
	ctx := context.Background()

	env := newEnv(t)
	res, err := SearchCommand{Predicates: []predicate.Predicate{job("designer"), status("offered")}}.Execute(ctx, env)
	require.NoError(t, err)
	assert.Equal(t, "2 applicant(s) listed!", res.Feedback)
	assert.True(t, res.ShowView)
	assert.Equal(t, []string{"Bernice Yu", "David Li"}, namesOf(env.Store.View()))

	_, err = SearchCommand{Predicates: []predicate.Predicate{job("astronaut")}}.Execute(ctx, env)
	assert.ErrorIs(t, err, ErrNoMatch)
	assert.Equal(t, MessageNoResult, common.UserMessage(err))

	res, err = ListCommand{}.Execute(ctx, env)
	require.NoError(t, err)
	assert.Equal(t, MessageListedAll, res.Feedback)
	assert.Len(t, env.Store.View(), 5)
}

func TestSortCommand(t *testing.T) {
	ctx := context.Background()
	env := newEnv(t)

	res, err := SortCommand{Key: ordering.KeyRating, Ascending: false}.Execute(ctx, env)
	require.NoError(t, err)
	assert.Equal(t, "Sorted applicants by rating in descending order.", res.Feedback)
	assert.Equal(t, "Bernice Yu", env.Store.All()[0].Name)

	before := env.Store.All()
	res, err = SortCommand{Key: ordering.ParseKey("address"), Ascending: true}.Execute(ctx, env)
	require.NoError(t, err)
	assert.Equal(t, `Unknown sort key "address"; order unchanged.`, res.Feedback)
	assert.Equal(t, before, env.Store.All())
}

func TestSummaryCommand(t *testing.T) {
	ctx := context.Background()
	env := newEnv(t)

	res, err := SummaryCommand{}.Execute(ctx, env)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(res.Feedback, "Total applicants: 5\n"))

	res, err = SummaryCommand{Predicates: []predicate.Predicate{job("software engineer"), status("interviewed")}}.Execute(ctx, env)
	require.NoError(t, err)
	assert.Equal(t, "Total applicants: 1\nJob positions: Software Engineer: 1\nStatuses: Interviewed: 1", res.Feedback)

	res, err = SummaryCommand{Predicates: []predicate.Predicate{job("astronaut")}}.Execute(ctx, env)
	require.NoError(t, err, "an empty subset is summarized")
	assert.Equal(t, "Total applicants: 0\nJob positions: none\nStatuses: none", res.Feedback)
}

type recordingExporter struct {
	err        error
	path       string
	applicants []model.Applicant
}

func (r *recordingExporter) Export(_ context.Context, path string, as []model.Applicant) error {
	r.path = path
	r.applicants = as
	return r.err
}

func TestExportCommand(t *testing.T) {
	ctx := context.Background()

	env := newEnv(t)
	exporter := &recordingExporter{}
	env.Exporter = exporter
	env.Store.SetView(job("software engineer"))

	res, err := ExportCommand{Path: "out.csv"}.Execute(ctx, env)
	require.NoError(t, err)
	assert.Equal(t, "Exported 3 applicant(s) to out.csv", res.Feedback)
	assert.Equal(t, "out.csv", exporter.path)
	assert.Len(t, exporter.applicants, 3)

	exporter.err = errors.New("disk full")
	_, err = ExportCommand{Path: "out.csv"}.Execute(ctx, env)
	assert.Error(t, err)
	assert.Equal(t, "Could not export applicants to out.csv", common.UserMessage(err))

	env.Exporter = nil
	_, err = ExportCommand{Path: "out.csv"}.Execute(ctx, env)
	assert.ErrorIs(t, err, ErrInvalidCommand)
}

func TestAvatarCommand(t *testing.T) {
	ctx := context.Background()
	env := newEnv(t)

	res, err := AvatarCommand{Index: 3, Path: " images/charlotte.png "}.Execute(ctx, env)
	require.NoError(t, err)
	assert.Equal(t, "Updated avatar of Applicant: Charlotte Oliveiro", res.Feedback)
	assert.Equal(t, "images/charlotte.png", find(t, env.Store, "Charlotte Oliveiro").AvatarPath)

	_, err = AvatarCommand{Index: 3, Path: "  "}.Execute(ctx, env)
	assert.ErrorIs(t, err, ErrInvalidCommand)
}

func TestSessionCommands(t *testing.T) {
	ctx := context.Background()
	env := newEnv(t)

	res, err := HelpCommand{}.Execute(ctx, env)
	require.NoError(t, err)
	assert.True(t, res.ShowHelp)

	res, err = ExitCommand{}.Execute(ctx, env)
	require.NoError(t, err)
	assert.True(t, res.Exit)

	res, err = ClearCommand{}.Execute(ctx, env)
	require.NoError(t, err)
	assert.Equal(t, MessageCleared, res.Feedback)
	assert.Zero(t, env.Store.Len())
}
