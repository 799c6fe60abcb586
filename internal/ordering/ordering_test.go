package ordering

import (
	"slices"
	"testing"
	"time"

	"github.com/Veraticus/hireflow/internal/model"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

type sliceSorter []model.Applicant

func (s sliceSorter) Sort(c func(a, b model.Applicant) int) {
	slices.SortStableFunc(s, c)
}

func named(ns ...string) sliceSorter {
	out := make(sliceSorter, len(ns))
	for i, n := range ns {
		out[i] = model.Applicant{Name: n, Email: n + "@example.com"}
	}
	return out
}

func namesOf(as []model.Applicant) []string {
	out := make([]string, len(as))
	for i, a := range as {
		out[i] = a.Name
	}
	return out
}

func TestCompareCaseAware(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{a: "a", b: "b", want: -1},
		{a: "B", b: "a", want: 1},
		{a: "Aa", b: "aaa", want: -1},
		{a: "Bbb", b: "bbB", want: -1},
		{a: "abc", b: "ABC", want: 1},
		{a: "same", b: "same", want: 0},
		{a: "", b: "a", want: -1},
		{a: "Zoë", b: "zoe", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, CompareCaseAware(tt.a, tt.b))
			assert.Equal(t, -tt.want, CompareCaseAware(tt.b, tt.a))
		})
	}
}

func TestSort_InterleavesCaseVariants(t *testing.T) {
	s := named("bbB", "aaa", "Bbb", "Aa")

	assert.True(t, Sort(s, KeyName, true))

	want := []string{"Aa", "aaa", "Bbb", "bbB"}
	if diff := cmp.Diff(want, namesOf(s)); diff != "" {
		t.Errorf("ascending name order mismatch (-want +got):\n%s", diff)
	}

	plain := []string{"bbB", "aaa", "Bbb", "Aa"}
	slices.Sort(plain)
	assert.Equal(t, []string{"Aa", "Bbb", "aaa", "bbB"}, plain, "plain lexicographic order differs")
}

func TestSort_Idempotent(t *testing.T) {
	for _, key := range Keys {
		for _, asc := range []bool{true, false} {
			s := named("carl", "Alice", "bob", "alice", "Bob")
			Sort(s, key, asc)
			once := slices.Clone(s)
			Sort(s, key, asc)
			if diff := cmp.Diff(namesOf(once), namesOf(s)); diff != "" {
				t.Errorf("key %s asc=%v not idempotent (-once +twice):\n%s", key, asc, diff)
			}
		}
	}
}

func TestSort_DescendingIsReverse(t *testing.T) {
	asc := named("delta", "Alpha", "alpha", "Charlie", "bravo")
	desc := slices.Clone(asc)

	Sort(asc, KeyName, true)
	Sort(desc, KeyName, false)

	reversed := slices.Clone(namesOf(desc))
	slices.Reverse(reversed)
	if diff := cmp.Diff(namesOf(asc), reversed); diff != "" {
		t.Errorf("descending is not the reverse of ascending (-asc +reversed desc):\n%s", diff)
	}
}

func TestSort_DateAndRating(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := sliceSorter{
		{Name: "late", CreatedAt: base.Add(48 * time.Hour), Rating: 2},
		{Name: "early", CreatedAt: base, Rating: model.Unrated},
		{Name: "middle", CreatedAt: base.Add(24 * time.Hour), Rating: 5},
	}

	Sort(s, KeyDate, true)
	assert.Equal(t, []string{"early", "middle", "late"}, namesOf(s))

	Sort(s, KeyRating, false)
	assert.Equal(t, []string{"middle", "late", "early"}, namesOf(s))
}

func TestSort_UnknownKeyIsNoop(t *testing.T) {
	s := named("b", "a", "c")
	assert.False(t, Sort(s, ParseKey("address"), true))
	assert.Equal(t, []string{"b", "a", "c"}, namesOf(s))
}

func TestParseKey(t *testing.T) {
	assert.Equal(t, KeyName, ParseKey("  NAME "))
	assert.True(t, ParseKey("Rating").Known())
	assert.False(t, ParseKey("phone").Known())
}
