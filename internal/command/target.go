package command

import (
	"fmt"
	"strings"

	"github.com/Veraticus/hireflow/internal/common"
	"github.com/Veraticus/hireflow/internal/model"
	"github.com/Veraticus/hireflow/internal/predicate"
	"github.com/Veraticus/hireflow/internal/store"
)

// Target selects the applicants a command acts on: either a one-based index
// into the current view or a non-empty list of predicates.
type Target struct {
	Predicates []predicate.Predicate
	Index      int
}

// IndexTarget targets the applicant shown at the one-based index.
func IndexTarget(index int) Target {
	return Target{Index: index}
}

// PredicateTarget targets the applicants matching ps.
func PredicateTarget(ps ...predicate.Predicate) Target {
	return Target{Predicates: ps}
}

// ByIndex reports whether the target is positional.
func (t Target) ByIndex() bool {
	return len(t.Predicates) == 0
}

func (t Target) String() string {
	if t.ByIndex() {
		return fmt.Sprintf("index %d", t.Index)
	}
	parts := make([]string, len(t.Predicates))
	for i, p := range t.Predicates {
		parts[i] = p.String()
	}
	return strings.Join(parts, ", ")
}

// MatchMode says how a predicate list is combined.
type MatchMode int

// Match modes.
const (
	MatchAll MatchMode = iota
	MatchAny
)

// Combine joins ps into a single predicate.
func (m MatchMode) Combine(ps []predicate.Predicate) predicate.Predicate {
	if m == MatchAny {
		return predicate.Any(ps...)
	}
	return predicate.All(ps...)
}

// Resolve returns the applicants t selects in s, in view order.
//
// Predicate targets replace the store's view with the combined predicate,
// even when nothing matches, so a later index refers to the filtered view.
// An index outside the view fails with ErrInvalidTargeting and an empty
// predicate match fails with ErrNoMatch.
func Resolve(s store.Store, t Target, mode MatchMode) ([]model.Applicant, error) {
	if t.ByIndex() {
		view := s.View()
		if t.Index < 1 || t.Index > len(view) {
			return nil, common.NewUserError(MessageInvalidIndex,
				fmt.Errorf("%w: index %d, %d shown", ErrInvalidTargeting, t.Index, len(view)))
		}
		return []model.Applicant{view[t.Index-1]}, nil
	}

	s.SetView(mode.Combine(t.Predicates))
	matches := s.View()
	if len(matches) == 0 {
		return nil, common.NewUserError(MessageNoMatch, fmt.Errorf("%w: %s", ErrNoMatch, t))
	}
	return matches, nil
}

func describeAll(applicants []model.Applicant, sep string) string {
	descs := make([]string, len(applicants))
	for i, a := range applicants {
		descs[i] = a.Describe()
	}
	return strings.Join(descs, sep)
}
