// Package predicate provides the field-matching conditions used to pick
// applicants out of the book.
package predicate

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/hireflow/internal/model"
)

// ErrInvalidCriteria is returned when a predicate cannot be built from its input.
var ErrInvalidCriteria = errors.New("invalid criteria")

// CriteriaError explains why a criterion was rejected. It matches
// ErrInvalidCriteria under errors.Is.
type CriteriaError struct {
	Reason string
}

func (e *CriteriaError) Error() string {
	return ErrInvalidCriteria.Error() + ": " + e.Reason
}

// Is implements the errors.Is hook.
func (e *CriteriaError) Is(target error) bool {
	return target == ErrInvalidCriteria
}

func invalidCriteria(format string, args ...any) error {
	return &CriteriaError{Reason: fmt.Sprintf(format, args...)}
}

// DateLayout is the accepted format for date criteria.
const DateLayout = "2006-01-02"

// Predicate is a testable condition over a single applicant.
type Predicate interface {
	Test(a model.Applicant) bool
	String() string
}

// Field selects the applicant attribute a FieldEquals predicate compares.
type Field string

// Comparable applicant fields.
const (
	FieldName   Field = "name"
	FieldPhone  Field = "phone"
	FieldEmail  Field = "email"
	FieldJob    Field = "job"
	FieldStatus Field = "status"
)

// FieldEquals matches applicants whose field equals Keyword, ignoring case.
type FieldEquals struct {
	Field   Field
	Keyword string
}

// NewFieldEquals builds a FieldEquals predicate, rejecting blank keywords.
func NewFieldEquals(field Field, keyword string) (FieldEquals, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return FieldEquals{}, invalidCriteria("%s keyword cannot be empty", field)
	}
	return FieldEquals{Field: field, Keyword: keyword}, nil
}

// Test implements Predicate.
func (p FieldEquals) Test(a model.Applicant) bool {
	return strings.EqualFold(strings.TrimSpace(p.value(a)), p.Keyword)
}

func (p FieldEquals) value(a model.Applicant) string {
	switch p.Field {
	case FieldName:
		return a.Name
	case FieldPhone:
		return a.Phone
	case FieldEmail:
		return a.Email
	case FieldJob:
		return a.JobPosition
	case FieldStatus:
		return string(a.Status)
	default:
		return ""
	}
}

func (p FieldEquals) String() string {
	return fmt.Sprintf("%s = %q", p.Field, p.Keyword)
}

// CreatedAfter matches applicants added strictly after Instant.
type CreatedAfter struct {
	Instant time.Time
}

// Test implements Predicate.
func (p CreatedAfter) Test(a model.Applicant) bool {
	return a.CreatedAt.After(p.Instant)
}

func (p CreatedAfter) String() string {
	return "created after " + p.Instant.Format(DateLayout)
}

// CreatedBefore matches applicants added strictly before Instant.
type CreatedBefore struct {
	Instant time.Time
}

// Test implements Predicate.
func (p CreatedBefore) Test(a model.Applicant) bool {
	return a.CreatedAt.Before(p.Instant)
}

func (p CreatedBefore) String() string {
	return "created before " + p.Instant.Format(DateLayout)
}

// ParseDate parses a date criterion as midnight UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, invalidCriteria("%q is not a valid date, expected YYYY-MM-DD", s)
	}
	return t, nil
}

// NewCreatedAfter builds a CreatedAfter predicate from a date string.
func NewCreatedAfter(date string) (CreatedAfter, error) {
	t, err := ParseDate(date)
	if err != nil {
		return CreatedAfter{}, err
	}
	return CreatedAfter{Instant: t}, nil
}

// NewCreatedBefore builds a CreatedBefore predicate from a date string.
func NewCreatedBefore(date string) (CreatedBefore, error) {
	t, err := ParseDate(date)
	if err != nil {
		return CreatedBefore{}, err
	}
	return CreatedBefore{Instant: t}, nil
}

type everything struct{}

func (everything) Test(model.Applicant) bool { return true }
func (everything) String() string          { return "all applicants" }

// Everything matches every applicant.
var Everything Predicate = everything{}

// AllOf matches applicants that satisfy every member predicate.
type AllOf []Predicate

// All combines predicates by conjunction.
func All(ps ...Predicate) AllOf {
	return AllOf(ps)
}

// Test implements Predicate.
func (c AllOf) Test(a model.Applicant) bool {
	for _, p := range c {
		if !p.Test(a) {
			return false
		}
	}
	return true
}

func (c AllOf) String() string {
	return join(c, " and ")
}

// AnyOf matches applicants that satisfy at least one member predicate.
type AnyOf []Predicate

// Any combines predicates by disjunction.
func Any(ps ...Predicate) AnyOf {
	return AnyOf(ps)
}

// Test implements Predicate.
func (c AnyOf) Test(a model.Applicant) bool {
	for _, p := range c {
		if p.Test(a) {
			return true
		}
	}
	return false
}

func (c AnyOf) String() string {
	return join(c, " or ")
}

func join(ps []Predicate, sep string) string {
	parts := make([]string, len(ps))
	for i, p := range ps {
		parts[i] = p.String()
	}
	return strings.Join(parts, sep)
}

// Equal reports whether a and b are the same variant with the same
// comparison value.
func Equal(a, b Predicate) bool {
	switch x := a.(type) {
	case FieldEquals:
		y, ok := b.(FieldEquals)
		return ok && x.Field == y.Field && x.Keyword == y.Keyword
	case CreatedAfter:
		y, ok := b.(CreatedAfter)
		return ok && x.Instant.Equal(y.Instant)
	case CreatedBefore:
		y, ok := b.(CreatedBefore)
		return ok && x.Instant.Equal(y.Instant)
	case AllOf:
		y, ok := b.(AllOf)
		return ok && equalAll(x, y)
	case AnyOf:
		y, ok := b.(AnyOf)
		return ok && equalAll(x, y)
	case everything:
		_, ok := b.(everything)
		return ok
	default:
		return false
	}
}

func equalAll(a, b []Predicate) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}
