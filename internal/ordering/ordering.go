// Package ordering sorts applicants by a chosen field.
package ordering

import (
	"cmp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Veraticus/hireflow/internal/model"
)

// Key names the field applicants are sorted by.
type Key string

// Sortable keys.
const (
	KeyName   Key = "name"
	KeyEmail  Key = "email"
	KeyJob    Key = "job"
	KeyStatus Key = "status"
	KeyDate   Key = "date"
	KeyRating Key = "rating"
)

// Keys lists the supported sort keys.
var Keys = []Key{KeyName, KeyEmail, KeyJob, KeyStatus, KeyDate, KeyRating}

// ParseKey normalizes a user-supplied key. Unknown keys are returned as-is;
// they sort nothing.
func ParseKey(s string) Key {
	return Key(strings.ToLower(strings.TrimSpace(s)))
}

// Known reports whether k is a supported sort key.
func (k Key) Known() bool {
	_, ok := comparators[k]
	return ok
}

var comparators = map[Key]func(a, b model.Applicant) int{
	KeyName:   func(a, b model.Applicant) int { return CompareCaseAware(a.Name, b.Name) },
	KeyEmail:  func(a, b model.Applicant) int { return CompareCaseAware(a.Email, b.Email) },
	KeyJob:    func(a, b model.Applicant) int { return CompareCaseAware(a.JobPosition, b.JobPosition) },
	KeyStatus: func(a, b model.Applicant) int { return CompareCaseAware(string(a.Status), string(b.Status)) },
	KeyDate:   func(a, b model.Applicant) int { return a.CreatedAt.Compare(b.CreatedAt) },
	KeyRating: func(a, b model.Applicant) int { return cmp.Compare(a.Rating, b.Rating) },
}

// Comparator returns the comparison function for key in the given direction.
// The second result is false for unknown keys.
func Comparator(key Key, ascending bool) (func(a, b model.Applicant) int, bool) {
	c, ok := comparators[key]
	if !ok {
		return nil, false
	}
	if ascending {
		return c, true
	}
	return func(a, b model.Applicant) int { return c(b, a) }, true
}

// Sorter is anything that can reorder its applicants in place.
type Sorter interface {
	Sort(cmp func(a, b model.Applicant) int)
}

// Sort reorders s by key. It reports false, leaving s untouched, when the key
// is unknown.
func Sort(s Sorter, key Key, ascending bool) bool {
	c, ok := Comparator(key, ascending)
	if !ok {
		return false
	}
	s.Sort(c)
	return true
}

// CompareCaseAware orders strings so that case variants of a letter sit next
// to each other: A, a, B, b rather than A, B, a, b.
//
// Runes are compared case-insensitively first and a shorter string wins once
// the common prefix is exhausted. Only strings that are equal ignoring case
// fall back to raw code points, which puts upper case first.
func CompareCaseAware(a, b string) int {
	for i, j := 0, 0; i < len(a) && j < len(b); {
		ra, na := utf8.DecodeRuneInString(a[i:])
		rb, nb := utf8.DecodeRuneInString(b[j:])
		if c := cmp.Compare(unicode.ToLower(ra), unicode.ToLower(rb)); c != 0 {
			return c
		}
		i += na
		j += nb
	}
	if c := cmp.Compare(utf8.RuneCountInString(a), utf8.RuneCountInString(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}
