// Package applicants provides fixtures for tests that need a populated
// applicant book.
//
// Example usage:
//
//	book := applicants.NewBuilder(t).
//		WithFixture(applicants.FixtureTeam).
//		With("Zed Quinn", "Intern", model.StatusOffered).
//		Book()
package applicants

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/hireflow/internal/model"
	"github.com/Veraticus/hireflow/internal/store"
)

// Epoch is the creation time of the first fixture applicant. Later
// applicants are created one day apart.
var Epoch = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

// Spec describes an applicant to build. Empty fields get valid defaults
// derived from Name.
type Spec struct {
	CreatedAt time.Time
	Name      string
	Phone     string
	Email     string
	Job       string
	Status    model.Status
	Address   string
	Tags      []string
	Rating    model.Rating
}

// Builder accumulates applicant specs.
type Builder struct {
	t     testing.TB
	specs []Spec
}

// NewBuilder starts an empty builder.
func NewBuilder(t testing.TB) *Builder {
	return &Builder{t: t}
}

// With adds an applicant with default contact details.
func (b *Builder) With(name, job string, status model.Status) *Builder {
	return b.WithSpec(Spec{Name: name, Job: job, Status: status})
}

// WithSpec adds a fully described applicant.
func (b *Builder) WithSpec(s Spec) *Builder {
	b.specs = append(b.specs, s)
	return b
}

// WithFixture adds every applicant of f.
func (b *Builder) WithFixture(f Fixture) *Builder {
	b.specs = append(b.specs, f.Specs()...)
	return b
}

// Build creates the applicants, failing the test on invalid input.
func (b *Builder) Build() []model.Applicant {
	b.t.Helper()

	out := make([]model.Applicant, len(b.specs))
	for i, s := range b.specs {
		out[i] = Must(b.t, s, i)
	}
	return out
}

// Book builds the applicants and loads them into a fresh in-memory book.
func (b *Builder) Book() *store.Book {
	b.t.Helper()

	book := store.NewBook()
	if err := book.Reset(b.Build()); err != nil {
		b.t.Fatalf("failed to fill applicant book: %v", err)
	}
	return book
}

// Must builds one applicant from s. seq picks the default creation time.
func Must(t testing.TB, s Spec, seq int) model.Applicant {
	t.Helper()

	slug := strings.ToLower(strings.Join(strings.Fields(s.Name), "."))
	fields := model.ApplicantFields{
		Name:        s.Name,
		Phone:       s.Phone,
		Email:       s.Email,
		JobPosition: s.Job,
		Status:      string(s.Status),
		Address:     s.Address,
		Tags:        s.Tags,
	}
	if fields.Phone == "" {
		fields.Phone = fmt.Sprintf("9%07d", seq+1)
	}
	if fields.Email == "" {
		fields.Email = slug + "@example.com"
	}
	if fields.JobPosition == "" {
		fields.JobPosition = "Software Engineer"
	}
	if fields.Status == "" {
		fields.Status = string(model.StatusPreliminary)
	}
	if fields.Address == "" {
		fields.Address = fmt.Sprintf("%d Clementi Ave", seq+1)
	}

	created := s.CreatedAt
	if created.IsZero() {
		created = Epoch.AddDate(0, 0, seq)
	}

	a, err := model.NewApplicant(fields, s.Rating, created)
	if err != nil {
		t.Fatalf("invalid fixture applicant %q: %v", s.Name, err)
	}
	return a
}
