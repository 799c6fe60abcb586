// Package model defines the core domain models used throughout the application.
package model

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Applicant is a single candidate tracked in the applicant book.
//
// Applicants are values: edits build a new Applicant that replaces the old one
// in the store. ID is a storage key only and never takes part in identity.
type Applicant struct {
	CreatedAt   time.Time
	ID          string
	Name        string
	Phone       string
	Email       string
	JobPosition string
	Status      Status
	Address     string
	AvatarPath  string
	Tags        []string
	Rating      Rating
}

// ApplicantFields holds the raw, user-supplied attributes of an applicant.
type ApplicantFields struct {
	Name        string   `validate:"required,max=100,personname"`
	Phone       string   `validate:"required,phone"`
	Email       string   `validate:"required,email"`
	JobPosition string   `validate:"required,max=100"`
	Status      string   `validate:"required,status"`
	Address     string   `validate:"required,max=200"`
	Tags        []string `validate:"dive,required,alphanum"`
}

// Overrides is a sparse set of replacement fields used by edits.
// Nil fields keep the existing value.
type Overrides struct {
	Name        *string
	Phone       *string
	Email       *string
	JobPosition *string
	Status      *string
	Address     *string
	Tags        *[]string
}

// IsEmpty reports whether no field is overridden.
func (o Overrides) IsEmpty() bool {
	return o.Name == nil && o.Phone == nil && o.Email == nil &&
		o.JobPosition == nil && o.Status == nil && o.Address == nil && o.Tags == nil
}

// NewApplicant validates fields and builds a new Applicant with a fresh ID.
func NewApplicant(fields ApplicantFields, rating Rating, createdAt time.Time) (Applicant, error) {
	fields = fields.normalized()
	if err := ValidateFields(fields); err != nil {
		return Applicant{}, err
	}
	if err := rating.Validate(); err != nil {
		return Applicant{}, err
	}

	status, err := ParseStatus(fields.Status)
	if err != nil {
		return Applicant{}, err
	}

	return Applicant{
		ID:          uuid.NewString(),
		Name:        fields.Name,
		Phone:       fields.Phone,
		Email:       fields.Email,
		JobPosition: fields.JobPosition,
		Status:      status,
		Address:     fields.Address,
		Tags:        fields.Tags,
		Rating:      rating,
		CreatedAt:   createdAt.UTC(),
	}, nil
}

// Fields returns the editable attributes of the applicant.
func (a Applicant) Fields() ApplicantFields {
	return ApplicantFields{
		Name:        a.Name,
		Phone:       a.Phone,
		Email:       a.Email,
		JobPosition: a.JobPosition,
		Status:      string(a.Status),
		Address:     a.Address,
		Tags:        slices.Clone(a.Tags),
	}
}

// With returns a copy of a with the overridden fields replaced.
// ID, CreatedAt, AvatarPath and Rating always carry over.
func (a Applicant) With(o Overrides) (Applicant, error) {
	fields := a.Fields()
	if o.Name != nil {
		fields.Name = *o.Name
	}
	if o.Phone != nil {
		fields.Phone = *o.Phone
	}
	if o.Email != nil {
		fields.Email = *o.Email
	}
	if o.JobPosition != nil {
		fields.JobPosition = *o.JobPosition
	}
	if o.Status != nil {
		fields.Status = *o.Status
	}
	if o.Address != nil {
		fields.Address = *o.Address
	}
	if o.Tags != nil {
		fields.Tags = slices.Clone(*o.Tags)
	}

	edited, err := NewApplicant(fields, a.Rating, a.CreatedAt)
	if err != nil {
		return Applicant{}, err
	}
	edited.ID = a.ID
	edited.AvatarPath = a.AvatarPath
	return edited, nil
}

// WithRating returns a copy of a carrying the given rating.
func (a Applicant) WithRating(r Rating) Applicant {
	a.Tags = slices.Clone(a.Tags)
	a.Rating = r
	return a
}

// WithStatus returns a copy of a carrying the given status.
func (a Applicant) WithStatus(s Status) Applicant {
	a.Tags = slices.Clone(a.Tags)
	a.Status = s
	return a
}

// WithAvatar returns a copy of a pointing at a different avatar image.
func (a Applicant) WithAvatar(path string) Applicant {
	a.Tags = slices.Clone(a.Tags)
	a.AvatarPath = strings.TrimSpace(path)
	return a
}

// IsSameApplicant reports whether a and other describe the same person.
// Two applicants are the same person when their names match, ignoring case
// and surrounding whitespace.
func (a Applicant) IsSameApplicant(other Applicant) bool {
	return strings.EqualFold(strings.TrimSpace(a.Name), strings.TrimSpace(other.Name))
}

// Describe renders the applicant for result messages.
func (a Applicant) Describe() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s; Phone: %s; Email: %s; Job Position: %s; Status: %s; Address: %s; Rating: %s; Tags: ",
		a.Name, a.Phone, a.Email, a.JobPosition, a.Status, a.Address, a.Rating)
	for _, tag := range a.Tags {
		b.WriteString("[" + tag + "]")
	}
	return b.String()
}

func (f ApplicantFields) normalized() ApplicantFields {
	f.Name = collapseSpaces(f.Name)
	f.Phone = strings.TrimSpace(f.Phone)
	f.Email = strings.TrimSpace(f.Email)
	f.JobPosition = collapseSpaces(f.JobPosition)
	f.Status = strings.TrimSpace(f.Status)
	f.Address = strings.TrimSpace(f.Address)
	f.Tags = normalizeTags(f.Tags)
	return f
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// normalizeTags trims, de-duplicates and sorts tags so they behave as a set.
func normalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || slices.Contains(out, tag) {
			continue
		}
		out = append(out, tag)
	}
	slices.Sort(out)
	return out
}
