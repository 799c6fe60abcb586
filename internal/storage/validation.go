package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/hireflow/internal/model"
)

// Validation errors.
var (
	ErrNilContext       = errors.New("context cannot be nil")
	ErrEmptyString      = errors.New("string parameter cannot be empty")
	ErrInvalidApplicant = errors.New("invalid applicant")
	ErrDuplicateRecord  = errors.New("duplicate applicant record")
	ErrInMemory         = errors.New("in-memory databases cannot be snapshotted")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateApplicants checks that a book can be written: every record has an
// ID and a name, and neither repeats.
func validateApplicants(applicants []model.Applicant) error {
	ids := make(map[string]bool, len(applicants))
	for i, a := range applicants {
		if err := validateApplicant(a); err != nil {
			return fmt.Errorf("applicant at index %d: %w", i, err)
		}
		if ids[a.ID] {
			return fmt.Errorf("%w: id %s", ErrDuplicateRecord, a.ID)
		}
		ids[a.ID] = true
		for _, earlier := range applicants[:i] {
			if earlier.IsSameApplicant(a) {
				return fmt.Errorf("%w: name %s", ErrDuplicateRecord, a.Name)
			}
		}
	}
	return nil
}

func validateApplicant(a model.Applicant) error {
	if a.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidApplicant)
	}
	if strings.TrimSpace(a.Name) == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidApplicant)
	}
	if a.CreatedAt.IsZero() {
		return fmt.Errorf("%w: missing creation time", ErrInvalidApplicant)
	}
	if err := a.Rating.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidApplicant, err)
	}
	return nil
}
