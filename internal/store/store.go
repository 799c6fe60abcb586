// Package store holds the in-memory applicant book and its filtered view.
package store

import (
	"errors"
	"fmt"
	"slices"

	"github.com/Veraticus/hireflow/internal/model"
	"github.com/Veraticus/hireflow/internal/predicate"
)

// Store errors.
var (
	ErrDuplicate = errors.New("applicant already exists")
	ErrNotFound  = errors.New("applicant not found")
)

// Store is the mutable record collection commands operate on.
type Store interface {
	// Contains reports whether the same person is already in the book.
	Contains(a model.Applicant) bool
	Insert(a model.Applicant) error
	// Replace swaps old for updated, keeping its position.
	Replace(old, updated model.Applicant) error
	Remove(a model.Applicant) error
	// All returns every applicant in book order.
	All() []model.Applicant
	// View returns the applicants currently on display, in book order.
	View() []model.Applicant
	// SetView replaces the active filter; filters never compound.
	SetView(p predicate.Predicate)
	ShowAll()
	// Sort reorders the whole book in place. The sort is stable.
	Sort(cmp func(a, b model.Applicant) int)
	// Reset replaces the whole book, e.g. after loading from disk.
	Reset(applicants []model.Applicant) error
	Len() int
}

// Book is an ordered, in-memory Store. It is not safe for concurrent use.
type Book struct {
	filter     predicate.Predicate
	applicants []model.Applicant
}

// NewBook creates an empty book showing all applicants.
func NewBook() *Book {
	return &Book{filter: predicate.Everything}
}

// Contains implements Store.
func (b *Book) Contains(a model.Applicant) bool {
	return slices.ContainsFunc(b.applicants, a.IsSameApplicant)
}

// Insert implements Store.
func (b *Book) Insert(a model.Applicant) error {
	if b.Contains(a) {
		return fmt.Errorf("%w: %s", ErrDuplicate, a.Name)
	}
	b.applicants = append(b.applicants, a)
	return nil
}

// Replace implements Store.
func (b *Book) Replace(old, updated model.Applicant) error {
	i := b.indexOf(old)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, old.Name)
	}
	for j, other := range b.applicants {
		if j != i && other.IsSameApplicant(updated) {
			return fmt.Errorf("%w: %s", ErrDuplicate, updated.Name)
		}
	}
	b.applicants[i] = updated
	return nil
}

// Remove implements Store.
func (b *Book) Remove(a model.Applicant) error {
	i := b.indexOf(a)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, a.Name)
	}
	b.applicants = slices.Delete(b.applicants, i, i+1)
	return nil
}

// All implements Store.
func (b *Book) All() []model.Applicant {
	return slices.Clone(b.applicants)
}

// View implements Store.
func (b *Book) View() []model.Applicant {
	out := make([]model.Applicant, 0, len(b.applicants))
	for _, a := range b.applicants {
		if b.filter.Test(a) {
			out = append(out, a)
		}
	}
	return out
}

// SetView implements Store.
func (b *Book) SetView(p predicate.Predicate) {
	if p == nil {
		p = predicate.Everything
	}
	b.filter = p
}

// ShowAll implements Store.
func (b *Book) ShowAll() {
	b.filter = predicate.Everything
}

// Sort implements Store.
func (b *Book) Sort(cmp func(a, b model.Applicant) int) {
	slices.SortStableFunc(b.applicants, cmp)
}

// Reset implements Store. The whole batch is rejected if it contains the
// same person twice.
func (b *Book) Reset(applicants []model.Applicant) error {
	for i, a := range applicants {
		for _, earlier := range applicants[:i] {
			if earlier.IsSameApplicant(a) {
				return fmt.Errorf("%w: %s", ErrDuplicate, a.Name)
			}
		}
	}
	b.applicants = slices.Clone(applicants)
	b.filter = predicate.Everything
	return nil
}

// Len implements Store.
func (b *Book) Len() int {
	return len(b.applicants)
}

// indexOf locates a by ID, falling back to identity for applicants that
// were never given one.
func (b *Book) indexOf(a model.Applicant) int {
	if a.ID != "" {
		return slices.IndexFunc(b.applicants, func(x model.Applicant) bool { return x.ID == a.ID })
	}
	return slices.IndexFunc(b.applicants, a.IsSameApplicant)
}
