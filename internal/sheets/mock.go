package sheets

import (
	"context"
	"slices"
	"sync"

	"github.com/Veraticus/hireflow/internal/model"
)

// MockWriter records Write calls in place of a real spreadsheet.
type MockWriter struct {
	WriteFunc func(ctx context.Context, applicants []model.Applicant) error
	calls     [][]model.Applicant
	mu        sync.Mutex
}

// NewMockWriter creates a new mock writer.
func NewMockWriter() *MockWriter {
	return &MockWriter{}
}

// Write implements service.ReportWriter.
func (m *MockWriter) Write(ctx context.Context, applicants []model.Applicant) error {
	m.mu.Lock()
	m.calls = append(m.calls, slices.Clone(applicants))
	fn := m.WriteFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, applicants)
	}
	return nil
}

// Calls returns the applicants passed to each Write call.
func (m *MockWriter) Calls() [][]model.Applicant {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.calls)
}

// SetWriteError makes every following Write return err.
func (m *MockWriter) SetWriteError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.WriteFunc = func(context.Context, []model.Applicant) error { return err }
}
