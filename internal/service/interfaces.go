// Package service defines the interfaces shared between the command engine
// and its collaborators.
package service

import (
	"context"
	"time"

	"github.com/Veraticus/hireflow/internal/model"
)

// Persister writes the full applicant book after a mutation.
type Persister interface {
	SaveApplicants(ctx context.Context, applicants []model.Applicant) error
}

// Storage defines the contract for our persistence layer.
type Storage interface {
	Persister

	// LoadApplicants returns every stored applicant in book order.
	LoadApplicants(ctx context.Context) ([]model.Applicant, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// Exporter writes applicants to a file whose format is chosen by extension.
type Exporter interface {
	Export(ctx context.Context, path string, applicants []model.Applicant) error
}

// ReportWriter publishes applicants to an external report.
type ReportWriter interface {
	Write(ctx context.Context, applicants []model.Applicant) error
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
