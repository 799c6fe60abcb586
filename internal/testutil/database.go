// Package testutil provides test utilities for hireflow: an isolated
// in-memory database and applicant fixtures.
package testutil

import (
	"context"
	"testing"

	"github.com/Veraticus/hireflow/internal/model"
	"github.com/Veraticus/hireflow/internal/service"
	"github.com/Veraticus/hireflow/internal/storage"
	"github.com/Veraticus/hireflow/internal/testutil/applicants"
)

// TestDB represents a test database with associated test utilities.
type TestDB struct {
	Storage    service.Storage
	t          testing.TB
	Applicants []model.Applicant
}

// SetupTestDB creates a new in-memory test database seeded with seed.
// It automatically handles migrations and cleanup.
//
// Example:
//
//	db := testutil.SetupTestDB(t, applicants.NewBuilder(t).
//		WithFixture(applicants.FixtureTeam).
//		Build())
func SetupTestDB(t testing.TB, seed []model.Applicant) *TestDB {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	if len(seed) > 0 {
		if err := store.SaveApplicants(ctx, seed); err != nil {
			t.Fatalf("failed to seed %d applicants: %v", len(seed), err)
		}
	}

	return &TestDB{
		Storage:    store,
		Applicants: seed,
		t:          t,
	}
}

// SetupTestDBWithBuilder creates a test database seeded from a builder.
//
// Example:
//
//	db := testutil.SetupTestDBWithBuilder(t, func(b *applicants.Builder) *applicants.Builder {
//		return b.WithFixture(applicants.FixtureTeam).With("Zed", "Intern", model.StatusOffered)
//	})
func SetupTestDBWithBuilder(t testing.TB, configure func(*applicants.Builder) *applicants.Builder) *TestDB {
	t.Helper()

	builder := applicants.NewBuilder(t)
	if configure != nil {
		builder = configure(builder)
	}
	return SetupTestDB(t, builder.Build())
}

// MustLoad returns everything currently stored or fails the test.
func (db *TestDB) MustLoad() []model.Applicant {
	db.t.Helper()
	loaded, err := db.Storage.LoadApplicants(context.Background())
	if err != nil {
		db.t.Fatalf("failed to load applicants: %v", err)
	}
	return loaded
}
