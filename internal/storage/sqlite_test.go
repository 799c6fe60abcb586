package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Veraticus/hireflow/internal/model"
	"github.com/Veraticus/hireflow/internal/testutil/applicants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestStorage opens a migrated database in a temporary directory.
func createTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func TestMigrate(t *testing.T) {
	ctx := context.Background()
	store, err := NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	pending, err := store.PendingMigrations(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, len(migrations))

	require.NoError(t, store.Migrate(ctx))
	require.NoError(t, store.Migrate(ctx), "migrating twice is a no-op")

	version, err := store.SchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, ExpectedSchemaVersion, version)

	pending, err = store.PendingMigrations(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestSaveAndLoadApplicants(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	book := applicants.NewBuilder(t).WithFixture(applicants.FixtureTeam).Build()
	book[1] = book[1].WithAvatar("images/bernice.png")

	require.NoError(t, store.SaveApplicants(ctx, book))

	loaded, err := store.LoadApplicants(ctx)
	require.NoError(t, err)
	assert.Equal(t, book, loaded)

	count, err := store.CountApplicants(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, count)
}

func TestSaveApplicants_ReplacesAndKeepsOrder(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	book := applicants.NewBuilder(t).WithFixture(applicants.FixtureTeam).Build()
	require.NoError(t, store.SaveApplicants(ctx, book))

	reordered := []model.Applicant{book[4], book[0]}
	require.NoError(t, store.SaveApplicants(ctx, reordered))

	loaded, err := store.LoadApplicants(ctx)
	require.NoError(t, err)
	assert.Equal(t, reordered, loaded)

	require.NoError(t, store.SaveApplicants(ctx, nil))
	loaded, err = store.LoadApplicants(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestSaveApplicants_RejectsInvalidBooks(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	book := applicants.NewBuilder(t).WithFixture(applicants.FixtureTeam).Build()
	require.NoError(t, store.SaveApplicants(ctx, book))

	sameName := book[1]
	sameName.ID = "another-id"
	sameName.Name = "ALEX YEOH"
	err := store.SaveApplicants(ctx, []model.Applicant{book[0], sameName})
	assert.ErrorIs(t, err, ErrDuplicateRecord)

	missingID := book[0]
	missingID.ID = ""
	err = store.SaveApplicants(ctx, []model.Applicant{missingID})
	assert.ErrorIs(t, err, ErrInvalidApplicant)

	loaded, err := store.LoadApplicants(ctx)
	require.NoError(t, err)
	assert.Len(t, loaded, 5, "a rejected save leaves the previous book")
}

func TestUniqueNameIndex(t *testing.T) {
	store := createTestStorage(t)

	insert := `INSERT INTO applicants (id, position, name, phone, email, job_position, status, address, created_at)
		VALUES (?, ?, ?, '123', 'a@b.co', 'Dev', 'Preliminary', 'x', 0)`
	_, err := store.db.Exec(insert, "1", 0, "Alex Yeoh")
	require.NoError(t, err)
	_, err = store.db.Exec(insert, "2", 1, " alex yeoh ")
	assert.Error(t, err)
}

func TestValidateString(t *testing.T) {
	assert.NoError(t, validateString("x", "p"))
	assert.ErrorIs(t, validateString("  ", "p"), ErrEmptyString)

	_, err := NewSQLiteStorage("")
	assert.ErrorIs(t, err, ErrEmptyString)
}

func TestValidateContext(t *testing.T) {
	//nolint:staticcheck // nil context is the case under test
	assert.ErrorIs(t, validateContext(nil), ErrNilContext)
	assert.NoError(t, validateContext(context.Background()))
}
