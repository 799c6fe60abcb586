package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Veraticus/hireflow/internal/model"
)

// LoadApplicants returns every stored applicant in book order.
func (s *SQLiteStorage) LoadApplicants(ctx context.Context) ([]model.Applicant, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, phone, email, job_position, status, address,
		       rating, tags, created_at, avatar_path
		FROM applicants
		ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query applicants: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var applicants []model.Applicant
	for rows.Next() {
		a, err := scanApplicant(rows)
		if err != nil {
			return nil, err
		}
		applicants = append(applicants, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read applicants: %w", err)
	}
	return applicants, nil
}

// SaveApplicants replaces the stored book with applicants in one
// transaction, keeping their order.
func (s *SQLiteStorage) SaveApplicants(ctx context.Context, applicants []model.Applicant) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateApplicants(applicants); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM applicants`); err != nil {
		return fmt.Errorf("failed to clear applicants: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO applicants (id, position, name, phone, email, job_position,
		                        status, address, rating, tags, created_at, avatar_path)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, a := range applicants {
		tags, err := json.Marshal(a.Tags)
		if err != nil {
			return fmt.Errorf("failed to encode tags for %s: %w", a.Name, err)
		}
		if _, err := stmt.ExecContext(ctx,
			a.ID, i, a.Name, a.Phone, a.Email, a.JobPosition,
			string(a.Status), a.Address, int(a.Rating), string(tags),
			a.CreatedAt.UnixNano(), a.AvatarPath,
		); err != nil {
			return fmt.Errorf("failed to save applicant %s: %w", a.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit applicants: %w", err)
	}
	return nil
}

// CountApplicants returns the number of stored applicants.
func (s *SQLiteStorage) CountApplicants(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM applicants`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count applicants: %w", err)
	}
	return count, nil
}

func scanApplicant(rows *sql.Rows) (model.Applicant, error) {
	var (
		a       model.Applicant
		status  string
		rating  int
		tags    sql.NullString
		created int64
	)
	if err := rows.Scan(&a.ID, &a.Name, &a.Phone, &a.Email, &a.JobPosition, &status,
		&a.Address, &rating, &tags, &created, &a.AvatarPath); err != nil {
		return model.Applicant{}, fmt.Errorf("failed to scan applicant: %w", err)
	}

	a.Status = model.Status(status)
	a.Rating = model.Rating(rating)
	a.CreatedAt = time.Unix(0, created).UTC()
	if tags.Valid && tags.String != "" {
		if err := json.Unmarshal([]byte(tags.String), &a.Tags); err != nil {
			return model.Applicant{}, fmt.Errorf("failed to decode tags for %s: %w", a.Name, err)
		}
	}
	return a, nil
}
