package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var _ SubmissionRepository = (*SubmissionRepo)(nil)

// SubmissionRepo handles database operations for the submission log.
type SubmissionRepo struct {
	db *DB
}

func NewSubmissionRepo(db *DB) *SubmissionRepo {
	return &SubmissionRepo{db: db}
}

// Insert records a new running submission and returns its id.
func (r *SubmissionRepo) Insert(sourceURL, style string) (string, error) {
	id := uuid.NewString()

	_, err := r.db.Exec(`
		INSERT INTO submissions (id, source_url, style, status, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, id, sourceURL, style, StatusRunning, time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("failed to insert submission: %w", err)
	}

	return id, nil
}

// Complete marks a submission as succeeded with its pipeline output.
func (r *SubmissionRepo) Complete(id, entryID, imageURL string) error {
	_, err := r.db.Exec(`
		UPDATE submissions
		SET status = ?, entry_id = ?, image_url = ?, completed_at = ?
		WHERE id = ?
	`, StatusSucceeded, entryID, imageURL, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to complete submission: %w", err)
	}

	return nil
}

// Fail marks a submission as failed, recording the failure reason.
func (r *SubmissionRepo) Fail(id string, failure error) error {
	message := ""
	if failure != nil {
		message = failure.Error()
	}

	_, err := r.db.Exec(`
		UPDATE submissions
		SET status = ?, error = ?, completed_at = ?
		WHERE id = ?
	`, StatusFailed, message, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to mark submission failed: %w", err)
	}

	return nil
}

func (r *SubmissionRepo) GetByID(id string) (*Submission, error) {
	row := r.db.QueryRow(`
		SELECT id, source_url, style, status, entry_id, image_url, error, created_at, completed_at
		FROM submissions
		WHERE id = ?
	`, id)

	return scanSubmission(row)
}

// GetLatestBySourceURL returns the most recent submission for a source
// URL, or nil when none exists.
func (r *SubmissionRepo) GetLatestBySourceURL(sourceURL string) (*Submission, error) {
	row := r.db.QueryRow(`
		SELECT id, source_url, style, status, entry_id, image_url, error, created_at, completed_at
		FROM submissions
		WHERE source_url = ?
		ORDER BY created_at DESC
		LIMIT 1
	`, sourceURL)

	return scanSubmission(row)
}

// HasSucceeded reports whether any submission for the source URL has
// completed successfully. Used by the source watcher to skip already
// ingested article links.
func (r *SubmissionRepo) HasSucceeded(sourceURL string) (bool, error) {
	var count int
	err := r.db.QueryRow(`
		SELECT COUNT(*) FROM submissions WHERE source_url = ? AND status = ?
	`, sourceURL, StatusSucceeded).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check submission history: %w", err)
	}

	return count > 0, nil
}

func (r *SubmissionRepo) Count() (int, error) {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM submissions`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count submissions: %w", err)
	}
	return count, nil
}

func (r *SubmissionRepo) CountByStatus(status string) (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM submissions WHERE status = ?`, status).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count submissions by status: %w", err)
	}
	return count, nil
}

func (r *SubmissionRepo) GetRecent(limit int) ([]Submission, error) {
	rows, err := r.db.Query(`
		SELECT id, source_url, style, status, entry_id, image_url, error, created_at, completed_at
		FROM submissions
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent submissions: %w", err)
	}
	defer rows.Close()

	var submissions []Submission
	for rows.Next() {
		var s Submission
		var completedAt sql.NullTime
		err := rows.Scan(&s.ID, &s.SourceURL, &s.Style, &s.Status, &s.EntryID,
			&s.ImageURL, &s.Error, &s.CreatedAt, &completedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan submission: %w", err)
		}
		if completedAt.Valid {
			s.CompletedAt = &completedAt.Time
		}
		submissions = append(submissions, s)
	}

	return submissions, rows.Err()
}

func scanSubmission(row *sql.Row) (*Submission, error) {
	var s Submission
	var completedAt sql.NullTime

	err := row.Scan(&s.ID, &s.SourceURL, &s.Style, &s.Status, &s.EntryID,
		&s.ImageURL, &s.Error, &s.CreatedAt, &completedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan submission: %w", err)
	}

	if completedAt.Valid {
		s.CompletedAt = &completedAt.Time
	}

	return &s, nil
}
