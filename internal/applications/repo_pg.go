package applications

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

// PGRepo implements Repo using Postgres. Scores are stored as JSONB.
type PGRepo struct {
	DB *sql.DB
}

const selectColumns = `
SELECT id, job_id, user_id, user_email, resume_id, resume_key, resume_text, scores, status, applied_at, updated_at
FROM applications`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanApplication(row rowScanner) (Application, error) {
	var app Application
	var scores []byte
	err := row.Scan(
		&app.ID,
		&app.JobID,
		&app.UserID,
		&app.UserEmail,
		&app.ResumeID,
		&app.ResumeKey,
		&app.ResumeText,
		&scores,
		&app.Status,
		&app.AppliedAt,
		&app.UpdatedAt,
	)
	if err != nil {
		return Application{}, err
	}
	if len(scores) > 0 {
		if err := json.Unmarshal(scores, &app.Scores); err != nil {
			return Application{}, fmt.Errorf("decode scores for %s: %w", app.ID, err)
		}
	}
	return app, nil
}

// Create inserts a new application.
func (r *PGRepo) Create(ctx context.Context, app Application) error {
	const query = `
INSERT INTO applications (
    id,
    job_id,
    user_id,
    user_email,
    resume_id,
    resume_key,
    resume_text,
    scores,
    status,
    applied_at,
    updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8::jsonb, $9, $10, $11)`

	scores, err := json.Marshal(app.Scores)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(
		ctx,
		query,
		app.ID,
		app.JobID,
		app.UserID,
		app.UserEmail,
		app.ResumeID,
		app.ResumeKey,
		app.ResumeText,
		string(scores),
		app.Status,
		app.AppliedAt,
		app.UpdatedAt,
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrConflict
	}
	return err
}

// GetByID fetches an application.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Application, error) {
	row := r.DB.QueryRowContext(ctx, selectColumns+`
WHERE id = $1
LIMIT 1`, id)
	app, err := scanApplication(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Application{}, ErrNotFound
		}
		return Application{}, err
	}
	return app, nil
}

// Exists reports whether userID already applied to jobID.
func (r *PGRepo) Exists(ctx context.Context, jobID, userID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM applications WHERE job_id = $1 AND user_id = $2)`
	var exists bool
	if err := r.DB.QueryRowContext(ctx, query, jobID, userID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// ListByJob returns the applications of a job, earliest first.
func (r *PGRepo) ListByJob(ctx context.Context, jobID string) ([]Application, error) {
	rows, err := r.DB.QueryContext(ctx, selectColumns+`
WHERE job_id = $1
ORDER BY applied_at ASC, id ASC`, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, app)
	}
	return out, rows.Err()
}

// UpdateStatus moves a pending application to status.
func (r *PGRepo) UpdateStatus(ctx context.Context, id, status string, at time.Time) error {
	const query = `
UPDATE applications
SET status = $1, updated_at = $2
WHERE id = $3 AND status = 'pending'`

	res, err := r.DB.ExecContext(ctx, query, status, at, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return ErrInvalidTransition
}

// UpdateScores replaces the stored scores.
func (r *PGRepo) UpdateScores(ctx context.Context, id string, scores Scores, at time.Time) error {
	const query = `
UPDATE applications
SET scores = $1::jsonb, updated_at = $2
WHERE id = $3`

	payload, err := json.Marshal(scores)
	if err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx, query, string(payload), at, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteRejected removes rejected applications of jobIDs in one statement.
func (r *PGRepo) DeleteRejected(ctx context.Context, jobIDs []string) ([]Application, error) {
	if len(jobIDs) == 0 {
		return nil, nil
	}
	placeholders := make([]string, len(jobIDs))
	args := make([]any, len(jobIDs))
	for i, id := range jobIDs {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}
	query := `
DELETE FROM applications
WHERE status = 'rejected' AND job_id IN (` + strings.Join(placeholders, ", ") + `)
RETURNING id, job_id, user_id, resume_key`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Application
	for rows.Next() {
		var app Application
		if err := rows.Scan(&app.ID, &app.JobID, &app.UserID, &app.ResumeKey); err != nil {
			return nil, err
		}
		app.Status = StatusRejected
		out = append(out, app)
	}
	return out, rows.Err()
}

var _ Repo = (*PGRepo)(nil)
