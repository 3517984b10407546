package jobs

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const selectColumns = `
SELECT id, name, position, description, requirements, location, salary_min, salary_max, hr_email, hr_code, created_at
FROM jobs`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPosting(row rowScanner) (Posting, error) {
	var p Posting
	var location, hrEmail, hrCode sql.NullString
	var salaryMin, salaryMax sql.NullFloat64
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Position,
		&p.Description,
		&p.Requirements,
		&location,
		&salaryMin,
		&salaryMax,
		&hrEmail,
		&hrCode,
		&p.CreatedAt,
	)
	if err != nil {
		return Posting{}, err
	}
	if location.Valid {
		p.Location = location.String
	}
	if salaryMin.Valid {
		v := salaryMin.Float64
		p.SalaryMin = &v
	}
	if salaryMax.Valid {
		v := salaryMax.Float64
		p.SalaryMax = &v
	}
	if hrEmail.Valid {
		p.HREmail = hrEmail.String
	}
	if hrCode.Valid {
		p.HRCode = hrCode.String
	}
	return p, nil
}

// List returns all postings newest first.
func (r *PGRepo) List(ctx context.Context) ([]Posting, error) {
	return r.query(ctx, selectColumns+`
ORDER BY created_at DESC, id ASC`)
}

// GetByID fetches a single posting.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Posting, error) {
	row := r.DB.QueryRowContext(ctx, selectColumns+`
WHERE id = $1
LIMIT 1`, id)
	p, err := scanPosting(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Posting{}, ErrNotFound
		}
		return Posting{}, err
	}
	return p, nil
}

// ListByHRCode returns the postings owned by an HR code.
func (r *PGRepo) ListByHRCode(ctx context.Context, hrCode string) ([]Posting, error) {
	return r.query(ctx, selectColumns+`
WHERE hr_code = $1
ORDER BY created_at DESC, id ASC`, hrCode)
}

func (r *PGRepo) query(ctx context.Context, query string, args ...any) ([]Posting, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Posting
	for rows.Next() {
		p, err := scanPosting(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

var _ Repo = (*PGRepo)(nil)
