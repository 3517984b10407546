package jobs

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var jobColumns = []string{"id", "name", "position", "description", "requirements", "location", "salary_min", "salary_max", "hr_email", "hr_code", "created_at"}

func TestPGRepoListByHRCode(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	created := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("FROM jobs\\s+WHERE hr_code = \\$1").
		WithArgs("ACME").
		WillReturnRows(sqlmock.NewRows(jobColumns).
			AddRow("j1", "Acme", "Go Developer", "Build APIs", "Go", "Pune", 500000.0, nil, "hr@acme.test", "ACME", created))

	repo := &PGRepo{DB: db}
	postings, err := repo.ListByHRCode(context.Background(), "ACME")
	require.NoError(t, err)
	require.Len(t, postings, 1)
	p := postings[0]
	assert.Equal(t, "j1", p.ID)
	require.NotNil(t, p.SalaryMin)
	assert.Equal(t, 500000.0, *p.SalaryMin)
	assert.Nil(t, p.SalaryMax)
	assert.Equal(t, "ACME", p.HRCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectQuery("FROM jobs\\s+WHERE id = \\$1").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	repo := &PGRepo{DB: db}
	_, err = repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
