package applications

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var appColumns = []string{"id", "job_id", "user_id", "user_email", "resume_id", "resume_key", "resume_text", "scores", "status", "applied_at", "updated_at"}

func newMock(t *testing.T) (*PGRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return &PGRepo{DB: db}, mock
}

func TestPGRepoCreateMapsUniqueViolation(t *testing.T) {
	repo, mock := newMock(t)
	at := time.Now().UTC()
	app := Application{ID: "a1", JobID: "j1", UserID: "u1", ResumeText: "text", Status: StatusPending, AppliedAt: at, UpdatedAt: at}

	mock.ExpectExec("INSERT INTO applications").
		WithArgs("a1", "j1", "u1", "", "", "", "text", sqlmock.AnyArg(), StatusPending, at, at).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	assert.ErrorIs(t, repo.Create(context.Background(), app), ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPGRepoListByJobDecodesScores(t *testing.T) {
	repo, mock := newMock(t)
	at := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("FROM applications\\s+WHERE job_id = \\$1").
		WithArgs("j1").
		WillReturnRows(sqlmock.NewRows(appColumns).
			AddRow("a1", "j1", "u1", "s@x.test", "r1", "k1", "resume", []byte(`{"overall_match":0.61,"cosine_similarity":0.4,"semantic_match":0.7}`), StatusPending, at, at))

	apps, err := repo.ListByJob(context.Background(), "j1")
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, 0.61, apps[0].Scores.Overall)
	assert.Equal(t, 0.4, apps[0].Scores.CosineSimilarity)
	require.NotNil(t, apps[0].Scores.Semantic)
	assert.Equal(t, 0.7, *apps[0].Scores.Semantic)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPGRepoUpdateStatusRejectsDecidedApplication(t *testing.T) {
	repo, mock := newMock(t)
	at := time.Now().UTC()

	mock.ExpectExec("UPDATE applications\\s+SET status = \\$1").
		WithArgs(StatusAccepted, at, "a1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("FROM applications\\s+WHERE id = \\$1").
		WithArgs("a1").
		WillReturnRows(sqlmock.NewRows(appColumns).
			AddRow("a1", "j1", "u1", "", "", "", "resume", []byte(`{}`), StatusRejected, at, at))

	assert.ErrorIs(t, repo.UpdateStatus(context.Background(), "a1", StatusAccepted, at), ErrInvalidTransition)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPGRepoDeleteRejected(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery("DELETE FROM applications\\s+WHERE status = 'rejected' AND job_id IN \\(\\$1, \\$2\\)\\s+RETURNING").
		WithArgs("j1", "j2").
		WillReturnRows(sqlmock.NewRows([]string{"id", "job_id", "user_id", "resume_key"}).
			AddRow("a1", "j1", "u1", "k1").
			AddRow("a2", "j2", "u2", ""))

	removed, err := repo.DeleteRejected(context.Background(), []string{"j1", "j2"})
	require.NoError(t, err)
	require.Len(t, removed, 2)
	assert.Equal(t, "k1", removed[0].ResumeKey)
	assert.NoError(t, mock.ExpectationsWereMet())

	none, err := repo.DeleteRejected(context.Background(), nil)
	assert.NoError(t, err)
	assert.Empty(t, none)
}
