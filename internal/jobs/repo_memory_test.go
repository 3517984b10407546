package jobs

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepoOrdersNewestFirst(t *testing.T) {
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	repo := NewMemoryRepo(
		Posting{ID: "old", HRCode: "HR1", CreatedAt: now.Add(-time.Hour)},
		Posting{ID: "new", HRCode: "HR2", CreatedAt: now},
		Posting{ID: "tie", HRCode: "HR1", CreatedAt: now},
	)

	all, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"new", "tie", "old"}, ids(all))

	mine, err := repo.ListByHRCode(context.Background(), "HR1")
	require.NoError(t, err)
	assert.Equal(t, []string{"tie", "old"}, ids(mine))

	_, err = repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoadSeedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "jobs.json")
	seed := `[{"id":"j1","name":"Acme","position":"Go Developer","requirements":"Go, PostgreSQL","salary_min":500000,"salary_max":800000,"hr_code":"ACME","created_at":"2025-01-02T00:00:00Z"}]`
	require.NoError(t, os.WriteFile(path, []byte(seed), 0o600))

	postings, err := LoadSeedFile(path)
	require.NoError(t, err)
	require.Len(t, postings, 1)
	assert.Equal(t, "Go Developer", postings[0].Position)
	require.NotNil(t, postings[0].SalaryMax)
	assert.Equal(t, 800000.0, *postings[0].SalaryMax)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`[{"id":"j2","salary_min":9,"salary_max":1}]`), 0o600))
	_, err = LoadSeedFile(bad)
	assert.ErrorIs(t, err, ErrInvalidPosting)
}
