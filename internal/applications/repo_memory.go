package applications

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo stores applications in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu   sync.RWMutex
	byID map[string]Application
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[string]Application)}
}

func (r *MemoryRepo) Create(ctx context.Context, app Application) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.JobID == app.JobID && existing.UserID == app.UserID {
			return ErrConflict
		}
	}
	r.byID[app.ID] = app
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Application, error) {
	if err := ctx.Err(); err != nil {
		return Application{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	app, ok := r.byID[id]
	if !ok {
		return Application{}, ErrNotFound
	}
	return app, nil
}

func (r *MemoryRepo) Exists(ctx context.Context, jobID, userID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, app := range r.byID {
		if app.JobID == jobID && app.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *MemoryRepo) ListByJob(ctx context.Context, jobID string) ([]Application, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Application
	for _, app := range r.byID {
		if app.JobID == jobID {
			out = append(out, app)
		}
	}
	sortByAppliedAt(out)
	return out, nil
}

func (r *MemoryRepo) UpdateStatus(ctx context.Context, id, status string, at time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	app, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	if app.Status != StatusPending {
		return ErrInvalidTransition
	}
	app.Status = status
	app.UpdatedAt = at
	r.byID[id] = app
	return nil
}

func (r *MemoryRepo) UpdateScores(ctx context.Context, id string, scores Scores, at time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	app, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	app.Scores = scores
	app.UpdatedAt = at
	r.byID[id] = app
	return nil
}

func (r *MemoryRepo) DeleteRejected(ctx context.Context, jobIDs []string) ([]Application, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	jobs := make(map[string]struct{}, len(jobIDs))
	for _, id := range jobIDs {
		jobs[id] = struct{}{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var removed []Application
	for id, app := range r.byID {
		if _, ok := jobs[app.JobID]; !ok || app.Status != StatusRejected {
			continue
		}
		removed = append(removed, app)
		delete(r.byID, id)
	}
	sortByAppliedAt(removed)
	return removed, nil
}

func sortByAppliedAt(apps []Application) {
	sort.Slice(apps, func(i, j int) bool {
		if !apps[i].AppliedAt.Equal(apps[j].AppliedAt) {
			return apps[i].AppliedAt.Before(apps[j].AppliedAt)
		}
		return apps[i].ID < apps[j].ID
	})
}

var _ Repo = (*MemoryRepo)(nil)
