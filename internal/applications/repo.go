package applications

import (
	"context"
	"time"
)

// Repo persists applications.
type Repo interface {
	// Create fails with ErrConflict when the user already applied to the job.
	Create(ctx context.Context, app Application) error
	GetByID(ctx context.Context, id string) (Application, error)
	Exists(ctx context.Context, jobID, userID string) (bool, error)
	ListByJob(ctx context.Context, jobID string) ([]Application, error)
	// UpdateStatus moves a pending application to status. It fails with
	// ErrInvalidTransition when the application is no longer pending.
	UpdateStatus(ctx context.Context, id, status string, at time.Time) error
	UpdateScores(ctx context.Context, id string, scores Scores, at time.Time) error
	// DeleteRejected removes rejected applications of the given jobs and returns them.
	DeleteRejected(ctx context.Context, jobIDs []string) ([]Application, error)
}
