package jobs

import "context"

// Repo reads job postings. Creating and editing postings belongs to the TPO tooling.
type Repo interface {
	List(ctx context.Context) ([]Posting, error)
	GetByID(ctx context.Context, id string) (Posting, error)
	ListByHRCode(ctx context.Context, hrCode string) ([]Posting, error)
}
