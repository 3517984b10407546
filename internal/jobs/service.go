package jobs

import (
	"context"

	"placement-backend/internal/shared/auth"
)

// Service answers catalog queries on behalf of a caller.
type Service struct {
	Repo Repo
}

// NewService constructs a Service.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// Visible returns the postings the caller may see. HR users only see
// postings carrying their own hr_code.
func (s *Service) Visible(ctx context.Context, id auth.Identity) ([]Posting, error) {
	if id.Role == auth.RoleHR {
		if id.HRCode == "" {
			return []Posting{}, nil
		}
		return s.Repo.ListByHRCode(ctx, id.HRCode)
	}
	return s.Repo.List(ctx)
}

// Browse lists visible postings narrowed by the filter.
func (s *Service) Browse(ctx context.Context, id auth.Identity, f Filter) ([]Posting, error) {
	postings, err := s.Visible(ctx, id)
	if err != nil {
		return nil, err
	}
	return f.Apply(postings), nil
}

// Get returns a single posting.
func (s *Service) Get(ctx context.Context, jobID string) (Posting, error) {
	return s.Repo.GetByID(ctx, jobID)
}
