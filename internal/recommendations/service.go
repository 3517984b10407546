package recommendations

import (
	"context"

	"placement-backend/internal/jobs"
	"placement-backend/internal/matching"
	"placement-backend/internal/resumes"
	"placement-backend/internal/shared/auth"
	"placement-backend/internal/shared/telemetry"
)

// Service recommends open jobs for a resume.
type Service struct {
	Jobs     *jobs.Service
	Ranker   *matching.Ranker
	Defaults Options
}

// NewService constructs a Service.
func NewService(jobsSvc *jobs.Service, ranker *matching.Ranker, defaults Options) *Service {
	return &Service{Jobs: jobsSvc, Ranker: ranker, Defaults: defaults.withDefaults()}
}

// Recommend ranks the visible catalog against resume and keeps the jobs
// scoring at least opts.MinScore, best first, up to opts.Limit.
func (s *Service) Recommend(ctx context.Context, id auth.Identity, resume resumes.Document, filter jobs.Filter, opts Options) (Result, error) {
	opts = opts.withDefaults()

	postings, err := s.Jobs.Browse(ctx, id, filter)
	if err != nil {
		return Result{}, err
	}
	candidates := postings[:0:0]
	for _, p := range postings {
		if p.HasText() {
			candidates = append(candidates, p)
		}
	}
	if len(candidates) == 0 {
		return Result{Jobs: []Item{}, Message: MessageNoJobs}, nil
	}

	ranking, err := s.Ranker.RankJobs(ctx, resume, candidates)
	if err != nil {
		return Result{}, err
	}

	out := Result{Jobs: []Item{}, Warnings: ranking.Warnings}
	for _, m := range ranking.Results {
		if len(out.Jobs) >= opts.Limit {
			break
		}
		if m.Error != "" || m.Scores.Overall < opts.MinScore {
			continue
		}
		out.Jobs = append(out.Jobs, newItem(m))
	}
	if len(out.Jobs) == 0 {
		out.Message = MessageNoMatch
	}

	telemetry.Info("recommendations.served", map[string]any{
		"user_id":    id.UserID,
		"resume_id":  resume.ID,
		"candidates": len(candidates),
		"returned":   len(out.Jobs),
		"min_score":  opts.MinScore,
	})
	return out, nil
}
