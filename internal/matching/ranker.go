package matching

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"placement-backend/internal/jobs"
	"placement-backend/internal/resumes"
	"placement-backend/internal/shared/metrics"
	"placement-backend/internal/shared/telemetry"
)

// DefaultConcurrency is the number of pairs scored in parallel.
const DefaultConcurrency = 8

// Ranker scores pairs with bounded concurrency. The zero value works without
// embeddings.
type Ranker struct {
	Embedder         Embedder
	EmbeddingTimeout time.Duration
	Concurrency      int
}

// NewRanker constructs a Ranker. A nil embedder runs in lexical-only mode.
func NewRanker(embedder Embedder, embeddingTimeout time.Duration, concurrency int) *Ranker {
	return &Ranker{Embedder: embedder, EmbeddingTimeout: embeddingTimeout, Concurrency: concurrency}
}

type pairResult struct {
	scores  Scores
	matched []string
	missing []string
	err     string
}

// RankJobs scores every posting against one resume. The result is a
// permutation of postings ordered by overall score, then newest posting, then ID.
func (r *Ranker) RankJobs(ctx context.Context, resume resumes.Document, postings []jobs.Posting) (Ranking[JobMatch], error) {
	start := time.Now()
	metrics.IncRankingRequests()
	if err := ctx.Err(); err != nil {
		return Ranking[JobMatch]{}, err
	}
	if len(postings) == 0 {
		return Ranking[JobMatch]{Results: []JobMatch{}}, nil
	}

	texts := make([]string, len(postings))
	for i, p := range postings {
		texts[i] = p.Text()
	}
	corpus := NewCorpus(texts, []string{resume.RawText})
	warns := &warnings{}

	resumeVec, semanticReady := embedWithTimeout(ctx, r.Embedder, resume.RawText, r.EmbeddingTimeout)
	if err := ctx.Err(); err != nil {
		return Ranking[JobMatch]{}, err
	}

	results := make([]JobMatch, len(postings))
	err := r.run(ctx, len(postings), func(gctx context.Context, i int) {
		res := r.scorePair(postings[i].ID, resume.ID, func() pairResult {
			var semantic *float64
			if semanticReady {
				if jobVec, ok := embedWithTimeout(gctx, r.Embedder, texts[i], r.EmbeddingTimeout); ok {
					v := cosine32(resumeVec, jobVec)
					semantic = &v
				}
			}
			return score(corpus, i, 0, postings[i], resume, semantic)
		})
		if res.err == "" && res.scores.Semantic == nil {
			warns.add(WarningSemanticUnavailable)
		}
		results[i] = JobMatch{
			Job:           postings[i],
			Scores:        res.scores,
			MatchedSkills: res.matched,
			MissingSkills: res.missing,
			Error:         res.err,
		}
	})
	if err != nil {
		return Ranking[JobMatch]{}, err
	}

	sort.SliceStable(results, func(i, j int) bool { return jobBefore(results[i], results[j]) })

	r.finish("matching.rank_jobs", start, len(postings), warns, map[string]any{"resume_id": resume.ID})
	return Ranking[JobMatch]{Results: results, Warnings: warns.list()}, nil
}

// RankApplicants scores every applicant's resume against one job. Ties go to
// the earlier application, then the smaller ID.
func (r *Ranker) RankApplicants(ctx context.Context, job jobs.Posting, applicants []Applicant) (Ranking[ApplicantMatch], error) {
	start := time.Now()
	metrics.IncRankingRequests()
	if err := ctx.Err(); err != nil {
		return Ranking[ApplicantMatch]{}, err
	}
	if len(applicants) == 0 {
		return Ranking[ApplicantMatch]{Results: []ApplicantMatch{}}, nil
	}

	texts := make([]string, len(applicants))
	for i, a := range applicants {
		texts[i] = a.Resume.RawText
	}
	jobText := job.Text()
	corpus := NewCorpus([]string{jobText}, texts)
	warns := &warnings{}

	jobVec, semanticReady := embedWithTimeout(ctx, r.Embedder, jobText, r.EmbeddingTimeout)
	if err := ctx.Err(); err != nil {
		return Ranking[ApplicantMatch]{}, err
	}

	results := make([]ApplicantMatch, len(applicants))
	err := r.run(ctx, len(applicants), func(gctx context.Context, i int) {
		a := applicants[i]
		res := r.scorePair(job.ID, a.ID, func() pairResult {
			var semantic *float64
			if semanticReady {
				if resumeVec, ok := embedWithTimeout(gctx, r.Embedder, texts[i], r.EmbeddingTimeout); ok {
					v := cosine32(resumeVec, jobVec)
					semantic = &v
				}
			}
			return score(corpus, 0, i, job, a.Resume, semantic)
		})
		if res.err == "" && res.scores.Semantic == nil {
			warns.add(WarningSemanticUnavailable)
		}
		results[i] = ApplicantMatch{
			Applicant:     a,
			Scores:        res.scores,
			MatchedSkills: res.matched,
			MissingSkills: res.missing,
			Error:         res.err,
		}
	})
	if err != nil {
		return Ranking[ApplicantMatch]{}, err
	}

	sort.SliceStable(results, func(i, j int) bool { return applicantBefore(results[i], results[j]) })

	r.finish("matching.rank_applicants", start, len(applicants), warns, map[string]any{"job_id": job.ID})
	return Ranking[ApplicantMatch]{Results: results, Warnings: warns.list()}, nil
}

// Score rates a single pair without a surrounding batch. TF-IDF and BM25 are
// fit on the pair alone.
func (r *Ranker) Score(ctx context.Context, resume resumes.Document, job jobs.Posting) (Scores, []string, error) {
	ranking, err := r.RankJobs(ctx, resume, []jobs.Posting{job})
	if err != nil {
		return Scores{}, nil, err
	}
	return ranking.Results[0].Scores, ranking.Warnings, nil
}

// run fans n pair computations out over an errgroup. Cancellation of ctx
// aborts the batch and its partial results.
func (r *Ranker) run(ctx context.Context, n int, fn func(ctx context.Context, i int)) error {
	limit := r.Concurrency
	if limit <= 0 {
		limit = DefaultConcurrency
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fn(gctx, i)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// jobBefore orders on the unrounded overall score, then newest posting, then ID.
func jobBefore(a, b JobMatch) bool {
	if a.Scores.Overall != b.Scores.Overall {
		return a.Scores.Overall > b.Scores.Overall
	}
	if !a.Job.CreatedAt.Equal(b.Job.CreatedAt) {
		return a.Job.CreatedAt.After(b.Job.CreatedAt)
	}
	return a.Job.ID < b.Job.ID
}

func applicantBefore(a, b ApplicantMatch) bool {
	if a.Scores.Overall != b.Scores.Overall {
		return a.Scores.Overall > b.Scores.Overall
	}
	if !a.Applicant.AppliedAt.Equal(b.Applicant.AppliedAt) {
		return a.Applicant.AppliedAt.Before(b.Applicant.AppliedAt)
	}
	return a.Applicant.ID < b.Applicant.ID
}

// scorePair recovers a failing pair into a zero score so the batch continues.
func (r *Ranker) scorePair(jobID, resumeID string, fn func() pairResult) (res pairResult) {
	defer func() {
		if rec := recover(); rec != nil {
			metrics.IncPairFailures()
			telemetry.Error("matching.pair_failed", map[string]any{
				"job_id":    jobID,
				"resume_id": resumeID,
				"panic":     fmt.Sprint(rec),
			})
			res = pairResult{err: fmt.Sprintf("scoring failed: %v", rec)}
		}
	}()
	return fn()
}

func score(c *Corpus, job, resume int, posting jobs.Posting, doc resumes.Document, semantic *float64) pairResult {
	technical, matched, missing := technicalMatch(posting, doc)
	s := Aggregate(Scores{
		Technical:  technical,
		Semantic:   semantic,
		TFIDF:      c.TFIDF(job, resume),
		BM25:       c.BM25(job, resume),
		SoftSkills: softSkillsMatch(posting, doc),
		Experience: experienceMatch(posting, doc),
	})
	return pairResult{scores: s, matched: matched, missing: missing}
}

func (r *Ranker) finish(event string, start time.Time, pairs int, warns *warnings, fields map[string]any) {
	elapsed := metrics.SinceMillis(start)
	metrics.AddPairsScored(pairs)
	metrics.ObserveRankingDurationMs(elapsed)
	fields["pairs"] = pairs
	fields["duration_ms"] = elapsed
	if list := warns.list(); len(list) > 0 {
		fields["warnings"] = list
	}
	telemetry.Info(event, fields)
}

type warnings struct {
	mu  sync.Mutex
	set map[string]struct{}
}

func (w *warnings) add(msg string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.set == nil {
		w.set = map[string]struct{}{}
	}
	w.set[msg] = struct{}{}
}

func (w *warnings) list() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.set) == 0 {
		return nil
	}
	out := make([]string, 0, len(w.set))
	for k := range w.set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
