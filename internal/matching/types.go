// Package matching scores resumes against job postings and ranks the results.
package matching

import (
	"math"
	"time"

	"placement-backend/internal/jobs"
	"placement-backend/internal/resumes"
)

// WarningSemanticUnavailable is attached to a ranking when embeddings could not
// be computed for at least one pair.
const WarningSemanticUnavailable = "semantic_unavailable"

// Scores holds every dimension of one resume/job pair. All values are in [0,1].
// Semantic is nil when the embedding backend was unavailable for the pair.
type Scores struct {
	Overall    float64  `json:"overall_match"`
	Technical  float64  `json:"technical_match"`
	Semantic   *float64 `json:"semantic_match,omitempty"`
	TFIDF      float64  `json:"tfidf_similarity"`
	BM25       float64  `json:"bm25_score"`
	SoftSkills float64  `json:"soft_skills_match"`
	Experience float64  `json:"experience_match"`
}

// SemanticAvailable reports whether the semantic dimension was computed.
func (s Scores) SemanticAvailable() bool {
	return s.Semantic != nil
}

// Rounded returns a copy with every value rounded to four decimals for the wire.
func (s Scores) Rounded() Scores {
	out := Scores{
		Overall:    Round4(s.Overall),
		Technical:  Round4(s.Technical),
		TFIDF:      Round4(s.TFIDF),
		BM25:       Round4(s.BM25),
		SoftSkills: Round4(s.SoftSkills),
		Experience: Round4(s.Experience),
	}
	if s.Semantic != nil {
		v := Round4(*s.Semantic)
		out.Semantic = &v
	}
	return out
}

// JobMatch is one job scored against a resume.
type JobMatch struct {
	Job           jobs.Posting
	Scores        Scores
	MatchedSkills []string
	MissingSkills []string
	Error         string
}

// Applicant is one resume competing for a job.
type Applicant struct {
	ID        string
	Resume    resumes.Document
	AppliedAt time.Time
}

// ApplicantMatch is one applicant scored against a job.
type ApplicantMatch struct {
	Applicant     Applicant
	Scores        Scores
	MatchedSkills []string
	MissingSkills []string
	Error         string
}

// Ranking is an ordered result set plus warnings about degraded scoring.
type Ranking[T any] struct {
	Results  []T
	Warnings []string
}

// Round4 rounds v to four decimal places.
func Round4(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v) || v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
