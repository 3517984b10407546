package applications

import (
	"time"

	"placement-backend/internal/matching"
)

// Application statuses.
const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
)

// Scores is the stored score breakdown of an application. CosineSimilarity is
// the TF-IDF cosine.
type Scores struct {
	CosineSimilarity float64  `json:"cosine_similarity"`
	BM25             float64  `json:"bm25_score"`
	Overall          float64  `json:"overall_match"`
	Technical        float64  `json:"technical_match"`
	SoftSkills       float64  `json:"soft_skills_match"`
	Experience       float64  `json:"experience_match"`
	Semantic         *float64 `json:"semantic_match,omitempty"`
}

// ScoresFrom converts matcher output into the stored shape, rounded for the wire.
func ScoresFrom(s matching.Scores) Scores {
	r := s.Rounded()
	return Scores{
		CosineSimilarity: r.TFIDF,
		BM25:             r.BM25,
		Overall:          r.Overall,
		Technical:        r.Technical,
		SoftSkills:       r.SoftSkills,
		Experience:       r.Experience,
		Semantic:         r.Semantic,
	}
}

// Application is one student's application to one job.
type Application struct {
	ID         string
	JobID      string
	UserID     string
	UserEmail  string
	ResumeID   string
	ResumeKey  string
	ResumeText string
	Scores     Scores
	Status     string
	AppliedAt  time.Time
	UpdatedAt  time.Time
}

// ValidStatus reports whether s is a known status.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

// CheckTransition validates a status change. Only pending applications can be
// decided; accepted and rejected are terminal.
func CheckTransition(from, to string) error {
	if !ValidStatus(to) {
		return ErrInvalidStatus
	}
	if from == StatusPending && (to == StatusAccepted || to == StatusRejected) {
		return nil
	}
	return ErrInvalidTransition
}
