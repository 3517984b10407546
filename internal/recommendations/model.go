package recommendations

import "placement-backend/internal/matching"

const (
	DefaultMinScore = 0.30
	DefaultLimit    = 5
	MaxLimit        = 50

	MessageNoJobs  = "No jobs available"
	MessageNoMatch = "No jobs matched your resume above the minimum score"
)

// Options tune which ranked jobs are presented.
type Options struct {
	MinScore float64
	Limit    int
}

// Item is one recommended job as returned to the student.
type Item struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Position      string          `json:"position"`
	Description   string          `json:"description"`
	Requirements  string          `json:"requirements"`
	Location      string          `json:"location"`
	SalaryMin     *float64        `json:"salary_min"`
	SalaryMax     *float64        `json:"salary_max"`
	MatchDetails  matching.Scores `json:"match_details"`
	MatchedSkills []string        `json:"matched_skills,omitempty"`
	MissingSkills []string        `json:"missing_skills,omitempty"`
}

// Result is the recommendations payload. Jobs is never nil.
type Result struct {
	Jobs     []Item   `json:"jobs"`
	Warnings []string `json:"warnings,omitempty"`
	Message  string   `json:"message,omitempty"`
}

func newItem(m matching.JobMatch) Item {
	p := m.Job
	return Item{
		ID:            p.ID,
		Name:          p.Name,
		Position:      p.Position,
		Description:   p.Description,
		Requirements:  p.Requirements,
		Location:      p.Location,
		SalaryMin:     p.SalaryMin,
		SalaryMax:     p.SalaryMax,
		MatchDetails:  m.Scores.Rounded(),
		MatchedSkills: m.MatchedSkills,
		MissingSkills: m.MissingSkills,
	}
}

