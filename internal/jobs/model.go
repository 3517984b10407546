package jobs

import (
	"fmt"
	"strings"
	"time"
)

// Posting is a job opening published by a company through the TPO.
// Postings are read-only to this service.
type Posting struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Position     string    `json:"position"`
	Description  string    `json:"description"`
	Requirements string    `json:"requirements"`
	Location     string    `json:"location"`
	SalaryMin    *float64  `json:"salary_min"`
	SalaryMax    *float64  `json:"salary_max"`
	HREmail      string    `json:"hr_email,omitempty"`
	HRCode       string    `json:"hr_code,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Text is the posting's matchable text: position, description and requirements.
func (p Posting) Text() string {
	parts := make([]string, 0, 3)
	for _, s := range []string{p.Position, p.Description, p.Requirements} {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n")
}

// HasText reports whether the posting has anything to match against.
func (p Posting) HasText() bool {
	return strings.TrimSpace(p.Text()) != ""
}

// Validate checks the salary range invariant.
func (p Posting) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidPosting)
	}
	if p.SalaryMin != nil && *p.SalaryMin < 0 {
		return fmt.Errorf("%w: salary_min must not be negative", ErrInvalidPosting)
	}
	if p.SalaryMin != nil && p.SalaryMax != nil && *p.SalaryMin > *p.SalaryMax {
		return fmt.Errorf("%w: salary_min %.0f exceeds salary_max %.0f", ErrInvalidPosting, *p.SalaryMin, *p.SalaryMax)
	}
	return nil
}
