package jobs

import (
	"fmt"
	"strconv"
	"strings"
)

// Filter narrows a posting list by salary and location.
type Filter struct {
	SalaryMin *float64
	SalaryMax *float64
	Location  string
}

// ParseFilter reads raw query values. Malformed values are dropped and
// reported as warnings instead of failing the request.
func ParseFilter(salaryMin, salaryMax, location string) (Filter, []string) {
	var f Filter
	var warnings []string

	if v, ok, warn := parseAmount("salary_min", salaryMin); ok {
		f.SalaryMin = &v
	} else if warn != "" {
		warnings = append(warnings, warn)
	}
	if v, ok, warn := parseAmount("salary_max", salaryMax); ok {
		f.SalaryMax = &v
	} else if warn != "" {
		warnings = append(warnings, warn)
	}
	if f.SalaryMin != nil && f.SalaryMax != nil && *f.SalaryMin > *f.SalaryMax {
		warnings = append(warnings, "salary_min exceeds salary_max; salary filters ignored")
		f.SalaryMin, f.SalaryMax = nil, nil
	}
	f.Location = strings.TrimSpace(location)
	return f, warnings
}

func parseAmount(name, raw string) (float64, bool, string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false, ""
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		return 0, false, fmt.Sprintf("ignored invalid %s %q", name, raw)
	}
	return v, true, ""
}

// IsZero reports whether the filter keeps everything.
func (f Filter) IsZero() bool {
	return f.SalaryMin == nil && f.SalaryMax == nil && f.Location == ""
}

// Apply returns the postings that pass the filter, preserving order.
// Postings without salary data are excluded whenever a salary bound is set.
func (f Filter) Apply(postings []Posting) []Posting {
	out := make([]Posting, 0, len(postings))
	location := strings.ToLower(f.Location)
	for _, p := range postings {
		if f.SalaryMin != nil {
			upper := p.SalaryMax
			if upper == nil {
				upper = p.SalaryMin
			}
			if upper == nil || *upper < *f.SalaryMin {
				continue
			}
		}
		if f.SalaryMax != nil {
			lower := p.SalaryMin
			if lower == nil {
				lower = p.SalaryMax
			}
			if lower == nil || *lower > *f.SalaryMax {
				continue
			}
		}
		if location != "" && !strings.Contains(strings.ToLower(p.Location), location) {
			continue
		}
		out = append(out, p)
	}
	return out
}
