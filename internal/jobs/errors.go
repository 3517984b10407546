package jobs

import "errors"

var (
	ErrNotFound       = errors.New("job not found")
	ErrInvalidPosting = errors.New("invalid job posting")
)

const (
	CodeNotFound = "job_not_found"
)
