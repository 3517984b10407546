package applications

import "errors"

var (
	ErrNotFound          = errors.New("application not found")
	ErrConflict          = errors.New("already applied to this job")
	ErrInvalidStatus     = errors.New("status must be one of pending, accepted, rejected")
	ErrInvalidTransition = errors.New("only pending applications can change status")
	ErrForbidden         = errors.New("not allowed to manage this job's applications")
	ErrMissingHRCode     = errors.New("hr code not found on account")
	ErrResumeNotStored   = errors.New("resume file not stored for this application")
)
