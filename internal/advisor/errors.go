package advisor

import "errors"

var (
	ErrUnavailable   = errors.New("ai backend unavailable")
	ErrEmptyResponse = errors.New("ai backend returned no usable items")
	ErrInvalidInput  = errors.New("invalid input")
	ErrInvalidAction = errors.New("invalid action")
)

const CodeBackendUnavailable = "backend_unavailable"
