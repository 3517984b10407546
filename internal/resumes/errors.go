package resumes

import (
	"fmt"

	"placement-backend/internal/extract"
)

var (
	ErrUnsupportedFormat = extract.ErrUnsupportedFormat
	ErrParse             = extract.ErrParse
	ErrTooShort          = fmt.Errorf("%w: extracted text too short", extract.ErrParse)
	ErrParseTimeout      = fmt.Errorf("%w: parser timed out", extract.ErrParse)
)

const (
	CodeUnsupportedFormat = "unsupported_format"
	CodeParseError        = "parse_error"
)
