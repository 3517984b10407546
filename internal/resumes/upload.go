package resumes

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"placement-backend/internal/shared/server/respond"
)

// MaxUploadSize caps resume uploads.
const MaxUploadSize = 10 << 20 // 10MB

var ErrMissingFile = errors.New("resume file is required")

// Upload is a resume file read from a multipart request.
type Upload struct {
	FileName string
	MimeType string
	Data     []byte
}

// ReadUpload reads the multipart file in field.
func ReadUpload(c *gin.Context, field string) (Upload, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxUploadSize)
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return Upload{}, ErrMissingFile
	}
	f, err := fileHeader.Open()
	if err != nil {
		return Upload{}, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return Upload{}, fmt.Errorf("read upload: %w", err)
	}
	return Upload{
		FileName: fileHeader.Filename,
		MimeType: fileHeader.Header.Get("Content-Type"),
		Data:     data,
	}, nil
}

// NormalizeUpload reads field and normalizes it into a Document, writing the
// error response itself. ok is false when the request has been answered.
func NormalizeUpload(c *gin.Context, n *Normalizer, field string) (Document, Upload, bool) {
	up, err := ReadUpload(c, field)
	if err != nil {
		if errors.Is(err, ErrMissingFile) {
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		} else {
			respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read resume file", nil)
		}
		return Document{}, Upload{}, false
	}
	doc, err := n.Normalize(c.Request.Context(), up.FileName, up.MimeType, up.Data)
	if err != nil {
		WriteError(c, err)
		return Document{}, Upload{}, false
	}
	return doc, up, true
}

// WriteError maps normalizer errors onto the error envelope.
func WriteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrUnsupportedFormat):
		respond.Error(c, http.StatusBadRequest, CodeUnsupportedFormat, err.Error(), nil)
	case errors.Is(err, ErrParse):
		respond.Error(c, http.StatusBadRequest, CodeParseError, err.Error(), nil)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		respond.Error(c, http.StatusRequestTimeout, "request_cancelled", "request cancelled", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to process resume", nil)
	}
}
