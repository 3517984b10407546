package workerproc

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"

	"placement-backend/internal/jobs"
	"placement-backend/internal/queue"
)

// Rescorer recomputes the stored scores of a job's applications.
type Rescorer interface {
	Rescore(ctx context.Context, jobID string) (int, error)
}

// MessageMeta captures details useful for logging and diagnostics.
type MessageMeta struct {
	BodyLen int
	BodySHA string
}

// ComputeMeta returns the body length and SHA-256 hash.
func ComputeMeta(body string) MessageMeta {
	if body == "" {
		return MessageMeta{BodyLen: 0, BodySHA: ""}
	}
	sum := sha256.Sum256([]byte(body))
	return MessageMeta{BodyLen: len(body), BodySHA: hex.EncodeToString(sum[:])}
}

// ErrEmptyBody indicates an empty queue payload.
type ErrEmptyBody struct {
	Meta MessageMeta
}

func (e ErrEmptyBody) Error() string { return "empty message body" }

// ErrDecode indicates a JSON decode failure.
type ErrDecode struct {
	Meta MessageMeta
	Err  error
}

func (e ErrDecode) Error() string {
	if e.Err == nil {
		return "decode message"
	}
	return "decode message: " + e.Err.Error()
}

func (e ErrDecode) Unwrap() error { return e.Err }

// ErrMissingJobID indicates a message without a job id.
type ErrMissingJobID struct {
	Meta      MessageMeta
	RequestID string
}

func (e ErrMissingJobID) Error() string { return "missing job id" }

// ErrProcess indicates rescoring failed after successful parsing.
type ErrProcess struct {
	JobID     string
	RequestID string
	Err       error
}

func (e ErrProcess) Error() string {
	if e.Err == nil {
		return "rescore job"
	}
	return "rescore job: " + e.Err.Error()
}

func (e ErrProcess) Unwrap() error { return e.Err }

// ParseMessage validates and decodes the queue payload.
func ParseMessage(body string) (queue.Message, MessageMeta, error) {
	meta := ComputeMeta(body)
	if strings.TrimSpace(body) == "" {
		return queue.Message{}, meta, ErrEmptyBody{Meta: meta}
	}

	msg, err := queue.DecodeMessage([]byte(body))
	if err != nil {
		return queue.Message{}, meta, ErrDecode{Meta: meta, Err: err}
	}
	if strings.TrimSpace(msg.JobID) == "" {
		return msg, meta, ErrMissingJobID{Meta: meta, RequestID: msg.RequestID}
	}
	return msg, meta, nil
}

type parsedMessageKey struct{}

// WithParsedMessage stores a decoded message in the context for reuse.
func WithParsedMessage(ctx context.Context, msg queue.Message) context.Context {
	return context.WithValue(ctx, parsedMessageKey{}, msg)
}

func parsedMessageFromContext(ctx context.Context) (queue.Message, bool) {
	if ctx == nil {
		return queue.Message{}, false
	}
	msg, ok := ctx.Value(parsedMessageKey{}).(queue.Message)
	return msg, ok
}

// HandleMessage parses, validates, and rescores the job named by the payload.
// It returns the number of applications updated.
func HandleMessage(ctx context.Context, rescorer Rescorer, body string) (int, error) {
	if rescorer == nil {
		return 0, errors.New("applications service not configured")
	}

	msg, ok := parsedMessageFromContext(ctx)
	if !ok {
		var err error
		msg, _, err = ParseMessage(body)
		if err != nil {
			return 0, err
		}
	}

	if strings.TrimSpace(msg.JobID) == "" {
		return 0, ErrMissingJobID{Meta: ComputeMeta(body), RequestID: msg.RequestID}
	}

	n, err := rescorer.Rescore(ctx, msg.JobID)
	if err != nil {
		return 0, ErrProcess{JobID: msg.JobID, RequestID: msg.RequestID, Err: err}
	}
	return n, nil
}

// Unrecoverable reports whether retrying the message can never succeed, so it
// should be deleted rather than left for redelivery.
func Unrecoverable(err error) bool {
	if err == nil {
		return false
	}
	var empty ErrEmptyBody
	var decode ErrDecode
	var missing ErrMissingJobID
	return errors.As(err, &empty) ||
		errors.As(err, &decode) ||
		errors.As(err, &missing) ||
		errors.Is(err, jobs.ErrNotFound)
}
