package workerproc

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"placement-backend/internal/jobs"
	"placement-backend/internal/queue"
)

type fakeRescorer struct {
	jobIDs []string
	n      int
	err    error
}

func (f *fakeRescorer) Rescore(ctx context.Context, jobID string) (int, error) {
	f.jobIDs = append(f.jobIDs, jobID)
	return f.n, f.err
}

func TestParseMessage(t *testing.T) {
	_, _, err := ParseMessage("   ")
	assert.IsType(t, ErrEmptyBody{}, err)

	_, meta, err := ParseMessage("{oops")
	var decode ErrDecode
	require.ErrorAs(t, err, &decode)
	assert.Equal(t, 5, meta.BodyLen)
	assert.Len(t, meta.BodySHA, 64)

	_, _, err = ParseMessage(`{"requestId":"r-1"}`)
	var missing ErrMissingJobID
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "r-1", missing.RequestID)

	msg, _, err := ParseMessage(`{"jobId":"j-1","requestId":"r-1","version":1}`)
	require.NoError(t, err)
	assert.Equal(t, "j-1", msg.JobID)
}

func TestHandleMessageRescoresJob(t *testing.T) {
	r := &fakeRescorer{n: 3}
	n, err := HandleMessage(context.Background(), r, `{"jobId":"j-1","requestId":"r-1"}`)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, []string{"j-1"}, r.jobIDs)
}

func TestHandleMessageUsesParsedMessage(t *testing.T) {
	r := &fakeRescorer{}
	ctx := WithParsedMessage(context.Background(), queue.Message{JobID: "from-ctx"})
	_, err := HandleMessage(ctx, r, "ignored")
	require.NoError(t, err)
	assert.Equal(t, []string{"from-ctx"}, r.jobIDs)
}

func TestHandleMessageWrapsProcessErrors(t *testing.T) {
	r := &fakeRescorer{err: fmt.Errorf("load: %w", jobs.ErrNotFound)}
	_, err := HandleMessage(context.Background(), r, `{"jobId":"gone","requestId":"r-2"}`)

	var proc ErrProcess
	require.ErrorAs(t, err, &proc)
	assert.Equal(t, "gone", proc.JobID)
	assert.Equal(t, "r-2", proc.RequestID)
	assert.True(t, Unrecoverable(err))
}

func TestUnrecoverable(t *testing.T) {
	assert.False(t, Unrecoverable(nil))
	assert.False(t, Unrecoverable(ErrProcess{Err: errors.New("db down")}))
	assert.True(t, Unrecoverable(ErrMissingJobID{}))
	assert.True(t, Unrecoverable(ErrDecode{Err: errors.New("bad json")}))
	assert.True(t, Unrecoverable(ErrEmptyBody{}))
}

func TestHandleMessageWithoutRescorer(t *testing.T) {
	_, err := HandleMessage(context.Background(), nil, `{"jobId":"j"}`)
	assert.Error(t, err)
}
