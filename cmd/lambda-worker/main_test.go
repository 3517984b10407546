package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-lambda-go/events"

	"placement-backend/internal/queue"
)

type fakeRescorer struct {
	errs map[string]error
}

func (f fakeRescorer) Rescore(ctx context.Context, jobID string) (int, error) {
	_ = ctx
	if err := f.errs[jobID]; err != nil {
		return 0, err
	}
	return 1, nil
}

func record(t *testing.T, id, jobID string) events.SQSMessage {
	t.Helper()
	body, err := queue.EncodeMessage(queue.NewRescoreMessage(jobID, "req-"+id, time.Now()))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	return events.SQSMessage{MessageId: id, Body: string(body)}
}

func TestProcessRecordsReportsOnlyRetryableFailures(t *testing.T) {
	svc := fakeRescorer{errs: map[string]error{"job-fail": errors.New("db down")}}
	records := []events.SQSMessage{
		record(t, "ok", "job-ok"),
		record(t, "fail", "job-fail"),
		{MessageId: "garbage", Body: "{nope"},
	}

	resp := processRecords(context.Background(), svc, records)

	if len(resp.BatchItemFailures) != 1 {
		t.Fatalf("expected one failure, got %+v", resp.BatchItemFailures)
	}
	if resp.BatchItemFailures[0].ItemIdentifier != "fail" {
		t.Fatalf("expected fail to be retried, got %q", resp.BatchItemFailures[0].ItemIdentifier)
	}
}
