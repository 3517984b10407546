package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
)

var (
	rankingRequestsTotal     atomic.Uint64
	pairsScoredTotal         atomic.Uint64
	pairFailuresTotal        atomic.Uint64
	embeddingFailuresTotal   atomic.Uint64
	applicationsCreatedTotal atomic.Uint64
	statusChangesTotal       atomic.Uint64
	rejectedRemovedTotal     atomic.Uint64
	rescoreRunsTotal         atomic.Uint64
	resumeParseFailuresTotal atomic.Uint64
	llmFailuresTotal         atomic.Uint64
	rescoreMessagesTotal     atomic.Uint64
	rescoreMessageFailures   atomic.Uint64

	rankingDuration = newHistogram([]float64{10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000})
)

// IncRankingRequests counts one ranking request (jobs or applicants).
func IncRankingRequests() {
	rankingRequestsTotal.Add(1)
}

// AddPairsScored counts scored resume/job pairs.
func AddPairsScored(n int) {
	if n > 0 {
		pairsScoredTotal.Add(uint64(n))
	}
}

// IncPairFailures counts pairs that fell back to a zero score.
func IncPairFailures() {
	pairFailuresTotal.Add(1)
}

// IncEmbeddingFailures counts embedding calls that failed or timed out.
func IncEmbeddingFailures() {
	embeddingFailuresTotal.Add(1)
}

// IncResumeParseFailures counts uploads rejected by the normalizer.
func IncResumeParseFailures() {
	resumeParseFailuresTotal.Add(1)
}

// IncApplicationsCreated counts submitted applications.
func IncApplicationsCreated() {
	applicationsCreatedTotal.Add(1)
}

// IncStatusChanges counts accepted/rejected transitions.
func IncStatusChanges() {
	statusChangesTotal.Add(1)
}

// AddRejectedRemoved counts rejected applications removed in bulk.
func AddRejectedRemoved(n int64) {
	if n > 0 {
		rejectedRemovedTotal.Add(uint64(n))
	}
}

// IncRescoreRuns counts applicant rescoring runs.
func IncRescoreRuns() {
	rescoreRunsTotal.Add(1)
}

// IncLLMFailures counts advisor calls that failed after retrying.
func IncLLMFailures() {
	llmFailuresTotal.Add(1)
}

// IncRescoreMessages counts queue messages processed by the worker.
func IncRescoreMessages() {
	rescoreMessagesTotal.Add(1)
}

// IncRescoreMessageFailures counts queue messages the worker failed to process.
func IncRescoreMessageFailures() {
	rescoreMessageFailures.Add(1)
}

// ObserveRankingDurationMs records a ranking duration in milliseconds.
func ObserveRankingDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	rankingDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "ranking_requests_total", "Total ranking requests", rankingRequestsTotal.Load())
	writeCounter(&buf, "ranking_pairs_scored_total", "Total resume/job pairs scored", pairsScoredTotal.Load())
	writeCounter(&buf, "ranking_pair_failures_total", "Total pairs scored zero after a failure", pairFailuresTotal.Load())
	writeCounter(&buf, "embedding_failures_total", "Total embedding calls that failed", embeddingFailuresTotal.Load())
	writeCounter(&buf, "resume_parse_failures_total", "Total resumes rejected during parsing", resumeParseFailuresTotal.Load())
	writeCounter(&buf, "applications_created_total", "Total applications submitted", applicationsCreatedTotal.Load())
	writeCounter(&buf, "application_status_changes_total", "Total application status transitions", statusChangesTotal.Load())
	writeCounter(&buf, "applications_rejected_removed_total", "Total rejected applications removed", rejectedRemovedTotal.Load())
	writeCounter(&buf, "rescore_runs_total", "Total applicant rescoring runs", rescoreRunsTotal.Load())
	writeCounter(&buf, "llm_failures_total", "Total LLM calls that failed", llmFailuresTotal.Load())
	writeCounter(&buf, "rescore_messages_total", "Total rescore queue messages processed", rescoreMessagesTotal.Load())
	writeCounter(&buf, "rescore_message_failures_total", "Total rescore queue messages that failed", rescoreMessageFailures.Load())
	writeHistogram(&buf, "ranking_duration_ms", "Ranking duration in milliseconds", rankingDuration.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
	return out
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// SinceMillis returns the elapsed time since start in milliseconds.
func SinceMillis(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000.0
}
