package resumes

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"placement-backend/internal/extract"
	"placement-backend/internal/shared/cache"
	"placement-backend/internal/shared/metrics"
	"placement-backend/internal/shared/telemetry"
	"placement-backend/internal/shared/util"
	"placement-backend/internal/textproc"
)

const (
	DefaultMinTextLength = 50
	DefaultParserTimeout = 15 * time.Second
	defaultCacheTTL      = 24 * time.Hour
)

var extractText = extract.ExtractTextFromBytes

// Normalizer turns uploaded resume files into Documents.
type Normalizer struct {
	Cache         cache.Store
	CacheTTL      time.Duration
	ParserTimeout time.Duration
	MinTextLength int
	Now           func() time.Time
}

// Normalize validates, extracts and structures an uploaded resume. Results are
// cached by content hash, so identical bytes always yield the same Document.
func (n *Normalizer) Normalize(ctx context.Context, fileName, mimeType string, data []byte) (Document, error) {
	if !extract.AllowedExtension(fileName) {
		metrics.IncResumeParseFailures()
		return Document{}, fmt.Errorf("%w: only .pdf and .docx resumes are accepted", ErrUnsupportedFormat)
	}
	if len(data) == 0 {
		metrics.IncResumeParseFailures()
		return Document{}, fmt.Errorf("%w: empty file", ErrParse)
	}

	id := util.HashBytes(data)
	key := "resume:" + id
	if doc, ok := cache.GetJSON[Document](ctx, n.Cache, key); ok {
		doc.FileName = fileName
		return doc, nil
	}

	text, err := n.extractWithTimeout(ctx, data, mimeType, fileName)
	if err != nil {
		metrics.IncResumeParseFailures()
		telemetry.Warn("resume.parse_failed", map[string]any{
			"resume_id": id,
			"file_name": fileName,
			"error":     err,
		})
		return Document{}, err
	}

	minLen := n.MinTextLength
	if minLen <= 0 {
		minLen = DefaultMinTextLength
	}
	if utf8.RuneCountInString(textproc.CollapseSpace(text)) < minLen {
		metrics.IncResumeParseFailures()
		return Document{}, ErrTooShort
	}

	doc := Build(id, text, n.now())
	doc.FileName = fileName

	ttl := n.CacheTTL
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	cache.SetJSON(ctx, n.Cache, key, doc, ttl)
	return doc, nil
}

// FromText structures already-extracted text, such as a resume stored with an
// application. It never fails.
func (n *Normalizer) FromText(text string) Document {
	return Build(util.HashBytes([]byte(text)), text, n.now())
}

// Build structures text into a Document with the given ID.
func Build(id, text string, now time.Time) Document {
	p := splitSections(text)
	entries, years := extractExperience(p, now)
	return Document{
		ID:              id,
		RawText:         text,
		Skills:          extractSkills(text, p),
		SoftSkills:      textproc.SoftSkills.Match(text),
		Experience:      entries,
		Education:       extractEducation(p),
		ExplicitYears:   textproc.ExplicitYears(text),
		ExperienceYears: years,
	}
}

func (n *Normalizer) extractWithTimeout(ctx context.Context, data []byte, mimeType, fileName string) (string, error) {
	timeout := n.ParserTimeout
	if timeout <= 0 {
		timeout = DefaultParserTimeout
	}
	parseCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		text string
		err  error
	}
	done := make(chan result, 1)
	go func() {
		text, err := extractText(parseCtx, data, mimeType, fileName)
		done <- result{text: text, err: err}
	}()

	select {
	case res := <-done:
		return res.text, res.err
	case <-parseCtx.Done():
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if errors.Is(parseCtx.Err(), context.DeadlineExceeded) {
			return "", ErrParseTimeout
		}
		return "", parseCtx.Err()
	}
}

func (n *Normalizer) now() time.Time {
	if n != nil && n.Now != nil {
		return n.Now()
	}
	return time.Now().UTC()
}
