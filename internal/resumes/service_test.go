package resumes

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"placement-backend/internal/shared/cache"
)

const sampleResume = `Jane Doe
jane@example.com

Summary
Backend engineer with 5 years of Python, Django, REST APIs.

Skills: Python, Django, PostgreSQL, Docker, Jira

Work Experience
Senior Backend Engineer, Acme Corp | Jan 2021 - Present
- Built REST APIs serving 2M requests a day
- Led a team of four engineers
Software Engineer
06/2018 - 12/2020
- Maintained Django monolith

Education
B.Tech in Computer Science, 2014 - 2018
`

var fixedNow = func() time.Time { return time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC) }

func stubExtract(t *testing.T, fn func(ctx context.Context, data []byte, mime, name string) (string, error)) {
	t.Helper()
	prev := extractText
	extractText = fn
	t.Cleanup(func() { extractText = prev })
}

func TestBuildExtractsSections(t *testing.T) {
	doc := Build("id-1", sampleResume, fixedNow())

	assert.Equal(t, "id-1", doc.ID)
	assert.Subset(t, doc.Skills, []string{"python", "django", "postgresql", "docker", "rest api", "jira"})
	assert.Contains(t, doc.SoftSkills, "leadership")
	require.Len(t, doc.Experience, 2)
	assert.Equal(t, "Senior Backend Engineer, Acme Corp", doc.Experience[0].Title)
	assert.Equal(t, "Software Engineer", doc.Experience[1].Title)
	assert.Equal(t, 31, doc.Experience[1].Months)
	assert.Contains(t, doc.Experience[0].Description, "Built REST APIs")
	assert.Equal(t, []string{"B.Tech in Computer Science, 2014 - 2018"}, doc.Education)
	assert.Equal(t, 5.0, doc.ExplicitYears)
	// 06/2018..12/2020 (31) + 01/2021..01/2026 (61) merge into one 92-month run.
	assert.InDelta(t, 7.7, doc.ExperienceYears, 0.01)
	assert.InDelta(t, 7.7, doc.YearsOfExperience(), 0.01)
}

func TestNormalizeRejectsUnsupportedExtension(t *testing.T) {
	n := &Normalizer{}
	_, err := n.Normalize(context.Background(), "cv.txt", "text/plain", []byte("hello"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestNormalizeRejectsShortText(t *testing.T) {
	stubExtract(t, func(ctx context.Context, data []byte, mime, name string) (string, error) {
		return "too short", nil
	})
	n := &Normalizer{}
	_, err := n.Normalize(context.Background(), "cv.pdf", "application/pdf", []byte("%PDF-"))
	assert.ErrorIs(t, err, ErrTooShort)
	assert.ErrorIs(t, err, ErrParse)
}

func TestNormalizeParserTimeout(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	stubExtract(t, func(ctx context.Context, data []byte, mime, name string) (string, error) {
		<-release
		return "", nil
	})
	n := &Normalizer{ParserTimeout: 20 * time.Millisecond}
	_, err := n.Normalize(context.Background(), "cv.pdf", "application/pdf", []byte("%PDF-"))
	assert.ErrorIs(t, err, ErrParseTimeout)
	assert.ErrorIs(t, err, ErrParse)
}

func TestNormalizeCallerCancellation(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	stubExtract(t, func(ctx context.Context, data []byte, mime, name string) (string, error) {
		<-release
		return "", nil
	})
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()
	n := &Normalizer{ParserTimeout: time.Minute}
	_, err := n.Normalize(ctx, "cv.pdf", "application/pdf", []byte("%PDF-"))
	assert.True(t, errors.Is(err, context.Canceled), "got %v", err)
}

func TestNormalizeCachesByContentHash(t *testing.T) {
	calls := 0
	stubExtract(t, func(ctx context.Context, data []byte, mime, name string) (string, error) {
		calls++
		return sampleResume, nil
	})
	n := &Normalizer{Cache: cache.NewMemory(0, nil), Now: fixedNow}

	first, err := n.Normalize(context.Background(), "a.pdf", "application/pdf", []byte("same-bytes"))
	require.NoError(t, err)
	second, err := n.Normalize(context.Background(), "b.pdf", "application/pdf", []byte("same-bytes"))
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.Skills, second.Skills)
	assert.Equal(t, "b.pdf", second.FileName)
}

func TestFromTextIsDeterministic(t *testing.T) {
	n := &Normalizer{Now: fixedNow}
	a := n.FromText(sampleResume)
	b := n.FromText(sampleResume)
	assert.Equal(t, a, b)
}
