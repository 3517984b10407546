package matching

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"placement-backend/internal/jobs"
	"placement-backend/internal/resumes"
)

var fixedNow = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

func doc(text string) resumes.Document {
	return resumes.Build("r-"+text[:min(len(text), 8)], text, fixedNow)
}

func TestTechnicalMatch(t *testing.T) {
	job := jobs.Posting{ID: "j1", Requirements: "Python, Django, PostgreSQL, Docker"}
	resume := doc("Skills: Python, Django, Redis")

	score, matched, missing := technicalMatch(job, resume)
	assert.InDelta(t, 0.5, score, 1e-9)
	assert.Equal(t, []string{"django", "python"}, matched)
	assert.Equal(t, []string{"docker", "postgresql"}, missing)
}

func TestTechnicalMatchIgnoresOrdinaryWords(t *testing.T) {
	job := jobs.Posting{Requirements: "Python, Django. Candidates should excel under pressure, express ideas clearly and go the extra mile."}
	score, matched, missing := technicalMatch(job, doc("Skills: Python, Django"))
	assert.InDelta(t, 1.0, score, 1e-9)
	assert.Equal(t, []string{"django", "python"}, matched)
	assert.Empty(t, missing)
}

func TestTechnicalMatchEmptyRequirements(t *testing.T) {
	score, matched, missing := technicalMatch(jobs.Posting{ID: "j1", Description: "Python shop"}, doc("Python, Django"))
	assert.Equal(t, 0.0, score)
	assert.Empty(t, matched)
	assert.Empty(t, missing)
}

func TestSoftSkillsMatch(t *testing.T) {
	job := jobs.Posting{Description: "We value communication and leadership."}
	assert.InDelta(t, 0.5, softSkillsMatch(job, doc("Strong communication skills, team player")), 1e-9)
	assert.Equal(t, 0.0, softSkillsMatch(jobs.Posting{Description: "Write Go code."}, doc("communication")))
}

func TestExperienceMatch(t *testing.T) {
	cases := []struct {
		name   string
		job    string
		resume string
		expect float64
	}{
		{name: "no requirement", job: "Backend developer", resume: "Fresh graduate", expect: 1},
		{name: "meets requirement", job: "3+ years Python/Django", resume: "5 years Python, Django, REST APIs", expect: 1},
		{name: "partial", job: "Minimum 4 years of Java", resume: "2 years Java", expect: 0.5},
		{name: "resume states none", job: "Requires 2-4 years experience", resume: "Student", expect: 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := experienceMatch(jobs.Posting{Requirements: tc.job}, doc(tc.resume))
			assert.InDelta(t, tc.expect, got, 1e-9)
		})
	}
}

func TestExperienceMatchIgnoresAgeAndCompanyHistory(t *testing.T) {
	student := doc("Age: 21 years\nFinal year B.Tech student")
	assert.Equal(t, 0.0, student.ExplicitYears)
	assert.InDelta(t, 0.0, experienceMatch(jobs.Posting{Requirements: "Minimum 5 years Python"}, student), 1e-9)

	job := jobs.Posting{Description: "A company with 30 years of history", Requirements: "2+ years Python"}
	assert.InDelta(t, 1.0, experienceMatch(job, doc("3 years Python, Django")), 1e-9)
}

func TestAggregateWeightsSumToOne(t *testing.T) {
	sum := WeightTechnical + WeightSemantic + WeightTFIDF + WeightBM25 + WeightExperience + WeightSoftSkills
	assert.InDelta(t, 1.0, sum, 1e-12)

	one := 1.0
	s := Aggregate(Scores{Technical: 1, Semantic: &one, TFIDF: 1, BM25: 1, Experience: 1, SoftSkills: 1})
	assert.InDelta(t, 1.0, s.Overall, 1e-12)
}

func TestAggregateFallsBackToTFIDF(t *testing.T) {
	s := Aggregate(Scores{TFIDF: 0.5})
	assert.InDelta(t, (WeightSemantic+WeightTFIDF)*0.5, s.Overall, 1e-12)
	assert.False(t, s.SemanticAvailable())
}

func TestScoresRounded(t *testing.T) {
	sem := 0.123456
	r := Scores{Overall: 0.987654, Semantic: &sem}.Rounded()
	assert.Equal(t, 0.9877, r.Overall)
	assert.Equal(t, 0.1235, *r.Semantic)
	assert.Nil(t, Scores{}.Rounded().Semantic)
}
