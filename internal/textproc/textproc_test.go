package textproc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTokenizeKeepsLanguageSymbols(t *testing.T) {
	got := Tokenize("Built APIs in C++, C# and Node.js. Also Go!")
	assert.Equal(t, []string{"built", "apis", "in", "c++", "c#", "and", "node.js", "also", "go"}, got)
}

func TestTermsDropsStopWords(t *testing.T) {
	got := Terms("The engineer and the team")
	assert.Equal(t, []string{"engineer", "team"}, got)
}

func TestLexiconMatchesWholeTokensAndAliases(t *testing.T) {
	skills := TechnicalSkills.Match("Experienced with JavaScript, golang, K8s and RESTful APIs")
	assert.Equal(t, []string{"go", "javascript", "kubernetes", "rest api"}, skills)
	assert.NotContains(t, skills, "java")
}

func TestLexiconCanonical(t *testing.T) {
	c, ok := TechnicalSkills.Canonical("ReactJS")
	assert.True(t, ok)
	assert.Equal(t, "react", c)

	_, ok = TechnicalSkills.Canonical("basket weaving")
	assert.False(t, ok)
}

func TestSoftSkills(t *testing.T) {
	got := SoftSkills.Match("Strong communication skills, a team player with leadership experience")
	assert.Equal(t, []string{"communication", "leadership", "teamwork"}, got)
}

func TestExplicitAndRequiredYears(t *testing.T) {
	assert.Equal(t, 5.0, ExplicitYears("5 years of Python, Django, REST APIs"))
	assert.Equal(t, 0.0, ExplicitYears("fresh graduate"))

	y, ok := RequiredYears("Requires 3+ years Python/Django", "")
	assert.True(t, ok)
	assert.Equal(t, 3.0, y)

	y, ok = RequiredYears("2-4 years experience, minimum 5 years in management", "")
	assert.True(t, ok)
	assert.Equal(t, 5.0, y)

	_, ok = RequiredYears("Registered Nurse, night shifts", "")
	assert.False(t, ok)
}

func TestExplicitYearsIgnoresAgeAndCompanyHistory(t *testing.T) {
	assert.Equal(t, 0.0, ExplicitYears("Age: 21 years\nFinal year B.Tech student"))
	assert.Equal(t, 0.0, ExplicitYears("I am 22 years old and love building things"))
	assert.Equal(t, 0.0, ExplicitYears("A company with 30 years of history"))
	assert.Equal(t, 0.0, ExplicitYears("Graduated in 2015 years later moved"))
	assert.Equal(t, 4.0, ExplicitYears("Java, Spring Boot, Kafka, 4 years"))
	assert.Equal(t, 3.0, ExplicitYears("3 years Go"))
}

func TestRequiredYearsPrefersRequirements(t *testing.T) {
	y, ok := RequiredYears("2+ years Python", "A company with 30 years of history")
	assert.True(t, ok)
	assert.Equal(t, 2.0, y)

	y, ok = RequiredYears("Python, Django", "We want 3 years of backend development")
	assert.True(t, ok)
	assert.Equal(t, 3.0, y)

	_, ok = RequiredYears("Python", "Founded 25 years ago")
	assert.False(t, ok)
}

func TestLexiconIgnoresOrdinaryWordsInProse(t *testing.T) {
	got := TechnicalSkills.Match("Python, Django. Candidates should excel under pressure, express ideas clearly and go the extra mile.")
	assert.Equal(t, []string{"django", "python"}, got)

	got = TechnicalSkills.Match("Skills: Python, Go, Excel and Node")
	assert.Equal(t, []string{"excel", "go", "node.js", "python"}, got)

	got = TechnicalSkills.Match("Express.js services on Spring Boot with unit testing")
	assert.Equal(t, []string{"express", "spring", "testing"}, got)

	c, ok := TechnicalSkills.Canonical("Go")
	assert.True(t, ok)
	assert.Equal(t, "go", c)

	assert.Empty(t, SoftSkills.Match("We are a market leader in payments"))
}

func TestFindSpansAndMergedMonths(t *testing.T) {
	now := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)
	text := "Engineer, Acme  Jan 2019 - Dec 2019\nSenior Engineer, Beta  Jun 2019 – Present\nIntern 2017 to 2017"

	spans := FindSpans(text, now)
	assert.Len(t, spans, 3)

	// 2017 (12) + Jan 2019..Mar 2026 (87) with the overlap counted once.
	assert.Equal(t, 12+87, MergedMonths(spans))
}

func TestFindSpansIgnoresReversedRanges(t *testing.T) {
	spans := FindSpans("2021 - 2019", time.Now())
	assert.Empty(t, spans)
}
