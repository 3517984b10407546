package jobs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func money(v float64) *float64 { return &v }

func samplePostings() []Posting {
	return []Posting{
		{ID: "a", Location: "Bengaluru, India", SalaryMin: money(600000), SalaryMax: money(900000)},
		{ID: "b", Location: "Remote", SalaryMin: money(1200000)},
		{ID: "c", Location: "Pune", SalaryMax: money(400000)},
		{ID: "d", Location: "bengaluru"},
	}
}

func ids(postings []Posting) []string {
	out := make([]string, 0, len(postings))
	for _, p := range postings {
		out = append(out, p.ID)
	}
	return out
}

func TestParseFilterWarnsOnMalformedInput(t *testing.T) {
	f, warnings := ParseFilter("abc", "-5", " Pune ")
	assert.Nil(t, f.SalaryMin)
	assert.Nil(t, f.SalaryMax)
	assert.Equal(t, "Pune", f.Location)
	assert.Len(t, warnings, 2)
}

func TestParseFilterDropsInvertedRange(t *testing.T) {
	f, warnings := ParseFilter("900000", "100000", "")
	assert.True(t, f.IsZero())
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "salary_min exceeds salary_max")
}

func TestFilterApply(t *testing.T) {
	postings := samplePostings()

	cases := []struct {
		name   string
		min    string
		max    string
		loc    string
		expect []string
	}{
		{name: "no filter", expect: []string{"a", "b", "c", "d"}},
		{name: "salary min uses upper bound", min: "800000", expect: []string{"a", "b"}},
		{name: "salary max uses lower bound", max: "700000", expect: []string{"a", "c"}},
		{name: "location case insensitive", loc: "BENGALURU", expect: []string{"a", "d"}},
		{name: "combined", min: "500000", loc: "bengaluru", expect: []string{"a"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f, warnings := ParseFilter(tc.min, tc.max, tc.loc)
			assert.Empty(t, warnings)
			assert.Equal(t, tc.expect, ids(f.Apply(postings)))
		})
	}
}

func TestFilterApplyIsIdempotent(t *testing.T) {
	f, _ := ParseFilter("500000", "1000000", "in")
	once := f.Apply(samplePostings())
	twice := f.Apply(once)
	assert.Equal(t, ids(once), ids(twice))
}
