package textproc

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

const (
	maxPlausibleYears = 50.0
)

var (
	// "5 years", "3+ yrs", "2-4 years", "2 to 4 years"; group 1 is the lower bound.
	yearsPattern = regexp.MustCompile(`(?i)\b(\d{1,2}(?:\.\d+)?)\s*(?:\+|(?:-|–|to)\s*\d{1,2}(?:\.\d+)?)?\s*\+?\s*(?:years?|yrs?)\b`)

	monthNames = `jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|jun(?:e)?|jul(?:y)?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?`
	datePart   = `(?:(?:` + monthNames + `)\.?\s+\d{4}|\d{1,2}/\d{4}|\d{4})`
	// "Jan 2019 - Mar 2021", "06/2018 – Present", "2017 to 2020".
	rangePattern = regexp.MustCompile(`(?i)\b(` + datePart + `)\s*(?:-|–|—|to)\s*(` + datePart + `|present|current|now|today|ongoing)`)

	monthIndex = map[string]time.Month{
		"jan": time.January, "feb": time.February, "mar": time.March, "apr": time.April,
		"may": time.May, "jun": time.June, "jul": time.July, "aug": time.August,
		"sep": time.September, "oct": time.October, "nov": time.November, "dec": time.December,
	}
)

var (
	clauseBreak = regexp.MustCompile(`[\n;]|\.(?:\s|$)`)

	// Words around a figure that make it a statement about experience.
	experienceWords = map[string]bool{
		"experience": true, "experienced": true, "exp": true, "work": true, "working": true,
		"professional": true, "industry": true, "hands": true, "relevant": true,
		"development": true, "programming": true, "coding": true,
		"minimum": true, "min": true, "least": true, "atleast": true,
		"requires": true, "required": true, "requirement": true,
	}
	// Words that make a figure an age, a tenure of a company or a date.
	notExperienceWords = map[string]bool{
		"age": true, "aged": true, "old": true, "history": true, "founded": true,
		"established": true, "anniversary": true, "legacy": true, "ago": true,
	}
)

const contextTokens = 4

// ExplicitYears returns the largest "N years" figure that text states as
// experience, or 0. A figure counts when an experience word or a skill sits
// next to it in the same clause, and never when it reads as an age or a
// company's history.
func ExplicitYears(text string) float64 {
	best := 0.0
	for _, loc := range yearsPattern.FindAllStringSubmatchIndex(text, -1) {
		v, err := strconv.ParseFloat(text[loc[2]:loc[3]], 64)
		if err != nil || v > maxPlausibleYears {
			continue
		}
		if !aboutExperience(text[:loc[0]], text[loc[1]:]) {
			continue
		}
		if v > best {
			best = v
		}
	}
	return best
}

// RequiredYears returns the strictest minimum a job states ("3+ years",
// "2-4 years" counts as 2, "minimum 5 years"). The requirements are read first
// and the description only when they state none. ok is false when neither does.
func RequiredYears(requirements, description string) (years float64, ok bool) {
	if y := ExplicitYears(requirements); y > 0 {
		return y, true
	}
	y := ExplicitYears(description)
	return y, y > 0
}

func aboutExperience(before, after string) bool {
	if locs := clauseBreak.FindAllStringIndex(before, -1); len(locs) > 0 {
		before = before[locs[len(locs)-1][1]:]
	}
	if loc := clauseBreak.FindStringIndex(after); loc != nil {
		after = after[:loc[0]]
	}
	prev := Tokenize(before)
	if len(prev) > contextTokens {
		prev = prev[len(prev)-contextTokens:]
	}
	next := Tokenize(after)
	if len(next) > contextTokens {
		next = next[:contextTokens]
	}

	for _, t := range append(append([]string(nil), prev...), next...) {
		if notExperienceWords[t] {
			return false
		}
	}
	for _, t := range append(append([]string(nil), prev...), next...) {
		if experienceWords[t] {
			return true
		}
	}
	return len(TechnicalSkills.Match(strings.Join(next, " "))) > 0 ||
		len(TechnicalSkills.Match(strings.Join(prev, " "))) > 0
}

// Span is a closed month interval found in a resume.
type Span struct {
	Raw   string
	Start time.Time
	End   time.Time
}

// Months returns the inclusive number of months covered by the span.
func (s Span) Months() int {
	return monthsBetween(s.Start, s.End) + 1
}

// FindSpans returns every date range in text. Open ranges end at now.
func FindSpans(text string, now time.Time) []Span {
	var out []Span
	for _, m := range rangePattern.FindAllStringSubmatch(text, -1) {
		start, ok := parseDate(m[1], false)
		if !ok {
			continue
		}
		var end time.Time
		switch strings.ToLower(m[2]) {
		case "present", "current", "now", "today", "ongoing":
			end = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		default:
			end, ok = parseDate(m[2], true)
			if !ok {
				continue
			}
		}
		if end.Before(start) {
			continue
		}
		out = append(out, Span{Raw: strings.TrimSpace(m[0]), Start: start, End: end})
	}
	return out
}

// MergedMonths sums the months covered by spans, counting overlaps once.
func MergedMonths(spans []Span) int {
	if len(spans) == 0 {
		return 0
	}
	sorted := append([]Span(nil), spans...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start.Before(sorted[j].Start) })

	total := 0
	cur := sorted[0]
	for _, s := range sorted[1:] {
		if !s.Start.After(cur.End.AddDate(0, 1, 0)) {
			if s.End.After(cur.End) {
				cur.End = s.End
			}
			continue
		}
		total += cur.Months()
		cur = s
	}
	return total + cur.Months()
}

// parseDate reads "Mar 2021", "03/2021" or "2021". A bare year starts in
// January, or ends in December when isEnd is set.
func parseDate(raw string, isEnd bool) (time.Time, bool) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if i := strings.Index(raw, "/"); i > 0 {
		month, err1 := strconv.Atoi(raw[:i])
		year, err2 := strconv.Atoi(raw[i+1:])
		if err1 != nil || err2 != nil || month < 1 || month > 12 || !plausibleYear(year) {
			return time.Time{}, false
		}
		return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC), true
	}
	fields := strings.Fields(strings.ReplaceAll(raw, ".", " "))
	switch len(fields) {
	case 1:
		year, err := strconv.Atoi(fields[0])
		if err != nil || !plausibleYear(year) {
			return time.Time{}, false
		}
		month := time.January
		if isEnd {
			month = time.December
		}
		return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC), true
	case 2:
		if len(fields[0]) < 3 {
			return time.Time{}, false
		}
		month, ok := monthIndex[fields[0][:3]]
		year, err := strconv.Atoi(fields[1])
		if !ok || err != nil || !plausibleYear(year) {
			return time.Time{}, false
		}
		return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}

func plausibleYear(y int) bool {
	return y >= 1950 && y <= 2100
}

func monthsBetween(a, b time.Time) int {
	return (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
}
