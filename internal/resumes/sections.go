package resumes

import (
	"math"
	"regexp"
	"sort"
	"strings"
	"time"

	"placement-backend/internal/textproc"
)

type section int

const (
	sectionOther section = iota
	sectionSkills
	sectionExperience
	sectionEducation
	sectionProjects
)

var headings = map[string]section{
	"skills":                  sectionSkills,
	"technical skills":        sectionSkills,
	"key skills":              sectionSkills,
	"core skills":             sectionSkills,
	"core competencies":       sectionSkills,
	"skills and tools":        sectionSkills,
	"technologies":            sectionSkills,
	"tech stack":              sectionSkills,
	"experience":              sectionExperience,
	"work experience":         sectionExperience,
	"professional experience": sectionExperience,
	"employment history":      sectionExperience,
	"work history":            sectionExperience,
	"internships":             sectionExperience,
	"internship":              sectionExperience,
	"education":               sectionEducation,
	"academic background":     sectionEducation,
	"academics":               sectionEducation,
	"education and training":  sectionEducation,
	"projects":                sectionProjects,
	"personal projects":       sectionProjects,
	"academic projects":       sectionProjects,
	"summary":                 sectionOther,
	"profile":                 sectionOther,
	"objective":               sectionOther,
	"career objective":        sectionOther,
	"certifications":          sectionOther,
	"achievements":            sectionOther,
	"languages":               sectionOther,
	"interests":               sectionOther,
}

var (
	degreePattern = regexp.MustCompile(`(?i)\b(b\.?\s?tech|m\.?\s?tech|b\.?\s?e\b|m\.?\s?e\b|b\.?\s?sc|m\.?\s?sc|bca|mca|mba|bba|ph\.?\s?d|bachelor|master|diploma|associate degree)`)
	itemSplitter  = regexp.MustCompile(`[,;|•·]`)
)

const bulletChars = "-*•·–—> \t"

// parsed holds the lines of each section in order of appearance.
type parsed struct {
	lines map[section][]string
	found map[section]bool
}

func splitSections(text string) parsed {
	p := parsed{lines: map[section][]string{}, found: map[section]bool{}}
	current := sectionOther
	for _, raw := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if sec, rest, ok := headingOf(line); ok {
			current = sec
			p.found[sec] = true
			if rest != "" {
				p.lines[current] = append(p.lines[current], rest)
			}
			continue
		}
		p.lines[current] = append(p.lines[current], line)
	}
	return p
}

// headingOf recognizes "Skills", "WORK EXPERIENCE:", "## Education" and
// inline forms like "Skills: Go, SQL" (returned as rest).
func headingOf(line string) (section, string, bool) {
	head, rest := line, ""
	if i := strings.Index(line, ":"); i >= 0 {
		head, rest = line[:i], strings.TrimSpace(line[i+1:])
	}
	if len(head) > 40 {
		return sectionOther, "", false
	}
	key := strings.ToLower(strings.Trim(head, "#*_=- \t"))
	key = strings.ReplaceAll(key, "&", "and")
	key = textproc.CollapseSpace(key)
	sec, ok := headings[key]
	return sec, rest, ok
}

func trimBullet(s string) string {
	return strings.TrimSpace(strings.TrimLeft(s, bulletChars))
}

func extractSkills(text string, p parsed) []string {
	set := map[string]struct{}{}
	for _, s := range textproc.TechnicalSkills.Match(text) {
		set[s] = struct{}{}
	}
	for _, line := range p.lines[sectionSkills] {
		for _, item := range itemSplitter.Split(line, -1) {
			item = trimBullet(item)
			if item == "" || len(item) > 40 {
				continue
			}
			if canonical, ok := textproc.TechnicalSkills.Canonical(item); ok {
				set[canonical] = struct{}{}
				continue
			}
			set[strings.ToLower(textproc.CollapseSpace(item))] = struct{}{}
		}
	}
	return sortedSet(set)
}

func extractExperience(p parsed, now time.Time) ([]ExperienceEntry, float64) {
	scope := p.lines[sectionExperience]
	if !p.found[sectionExperience] {
		scope = nil
		for _, sec := range []section{sectionOther, sectionSkills, sectionProjects} {
			scope = append(scope, p.lines[sec]...)
		}
	}

	var (
		entries  []ExperienceEntry
		allSpans []textproc.Span
		previous string
	)
	for _, line := range scope {
		spans := textproc.FindSpans(line, now)
		if len(spans) == 0 {
			if n := len(entries); n > 0 && p.found[sectionExperience] {
				entries[n-1].Description = strings.TrimSpace(entries[n-1].Description + " " + trimBullet(line))
			}
			previous = line
			continue
		}
		allSpans = append(allSpans, spans...)
		if !p.found[sectionExperience] {
			continue
		}
		span := spans[0]
		title := strings.Trim(strings.Replace(line, span.Raw, "", 1), " -–—|,:()\t")
		if title == "" && previous != "" {
			title = trimBullet(previous)
			if n := len(entries); n > 0 && strings.HasSuffix(entries[n-1].Description, title) {
				entries[n-1].Description = strings.TrimSpace(strings.TrimSuffix(entries[n-1].Description, title))
			}
		}
		entries = append(entries, ExperienceEntry{
			Title:    title,
			Duration: span.Raw,
			Months:   span.Months(),
		})
		previous = ""
	}

	years := float64(textproc.MergedMonths(allSpans)) / 12.0
	return entries, math.Round(years*10) / 10
}

func extractEducation(p parsed) []string {
	var out []string
	if p.found[sectionEducation] {
		for _, line := range p.lines[sectionEducation] {
			if l := trimBullet(line); l != "" {
				out = append(out, l)
			}
		}
		return out
	}
	for _, sec := range []section{sectionOther, sectionSkills, sectionExperience, sectionProjects} {
		for _, line := range p.lines[sec] {
			if degreePattern.MatchString(line) {
				out = append(out, trimBullet(line))
			}
		}
	}
	return out
}

func sortedSet(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
