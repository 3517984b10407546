package advisor

import (
	"regexp"
	"strings"
)

// MaxItems caps every advisor list.
const MaxItems = 5

var numberedLine = regexp.MustCompile(`^\s*\d+[.)]\s*(.+)$`)

// ParseNumbered returns up to max items from the numbered lines of text,
// in order. Lines without a leading number are ignored.
func ParseNumbered(text string, max int) []string {
	out := []string{}
	for _, line := range strings.Split(text, "\n") {
		if max > 0 && len(out) >= max {
			break
		}
		m := numberedLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		item := strings.TrimSpace(strings.Trim(strings.TrimSpace(m[1]), "*"))
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

// truncateRunes cuts s to at most n runes.
func truncateRunes(s string, n int) string {
	if n <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
