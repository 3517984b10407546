package advisor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseNumbered(t *testing.T) {
	text := `Here are my suggestions:
1. Quantify your achievements
2) Add a skills section
   3.   **Tighten the summary**
- not numbered
4.
5. Remove the photo
6. Use action verbs
7. Too many`

	got := ParseNumbered(text, MaxItems)
	assert.Equal(t, []string{
		"Quantify your achievements",
		"Add a skills section",
		"Tighten the summary",
		"Remove the photo",
		"Use action verbs",
	}, got)
}

func TestParseNumberedNoItems(t *testing.T) {
	got := ParseNumbered("I cannot help with that.", MaxItems)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "héll", truncateRunes("héllo", 4))
	assert.Equal(t, "hi", truncateRunes("hi", 4))
}
