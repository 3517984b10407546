// Package textproc holds the tokenizer, stop words and lexicons shared by the
// resume normalizer and the matching engine.
package textproc

import (
	"strings"
	"unicode"
)

// Tokenize lowercases text and splits it into tokens. Characters + # . are kept
// inside tokens so c++, c# and node.js survive; leading and trailing dots are trimmed.
// Tokens shorter than two runes are dropped, except c.
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#' || r == '.')
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, ".")
		if f == "" || !hasAlnum(f) {
			continue
		}
		if len([]rune(f)) < 2 && f != "c" {
			continue
		}
		out = append(out, f)
	}
	return out
}

// Terms tokenizes text and removes English stop words. It is the term stream
// fed to TF-IDF and BM25.
func Terms(text string) []string {
	tokens := Tokenize(text)
	out := tokens[:0]
	for _, t := range tokens {
		if IsStopWord(t) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Unique returns the distinct values of tokens in first-seen order.
func Unique(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// CollapseSpace trims text and folds whitespace runs into single spaces.
func CollapseSpace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

func hasAlnum(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
