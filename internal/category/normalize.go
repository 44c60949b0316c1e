package category

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// asciiPunct is the set of ASCII punctuation characters removed before comparison.
const asciiPunct = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// Cleaner normalizes category text: punctuation removal, lower-casing and
// stop-word removal. A Cleaner is safe for concurrent use.
type Cleaner struct {
	stop map[string]struct{}
}

// NewCleaner builds a Cleaner over the English stop words plus any extras.
func NewCleaner(extra []string) *Cleaner {
	stop := make(map[string]struct{}, len(englishStopWords)+len(extra))
	for _, w := range englishStopWords {
		stop[w] = struct{}{}
	}
	for _, w := range extra {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			stop[w] = struct{}{}
		}
	}
	return &Cleaner{stop: stop}
}

var defaultCleaner = NewCleaner(nil)

// CleanString normalizes s with the built-in stop-word list.
func CleanString(s string) string { return defaultCleaner.Clean(s) }

// Clean strips ASCII punctuation, lower-cases, drops stop words and joins the
// remaining whitespace-separated tokens with single spaces.
func (c *Cleaner) Clean(s string) string {
	// composed form first, so "e"+U+0301 stays inside one token as "é"
	s = norm.NFC.String(s)
	s = strings.Map(func(r rune) rune {
		if r < 0x80 && strings.ContainsRune(asciiPunct, r) {
			return -1
		}
		return r
	}, s)
	// Casers carry state; one per call keeps Clean goroutine-safe.
	s = cases.Lower(language.Und).String(s)
	words := strings.Fields(s)
	kept := words[:0]
	for _, w := range words {
		if _, ok := c.stop[w]; ok {
			continue
		}
		kept = append(kept, w)
	}
	return strings.Join(kept, " ")
}
