package psylex

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	nonWordRE    = regexp.MustCompile(`\W+\s*`)
	whitespaceRE = regexp.MustCompile(`\s+`)
	sentenceRE   = regexp.MustCompile(`\s*[.!?]+\s+`)
)

// sanitizer folds typographic quotes into their ASCII forms so that
// apostrophe and quote counters see a single representation.
var sanitizer = strings.NewReplacer(
	"“", `"`,
	"”", `"`,
	"‘", "'",
	"’", "'",
	"&rsquo;", "'")

// sanitize NFC-normalizes text and folds typographic quotes.
func sanitize(text string) string {
	return sanitizer.Replace(norm.NFC.String(text))
}

// Tokenize splits text into words separated by non-word characters:
// every maximal run of non-word characters (with any trailing space) is
// collapsed to a single space, the result is trimmed, then split on
// whitespace runs.
//
// A text containing no word characters yields a single empty-string
// token; callers must treat that as zero real words.
func Tokenize(text string) []string {
	wordsOnly := nonWordRE.ReplaceAllString(sanitize(text), " ")
	wordsOnly = strings.TrimSpace(wordsOnly)
	return whitespaceRE.Split(wordsOnly, -1)
}

// SplitSentences splits text into sentences separated by runs of '.',
// '!' or '?' followed by whitespace. There is no merging of
// abbreviation-induced false splits. Trailing empty sentences are
// dropped.
func SplitSentences(text string) []string {
	parts := sentenceRE.Split(text, -1)
	for len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	if len(parts) == 0 {
		return []string{""}
	}
	return parts
}
