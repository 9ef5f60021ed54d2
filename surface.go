package psylex

import (
	"regexp"
	"strings"

	"github.com/bbalet/stopwords"
)

// Patterns for the punctuation and statistical counters. All counts are
// taken over the raw (sanitized) text, not the token stream, except the
// numeric-token test which runs per token.
var (
	numericTokenRE = regexp.MustCompile(`^-?[,\d+]*\.?\d+$`)
	abbrevRE       = regexp.MustCompile(`\w\.(\w\.)+`)
	emoticonRE     = regexp.MustCompile(`[:;8%]-[\)\(\@\[\]\|]+`)
	questionEndRE  = regexp.MustCompile(`\w\s*\?`)
	periodRE       = regexp.MustCompile(`\.`)
	commaRE        = regexp.MustCompile(`,`)
	colonRE        = regexp.MustCompile(`:`)
	semicolonRE    = regexp.MustCompile(`;`)
	questionRE     = regexp.MustCompile(`\?`)
	exclamRE       = regexp.MustCompile(`!`)
	dashRE         = regexp.MustCompile(`-`)
	quoteRE        = regexp.MustCompile(`"`)
	apostropheRE   = regexp.MustCompile(`'`)
	parenthesisRE  = regexp.MustCompile(`[\(\[{]`)
	otherPunctRE   = regexp.MustCompile(`[^\w\d\s\.:;\?!"'\(\{\[,-]`)
)

func countMatches(re *regexp.Regexp, text string) int {
	return len(re.FindAllStringIndex(text, -1))
}

// surfaceFeatures computes the punctuation, length and lexical-diversity
// statistics of §"surface" directly from the raw text and the token and
// sentence sequences. It returns the ordered feature block and,
// separately, the numeric-token percentage, which the caller adds to the
// dictionary's own NUMBERS category value.
//
// All ratios divide by the token count (QMARKS divides by the sentence
// count); with zero tokens or sentences they become ±Inf or NaN rather
// than failing, and callers must tolerate non-finite values.
func surfaceFeatures(text string, words, sentences []string, absolute bool) (*FeatureVector, float64) {
	fv := NewFeatureVector()

	wordCount := float64(len(words))
	sentenceCount := float64(len(sentences))

	// Word count is not a relative feature; the assembler strips it
	// outside corpus mode.
	if absolute {
		fv.Set("WC", wordCount)
	}
	fv.Set("WPS", wordCount/sentenceCount)

	sixLetters := 0
	numbers := 0
	types := make(map[string]struct{}, len(words))
	for _, w := range words {
		lower := strings.ToLower(w)
		if len(lower) > 6 {
			sixLetters++
		}
		if numericTokenRE.MatchString(lower) {
			numbers++
		}
		types[lower] = struct{}{}
	}
	fv.Set("UNIQUE", 100.0*float64(len(types))/wordCount)
	fv.Set("SIXLTR", 100.0*float64(sixLetters)/wordCount)

	fv.Set("ABBREVIATIONS", 100.0*float64(countMatches(abbrevRE, text))/wordCount)
	fv.Set("EMOTICONS", 100.0*float64(countMatches(emoticonRE, text))/wordCount)

	// The one per-sentence ratio: sentence-final question marks.
	fv.Set("QMARKS", 100.0*float64(countMatches(questionEndRE, text))/sentenceCount)

	period := countMatches(periodRE, text)
	comma := countMatches(commaRE, text)
	colon := countMatches(colonRE, text)
	semicolon := countMatches(semicolonRE, text)
	qmark := countMatches(questionRE, text)
	exclam := countMatches(exclamRE, text)
	dash := countMatches(dashRE, text)
	quote := countMatches(quoteRE, text)
	apostrophe := countMatches(apostropheRE, text)
	parenthesis := countMatches(parenthesisRE, text)
	otherPunct := countMatches(otherPunctRE, text)

	fv.Set("PERIOD", 100.0*float64(period)/wordCount)
	fv.Set("COMMA", 100.0*float64(comma)/wordCount)
	fv.Set("COLON", 100.0*float64(colon)/wordCount)
	fv.Set("SEMIC", 100.0*float64(semicolon)/wordCount)
	fv.Set("QMARK", 100.0*float64(qmark)/wordCount)
	fv.Set("EXCLAM", 100.0*float64(exclam)/wordCount)
	fv.Set("DASH", 100.0*float64(dash)/wordCount)
	fv.Set("QUOTE", 100.0*float64(quote)/wordCount)
	fv.Set("APOSTRO", 100.0*float64(apostrophe)/wordCount)
	fv.Set("PARENTH", 100.0*float64(parenthesis)/wordCount)
	fv.Set("OTHERP", 100.0*float64(otherPunct)/wordCount)

	allPunct := period + comma + colon + semicolon + qmark + exclam +
		dash + quote + apostrophe + parenthesis + otherPunct
	fv.Set("ALLPCT", 100.0*float64(allPunct)/wordCount)

	fv.Set("DENSITY", 100.0*float64(contentWordCount(words))/wordCount)

	return fv, 100.0 * float64(numbers) / wordCount
}

// contentWordCount counts the tokens that survive English stopword
// removal.
func contentWordCount(words []string) int {
	if len(words) == 0 {
		return 0
	}
	cleaned := stopwords.CleanString(strings.Join(words, " "), "en", false)
	return len(strings.Fields(cleaned))
}
