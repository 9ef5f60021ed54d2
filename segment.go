package psylex

import (
	"strings"

	"gopkg.in/neurosnap/sentences.v1"
	"gopkg.in/neurosnap/sentences.v1/english"
)

// A Segmenter splits raw text into sentences. The sentence sequence is
// independent of the token sequence; boundaries need not align.
type Segmenter interface {
	Segment(text string) []string
}

// regexSegmenter is the compatibility splitter: runs of '.', '!', '?'
// end a sentence. It is the default because the punctuation-ratio
// features were calibrated against it.
type regexSegmenter struct{}

func (regexSegmenter) Segment(text string) []string {
	return SplitSentences(text)
}

// PunktSegmenter segments with a trained Punkt model, which merges most
// abbreviation-induced false splits. Selecting it changes the
// words-per-sentence and question-ending ratios, so vectors produced
// with it are not comparable to vectors produced with the default
// splitter.
type PunktSegmenter struct {
	tokenizer *sentences.DefaultSentenceTokenizer
}

// NewPunktSegmenter builds a segmenter from the embedded English Punkt
// training data.
func NewPunktSegmenter() (*PunktSegmenter, error) {
	tok, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, err
	}
	return &PunktSegmenter{tokenizer: tok}, nil
}

// Segment returns the trimmed sentence texts.
func (p *PunktSegmenter) Segment(text string) []string {
	var out []string
	for _, s := range p.tokenizer.Tokenize(text) {
		t := strings.TrimSpace(s.Text)
		if t != "" {
			out = append(out, t)
		}
	}
	if len(out) == 0 {
		return []string{""}
	}
	return out
}
