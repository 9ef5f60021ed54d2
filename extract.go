package psylex

import (
	"context"
	"errors"
	"time"
)

// canonicalNames maps the long category names found in dictionary files
// to the short forms used by downstream models and persisted datasets.
// Names absent from the table pass through unchanged, so renaming an
// already-short name is a no-op.
var canonicalNames = map[string]string{
	"LINGUISTIC":             "LINGUISTIC",
	"PRONOUN":                "PRONOUN",
	"I":                      "I",
	"WE":                     "WE",
	"SELF":                   "SELF",
	"YOU":                    "YOU",
	"OTHER":                  "OTHER",
	"NEGATIONS":              "NEGATE",
	"ASSENTS":                "ASSENT",
	"ARTICLES":               "ARTICLE",
	"PREPOSITIONS":           "PREPS",
	"NUMBERS":                "NUMBER",
	"PSYCHOLOGICAL PROCESS":  "PSYCHOLOGICAL PROCESS",
	"AFFECTIVE PROCESS":      "AFFECT",
	"POSITIVE EMOTION":       "POSEMO",
	"POSITIVE FEELING":       "POSFEEL",
	"OPTIMISM":               "OPTIM",
	"NEGATIVE EMOTION":       "NEGEMO",
	"ANXIETY":                "ANX",
	"ANGER":                  "ANGER",
	"SADNESS":                "SAD",
	"COGNITIVE PROCESS":      "COGMECH",
	"CAUSATION":              "CAUSE",
	"INSIGHT":                "INSIGHT",
	"DISCREPANCY":            "DISCREP",
	"INHIBITION":             "INHIB",
	"TENTATIVE":              "TENTAT",
	"CERTAINTY":              "CERTAIN",
	"SENSORY PROCESS":        "SENSES",
	"SEEING":                 "SEE",
	"HEARING":                "HEAR",
	"FEELING":                "FEEL",
	"SOCIAL PROCESS":         "SOCIAL",
	"COMMUNICATION":          "COMM",
	"REFERENCE PEOPLE":       "OTHREF",
	"FRIENDS":                "FRIENDS",
	"FAMILY":                 "FAMILY",
	"HUMANS":                 "HUMANS",
	"RELATIVITY":             "RELATIVITY",
	"TIME":                   "TIME",
	"PAST":                   "PAST",
	"PRESENT":                "PRESENT",
	"FUTURE":                 "FUTURE",
	"SPACE":                  "SPACE",
	"UP":                     "UP",
	"DOWN":                   "DOWN",
	"INCLUSIVE":              "INCL",
	"EXCLUSIVE":              "EXCL",
	"MOTION":                 "MOTION",
	"PERSONAL PROCESS":       "PERSONAL PROCESS",
	"OCCUPATION":             "OCCUP",
	"SCHOOL":                 "SCHOOL",
	"JOB OR WORK":            "JOB",
	"ACHIEVEMENT":            "ACHIEVE",
	"LEISURE ACTIVITY":       "LEISURE",
	"HOME":                   "HOME",
	"SPORTS":                 "SPORTS",
	"TV OR MOVIE":            "TV",
	"MUSIC":                  "MUSIC",
	"MONEY":                  "MONEY",
	"METAPHYSICAL":           "METAPH",
	"RELIGION":               "RELIG",
	"DEATH AND DYING":        "DEATH",
	"PHYSICAL STATES":        "PHYSCAL",
	"BODY STATES":            "BODY",
	"SEXUALITY":              "SEXUAL",
	"EATING":                 "EATING",
	"SLEEPING":               "SLEEP",
	"GROOMING":               "GROOM",
	"EXPERIMENTAL DIMENSION": "EXPERIMENTAL DIMENSION",
	"SWEAR WORDS":            "SWEAR",
	"NONFLUENCIES":           "NONFL",
	"FILLERS":                "FILLERS",
}

// domainDependentFeatures are topic-style categories not used by any
// downstream model; the assembler strips them after canonicalization.
var domainDependentFeatures = []string{
	"FRIENDS", "FAMILY", "OCCUP", "SCHOOL", "JOB", "LEISURE", "HOME",
	"SPORTS", "TV", "MUSIC", "MONEY", "METAPH", "DEATH", "PHYSCAL",
	"BODY", "EATING", "SLEEP", "GROOM",
}

// absoluteCountFeatures are counts not relative to the text length;
// they are removed outside corpus mode so outputs stay comparable
// across documents of different sizes.
var absoluteCountFeatures = []string{"WC"}

// An Extractor turns raw text into feature vectors. The dictionary and
// the norm lookup are read-only after construction, so one Extractor may
// serve concurrent callers.
type Extractor struct {
	dict   *Dictionary
	lookup NormLookup
}

// NewExtractor builds an extraction engine from a compiled dictionary
// and a norm lookup.
func NewExtractor(dict *Dictionary, lookup NormLookup) (*Extractor, error) {
	if dict == nil {
		return nil, errors.New("psylex: nil dictionary")
	}
	if lookup == nil {
		return nil, errors.New("psylex: nil norm lookup")
	}
	return &Extractor{dict: dict, lookup: lookup}, nil
}

// Dictionary returns the extractor's compiled dictionary.
func (e *Extractor) Dictionary() *Dictionary {
	return e.dict
}

// An ExtractOpt adjusts a single extraction call.
type ExtractOpt func(*extractOpts)

type extractOpts struct {
	ctx       context.Context
	timeout   time.Duration
	absolute  bool
	segmenter Segmenter
}

// WithContext sets the context checked between pipeline stages.
func WithContext(ctx context.Context) ExtractOpt {
	return func(o *extractOpts) { o.ctx = ctx }
}

// WithTimeout bounds the extraction call. The norm lookup is the
// dominant cost (one query per word), so this is where a deadline
// belongs.
func WithTimeout(d time.Duration) ExtractOpt {
	return func(o *extractOpts) { o.timeout = d }
}

// WithAbsoluteCounts keeps absolute features (the raw word count) in
// the output. Corpus mode enables this; single-document mode defaults
// to relative features only.
func WithAbsoluteCounts(keep bool) ExtractOpt {
	return func(o *extractOpts) { o.absolute = keep }
}

// UsingSegmenter replaces the default sentence splitter.
func UsingSegmenter(s Segmenter) ExtractOpt {
	return func(o *extractOpts) { o.segmenter = s }
}

var defaultExtractOpts = extractOpts{
	ctx:       context.Background(),
	segmenter: regexSegmenter{},
}

// Extract runs the full pipeline over text: tokenization and sentence
// splitting, surface counters, dictionary category counts, name
// canonicalization and domain filtering, then norm averaging. The
// result is an ordered vector: surface features first, dictionary
// categories in definition order, norms last.
//
// Degenerate input (no tokens, no sentences) yields ±Inf/NaN ratios
// rather than an error.
func (e *Extractor) Extract(text string, opts ...ExtractOpt) (*FeatureVector, error) {
	o := defaultExtractOpts
	for _, apply := range opts {
		apply(&o)
	}

	ctx := o.ctx
	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	clean := sanitize(text)
	words := Tokenize(clean)
	sents := o.segmenter.Segment(clean)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Surface counters always compute WC; the relative-only filter
	// below removes it again outside corpus mode.
	fv, numericPct := surfaceFeatures(clean, words, sents, true)

	catCounts, matched := e.dict.Counts(words)
	wordCount := float64(len(words))
	for _, cat := range e.dict.Categories() {
		fv.Set(cat, 100.0*float64(catCounts[cat])/wordCount)
	}

	inDictionary := 0
	for _, hit := range matched {
		if hit {
			inDictionary++
		}
	}
	fv.Set("DIC", 100.0*float64(inDictionary)/wordCount)

	// The numeric-token ratio and the NUMBERS category are both
	// partial signals; they are summed, keeping the category's
	// position in the vector.
	if numbers, ok := fv.Get("NUMBERS"); ok {
		fv.Set("NUMBERS", numbers+numericPct)
	} else {
		fv.Set("NUMBERS", numericPct)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	assembled := assemble(fv, o.absolute)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	assembled.Merge(AverageNorms(e.lookup, words))
	return assembled, nil
}

// assemble canonicalizes feature names and strips the excluded sets.
// Renaming keeps every key's position, so the output order is the input
// order minus the removed features.
func assemble(fv *FeatureVector, absolute bool) *FeatureVector {
	out := fv.Clone()
	for _, name := range out.Names() {
		if short, ok := canonicalNames[name]; ok {
			out.Rename(name, short)
		}
	}
	for _, name := range domainDependentFeatures {
		out.Delete(name)
	}
	if !absolute {
		for _, name := range absoluteCountFeatures {
			out.Delete(name)
		}
	}
	return out
}
