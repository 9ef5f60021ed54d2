package psylex

// The psycholinguistic norm names, in the fixed order they appear in the
// output vector.
var NormNames = []string{
	"NLET", "NPHON", "NSYL",
	"K_F_FREQ", "K_F_NCATS", "K_F_NSAMP",
	"T_L_FREQ", "BROWN_FREQ",
	"FAM", "CONC", "IMAG",
	"MEANC", "MEANP", "AOA",
}

// PartOfSpeech is a grammatical-category tag used only to select which
// lookup entry to read; there is no contextual disambiguation.
type PartOfSpeech string

const (
	PosNoun           PartOfSpeech = "noun"
	PosVerb           PartOfSpeech = "verb"
	PosAdjective      PartOfSpeech = "adjective"
	PosAdverb         PartOfSpeech = "adverb"
	PosPastParticiple PartOfSpeech = "past-participle"
	PosPreposition    PartOfSpeech = "preposition"
	PosConjunction    PartOfSpeech = "conjunction"
	PosPronoun        PartOfSpeech = "pronoun"
	PosInterjection   PartOfSpeech = "interjection"
	PosOther          PartOfSpeech = "other"
)

// posPriority resolves ambiguous entries: the first tag in this list
// that the lookup reports for a word is the one whose norm values are
// read.
var posPriority = []PartOfSpeech{
	PosNoun, PosVerb, PosAdjective, PosAdverb, PosPastParticiple,
	PosPreposition, PosConjunction, PosPronoun, PosInterjection, PosOther,
}

// Outcome tags the result of a single norm-value fetch.
type Outcome int

const (
	// OutcomeOK means the fetch produced a usable value.
	OutcomeOK Outcome = iota
	// OutcomeNotApplicable means the norm is not defined for this
	// word/tag pair; the norm is silently skipped.
	OutcomeNotApplicable
	// OutcomeNotFound means the lookup has no entry for the word/tag
	// pair at all; it is reported as a warning and skipped.
	OutcomeNotFound
)

// NormLookup is the external psycholinguistic database collaborator.
// Implementations must be safe for concurrent readers after
// construction.
type NormLookup interface {
	// Contains reports whether the lookup has any entry for word.
	Contains(word string) bool
	// PartsOfSpeech returns the grammatical-category tags available
	// for word.
	PartsOfSpeech(word string) []PartOfSpeech
	// Value fetches the norm value for (word, pos, norm). The Outcome
	// distinguishes a value undefined for this tag from a missing
	// entry.
	Value(word string, pos PartOfSpeech, norm string) (float64, Outcome)
}

// AverageNorms drives the lookup once per word and averages each norm
// over the words that yielded a defined value for it.
//
// For every word present in the lookup, the applicable tag is the first
// entry of the fixed priority list found among the word's available
// tags; only that tag's values are read. A word with no tag in the
// priority list contributes to no norm. Norms with zero contributing
// words come back as Undefined.
func AverageNorms(lookup NormLookup, words []string) *FeatureVector {
	sums := make([]float64, len(NormNames))
	counts := make([]int, len(NormNames))

	for _, word := range words {
		if !lookup.Contains(word) {
			continue
		}
		available := make(map[PartOfSpeech]bool)
		for _, pos := range lookup.PartsOfSpeech(word) {
			available[pos] = true
		}
		for _, pos := range posPriority {
			if !available[pos] {
				continue
			}
			for i, norm := range NormNames {
				v, outcome := lookup.Value(word, pos, norm)
				switch outcome {
				case OutcomeOK:
					sums[i] += v
					counts[i]++
				case OutcomeNotFound:
					logger.Printf("warning: entry %s/%s/%s not found", word, pos, norm)
				}
			}
			// Tag resolved, proceed to the next word.
			break
		}
	}

	fv := NewFeatureVector()
	for i, norm := range NormNames {
		if counts[i] > 0 {
			fv.Set(norm, sums[i]/float64(counts[i]))
		} else {
			fv.Set(norm, Undefined)
		}
	}
	return fv
}
