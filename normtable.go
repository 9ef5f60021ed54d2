package psylex

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// NormTable is an in-memory NormLookup backed by plain maps. Words are
// stored case-folded. It is immutable once loaded and therefore safe for
// concurrent readers.
type NormTable struct {
	entries map[string]map[PartOfSpeech]map[string]float64
	// posOrder preserves the order tags were added per word so that
	// PartsOfSpeech is deterministic.
	posOrder map[string][]PartOfSpeech
}

// NewNormTable returns an empty table.
func NewNormTable() *NormTable {
	return &NormTable{
		entries:  make(map[string]map[PartOfSpeech]map[string]float64),
		posOrder: make(map[string][]PartOfSpeech),
	}
}

// Add registers a norm value for (word, pos). Adding the same key twice
// overwrites the value.
func (t *NormTable) Add(word string, pos PartOfSpeech, norm string, value float64) {
	key := strings.ToLower(word)
	byPos, ok := t.entries[key]
	if !ok {
		byPos = make(map[PartOfSpeech]map[string]float64)
		t.entries[key] = byPos
	}
	values, ok := byPos[pos]
	if !ok {
		values = make(map[string]float64)
		byPos[pos] = values
		t.posOrder[key] = append(t.posOrder[key], pos)
	}
	values[norm] = value
}

// Contains reports whether the table has any entry for word.
func (t *NormTable) Contains(word string) bool {
	_, ok := t.entries[strings.ToLower(word)]
	return ok
}

// PartsOfSpeech returns the tags available for word, in load order.
func (t *NormTable) PartsOfSpeech(word string) []PartOfSpeech {
	return t.posOrder[strings.ToLower(word)]
}

// Value fetches the norm value for (word, pos, norm). A known word with
// no entry under pos is OutcomeNotFound; a known (word, pos) pair
// lacking the norm is OutcomeNotApplicable.
func (t *NormTable) Value(word string, pos PartOfSpeech, norm string) (float64, Outcome) {
	byPos, ok := t.entries[strings.ToLower(word)]
	if !ok {
		return 0, OutcomeNotFound
	}
	values, ok := byPos[pos]
	if !ok {
		return 0, OutcomeNotFound
	}
	v, ok := values[norm]
	if !ok {
		return 0, OutcomeNotApplicable
	}
	return v, OutcomeOK
}

// LoadNormTable reads a tab-separated norm file. Each line is
//
//	word<TAB>pos<TAB>NORM=value NORM=value ...
//
// with '!'-prefixed comment lines and blank lines ignored. A zero-entry
// file is a configuration error.
func LoadNormTable(path string) (*NormTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load norm table: %w", err)
	}
	defer f.Close()

	t := NewNormTable()
	n := 0
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "!") {
			continue
		}
		parts := strings.Split(line, "\t")
		if len(parts) < 3 {
			continue
		}
		word := parts[0]
		pos := PartOfSpeech(parts[1])
		for _, pair := range strings.Fields(parts[2]) {
			idx := strings.Index(pair, "=")
			if idx < 0 {
				continue
			}
			v, err := strconv.ParseFloat(pair[idx+1:], 64)
			if err != nil {
				continue
			}
			t.Add(word, pos, pair[:idx], v)
			n++
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read norm table: %w", err)
	}
	if n == 0 {
		return nil, fmt.Errorf("norm table %s has no entries", path)
	}
	return t, nil
}
