package psylex

import (
	"strings"
	"testing"
)

const testDictionary = "Dictionary\n" +
	"\tPOSITIVE EMOTION\n" +
	"\t\tgood (1)\n" +
	"\t\tgreat* (2)\n" +
	"\tNEGATIONS\n" +
	"\t\tnot (3)\n" +
	"\t\tnever (4)\n" +
	"\tNUMBERS\n" +
	"\t\tone (5)\n" +
	"\t\ttwo (6)\n" +
	"\tFAMILY\n" +
	"\t\tmother* (7)\n"

func compileTestDictionary(t *testing.T) *Dictionary {
	t.Helper()
	d, err := CompileDictionary(strings.NewReader(testDictionary))
	if err != nil {
		t.Fatalf("CompileDictionary: %v", err)
	}
	return d
}

func TestCompileDictionary(t *testing.T) {
	d := compileTestDictionary(t)

	want := []string{"POSITIVE EMOTION", "NEGATIONS", "NUMBERS", "FAMILY"}
	got := d.Categories()
	if len(got) != len(want) {
		t.Fatalf("got %d categories %v, want %d", len(got), got, len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("category %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCompileDictionaryErrors(t *testing.T) {
	tests := []struct {
		input string
		desc  string
	}{
		{"no tabs here\njust text\n", "No recognizable categories"},
		{"\tDUP\n\t\ta (1)\n\tDUP\n\t\tb (2)\n", "Duplicate category name"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			if _, err := CompileDictionary(strings.NewReader(tt.input)); err == nil {
				t.Error("expected an error, got nil")
			}
		})
	}
}

func TestLoadDictionaryMissingFile(t *testing.T) {
	if _, err := LoadDictionary("no/such/file.cat"); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestDictionaryCounts(t *testing.T) {
	d := compileTestDictionary(t)

	tests := []struct {
		text     string
		category string
		expected int
		desc     string
	}{
		{"this is good and great news", "POSITIVE EMOTION", 2, "Plain and wildcard members"},
		{"the greatest good", "POSITIVE EMOTION", 2, "Wildcard extends over suffix"},
		{"goodness gracious", "POSITIVE EMOTION", 0, "Plain member needs a full word"},
		{"never say never", "NEGATIONS", 2, "Repeated member counts twice"},
		{"NOT now", "NEGATIONS", 1, "Matching is case-insensitive"},
		{"mothers and mother", "FAMILY", 2, "Wildcard matches each word form"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			counts, _ := d.Counts(Tokenize(tt.text))
			if counts[tt.category] != tt.expected {
				t.Errorf("Counts(%q)[%s] = %d, want %d",
					tt.text, tt.category, counts[tt.category], tt.expected)
			}
		})
	}
}

func TestDictionaryMultipleMatchesPerToken(t *testing.T) {
	d := compileTestDictionary(t)

	// Matching is not anchored to whole tokens: a token containing two
	// member spans contributes two non-overlapping matches.
	counts, _ := d.Counts([]string{"mother's mothers"})
	if counts["FAMILY"] != 2 {
		t.Errorf("FAMILY count = %d, want 2", counts["FAMILY"])
	}
}

func TestDictionaryMatchedFlags(t *testing.T) {
	d := compileTestDictionary(t)
	tokens := Tokenize("good things never end")

	_, matched := d.Counts(tokens)
	want := []bool{true, false, true, false}
	for i := range want {
		if matched[i] != want[i] {
			t.Errorf("matched[%d] (%q) = %v, want %v", i, tokens[i], matched[i], want[i])
		}
	}
}
