package psylex

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

// A CategoryPattern is a named lexical category whose matcher is the
// disjunction of all its member word-patterns. A trailing '*' in a
// member means zero or more word characters or apostrophes. Matching is
// anchored at word boundaries but not to whole tokens, so a pattern may
// match a sub-span of a token more than once.
type CategoryPattern struct {
	Name string
	re   *regexp.Regexp
}

// FindAll returns every non-overlapping match of the category in word.
// The search resumes at the end of the previous match.
func (c *CategoryPattern) FindAll(word string) []string {
	return c.re.FindAllString(word, -1)
}

// A Dictionary is an ordered, immutable set of category patterns
// compiled from a category-definition file. It is built once at startup
// and shared read-only by the extraction pipeline.
type Dictionary struct {
	cats   []*CategoryPattern
	byName map[string]*CategoryPattern
}

var (
	categoryHeaderRE = regexp.MustCompile(`^\t[\w ]+$`)
	categoryMemberRE = regexp.MustCompile(`^\t\t.+ \(\d+\)$`)
)

// LoadDictionary compiles the category-definition file at path.
func LoadDictionary(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load dictionary: %w", err)
	}
	defer f.Close()
	d, err := CompileDictionary(f)
	if err != nil {
		return nil, fmt.Errorf("load dictionary %s: %w", path, err)
	}
	return d, nil
}

// CompileDictionary reads a category-definition stream and compiles one
// matcher per category.
//
// The format is line-oriented and two-tiered: a line of exactly one tab
// followed by word characters or spaces opens a new category and flushes
// the previous one; a line of two tabs, a token, a space and a
// parenthesized integer adds the token to the current category. Any
// other line is ignored. The final category is flushed when the stream
// ends. A stream with zero recognizable categories is a configuration
// error.
func CompileDictionary(r io.Reader) (*Dictionary, error) {
	d := &Dictionary{byName: make(map[string]*CategoryPattern)}

	var current string
	var members []string

	flush := func() error {
		if current == "" || len(members) == 0 {
			members = members[:0]
			return nil
		}
		expr := "(" + strings.Join(members, "|") + ")"
		expr = strings.ReplaceAll(expr, "*", `[\w']*`)
		re, err := regexp.Compile(expr)
		if err != nil {
			return fmt.Errorf("category %q: %w", current, err)
		}
		if _, dup := d.byName[current]; dup {
			return fmt.Errorf("duplicate category %q", current)
		}
		cat := &CategoryPattern{Name: current, re: re}
		d.cats = append(d.cats, cat)
		d.byName[current] = cat
		members = members[:0]
		return nil
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Text()
		switch {
		case categoryHeaderRE.MatchString(line):
			if err := flush(); err != nil {
				return nil, err
			}
			current = strings.Split(line, "\t")[1]
		case categoryMemberRE.MatchString(line):
			fields := strings.Fields(line)
			word := strings.ToLower(fields[0])
			members = append(members, `\b`+word+`\b`)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read dictionary: %w", err)
	}
	if err := flush(); err != nil {
		return nil, err
	}

	if len(d.cats) == 0 {
		return nil, fmt.Errorf("no categories found, check the dictionary file format")
	}
	return d, nil
}

// Len returns the number of categories.
func (d *Dictionary) Len() int {
	return len(d.cats)
}

// Categories returns the category names in definition order.
func (d *Dictionary) Categories() []string {
	names := make([]string, len(d.cats))
	for i, c := range d.cats {
		names[i] = c.Name
	}
	return names
}

// Category returns the pattern registered under name.
func (d *Dictionary) Category(name string) (*CategoryPattern, bool) {
	c, ok := d.byName[name]
	return c, ok
}

// Counts runs every category matcher over every token, case-folded,
// collecting all non-overlapping matches: a single long token may
// contribute more than one match to a category's count. The returned
// flags mark tokens that matched at least one category.
func (d *Dictionary) Counts(tokens []string) (map[string]int, []bool) {
	counts := make(map[string]int, len(d.cats))
	matched := make([]bool, len(tokens))

	lowered := make([]string, len(tokens))
	for i, tok := range tokens {
		lowered[i] = strings.ToLower(tok)
	}

	for _, cat := range d.cats {
		n := 0
		for i, word := range lowered {
			hits := cat.FindAll(word)
			if len(hits) > 0 {
				n += len(hits)
				matched[i] = true
			}
		}
		counts[cat.Name] = n
	}
	return counts, matched
}
