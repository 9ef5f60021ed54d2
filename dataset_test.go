package psylex

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeCorpus(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestExtractCorpusOrdering(t *testing.T) {
	e := newTestExtractor(t)
	dir := writeCorpus(t, map[string]string{
		"c.txt": "good news here",
		"a.txt": "never say never",
		"b.txt": "one two three",
	})

	ds, err := e.ExtractCorpus(dir, WithStandardization(false))
	if err != nil {
		t.Fatalf("ExtractCorpus: %v", err)
	}

	want := []string{"a.txt", "b.txt", "c.txt"}
	docs := ds.Documents()
	if len(docs) != len(want) {
		t.Fatalf("got %d documents, want %d", len(docs), len(want))
	}
	for i, doc := range docs {
		if doc.ID != want[i] {
			t.Errorf("document %d = %q, want %q", i, doc.ID, want[i])
		}
	}
}

func TestExtractCorpusMatchesSingleExtraction(t *testing.T) {
	e := newTestExtractor(t)
	text := "this is good and great news"
	dir := writeCorpus(t, map[string]string{"doc.txt": text})

	ds, err := e.ExtractCorpus(dir, WithStandardization(false), WithWorkers(2))
	if err != nil {
		t.Fatalf("ExtractCorpus: %v", err)
	}

	single, err := e.Extract(text, WithAbsoluteCounts(true))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	doc, ok := ds.Get("doc.txt")
	if !ok {
		t.Fatal("doc.txt missing from dataset")
	}
	for _, name := range single.Names() {
		want, _ := single.Get(name)
		got, ok := doc.Features.Get(name)
		if !ok {
			t.Errorf("feature %s missing from corpus vector", name)
			continue
		}
		if IsDefined(want) != IsDefined(got) || (IsDefined(want) && want != got) {
			t.Errorf("%s = %g, want %g", name, got, want)
		}
	}
}

func TestExtractCorpusKeepsWordCount(t *testing.T) {
	e := newTestExtractor(t)
	dir := writeCorpus(t, map[string]string{
		"a.txt": "one two",
		"b.txt": "one two three four",
	})

	ds, err := e.ExtractCorpus(dir, WithStandardization(false))
	if err != nil {
		t.Fatalf("ExtractCorpus: %v", err)
	}

	a, _ := ds.Get("a.txt")
	if wc, ok := a.Features.Get("WC"); !ok || wc != 2 {
		t.Errorf("a.txt WC = %g (present=%v), want 2", wc, ok)
	}
}

func TestExtractCorpusStandardizes(t *testing.T) {
	e := newTestExtractor(t)
	dir := writeCorpus(t, map[string]string{
		"a.txt": "one two",
		"b.txt": "one two three four five six",
	})

	ds, err := e.ExtractCorpus(dir)
	if err != nil {
		t.Fatalf("ExtractCorpus: %v", err)
	}

	// Word counts {2,6}: mean 4, sample stddev 2*sqrt(2), so the
	// deviations ±2 standardize to ±1/sqrt(2).
	a, _ := ds.Get("a.txt")
	b, _ := ds.Get("b.txt")
	wcA, _ := a.Features.Get("WC")
	wcB, _ := b.Features.Get("WC")
	if !almostEqual(wcA, -0.7071067811865475) || !almostEqual(wcB, 0.7071067811865475) {
		t.Errorf("standardized WC = %g, %g, want ∓1/sqrt(2)", wcA, wcB)
	}
}

func TestExtractCorpusSkipsEmptyFiles(t *testing.T) {
	SetLogOutput(io.Discard)
	defer SetLogOutput(os.Stderr)

	e := newTestExtractor(t)
	dir := writeCorpus(t, map[string]string{
		"a.txt": "real content",
		"b.txt": "",
	})

	ds, err := e.ExtractCorpus(dir, WithStandardization(false))
	if err != nil {
		t.Fatalf("ExtractCorpus: %v", err)
	}
	if ds.Len() != 1 {
		t.Fatalf("got %d documents, want the empty file skipped", ds.Len())
	}
	if _, ok := ds.Get("b.txt"); ok {
		t.Error("b.txt should have been skipped")
	}
}

func TestExtractCorpusEmptyDirectory(t *testing.T) {
	e := newTestExtractor(t)
	if _, err := e.ExtractCorpus(t.TempDir()); !errors.Is(err, ErrEmptyCorpus) {
		t.Errorf("got %v, want ErrEmptyCorpus", err)
	}
}

func TestExtractCorpusCancelled(t *testing.T) {
	e := newTestExtractor(t)
	dir := writeCorpus(t, map[string]string{"a.txt": "some text"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := e.ExtractCorpus(dir, WithCorpusContext(ctx)); err == nil {
		t.Error("expected an error from a cancelled context")
	}
}

func TestValidateSchema(t *testing.T) {
	ds := NewDataset()

	first := NewFeatureVector()
	first.Set("X", 1)
	first.Set("Y", 2)
	ds.Add(&Document{ID: "a", Features: first})

	second := NewFeatureVector()
	second.Set("X", 1)
	ds.Add(&Document{ID: "b", Features: second})

	if err := validateSchema(ds); !errors.Is(err, ErrSchemaMismatch) {
		t.Errorf("got %v, want ErrSchemaMismatch", err)
	}
}

func TestReadDocumentPlainText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	if err := os.WriteFile(path, []byte("plain contents"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := ReadDocument(path)
	if err != nil {
		t.Fatalf("ReadDocument: %v", err)
	}
	if got != "plain contents" {
		t.Errorf("ReadDocument = %q", got)
	}
}

func TestWriteCSVReproducible(t *testing.T) {
	e := newTestExtractor(t)
	dir := writeCorpus(t, map[string]string{
		"a.txt": "good news",
		"b.txt": "never again",
	})

	ds, err := e.ExtractCorpus(dir, WithStandardization(false))
	if err != nil {
		t.Fatalf("ExtractCorpus: %v", err)
	}

	var first, second bytes.Buffer
	if err := WriteCSV(&first, ds, nil, nil); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	if err := WriteCSV(&second, ds, nil, nil); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Error("two CSV dumps of the same dataset differ")
	}

	lines := strings.Split(strings.TrimSpace(first.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d CSV lines, want header plus two rows", len(lines))
	}
	if !strings.HasPrefix(lines[0], "document,") {
		t.Errorf("header = %q, want it to start with the document column", lines[0])
	}
	if !strings.HasPrefix(lines[1], "a.txt,") || !strings.HasPrefix(lines[2], "b.txt,") {
		t.Errorf("rows out of order: %q / %q", lines[1], lines[2])
	}
}

func TestWriteCSVWithScores(t *testing.T) {
	ds := datasetFrom(t, "X", []float64{1, 2})
	scores := map[string][]float64{
		"a": {0.5},
		"b": {Undefined},
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, ds, []string{"Extraversion"}, scores); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if lines[0] != "document,X,Extraversion" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "a,1,0.5" {
		t.Errorf("row a = %q", lines[1])
	}
	if lines[2] != "b,2,?" {
		t.Errorf("row b = %q, undefined scores should be ?", lines[2])
	}
}

func TestWriteCSVEmptyDataset(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, NewDataset(), nil, nil); !errors.Is(err, ErrEmptyCorpus) {
		t.Errorf("got %v, want ErrEmptyCorpus", err)
	}
}

func TestExportSQLite(t *testing.T) {
	ds := datasetFrom(t, "X", []float64{1, Undefined})
	path := filepath.Join(t.TempDir(), "out.db")

	scores := map[string][]float64{"a": {0.25}, "b": {-0.25}}
	if err := ExportSQLite(path, ds, []string{"Extraversion"}, scores); err != nil {
		t.Fatalf("ExportSQLite: %v", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open exported database: %v", err)
	}
	defer db.Close()

	var docs, feats, scoreRows, nulls int
	if err := db.QueryRow("SELECT COUNT(*) FROM documents").Scan(&docs); err != nil {
		t.Fatal(err)
	}
	if err := db.QueryRow("SELECT COUNT(*) FROM features").Scan(&feats); err != nil {
		t.Fatal(err)
	}
	if err := db.QueryRow("SELECT COUNT(*) FROM scores").Scan(&scoreRows); err != nil {
		t.Fatal(err)
	}
	if err := db.QueryRow("SELECT COUNT(*) FROM features WHERE value IS NULL").Scan(&nulls); err != nil {
		t.Fatal(err)
	}

	if docs != 2 || feats != 2 || scoreRows != 2 {
		t.Errorf("rows = %d documents, %d features, %d scores; want 2 each", docs, feats, scoreRows)
	}
	if nulls != 1 {
		t.Errorf("NULL feature rows = %d, want 1 (the undefined value)", nulls)
	}
}
