package psylex

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/ledongthuc/pdf"
)

// ErrSchemaMismatch marks a document whose feature names diverge from
// the rest of the corpus; such a document would silently corrupt the
// standardization statistics.
var ErrSchemaMismatch = fmt.Errorf("psylex: feature schema mismatch")

// A CorpusOpt adjusts a corpus extraction run.
type CorpusOpt func(*corpusOpts)

type corpusOpts struct {
	ctx         context.Context
	workers     int
	standardize bool
	segmenter   Segmenter
}

// WithCorpusContext sets the context for the whole run; cancelling it
// aborts pending documents.
func WithCorpusContext(ctx context.Context) CorpusOpt {
	return func(o *corpusOpts) { o.ctx = ctx }
}

// WithWorkers bounds the per-document extraction pool. Values below one
// fall back to the number of CPUs.
func WithWorkers(n int) CorpusOpt {
	return func(o *corpusOpts) { o.workers = n }
}

// WithStandardization toggles corpus-wide z-scoring of the resulting
// dataset. Enabled by default.
func WithStandardization(enabled bool) CorpusOpt {
	return func(o *corpusOpts) { o.standardize = enabled }
}

// UsingCorpusSegmenter replaces the sentence splitter for every
// document in the run.
func UsingCorpusSegmenter(s Segmenter) CorpusOpt {
	return func(o *corpusOpts) { o.segmenter = s }
}

// ExtractCorpus runs the extraction pipeline once per file in dir and
// returns the dataset, standardized across the corpus unless disabled.
//
// Files are processed in directory order (sorted by name) and the
// dataset preserves that order regardless of worker scheduling.
// Extraction is parallel across documents: each document depends only
// on the immutable dictionary and lookup plus its own text, and the
// standardization step is the synchronization barrier. Absolute counts
// are kept, as standardization needs the full schema.
func (e *Extractor) ExtractCorpus(dir string, opts ...CorpusOpt) (*Dataset, error) {
	o := corpusOpts{
		ctx:         context.Background(),
		workers:     runtime.NumCPU(),
		standardize: true,
		segmenter:   regexSegmenter{},
	}
	for _, apply := range opts {
		apply(&o)
	}
	if o.workers < 1 {
		o.workers = runtime.NumCPU()
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read corpus directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if info, err := entry.Info(); err == nil && info.Size() == 0 {
			logger.Printf("warning: skipping empty file %s", entry.Name())
			continue
		}
		files = append(files, entry.Name())
	}
	if len(files) == 0 {
		return nil, ErrEmptyCorpus
	}

	type result struct {
		idx int
		doc *Document
		err error
	}

	jobs := make(chan int)
	results := make(chan result, len(files))
	var wg sync.WaitGroup

	for w := 0; w < o.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				name := files[idx]
				text, err := ReadDocument(filepath.Join(dir, name))
				if err != nil {
					results <- result{idx: idx, err: fmt.Errorf("%s: %w", name, err)}
					continue
				}
				fv, err := e.Extract(text,
					WithContext(o.ctx),
					WithAbsoluteCounts(true),
					UsingSegmenter(o.segmenter))
				if err != nil {
					results <- result{idx: idx, err: fmt.Errorf("%s: %w", name, err)}
					continue
				}
				results <- result{idx: idx, doc: &Document{ID: name, Features: fv}}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i := range files {
			select {
			case jobs <- i:
			case <-o.ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	ordered := make([]*Document, len(files))
	var firstErr error
	for res := range results {
		if res.err != nil {
			if firstErr == nil {
				firstErr = res.err
			}
			continue
		}
		ordered[res.idx] = res.doc
	}
	if firstErr != nil {
		return nil, firstErr
	}
	if err := o.ctx.Err(); err != nil {
		return nil, err
	}

	ds := NewDataset()
	for _, doc := range ordered {
		if doc != nil {
			ds.Add(doc)
		}
	}
	if ds.Len() == 0 {
		return nil, ErrEmptyCorpus
	}

	if err := validateSchema(ds); err != nil {
		return nil, err
	}

	if o.standardize {
		if err := Standardize(ds); err != nil {
			return nil, err
		}
	}
	return ds, nil
}

// validateSchema rejects any document whose feature-name sequence
// differs from the first document's.
func validateSchema(ds *Dataset) error {
	schema := ds.Schema()
	for _, doc := range ds.Documents() {
		names := doc.Features.Names()
		if len(names) != len(schema) {
			return fmt.Errorf("%w: document %s has %d features, want %d",
				ErrSchemaMismatch, doc.ID, len(names), len(schema))
		}
		for i, name := range names {
			if name != schema[i] {
				return fmt.Errorf("%w: document %s has %q at position %d, want %q",
					ErrSchemaMismatch, doc.ID, name, i, schema[i])
			}
		}
	}
	return nil
}

// ReadDocument loads a corpus file as plain text. PDF files are
// extracted page by page; everything else is read verbatim.
func ReadDocument(path string) (string, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return readPDF(path)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}
	return string(raw), nil
}

func readPDF(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	var b strings.Builder
	total := r.NumPage()
	for i := 1; i <= total; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		content, pageErr := p.GetPlainText(nil)
		if pageErr != nil {
			continue
		}
		b.WriteString(content)
		b.WriteString("\n")
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("no extractable text in pdf")
	}
	return b.String(), nil
}
