package psylex

import (
	"errors"

	"gonum.org/v1/gonum/stat"
)

// ErrEmptyCorpus is returned when corpus-wide operations receive zero
// documents.
var ErrEmptyCorpus = errors.New("psylex: empty corpus")

// Standardize rewrites every vector of the dataset in z-score form: for
// each feature, the mean and sample standard deviation (n−1 in the
// denominator) are computed across the documents that have a defined
// value, and each defined value v becomes (v − mean) / stddev.
//
// A zero-variance feature, or one with fewer than two defined values,
// becomes Undefined for every document. Undefined inputs stay
// Undefined. Standardization only makes sense in corpus mode; a
// single-document vector has no population to standardize against.
func Standardize(ds *Dataset) error {
	if ds == nil || ds.Len() == 0 {
		return ErrEmptyCorpus
	}

	docs := ds.Documents()
	for _, name := range ds.Schema() {
		values := make([]float64, 0, len(docs))
		for _, doc := range docs {
			v, ok := doc.Features.Get(name)
			if ok && IsDefined(v) {
				values = append(values, v)
			}
		}

		if len(values) < 2 {
			for _, doc := range docs {
				doc.Features.Set(name, Undefined)
			}
			continue
		}

		mean := stat.Mean(values, nil)
		stddev := stat.StdDev(values, nil)
		if stddev == 0 {
			for _, doc := range docs {
				doc.Features.Set(name, Undefined)
			}
			continue
		}

		for _, doc := range docs {
			v, ok := doc.Features.Get(name)
			if !ok || !IsDefined(v) {
				continue
			}
			doc.Features.Set(name, (v-mean)/stddev)
		}
	}
	return nil
}
