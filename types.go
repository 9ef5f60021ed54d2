package psylex

import (
	"io"
	"log"
	"math"
	"os"
)

// Undefined is the value used for features that had no evidence, such as
// a norm average with zero eligible words. It is a quiet NaN and must be
// tested with IsDefined, never with ==.
var Undefined = math.NaN()

// IsDefined reports whether v carries a real feature value.
func IsDefined(v float64) bool {
	return !math.IsNaN(v)
}

// A FeatureVector is an ordered mapping from feature name to value.
// Insertion order is preserved and observable: it is surfaced verbatim in
// reports and persisted datasets. Setting an existing key updates the
// value in place without moving the key.
type FeatureVector struct {
	names  []string
	values map[string]float64
}

// NewFeatureVector returns an empty feature vector.
func NewFeatureVector() *FeatureVector {
	return &FeatureVector{values: make(map[string]float64)}
}

// Set stores a value under name, appending the name on first insertion.
func (fv *FeatureVector) Set(name string, value float64) {
	if _, ok := fv.values[name]; !ok {
		fv.names = append(fv.names, name)
	}
	fv.values[name] = value
}

// Get returns the value stored under name.
func (fv *FeatureVector) Get(name string) (float64, bool) {
	v, ok := fv.values[name]
	return v, ok
}

// Names returns the feature names in insertion order. The returned slice
// is a copy.
func (fv *FeatureVector) Names() []string {
	out := make([]string, len(fv.names))
	copy(out, fv.names)
	return out
}

// Len returns the number of features.
func (fv *FeatureVector) Len() int {
	return len(fv.names)
}

// Delete removes name from the vector. Removing an absent name is a no-op.
func (fv *FeatureVector) Delete(name string) {
	if _, ok := fv.values[name]; !ok {
		return
	}
	delete(fv.values, name)
	for i, n := range fv.names {
		if n == name {
			fv.names = append(fv.names[:i], fv.names[i+1:]...)
			break
		}
	}
}

// Rename replaces old with new, keeping the key's position. Renaming a
// key to itself, or a key that is absent, is a no-op.
func (fv *FeatureVector) Rename(old, new string) {
	if old == new {
		return
	}
	v, ok := fv.values[old]
	if !ok {
		return
	}
	delete(fv.values, old)
	fv.values[new] = v
	for i, n := range fv.names {
		if n == old {
			fv.names[i] = new
			break
		}
	}
}

// Merge appends every feature of other, in order, to fv.
func (fv *FeatureVector) Merge(other *FeatureVector) {
	for _, name := range other.names {
		fv.Set(name, other.values[name])
	}
}

// Clone returns a deep copy of the vector.
func (fv *FeatureVector) Clone() *FeatureVector {
	out := NewFeatureVector()
	out.Merge(fv)
	return out
}

// A Document pairs a corpus identifier (usually a file name) with its
// extracted feature vector.
type Document struct {
	ID       string
	Features *FeatureVector
}

// A Dataset is an ordered collection of documents sharing an identical
// feature schema. It is produced by ExtractCorpus and rewritten in place
// by Standardize.
type Dataset struct {
	docs  []*Document
	index map[string]int
}

// NewDataset returns an empty dataset.
func NewDataset() *Dataset {
	return &Dataset{index: make(map[string]int)}
}

// Add appends doc to the dataset. A duplicate identifier replaces the
// earlier document in place.
func (ds *Dataset) Add(doc *Document) {
	if i, ok := ds.index[doc.ID]; ok {
		ds.docs[i] = doc
		return
	}
	ds.index[doc.ID] = len(ds.docs)
	ds.docs = append(ds.docs, doc)
}

// Len returns the number of documents.
func (ds *Dataset) Len() int {
	return len(ds.docs)
}

// Documents returns the documents in insertion order.
func (ds *Dataset) Documents() []*Document {
	return ds.docs
}

// Get returns the document stored under id.
func (ds *Dataset) Get(id string) (*Document, bool) {
	i, ok := ds.index[id]
	if !ok {
		return nil, false
	}
	return ds.docs[i], true
}

// Schema returns the feature names of the first document, which every
// document in a valid dataset shares.
func (ds *Dataset) Schema() []string {
	if len(ds.docs) == 0 {
		return nil
	}
	return ds.docs[0].Features.Names()
}

var logger = log.New(os.Stderr, "psylex: ", 0)

// SetLogOutput redirects the package's warning output. Pass io.Discard
// to silence per-word lookup warnings.
func SetLogOutput(w io.Writer) {
	logger.SetOutput(w)
}
