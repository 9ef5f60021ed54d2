package psylex

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
)

// Dimensions are the personality traits the bundled models score, in
// output order.
var Dimensions = []string{
	"Extraversion",
	"Emotional stability",
	"Agreeableness",
	"Conscientiousness",
	"Openness to experience",
}

// dimensionFiles are the model file names for each entry of Dimensions.
var dimensionFiles = []string{
	"extra.model", "ems.model", "agree.model", "consc.model", "open.model",
}

// A Predictor consumes a named feature mapping and returns a scalar
// score. Predictors use a fixed attribute schema: features the schema
// does not recognize are ignored, and schema attributes the vector does
// not provide are treated as missing.
type Predictor interface {
	Predict(features *FeatureVector) (float64, error)
}

// A LinearModel is a weighted sum over a fixed attribute list. It is the
// serialization unit for pretrained predictors.
type LinearModel struct {
	Name       string
	Attributes []string
	Weights    map[string]float64
	Intercept  float64
}

// Predict computes intercept + Σ weight·value over the model's
// attributes. A missing or undefined attribute is reported as a warning
// and contributes nothing, matching the missing-value contract of the
// model collaborator.
func (m *LinearModel) Predict(features *FeatureVector) (float64, error) {
	if features == nil {
		return 0, fmt.Errorf("model %s: nil feature vector", m.Name)
	}
	score := m.Intercept
	for _, attr := range m.Attributes {
		v, ok := features.Get(attr)
		if !ok {
			logger.Printf("warning: no value for attribute %s, treating as missing", attr)
			continue
		}
		if !IsDefined(v) {
			logger.Printf("warning: attribute %s missing", attr)
			continue
		}
		score += m.Weights[attr] * v
	}
	return score, nil
}

// Write gob-encodes the model to path.
func (m *LinearModel) Write(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write model: %w", err)
	}
	defer f.Close()
	if err := gob.NewEncoder(f).Encode(m); err != nil {
		return fmt.Errorf("encode model %s: %w", m.Name, err)
	}
	return nil
}

// LoadModel gob-decodes a LinearModel from path.
func LoadModel(path string) (*LinearModel, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}
	defer f.Close()
	var m LinearModel
	if err := gob.NewDecoder(f).Decode(&m); err != nil {
		return nil, fmt.Errorf("decode model %s: %w", path, err)
	}
	return &m, nil
}

// LoadModels loads one predictor per personality dimension from dir,
// using the fixed per-dimension file names.
func LoadModels(dir string) ([]Predictor, error) {
	preds := make([]Predictor, len(dimensionFiles))
	for i, name := range dimensionFiles {
		m, err := LoadModel(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		preds[i] = m
	}
	return preds, nil
}

// RunModels applies every predictor to the feature vector and returns
// one score per predictor, in order.
func RunModels(preds []Predictor, features *FeatureVector) ([]float64, error) {
	scores := make([]float64, len(preds))
	for i, p := range preds {
		s, err := p.Predict(features)
		if err != nil {
			return nil, err
		}
		scores[i] = s
	}
	return scores, nil
}
