// Command psylex-server exposes the feature extractor as a JSON REST
// API.
//
// Endpoints:
//
//	POST /api/extract   body: {"text":"..."}
//	GET  /api/features
package main

import (
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"time"

	"github.com/rs/cors"

	"github.com/psylex/psylex"
)

type extractRequest struct {
	Text string `json:"text"`
}

type extractResponse struct {
	Features []featureJSON `json:"features"`
	Scores   []scoreJSON   `json:"scores,omitempty"`
}

type featureJSON struct {
	Name  string   `json:"name"`
	Value *float64 `json:"value"` // null when the feature is undefined
}

type scoreJSON struct {
	Dimension string  `json:"dimension"`
	Value     float64 `json:"value"`
}

type featuresResponse struct {
	Categories []string `json:"categories"`
	Norms      []string `json:"norms"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode error: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func toFeaturesJSON(fv *psylex.FeatureVector) []featureJSON {
	out := make([]featureJSON, 0, fv.Len())
	for _, name := range fv.Names() {
		v, _ := fv.Get(name)
		fj := featureJSON{Name: name}
		if psylex.IsDefined(v) {
			val := v
			fj.Value = &val
		}
		out = append(out, fj)
	}
	return out
}

func handleExtract(e *psylex.Extractor, preds []psylex.Predictor, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "POST required")
			return
		}
		var body extractRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Text == "" {
			writeError(w, http.StatusBadRequest, "body must be JSON with a non-empty 'text' field")
			return
		}

		fv, err := e.Extract(body.Text,
			psylex.WithContext(r.Context()),
			psylex.WithTimeout(timeout))
		if err != nil {
			writeError(w, http.StatusServiceUnavailable, err.Error())
			return
		}

		resp := extractResponse{Features: toFeaturesJSON(fv)}
		if len(preds) > 0 {
			scores, err := psylex.RunModels(preds, fv)
			if err != nil {
				writeError(w, http.StatusInternalServerError, err.Error())
				return
			}
			for i, dim := range psylex.Dimensions {
				resp.Scores = append(resp.Scores, scoreJSON{Dimension: dim, Value: scores[i]})
			}
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func handleFeatures(e *psylex.Extractor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "GET required")
			return
		}
		writeJSON(w, http.StatusOK, featuresResponse{
			Categories: e.Dictionary().Categories(),
			Norms:      psylex.NormNames,
		})
	}
}

func main() {
	cfg := psylex.LoadConfig()

	addr := flag.String("addr", cfg.ServerAddr, "listen address")
	dict := flag.String("dict", cfg.DictionaryPath, "category dictionary file")
	norms := flag.String("norms", cfg.NormsPath, "psycholinguistic norms file")
	models := flag.String("m", "", "model directory; when set, responses include personality scores")
	timeout := flag.Duration("timeout", 30*time.Second, "per-request extraction timeout")
	flag.Parse()

	cfg.DictionaryPath = *dict
	cfg.NormsPath = *norms
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	log.Printf("loading dictionary from %s, norms from %s", cfg.DictionaryPath, cfg.NormsPath)
	extractor, err := psylex.NewExtractorFromConfig(cfg)
	if err != nil {
		log.Fatal(err)
	}

	var predictors []psylex.Predictor
	if *models != "" {
		predictors, err = psylex.LoadModels(*models)
		if err != nil {
			log.Fatal(err)
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/extract", handleExtract(extractor, predictors, *timeout))
	mux.HandleFunc("/api/features", handleFeatures(extractor))

	handler := cors.Default().Handler(mux)

	log.Printf("listening on %s", *addr)
	if err := http.ListenAndServe(*addr, handler); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
