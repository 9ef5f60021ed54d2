// Command psylex extracts linguistic feature vectors from text.
//
// Single-document mode reads one file and prints its relative feature
// vector. Corpus mode processes every file in a directory, standardizes
// the features across the corpus, and writes the dataset as CSV or
// SQLite. With a model directory, personality scores are computed and
// attached to the output.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/psylex/psylex"
)

func main() {
	cfg := psylex.LoadConfig()

	input := flag.String("i", "", "input text file (single-document mode)")
	corpus := flag.String("d", "", "corpus directory (corpus mode)")
	dict := flag.String("dict", cfg.DictionaryPath, "category dictionary file")
	norms := flag.String("norms", cfg.NormsPath, "psycholinguistic norms file")
	models := flag.String("m", "", "model directory; when set, personality scores are computed")
	csvOut := flag.String("o", "", "write the corpus dataset as CSV to this file (default stdout)")
	dbOut := flag.String("db", "", "also export the corpus dataset to this SQLite file")
	workers := flag.Int("workers", cfg.Workers, "parallel workers in corpus mode")
	noStd := flag.Bool("raw", false, "skip corpus-wide standardization")
	punkt := flag.Bool("punkt", false, "use the Punkt sentence segmenter")
	flag.Parse()

	if (*input == "") == (*corpus == "") {
		log.Fatal("exactly one of -i or -d is required")
	}

	cfg.DictionaryPath = *dict
	cfg.NormsPath = *norms
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	extractor, err := psylex.NewExtractorFromConfig(cfg)
	if err != nil {
		log.Fatal(err)
	}

	var segmenter psylex.Segmenter
	if *punkt {
		segmenter, err = psylex.NewPunktSegmenter()
		if err != nil {
			log.Fatalf("punkt segmenter: %v", err)
		}
	}

	var predictors []psylex.Predictor
	if *models != "" {
		predictors, err = psylex.LoadModels(*models)
		if err != nil {
			log.Fatal(err)
		}
	}

	if *input != "" {
		runSingle(extractor, segmenter, predictors, *input)
		return
	}
	runCorpus(extractor, segmenter, predictors, *corpus, *csvOut, *dbOut, *workers, !*noStd)
}

func runSingle(e *psylex.Extractor, seg psylex.Segmenter, preds []psylex.Predictor, path string) {
	text, err := psylex.ReadDocument(path)
	if err != nil {
		log.Fatal(err)
	}
	if len(text) == 0 {
		log.Printf("warning: %s is empty", path)
	}

	opts := []psylex.ExtractOpt{}
	if seg != nil {
		opts = append(opts, psylex.UsingSegmenter(seg))
	}
	fv, err := e.Extract(text, opts...)
	if err != nil {
		log.Fatal(err)
	}

	for _, name := range fv.Names() {
		v, _ := fv.Get(name)
		if psylex.IsDefined(v) {
			fmt.Printf("%s\t%g\n", name, v)
		} else {
			fmt.Printf("%s\t?\n", name)
		}
	}

	if len(preds) > 0 {
		scores, err := psylex.RunModels(preds, fv)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println()
		for i, dim := range psylex.Dimensions {
			fmt.Printf("%s\t%.4f\n", dim, scores[i])
		}
	}
}

func runCorpus(e *psylex.Extractor, seg psylex.Segmenter, preds []psylex.Predictor,
	dir, csvOut, dbOut string, workers int, standardize bool) {

	opts := []psylex.CorpusOpt{
		psylex.WithWorkers(workers),
		psylex.WithStandardization(standardize),
	}
	if seg != nil {
		opts = append(opts, psylex.UsingCorpusSegmenter(seg))
	}

	ds, err := e.ExtractCorpus(dir, opts...)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("extracted %d documents from %s", ds.Len(), dir)

	var scoreNames []string
	var scores map[string][]float64
	if len(preds) > 0 {
		scoreNames = psylex.Dimensions
		scores = make(map[string][]float64, ds.Len())
		for _, doc := range ds.Documents() {
			vals, err := psylex.RunModels(preds, doc.Features)
			if err != nil {
				log.Fatal(err)
			}
			scores[doc.ID] = vals
		}
	}

	out := os.Stdout
	if csvOut != "" {
		f, err := os.Create(csvOut)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		out = f
	}
	if err := psylex.WriteCSV(out, ds, scoreNames, scores); err != nil {
		log.Fatal(err)
	}

	if dbOut != "" {
		if err := psylex.ExportSQLite(dbOut, ds, scoreNames, scores); err != nil {
			log.Fatal(err)
		}
		log.Printf("dataset exported to %s", dbOut)
	}
}
