package psylex

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	_ "modernc.org/sqlite"
)

// missingMark is the cell written for undefined values in tabular
// exports.
const missingMark = "?"

func formatValue(v float64) string {
	if !IsDefined(v) {
		return missingMark
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// WriteCSV dumps the dataset as one row per document: the document
// identifier, every feature in schema order, then one column per
// attached score dimension. Output is byte-reproducible for a fixed
// dataset and fixed scores.
//
// scores may be nil; otherwise it maps document identifier to one value
// per entry of scoreNames.
func WriteCSV(w io.Writer, ds *Dataset, scoreNames []string, scores map[string][]float64) error {
	if ds == nil || ds.Len() == 0 {
		return ErrEmptyCorpus
	}

	cw := csv.NewWriter(w)
	schema := ds.Schema()

	header := make([]string, 0, 1+len(schema)+len(scoreNames))
	header = append(header, "document")
	header = append(header, schema...)
	header = append(header, scoreNames...)
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, doc := range ds.Documents() {
		row := make([]string, 0, len(header))
		row = append(row, doc.ID)
		for _, name := range schema {
			v, _ := doc.Features.Get(name)
			row = append(row, formatValue(v))
		}
		if scores != nil {
			vals := scores[doc.ID]
			for i := range scoreNames {
				if i < len(vals) {
					row = append(row, formatValue(vals[i]))
				} else {
					row = append(row, missingMark)
				}
			}
		} else {
			for range scoreNames {
				row = append(row, missingMark)
			}
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

const datasetSchemaSQL = `
CREATE TABLE IF NOT EXISTS documents (
    id   INTEGER PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    pos  INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS features (
    document_id INTEGER NOT NULL REFERENCES documents(id),
    name        TEXT NOT NULL,
    pos         INTEGER NOT NULL,
    value       REAL,
    PRIMARY KEY (document_id, name)
);

CREATE TABLE IF NOT EXISTS scores (
    document_id INTEGER NOT NULL REFERENCES documents(id),
    dimension   TEXT NOT NULL,
    value       REAL,
    PRIMARY KEY (document_id, dimension)
);
`

// ExportSQLite persists the dataset (and optional per-document scores)
// into a SQLite database at path. Undefined values are stored as NULL.
// Feature and document positions are stored so the original ordering
// can be reconstructed.
func ExportSQLite(path string, ds *Dataset, scoreNames []string, scores map[string][]float64) error {
	if ds == nil || ds.Len() == 0 {
		return ErrEmptyCorpus
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open sqlite: %w", err)
	}
	defer db.Close()

	if _, err := db.Exec(datasetSchemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin export: %w", err)
	}
	defer tx.Rollback()

	insDoc, err := tx.Prepare("INSERT INTO documents (name, pos) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer insDoc.Close()
	insFeat, err := tx.Prepare("INSERT INTO features (document_id, name, pos, value) VALUES (?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer insFeat.Close()
	insScore, err := tx.Prepare("INSERT INTO scores (document_id, dimension, value) VALUES (?, ?, ?)")
	if err != nil {
		return err
	}
	defer insScore.Close()

	for pos, doc := range ds.Documents() {
		res, err := insDoc.Exec(doc.ID, pos)
		if err != nil {
			return fmt.Errorf("insert document %s: %w", doc.ID, err)
		}
		docID, err := res.LastInsertId()
		if err != nil {
			return err
		}

		for i, name := range doc.Features.Names() {
			v, _ := doc.Features.Get(name)
			var cell any
			if IsDefined(v) {
				cell = v
			}
			if _, err := insFeat.Exec(docID, name, i, cell); err != nil {
				return fmt.Errorf("insert feature %s/%s: %w", doc.ID, name, err)
			}
		}

		if scores != nil {
			vals := scores[doc.ID]
			for i, dim := range scoreNames {
				var cell any
				if i < len(vals) && IsDefined(vals[i]) {
					cell = vals[i]
				}
				if _, err := insScore.Exec(docID, dim, cell); err != nil {
					return fmt.Errorf("insert score %s/%s: %w", doc.ID, dim, err)
				}
			}
		}
	}

	return tx.Commit()
}
