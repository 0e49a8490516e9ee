package catalog

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// missingMarkers are the field values read as missing, matching the default
// NA markers of common dataframe readers.
var missingMarkers = map[string]struct{}{
	"":         {},
	"#N/A":     {},
	"#N/A N/A": {},
	"#NA":      {},
	"-1.#IND":  {},
	"-1.#QNAN": {},
	"-NaN":     {},
	"-nan":     {},
	"1.#IND":   {},
	"1.#QNAN":  {},
	"<NA>":     {},
	"N/A":      {},
	"NA":       {},
	"NULL":     {},
	"NaN":      {},
	"None":     {},
	"n/a":      {},
	"nan":      {},
	"null":     {},
}

func isMissing(v string) bool {
	_, ok := missingMarkers[v]
	return ok
}

// readDelimited parses a header-first delimited file. Empty fields and the
// usual NA markers are treated as missing values.
func readDelimited(path string, comma rune) (table, error) {
	f, err := os.Open(path)
	if err != nil {
		return table{}, &DatasetNotFoundError{Path: path, Err: err}
	}
	defer f.Close()

	r := csv.NewReader(bufio.NewReader(f))
	r.Comma = comma
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return table{}, nil
	}
	if err != nil {
		return table{}, fmt.Errorf("catalog: failed to read header of %q: %w", path, err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	tbl := table{columns: header}
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return table{}, fmt.Errorf("catalog: failed to read %q: %w", path, err)
		}
		row := make([]cell, len(rec))
		for i, v := range rec {
			row[i] = cell{value: v, valid: !isMissing(v)}
		}
		tbl.rows = append(tbl.rows, row)
	}
	return tbl, nil
}
