package catalog

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Required column names.
const (
	TitleColumn = "title"
	GenreColumn = "genre"
)

// ErrDatasetNotFound is matched by every *DatasetNotFoundError.
var ErrDatasetNotFound = errors.New("dataset not found")

// DatasetNotFoundError reports a dataset source that could not be opened.
type DatasetNotFoundError struct {
	Path string
	Err  error
}

func (e *DatasetNotFoundError) Error() string {
	return fmt.Sprintf("dataset %q not found: %v", e.Path, e.Err)
}

func (e *DatasetNotFoundError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrDatasetNotFound) succeed.
func (e *DatasetNotFoundError) Is(target error) bool { return target == ErrDatasetNotFound }

// SchemaError reports required columns absent from the dataset.
type SchemaError struct {
	Path    string
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("dataset %q must have %q and %q columns (missing: %s)",
		e.Path, TitleColumn, GenreColumn, strings.Join(e.Missing, ", "))
}

// Entry is one movie of the catalog.
type Entry struct {
	Title string
	Genre string
}

// Catalog is the ordered, immutable list of entries. An entry's position is
// its row and column in the similarity matrix.
type Catalog struct {
	entries []Entry
	first   map[string]int
	dropped int
}

// New builds a catalog from already normalized entries, keeping their order.
func New(entries []Entry) *Catalog {
	c := &Catalog{
		entries: append([]Entry(nil), entries...),
		first:   make(map[string]int, len(entries)),
	}
	for i, e := range c.entries {
		if _, seen := c.first[e.Title]; !seen {
			c.first[e.Title] = i
		}
	}
	return c
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

// Entry returns the entry at position i.
func (c *Catalog) Entry(i int) Entry {
	return c.entries[i]
}

// Entries returns a copy of all entries in position order.
func (c *Catalog) Entries() []Entry {
	return append([]Entry(nil), c.entries...)
}

// Titles returns every title in position order, duplicates included.
func (c *Catalog) Titles() []string {
	titles := make([]string, len(c.entries))
	for i, e := range c.entries {
		titles[i] = e.Title
	}
	return titles
}

// Genres returns every normalized genre text in position order.
func (c *Catalog) Genres() []string {
	genres := make([]string, len(c.entries))
	for i, e := range c.entries {
		genres[i] = e.Genre
	}
	return genres
}

// Position returns the position of the first entry whose title equals title
// byte for byte.
func (c *Catalog) Position(title string) (int, bool) {
	if c == nil {
		return 0, false
	}
	pos, ok := c.first[title]
	return pos, ok
}

// Dropped returns how many source rows were discarded during load.
func (c *Catalog) Dropped() int {
	if c == nil {
		return 0
	}
	return c.dropped
}

// Source describes where the dataset lives.
type Source struct {
	Path string
	// Format is one of csv, tsv, sqlite, duckdb, parquet or json. Empty infers it
	// from the file extension.
	Format string
	// Table names the table to read from database sources.
	Table string
}

// ResolveFormat returns the effective format of the source.
func (s Source) ResolveFormat() string {
	if f := strings.ToLower(strings.TrimSpace(s.Format)); f != "" {
		return f
	}
	switch strings.ToLower(filepath.Ext(s.Path)) {
	case ".tsv", ".tab":
		return "tsv"
	case ".db", ".sqlite", ".sqlite3":
		return "sqlite"
	case ".duckdb", ".ddb":
		return "duckdb"
	case ".parquet":
		return "parquet"
	case ".json", ".jsonl", ".ndjson":
		return "json"
	default:
		return "csv"
	}
}

// cell is one raw dataset value; valid is false for missing values.
type cell struct {
	value string
	valid bool
}

// table is the raw tabular content produced by a reader.
type table struct {
	columns []string
	rows    [][]cell
}

// Load reads the dataset, validates the required columns and normalizes genre
// text. Rows with a missing genre or an empty title are dropped.
func Load(ctx context.Context, src Source) (*Catalog, error) {
	var (
		tbl table
		err error
	)
	switch format := src.ResolveFormat(); format {
	case "csv":
		tbl, err = readDelimited(src.Path, ',')
	case "tsv":
		tbl, err = readDelimited(src.Path, '\t')
	case "sqlite":
		tbl, err = readSQLite(ctx, src.Path, src.Table)
	case "duckdb", "parquet", "json":
		tbl, err = readDuckDB(ctx, src.Path, src.Table, format)
	default:
		return nil, fmt.Errorf("catalog: unsupported dataset format %q", format)
	}
	if err != nil {
		return nil, err
	}

	titleIdx, genreIdx := -1, -1
	for i, name := range tbl.columns {
		switch name {
		case TitleColumn:
			if titleIdx < 0 {
				titleIdx = i
			}
		case GenreColumn:
			if genreIdx < 0 {
				genreIdx = i
			}
		}
	}
	var missing []string
	if titleIdx < 0 {
		missing = append(missing, TitleColumn)
	}
	if genreIdx < 0 {
		missing = append(missing, GenreColumn)
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Path: src.Path, Missing: missing}
	}

	entries := make([]Entry, 0, len(tbl.rows))
	dropped := 0
	for _, r := range tbl.rows {
		title, genre := at(r, titleIdx), at(r, genreIdx)
		if !genre.valid || !title.valid || title.value == "" {
			dropped++
			continue
		}
		entries = append(entries, Entry{Title: title.value, Genre: NormalizeGenre(genre.value)})
	}

	c := New(entries)
	c.dropped = dropped
	return c, nil
}

func at(r []cell, i int) cell {
	if i < len(r) {
		return r[i]
	}
	return cell{}
}

// NormalizeGenre lower-cases and trims raw genre text and removes English stop
// words. Tokens are split on whitespace only; punctuation is kept.
func NormalizeGenre(raw string) string {
	lowered := strings.TrimSpace(cases.Lower(language.Und).String(raw))
	fields := strings.Fields(lowered)
	kept := fields[:0]
	for _, f := range fields {
		if IsStopWord(f) {
			continue
		}
		kept = append(kept, f)
	}
	return strings.Join(kept, " ")
}
