package catalog

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestNormalizeGenre(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Sci-Fi Horror", "sci-fi horror"},
		{"  Drama  ", "drama"},
		{"The Story of a Romance", "story romance"},
		{"Action, Adventure", "action, adventure"},
		{"", ""},
		{"   ", ""},
		{"the and of", ""},
	}
	for _, tt := range tests {
		if got := NormalizeGenre(tt.in); got != tt.want {
			t.Errorf("NormalizeGenre(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLoadCSV(t *testing.T) {
	path := writeFile(t, "movies.csv", "id,title,genre,year\n"+
		"1,Alien,Sci-Fi Horror,1979\n"+
		"2,Blank,,2000\n"+
		"3,Alien 2,sci-fi horror ACTION,1986\n"+
		"4,,comedy,1990\n"+
		"5,Alien,Remake,2030\n"+
		"6,Void,NA,2001\n"+
		"7,Gap,N/A,2002\n"+
		"8,Hole,null,2003\n"+
		"9,Nada,NaN,2004\n"+
		"10,None,Thriller,2005\n"+
		"11,Noir,#N/A,2006\n")

	cat, err := Load(context.Background(), Source{Path: path})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := []Entry{
		{Title: "Alien", Genre: "sci-fi horror"},
		{Title: "Alien 2", Genre: "sci-fi horror action"},
		{Title: "Alien", Genre: "remake"},
	}
	if cat.Len() != len(want) {
		t.Fatalf("Len = %d, want %d", cat.Len(), len(want))
	}
	for i, w := range want {
		if got := cat.Entry(i); got != w {
			t.Errorf("Entry(%d) = %+v, want %+v", i, got, w)
		}
	}
	if cat.Dropped() != 8 {
		t.Errorf("Dropped = %d, want 8", cat.Dropped())
	}

	t.Run("NA markers are missing", func(t *testing.T) {
		for _, title := range []string{"Void", "Gap", "Hole", "Nada", "Noir"} {
			if _, ok := cat.Position(title); ok {
				t.Errorf("%s kept with a missing genre", title)
			}
		}
	})

	t.Run("duplicate titles resolve to first position", func(t *testing.T) {
		pos, ok := cat.Position("Alien")
		if !ok || pos != 0 {
			t.Errorf("Position(Alien) = %d, %v; want 0, true", pos, ok)
		}
	})

	t.Run("lookup is exact", func(t *testing.T) {
		for _, q := range []string{" Alien", "alien", "Alien "} {
			if _, ok := cat.Position(q); ok {
				t.Errorf("Position(%q) matched, want no match", q)
			}
		}
	})
}

func TestLoadTSVWithBOM(t *testing.T) {
	path := writeFile(t, "movies.tsv", "\ufefftitle\tgenre\nHeat\tCrime Thriller\n")
	cat, err := Load(context.Background(), Source{Path: path})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cat.Len() != 1 || cat.Entry(0).Genre != "crime thriller" {
		t.Fatalf("unexpected catalog: %+v", cat.Entries())
	}
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(context.Background(), Source{Path: filepath.Join(t.TempDir(), "nope.csv")})
		if !errors.Is(err, ErrDatasetNotFound) {
			t.Fatalf("err = %v, want ErrDatasetNotFound", err)
		}
		var nf *DatasetNotFoundError
		if !errors.As(err, &nf) {
			t.Fatalf("err = %T, want *DatasetNotFoundError", err)
		}
	})

	t.Run("missing sqlite file is not created", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nope.db")
		_, err := Load(context.Background(), Source{Path: path})
		if !errors.Is(err, ErrDatasetNotFound) {
			t.Fatalf("err = %v, want ErrDatasetNotFound", err)
		}
		if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
			t.Errorf("database file was created")
		}
	})

	t.Run("missing genre column", func(t *testing.T) {
		path := writeFile(t, "movies.csv", "title,genres\nAlien,horror\n")
		_, err := Load(context.Background(), Source{Path: path})
		var se *SchemaError
		if !errors.As(err, &se) {
			t.Fatalf("err = %v, want *SchemaError", err)
		}
		if len(se.Missing) != 1 || se.Missing[0] != GenreColumn {
			t.Errorf("Missing = %v, want [genre]", se.Missing)
		}
	})

	t.Run("empty file", func(t *testing.T) {
		path := writeFile(t, "movies.csv", "")
		_, err := Load(context.Background(), Source{Path: path})
		var se *SchemaError
		if !errors.As(err, &se) || len(se.Missing) != 2 {
			t.Fatalf("err = %v, want schema error naming both columns", err)
		}
	})

	t.Run("unsupported format", func(t *testing.T) {
		path := writeFile(t, "movies.csv", "title,genre\n")
		if _, err := Load(context.Background(), Source{Path: path, Format: "xml"}); err == nil {
			t.Fatal("expected error for unsupported format")
		}
	})
}

func TestLoadSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "movies.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	stmts := []string{
		`CREATE TABLE films (title TEXT, genre TEXT, rating REAL)`,
		`INSERT INTO films VALUES ('Alien', 'Sci-Fi Horror', 8.5)`,
		`INSERT INTO films VALUES ('Nothing', NULL, 1.0)`,
		`INSERT INTO films VALUES ('Up', 'Animation Adventure', 8.3)`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			t.Fatalf("exec %q: %v", s, err)
		}
	}
	db.Close()

	cat, err := Load(context.Background(), Source{Path: path, Table: "films"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	titles := cat.Titles()
	if len(titles) != 2 || titles[0] != "Alien" || titles[1] != "Up" {
		t.Fatalf("Titles = %v", titles)
	}
	if g := cat.Entry(1).Genre; g != "animation adventure" {
		t.Errorf("Genre = %q", g)
	}
}

func TestLoadDuckDB(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		path := writeFile(t, "movies.json", `{"title": "Heat", "genre": "Crime Thriller", "year": 1995}
{"title": "Blank", "genre": null, "year": 2000}
{"title": "Up", "genre": "Animation Adventure", "year": 2009}
`)
		cat, err := Load(context.Background(), Source{Path: path})
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		want := []Entry{
			{Title: "Heat", Genre: "crime thriller"},
			{Title: "Up", Genre: "animation adventure"},
		}
		if cat.Len() != len(want) {
			t.Fatalf("Entries = %+v", cat.Entries())
		}
		for i, w := range want {
			if got := cat.Entry(i); got != w {
				t.Errorf("Entry(%d) = %+v, want %+v", i, got, w)
			}
		}
		if cat.Dropped() != 1 {
			t.Errorf("Dropped = %d, want 1", cat.Dropped())
		}
	})

	dir := t.TempDir()
	dbPath := filepath.Join(dir, "movies.duckdb")
	parquetPath := filepath.Join(dir, "films.parquet")
	db, err := sql.Open("duckdb", dbPath)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	stmts := []string{
		`CREATE TABLE films (title VARCHAR, genre VARCHAR, rating DOUBLE)`,
		`INSERT INTO films VALUES ('Alien', 'Sci-Fi Horror', 8.5), ('Nothing', NULL, 1.0), ('Up', 'Animation Adventure', 8.3)`,
		`COPY films TO ` + quoteLiteral(parquetPath) + ` (FORMAT PARQUET)`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			db.Close()
			t.Fatalf("exec %q: %v", s, err)
		}
	}
	if err := db.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	for name, src := range map[string]Source{
		"database table": {Path: dbPath, Table: "films"},
		"parquet":        {Path: parquetPath},
	} {
		t.Run(name, func(t *testing.T) {
			cat, err := Load(context.Background(), src)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			titles := cat.Titles()
			if len(titles) != 2 || titles[0] != "Alien" || titles[1] != "Up" {
				t.Fatalf("Titles = %v", titles)
			}
			if g := cat.Entry(0).Genre; g != "sci-fi horror" {
				t.Errorf("Genre = %q", g)
			}
			if cat.Dropped() != 1 {
				t.Errorf("Dropped = %d, want 1", cat.Dropped())
			}
		})
	}

	t.Run("missing table", func(t *testing.T) {
		if _, err := Load(context.Background(), Source{Path: dbPath}); err == nil {
			t.Fatal("expected error for the default table")
		}
	})
}

func TestResolveFormat(t *testing.T) {
	tests := map[string]Source{
		"csv":     {Path: "movies.csv"},
		"tsv":     {Path: "movies.TSV"},
		"sqlite":  {Path: "data/movies.sqlite3"},
		"duckdb":  {Path: "movies.duckdb"},
		"parquet": {Path: "movies.parquet"},
		"json":    {Path: "movies.jsonl"},
	}
	for want, src := range tests {
		if got := src.ResolveFormat(); got != want {
			t.Errorf("ResolveFormat(%q) = %q, want %q", src.Path, got, want)
		}
	}
	if got := (Source{Path: "movies.txt", Format: "TSV"}).ResolveFormat(); got != "tsv" {
		t.Errorf("explicit format ignored: %q", got)
	}
}
