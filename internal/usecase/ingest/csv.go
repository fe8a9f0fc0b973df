package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// RawMovie is one row of the source catalog before cleaning. All fields are
// kept as strings so cleaning owns every parse decision.
type RawMovie struct {
	ID          string
	Title       string
	Overview    string
	Genres      string
	ReleaseDate string
	VoteAverage string
}

// sourceColumns are the catalog columns the pipeline consumes. Any other
// column in the file is ignored.
var sourceColumns = []string{"id", "title", "overview", "genres", "release_date", "vote_average"}

// ReadSourceCSV loads the movie catalog from path. The file is addressed by
// header name, so column order does not matter; rows with a deviating field
// count are still read because upstream catalog dumps contain them.
func ReadSourceCSV(path string) ([]RawMovie, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open source file: %w", err)
	}
	defer f.Close()

	return readSource(f)
}

func readSource(r io.Reader) ([]RawMovie, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}
	for _, col := range sourceColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("source file missing column %q", col)
		}
	}

	field := func(row []string, name string) string {
		i := index[name]
		if i >= len(row) {
			return ""
		}
		return row[i]
	}

	var movies []RawMovie
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		movies = append(movies, RawMovie{
			ID:          field(row, "id"),
			Title:       field(row, "title"),
			Overview:    field(row, "overview"),
			Genres:      field(row, "genres"),
			ReleaseDate: field(row, "release_date"),
			VoteAverage: field(row, "vote_average"),
		})
	}
	return movies, nil
}
