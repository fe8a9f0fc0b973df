package ingest

import (
	"reflect"
	"strings"
	"testing"
)

func TestClean_ValidRow(t *testing.T) {
	rows := []RawMovie{{
		ID:          "862",
		Title:       "Toy Story",
		Overview:    "A cowboy doll is profoundly threatened.",
		Genres:      "[{'id': 16, 'name': 'Animation'}, {'id': 35, 'name': 'Comedy'}]",
		ReleaseDate: "1995-10-30",
		VoteAverage: "7.7",
	}}

	records := Clean(rows)
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	rec := records[0]
	if rec.ID != 862 || rec.Title != "Toy Story" {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if !reflect.DeepEqual(rec.Genres, []string{"Animation", "Comedy"}) {
		t.Fatalf("unexpected genres: %v", rec.Genres)
	}
	if rec.ReleaseYear == nil || *rec.ReleaseYear != 1995 {
		t.Fatalf("unexpected year: %v", rec.ReleaseYear)
	}
	if rec.VoteAverage != 7.7 {
		t.Fatalf("unexpected rating: %f", rec.VoteAverage)
	}
}

func TestClean_DropsUnparsableReleaseDate(t *testing.T) {
	rows := []RawMovie{
		{ID: "1", Title: "A", Overview: "a", ReleaseDate: "not-a-date", VoteAverage: "5"},
		{ID: "2", Title: "B", Overview: "b", ReleaseDate: "", VoteAverage: "5"},
		{ID: "3", Title: "C", Overview: "c", ReleaseDate: "2001", VoteAverage: "5"},
	}
	records := Clean(rows)
	if len(records) != 1 {
		t.Fatalf("expected only the bare-year row to survive, got %d", len(records))
	}
	if records[0].ID != 3 || *records[0].ReleaseYear != 2001 {
		t.Fatalf("unexpected survivor: %+v", records[0])
	}
}

func TestClean_DropsBlankTitleOrOverview(t *testing.T) {
	rows := []RawMovie{
		{ID: "1", Title: "  ", Overview: "a", ReleaseDate: "2001-01-01"},
		{ID: "2", Title: "B", Overview: "", ReleaseDate: "2001-01-01"},
		{ID: "3", Title: "C", Overview: "c", ReleaseDate: "2001-01-01"},
	}
	records := Clean(rows)
	if len(records) != 1 || records[0].ID != 3 {
		t.Fatalf("expected only id 3 to survive, got %+v", records)
	}
}

func TestClean_NonNumericIDDropped(t *testing.T) {
	rows := []RawMovie{
		{ID: "1997-08-20", Title: "Broken row", Overview: "shifted columns", ReleaseDate: "1997-08-20"},
	}
	if records := Clean(rows); len(records) != 0 {
		t.Fatalf("expected no records, got %+v", records)
	}
}

func TestClean_DuplicateKeepsFirst(t *testing.T) {
	rows := []RawMovie{
		{ID: "5", Title: "First", Overview: "first", ReleaseDate: "2001-01-01", VoteAverage: "6"},
		{ID: "5", Title: "Second", Overview: "second", ReleaseDate: "2002-01-01", VoteAverage: "7"},
	}
	records := Clean(rows)
	if len(records) != 1 || records[0].Title != "First" {
		t.Fatalf("expected the first occurrence to win, got %+v", records)
	}
}

func TestClean_MissingRatingDefaultsToZero(t *testing.T) {
	rows := []RawMovie{
		{ID: "9", Title: "T", Overview: "o", ReleaseDate: "2001-01-01", VoteAverage: ""},
	}
	records := Clean(rows)
	if len(records) != 1 || records[0].VoteAverage != 0 {
		t.Fatalf("expected rating 0, got %+v", records)
	}
}

func TestParseGenreList(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"empty", "", []string{}},
		{"empty list", "[]", []string{}},
		{"single", "[{'id': 18, 'name': 'Drama'}]", []string{"Drama"}},
		{"multiple", "[{'id': 18, 'name': 'Drama'}, {'id': 53, 'name': 'Thriller'}]", []string{"Drama", "Thriller"}},
		{"malformed", "[{'id': 18, 'name':", []string{}},
		{"not a list", "free text", []string{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := parseGenreList(tc.raw); !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("parseGenreList(%q) = %v, want %v", tc.raw, got, tc.want)
			}
		})
	}
}

func TestReadSource_HeaderAddressing(t *testing.T) {
	src := strings.Join([]string{
		"overview,id,title,genres,release_date,vote_average,extra",
		`"A plot.",42,"Some Movie","[{'id': 35, 'name': 'Comedy'}]",2010-05-01,6.1,ignored`,
	}, "\n")

	rows, err := readSource(strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].ID != "42" || rows[0].Title != "Some Movie" || rows[0].Overview != "A plot." {
		t.Fatalf("columns misread: %+v", rows[0])
	}
}

func TestReadSource_MissingColumn(t *testing.T) {
	src := "id,title\n1,A\n"
	if _, err := readSource(strings.NewReader(src)); err == nil {
		t.Fatal("expected an error for a missing column")
	}
}

func TestReadSource_ShortRow(t *testing.T) {
	src := strings.Join([]string{
		"id,title,overview,genres,release_date,vote_average",
		"1,A",
	}, "\n")
	rows, err := readSource(strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rows[0].ID != "1" || rows[0].Overview != "" {
		t.Fatalf("short row misread: %+v", rows[0])
	}
}
