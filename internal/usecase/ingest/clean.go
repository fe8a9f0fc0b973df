package ingest

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/kailas-cloud/moviedex/internal/domain"
	"github.com/kailas-cloud/moviedex/internal/metrics"
)

// Clean turns raw catalog rows into validated movie records. Rows are dropped
// when the id is not numeric, the title or overview is blank, or the release
// date cannot be parsed. Malformed genre lists degrade to an empty list and a
// missing rating degrades to 0; duplicate ids keep the first occurrence.
func Clean(rows []RawMovie) []domain.MovieRecord {
	seen := make(map[int]struct{}, len(rows))
	records := make([]domain.MovieRecord, 0, len(rows))

	for _, row := range rows {
		id, err := strconv.Atoi(strings.TrimSpace(row.ID))
		if err != nil {
			metrics.IngestRowsDropped.WithLabelValues("csv", "bad_id").Inc()
			continue
		}
		if _, dup := seen[id]; dup {
			metrics.IngestRowsDropped.WithLabelValues("csv", "duplicate").Inc()
			continue
		}

		title := strings.TrimSpace(row.Title)
		overview := strings.TrimSpace(row.Overview)
		if title == "" || overview == "" {
			metrics.IngestRowsDropped.WithLabelValues("csv", "blank_text").Inc()
			continue
		}

		year, ok := parseYear(row.ReleaseDate)
		if !ok {
			metrics.IngestRowsDropped.WithLabelValues("csv", "bad_release_date").Inc()
			continue
		}

		rating, err := strconv.ParseFloat(strings.TrimSpace(row.VoteAverage), 64)
		if err != nil {
			rating = 0
		}

		seen[id] = struct{}{}
		records = append(records, domain.MovieRecord{
			ID:          id,
			Title:       title,
			Overview:    overview,
			Genres:      parseGenreList(row.Genres),
			ReleaseYear: year,
			VoteAverage: rating,
		})
	}
	return records
}

// parseYear extracts the release year. Catalog dumps carry either a full
// "2006-01-02" date or a bare year; anything else marks the row invalid.
func parseYear(raw string) (*int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, false
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		y := t.Year()
		return &y, true
	}
	if y, err := strconv.Atoi(raw); err == nil && y > 0 {
		return &y, true
	}
	return nil, false
}

// parseGenreList decodes the catalog's genre column, a Python literal like
// [{'id': 35, 'name': 'Comedy'}]. Swapping the quote style turns it into
// JSON for the common case; rows that still fail to decode get no genres.
func parseGenreList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "[]" {
		return []string{}
	}

	jsonish := strings.ReplaceAll(raw, `"`, `\"`)
	jsonish = strings.ReplaceAll(jsonish, "'", `"`)

	var entries []struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal([]byte(jsonish), &entries); err != nil {
		return []string{}
	}

	genres := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Name != "" {
			genres = append(genres, e.Name)
		}
	}
	return genres
}
