package domain

import (
	"math"
	"testing"
)

func TestNormalize(t *testing.T) {
	v := Normalize([]float32{3, 4})

	var sum float64
	for _, f := range v {
		sum += float64(f) * float64(f)
	}
	if math.Abs(sum-1.0) > 1e-6 {
		t.Errorf("expected unit norm, got %f", math.Sqrt(sum))
	}
	if math.Abs(float64(v[0])-0.6) > 1e-6 || math.Abs(float64(v[1])-0.8) > 1e-6 {
		t.Errorf("unexpected direction: %v", v)
	}
}

func TestNormalize_ZeroVector(t *testing.T) {
	v := Normalize([]float32{0, 0, 0})
	for i, f := range v {
		if f != 0 {
			t.Errorf("element %d changed: %f", i, f)
		}
	}
}

func TestMetadataFor(t *testing.T) {
	year := 1999
	rec := MovieRecord{ID: 603, Title: "The Matrix", ReleaseYear: &year}

	meta := MetadataFor(rec)
	if meta.ID != "603" {
		t.Errorf("expected string id 603, got %q", meta.ID)
	}
	if meta.Title != "The Matrix" || meta.Year != 1999 {
		t.Errorf("unexpected metadata: %+v", meta)
	}
}

func TestMetadataFor_NilYear(t *testing.T) {
	meta := MetadataFor(MovieRecord{ID: 1, Title: "x"})
	if meta.Year != 0 {
		t.Errorf("expected zero year for nil release year, got %d", meta.Year)
	}
}

func TestSearchFilters_IsEmpty(t *testing.T) {
	if !(SearchFilters{}).IsEmpty() {
		t.Error("zero filters should be empty")
	}
	genre := "Comedy"
	if (SearchFilters{Genre: &genre}).IsEmpty() {
		t.Error("filters with genre should not be empty")
	}
}
