package domain

import "strconv"

// MovieRecord is the canonical movie row in the attribute store. The same id,
// in its string form, keys the entry in the vector index.
type MovieRecord struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Overview    string   `json:"overview"`
	Genres      []string `json:"genres"`
	ReleaseYear *int     `json:"release_year"`
	VoteAverage float64  `json:"vote_average"`
}

// VectorID returns the record id in the string form used by the vector index.
func (m MovieRecord) VectorID() string {
	return strconv.Itoa(m.ID)
}

// VectorMetadata is the narrowed metadata mirror stored next to each embedding.
// It is deliberately not the full record; full records are always hydrated from
// the attribute store.
type VectorMetadata struct {
	ID    string
	Title string
	Year  int
}

// MetadataFor builds the vector index metadata subset for a record.
func MetadataFor(rec MovieRecord) VectorMetadata {
	year := 0
	if rec.ReleaseYear != nil {
		year = *rec.ReleaseYear
	}
	return VectorMetadata{ID: rec.VectorID(), Title: rec.Title, Year: year}
}

// SearchFilters is an optional predicate bundle; all present fields are ANDed.
type SearchFilters struct {
	Genre     *string
	MinYear   *int
	MinRating *float64
}

// IsEmpty reports whether no filter field is present.
func (f SearchFilters) IsEmpty() bool {
	return f.Genre == nil && f.MinYear == nil && f.MinRating == nil
}
