package db

// KNNQuery is the input for a restricted vector similarity search.
type KNNQuery struct {
	IndexName string
	Vector    []float32
	K         int

	// AllowField/AllowValues restrict the search to hashes whose tag field
	// matches one of the given values. Empty AllowValues means no restriction.
	AllowField  string
	AllowValues []string

	ReturnFields []string
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit. Score is cosine similarity in [0,1].
type SearchEntry struct {
	Key    string
	Score  float64
	Fields map[string]string
}
