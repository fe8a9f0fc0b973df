package redis

import (
	"encoding/binary"
	"math"
	"strings"
	"testing"

	"github.com/kailas-cloud/moviedex/internal/db"
)

func TestBuildAllowFilter(t *testing.T) {
	got := buildAllowFilter("id", []string{"3", "17", "42"})
	want := "@id:{3|17|42}"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestBuildAllowFilter_Empty(t *testing.T) {
	if got := buildAllowFilter("id", nil); got != "" {
		t.Errorf("expected empty filter, got %q", got)
	}
	if got := buildAllowFilter("", []string{"1"}); got != "" {
		t.Errorf("expected empty filter without field, got %q", got)
	}
}

func TestBuildAllowFilter_Escaping(t *testing.T) {
	got := buildAllowFilter("id", []string{"a-b", "c.d"})
	want := `@id:{a\-b|c\.d}`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestVectorToBytes(t *testing.T) {
	vec := []float32{1.5, -2.25}
	b := []byte(vectorToBytes(vec))
	if len(b) != 8 {
		t.Fatalf("expected 8 bytes, got %d", len(b))
	}
	for i, want := range vec {
		got := math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
		if got != want {
			t.Errorf("element %d: got %f, want %f", i, got, want)
		}
	}
}

func TestBuildCreateArgs(t *testing.T) {
	def := &db.IndexDefinition{
		Name:     "idx:movies",
		Prefixes: []string{"moviedex:movie:"},
		Fields: []db.IndexField{
			{Name: "id", Type: db.IndexFieldTag},
			{Name: "year", Type: db.IndexFieldNumeric},
			{Name: "__vector", Alias: "vector", Type: db.IndexFieldVector, VectorDim: 4, VectorM: 32, VectorEFConstruct: 400},
		},
	}

	args, err := buildCreateArgs(def)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	joined := strings.Join(args, " ")
	for _, want := range []string{
		"idx:movies ON HASH",
		"PREFIX 1 moviedex:movie:",
		"SCHEMA",
		"id TAG",
		"year NUMERIC",
		"__vector AS vector VECTOR HNSW",
		"DIM 4",
		"DISTANCE_METRIC COSINE",
		"M 32",
		"EF_CONSTRUCTION 400",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("args missing %q: %s", want, joined)
		}
	}
}

func TestBuildSearchArgs(t *testing.T) {
	args := buildSearchArgs(&db.KNNQuery{
		IndexName:    "idx:movies",
		Vector:       []float32{1, 0},
		K:            25,
		AllowField:   "id",
		AllowValues:  []string{"3", "17"},
		ReturnFields: []string{"id", "__vector_score"},
	})

	joined := strings.Join(args, " ")
	for _, want := range []string{
		"idx:movies",
		"(@id:{3|17})=>[KNN 25 @vector $BLOB]",
		"RETURN 2 id __vector_score",
		"LIMIT 0 25",
		"DIALECT 2",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("args missing %q: %s", want, joined)
		}
	}
}

func TestBuildSearchArgs_NoFilter(t *testing.T) {
	args := buildSearchArgs(&db.KNNQuery{
		IndexName: "idx:movies",
		Vector:    []float32{1},
		K:         3,
	})
	joined := strings.Join(args, " ")
	if !strings.Contains(joined, "*=>[KNN 3 @vector $BLOB]") {
		t.Errorf("expected unfiltered KNN query, got %s", joined)
	}
	if !strings.Contains(joined, "LIMIT 0 3") {
		t.Errorf("expected LIMIT bound to k, got %s", joined)
	}
}

func TestBuildCreateArgs_Invalid(t *testing.T) {
	if _, err := buildCreateArgs(&db.IndexDefinition{}); err == nil {
		t.Error("expected error for empty definition")
	}
	def := &db.IndexDefinition{
		Name:   "idx",
		Fields: []db.IndexField{{Name: "__vector", Type: db.IndexFieldVector}},
	}
	if _, err := buildCreateArgs(def); err == nil {
		t.Error("expected error for vector field without DIM")
	}
}
