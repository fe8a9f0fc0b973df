package vector

import (
	"encoding/binary"
	"math"
	"strconv"

	"github.com/kailas-cloud/moviedex/internal/domain"
)

// buildHashFields converts a vector and its metadata mirror into a flat
// map[string]string for HSET.
func buildHashFields(vec []float32, meta domain.VectorMetadata) map[string]string {
	return map[string]string{
		fieldID:     meta.ID,
		fieldTitle:  meta.Title,
		fieldYear:   strconv.Itoa(meta.Year),
		fieldVector: vectorToBytes(vec),
	}
}

// vectorToBytes serializes []float32 to a binary string (4 bytes per float, little-endian).
func vectorToBytes(v []float32) string {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return string(buf)
}
