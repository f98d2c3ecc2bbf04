package similarity

import (
	"errors"
	"fmt"
	"math"
)

// DimensionMismatchError indicates two vectors of different lengths were
// compared. Stored embeddings always share one dimensionality, so hitting
// this means corrupted data or a mixed embedding model.
type DimensionMismatchError struct {
	LenA int
	LenB int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("vector dimension mismatch: %d vs %d", e.LenA, e.LenB)
}

// IsDimensionMismatch reports whether err is a DimensionMismatchError.
func IsDimensionMismatch(err error) bool {
	var dm *DimensionMismatchError
	return errors.As(err, &dm)
}

// Cosine returns the cosine similarity of a and b in [-1, 1].
// A zero-magnitude vector yields 0: a degenerate embedding should rank as
// maximally dissimilar rather than abort the whole ranking pass.
func Cosine(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, &DimensionMismatchError{LenA: len(a), LenB: len(b)}
	}

	var dot, magA, magB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		magA += float64(a[i]) * float64(a[i])
		magB += float64(b[i]) * float64(b[i])
	}

	if magA == 0 || magB == 0 {
		return 0, nil
	}

	return dot / (math.Sqrt(magA) * math.Sqrt(magB)), nil
}
