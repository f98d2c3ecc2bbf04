package embedding

import (
	"errors"
	"fmt"
)

// Task types hint retrieval-aware models about how the text will be used.
// Providers that don't support them ignore the hint.
const (
	TaskRetrievalDocument = "RETRIEVAL_DOCUMENT"
	TaskRetrievalQuery    = "RETRIEVAL_QUERY"
)

// Response carries a single embedding vector. Every vector produced by one
// provider configuration has the same dimensionality.
type Response struct {
	Values []float32
}

// Error wraps a provider failure (rate limit, network, invalid input).
type Error struct {
	Provider string
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("embedding provider %s: %v", e.Provider, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsEmbeddingError reports whether err is an embedding provider Error.
func IsEmbeddingError(err error) bool {
	var ee *Error
	return errors.As(err, &ee)
}

// Provider defines the interface for generating text embeddings
type Provider interface {
	Generate(text string, taskType string) (*Response, error)
}
