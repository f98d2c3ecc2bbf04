// Package ranker orders a document's pages by semantic closeness to a
// question embedding. The scan is exact and linear: a single document holds
// at most a few thousand pages, which is far below the point where an ANN
// index pays off.
package ranker

import (
	"sort"

	"github.com/tevez07b9/notebooklm/pkg/similarity"
)

// DefaultThreshold biases retrieval toward precision over recall: a page
// must be strongly related to the question to be used as grounding
// evidence. Tunable via configuration.
const DefaultThreshold = 0.8

// Page is a stored page candidate for ranking.
type Page struct {
	Number    int
	Text      string
	Embedding []float32
}

// RankedPage is an ephemeral, per-query scoring result. Never persisted.
type RankedPage struct {
	Number     int
	Text       string
	Similarity float64
}

// Ranker scores pages against a question embedding and keeps those at or
// above its relevance threshold.
type Ranker struct {
	threshold float64
}

func New(threshold float64) *Ranker {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Ranker{threshold: threshold}
}

func (r *Ranker) Threshold() float64 {
	return r.threshold
}

// Rank returns the pages sorted by descending similarity and filtered to
// similarity >= threshold. Ties keep ascending page order. An empty page
// set yields an empty result, not an error.
func (r *Ranker) Rank(questionEmbedding []float32, pages []Page) ([]RankedPage, error) {
	ranked := make([]RankedPage, 0, len(pages))
	for _, p := range pages {
		score, err := similarity.Cosine(questionEmbedding, p.Embedding)
		if err != nil {
			return nil, err
		}
		ranked = append(ranked, RankedPage{
			Number:     p.Number,
			Text:       p.Text,
			Similarity: score,
		})
	}

	// Ties must preserve page order, so order by number before the stable
	// sort on similarity.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Number < ranked[j].Number
	})
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Similarity > ranked[j].Similarity
	})

	relevant := ranked[:0]
	for _, p := range ranked {
		if p.Similarity >= r.threshold {
			relevant = append(relevant, p)
		}
	}

	return relevant, nil
}
