// Package answer builds grounded prompts from relevant pages and asks the
// generative model for a cited answer.
package answer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tevez07b9/notebooklm/pkg/llm"
	"github.com/tevez07b9/notebooklm/pkg/rag/ranker"
)

// NoRelevantContentAnswer is returned verbatim when no page clears the
// relevance threshold. The model is never called in that case; answering
// without grounding evidence invites hallucination.
const NoRelevantContentAnswer = "No highly relevant pages found for this question."

const systemPrompt = "You are a PDF assistant that answers user questions accurately. " +
	"Your responses must contain inline citations referring to the page number like this: [Page 12]."

// CompositionError wraps a generative-text provider failure during answer
// composition. Surfaced to the caller, never retried here.
type CompositionError struct {
	Err error
}

func (e *CompositionError) Error() string {
	return fmt.Sprintf("answer composition failed: %v", e.Err)
}

func (e *CompositionError) Unwrap() error {
	return e.Err
}

// IsCompositionError reports whether err is a CompositionError.
func IsCompositionError(err error) bool {
	var ce *CompositionError
	return errors.As(err, &ce)
}

// Composer turns ranked pages plus the original question into a final
// answer with [Page N] citations.
type Composer struct {
	llmProvider llm.Provider
}

func NewComposer(llmProvider llm.Provider) *Composer {
	return &Composer{llmProvider: llmProvider}
}

// Compose returns the model's answer verbatim; citation parsing is a
// presentation concern and stays out of this layer.
func (c *Composer) Compose(ctx context.Context, question string, relevantPages []ranker.RankedPage) (string, error) {
	if len(relevantPages) == 0 {
		return NoRelevantContentAnswer, nil
	}

	history := []llm.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: c.buildPrompt(question, relevantPages)},
	}

	response, err := c.llmProvider.Chat(ctx, history)
	if err != nil {
		return "", &CompositionError{Err: err}
	}

	return response, nil
}

func (c *Composer) buildPrompt(question string, relevantPages []ranker.RankedPage) string {
	blocks := make([]string, len(relevantPages))
	for i, p := range relevantPages {
		blocks[i] = fmt.Sprintf("Page %d (Relevance: %.2f): %s", p.Number, p.Similarity, p.Text)
	}
	content := strings.Join(blocks, "\n\n")

	return fmt.Sprintf(
		"Here is the PDF content with page numbers along with a similarity factor calculated using vector search, "+
			"which tells how relevant the page is to the question:\n\n%s\n\n"+
			"Answer the following question, embedding inline citations in the format [Page X] wherever necessary: %s",
		content, question,
	)
}
