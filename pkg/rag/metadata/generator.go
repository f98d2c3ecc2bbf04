// Package metadata derives a title, summary and keywords for an ingested
// document via structured extraction. Metadata is an enrichment: any
// failure here degrades to "no metadata" and never fails ingestion.
package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tevez07b9/notebooklm/pkg/extract"
	"github.com/tevez07b9/notebooklm/pkg/llm"
)

// Metadata is the parsed structured-extraction output.
type Metadata struct {
	Title    string
	Summary  string
	Keywords []string
}

// Result is a tagged parse outcome: either Parsed with populated Metadata,
// or unparsable with the zero value.
type Result struct {
	Metadata Metadata
	Parsed   bool
}

type Generator struct {
	llmProvider llm.Provider
}

func NewGenerator(llmProvider llm.Provider) *Generator {
	return &Generator{llmProvider: llmProvider}
}

// Generate asks the model for document metadata as a single JSON object.
// Provider failures and malformed replies both yield an unparsed Result.
func (g *Generator) Generate(ctx context.Context, pages []extract.Page) Result {
	raw, err := g.llmProvider.Generate(ctx, buildPrompt(pages), llm.WithTemperature(0.7))
	if err != nil {
		return Result{}
	}
	return parseResponse(raw)
}

func buildPrompt(pages []extract.Page) string {
	snippets := make([]string, len(pages))
	for i, p := range pages {
		snippets[i] = fmt.Sprintf("Page %d : %s", p.Number, p.Text)
	}

	return fmt.Sprintf(`Extract metadata from the following document snippet:
"""%s"""

Provide the response in the following JSON format:
{
  "title": "Title of the document",
  "summary": "A two-line summary of the document",
  "keywords": "Comma-separated list of important keywords, with maximum 5 keywords"
}`, strings.Join(snippets, "\n\n"))
}

type metadataPayload struct {
	Title    string `json:"title"`
	Summary  string `json:"summary"`
	Keywords string `json:"keywords"`
}

func parseResponse(raw string) Result {
	// Models often wrap JSON in code fences despite instructions.
	clean := strings.ReplaceAll(raw, "```json", "")
	clean = strings.ReplaceAll(clean, "```", "")
	clean = strings.TrimSpace(clean)

	var payload metadataPayload
	if err := json.Unmarshal([]byte(clean), &payload); err != nil {
		return Result{}
	}

	return Result{
		Metadata: Metadata{
			Title:    payload.Title,
			Summary:  payload.Summary,
			Keywords: splitKeywords(payload.Keywords),
		},
		Parsed: true,
	}
}

func splitKeywords(s string) []string {
	parts := strings.Split(s, ",")
	keywords := make([]string, 0, len(parts))
	for _, p := range parts {
		if kw := strings.TrimSpace(p); kw != "" {
			keywords = append(keywords, kw)
		}
	}
	return keywords
}
