package metadata

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tevez07b9/notebooklm/pkg/extract"
	"github.com/tevez07b9/notebooklm/pkg/llm"
)

type stubProvider struct {
	response   string
	err        error
	lastPrompt string
}

func (s *stubProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	if len(history) > 0 {
		s.lastPrompt = history[len(history)-1].Content
	}
	return s.response, s.err
}

func (s *stubProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return s.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}

func TestGenerateParsesFencedJSON(t *testing.T) {
	stub := &stubProvider{response: "```json\n{\"title\": \"Annual Report\", \"summary\": \"Numbers went up. Then down.\", \"keywords\": \"finance, revenue, q4\"}\n```"}
	g := NewGenerator(stub)

	res := g.Generate(context.Background(), []extract.Page{
		{Number: 1, Text: "Revenue overview"},
		{Number: 2, Text: "Expenses"},
	})

	assert.True(t, res.Parsed)
	assert.Equal(t, "Annual Report", res.Metadata.Title)
	assert.Equal(t, "Numbers went up. Then down.", res.Metadata.Summary)
	assert.Equal(t, []string{"finance", "revenue", "q4"}, res.Metadata.Keywords)

	assert.Contains(t, stub.lastPrompt, "Page 1 : Revenue overview")
	assert.Contains(t, stub.lastPrompt, "Page 2 : Expenses")
}

func TestGeneratePlainJSON(t *testing.T) {
	stub := &stubProvider{response: `{"title": "T", "summary": "S", "keywords": "a,b"}`}
	g := NewGenerator(stub)

	res := g.Generate(context.Background(), []extract.Page{{Number: 1, Text: "x"}})
	assert.True(t, res.Parsed)
	assert.Equal(t, []string{"a", "b"}, res.Metadata.Keywords)
}

func TestGenerateUnparsableResponse(t *testing.T) {
	stub := &stubProvider{response: "Sorry, I cannot do that."}
	g := NewGenerator(stub)

	res := g.Generate(context.Background(), []extract.Page{{Number: 1, Text: "x"}})
	assert.False(t, res.Parsed)
	assert.Empty(t, res.Metadata.Title)
}

func TestGenerateProviderFailure(t *testing.T) {
	stub := &stubProvider{err: fmt.Errorf("timeout")}
	g := NewGenerator(stub)

	res := g.Generate(context.Background(), []extract.Page{{Number: 1, Text: "x"}})
	assert.False(t, res.Parsed)
}
