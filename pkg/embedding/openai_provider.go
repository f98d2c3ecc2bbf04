package embedding

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// OpenAIProvider implements Provider against the OpenAI embeddings API.
// text-embedding-ada-002 produces 1536-dimensional vectors.
type OpenAIProvider struct {
	APIKey  string
	BaseURL string
	Model   string
	Client  *http.Client
}

func NewOpenAIProvider(apiKey string, model string) Provider {
	if model == "" {
		model = "text-embedding-ada-002"
	}
	return &OpenAIProvider{
		APIKey:  apiKey,
		BaseURL: "https://api.openai.com/v1",
		Model:   model,
		Client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type openaiEmbeddingRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type openaiEmbeddingResponse struct {
	Data []struct {
		Embedding []float64 `json:"embedding"`
	} `json:"data"`
}

func (p *OpenAIProvider) Generate(text string, taskType string) (*Response, error) {
	// TaskType is a retrieval hint for models that distinguish document and
	// query embeddings; the OpenAI API has no equivalent parameter.

	reqBody := openaiEmbeddingRequest{
		Model: p.Model,
		Input: text,
	}
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, &Error{Provider: "openai", Err: err}
	}

	endpoint := fmt.Sprintf("%s/embeddings", p.BaseURL)
	req, err := http.NewRequest("POST", endpoint, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, &Error{Provider: "openai", Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+p.APIKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := p.Client.Do(req)
	if err != nil {
		return nil, &Error{Provider: "openai", Err: err}
	}
	defer res.Body.Close()

	resBytes, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &Error{Provider: "openai", Err: err}
	}

	if res.StatusCode != http.StatusOK {
		return nil, &Error{
			Provider: "openai",
			Err:      fmt.Errorf("status %d, body %s", res.StatusCode, string(resBytes)),
		}
	}

	var openaiRes openaiEmbeddingResponse
	if err := json.Unmarshal(resBytes, &openaiRes); err != nil {
		return nil, &Error{Provider: "openai", Err: err}
	}
	if len(openaiRes.Data) == 0 {
		return nil, &Error{Provider: "openai", Err: fmt.Errorf("no embedding in response")}
	}

	values := make([]float32, len(openaiRes.Data[0].Embedding))
	for i, v := range openaiRes.Data[0].Embedding {
		values[i] = float32(v)
	}

	return &Response{Values: values}, nil
}
