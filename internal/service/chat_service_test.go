package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tevez07b9/notebooklm/internal/dto"
	"github.com/tevez07b9/notebooklm/internal/entity"
	"github.com/tevez07b9/notebooklm/pkg/rag/answer"
	"github.com/tevez07b9/notebooklm/pkg/rag/ranker"
)

func seedDocument(t *testing.T, factory *fakeRepositoryFactory, documentId string, pages []*entity.DocumentPage) {
	t.Helper()
	ctx := context.Background()
	doc := &entity.Document{
		Id:         uuid.New(),
		DocumentId: documentId,
		Title:      "Seeded",
		CreatedAt:  time.Now(),
	}
	require.NoError(t, factory.uow.docRepo.Create(ctx, doc))
	require.NoError(t, factory.uow.pageRepo.CreateBatch(ctx, pages))
	factory.uow.docRepo.createCalls = 0
	factory.uow.pageRepo.createBatchCalls = 0
}

func newChatServiceForTest(factory *fakeRepositoryFactory, embedder *stubEmbeddingProvider, llmStub *stubLLMProvider, threshold float64) IChatService {
	return NewChatService(
		factory,
		embedder,
		ranker.New(threshold),
		answer.NewComposer(llmStub),
		nopLogger{},
	)
}

func TestChatAskGroundedAnswer(t *testing.T) {
	factory := newFakeRepositoryFactory()
	documentId := "doc-1.pdf"
	seedDocument(t, factory, documentId, []*entity.DocumentPage{
		{Id: uuid.New(), DocumentId: documentId, PageNumber: 1, Text: "Go supports goroutines.", Embedding: []float32{1, 0}},
		{Id: uuid.New(), DocumentId: documentId, PageNumber: 2, Text: "Unrelated appendix.", Embedding: []float32{0, 1}},
	})

	// Query embedding aligns with page 1 only
	embedder := &stubEmbeddingProvider{values: []float32{1, 0}}
	llmStub := &stubLLMProvider{chatReply: "Goroutines are lightweight threads [Page 1]."}

	svc := newChatServiceForTest(factory, embedder, llmStub, 0.8)

	res, err := svc.Ask(context.Background(), &dto.ChatRequest{
		DocumentId: documentId,
		Question:   "What are goroutines?",
	})
	require.NoError(t, err)

	assert.Contains(t, res.Answer, "[Page 1]")
	require.Len(t, res.RelevantPages, 1)
	assert.Equal(t, 1, res.RelevantPages[0].PageNumber)
	assert.InDelta(t, 1.0, res.RelevantPages[0].Similarity, 1e-9)

	// Prompt carries the relevant page text and its similarity
	assert.Contains(t, llmStub.lastPrompt, "Go supports goroutines.")
	assert.NotContains(t, llmStub.lastPrompt, "Unrelated appendix.")
}

func TestChatAskNoRelevantPages(t *testing.T) {
	factory := newFakeRepositoryFactory()
	documentId := "doc-2.pdf"
	seedDocument(t, factory, documentId, []*entity.DocumentPage{
		{Id: uuid.New(), DocumentId: documentId, PageNumber: 1, Text: "Cooking recipes.", Embedding: []float32{0, 1}},
	})

	embedder := &stubEmbeddingProvider{values: []float32{1, 0}}
	llmStub := &stubLLMProvider{chatReply: "should never be used"}

	svc := newChatServiceForTest(factory, embedder, llmStub, 0.8)

	res, err := svc.Ask(context.Background(), &dto.ChatRequest{
		DocumentId: documentId,
		Question:   "What are goroutines?",
	})
	require.NoError(t, err)

	assert.Equal(t, answer.NoRelevantContentAnswer, res.Answer)
	assert.Empty(t, res.RelevantPages)
	// The LLM is never consulted when nothing clears the threshold
	assert.Equal(t, 0, llmStub.chatCalls)
}

func TestChatAskValidation(t *testing.T) {
	factory := newFakeRepositoryFactory()
	svc := newChatServiceForTest(factory, &stubEmbeddingProvider{}, &stubLLMProvider{}, 0.8)

	_, err := svc.Ask(context.Background(), &dto.ChatRequest{DocumentId: "doc.pdf", Question: "   "})
	require.Error(t, err)
	assert.True(t, IsValidationError(err))

	_, err = svc.Ask(context.Background(), &dto.ChatRequest{DocumentId: "", Question: "hello"})
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
}

func TestChatAskUnknownDocument(t *testing.T) {
	factory := newFakeRepositoryFactory()
	svc := newChatServiceForTest(factory, &stubEmbeddingProvider{}, &stubLLMProvider{}, 0.8)

	_, err := svc.Ask(context.Background(), &dto.ChatRequest{DocumentId: "missing.pdf", Question: "hello"})
	require.Error(t, err)
	assert.True(t, IsNotFoundError(err))
}
