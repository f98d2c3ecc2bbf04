package service

import (
	"context"
	"strings"

	"github.com/tevez07b9/notebooklm/internal/dto"
	"github.com/tevez07b9/notebooklm/internal/pkg/logger"
	"github.com/tevez07b9/notebooklm/internal/repository/unitofwork"
	"github.com/tevez07b9/notebooklm/pkg/embedding"
	"github.com/tevez07b9/notebooklm/pkg/rag/answer"
	"github.com/tevez07b9/notebooklm/pkg/rag/ranker"
)

type IChatService interface {
	Ask(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error)
}

type chatService struct {
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.Provider
	ranker            *ranker.Ranker
	composer          *answer.Composer
	log               logger.ILogger
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.Provider,
	rk *ranker.Ranker,
	composer *answer.Composer,
	log logger.ILogger,
) IChatService {
	return &chatService{
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		ranker:            rk,
		composer:          composer,
		log:               log,
	}
}

func (s *chatService) Ask(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	question := strings.TrimSpace(req.Question)
	if question == "" {
		return nil, ErrEmptyQuestion
	}
	if req.DocumentId == "" {
		return nil, ErrMissingDocumentId
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	doc, err := uow.DocumentRepository().FindByDocumentId(ctx, req.DocumentId)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, ErrDocumentNotFound
	}

	pages, err := uow.DocumentPageRepository().FindByDocumentId(ctx, req.DocumentId)
	if err != nil {
		return nil, err
	}

	queryEmbedding, err := s.embeddingProvider.Generate(question, embedding.TaskRetrievalQuery)
	if err != nil {
		return nil, err
	}

	rankerPages := make([]ranker.Page, len(pages))
	for i, p := range pages {
		rankerPages[i] = ranker.Page{
			Number:    p.PageNumber,
			Text:      p.Text,
			Embedding: p.Embedding,
		}
	}

	relevant, err := s.ranker.Rank(queryEmbedding.Values, rankerPages)
	if err != nil {
		return nil, err
	}

	s.log.Info("chat", "ranked pages for question", map[string]interface{}{
		"document_id":    req.DocumentId,
		"total_pages":    len(pages),
		"relevant_pages": len(relevant),
	})

	answerText, err := s.composer.Compose(ctx, question, relevant)
	if err != nil {
		return nil, err
	}

	cited := make([]dto.CitedPage, len(relevant))
	for i, rp := range relevant {
		cited[i] = dto.CitedPage{
			PageNumber: rp.Number,
			Similarity: rp.Similarity,
		}
	}

	return &dto.ChatResponse{
		Answer:        answerText,
		RelevantPages: cited,
	}, nil
}
