package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/tevez07b9/notebooklm/internal/dto"
	"github.com/tevez07b9/notebooklm/internal/entity"
	"github.com/tevez07b9/notebooklm/internal/pkg/logger"
	"github.com/tevez07b9/notebooklm/internal/repository/memory"
	"github.com/tevez07b9/notebooklm/internal/repository/unitofwork"
	"github.com/tevez07b9/notebooklm/pkg/embedding"
	"github.com/tevez07b9/notebooklm/pkg/events"
	"github.com/tevez07b9/notebooklm/pkg/extract"
	"github.com/tevez07b9/notebooklm/pkg/rag/metadata"
)

type IDocumentService interface {
	Upload(ctx context.Context, originalName string, data []byte) (*dto.UploadDocumentResponse, error)
	List(ctx context.Context) ([]*dto.ShowDocumentResponse, error)
	Delete(ctx context.Context, documentId string) (*dto.DeleteDocumentResponse, error)
}

type documentService struct {
	uowFactory        unitofwork.RepositoryFactory
	publisherService  IPublisherService
	extractor         extract.Extractor
	embeddingProvider embedding.Provider
	metadataGenerator *metadata.Generator
	documentCache     *memory.DocumentCache
	log               logger.ILogger
	uploadDir         string
	baseURL           string
	embedConcurrency  int
}

func NewDocumentService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	extractor extract.Extractor,
	embeddingProvider embedding.Provider,
	metadataGenerator *metadata.Generator,
	documentCache *memory.DocumentCache,
	log logger.ILogger,
	uploadDir string,
	baseURL string,
	embedConcurrency int,
) IDocumentService {
	if embedConcurrency < 1 {
		embedConcurrency = 1
	}
	return &documentService{
		uowFactory:        uowFactory,
		publisherService:  publisherService,
		extractor:         extractor,
		embeddingProvider: embeddingProvider,
		metadataGenerator: metadataGenerator,
		documentCache:     documentCache,
		log:               log,
		uploadDir:         uploadDir,
		baseURL:           baseURL,
		embedConcurrency:  embedConcurrency,
	}
}

func (s *documentService) Upload(ctx context.Context, originalName string, data []byte) (*dto.UploadDocumentResponse, error) {
	if len(data) == 0 {
		return nil, ErrMissingFile
	}
	if strings.ToLower(filepath.Ext(originalName)) != ".pdf" {
		return nil, ErrNotPDF
	}

	documentId := uuid.New().String() + ".pdf"

	pages, err := s.extractor.Extract(data)
	if err != nil {
		return nil, err
	}

	s.log.Info("document", "extracted pages", map[string]interface{}{
		"document_id": documentId,
		"page_count":  len(pages),
	})

	embeddings, err := s.embedPages(ctx, pages)
	if err != nil {
		return nil, err
	}

	meta := s.metadataGenerator.Generate(ctx, pages)
	if !meta.Parsed {
		s.log.Warn("document", "metadata generation failed, storing document without metadata", map[string]interface{}{
			"document_id": documentId,
		})
	}

	if err := s.storeFile(documentId, data); err != nil {
		return nil, WrapInternal("failed to store uploaded file", err)
	}

	doc := entity.Document{
		Id:           uuid.New(),
		DocumentId:   documentId,
		OriginalName: originalName,
		Title:        meta.Metadata.Title,
		Summary:      meta.Metadata.Summary,
		Keywords:     meta.Metadata.Keywords,
		PageCount:    len(pages),
		CreatedAt:    time.Now(),
	}

	pageEntities := make([]*entity.DocumentPage, len(pages))
	for i, p := range pages {
		pageEntities[i] = &entity.DocumentPage{
			Id:         uuid.New(),
			DocumentId: documentId,
			PageNumber: p.Number,
			Text:       p.Text,
			Embedding:  embeddings[i],
			CreatedAt:  time.Now(),
		}
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, WrapInternal("failed to begin transaction", err)
	}
	defer uow.Rollback()

	if err := uow.DocumentRepository().Create(ctx, &doc); err != nil {
		s.removeFile(documentId)
		return nil, WrapInternal("failed to persist document", err)
	}
	if err := uow.DocumentPageRepository().CreateBatch(ctx, pageEntities); err != nil {
		s.removeFile(documentId)
		return nil, WrapInternal("failed to persist document pages", err)
	}
	if err := uow.Commit(); err != nil {
		s.removeFile(documentId)
		return nil, WrapInternal("failed to commit transaction", err)
	}

	s.publishEvent(ctx, events.TypeDocumentIngested, map[string]interface{}{
		"document_id": documentId,
		"page_count":  len(pages),
	})

	return &dto.UploadDocumentResponse{
		DocumentId: documentId,
		Metadata: dto.DocumentMetadata{
			Title:    doc.Title,
			Summary:  doc.Summary,
			Keywords: doc.Keywords,
		},
		PageCount: len(pages),
	}, nil
}

// embedPages generates one embedding per page with bounded parallelism.
// Any single failure aborts the whole upload so a document is never
// persisted with partial coverage.
func (s *documentService) embedPages(ctx context.Context, pages []extract.Page) ([][]float32, error) {
	embeddings := make([][]float32, len(pages))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(s.embedConcurrency)

	for i, page := range pages {
		i, page := i, page
		g.Go(func() error {
			res, err := s.embeddingProvider.Generate(page.Text, embedding.TaskRetrievalDocument)
			if err != nil {
				return fmt.Errorf("page %d: %w", page.Number, err)
			}
			embeddings[i] = res.Values
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return embeddings, nil
}

func (s *documentService) List(ctx context.Context) ([]*dto.ShowDocumentResponse, error) {
	docs, cached := s.documentCache.GetList()
	if !cached {
		uow := s.uowFactory.NewUnitOfWork(ctx)
		var err error
		docs, err = uow.DocumentRepository().FindAll(ctx)
		if err != nil {
			return nil, err
		}
		s.documentCache.SaveList(docs)
	}

	res := make([]*dto.ShowDocumentResponse, len(docs))
	for i, d := range docs {
		res[i] = &dto.ShowDocumentResponse{
			DocumentId:   d.DocumentId,
			OriginalName: d.OriginalName,
			Metadata: dto.DocumentMetadata{
				Title:    d.Title,
				Summary:  d.Summary,
				Keywords: d.Keywords,
			},
			PageCount: d.PageCount,
			FileURL:   fmt.Sprintf("%s/uploads/%s", s.baseURL, d.DocumentId),
			CreatedAt: d.CreatedAt,
		}
	}
	return res, nil
}

func (s *documentService) Delete(ctx context.Context, documentId string) (*dto.DeleteDocumentResponse, error) {
	if documentId == "" {
		return nil, ErrMissingDocumentId
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	doc, err := uow.DocumentRepository().FindByDocumentId(ctx, documentId)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, ErrDocumentNotFound
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, WrapInternal("failed to begin transaction", err)
	}
	defer uow.Rollback()

	if err := uow.DocumentPageRepository().DeleteByDocumentId(ctx, documentId); err != nil {
		return nil, WrapInternal("failed to delete document pages", err)
	}
	if err := uow.DocumentRepository().Delete(ctx, documentId); err != nil {
		return nil, WrapInternal("failed to delete document", err)
	}
	if err := uow.Commit(); err != nil {
		return nil, WrapInternal("failed to commit transaction", err)
	}

	s.removeFile(documentId)

	s.publishEvent(ctx, events.TypeDocumentDeleted, map[string]interface{}{
		"document_id": documentId,
	})

	return &dto.DeleteDocumentResponse{DocumentId: documentId}, nil
}

func (s *documentService) storeFile(documentId string, data []byte) error {
	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.uploadDir, documentId), data, 0o644)
}

func (s *documentService) removeFile(documentId string) {
	if err := os.Remove(filepath.Join(s.uploadDir, documentId)); err != nil && !os.IsNotExist(err) {
		s.log.Warn("document", "failed to remove stored file", map[string]interface{}{
			"document_id": documentId,
			"error":       err.Error(),
		})
	}
}

// Event publishing is auxiliary; failures are logged but never fail the request.
func (s *documentService) publishEvent(ctx context.Context, eventType string, data map[string]interface{}) {
	evt := events.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
	if err := s.publisherService.Publish(ctx, evt); err != nil {
		s.log.Warn("document", "failed to publish event", map[string]interface{}{
			"event_type": eventType,
			"error":      err.Error(),
		})
	}
}
