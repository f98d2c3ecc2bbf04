package contract

import (
	"context"

	"github.com/tevez07b9/notebooklm/internal/entity"
)

type DocumentRepository interface {
	Create(ctx context.Context, doc *entity.Document) error
	FindByDocumentId(ctx context.Context, documentId string) (*entity.Document, error)
	FindAll(ctx context.Context) ([]*entity.Document, error)
	Delete(ctx context.Context, documentId string) error
	Count(ctx context.Context) (int64, error)
}
