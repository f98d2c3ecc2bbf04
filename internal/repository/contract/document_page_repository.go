package contract

import (
	"context"

	"github.com/tevez07b9/notebooklm/internal/entity"
)

type DocumentPageRepository interface {
	CreateBatch(ctx context.Context, pages []*entity.DocumentPage) error
	FindByDocumentId(ctx context.Context, documentId string) ([]*entity.DocumentPage, error)
	DeleteByDocumentId(ctx context.Context, documentId string) error
}
