package implementation

import (
	"context"

	"github.com/tevez07b9/notebooklm/internal/entity"
	"github.com/tevez07b9/notebooklm/internal/mapper"
	"github.com/tevez07b9/notebooklm/internal/model"
	"github.com/tevez07b9/notebooklm/internal/repository/contract"
	"github.com/tevez07b9/notebooklm/internal/repository/specification"

	"gorm.io/gorm"
)

type DocumentPageRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.DocumentPageMapper
}

func NewDocumentPageRepository(db *gorm.DB) contract.DocumentPageRepository {
	return &DocumentPageRepositoryImpl{
		db:     db,
		mapper: mapper.NewDocumentPageMapper(),
	}
}

func (r *DocumentPageRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *DocumentPageRepositoryImpl) CreateBatch(ctx context.Context, pages []*entity.DocumentPage) error {
	if len(pages) == 0 {
		return nil
	}
	models := r.mapper.ToModels(pages)
	if err := r.db.WithContext(ctx).CreateInBatches(models, 100).Error; err != nil {
		return err
	}
	for i, m := range models {
		*pages[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *DocumentPageRepositoryImpl) FindByDocumentId(ctx context.Context, documentId string) ([]*entity.DocumentPage, error) {
	var models []*model.DocumentPage
	query := r.applySpecifications(
		r.db.WithContext(ctx),
		specification.ByDocumentID{DocumentID: documentId},
		specification.OrderByPageNumber{},
	)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *DocumentPageRepositoryImpl) DeleteByDocumentId(ctx context.Context, documentId string) error {
	return r.db.WithContext(ctx).Where("document_id = ?", documentId).Delete(&model.DocumentPage{}).Error
}
