package mapper

import (
	"time"

	"github.com/tevez07b9/notebooklm/internal/entity"
	"github.com/tevez07b9/notebooklm/internal/model"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type DocumentPageMapper struct{}

func NewDocumentPageMapper() *DocumentPageMapper {
	return &DocumentPageMapper{}
}

func (m *DocumentPageMapper) ToEntity(p *model.DocumentPage) *entity.DocumentPage {
	if p == nil {
		return nil
	}

	var deletedAt *time.Time
	if p.DeletedAt.Valid {
		t := p.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !p.UpdatedAt.IsZero() {
		t := p.UpdatedAt
		updatedAt = &t
	}

	return &entity.DocumentPage{
		Id:         p.Id,
		DocumentId: p.DocumentId,
		PageNumber: p.PageNumber,
		Text:       p.Text,
		Embedding:  p.Embedding.Slice(),
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  updatedAt,
		DeletedAt:  deletedAt,
		IsDeleted:  p.DeletedAt.Valid,
	}
}

func (m *DocumentPageMapper) ToModel(p *entity.DocumentPage) *model.DocumentPage {
	if p == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if p.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *p.DeletedAt, Valid: true}
	} else if p.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if p.UpdatedAt != nil {
		updatedAt = *p.UpdatedAt
	}

	return &model.DocumentPage{
		Id:         p.Id,
		DocumentId: p.DocumentId,
		PageNumber: p.PageNumber,
		Text:       p.Text,
		Embedding:  pgvector.NewVector(p.Embedding),
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  updatedAt,
		DeletedAt:  deletedAt,
	}
}

func (m *DocumentPageMapper) ToEntities(pages []*model.DocumentPage) []*entity.DocumentPage {
	entities := make([]*entity.DocumentPage, len(pages))
	for i, p := range pages {
		entities[i] = m.ToEntity(p)
	}
	return entities
}

func (m *DocumentPageMapper) ToModels(pages []*entity.DocumentPage) []*model.DocumentPage {
	models := make([]*model.DocumentPage, len(pages))
	for i, p := range pages {
		models[i] = m.ToModel(p)
	}
	return models
}
