package entity

import (
	"time"

	"github.com/google/uuid"
)

type DocumentPage struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey"`
	DocumentId string
	PageNumber int
	Text       string
	Embedding  []float32
	CreatedAt  time.Time
	UpdatedAt  *time.Time
	DeletedAt  *time.Time
	IsDeleted  bool
}
