package entity

import (
	"time"

	"github.com/google/uuid"
)

type Document struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey"`
	DocumentId   string
	OriginalName string
	Title        string
	Summary      string
	Keywords     []string
	PageCount    int
	CreatedAt    time.Time
	UpdatedAt    *time.Time
	DeletedAt    *time.Time
	IsDeleted    bool
}
