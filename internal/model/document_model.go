package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Document struct {
	Id           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DocumentId   string         `gorm:"type:varchar(255);not null;uniqueIndex"`
	OriginalName string         `gorm:"type:varchar(255);not null"`
	Title        string         `gorm:"type:text"`
	Summary      string         `gorm:"type:text"`
	Keywords     string         `gorm:"type:text"`
	PageCount    int            `gorm:"default:0"`
	CreatedAt    time.Time      `gorm:"autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime"`
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (Document) TableName() string {
	return "documents"
}
