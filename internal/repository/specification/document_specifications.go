package specification

import "gorm.io/gorm"

type ByDocumentID struct {
	DocumentID string
}

func (s ByDocumentID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("document_id = ?", s.DocumentID)
}

type OrderByPageNumber struct{}

func (s OrderByPageNumber) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("page_number ASC")
}

type OrderByCreatedAtDesc struct{}

func (s OrderByCreatedAtDesc) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC")
}
