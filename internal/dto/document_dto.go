package dto

import "time"

type DocumentMetadata struct {
	Title    string   `json:"title"`
	Summary  string   `json:"summary"`
	Keywords []string `json:"keywords"`
}

type UploadDocumentResponse struct {
	DocumentId string           `json:"document_id"`
	Metadata   DocumentMetadata `json:"metadata"`
	PageCount  int              `json:"page_count"`
}

type ShowDocumentResponse struct {
	DocumentId   string           `json:"document_id"`
	OriginalName string           `json:"original_name"`
	Metadata     DocumentMetadata `json:"metadata"`
	PageCount    int              `json:"page_count"`
	FileURL      string           `json:"file_url"`
	CreatedAt    time.Time        `json:"created_at"`
}

type DeleteDocumentResponse struct {
	DocumentId string `json:"document_id"`
}
