package dto

type ChatRequest struct {
	DocumentId string `json:"document_id" validate:"required"`
	Question   string `json:"question" validate:"required"`
}

type CitedPage struct {
	PageNumber int     `json:"page_number"`
	Similarity float64 `json:"similarity"`
}

type ChatResponse struct {
	Answer        string      `json:"answer"`
	RelevantPages []CitedPage `json:"relevant_pages"`
}
