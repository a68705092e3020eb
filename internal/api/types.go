package api

import (
	"SeoContentEngine/internal/domain"
)

// localizedDraft mirrors the JSON field names the product's UI renders.
type localizedDraft struct {
	Title           string `json:"标题"`
	MetaDescription string `json:"meta描述"`
	Body            string `json:"正文"`
}

func toLocalizedDraft(draft domain.ContentDraft) localizedDraft {
	return localizedDraft{
		Title:           draft.Title,
		MetaDescription: draft.MetaDescription,
		Body:            draft.Body,
	}
}

type generateRequest struct {
	Keywords string `json:"keywords" binding:"required"`
	Type     string `json:"type"`
}

type generateResponse struct {
	Success    bool                     `json:"success"`
	Content    *localizedDraft          `json:"content,omitempty"`
	Validation *domain.ValidationReport `json:"validation,omitempty"`
	ContentID  string                   `json:"content_id,omitempty"`
	Error      string                   `json:"error,omitempty"`
}

type validateRequest struct {
	Content         string `json:"content" binding:"required"`
	Keywords        string `json:"keywords"`
	Title           string `json:"title"`
	MetaDescription string `json:"meta_description"`
	Type            string `json:"type"`
}

type validateResponse struct {
	Success    bool                     `json:"success"`
	Validation *domain.ValidationReport `json:"validation,omitempty"`
	Error      string                   `json:"error,omitempty"`
}

type batchRequest struct {
	KeywordsList []string `json:"keywords_list"`
	Type         string   `json:"type"`
}

type batchItemResult struct {
	Keyword    string                   `json:"keyword"`
	State      string                   `json:"state"`
	Content    *localizedDraft          `json:"content,omitempty"`
	Validation *domain.ValidationReport `json:"validation,omitempty"`
	ContentID  string                   `json:"content_id,omitempty"`
	Error      string                   `json:"error,omitempty"`
}

type batchResponse struct {
	Success bool              `json:"success"`
	Results []batchItemResult `json:"results,omitempty"`
	Error   string            `json:"error,omitempty"`
}

type jobResponse struct {
	Success bool   `json:"success"`
	JobID   string `json:"job_id,omitempty"`
	Error   string `json:"error,omitempty"`
}

type progressResponse struct {
	Success   bool              `json:"success"`
	JobID     string            `json:"job_id"`
	Total     int               `json:"total"`
	Completed int               `json:"completed"`
	Done      bool              `json:"done"`
	Items     []batchItemResult `json:"items"`
}

type exportRequest struct {
	ContentIDs []string `json:"content_ids"`
	Format     string   `json:"format"`
}

type contentRecord struct {
	ID              string                  `json:"id"`
	Keywords        string                  `json:"keywords"`
	ContentType     domain.ContentType      `json:"content_type"`
	Title           string                  `json:"title"`
	MetaDescription string                  `json:"meta_description"`
	Content         string                  `json:"content"`
	Validation      domain.ValidationReport `json:"validation"`
	CreatedAt       string                  `json:"created_at"`
}

func toContentRecord(content domain.ValidatedContent) contentRecord {
	return contentRecord{
		ID:              content.ID,
		Keywords:        content.Keywords,
		ContentType:     content.ContentType,
		Title:           content.Draft.Title,
		MetaDescription: content.Draft.MetaDescription,
		Content:         content.Draft.Body,
		Validation:      content.Validation,
		CreatedAt:       content.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

type searchResponse struct {
	Success    bool            `json:"success"`
	Contents   []contentRecord `json:"contents"`
	Total      int             `json:"total"`
	Page       int             `json:"page"`
	TotalPages int             `json:"total_pages"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func batchItemsFromProgress(items []domain.BatchItem) []batchItemResult {
	out := make([]batchItemResult, len(items))
	for i, item := range items {
		result := batchItemResult{
			Keyword: item.Keyword,
			State:   string(item.State),
		}
		if item.Result != nil {
			draft := toLocalizedDraft(item.Result.Draft)
			validation := item.Result.Validation
			result.Content = &draft
			result.Validation = &validation
			result.ContentID = item.Result.ID
		}
		if item.Reason != "" {
			result.Error = item.Reason
		}
		out[i] = result
	}
	return out
}
