package prompt

import "github.com/worldwonderer/promptdoc/internal/models"

// CreatePromptRequest is the API create payload. A client-supplied prompt_id
// is not part of the schema and is silently discarded; the server mints one.
type CreatePromptRequest struct {
	Content       string                 `json:"content" binding:"required"`
	Variables     []string               `json:"variables"`
	Example       map[string]interface{} `json:"example"`
	Version       string                 `json:"version" binding:"required"`
	ApplicableLLM string                 `json:"applicable_llm" binding:"required"`
	Tags          []string               `json:"tags"`
}

// UpdatePromptRequest is the partial-update payload: only fields present in
// the request body are applied to the stored record.
type UpdatePromptRequest struct {
	Content       *string                 `json:"content"`
	Variables     *[]string               `json:"variables"`
	Example       *map[string]interface{} `json:"example"`
	Version       *string                 `json:"version"`
	ApplicableLLM *string                 `json:"applicable_llm"`
	Tags          *[]string               `json:"tags"`
}

type Pagination struct {
	TotalCount int64 `json:"total_count"`
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	TotalPages int64 `json:"total_pages"`
}

// OffsetListResponse is the page/per_page mode body.
type OffsetListResponse struct {
	Data       []models.Prompt `json:"data"`
	Pagination Pagination      `json:"pagination"`
}

// CursorListResponse is the cursor/limit mode body. NextCursor is null on the
// final page.
type CursorListResponse struct {
	Prompts    []models.Prompt `json:"prompts"`
	HasMore    bool            `json:"has_more"`
	NextCursor *string         `json:"next_cursor"`
}
