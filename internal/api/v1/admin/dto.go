package admin

import "github.com/worldwonderer/promptdoc/internal/models"

type Pagination struct {
	TotalCount int64 `json:"total_count"`
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	TotalPages int64 `json:"total_pages"`
}

type ListResponse struct {
	Data       []models.Prompt `json:"data"`
	Pagination Pagination      `json:"pagination"`
}

// DetailResponse is the admin detail view: the record plus the preview with
// example values substituted into the template.
type DetailResponse struct {
	Prompt  *models.Prompt `json:"prompt"`
	Preview string         `json:"preview"`
}
