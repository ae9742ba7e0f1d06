package services

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/worldwonderer/promptdoc/internal/database"
	"github.com/worldwonderer/promptdoc/internal/models"
)

var (
	ErrPromptNotFound = errors.New("prompt not found")
	ErrInvalidCursor  = errors.New("unknown cursor position")
	ErrInvalidSortKey = errors.New("unsupported sort key")
)

const (
	DefaultPerPage = 10
	MaxPerPage     = 100
)

// ListFilters narrows the prompt collection before pagination. Both
// pagination modes apply the same filters and the same stable order.
type ListFilters struct {
	Tag           string
	ApplicableLLM string
	Search        string
	SortBy        string // "", created_at, -created_at, updated_at, -updated_at
}

// sortClauses maps accepted sort keys to an ORDER BY with the id tiebreaker
// appended. The tiebreaker keeps the order total, so sequential pages never
// skip or repeat a record.
var sortClauses = map[string]string{
	"":            "created_at DESC, id DESC",
	"-created_at": "created_at DESC, id DESC",
	"created_at":  "created_at ASC, id ASC",
	"-updated_at": "updated_at DESC, id DESC",
	"updated_at":  "updated_at ASC, id ASC",
}

func (f ListFilters) orderClause() (string, error) {
	clause, ok := sortClauses[f.SortBy]
	if !ok {
		return "", ErrInvalidSortKey
	}
	return clause, nil
}

func (f ListFilters) apply(db *gorm.DB) *gorm.DB {
	if f.Tag != "" {
		// Tags are stored as a JSON array; membership is a match on the
		// quoted element.
		db = db.Where(`tags LIKE ? ESCAPE '\'`, `%"`+escapeLike(f.Tag)+`"%`)
	}
	if f.ApplicableLLM != "" {
		db = db.Where("applicable_llm = ?", f.ApplicableLLM)
	}
	if f.Search != "" {
		db = db.Where(`content LIKE ? ESCAPE '\'`, "%"+escapeLike(f.Search)+"%")
	}
	return db
}

// escapeLike neutralizes LIKE wildcards in user-supplied filter values so a
// tag such as "a%b" matches literally.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	return strings.ReplaceAll(s, `_`, `\_`)
}

// CreatePrompt validates nothing beyond what the handler already bound; it
// mints the prompt_id and persists the record. Any prompt_id supplied by the
// caller is discarded here.
func CreatePrompt(content, version, applicableLLM string, variables, tags []string, example models.JSON) (*models.Prompt, error) {
	prompt := &models.Prompt{
		PromptID:      uuid.New().String(),
		Content:       content,
		Variables:     models.StringList(variables),
		Example:       example,
		Version:       version,
		ApplicableLLM: applicableLLM,
		Tags:          models.StringList(tags),
	}

	if err := database.DB.Create(prompt).Error; err != nil {
		return nil, err
	}
	return prompt, nil
}

// GetPrompt retrieves a prompt by its public identifier
func GetPrompt(promptID string) (*models.Prompt, error) {
	var prompt models.Prompt
	if err := database.DB.Where("prompt_id = ?", promptID).First(&prompt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPromptNotFound
		}
		return nil, err
	}
	return &prompt, nil
}

// PromptUpdate carries a partial update: only non-nil fields are applied.
// The public identifier is not part of the set, so identity can never be
// reassigned through an update.
type PromptUpdate struct {
	Content       *string
	Variables     *models.StringList
	Example       *models.JSON
	Version       *string
	ApplicableLLM *string
	Tags          *models.StringList
}

// UpdatePrompt applies the provided fields to an existing prompt and
// refreshes updated_at.
func UpdatePrompt(promptID string, upd PromptUpdate) (*models.Prompt, error) {
	prompt, err := GetPrompt(promptID)
	if err != nil {
		return nil, err
	}

	assignments := map[string]interface{}{
		"updated_at": time.Now(),
	}
	if upd.Content != nil {
		assignments["content"] = *upd.Content
	}
	if upd.Variables != nil {
		assignments["variables"] = *upd.Variables
	}
	if upd.Example != nil {
		assignments["example"] = *upd.Example
	}
	if upd.Version != nil {
		assignments["version"] = *upd.Version
	}
	if upd.ApplicableLLM != nil {
		assignments["applicable_llm"] = *upd.ApplicableLLM
	}
	if upd.Tags != nil {
		assignments["tags"] = *upd.Tags
	}

	if err := database.DB.Model(prompt).Updates(assignments).Error; err != nil {
		return nil, err
	}
	return GetPrompt(promptID)
}

// DeletePrompt removes a prompt permanently; there is no soft delete.
func DeletePrompt(promptID string) error {
	prompt, err := GetPrompt(promptID)
	if err != nil {
		return err
	}
	return database.DB.Delete(prompt).Error
}

// ListPrompts is the offset pagination mode: skip (page-1)*perPage matching
// records and return up to perPage, together with the total match count.
// page and perPage are validated at the request boundary; the hard cap is
// MaxPerPage.
func ListPrompts(f ListFilters, page, perPage int) ([]models.Prompt, int64, error) {
	order, err := f.orderClause()
	if err != nil {
		return nil, 0, err
	}

	query := f.apply(database.DB.Model(&models.Prompt{}))

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var prompts []models.Prompt
	offset := (page - 1) * perPage
	if err := query.Order(order).Offset(offset).Limit(perPage).Find(&prompts).Error; err != nil {
		return nil, 0, err
	}
	return prompts, total, nil
}

// ListPromptsByCursor is the cursor pagination mode. cursor is the store
// order key (Prompt.ID) of the last record seen, or 0 for the first page.
// It fetches limit+1 rows after the cursor position in (created_at, id)
// descending keyset order and derives has_more from the extra row. No count
// query is issued.
//
// The two-step fetch is not transactional: concurrent writes between chained
// calls can cause a record to be skipped or seen twice. That is the accepted
// trade-off for skipping the count.
func ListPromptsByCursor(f ListFilters, cursor uint, limit int) (prompts []models.Prompt, nextCursor uint, hasMore bool, err error) {
	query := f.apply(database.DB.Model(&models.Prompt{}))

	if cursor != 0 {
		var anchor models.Prompt
		if err := database.DB.Select("id", "created_at").First(&anchor, cursor).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, 0, false, ErrInvalidCursor
			}
			return nil, 0, false, err
		}
		query = query.Where(
			"created_at < ? OR (created_at = ? AND id < ?)",
			anchor.CreatedAt, anchor.CreatedAt, anchor.ID,
		)
	}

	if err := query.Order("created_at DESC, id DESC").Limit(limit + 1).Find(&prompts).Error; err != nil {
		return nil, 0, false, err
	}

	if len(prompts) > limit {
		prompts = prompts[:limit]
		hasMore = true
		nextCursor = prompts[limit-1].ID
	}
	return prompts, nextCursor, hasMore, nil
}
