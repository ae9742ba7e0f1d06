package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/worldwonderer/promptdoc/internal/database"
	"github.com/worldwonderer/promptdoc/internal/models"
	"github.com/worldwonderer/promptdoc/pkg/logger"
)

func setupTestDB() {
	logger.Log = zap.NewNop()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic(fmt.Sprintf("failed to connect database: %v", err))
	}

	db.Migrator().DropTable(&models.Prompt{})
	if err := db.AutoMigrate(&models.Prompt{}); err != nil {
		panic("failed to migrate database")
	}

	database.DB = db
}

func seedPrompt(t *testing.T, content, llm string, tags []string, createdAt time.Time) models.Prompt {
	t.Helper()
	prompt := models.Prompt{
		PromptID:      fmt.Sprintf("seed-%s", content),
		Content:       content,
		Version:       "1",
		ApplicableLLM: llm,
		Tags:          models.StringList(tags),
		CreatedAt:     createdAt,
		UpdatedAt:     createdAt,
	}
	assert.NoError(t, database.DB.Create(&prompt).Error)
	return prompt
}

func TestCreatePromptMintsUniqueID(t *testing.T) {
	setupTestDB()

	first, err := CreatePrompt("content A", "1", "LLM1", []string{"v"}, []string{"tag1"}, models.JSON{"v": "x"})
	assert.NoError(t, err)
	assert.NotEmpty(t, first.PromptID)

	second, err := CreatePrompt("content B", "1", "LLM1", nil, nil, nil)
	assert.NoError(t, err)
	assert.NotEqual(t, first.PromptID, second.PromptID)
}

func TestGetPromptNotFound(t *testing.T) {
	setupTestDB()

	_, err := GetPrompt("does-not-exist")
	assert.ErrorIs(t, err, ErrPromptNotFound)
}

func TestUpdatePromptPartial(t *testing.T) {
	setupTestDB()

	created, err := CreatePrompt("original", "1", "LLM1", []string{"a"}, []string{"t"}, models.JSON{"a": "1"})
	assert.NoError(t, err)

	newContent := "updated"
	updated, err := UpdatePrompt(created.PromptID, PromptUpdate{Content: &newContent})
	assert.NoError(t, err)

	// Only the provided field changed
	assert.Equal(t, "updated", updated.Content)
	assert.Equal(t, "1", updated.Version)
	assert.Equal(t, "LLM1", updated.ApplicableLLM)
	assert.Equal(t, models.StringList{"t"}, updated.Tags)
	assert.Equal(t, created.PromptID, updated.PromptID)
	assert.False(t, updated.UpdatedAt.Before(created.UpdatedAt))
}

func TestUpdatePromptNotFound(t *testing.T) {
	setupTestDB()

	content := "x"
	_, err := UpdatePrompt("missing", PromptUpdate{Content: &content})
	assert.ErrorIs(t, err, ErrPromptNotFound)
}

func TestDeletePrompt(t *testing.T) {
	setupTestDB()

	created, err := CreatePrompt("to delete", "1", "LLM1", nil, nil, nil)
	assert.NoError(t, err)

	assert.NoError(t, DeletePrompt(created.PromptID))

	_, err = GetPrompt(created.PromptID)
	assert.ErrorIs(t, err, ErrPromptNotFound)

	assert.ErrorIs(t, DeletePrompt(created.PromptID), ErrPromptNotFound)
}

func TestListPromptsFilters(t *testing.T) {
	setupTestDB()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	seedPrompt(t, "alpha greeting", "LLM1", []string{"greeting", "common"}, base)
	seedPrompt(t, "beta farewell", "LLM2", []string{"farewell"}, base.Add(time.Minute))
	seedPrompt(t, "gamma greeting", "LLM2", []string{"greeting"}, base.Add(2*time.Minute))

	prompts, total, err := ListPrompts(ListFilters{Tag: "greeting"}, 1, 10)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, prompts, 2)

	prompts, total, err = ListPrompts(ListFilters{ApplicableLLM: "LLM2"}, 1, 10)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), total)

	prompts, total, err = ListPrompts(ListFilters{Search: "farewell"}, 1, 10)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "beta farewell", prompts[0].Content)

	prompts, total, err = ListPrompts(ListFilters{Tag: "greeting", ApplicableLLM: "LLM2"}, 1, 10)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "gamma greeting", prompts[0].Content)
}

func TestListPromptsFilterTreatsWildcardsLiterally(t *testing.T) {
	setupTestDB()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	seedPrompt(t, "percent tagged", "LLM1", []string{"a%b"}, base)
	seedPrompt(t, "plain tagged", "LLM1", []string{"axb"}, base.Add(time.Minute))
	seedPrompt(t, "100% done", "LLM1", nil, base.Add(2*time.Minute))
	seedPrompt(t, "100x done", "LLM1", nil, base.Add(3*time.Minute))

	prompts, total, err := ListPrompts(ListFilters{Tag: "a%b"}, 1, 10)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "percent tagged", prompts[0].Content)

	prompts, total, err = ListPrompts(ListFilters{Search: "100%"}, 1, 10)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "100% done", prompts[0].Content)

	_, total, err = ListPrompts(ListFilters{Tag: "a_b"}, 1, 10)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), total)
}

func TestListPromptsSortOrder(t *testing.T) {
	setupTestDB()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	seedPrompt(t, "oldest", "LLM1", nil, base)
	seedPrompt(t, "middle", "LLM1", nil, base.Add(time.Minute))
	seedPrompt(t, "newest", "LLM1", nil, base.Add(2*time.Minute))

	prompts, _, err := ListPrompts(ListFilters{}, 1, 10)
	assert.NoError(t, err)
	assert.Equal(t, "newest", prompts[0].Content)
	assert.Equal(t, "oldest", prompts[2].Content)

	prompts, _, err = ListPrompts(ListFilters{SortBy: "created_at"}, 1, 10)
	assert.NoError(t, err)
	assert.Equal(t, "oldest", prompts[0].Content)

	_, _, err = ListPrompts(ListFilters{SortBy: "content"}, 1, 10)
	assert.ErrorIs(t, err, ErrInvalidSortKey)
}

func TestListPromptsOffsetModeCoversAllRecordsOnce(t *testing.T) {
	setupTestDB()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	// Several records share a created_at so the id tiebreaker decides order.
	for i := 0; i < 7; i++ {
		seedPrompt(t, fmt.Sprintf("record %d", i), "LLM1", nil, base.Add(time.Duration(i/2)*time.Minute))
	}

	perPage := 3
	seen := map[string]bool{}
	var fetched int64
	for page := 1; ; page++ {
		prompts, total, err := ListPrompts(ListFilters{}, page, perPage)
		assert.NoError(t, err)
		assert.Equal(t, int64(7), total)
		for _, p := range prompts {
			assert.False(t, seen[p.PromptID], "record %s repeated across pages", p.PromptID)
			seen[p.PromptID] = true
		}
		fetched += int64(len(prompts))
		if len(prompts) < perPage {
			break
		}
	}
	assert.Equal(t, int64(7), fetched)
}

func TestListPromptsByCursorVisitsAllRecordsInOrder(t *testing.T) {
	setupTestDB()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 7; i++ {
		seedPrompt(t, fmt.Sprintf("record %d", i), "LLM1", nil, base.Add(time.Duration(i/2)*time.Minute))
	}

	var all []models.Prompt
	cursor := uint(0)
	finalPages := 0
	for {
		prompts, next, hasMore, err := ListPromptsByCursor(ListFilters{}, cursor, 3)
		assert.NoError(t, err)
		all = append(all, prompts...)
		if !hasMore {
			finalPages++
			break
		}
		assert.NotZero(t, next)
		cursor = next
	}

	assert.Equal(t, 1, finalPages)
	assert.Len(t, all, 7)

	seen := map[string]bool{}
	for i, p := range all {
		assert.False(t, seen[p.PromptID])
		seen[p.PromptID] = true
		if i > 0 {
			prev := all[i-1]
			// Descending (created_at, id) keyset order
			if p.CreatedAt.Equal(prev.CreatedAt) {
				assert.Less(t, p.ID, prev.ID)
			} else {
				assert.True(t, p.CreatedAt.Before(prev.CreatedAt))
			}
		}
	}
}

func TestListPromptsByCursorAppliesFilters(t *testing.T) {
	setupTestDB()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 4; i++ {
		seedPrompt(t, fmt.Sprintf("tagged %d", i), "LLM1", []string{"keep"}, base.Add(time.Duration(i)*time.Minute))
	}
	seedPrompt(t, "untagged", "LLM1", nil, base.Add(10*time.Minute))

	prompts, next, hasMore, err := ListPromptsByCursor(ListFilters{Tag: "keep"}, 0, 3)
	assert.NoError(t, err)
	assert.Len(t, prompts, 3)
	assert.True(t, hasMore)

	prompts, _, hasMore, err = ListPromptsByCursor(ListFilters{Tag: "keep"}, next, 3)
	assert.NoError(t, err)
	assert.Len(t, prompts, 1)
	assert.False(t, hasMore)
	assert.Equal(t, "tagged 0", prompts[0].Content)
}

func TestListPromptsByCursorRejectsUnknownCursor(t *testing.T) {
	setupTestDB()

	_, _, _, err := ListPromptsByCursor(ListFilters{}, 9999, 5)
	assert.ErrorIs(t, err, ErrInvalidCursor)
}
