package prompt

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/worldwonderer/promptdoc/internal/models"
	"github.com/worldwonderer/promptdoc/internal/services"
	"github.com/worldwonderer/promptdoc/internal/utils"
	"github.com/worldwonderer/promptdoc/pkg/logger"
)

// CreatePrompt godoc
// @Summary Create a new prompt
// @Description Create a prompt template; the server mints the prompt_id
// @Tags prompts
// @Accept json
// @Produce json
// @Param request body CreatePromptRequest true "Create Prompt Request"
// @Success 201 {object} utils.MessageResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/prompt [post]
func CreatePrompt(c *gin.Context) {
	var req CreatePromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(utils.FormatValidationError(err)))
		return
	}

	created, err := services.CreatePrompt(req.Content, req.Version, req.ApplicableLLM,
		req.Variables, req.Tags, models.JSON(req.Example))
	if err != nil {
		logger.Log.Error("failed to create prompt", zap.Error(err))
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse("Failed to create prompt"))
		return
	}

	logger.Log.Info("prompt created", zap.String("prompt_id", created.PromptID))
	c.JSON(http.StatusCreated, utils.NewCreatedResponse("Prompt created successfully", created.PromptID))
}

// GetPromptDetail godoc
// @Summary Get prompt details
// @Tags prompts
// @Produce json
// @Param prompt_id path string true "Prompt ID"
// @Success 200 {object} models.Prompt
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/prompt/{prompt_id} [get]
func GetPromptDetail(c *gin.Context) {
	record, err := services.GetPrompt(c.Param("prompt_id"))
	if err != nil {
		if errors.Is(err, services.ErrPromptNotFound) {
			c.JSON(http.StatusNotFound, utils.NewErrorResponse("Prompt not found"))
			return
		}
		logger.Log.Error("failed to retrieve prompt", zap.Error(err))
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse("Failed to retrieve prompt"))
		return
	}

	c.JSON(http.StatusOK, record)
}

// UpdatePrompt godoc
// @Summary Update an existing prompt
// @Description Partial update: only fields present in the payload change
// @Tags prompts
// @Accept json
// @Produce json
// @Param prompt_id path string true "Prompt ID"
// @Param request body UpdatePromptRequest true "Update Prompt Request"
// @Success 200 {object} utils.MessageResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/prompt/{prompt_id} [put]
func UpdatePrompt(c *gin.Context) {
	var req UpdatePromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(utils.FormatValidationError(err)))
		return
	}

	upd := services.PromptUpdate{
		Content:       req.Content,
		Version:       req.Version,
		ApplicableLLM: req.ApplicableLLM,
	}
	if req.Variables != nil {
		variables := models.StringList(*req.Variables)
		upd.Variables = &variables
	}
	if req.Example != nil {
		example := models.JSON(*req.Example)
		upd.Example = &example
	}
	if req.Tags != nil {
		tags := models.StringList(*req.Tags)
		upd.Tags = &tags
	}

	promptID := c.Param("prompt_id")
	if _, err := services.UpdatePrompt(promptID, upd); err != nil {
		if errors.Is(err, services.ErrPromptNotFound) {
			c.JSON(http.StatusNotFound, utils.NewErrorResponse("Prompt not found"))
			return
		}
		logger.Log.Error("failed to update prompt", zap.String("prompt_id", promptID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse("Failed to update prompt"))
		return
	}

	logger.Log.Info("prompt updated", zap.String("prompt_id", promptID))
	c.JSON(http.StatusOK, utils.NewMessageResponse("Prompt updated successfully"))
}

// DeletePrompt godoc
// @Summary Delete a prompt
// @Tags prompts
// @Produce json
// @Param prompt_id path string true "Prompt ID"
// @Success 200 {object} utils.MessageResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/prompt/{prompt_id} [delete]
func DeletePrompt(c *gin.Context) {
	promptID := c.Param("prompt_id")
	if err := services.DeletePrompt(promptID); err != nil {
		if errors.Is(err, services.ErrPromptNotFound) {
			c.JSON(http.StatusNotFound, utils.NewErrorResponse("Prompt not found"))
			return
		}
		logger.Log.Error("failed to delete prompt", zap.String("prompt_id", promptID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse("Failed to delete prompt"))
		return
	}

	logger.Log.Info("prompt deleted", zap.String("prompt_id", promptID))
	c.JSON(http.StatusOK, utils.NewMessageResponse("Prompt deleted successfully"))
}

// ListPrompts godoc
// @Summary List prompts
// @Description Filtered, sorted listing with either page/per_page or cursor/limit pagination
// @Tags prompts
// @Produce json
// @Param tag query string false "Filter by tag membership"
// @Param applicable_llm query string false "Filter by target model family"
// @Param search query string false "Substring match on content (keywords is accepted as an alias)"
// @Param sort_by query string false "created_at, -created_at, updated_at or -updated_at (offset mode only)"
// @Param page query int false "Page number (offset mode)" default(1)
// @Param per_page query int false "Page size (offset mode)" default(10)
// @Param cursor query string false "Opaque cursor token (cursor mode)"
// @Param limit query int false "Page size (cursor mode)"
// @Success 200 {object} OffsetListResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/prompts [get]
func ListPrompts(c *gin.Context) {
	filters := services.ListFilters{
		Tag:           c.Query("tag"),
		ApplicableLLM: c.Query("applicable_llm"),
		Search:        c.Query("search"),
		SortBy:        c.Query("sort_by"),
	}
	// Legacy clients send keywords instead of search
	if filters.Search == "" {
		filters.Search = c.Query("keywords")
	}

	cursorMode := c.Query("cursor") != "" || c.Query("limit") != ""
	offsetMode := c.Query("page") != "" || c.Query("per_page") != ""
	if cursorMode && offsetMode {
		c.JSON(http.StatusBadRequest,
			utils.NewErrorResponse("page/per_page cannot be combined with cursor/limit"))
		return
	}

	if cursorMode {
		listByCursor(c, filters)
		return
	}
	listByOffset(c, filters)
}

func listByOffset(c *gin.Context, filters services.ListFilters) {
	page, err := positiveIntQuery(c, "page", 1)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse("Invalid 'page' parameter"))
		return
	}

	// Out-of-range per_page is rejected, not clamped.
	perPage, err := positiveIntQuery(c, "per_page", services.DefaultPerPage)
	if err != nil || perPage > services.MaxPerPage {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse("Invalid 'per_page' parameter"))
		return
	}

	prompts, total, err := services.ListPrompts(filters, page, perPage)
	if err != nil {
		if errors.Is(err, services.ErrInvalidSortKey) {
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse("Invalid 'sort_by' parameter"))
			return
		}
		logger.Log.Error("failed to retrieve prompt list", zap.Error(err))
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse("Failed to retrieve prompt list"))
		return
	}

	if prompts == nil {
		prompts = []models.Prompt{}
	}
	c.JSON(http.StatusOK, OffsetListResponse{
		Data: prompts,
		Pagination: Pagination{
			TotalCount: total,
			Page:       page,
			PerPage:    perPage,
			TotalPages: (total + int64(perPage) - 1) / int64(perPage),
		},
	})
}

func listByCursor(c *gin.Context, filters services.ListFilters) {
	// Cursor pagination always walks the default (created_at, id) descending
	// order; a caller-chosen sort key would invalidate the cursor positions.
	if filters.SortBy != "" {
		c.JSON(http.StatusBadRequest,
			utils.NewErrorResponse("'sort_by' is not supported with cursor pagination"))
		return
	}

	limit, err := positiveIntQuery(c, "limit", services.DefaultPerPage)
	if err != nil || limit > services.MaxPerPage {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse("Invalid 'limit' parameter"))
		return
	}

	var cursor uint
	if raw := c.Query("cursor"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || parsed == 0 {
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse("Invalid 'cursor' parameter"))
			return
		}
		cursor = uint(parsed)
	}

	prompts, nextCursor, hasMore, err := services.ListPromptsByCursor(filters, cursor, limit)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCursor) {
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse("Invalid 'cursor' parameter"))
			return
		}
		logger.Log.Error("failed to retrieve prompt list", zap.Error(err))
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse("Failed to retrieve prompt list"))
		return
	}

	resp := CursorListResponse{Prompts: prompts, HasMore: hasMore}
	if resp.Prompts == nil {
		resp.Prompts = []models.Prompt{}
	}
	if hasMore {
		token := strconv.FormatUint(uint64(nextCursor), 10)
		resp.NextCursor = &token
	}
	c.JSON(http.StatusOK, resp)
}

func positiveIntQuery(c *gin.Context, name string, defaultValue int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return 0, errors.New("invalid " + name)
	}
	return value, nil
}
