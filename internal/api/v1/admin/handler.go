package admin

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pquerna/otp/totp"
	"go.uber.org/zap"

	"github.com/worldwonderer/promptdoc/config"
	"github.com/worldwonderer/promptdoc/internal/middleware"
	"github.com/worldwonderer/promptdoc/internal/models"
	"github.com/worldwonderer/promptdoc/internal/services"
	"github.com/worldwonderer/promptdoc/internal/utils"
	"github.com/worldwonderer/promptdoc/pkg/logger"
)

// Login godoc
// @Summary Admin login with a TOTP code
// @Description Exchanges a valid one-time code for a 2-hour admin session
// @Tags admin
// @Accept x-www-form-urlencoded
// @Produce json
// @Param auth_code formData string true "6-digit TOTP code"
// @Success 200 {object} utils.MessageResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 503 {object} utils.ErrorResponse
// @Router /admin/login [post]
func Login(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		secret, ok := cfg.AdminSecret()
		if !ok {
			logger.Log.Error("rejecting admin login: ADMIN_TOTP_SECRET is not configured")
			c.JSON(http.StatusServiceUnavailable, utils.NewErrorResponse("Admin secret is not configured"))
			return
		}

		code := strings.TrimSpace(c.PostForm("auth_code"))
		if !totp.Validate(code, secret) {
			c.JSON(http.StatusUnauthorized, utils.NewErrorResponse("Invalid authentication code"))
			return
		}

		sessionID, err := services.CreateAdminSession()
		if err != nil {
			logger.Log.Error("failed to create admin session", zap.Error(err))
			c.JSON(http.StatusInternalServerError, utils.NewErrorResponse("Failed to create session"))
			return
		}

		c.SetCookie(middleware.AdminSessionCookie, sessionID,
			int(services.AdminSessionTTL.Seconds()), "/", "", false, true)
		c.JSON(http.StatusOK, utils.NewMessageResponse("Login successful"))
	}
}

// Logout invalidates the current admin session.
func Logout(c *gin.Context) {
	if sessionID, err := c.Cookie(middleware.AdminSessionCookie); err == nil {
		if err := services.DeleteAdminSession(sessionID); err != nil {
			logger.Log.Error("failed to delete admin session", zap.Error(err))
		}
	}
	c.SetCookie(middleware.AdminSessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, utils.NewMessageResponse("Logged out"))
}

// ListPrompts is the admin listing: same filters and order as the API,
// offset pagination only.
func ListPrompts(c *gin.Context) {
	filters := services.ListFilters{
		Tag:    c.Query("tag"),
		Search: c.Query("search"),
	}

	page, err := positiveIntQuery(c, "page", 1)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse("Invalid 'page' parameter"))
		return
	}
	perPage, err := positiveIntQuery(c, "per_page", services.DefaultPerPage)
	if err != nil || perPage > services.MaxPerPage {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse("Invalid 'per_page' parameter"))
		return
	}

	prompts, total, err := services.ListPrompts(filters, page, perPage)
	if err != nil {
		logger.Log.Error("failed to retrieve admin prompt list", zap.Error(err))
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse("Failed to retrieve prompt list"))
		return
	}

	if prompts == nil {
		prompts = []models.Prompt{}
	}
	c.JSON(http.StatusOK, ListResponse{
		Data: prompts,
		Pagination: Pagination{
			TotalCount: total,
			Page:       page,
			PerPage:    perPage,
			TotalPages: (total + int64(perPage) - 1) / int64(perPage),
		},
	})
}

// CreatePrompt creates a prompt from form-style fields: tags and variables
// arrive comma-separated, example as a textual literal.
func CreatePrompt(c *gin.Context) {
	form, err := parsePromptForm(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(err.Error()))
		return
	}

	var missing []string
	for _, f := range []struct{ name, value string }{
		{"content", form.content},
		{"version", form.version},
		{"applicable_llm", form.applicableLLM},
	} {
		if f.value == "" {
			missing = append(missing, "field '"+f.name+"' is required")
		}
	}
	if len(missing) > 0 {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(strings.Join(missing, "; ")))
		return
	}

	created, err := services.CreatePrompt(form.content, form.version, form.applicableLLM,
		form.variables, form.tags, models.JSON(form.example))
	if err != nil {
		logger.Log.Error("failed to create prompt", zap.Error(err))
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse("Failed to create prompt"))
		return
	}

	c.JSON(http.StatusCreated, utils.NewCreatedResponse("Prompt created successfully", created.PromptID))
}

// EditPrompt applies a partial update from form-style fields. Absent fields
// stay untouched; a prompt_id field in the form is never applied.
func EditPrompt(c *gin.Context) {
	upd := services.PromptUpdate{}

	if value, ok := c.GetPostForm("content"); ok {
		upd.Content = &value
	}
	if value, ok := c.GetPostForm("version"); ok {
		upd.Version = &value
	}
	if value, ok := c.GetPostForm("applicable_llm"); ok {
		upd.ApplicableLLM = &value
	}
	if value, ok := c.GetPostForm("variables"); ok {
		variables := models.StringList(splitList(value))
		upd.Variables = &variables
	}
	if value, ok := c.GetPostForm("tags"); ok {
		tags := models.StringList(splitList(value))
		upd.Tags = &tags
	}
	if value, ok := c.GetPostForm("example"); ok {
		parsed, err := services.ParseExample(value)
		if err != nil {
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse("Invalid example format"))
			return
		}
		example := models.JSON(parsed)
		upd.Example = &example
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

	c.JSON(http.StatusOK, utils.NewMessageResponse("Prompt updated successfully"))
}

// DeletePrompt removes a prompt from the admin surface.
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

	c.JSON(http.StatusOK, utils.NewMessageResponse("Prompt deleted successfully"))
}

// PromptDetail returns the record together with the rendered preview.
func PromptDetail(c *gin.Context) {
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

	c.JSON(http.StatusOK, DetailResponse{
		Prompt:  record,
		Preview: services.RenderPreview(record.Content, record.Example),
	})
}

type promptForm struct {
	content       string
	version       string
	applicableLLM string
	variables     []string
	tags          []string
	example       map[string]interface{}
}

func parsePromptForm(c *gin.Context) (*promptForm, error) {
	form := &promptForm{
		content:       c.PostForm("content"),
		version:       c.PostForm("version"),
		applicableLLM: c.PostForm("applicable_llm"),
		variables:     splitList(c.PostForm("variables")),
		tags:          splitList(c.PostForm("tags")),
		example:       map[string]interface{}{},
	}

	if raw := strings.TrimSpace(c.PostForm("example")); raw != "" {
		parsed, err := services.ParseExample(raw)
		if err != nil {
			return nil, errors.New("Invalid example format")
		}
		form.example = parsed
	}
	return form, nil
}

// splitList turns a comma-separated form value into trimmed, non-empty items.
func splitList(raw string) []string {
	var items []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
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
