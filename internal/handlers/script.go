package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	apierrors "github.com/crewdeck/crewdeck-api/internal/errors"
	"github.com/crewdeck/crewdeck-api/internal/middleware"
	"github.com/crewdeck/crewdeck-api/internal/services"
)

// ScriptHandler serves per-project script content and shot correlation.
type ScriptHandler struct {
	scriptService *services.ScriptService
}

// NewScriptHandler creates a new ScriptHandler.
func NewScriptHandler(scriptService *services.ScriptService) *ScriptHandler {
	return &ScriptHandler{
		scriptService: scriptService,
	}
}

// GetScript returns the project's script with its correlations.
func (h *ScriptHandler) GetScript(c *gin.Context) {
	project, ok := middleware.CurrentProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	script, err := h.scriptService.GetScript(project.ID)
	if err != nil {
		respondScriptError(c, err)
		return
	}

	c.JSON(http.StatusOK, script)
}

// SaveScript creates or replaces the project's script content.
func (h *ScriptHandler) SaveScript(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	project, ok := middleware.CurrentProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	type SaveScriptRequest struct {
		HTMLContent string `json:"htmlContent"`
	}

	var req SaveScriptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	script, err := h.scriptService.SaveScript(project.ID, user.ID, req.HTMLContent)
	if err != nil {
		respondScriptError(c, err)
		return
	}

	c.JSON(http.StatusOK, script)
}

// Correlate associates selected script text with a shot number.
func (h *ScriptHandler) Correlate(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	project, ok := middleware.CurrentProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	type CorrelateRequest struct {
		ShotID *int   `json:"shotId" binding:"required"`
		Text   string `json:"text" binding:"required"`
	}

	var req CorrelateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	script, err := h.scriptService.Correlate(project.ID, user.ID, *req.ShotID, req.Text)
	if err != nil {
		respondScriptError(c, err)
		return
	}

	c.JSON(http.StatusCreated, script)
}

// RemoveCorrelation deletes a stored shot correlation.
func (h *ScriptHandler) RemoveCorrelation(c *gin.Context) {
	project, ok := middleware.CurrentProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	correlationID, err := strconv.ParseUint(c.Param("correlation_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid correlation ID")
		return
	}

	if err := h.scriptService.RemoveCorrelation(project.ID, correlationID); err != nil {
		respondScriptError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Correlation removed successfully",
	})
}

func respondScriptError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrScriptNotFound),
		errors.Is(err, services.ErrCorrelationNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrSelectionNotFound),
		errors.Is(err, services.ErrSelectionEmpty):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
