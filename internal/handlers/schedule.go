package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	apierrors "github.com/crewdeck/crewdeck-api/internal/errors"
	"github.com/crewdeck/crewdeck-api/internal/middleware"
	"github.com/crewdeck/crewdeck-api/internal/models"
	"github.com/crewdeck/crewdeck-api/internal/repository"
)

// ScheduleHandler serves project calendar events.
type ScheduleHandler struct {
	scheduleRepo repository.ScheduleRepository
}

// NewScheduleHandler creates a new ScheduleHandler.
func NewScheduleHandler(scheduleRepo repository.ScheduleRepository) *ScheduleHandler {
	return &ScheduleHandler{
		scheduleRepo: scheduleRepo,
	}
}

func parseTimeRange(c *gin.Context) (*time.Time, *time.Time, bool) {
	var from, to *time.Time
	if fromStr := c.Query("from"); fromStr != "" {
		t, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			apierrors.BadRequest(c, "Invalid from timestamp")
			return nil, nil, false
		}
		from = &t
	}
	if toStr := c.Query("to"); toStr != "" {
		t, err := time.Parse(time.RFC3339, toStr)
		if err != nil {
			apierrors.BadRequest(c, "Invalid to timestamp")
			return nil, nil, false
		}
		to = &t
	}
	return from, to, true
}

// CreateEvent creates a calendar event for the project.
func (h *ScheduleHandler) CreateEvent(c *gin.Context) {
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

	type CreateEventRequest struct {
		Title       string    `json:"title" binding:"required"`
		Description string    `json:"description"`
		Location    string    `json:"location"`
		StartsAt    time.Time `json:"startsAt" binding:"required"`
		EndsAt      time.Time `json:"endsAt" binding:"required"`
	}

	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if !req.EndsAt.After(req.StartsAt) {
		apierrors.BadRequest(c, "Event must end after it starts")
		return
	}

	event := &models.ScheduleEvent{
		ProjectID:   project.ID,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		CreatedBy:   user.ID,
	}
	if err := h.scheduleRepo.Create(event); err != nil {
		apierrors.InternalError(c, "Failed to create event")
		return
	}

	c.JSON(http.StatusCreated, event)
}

// ListProjectEvents lists the project's events, optionally restricted to
// a time range.
func (h *ScheduleHandler) ListProjectEvents(c *gin.Context) {
	project, ok := middleware.CurrentProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	from, to, ok := parseTimeRange(c)
	if !ok {
		return
	}

	events, err := h.scheduleRepo.ListByProject(project.ID, from, to)
	if err != nil {
		apierrors.InternalError(c, "Failed to list events")
		return
	}

	c.JSON(http.StatusOK, events)
}

// ListMyEvents lists events across every project the current user
// belongs to.
func (h *ScheduleHandler) ListMyEvents(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	from, to, ok := parseTimeRange(c)
	if !ok {
		return
	}

	events, err := h.scheduleRepo.ListForUser(user.ID, from, to)
	if err != nil {
		apierrors.InternalError(c, "Failed to list events")
		return
	}

	c.JSON(http.StatusOK, events)
}

// UpdateEvent updates a calendar event.
func (h *ScheduleHandler) UpdateEvent(c *gin.Context) {
	project, ok := middleware.CurrentProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	eventID, err := strconv.ParseUint(c.Param("event_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid event ID")
		return
	}

	event, err := h.scheduleRepo.FindByID(eventID)
	if err != nil || event.ProjectID != project.ID {
		apierrors.NotFound(c, "Event not found")
		return
	}

	// Parse raw JSON to detect which fields were sent
	var rawReq map[string]any
	if err := c.ShouldBindJSON(&rawReq); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if title, ok := rawReq["title"].(string); ok {
		event.Title = title
	}
	if description, ok := rawReq["description"].(string); ok {
		event.Description = description
	}
	if location, ok := rawReq["location"].(string); ok {
		event.Location = location
	}
	if startsAt, ok := rawReq["startsAt"].(string); ok {
		if t, err := time.Parse(time.RFC3339, startsAt); err == nil {
			event.StartsAt = t
		}
	}
	if endsAt, ok := rawReq["endsAt"].(string); ok {
		if t, err := time.Parse(time.RFC3339, endsAt); err == nil {
			event.EndsAt = t
		}
	}

	if !event.EndsAt.After(event.StartsAt) {
		apierrors.BadRequest(c, "Event must end after it starts")
		return
	}

	if err := h.scheduleRepo.Update(event); err != nil {
		apierrors.InternalError(c, "Failed to update event")
		return
	}

	c.JSON(http.StatusOK, event)
}

// DeleteEvent removes a calendar event.
func (h *ScheduleHandler) DeleteEvent(c *gin.Context) {
	project, ok := middleware.CurrentProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	eventID, err := strconv.ParseUint(c.Param("event_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid event ID")
		return
	}

	event, err := h.scheduleRepo.FindByID(eventID)
	if err != nil || event.ProjectID != project.ID {
		apierrors.NotFound(c, "Event not found")
		return
	}

	if err := h.scheduleRepo.Delete(eventID); err != nil {
		apierrors.InternalError(c, "Failed to delete event")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Event deleted successfully",
	})
}
