package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/crewdeck/crewdeck-api/internal/dto"
	apierrors "github.com/crewdeck/crewdeck-api/internal/errors"
	"github.com/crewdeck/crewdeck-api/internal/middleware"
	"github.com/crewdeck/crewdeck-api/internal/models"
	"github.com/crewdeck/crewdeck-api/internal/services"
)

// BoardHandler coordinates Kanban board handlers: columns, content
// cards, moves and attachments.
type BoardHandler struct {
	boardService *services.BoardService
}

// NewBoardHandler creates a new BoardHandler.
func NewBoardHandler(boardService *services.BoardService) *BoardHandler {
	return &BoardHandler{
		boardService: boardService,
	}
}

// GetBoard returns the project's columns with their cards.
func (h *BoardHandler) GetBoard(c *gin.Context) {
	project, ok := middleware.CurrentProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	columns, err := h.boardService.ListBoard(project.ID)
	if err != nil {
		respondBoardError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"columns": dto.ToColumnDTOs(columns)})
}

// CreateColumn appends a column to the project's board.
func (h *BoardHandler) CreateColumn(c *gin.Context) {
	project, ok := middleware.CurrentProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	type CreateColumnRequest struct {
		Name  string `json:"name" binding:"required"`
		Color string `json:"color"`
	}

	var req CreateColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	column, err := h.boardService.CreateColumn(services.CreateColumnInput{
		ProjectID: project.ID,
		Name:      req.Name,
		Color:     req.Color,
	})
	if err != nil {
		respondBoardError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToColumnDTO(*column))
}

// UpdateColumn renames or recolors a column.
func (h *BoardHandler) UpdateColumn(c *gin.Context) {
	project, ok := middleware.CurrentProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	columnID, err := strconv.ParseUint(c.Param("column_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid column ID")
		return
	}

	type UpdateColumnRequest struct {
		Name  *string `json:"name"`
		Color *string `json:"color"`
	}

	var req UpdateColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	column, err := h.boardService.UpdateColumn(columnID, project.ID, services.UpdateColumnInput{
		Name:  req.Name,
		Color: req.Color,
	})
	if err != nil {
		respondBoardError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToColumnDTO(*column))
}

// DeleteColumn removes a column and its cards.
func (h *BoardHandler) DeleteColumn(c *gin.Context) {
	project, ok := middleware.CurrentProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	columnID, err := strconv.ParseUint(c.Param("column_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid column ID")
		return
	}

	if err := h.boardService.DeleteColumn(columnID, project.ID); err != nil {
		respondBoardError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Column deleted successfully",
	})
}

// CreateContent creates a card at the end of a column.
func (h *BoardHandler) CreateContent(c *gin.Context) {
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

	type CreateContentRequest struct {
		Title       string     `json:"title" binding:"required"`
		Description string     `json:"description"`
		Type        string     `json:"type"`
		ColumnID    uint64     `json:"columnId" binding:"required"`
		AssignedTo  *uint64    `json:"assignedTo"`
		DueDate     *time.Time `json:"dueDate"`
		Priority    string     `json:"priority"`
	}

	var req CreateContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	content, err := h.boardService.CreateContent(&models.Content{
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		ColumnID:    req.ColumnID,
		ProjectID:   project.ID,
		AssignedTo:  req.AssignedTo,
		DueDate:     req.DueDate,
		Priority:    req.Priority,
		CreatedBy:   user.ID,
	})
	if err != nil {
		respondBoardError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToContentDTO(*content))
}

// GetContent returns a single card with assignee and attachments.
func (h *BoardHandler) GetContent(c *gin.Context) {
	contentID, err := strconv.ParseUint(c.Param("content_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid content ID")
		return
	}

	content, err := h.boardService.GetContent(contentID)
	if err != nil {
		respondBoardError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToContentDTO(*content))
}

// UpdateContent applies a partial update to a card.
func (h *BoardHandler) UpdateContent(c *gin.Context) {
	contentID, err := strconv.ParseUint(c.Param("content_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid content ID")
		return
	}

	content, err := h.boardService.GetContent(contentID)
	if err != nil {
		respondBoardError(c, err)
		return
	}

	// Parse raw JSON to detect which fields were sent
	var rawReq map[string]any
	if err := c.ShouldBindJSON(&rawReq); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if title, ok := rawReq["title"].(string); ok {
		content.Title = title
	}
	if description, ok := rawReq["description"].(string); ok {
		content.Description = description
	}
	if contentType, ok := rawReq["type"].(string); ok {
		content.Type = contentType
	}
	if priority, ok := rawReq["priority"].(string); ok {
		content.Priority = priority
	}
	if progress, ok := rawReq["progress"].(float64); ok {
		content.Progress = int(progress)
	}
	if _, ok := rawReq["assignedTo"]; ok {
		if rawReq["assignedTo"] == nil {
			content.AssignedTo = nil
			content.Assignee = nil
		} else if assignee, ok := rawReq["assignedTo"].(float64); ok {
			id := uint64(assignee)
			content.AssignedTo = &id
		}
	}
	if _, ok := rawReq["dueDate"]; ok {
		if rawReq["dueDate"] == nil {
			content.DueDate = nil
		} else if dueDateStr, ok := rawReq["dueDate"].(string); ok {
			parsedTime, err := time.Parse(time.RFC3339, dueDateStr)
			if err == nil {
				content.DueDate = &parsedTime
			}
		}
	}

	updated, err := h.boardService.UpdateContent(content)
	if err != nil {
		respondBoardError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToContentDTO(*updated))
}

// DeleteContent removes a card.
func (h *BoardHandler) DeleteContent(c *gin.Context) {
	contentID, err := strconv.ParseUint(c.Param("content_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid content ID")
		return
	}

	if err := h.boardService.DeleteContent(contentID); err != nil {
		respondBoardError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Content deleted successfully",
	})
}

// MoveContent moves a card to a slot in a destination column,
// re-indexing both columns.
func (h *BoardHandler) MoveContent(c *gin.Context) {
	contentID, err := strconv.ParseUint(c.Param("content_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid content ID")
		return
	}

	type MoveContentRequest struct {
		ColumnID uint64 `json:"columnId" binding:"required"`
		Order    *int   `json:"order" binding:"required"`
	}

	var req MoveContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	content, err := h.boardService.MoveContent(contentID, req.ColumnID, *req.Order)
	if err != nil {
		respondBoardError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToContentDTO(*content))
}

// AddAttachment stores an attachment on a card.
func (h *BoardHandler) AddAttachment(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	contentID, err := strconv.ParseUint(c.Param("content_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid content ID")
		return
	}

	type AddAttachmentRequest struct {
		Name string `json:"name" binding:"required"`
		URL  string `json:"url" binding:"required"`
	}

	var req AddAttachmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	attachment, err := h.boardService.AddAttachment(&models.Attachment{
		ContentID: contentID,
		Name:      req.Name,
		URL:       req.URL,
		CreatedBy: user.ID,
	})
	if err != nil {
		respondBoardError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToAttachmentDTO(*attachment))
}

// ListAttachments lists a card's attachments.
func (h *BoardHandler) ListAttachments(c *gin.Context) {
	contentID, err := strconv.ParseUint(c.Param("content_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid content ID")
		return
	}

	attachments, err := h.boardService.ListAttachments(contentID)
	if err != nil {
		respondBoardError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAttachmentDTOs(attachments))
}

// DeleteAttachment removes an attachment from the card in the route.
func (h *BoardHandler) DeleteAttachment(c *gin.Context) {
	contentID, err := strconv.ParseUint(c.Param("content_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid content ID")
		return
	}

	attachmentID, err := strconv.ParseUint(c.Param("attachment_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid attachment ID")
		return
	}

	if err := h.boardService.DeleteAttachment(contentID, attachmentID); err != nil {
		respondBoardError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Attachment deleted successfully",
	})
}

func respondBoardError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrColumnNotFound),
		errors.Is(err, services.ErrContentNotFound),
		errors.Is(err, services.ErrAttachmentNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrColumnProjectMix),
		errors.Is(err, services.ErrInvalidProgress),
		errors.Is(err, services.ErrInvalidAssignee):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
