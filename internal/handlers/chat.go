package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/crewdeck/crewdeck-api/internal/constants"
	"github.com/crewdeck/crewdeck-api/internal/dto"
	apierrors "github.com/crewdeck/crewdeck-api/internal/errors"
	"github.com/crewdeck/crewdeck-api/internal/middleware"
	"github.com/crewdeck/crewdeck-api/internal/services"
	"github.com/crewdeck/crewdeck-api/internal/utils"
)

// ChatHandler serves chat channels, memberships and message history over
// REST. Live traffic goes through the WebSocket relay.
type ChatHandler struct {
	chatService *services.ChatService
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(chatService *services.ChatService) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
	}
}

// CreateChannel creates a channel; the creator becomes its admin.
func (h *ChatHandler) CreateChannel(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateChannelRequest struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
		IsPrivate   bool   `json:"isPrivate"`
	}

	var req CreateChannelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	channel, err := h.chatService.CreateChannel(services.CreateChannelInput{
		Name:        req.Name,
		Description: req.Description,
		IsPrivate:   req.IsPrivate,
		CreatorID:   user.ID,
	})
	if err != nil {
		respondChatError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToChannelDTO(*channel))
}

// ListChannels lists the current user's channels.
func (h *ChatHandler) ListChannels(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	channels, err := h.chatService.ListChannels(user.ID)
	if err != nil {
		respondChatError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToChannelDTOs(channels))
}

// GetChannel returns a channel the current user belongs to.
func (h *ChatHandler) GetChannel(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	channelID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid channel ID")
		return
	}

	channel, err := h.chatService.GetChannel(channelID, user.ID)
	if err != nil {
		respondChatError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToChannelDTO(*channel))
}

// DeleteChannel removes a channel; channel admins only.
func (h *ChatHandler) DeleteChannel(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	channelID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid channel ID")
		return
	}

	if err := h.chatService.DeleteChannel(channelID, user.ID); err != nil {
		respondChatError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Channel deleted successfully",
	})
}

// OpenDirectChannel returns (or creates) the DM channel with another
// user.
func (h *ChatHandler) OpenDirectChannel(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type DirectChannelRequest struct {
		UserID uint64 `json:"userId" binding:"required"`
	}

	var req DirectChannelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	channel, err := h.chatService.OpenDirectChannel(user.ID, req.UserID)
	if err != nil {
		respondChatError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToChannelDTO(*channel))
}

// AddMember adds a user to a channel.
func (h *ChatHandler) AddMember(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	channelID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid channel ID")
		return
	}

	type AddMemberRequest struct {
		UserID uint64 `json:"userId" binding:"required"`
	}

	var req AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.chatService.AddMember(channelID, user.ID, req.UserID); err != nil {
		respondChatError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Member added successfully",
	})
}

// RemoveMember removes a user from a channel.
func (h *ChatHandler) RemoveMember(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	channelID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid channel ID")
		return
	}

	memberID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	if err := h.chatService.RemoveMember(channelID, user.ID, memberID); err != nil {
		respondChatError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Member removed successfully",
	})
}

// ListMembers lists channel members.
func (h *ChatHandler) ListMembers(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	channelID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid channel ID")
		return
	}

	members, err := h.chatService.ListMembers(channelID, user.ID)
	if err != nil {
		respondChatError(c, err)
		return
	}

	users := make([]dto.UserDTO, len(members))
	for i, member := range members {
		users[i] = dto.ToUserDTO(member.User)
	}
	c.JSON(http.StatusOK, users)
}

// ListMessages returns recent channel history in chronological order.
func (h *ChatHandler) ListMessages(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	channelID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid channel ID")
		return
	}

	limit, ok := utils.GetLimitParam(c, constants.DefaultMessageLimit)
	if !ok {
		apierrors.BadRequest(c, "Invalid limit")
		return
	}

	messages, err := h.chatService.History(channelID, user.ID, limit)
	if err != nil {
		respondChatError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToMessageDTOs(messages))
}

func respondChatError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrChannelNotFound),
		errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNotChannelMember),
		errors.Is(err, services.ErrNotChannelAdmin):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrAlreadyChannelUser):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrEmptyMessage),
		errors.Is(err, services.ErrDirectWithSelf),
		errors.Is(err, services.ErrChannelNameRequired):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
