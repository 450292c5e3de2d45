package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/crewdeck/crewdeck-api/internal/dto"
	apierrors "github.com/crewdeck/crewdeck-api/internal/errors"
	"github.com/crewdeck/crewdeck-api/internal/models"
	"github.com/crewdeck/crewdeck-api/internal/repository"
	"github.com/crewdeck/crewdeck-api/internal/utils"
)

// UserHandler serves the user directory used by assignee and member
// pickers.
type UserHandler struct {
	userRepo repository.UserRepository
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userRepo repository.UserRepository) *UserHandler {
	return &UserHandler{
		userRepo: userRepo,
	}
}

// ListUsers returns a page of the user directory.
func (h *UserHandler) ListUsers(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	users, total, err := h.userRepo.List(params)
	if err != nil {
		apierrors.InternalError(c, "Failed to list users")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": dto.ToUserDTOs(users),
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// UpdateUserRole changes another user's role. Reachable only through
// the admin middleware.
func (h *UserHandler) UpdateUserRole(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	var input struct {
		Role string `json:"role" binding:"required,oneof=admin producer actor employed"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		apierrors.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	user, err := h.userRepo.FindByID(userID)
	if err != nil {
		apierrors.NotFound(c, "User not found")
		return
	}

	user.Role = models.UserRole(input.Role)
	if err := h.userRepo.Update(user); err != nil {
		apierrors.InternalError(c, "Failed to update user")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// GetUser returns a single user profile.
func (h *UserHandler) GetUser(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	user, err := h.userRepo.FindByID(userID)
	if err != nil {
		apierrors.NotFound(c, "User not found")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}
