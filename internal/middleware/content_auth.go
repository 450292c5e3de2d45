package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/crewdeck/crewdeck-api/internal/database"
	"github.com/crewdeck/crewdeck-api/internal/models"
)

// RequireContentAccess checks that the user may touch the content card
// named by the :content_id route parameter: the user must be a member of
// the card's project (admins always pass).
func RequireContentAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		contentIDStr := c.Param("content_id")
		contentID, err := strconv.ParseUint(contentIDStr, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid content ID",
			})
			c.Abort()
			return
		}

		user, ok := CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
			})
			c.Abort()
			return
		}

		var content models.Content
		if err := database.GetDB().First(&content, contentID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Content not found",
			})
			c.Abort()
			return
		}

		if !user.IsAdmin() {
			var member models.ProjectMember
			err = database.GetDB().
				Where("project_id = ? AND user_id = ?", content.ProjectID, user.ID).
				First(&member).Error
			if err != nil {
				// Return 404 instead of 403 to avoid leaking card existence
				c.JSON(http.StatusNotFound, gin.H{
					"error": "Content not found",
				})
				c.Abort()
				return
			}
		}

		c.Next()
	}
}
