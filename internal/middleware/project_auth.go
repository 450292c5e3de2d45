package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/crewdeck/crewdeck-api/internal/constants"
	"github.com/crewdeck/crewdeck-api/internal/database"
	"github.com/crewdeck/crewdeck-api/internal/models"
)

// RequireProjectAccess checks that the user is a member of the project
// named by the :id route parameter (admins always have access) and
// stores the project in context.
func RequireProjectAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		projectIDStr := c.Param("id")
		projectID, err := strconv.ParseUint(projectIDStr, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid project ID",
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

		var project models.Project
		if err := database.GetDB().First(&project, projectID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Project not found",
			})
			c.Abort()
			return
		}

		if !user.IsAdmin() {
			var member models.ProjectMember
			err = database.GetDB().
				Where("project_id = ? AND user_id = ?", projectID, user.ID).
				First(&member).Error
			if err != nil {
				// Return 404 instead of 403 to avoid leaking project existence
				c.JSON(http.StatusNotFound, gin.H{
					"error": "Project not found",
				})
				c.Abort()
				return
			}
			c.Set(constants.ContextKeyMember, member)
		}

		c.Set(constants.ContextKeyProject, project)
		c.Next()
	}
}

// CurrentProject retrieves the project loaded by RequireProjectAccess.
func CurrentProject(c *gin.Context) (*models.Project, bool) {
	value, exists := c.Get(constants.ContextKeyProject)
	if !exists {
		return nil, false
	}
	project, ok := value.(models.Project)
	if !ok {
		return nil, false
	}
	return &project, true
}
