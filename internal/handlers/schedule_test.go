package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/crewdeck/crewdeck-api/internal/constants"
	"github.com/crewdeck/crewdeck-api/internal/database"
	"github.com/crewdeck/crewdeck-api/internal/models"
	"github.com/crewdeck/crewdeck-api/internal/repository"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// ScheduleHandlerTestSuite defines the test suite for ScheduleHandler
type ScheduleHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	handler *ScheduleHandler
}

// SetupTest runs before each test
func (suite *ScheduleHandlerTestSuite) SetupTest() {
	var err error

	// Create in-memory SQLite database
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	// Run migrations
	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.ProjectMember{},
		&models.ScheduleEvent{},
	)
	suite.Require().NoError(err)

	// Set the test DB as the default database
	database.SetDB(suite.db)

	suite.handler = NewScheduleHandler(repository.NewScheduleRepository(suite.db))

	// Set Gin to test mode
	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *ScheduleHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

// Helper function to create test data
func (suite *ScheduleHandlerTestSuite) createTestUser(username string) *models.User {
	user := &models.User{
		Username:     username,
		PasswordHash: "hashedpassword",
		DisplayName:  username,
		Email:        username + "@example.com",
	}
	suite.db.Create(user)
	return user
}

func (suite *ScheduleHandlerTestSuite) createTestProject(name string, creatorID uint64) *models.Project {
	project := &models.Project{
		Name:      name,
		CreatedBy: creatorID,
	}
	suite.db.Create(project)
	suite.db.Create(&models.ProjectMember{ProjectID: project.ID, UserID: creatorID})
	return project
}

func (suite *ScheduleHandlerTestSuite) createTestEvent(projectID, creatorID uint64, title string, startsAt time.Time) *models.ScheduleEvent {
	event := &models.ScheduleEvent{
		ProjectID: projectID,
		Title:     title,
		StartsAt:  startsAt,
		EndsAt:    startsAt.Add(time.Hour),
		CreatedBy: creatorID,
	}
	suite.db.Create(event)
	return event
}

// Helper function to create authenticated context
func (suite *ScheduleHandlerTestSuite) createAuthContext(method, url string, body []byte, user models.User) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(constants.ContextKeyUserID, user.ID)
	c.Set(constants.ContextKeyUser, user)

	return c, w
}

// Helper function to set project context (simulates RequireProjectAccess middleware)
func (suite *ScheduleHandlerTestSuite) setProjectContext(c *gin.Context, project models.Project) {
	c.Set(constants.ContextKeyProject, project)
}

// TestCreateEvent_Success tests successful event creation
func (suite *ScheduleHandlerTestSuite) TestCreateEvent_Success() {
	user := suite.createTestUser("producer")
	project := suite.createTestProject("Weekly Show", user.ID)

	starts := time.Date(2026, 9, 3, 10, 0, 0, 0, time.UTC)
	requestBody := map[string]interface{}{
		"title":    "Studio shoot",
		"location": "Studio B",
		"startsAt": starts.Format(time.RFC3339),
		"endsAt":   starts.Add(2 * time.Hour).Format(time.RFC3339),
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("POST", "/api/projects/1/events", body, *user)
	suite.setProjectContext(c, *project)

	suite.handler.CreateEvent(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response models.ScheduleEvent
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Studio shoot", response.Title)
	assert.Equal(suite.T(), project.ID, response.ProjectID)
	assert.Equal(suite.T(), user.ID, response.CreatedBy)

	var count int64
	suite.db.Model(&models.ScheduleEvent{}).Count(&count)
	assert.Equal(suite.T(), int64(1), count)
}

// TestCreateEvent_EndsBeforeStarts tests rejection of an inverted time range
func (suite *ScheduleHandlerTestSuite) TestCreateEvent_EndsBeforeStarts() {
	user := suite.createTestUser("producer")
	project := suite.createTestProject("Weekly Show", user.ID)

	starts := time.Date(2026, 9, 3, 10, 0, 0, 0, time.UTC)
	requestBody := map[string]interface{}{
		"title":    "Studio shoot",
		"startsAt": starts.Format(time.RFC3339),
		"endsAt":   starts.Add(-time.Hour).Format(time.RFC3339),
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("POST", "/api/projects/1/events", body, *user)
	suite.setProjectContext(c, *project)

	suite.handler.CreateEvent(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestCreateEvent_Unauthorized tests creation without authentication
func (suite *ScheduleHandlerTestSuite) TestCreateEvent_Unauthorized() {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/projects/1/events", nil)
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	suite.handler.CreateEvent(c)

	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

// TestListProjectEvents_RangeFilter tests the from/to overlap filter
func (suite *ScheduleHandlerTestSuite) TestListProjectEvents_RangeFilter() {
	user := suite.createTestUser("producer")
	project := suite.createTestProject("Weekly Show", user.ID)

	base := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	suite.createTestEvent(project.ID, user.ID, "Monday", base)
	suite.createTestEvent(project.ID, user.ID, "Wednesday", base.AddDate(0, 0, 2))
	suite.createTestEvent(project.ID, user.ID, "Friday", base.AddDate(0, 0, 4))

	c, w := suite.createAuthContext("GET", "/api/projects/1/events", nil, *user)
	c.Request.URL.RawQuery = "from=" + base.AddDate(0, 0, 1).Format(time.RFC3339) +
		"&to=" + base.AddDate(0, 0, 3).Format(time.RFC3339)
	suite.setProjectContext(c, *project)

	suite.handler.ListProjectEvents(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response []models.ScheduleEvent
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), response, 1)
	assert.Equal(suite.T(), "Wednesday", response[0].Title)
}

// TestListProjectEvents_InvalidRange tests a malformed from timestamp
func (suite *ScheduleHandlerTestSuite) TestListProjectEvents_InvalidRange() {
	user := suite.createTestUser("producer")
	project := suite.createTestProject("Weekly Show", user.ID)

	c, w := suite.createAuthContext("GET", "/api/projects/1/events", nil, *user)
	c.Request.URL.RawQuery = "from=yesterday"
	suite.setProjectContext(c, *project)

	suite.handler.ListProjectEvents(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestListMyEvents_AcrossProjects tests the cross-project personal calendar
func (suite *ScheduleHandlerTestSuite) TestListMyEvents_AcrossProjects() {
	user := suite.createTestUser("producer")
	other := suite.createTestUser("editor")
	mine := suite.createTestProject("Weekly Show", user.ID)
	theirs := suite.createTestProject("Side Channel", other.ID)

	base := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	suite.createTestEvent(mine.ID, user.ID, "My shoot", base)
	suite.createTestEvent(theirs.ID, other.ID, "Their shoot", base)

	c, w := suite.createAuthContext("GET", "/api/events", nil, *user)

	suite.handler.ListMyEvents(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response []models.ScheduleEvent
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), response, 1)
	assert.Equal(suite.T(), "My shoot", response[0].Title)
}

// TestUpdateEvent_PartialUpdate tests that omitted fields are preserved
func (suite *ScheduleHandlerTestSuite) TestUpdateEvent_PartialUpdate() {
	user := suite.createTestUser("producer")
	project := suite.createTestProject("Weekly Show", user.ID)
	event := suite.createTestEvent(project.ID, user.ID, "Shoot", time.Date(2026, 9, 3, 10, 0, 0, 0, time.UTC))
	suite.db.Model(event).Update("location", "Studio B")

	body, _ := json.Marshal(map[string]interface{}{"title": "Reshoot"})

	c, w := suite.createAuthContext("PATCH", "/api/projects/1/events/1", body, *user)
	suite.setProjectContext(c, *project)
	c.Params = gin.Params{{Key: "event_id", Value: "1"}}

	suite.handler.UpdateEvent(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var updated models.ScheduleEvent
	suite.db.First(&updated, event.ID)
	assert.Equal(suite.T(), "Reshoot", updated.Title)
	assert.Equal(suite.T(), "Studio B", updated.Location)
}

// TestUpdateEvent_InvertedRange tests rejection when the patch inverts the range
func (suite *ScheduleHandlerTestSuite) TestUpdateEvent_InvertedRange() {
	user := suite.createTestUser("producer")
	project := suite.createTestProject("Weekly Show", user.ID)
	event := suite.createTestEvent(project.ID, user.ID, "Shoot", time.Date(2026, 9, 3, 10, 0, 0, 0, time.UTC))

	body, _ := json.Marshal(map[string]interface{}{
		"endsAt": event.StartsAt.Add(-time.Hour).Format(time.RFC3339),
	})

	c, w := suite.createAuthContext("PATCH", "/api/projects/1/events/1", body, *user)
	suite.setProjectContext(c, *project)
	c.Params = gin.Params{{Key: "event_id", Value: "1"}}

	suite.handler.UpdateEvent(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestDeleteEvent_Success tests successful event deletion
func (suite *ScheduleHandlerTestSuite) TestDeleteEvent_Success() {
	user := suite.createTestUser("producer")
	project := suite.createTestProject("Weekly Show", user.ID)
	suite.createTestEvent(project.ID, user.ID, "Shoot", time.Date(2026, 9, 3, 10, 0, 0, 0, time.UTC))

	c, w := suite.createAuthContext("DELETE", "/api/projects/1/events/1", nil, *user)
	suite.setProjectContext(c, *project)
	c.Params = gin.Params{{Key: "event_id", Value: "1"}}

	suite.handler.DeleteEvent(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var count int64
	suite.db.Model(&models.ScheduleEvent{}).Count(&count)
	assert.Equal(suite.T(), int64(0), count)
}

// TestUpdateEvent_OtherProject tests that an event cannot be reached
// through a different project's route
func (suite *ScheduleHandlerTestSuite) TestUpdateEvent_OtherProject() {
	member := suite.createTestUser("producer")
	rival := suite.createTestUser("rival")
	mine := suite.createTestProject("Weekly Show", member.ID)
	theirs := suite.createTestProject("Side Channel", rival.ID)
	event := suite.createTestEvent(theirs.ID, rival.ID, "Their shoot", time.Date(2026, 9, 3, 10, 0, 0, 0, time.UTC))

	body, _ := json.Marshal(map[string]interface{}{"title": "Hijacked"})

	c, w := suite.createAuthContext("PATCH", "/api/projects/1/events/1", body, *member)
	suite.setProjectContext(c, *mine)
	c.Params = gin.Params{{Key: "event_id", Value: "1"}}

	suite.handler.UpdateEvent(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)

	var untouched models.ScheduleEvent
	suite.db.First(&untouched, event.ID)
	assert.Equal(suite.T(), "Their shoot", untouched.Title)
}

// TestDeleteEvent_OtherProject tests that deleting through a different
// project's route fails and keeps the row
func (suite *ScheduleHandlerTestSuite) TestDeleteEvent_OtherProject() {
	member := suite.createTestUser("producer")
	rival := suite.createTestUser("rival")
	mine := suite.createTestProject("Weekly Show", member.ID)
	theirs := suite.createTestProject("Side Channel", rival.ID)
	suite.createTestEvent(theirs.ID, rival.ID, "Their shoot", time.Date(2026, 9, 3, 10, 0, 0, 0, time.UTC))

	c, w := suite.createAuthContext("DELETE", "/api/projects/1/events/1", nil, *member)
	suite.setProjectContext(c, *mine)
	c.Params = gin.Params{{Key: "event_id", Value: "1"}}

	suite.handler.DeleteEvent(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)

	var count int64
	suite.db.Model(&models.ScheduleEvent{}).Count(&count)
	assert.Equal(suite.T(), int64(1), count)
}

// TestDeleteEvent_NotFound tests deleting a missing event
func (suite *ScheduleHandlerTestSuite) TestDeleteEvent_NotFound() {
	user := suite.createTestUser("producer")
	project := suite.createTestProject("Weekly Show", user.ID)

	c, w := suite.createAuthContext("DELETE", "/api/projects/1/events/99", nil, *user)
	suite.setProjectContext(c, *project)
	c.Params = gin.Params{{Key: "event_id", Value: "99"}}

	suite.handler.DeleteEvent(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func TestScheduleHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ScheduleHandlerTestSuite))
}
