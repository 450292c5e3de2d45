package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	apierrors "github.com/crewdeck/crewdeck-api/internal/errors"
	"github.com/crewdeck/crewdeck-api/internal/middleware"
	"github.com/crewdeck/crewdeck-api/internal/models"
	"github.com/crewdeck/crewdeck-api/internal/repository"
)

// LibraryHandler serves project file storage, YouTube video metadata and
// published finals. These are plain CRUD rows; the handler talks to the
// repository directly.
type LibraryHandler struct {
	libraryRepo repository.LibraryRepository
}

// NewLibraryHandler creates a new LibraryHandler.
func NewLibraryHandler(libraryRepo repository.LibraryRepository) *LibraryHandler {
	return &LibraryHandler{
		libraryRepo: libraryRepo,
	}
}

// CreateFolder creates a folder in the project library.
func (h *LibraryHandler) CreateFolder(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	project, ok := middleware.CurrentProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	type CreateFolderRequest struct {
		Name     string  `json:"name" binding:"required"`
		ParentID *uint64 `json:"parentId"`
	}

	var req CreateFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	folder := &models.ProjectFolder{
		ProjectID: project.ID,
		ParentID:  req.ParentID,
		Name:      req.Name,
		CreatedBy: user.ID,
	}
	if err := h.libraryRepo.CreateFolder(folder); err != nil {
		apierrors.InternalError(c, "Failed to create folder")
		return
	}

	c.JSON(http.StatusCreated, folder)
}

// ListFolders lists the project's folders.
func (h *LibraryHandler) ListFolders(c *gin.Context) {
	project, ok := middleware.CurrentProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	folders, err := h.libraryRepo.ListFolders(project.ID)
	if err != nil {
		apierrors.InternalError(c, "Failed to list folders")
		return
	}

	c.JSON(http.StatusOK, folders)
}

// DeleteFolder removes a folder; contained files move to the project
// root.
func (h *LibraryHandler) DeleteFolder(c *gin.Context) {
	project, ok := middleware.CurrentProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	folderID, err := strconv.ParseUint(c.Param("folder_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid folder ID")
		return
	}

	folder, err := h.libraryRepo.FindFolder(folderID)
	if err != nil || folder.ProjectID != project.ID {
		apierrors.NotFound(c, "Folder not found")
		return
	}

	if err := h.libraryRepo.DeleteFolder(folderID); err != nil {
		apierrors.InternalError(c, "Failed to delete folder")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Folder deleted successfully",
	})
}

// CreateFile registers file metadata under a fresh storage key. Actual
// bytes live in external storage; this API only tracks the rows.
func (h *LibraryHandler) CreateFile(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	project, ok := middleware.CurrentProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	type CreateFileRequest struct {
		Name     string  `json:"name" binding:"required"`
		FolderID *uint64 `json:"folderId"`
		MimeType string  `json:"mimeType"`
		Size     int64   `json:"size"`
	}

	var req CreateFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	key := uuid.NewString()
	file := &models.ProjectFile{
		ProjectID:  project.ID,
		FolderID:   req.FolderID,
		Name:       req.Name,
		StorageKey: key,
		URL:        fmt.Sprintf("/storage/%s", key),
		MimeType:   req.MimeType,
		Size:       req.Size,
		CreatedBy:  user.ID,
	}
	if err := h.libraryRepo.CreateFile(file); err != nil {
		apierrors.InternalError(c, "Failed to create file")
		return
	}

	c.JSON(http.StatusCreated, file)
}

// ListFiles lists the project's files, optionally scoped to a folder.
func (h *LibraryHandler) ListFiles(c *gin.Context) {
	project, ok := middleware.CurrentProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	var folderID *uint64
	if folderStr := c.Query("folderId"); folderStr != "" {
		id, err := strconv.ParseUint(folderStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid folder ID")
			return
		}
		folderID = &id
	}

	files, err := h.libraryRepo.ListFiles(project.ID, folderID)
	if err != nil {
		apierrors.InternalError(c, "Failed to list files")
		return
	}

	c.JSON(http.StatusOK, files)
}

// DeleteFile removes file metadata.
func (h *LibraryHandler) DeleteFile(c *gin.Context) {
	project, ok := middleware.CurrentProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	fileID, err := strconv.ParseUint(c.Param("file_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid file ID")
		return
	}

	file, err := h.libraryRepo.FindFile(fileID)
	if err != nil || file.ProjectID != project.ID {
		apierrors.NotFound(c, "File not found")
		return
	}

	if err := h.libraryRepo.DeleteFile(fileID); err != nil {
		apierrors.InternalError(c, "Failed to delete file")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "File deleted successfully",
	})
}

// CreateVideo tracks a YouTube video for the project.
func (h *LibraryHandler) CreateVideo(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	project, ok := middleware.CurrentProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	type CreateVideoRequest struct {
		VideoID     string `json:"videoId" binding:"required"`
		Title       string `json:"title"`
		Description string `json:"description"`
		Thumbnail   string `json:"thumbnail"`
	}

	var req CreateVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	video := &models.YoutubeVideo{
		ProjectID:   project.ID,
		VideoID:     req.VideoID,
		Title:       req.Title,
		Description: req.Description,
		Thumbnail:   req.Thumbnail,
		CreatedBy:   user.ID,
	}
	if err := h.libraryRepo.CreateVideo(video); err != nil {
		apierrors.InternalError(c, "Failed to create video")
		return
	}

	c.JSON(http.StatusCreated, video)
}

// ListVideos lists the project's tracked videos.
func (h *LibraryHandler) ListVideos(c *gin.Context) {
	project, ok := middleware.CurrentProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	videos, err := h.libraryRepo.ListVideos(project.ID)
	if err != nil {
		apierrors.InternalError(c, "Failed to list videos")
		return
	}

	c.JSON(http.StatusOK, videos)
}

// DeleteVideo removes a tracked video.
func (h *LibraryHandler) DeleteVideo(c *gin.Context) {
	project, ok := middleware.CurrentProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	videoID, err := strconv.ParseUint(c.Param("video_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid video ID")
		return
	}

	video, err := h.libraryRepo.FindVideo(videoID)
	if err != nil || video.ProjectID != project.ID {
		apierrors.NotFound(c, "Video not found")
		return
	}

	if err := h.libraryRepo.DeleteVideo(videoID); err != nil {
		apierrors.InternalError(c, "Failed to delete video")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Video deleted successfully",
	})
}

// CreateFinal marks a delivered cut of the project.
func (h *LibraryHandler) CreateFinal(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	project, ok := middleware.CurrentProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	type CreateFinalRequest struct {
		Title string `json:"title" binding:"required"`
		URL   string `json:"url" binding:"required"`
	}

	var req CreateFinalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	final := &models.PublishedFinal{
		ProjectID: project.ID,
		Title:     req.Title,
		URL:       req.URL,
		CreatedBy: user.ID,
	}
	if err := h.libraryRepo.CreateFinal(final); err != nil {
		apierrors.InternalError(c, "Failed to create final")
		return
	}

	c.JSON(http.StatusCreated, final)
}

// ListFinals lists the project's published finals.
func (h *LibraryHandler) ListFinals(c *gin.Context) {
	project, ok := middleware.CurrentProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	finals, err := h.libraryRepo.ListFinals(project.ID)
	if err != nil {
		apierrors.InternalError(c, "Failed to list finals")
		return
	}

	c.JSON(http.StatusOK, finals)
}

// DeleteFinal removes a published final.
func (h *LibraryHandler) DeleteFinal(c *gin.Context) {
	project, ok := middleware.CurrentProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	finalID, err := strconv.ParseUint(c.Param("final_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid final ID")
		return
	}

	final, err := h.libraryRepo.FindFinal(finalID)
	if err != nil || final.ProjectID != project.ID {
		apierrors.NotFound(c, "Final not found")
		return
	}

	if err := h.libraryRepo.DeleteFinal(finalID); err != nil {
		apierrors.InternalError(c, "Failed to delete final")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Final deleted successfully",
	})
}
