package repository

import (
	"github.com/crewdeck/crewdeck-api/internal/models"
	"gorm.io/gorm"
)

// GormLibraryRepository is a GORM implementation of LibraryRepository
type GormLibraryRepository struct {
	db *gorm.DB
}

// NewLibraryRepository creates a new LibraryRepository
func NewLibraryRepository(db *gorm.DB) LibraryRepository {
	return &GormLibraryRepository{db: db}
}

func (r *GormLibraryRepository) CreateFolder(folder *models.ProjectFolder) error {
	return r.db.Create(folder).Error
}

func (r *GormLibraryRepository) FindFolder(id uint64) (*models.ProjectFolder, error) {
	var folder models.ProjectFolder
	if err := r.db.First(&folder, id).Error; err != nil {
		return nil, err
	}
	return &folder, nil
}

func (r *GormLibraryRepository) ListFolders(projectID uint64) ([]models.ProjectFolder, error) {
	var folders []models.ProjectFolder
	if err := r.db.Where("project_id = ?", projectID).
		Order("name ASC").
		Find(&folders).Error; err != nil {
		return nil, err
	}
	return folders, nil
}

// DeleteFolder removes a folder; files in it are kept and detached to the
// project root.
func (r *GormLibraryRepository) DeleteFolder(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.ProjectFile{}).
			Where("folder_id = ?", id).
			UpdateColumn("folder_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.ProjectFolder{}, id).Error
	})
}

func (r *GormLibraryRepository) CreateFile(file *models.ProjectFile) error {
	return r.db.Create(file).Error
}

func (r *GormLibraryRepository) FindFile(id uint64) (*models.ProjectFile, error) {
	var file models.ProjectFile
	if err := r.db.First(&file, id).Error; err != nil {
		return nil, err
	}
	return &file, nil
}

func (r *GormLibraryRepository) ListFiles(projectID uint64, folderID *uint64) ([]models.ProjectFile, error) {
	var files []models.ProjectFile
	query := r.db.Where("project_id = ?", projectID)
	if folderID != nil {
		query = query.Where("folder_id = ?", *folderID)
	}
	if err := query.Order("created_at DESC").Find(&files).Error; err != nil {
		return nil, err
	}
	return files, nil
}

func (r *GormLibraryRepository) DeleteFile(id uint64) error {
	return r.db.Delete(&models.ProjectFile{}, id).Error
}

func (r *GormLibraryRepository) CreateVideo(video *models.YoutubeVideo) error {
	return r.db.Create(video).Error
}

func (r *GormLibraryRepository) FindVideo(id uint64) (*models.YoutubeVideo, error) {
	var video models.YoutubeVideo
	if err := r.db.First(&video, id).Error; err != nil {
		return nil, err
	}
	return &video, nil
}

func (r *GormLibraryRepository) ListVideos(projectID uint64) ([]models.YoutubeVideo, error) {
	var videos []models.YoutubeVideo
	if err := r.db.Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&videos).Error; err != nil {
		return nil, err
	}
	return videos, nil
}

func (r *GormLibraryRepository) DeleteVideo(id uint64) error {
	return r.db.Delete(&models.YoutubeVideo{}, id).Error
}

func (r *GormLibraryRepository) CreateFinal(final *models.PublishedFinal) error {
	return r.db.Create(final).Error
}

func (r *GormLibraryRepository) FindFinal(id uint64) (*models.PublishedFinal, error) {
	var final models.PublishedFinal
	if err := r.db.First(&final, id).Error; err != nil {
		return nil, err
	}
	return &final, nil
}

func (r *GormLibraryRepository) ListFinals(projectID uint64) ([]models.PublishedFinal, error) {
	var finals []models.PublishedFinal
	if err := r.db.Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&finals).Error; err != nil {
		return nil, err
	}
	return finals, nil
}

func (r *GormLibraryRepository) DeleteFinal(id uint64) error {
	return r.db.Delete(&models.PublishedFinal{}, id).Error
}
