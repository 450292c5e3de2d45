package repository

import (
	"errors"

	"github.com/crewdeck/crewdeck-api/internal/models"
	"gorm.io/gorm"
)

// GormScriptRepository is a GORM implementation of ScriptRepository
type GormScriptRepository struct {
	db *gorm.DB
}

// NewScriptRepository creates a new ScriptRepository
func NewScriptRepository(db *gorm.DB) ScriptRepository {
	return &GormScriptRepository{db: db}
}

// FindByProject returns the project's script with its correlations
func (r *GormScriptRepository) FindByProject(projectID uint64) (*models.ScriptData, error) {
	var script models.ScriptData
	if err := r.db.Preload("Correlations").
		Where("project_id = ?", projectID).
		First(&script).Error; err != nil {
		return nil, err
	}
	return &script, nil
}

// Upsert creates the script row for a project or replaces its content
func (r *GormScriptRepository) Upsert(script *models.ScriptData) error {
	var existing models.ScriptData
	err := r.db.Where("project_id = ?", script.ProjectID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.Create(script).Error
	}
	if err != nil {
		return err
	}

	existing.HTMLContent = script.HTMLContent
	existing.UpdatedBy = script.UpdatedBy
	if err := r.db.Save(&existing).Error; err != nil {
		return err
	}
	*script = existing
	return nil
}

// Update saves script content changes
func (r *GormScriptRepository) Update(script *models.ScriptData) error {
	return r.db.Save(script).Error
}

// AddCorrelation stores a shot correlation
func (r *GormScriptRepository) AddCorrelation(correlation *models.ScriptCorrelation) error {
	return r.db.Create(correlation).Error
}

// DeleteCorrelation removes a shot correlation
func (r *GormScriptRepository) DeleteCorrelation(id uint64) error {
	return r.db.Delete(&models.ScriptCorrelation{}, id).Error
}
