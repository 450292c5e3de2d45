package repository

import (
	"time"

	"github.com/crewdeck/crewdeck-api/internal/models"
	"gorm.io/gorm"
)

// GormScheduleRepository is a GORM implementation of ScheduleRepository
type GormScheduleRepository struct {
	db *gorm.DB
}

// NewScheduleRepository creates a new ScheduleRepository
func NewScheduleRepository(db *gorm.DB) ScheduleRepository {
	return &GormScheduleRepository{db: db}
}

func (r *GormScheduleRepository) Create(event *models.ScheduleEvent) error {
	return r.db.Create(event).Error
}

func (r *GormScheduleRepository) FindByID(id uint64) (*models.ScheduleEvent, error) {
	var event models.ScheduleEvent
	if err := r.db.First(&event, id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func applyRange(query *gorm.DB, from, to *time.Time) *gorm.DB {
	if from != nil {
		query = query.Where("ends_at >= ?", *from)
	}
	if to != nil {
		query = query.Where("starts_at < ?", *to)
	}
	return query
}

func (r *GormScheduleRepository) ListByProject(projectID uint64, from, to *time.Time) ([]models.ScheduleEvent, error) {
	var events []models.ScheduleEvent
	query := r.db.Where("project_id = ?", projectID)
	query = applyRange(query, from, to)
	if err := query.Order("starts_at ASC").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// ListForUser lists events across every project the user is a member of
func (r *GormScheduleRepository) ListForUser(userID uint64, from, to *time.Time) ([]models.ScheduleEvent, error) {
	var events []models.ScheduleEvent
	query := r.db.
		Joins("JOIN project_members ON project_members.project_id = schedule_events.project_id").
		Where("project_members.user_id = ?", userID)
	query = applyRange(query, from, to)
	if err := query.Order("schedule_events.starts_at ASC").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *GormScheduleRepository) Update(event *models.ScheduleEvent) error {
	return r.db.Save(event).Error
}

func (r *GormScheduleRepository) Delete(id uint64) error {
	return r.db.Delete(&models.ScheduleEvent{}, id).Error
}
