package models

import "time"

type ScheduleEvent struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	ProjectID   uint64    `gorm:"not null;index" json:"projectId"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Location    string    `gorm:"type:varchar(255)" json:"location"`
	StartsAt    time.Time `gorm:"not null;index" json:"startsAt"`
	EndsAt      time.Time `gorm:"not null" json:"endsAt"`
	CreatedBy   uint64    `gorm:"not null" json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// Relations
	Project Project `gorm:"foreignKey:ProjectID" json:"-"`
}
