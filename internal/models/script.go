package models

import "time"

// ScriptData holds the collaborative script for a project as an HTML
// fragment. One row per project.
type ScriptData struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	ProjectID   uint64    `gorm:"uniqueIndex;not null" json:"projectId"`
	HTMLContent string    `gorm:"type:text" json:"htmlContent"`
	UpdatedBy   uint64    `json:"updatedBy"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// Relations
	Correlations []ScriptCorrelation `gorm:"foreignKey:ScriptID" json:"correlations,omitempty"`
}

// ScriptCorrelation ties a text selection in the script to a shot number.
type ScriptCorrelation struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	ScriptID  uint64    `gorm:"not null;index" json:"scriptId"`
	ShotID    int       `gorm:"not null" json:"shotId"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	CreatedBy uint64    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
}
