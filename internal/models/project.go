package models

import "time"

type Project struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Type        string    `gorm:"type:varchar(50)" json:"type"`
	CreatedBy   uint64    `gorm:"not null" json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// Relations
	Creator User            `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
	Members []ProjectMember `gorm:"foreignKey:ProjectID" json:"members,omitempty"`
	Columns []Column        `gorm:"foreignKey:ProjectID" json:"columns,omitempty"`
}

type ProjectMember struct {
	ProjectID uint64 `gorm:"primarykey" json:"projectId"`
	UserID    uint64 `gorm:"primarykey" json:"userId"`

	// Relations
	Project Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	User    User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
