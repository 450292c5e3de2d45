package models

import "time"

// Column is an ordered lane on a project's Kanban board. Position values
// within a project form a contiguous 0..n-1 sequence.
type Column struct {
	ID        uint64 `gorm:"primarykey" json:"id"`
	ProjectID uint64 `gorm:"not null;index" json:"projectId"`
	Name      string `gorm:"type:varchar(100);not null" json:"name"`
	Color     string `gorm:"type:varchar(20)" json:"color"`
	Position  int    `gorm:"not null" json:"order"`

	// Relations
	Project  Project   `gorm:"foreignKey:ProjectID" json:"-"`
	Contents []Content `gorm:"foreignKey:ColumnID" json:"contents,omitempty"`
}

// Content is a card on a board column. Position is the card's slot within
// its column, contiguous from zero.
type Content struct {
	ID          uint64     `gorm:"primarykey" json:"id"`
	Title       string     `gorm:"type:varchar(255);not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Type        string     `gorm:"type:varchar(50)" json:"type"`
	ColumnID    uint64     `gorm:"not null;index" json:"columnId"`
	ProjectID   uint64     `gorm:"not null;index" json:"projectId"`
	AssignedTo  *uint64    `json:"assignedTo"`
	DueDate     *time.Time `json:"dueDate"`
	Priority    string     `gorm:"type:varchar(20)" json:"priority"`
	Progress    int        `gorm:"not null;default:0" json:"progress"`
	Position    int        `gorm:"not null" json:"order"`
	CreatedBy   uint64     `gorm:"not null" json:"createdBy"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`

	// Relations
	Column      Column       `gorm:"foreignKey:ColumnID" json:"-"`
	Assignee    *User        `gorm:"foreignKey:AssignedTo" json:"assignee,omitempty"`
	Creator     User         `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
	Attachments []Attachment `gorm:"foreignKey:ContentID" json:"attachments,omitempty"`
}

type Attachment struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	ContentID uint64    `gorm:"not null;index" json:"contentId"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	URL       string    `gorm:"type:varchar(512);not null" json:"url"`
	CreatedBy uint64    `gorm:"not null" json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`

	// Relations
	Content Content `gorm:"foreignKey:ContentID" json:"-"`
}
