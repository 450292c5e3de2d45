package models

import "time"

type ProjectFolder struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	ProjectID uint64    `gorm:"not null;index" json:"projectId"`
	ParentID  *uint64   `json:"parentId"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	CreatedBy uint64    `gorm:"not null" json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`

	// Relations
	Files []ProjectFile `gorm:"foreignKey:FolderID" json:"files,omitempty"`
}

type ProjectFile struct {
	ID         uint64    `gorm:"primarykey" json:"id"`
	ProjectID  uint64    `gorm:"not null;index" json:"projectId"`
	FolderID   *uint64   `gorm:"index" json:"folderId"`
	Name       string    `gorm:"type:varchar(255);not null" json:"name"`
	StorageKey string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"storageKey"`
	URL        string    `gorm:"type:varchar(512);not null" json:"url"`
	MimeType   string    `gorm:"type:varchar(100)" json:"mimeType"`
	Size       int64     `json:"size"`
	CreatedBy  uint64    `gorm:"not null" json:"createdBy"`
	CreatedAt  time.Time `json:"createdAt"`
}

type YoutubeVideo struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	ProjectID   uint64    `gorm:"not null;index" json:"projectId"`
	VideoID     string    `gorm:"type:varchar(20);not null" json:"videoId"`
	Title       string    `gorm:"type:varchar(255)" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Thumbnail   string    `gorm:"type:varchar(512)" json:"thumbnail"`
	CreatedBy   uint64    `gorm:"not null" json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
}

// PublishedFinal marks a delivered cut of a project.
type PublishedFinal struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	ProjectID uint64    `gorm:"not null;index" json:"projectId"`
	Title     string    `gorm:"type:varchar(255);not null" json:"title"`
	URL       string    `gorm:"type:varchar(512);not null" json:"url"`
	CreatedBy uint64    `gorm:"not null" json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
}
