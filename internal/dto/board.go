package dto

import (
	"time"

	"github.com/crewdeck/crewdeck-api/internal/models"
)

// ColumnDTO represents a board column with its cards
type ColumnDTO struct {
	ID        uint64       `json:"id"`
	ProjectID uint64       `json:"projectId"`
	Name      string       `json:"name"`
	Color     string       `json:"color"`
	Position  int          `json:"order"`
	Contents  []ContentDTO `json:"contents,omitempty"`
}

// ContentDTO represents a board card in API responses
type ContentDTO struct {
	ID          uint64          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Type        string          `json:"type"`
	ColumnID    uint64          `json:"columnId"`
	ProjectID   uint64          `json:"projectId"`
	AssignedTo  *uint64         `json:"assignedTo"`
	DueDate     *time.Time      `json:"dueDate"`
	Priority    string          `json:"priority"`
	Progress    int             `json:"progress"`
	Position    int             `json:"order"`
	CreatedBy   uint64          `json:"createdBy"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	Assignee    *UserDTO        `json:"assignee,omitempty"`
	Creator     *UserDTO        `json:"creator,omitempty"`
	Attachments []AttachmentDTO `json:"attachments,omitempty"`
}

// AttachmentDTO represents a card attachment
type AttachmentDTO struct {
	ID        uint64    `json:"id"`
	ContentID uint64    `json:"contentId"`
	Name      string    `json:"name"`
	URL       string    `json:"url"`
	CreatedBy uint64    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToColumnDTO converts a Column model to ColumnDTO
func ToColumnDTO(column models.Column) ColumnDTO {
	dto := ColumnDTO{
		ID:        column.ID,
		ProjectID: column.ProjectID,
		Name:      column.Name,
		Color:     column.Color,
		Position:  column.Position,
	}
	if column.Contents != nil {
		dto.Contents = ToContentDTOs(column.Contents)
	}
	return dto
}

// ToColumnDTOs converts a slice of columns
func ToColumnDTOs(columns []models.Column) []ColumnDTO {
	dtos := make([]ColumnDTO, len(columns))
	for i, column := range columns {
		dtos[i] = ToColumnDTO(column)
	}
	return dtos
}

// ToContentDTO converts a Content model to ContentDTO. The assignee,
// creator and attachments are included only when preloaded.
func ToContentDTO(content models.Content) ContentDTO {
	dto := ContentDTO{
		ID:          content.ID,
		Title:       content.Title,
		Description: content.Description,
		Type:        content.Type,
		ColumnID:    content.ColumnID,
		ProjectID:   content.ProjectID,
		AssignedTo:  content.AssignedTo,
		DueDate:     content.DueDate,
		Priority:    content.Priority,
		Progress:    content.Progress,
		Position:    content.Position,
		CreatedBy:   content.CreatedBy,
		CreatedAt:   content.CreatedAt,
		UpdatedAt:   content.UpdatedAt,
	}
	if content.Assignee != nil {
		assignee := ToUserDTO(*content.Assignee)
		dto.Assignee = &assignee
	}
	if content.Creator.ID != 0 {
		creator := ToUserDTO(content.Creator)
		dto.Creator = &creator
	}
	if content.Attachments != nil {
		dto.Attachments = ToAttachmentDTOs(content.Attachments)
	}
	return dto
}

// ToContentDTOs converts a slice of cards
func ToContentDTOs(contents []models.Content) []ContentDTO {
	dtos := make([]ContentDTO, len(contents))
	for i, content := range contents {
		dtos[i] = ToContentDTO(content)
	}
	return dtos
}

// ToAttachmentDTO converts an Attachment model to AttachmentDTO
func ToAttachmentDTO(attachment models.Attachment) AttachmentDTO {
	return AttachmentDTO{
		ID:        attachment.ID,
		ContentID: attachment.ContentID,
		Name:      attachment.Name,
		URL:       attachment.URL,
		CreatedBy: attachment.CreatedBy,
		CreatedAt: attachment.CreatedAt,
	}
}

// ToAttachmentDTOs converts a slice of attachments
func ToAttachmentDTOs(attachments []models.Attachment) []AttachmentDTO {
	dtos := make([]AttachmentDTO, len(attachments))
	for i, attachment := range attachments {
		dtos[i] = ToAttachmentDTO(attachment)
	}
	return dtos
}
