package services

import (
	"errors"
	"fmt"

	"github.com/crewdeck/crewdeck-api/internal/constants"
	"github.com/crewdeck/crewdeck-api/internal/models"
	"github.com/crewdeck/crewdeck-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrColumnNotFound     = errors.New("column not found")
	ErrContentNotFound    = errors.New("content not found")
	ErrAttachmentNotFound = errors.New("attachment not found")
	ErrColumnProjectMix   = errors.New("column belongs to a different project")
	ErrInvalidProgress    = errors.New("progress must be between 0 and 100")
	ErrInvalidAssignee    = errors.New("assignee is not a member of the project")
)

// BoardService handles Kanban board business logic.
type BoardService struct {
	boardRepo   repository.BoardRepository
	projectRepo repository.ProjectRepository
}

// NewBoardService creates a new BoardService.
func NewBoardService(boardRepo repository.BoardRepository, projectRepo repository.ProjectRepository) *BoardService {
	return &BoardService{
		boardRepo:   boardRepo,
		projectRepo: projectRepo,
	}
}

// ListBoard returns the project's columns with their cards and assignees.
func (s *BoardService) ListBoard(projectID uint64) ([]models.Column, error) {
	columns, err := s.boardRepo.ListColumns(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list columns: %w", err)
	}
	return columns, nil
}

// CreateColumnInput represents input for creating a board column.
type CreateColumnInput struct {
	ProjectID uint64
	Name      string
	Color     string
}

// CreateColumn appends a column to the project's board.
func (s *BoardService) CreateColumn(input CreateColumnInput) (*models.Column, error) {
	column := &models.Column{
		ProjectID: input.ProjectID,
		Name:      input.Name,
		Color:     input.Color,
	}
	if err := s.boardRepo.CreateColumn(column); err != nil {
		return nil, fmt.Errorf("failed to create column: %w", err)
	}
	return column, nil
}

// UpdateColumnInput represents input for updating a board column.
type UpdateColumnInput struct {
	Name  *string
	Color *string
}

// UpdateColumn updates a column's name and color.
func (s *BoardService) UpdateColumn(columnID, projectID uint64, input UpdateColumnInput) (*models.Column, error) {
	column, err := s.findColumn(columnID, projectID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		column.Name = *input.Name
	}
	if input.Color != nil {
		column.Color = *input.Color
	}

	if err := s.boardRepo.UpdateColumn(column); err != nil {
		return nil, fmt.Errorf("failed to update column: %w", err)
	}
	return column, nil
}

// DeleteColumn removes a column together with its cards.
func (s *BoardService) DeleteColumn(columnID, projectID uint64) error {
	if _, err := s.findColumn(columnID, projectID); err != nil {
		return err
	}
	if err := s.boardRepo.DeleteColumn(columnID); err != nil {
		return fmt.Errorf("failed to delete column: %w", err)
	}
	return nil
}

// CreateContent appends a card to a column.
func (s *BoardService) CreateContent(content *models.Content) (*models.Content, error) {
	column, err := s.findColumn(content.ColumnID, content.ProjectID)
	if err != nil {
		return nil, err
	}
	content.ProjectID = column.ProjectID

	if content.Progress < 0 || content.Progress > constants.MaxProgress {
		return nil, ErrInvalidProgress
	}

	if err := s.validateAssignee(content.ProjectID, content.AssignedTo); err != nil {
		return nil, err
	}

	if err := s.boardRepo.CreateContent(content); err != nil {
		return nil, fmt.Errorf("failed to create content: %w", err)
	}

	return s.boardRepo.FindContent(content.ID, "Assignee", "Creator")
}

// GetContent returns a card with its assignee, creator and attachments.
func (s *BoardService) GetContent(contentID uint64) (*models.Content, error) {
	content, err := s.boardRepo.FindContent(contentID, "Assignee", "Creator", "Attachments")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContentNotFound
		}
		return nil, fmt.Errorf("failed to find content: %w", err)
	}
	return content, nil
}

// UpdateContent applies a partial update to a card.
func (s *BoardService) UpdateContent(content *models.Content) (*models.Content, error) {
	if content.Progress < 0 || content.Progress > constants.MaxProgress {
		return nil, ErrInvalidProgress
	}

	if err := s.validateAssignee(content.ProjectID, content.AssignedTo); err != nil {
		return nil, err
	}

	if err := s.boardRepo.UpdateContent(content); err != nil {
		return nil, fmt.Errorf("failed to update content: %w", err)
	}

	return s.boardRepo.FindContent(content.ID, "Assignee", "Creator", "Attachments")
}

// DeleteContent removes a card.
func (s *BoardService) DeleteContent(contentID uint64) error {
	if _, err := s.GetContent(contentID); err != nil {
		return err
	}
	if err := s.boardRepo.DeleteContent(contentID); err != nil {
		return fmt.Errorf("failed to delete content: %w", err)
	}
	return nil
}

// MoveContent moves a card into a destination column slot. The target
// column must belong to the same project as the card.
func (s *BoardService) MoveContent(contentID, toColumnID uint64, toPosition int) (*models.Content, error) {
	content, err := s.boardRepo.FindContent(contentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContentNotFound
		}
		return nil, fmt.Errorf("failed to find content: %w", err)
	}

	if _, err := s.findColumn(toColumnID, content.ProjectID); err != nil {
		return nil, err
	}

	if err := s.boardRepo.MoveContent(contentID, toColumnID, toPosition); err != nil {
		return nil, fmt.Errorf("failed to move content: %w", err)
	}

	return s.boardRepo.FindContent(contentID, "Assignee")
}

// AddAttachment stores an attachment on a card.
func (s *BoardService) AddAttachment(attachment *models.Attachment) (*models.Attachment, error) {
	if _, err := s.GetContent(attachment.ContentID); err != nil {
		return nil, err
	}
	if err := s.boardRepo.CreateAttachment(attachment); err != nil {
		return nil, fmt.Errorf("failed to create attachment: %w", err)
	}
	return attachment, nil
}

// ListAttachments lists a card's attachments.
func (s *BoardService) ListAttachments(contentID uint64) ([]models.Attachment, error) {
	if _, err := s.GetContent(contentID); err != nil {
		return nil, err
	}
	attachments, err := s.boardRepo.ListAttachments(contentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attachments: %w", err)
	}
	return attachments, nil
}

// DeleteAttachment removes an attachment from a card. The attachment
// must belong to the given card.
func (s *BoardService) DeleteAttachment(contentID, attachmentID uint64) error {
	attachment, err := s.boardRepo.FindAttachment(attachmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAttachmentNotFound
		}
		return fmt.Errorf("failed to find attachment: %w", err)
	}
	if attachment.ContentID != contentID {
		return ErrAttachmentNotFound
	}
	if err := s.boardRepo.DeleteAttachment(attachmentID); err != nil {
		return fmt.Errorf("failed to delete attachment: %w", err)
	}
	return nil
}

func (s *BoardService) findColumn(columnID, projectID uint64) (*models.Column, error) {
	column, err := s.boardRepo.FindColumn(columnID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrColumnNotFound
		}
		return nil, fmt.Errorf("failed to find column: %w", err)
	}
	if projectID != 0 && column.ProjectID != projectID {
		return nil, ErrColumnProjectMix
	}
	return column, nil
}

func (s *BoardService) validateAssignee(projectID uint64, assignedTo *uint64) error {
	if assignedTo == nil {
		return nil
	}
	if _, err := s.projectRepo.FindMember(projectID, *assignedTo); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidAssignee
		}
		return fmt.Errorf("failed to check assignee: %w", err)
	}
	return nil
}
