package repository

import (
	"github.com/crewdeck/crewdeck-api/internal/models"
	"gorm.io/gorm"
)

// GormBoardRepository is a GORM implementation of BoardRepository
type GormBoardRepository struct {
	db *gorm.DB
}

// NewBoardRepository creates a new BoardRepository
func NewBoardRepository(db *gorm.DB) BoardRepository {
	return &GormBoardRepository{db: db}
}

// CreateColumn appends a column at the end of the project's board
func (r *GormBoardRepository) CreateColumn(column *models.Column) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Column{}).
			Where("project_id = ?", column.ProjectID).
			Count(&count).Error; err != nil {
			return err
		}
		column.Position = int(count)
		return tx.Create(column).Error
	})
}

// FindColumn finds a column by ID
func (r *GormBoardRepository) FindColumn(id uint64) (*models.Column, error) {
	var column models.Column
	if err := r.db.First(&column, id).Error; err != nil {
		return nil, err
	}
	return &column, nil
}

// ListColumns lists a project's columns in board order, each with its
// contents in column order and each content's assignee.
func (r *GormBoardRepository) ListColumns(projectID uint64) ([]models.Column, error) {
	var columns []models.Column
	err := r.db.
		Preload("Contents", func(db *gorm.DB) *gorm.DB {
			return db.Order("contents.position ASC")
		}).
		Preload("Contents.Assignee").
		Where("project_id = ?", projectID).
		Order("position ASC").
		Find(&columns).Error
	if err != nil {
		return nil, err
	}
	return columns, nil
}

// UpdateColumn updates a column
func (r *GormBoardRepository) UpdateColumn(column *models.Column) error {
	return r.db.Save(column).Error
}

// DeleteColumn removes a column, its cards and their attachments, then
// shifts the positions of the columns to its right down by one.
func (r *GormBoardRepository) DeleteColumn(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var column models.Column
		if err := tx.First(&column, id).Error; err != nil {
			return err
		}

		contentIDs := tx.Model(&models.Content{}).Select("id").Where("column_id = ?", id)
		if err := tx.Where("content_id IN (?)", contentIDs).Delete(&models.Attachment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("column_id = ?", id).Delete(&models.Content{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Column{}, id).Error; err != nil {
			return err
		}

		return tx.Model(&models.Column{}).
			Where("project_id = ? AND position > ?", column.ProjectID, column.Position).
			UpdateColumn("position", gorm.Expr("position - 1")).Error
	})
}

// CreateContent appends a card at the end of its column: the new card's
// position equals the prior count of cards in that column.
func (r *GormBoardRepository) CreateContent(content *models.Content) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Content{}).
			Where("column_id = ?", content.ColumnID).
			Count(&count).Error; err != nil {
			return err
		}
		content.Position = int(count)
		return tx.Create(content).Error
	})
}

// FindContent finds a card by ID with optional preloading
func (r *GormBoardRepository) FindContent(id uint64, preload ...string) (*models.Content, error) {
	var content models.Content
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&content, id).Error; err != nil {
		return nil, err
	}

	return &content, nil
}

// UpdateContent updates a card
func (r *GormBoardRepository) UpdateContent(content *models.Content) error {
	return r.db.Save(content).Error
}

// DeleteContent removes a card and its attachments, then compacts the
// positions of the cards below it in the column.
func (r *GormBoardRepository) DeleteContent(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var content models.Content
		if err := tx.First(&content, id).Error; err != nil {
			return err
		}

		if err := tx.Where("content_id = ?", id).Delete(&models.Attachment{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Content{}, id).Error; err != nil {
			return err
		}

		return tx.Model(&models.Content{}).
			Where("column_id = ? AND position > ?", content.ColumnID, content.Position).
			UpdateColumn("position", gorm.Expr("position - 1")).Error
	})
}

// MoveContent moves a card to a slot in a (possibly different) column.
// The vacated slot in the source column is closed and the insertion slot
// in the destination column is opened inside the same transaction, so
// both columns keep contiguous 0..n-1 positions. Concurrent moves are
// last-writer-wins; there is no optimistic-concurrency token.
func (r *GormBoardRepository) MoveContent(id, toColumnID uint64, toPosition int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var content models.Content
		if err := tx.First(&content, id).Error; err != nil {
			return err
		}

		if err := tx.First(&models.Column{}, toColumnID).Error; err != nil {
			return err
		}

		if toPosition < 0 {
			toPosition = 0
		}

		if content.ColumnID == toColumnID {
			var count int64
			if err := tx.Model(&models.Content{}).
				Where("column_id = ?", toColumnID).
				Count(&count).Error; err != nil {
				return err
			}
			if toPosition >= int(count) {
				toPosition = int(count) - 1
			}
			if toPosition == content.Position {
				return nil
			}

			if toPosition > content.Position {
				// Shift the cards between the old and new slot up by one.
				if err := tx.Model(&models.Content{}).
					Where("column_id = ? AND position > ? AND position <= ?",
						toColumnID, content.Position, toPosition).
					UpdateColumn("position", gorm.Expr("position - 1")).Error; err != nil {
					return err
				}
			} else {
				if err := tx.Model(&models.Content{}).
					Where("column_id = ? AND position >= ? AND position < ?",
						toColumnID, toPosition, content.Position).
					UpdateColumn("position", gorm.Expr("position + 1")).Error; err != nil {
					return err
				}
			}
		} else {
			// Close the vacated slot in the source column.
			if err := tx.Model(&models.Content{}).
				Where("column_id = ? AND position > ?", content.ColumnID, content.Position).
				UpdateColumn("position", gorm.Expr("position - 1")).Error; err != nil {
				return err
			}

			var count int64
			if err := tx.Model(&models.Content{}).
				Where("column_id = ?", toColumnID).
				Count(&count).Error; err != nil {
				return err
			}
			if toPosition > int(count) {
				toPosition = int(count)
			}

			// Open the insertion slot in the destination column.
			if err := tx.Model(&models.Content{}).
				Where("column_id = ? AND position >= ?", toColumnID, toPosition).
				UpdateColumn("position", gorm.Expr("position + 1")).Error; err != nil {
				return err
			}
		}

		return tx.Model(&models.Content{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{
				"column_id": toColumnID,
				"position":  toPosition,
			}).Error
	})
}

// CreateAttachment creates a card attachment
func (r *GormBoardRepository) CreateAttachment(attachment *models.Attachment) error {
	return r.db.Create(attachment).Error
}

// FindAttachment finds an attachment by ID
func (r *GormBoardRepository) FindAttachment(id uint64) (*models.Attachment, error) {
	var attachment models.Attachment
	if err := r.db.First(&attachment, id).Error; err != nil {
		return nil, err
	}
	return &attachment, nil
}

// ListAttachments lists a card's attachments
func (r *GormBoardRepository) ListAttachments(contentID uint64) ([]models.Attachment, error) {
	var attachments []models.Attachment
	if err := r.db.Where("content_id = ?", contentID).
		Order("created_at ASC").
		Find(&attachments).Error; err != nil {
		return nil, err
	}
	return attachments, nil
}

// DeleteAttachment deletes an attachment
func (r *GormBoardRepository) DeleteAttachment(id uint64) error {
	return r.db.Delete(&models.Attachment{}, id).Error
}
