package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/crewdeck/crewdeck-api/internal/models"
	"gorm.io/gorm"
)

var (
	// ErrCreateChannel is returned when creating the channel row fails inside the create transaction.
	ErrCreateChannel = errors.New("chat repository: create channel failed")
	// ErrCreateChannelMember is returned when creating the creator membership fails inside the create transaction.
	ErrCreateChannelMember = errors.New("chat repository: create channel member failed")
)

// GormChatRepository is a GORM implementation of ChatRepository
type GormChatRepository struct {
	db *gorm.DB
}

// NewChatRepository creates a new ChatRepository
func NewChatRepository(db *gorm.DB) ChatRepository {
	return &GormChatRepository{db: db}
}

// CreateChannel creates a channel and its creator membership (as channel
// admin) atomically.
func (r *GormChatRepository) CreateChannel(channel *models.ChatChannel) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(channel).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateChannel, err)
		}

		member := models.ChatChannelMember{
			ChannelID: channel.ID,
			UserID:    channel.CreatedBy,
			IsAdmin:   true,
			JoinedAt:  time.Now(),
		}
		if err := tx.Create(&member).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateChannelMember, err)
		}

		return nil
	})
}

// FindChannel finds a channel by ID
func (r *GormChatRepository) FindChannel(id uint64) (*models.ChatChannel, error) {
	var channel models.ChatChannel
	if err := r.db.First(&channel, id).Error; err != nil {
		return nil, err
	}
	return &channel, nil
}

// ListChannelsForUser lists channels the user is a member of
func (r *GormChatRepository) ListChannelsForUser(userID uint64) ([]models.ChatChannel, error) {
	var channels []models.ChatChannel
	err := r.db.
		Joins("JOIN chat_channel_members ON chat_channel_members.channel_id = chat_channels.id").
		Where("chat_channel_members.user_id = ?", userID).
		Order("chat_channels.created_at ASC").
		Find(&channels).Error
	if err != nil {
		return nil, err
	}
	return channels, nil
}

// DeleteChannel removes a channel, its members and messages atomically
func (r *GormChatRepository) DeleteChannel(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("channel_id = ?", id).Delete(&models.ChatMessage{}).Error; err != nil {
			return err
		}
		if err := tx.Where("channel_id = ?", id).Delete(&models.ChatChannelMember{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.ChatChannel{}, id).Error
	})
}

// FindDirectChannel finds the DM channel shared by exactly two users
func (r *GormChatRepository) FindDirectChannel(userA, userB uint64) (*models.ChatChannel, error) {
	var channel models.ChatChannel
	err := r.db.
		Joins("JOIN chat_channel_members a ON a.channel_id = chat_channels.id AND a.user_id = ?", userA).
		Joins("JOIN chat_channel_members b ON b.channel_id = chat_channels.id AND b.user_id = ?", userB).
		Where("chat_channels.is_direct_message = ?", true).
		First(&channel).Error
	if err != nil {
		return nil, err
	}
	return &channel, nil
}

// AddMember adds a member to a channel
func (r *GormChatRepository) AddMember(member *models.ChatChannelMember) error {
	if member.JoinedAt.IsZero() {
		member.JoinedAt = time.Now()
	}
	return r.db.Create(member).Error
}

// RemoveMember removes a member from a channel
func (r *GormChatRepository) RemoveMember(channelID, userID uint64) error {
	return r.db.Where("channel_id = ? AND user_id = ?", channelID, userID).
		Delete(&models.ChatChannelMember{}).Error
}

// FindMember finds a specific channel member
func (r *GormChatRepository) FindMember(channelID, userID uint64) (*models.ChatChannelMember, error) {
	var member models.ChatChannelMember
	if err := r.db.Where("channel_id = ? AND user_id = ?", channelID, userID).
		First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// ListMembers lists channel members with their users
func (r *GormChatRepository) ListMembers(channelID uint64) ([]models.ChatChannelMember, error) {
	var members []models.ChatChannelMember
	if err := r.db.Preload("User").
		Where("channel_id = ?", channelID).
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// ListMemberIDs lists the user IDs of a channel's members
func (r *GormChatRepository) ListMemberIDs(channelID uint64) ([]uint64, error) {
	var ids []uint64
	if err := r.db.Model(&models.ChatChannelMember{}).
		Where("channel_id = ?", channelID).
		Pluck("user_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// CreateMessage persists a message and reloads it with its sender
func (r *GormChatRepository) CreateMessage(message *models.ChatMessage) error {
	if err := r.db.Create(message).Error; err != nil {
		return err
	}
	return r.db.Preload("Sender").First(message, message.ID).Error
}

// ListMessages returns a channel's messages in chronological order with
// their senders. A positive limit returns the most recent messages; zero
// returns the full history.
func (r *GormChatRepository) ListMessages(channelID uint64, limit int) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	query := r.db.Preload("Sender").Where("channel_id = ?", channelID)

	if limit > 0 {
		if err := query.Order("sent_at DESC, id DESC").Limit(limit).Find(&messages).Error; err != nil {
			return nil, err
		}
		// Reverse to chronological order
		for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
			messages[i], messages[j] = messages[j], messages[i]
		}
		return messages, nil
	}

	if err := query.Order("sent_at ASC, id ASC").Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}
