package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/crewdeck/crewdeck-api/internal/models"
	"github.com/crewdeck/crewdeck-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrChannelNotFound     = errors.New("channel not found")
	ErrNotChannelMember    = errors.New("user is not a member of the channel")
	ErrNotChannelAdmin     = errors.New("only a channel admin can perform this action")
	ErrAlreadyChannelUser  = errors.New("user is already a member of the channel")
	ErrEmptyMessage        = errors.New("message content is required")
	ErrDirectWithSelf      = errors.New("cannot open a direct message with yourself")
	ErrChannelNameRequired = errors.New("channel name is required")
)

// ChatService handles chat channels, memberships and messages. The
// WebSocket relay and the REST handlers both go through it.
type ChatService struct {
	chatRepo repository.ChatRepository
	userRepo repository.UserRepository
}

// NewChatService creates a new ChatService.
func NewChatService(chatRepo repository.ChatRepository, userRepo repository.UserRepository) *ChatService {
	return &ChatService{
		chatRepo: chatRepo,
		userRepo: userRepo,
	}
}

// CreateChannelInput represents input for creating a channel.
type CreateChannelInput struct {
	Name        string
	Description string
	IsPrivate   bool
	CreatorID   uint64
}

// CreateChannel creates a channel; the creator becomes its admin member.
func (s *ChatService) CreateChannel(input CreateChannelInput) (*models.ChatChannel, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrChannelNameRequired
	}

	channel := &models.ChatChannel{
		Name:        input.Name,
		Description: input.Description,
		IsPrivate:   input.IsPrivate,
		CreatedBy:   input.CreatorID,
	}
	if err := s.chatRepo.CreateChannel(channel); err != nil {
		return nil, fmt.Errorf("failed to create channel: %w", err)
	}
	return channel, nil
}

// GetChannel returns a channel the user is a member of.
func (s *ChatService) GetChannel(channelID, userID uint64) (*models.ChatChannel, error) {
	channel, err := s.chatRepo.FindChannel(channelID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChannelNotFound
		}
		return nil, fmt.Errorf("failed to find channel: %w", err)
	}

	if err := s.EnsureMember(channelID, userID); err != nil {
		return nil, err
	}
	return channel, nil
}

// ListChannels lists channels the user belongs to.
func (s *ChatService) ListChannels(userID uint64) ([]models.ChatChannel, error) {
	channels, err := s.chatRepo.ListChannelsForUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list channels: %w", err)
	}
	return channels, nil
}

// DeleteChannel removes a channel; only a channel admin may delete it.
func (s *ChatService) DeleteChannel(channelID, actorID uint64) error {
	member, err := s.chatRepo.FindMember(channelID, actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotChannelMember
		}
		return fmt.Errorf("failed to check membership: %w", err)
	}
	if !member.IsAdmin {
		return ErrNotChannelAdmin
	}

	if err := s.chatRepo.DeleteChannel(channelID); err != nil {
		return fmt.Errorf("failed to delete channel: %w", err)
	}
	return nil
}

// OpenDirectChannel returns the DM channel between two users, creating
// it on first use.
func (s *ChatService) OpenDirectChannel(userID, otherID uint64) (*models.ChatChannel, error) {
	if userID == otherID {
		return nil, ErrDirectWithSelf
	}

	other, err := s.userRepo.FindByID(otherID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	channel, err := s.chatRepo.FindDirectChannel(userID, otherID)
	if err == nil {
		return channel, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up direct channel: %w", err)
	}

	channel = &models.ChatChannel{
		Name:            other.DisplayName,
		IsPrivate:       true,
		IsDirectMessage: true,
		CreatedBy:       userID,
	}
	if err := s.chatRepo.CreateChannel(channel); err != nil {
		return nil, fmt.Errorf("failed to create direct channel: %w", err)
	}

	member := &models.ChatChannelMember{ChannelID: channel.ID, UserID: otherID}
	if err := s.chatRepo.AddMember(member); err != nil {
		return nil, fmt.Errorf("failed to add direct member: %w", err)
	}

	return channel, nil
}

// AddMember adds a user to a channel.
func (s *ChatService) AddMember(channelID, actorID, userID uint64) error {
	if err := s.EnsureMember(channelID, actorID); err != nil {
		return err
	}

	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	if _, err := s.chatRepo.FindMember(channelID, userID); err == nil {
		return ErrAlreadyChannelUser
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check membership: %w", err)
	}

	member := &models.ChatChannelMember{ChannelID: channelID, UserID: userID}
	if err := s.chatRepo.AddMember(member); err != nil {
		return fmt.Errorf("failed to add member: %w", err)
	}
	return nil
}

// RemoveMember removes a user from a channel. Members may remove
// themselves; removing someone else requires channel admin.
func (s *ChatService) RemoveMember(channelID, actorID, userID uint64) error {
	actor, err := s.chatRepo.FindMember(channelID, actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotChannelMember
		}
		return fmt.Errorf("failed to check membership: %w", err)
	}

	if actorID != userID && !actor.IsAdmin {
		return ErrNotChannelAdmin
	}

	if err := s.chatRepo.RemoveMember(channelID, userID); err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}
	return nil
}

// ListMembers lists channel members with their user profiles.
func (s *ChatService) ListMembers(channelID, actorID uint64) ([]models.ChatChannelMember, error) {
	if err := s.EnsureMember(channelID, actorID); err != nil {
		return nil, err
	}
	members, err := s.chatRepo.ListMembers(channelID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	return members, nil
}

// MemberIDs returns the user IDs of a channel's members.
func (s *ChatService) MemberIDs(channelID uint64) ([]uint64, error) {
	ids, err := s.chatRepo.ListMemberIDs(channelID)
	if err != nil {
		return nil, fmt.Errorf("failed to list member ids: %w", err)
	}
	return ids, nil
}

// EnsureMember verifies the channel exists and the user belongs to it.
func (s *ChatService) EnsureMember(channelID, userID uint64) error {
	if _, err := s.chatRepo.FindChannel(channelID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrChannelNotFound
		}
		return fmt.Errorf("failed to find channel: %w", err)
	}

	if _, err := s.chatRepo.FindMember(channelID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotChannelMember
		}
		return fmt.Errorf("failed to check membership: %w", err)
	}
	return nil
}

// SaveMessage persists a message after re-verifying membership and
// returns it with the sender profile loaded.
func (s *ChatService) SaveMessage(channelID, senderID uint64, content string) (*models.ChatMessage, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyMessage
	}

	if err := s.EnsureMember(channelID, senderID); err != nil {
		return nil, err
	}

	message := &models.ChatMessage{
		ChannelID: channelID,
		SenderID:  senderID,
		Content:   content,
	}
	if err := s.chatRepo.CreateMessage(message); err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}
	return message, nil
}

// History returns a channel's messages in chronological order. A limit
// of zero returns everything.
func (s *ChatService) History(channelID, userID uint64, limit int) ([]models.ChatMessage, error) {
	if err := s.EnsureMember(channelID, userID); err != nil {
		return nil, err
	}

	messages, err := s.chatRepo.ListMessages(channelID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return messages, nil
}
