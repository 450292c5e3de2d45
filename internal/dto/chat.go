package dto

import (
	"time"

	"github.com/crewdeck/crewdeck-api/internal/models"
)

// ChannelDTO represents a chat channel in API responses
type ChannelDTO struct {
	ID              uint64    `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	IsPrivate       bool      `json:"isPrivate"`
	IsDirectMessage bool      `json:"isDirectMessage"`
	CreatedBy       uint64    `json:"createdBy"`
	CreatedAt       time.Time `json:"createdAt"`
}

// MessageDTO represents a chat message in API responses and relay frames
type MessageDTO struct {
	ID        uint64    `json:"id"`
	ChannelID uint64    `json:"channelId"`
	Content   string    `json:"content"`
	SentAt    time.Time `json:"sentAt"`
	Sender    *UserDTO  `json:"sender,omitempty"`
}

// ToChannelDTO converts a ChatChannel model to ChannelDTO
func ToChannelDTO(channel models.ChatChannel) ChannelDTO {
	return ChannelDTO{
		ID:              channel.ID,
		Name:            channel.Name,
		Description:     channel.Description,
		IsPrivate:       channel.IsPrivate,
		IsDirectMessage: channel.IsDirectMessage,
		CreatedBy:       channel.CreatedBy,
		CreatedAt:       channel.CreatedAt,
	}
}

// ToChannelDTOs converts a slice of channels
func ToChannelDTOs(channels []models.ChatChannel) []ChannelDTO {
	dtos := make([]ChannelDTO, len(channels))
	for i, channel := range channels {
		dtos[i] = ToChannelDTO(channel)
	}
	return dtos
}

// ToMessageDTO converts a ChatMessage model to MessageDTO
func ToMessageDTO(message models.ChatMessage) MessageDTO {
	dto := MessageDTO{
		ID:        message.ID,
		ChannelID: message.ChannelID,
		Content:   message.Content,
		SentAt:    message.SentAt,
	}

	// Include sender if preloaded
	if message.Sender.ID != 0 {
		sender := ToUserDTO(message.Sender)
		dto.Sender = &sender
	}

	return dto
}

// ToMessageDTOs converts a slice of messages
func ToMessageDTOs(messages []models.ChatMessage) []MessageDTO {
	dtos := make([]MessageDTO, len(messages))
	for i, message := range messages {
		dtos[i] = ToMessageDTO(message)
	}
	return dtos
}
