package relay

import "github.com/crewdeck/crewdeck-api/internal/dto"

// Frame is an inbound message from a client. A single envelope covers
// all frame types; unused fields are zero.
type Frame struct {
	Type      string `json:"type"`
	UserID    uint64 `json:"userId,omitempty"`
	ChannelID uint64 `json:"channelId,omitempty"`
	Content   string `json:"content,omitempty"`
	IsTyping  bool   `json:"isTyping,omitempty"`
}

// Inbound frame types.
const (
	FrameAuth        = "auth"
	FrameJoinChannel = "join_channel"
	FrameChatMessage = "chat_message"
	FrameTyping      = "typing"
)

// Outbound event types.
const (
	EventAuthSuccess    = "auth_success"
	EventChannelJoined  = "channel_joined"
	EventMessageHistory = "message_history"
	EventChatMessage    = "chat_message"
	EventUserTyping     = "user_typing"
	EventError          = "error"
)

// AuthSuccessEvent acknowledges an auth frame.
type AuthSuccessEvent struct {
	Type   string `json:"type"`
	UserID uint64 `json:"userId"`
}

// ChannelJoinedEvent acknowledges a join_channel frame.
type ChannelJoinedEvent struct {
	Type      string `json:"type"`
	ChannelID uint64 `json:"channelId"`
}

// MessageHistoryEvent carries the channel history sent on join.
type MessageHistoryEvent struct {
	Type      string           `json:"type"`
	ChannelID uint64           `json:"channelId"`
	Messages  []dto.MessageDTO `json:"messages"`
}

// ChatMessageEvent carries a persisted message fanned out to channel
// members.
type ChatMessageEvent struct {
	Type    string         `json:"type"`
	Message dto.MessageDTO `json:"message"`
}

// UserTypingEvent relays a typing indicator to other channel members.
type UserTypingEvent struct {
	Type      string `json:"type"`
	ChannelID uint64 `json:"channelId"`
	UserID    uint64 `json:"userId"`
	IsTyping  bool   `json:"isTyping"`
}

// ErrorEvent reports a rejected frame. The connection stays open.
type ErrorEvent struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
