package relay

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/crewdeck/crewdeck-api/internal/dto"
	"github.com/crewdeck/crewdeck-api/internal/models"
	"github.com/crewdeck/crewdeck-api/internal/services"
)

// ChatStore is the slice of the chat service the relay needs.
type ChatStore interface {
	EnsureMember(channelID, userID uint64) error
	SaveMessage(channelID, senderID uint64, content string) (*models.ChatMessage, error)
	History(channelID, userID uint64, limit int) ([]models.ChatMessage, error)
	MemberIDs(channelID uint64) ([]uint64, error)
}

// Relay bridges WebSocket connections and the chat service: it
// authenticates clients, persists inbound messages and fans them out to
// connected channel members.
type Relay struct {
	registry *Registry
	chat     ChatStore
	upgrader websocket.Upgrader
}

// New creates a Relay backed by the given registry and chat store.
func New(registry *Registry, chat ChatStore) *Relay {
	return &Relay{
		registry: registry,
		chat:     chat,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// HandleWS upgrades the request and serves the connection until the
// client disconnects.
func (r *Relay) HandleWS(c *gin.Context) {
	conn, err := r.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}

	client := newClient(conn)
	go client.writePump()
	r.readLoop(client)
}

func (r *Relay) readLoop(client *Client) {
	defer func() {
		if client.userID != 0 {
			r.registry.Unregister(client)
		}
		client.close()
	}()

	for {
		var frame Frame
		if err := client.conn.ReadJSON(&frame); err != nil {
			return
		}
		r.dispatch(client, frame)
	}
}

func (r *Relay) dispatch(client *Client, frame Frame) {
	switch frame.Type {
	case FrameAuth:
		r.handleAuth(client, frame)
	case FrameJoinChannel:
		r.handleJoin(client, frame)
	case FrameChatMessage:
		r.handleChatMessage(client, frame)
	case FrameTyping:
		r.handleTyping(client, frame)
	default:
		client.enqueue(ErrorEvent{Type: EventError, Message: "unknown frame type"})
	}
}

func (r *Relay) handleAuth(client *Client, frame Frame) {
	if frame.UserID == 0 {
		client.enqueue(ErrorEvent{Type: EventError, Message: "userId is required"})
		return
	}

	// Re-auth under a new identity releases the old registry slot, so
	// no stale entry keeps routing events to this client.
	if client.userID != 0 && client.userID != frame.UserID {
		r.registry.Unregister(client)
	}

	client.userID = frame.UserID
	if replaced := r.registry.Register(client); replaced != nil {
		replaced.close()
	}
	client.enqueue(AuthSuccessEvent{Type: EventAuthSuccess, UserID: client.userID})
}

func (r *Relay) handleJoin(client *Client, frame Frame) {
	if client.userID == 0 {
		client.enqueue(ErrorEvent{Type: EventError, Message: "not authenticated"})
		return
	}
	if err := r.chat.EnsureMember(frame.ChannelID, client.userID); err != nil {
		client.enqueue(ErrorEvent{Type: EventError, Message: "not a member of the channel"})
		return
	}

	client.channelID = frame.ChannelID
	client.enqueue(ChannelJoinedEvent{Type: EventChannelJoined, ChannelID: frame.ChannelID})

	messages, err := r.chat.History(frame.ChannelID, client.userID, 0)
	if err != nil {
		client.enqueue(ErrorEvent{Type: EventError, Message: "failed to load history"})
		return
	}
	client.enqueue(MessageHistoryEvent{
		Type:      EventMessageHistory,
		ChannelID: frame.ChannelID,
		Messages:  dto.ToMessageDTOs(messages),
	})
}

func (r *Relay) handleChatMessage(client *Client, frame Frame) {
	if client.userID == 0 {
		client.enqueue(ErrorEvent{Type: EventError, Message: "not authenticated"})
		return
	}

	channelID := frame.ChannelID
	if channelID == 0 {
		channelID = client.channelID
	}
	if channelID == 0 {
		client.enqueue(ErrorEvent{Type: EventError, Message: "no channel joined"})
		return
	}

	message, err := r.chat.SaveMessage(channelID, client.userID, frame.Content)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyMessage):
			client.enqueue(ErrorEvent{Type: EventError, Message: "message content is required"})
		case errors.Is(err, services.ErrNotChannelMember), errors.Is(err, services.ErrChannelNotFound):
			client.enqueue(ErrorEvent{Type: EventError, Message: "not a member of the channel"})
		default:
			client.enqueue(ErrorEvent{Type: EventError, Message: "failed to save message"})
		}
		return
	}

	r.broadcast(channelID, ChatMessageEvent{
		Type:    EventChatMessage,
		Message: dto.ToMessageDTO(*message),
	}, 0)
}

func (r *Relay) handleTyping(client *Client, frame Frame) {
	if client.userID == 0 {
		client.enqueue(ErrorEvent{Type: EventError, Message: "not authenticated"})
		return
	}

	channelID := frame.ChannelID
	if channelID == 0 {
		channelID = client.channelID
	}
	if channelID == 0 {
		return
	}
	if err := r.chat.EnsureMember(channelID, client.userID); err != nil {
		return
	}

	r.broadcast(channelID, UserTypingEvent{
		Type:      EventUserTyping,
		ChannelID: channelID,
		UserID:    client.userID,
		IsTyping:  frame.IsTyping,
	}, client.userID)
}

// broadcast sends an event to every connected member of a channel,
// skipping excludeUserID when non-zero. Members without a live
// connection are simply missed; history catches them up on join.
func (r *Relay) broadcast(channelID uint64, event interface{}, excludeUserID uint64) {
	memberIDs, err := r.chat.MemberIDs(channelID)
	if err != nil {
		log.Printf("failed to list channel %d members: %v", channelID, err)
		return
	}

	for _, memberID := range memberIDs {
		if memberID == excludeUserID {
			continue
		}
		if target := r.registry.Get(memberID); target != nil {
			target.enqueue(event)
		}
	}
}
