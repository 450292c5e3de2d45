package relay

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
	"github.com/crewdeck/crewdeck-api/internal/models"
	"github.com/crewdeck/crewdeck-api/internal/repository"
	"github.com/crewdeck/crewdeck-api/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type relayTestEnv struct {
	db      *gorm.DB
	server  *httptest.Server
	chat    *services.ChatService
	users   map[string]*models.User
	channel *models.ChatChannel
}

func setupRelayTestEnv(t *testing.T) relayTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// The relay handlers run concurrently; a second pooled connection to
	// an in-memory sqlite database would see a different database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.User{},
		&models.ChatChannel{},
		&models.ChatChannelMember{},
		&models.ChatMessage{},
	)
	require.NoError(t, err)

	users := make(map[string]*models.User)
	for _, name := range []string{"alice", "bob", "carol"} {
		user := &models.User{
			Username:     name,
			Email:        name + "@example.com",
			DisplayName:  name,
			PasswordHash: "hashed",
			Role:         models.RoleEmployed,
		}
		require.NoError(t, db.Create(user).Error)
		users[name] = user
	}

	chatService := services.NewChatService(
		repository.NewChatRepository(db),
		repository.NewUserRepository(db),
	)

	channel, err := chatService.CreateChannel(services.CreateChannelInput{
		Name:      "production",
		CreatorID: users["alice"].ID,
	})
	require.NoError(t, err)
	require.NoError(t, chatService.AddMember(channel.ID, users["alice"].ID, users["bob"].ID))

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ws", New(NewRegistry(), chatService).HandleWS)
	server := httptest.NewServer(r)

	t.Cleanup(func() {
		server.Close()
		sqlDB.Close()
	})

	return relayTestEnv{
		db:      db,
		server:  server,
		chat:    chatService,
		users:   users,
		channel: channel,
	}
}

func (env relayTestEnv) dial(t *testing.T) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(env.server.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		conn.Close()
	})
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) map[string]json.RawMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var event map[string]json.RawMessage
	require.NoError(t, conn.ReadJSON(&event))
	return event
}

func eventType(t *testing.T, event map[string]json.RawMessage) string {
	t.Helper()
	var typ string
	require.NoError(t, json.Unmarshal(event["type"], &typ))
	return typ
}

func authenticate(t *testing.T, conn *websocket.Conn, userID uint64) {
	t.Helper()
	require.NoError(t, conn.WriteJSON(Frame{Type: FrameAuth, UserID: userID}))
	event := readEvent(t, conn)
	require.Equal(t, EventAuthSuccess, eventType(t, event))
}

func joinChannel(t *testing.T, conn *websocket.Conn, channelID uint64) MessageHistoryEvent {
	t.Helper()
	require.NoError(t, conn.WriteJSON(Frame{Type: FrameJoinChannel, ChannelID: channelID}))

	event := readEvent(t, conn)
	require.Equal(t, EventChannelJoined, eventType(t, event))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var history MessageHistoryEvent
	require.NoError(t, conn.ReadJSON(&history))
	require.Equal(t, EventMessageHistory, history.Type)
	return history
}

func TestRelay_JoinSendsHistoryInOrder(t *testing.T) {
	env := setupRelayTestEnv(t)

	for _, content := range []string{"first", "second", "third"} {
		_, err := env.chat.SaveMessage(env.channel.ID, env.users["alice"].ID, content)
		require.NoError(t, err)
	}

	conn := env.dial(t)
	authenticate(t, conn, env.users["alice"].ID)
	history := joinChannel(t, conn, env.channel.ID)

	require.Equal(t, env.channel.ID, history.ChannelID)
	require.Len(t, history.Messages, 3)
	require.Equal(t, "first", history.Messages[0].Content)
	require.Equal(t, "second", history.Messages[1].Content)
	require.Equal(t, "third", history.Messages[2].Content)
}

func TestRelay_BroadcastReachesMembersOnly(t *testing.T) {
	env := setupRelayTestEnv(t)

	alice := env.dial(t)
	bob := env.dial(t)
	carol := env.dial(t)

	authenticate(t, alice, env.users["alice"].ID)
	authenticate(t, bob, env.users["bob"].ID)
	authenticate(t, carol, env.users["carol"].ID)

	joinChannel(t, alice, env.channel.ID)
	joinChannel(t, bob, env.channel.ID)

	require.NoError(t, alice.WriteJSON(Frame{
		Type:      FrameChatMessage,
		ChannelID: env.channel.ID,
		Content:   "rolling in five",
	}))

	for _, conn := range []*websocket.Conn{alice, bob} {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		var event ChatMessageEvent
		require.NoError(t, conn.ReadJSON(&event))
		require.Equal(t, EventChatMessage, event.Type)
		require.Equal(t, "rolling in five", event.Message.Content)
		require.NotNil(t, event.Message.Sender)
		require.Equal(t, "alice", event.Message.Sender.Username)
	}

	// Carol is not a channel member and must receive nothing.
	require.NoError(t, carol.SetReadDeadline(time.Now().Add(300*time.Millisecond)))
	var stray map[string]json.RawMessage
	require.Error(t, carol.ReadJSON(&stray))

	// The message was persisted.
	messages, err := env.chat.History(env.channel.ID, env.users["alice"].ID, 0)
	require.NoError(t, err)
	require.Len(t, messages, 1)
}

func TestRelay_MessageBeforeAuthRejected(t *testing.T) {
	env := setupRelayTestEnv(t)

	conn := env.dial(t)
	require.NoError(t, conn.WriteJSON(Frame{
		Type:      FrameChatMessage,
		ChannelID: env.channel.ID,
		Content:   "sneaky",
	}))

	event := readEvent(t, conn)
	require.Equal(t, EventError, eventType(t, event))

	// The connection stays usable after the error.
	authenticate(t, conn, env.users["alice"].ID)

	messages, err := env.chat.History(env.channel.ID, env.users["alice"].ID, 0)
	require.NoError(t, err)
	require.Empty(t, messages)
}

func TestRelay_NonMemberCannotJoin(t *testing.T) {
	env := setupRelayTestEnv(t)

	conn := env.dial(t)
	authenticate(t, conn, env.users["carol"].ID)

	require.NoError(t, conn.WriteJSON(Frame{Type: FrameJoinChannel, ChannelID: env.channel.ID}))

	event := readEvent(t, conn)
	require.Equal(t, EventError, eventType(t, event))
}

func TestRelay_TypingExcludesSender(t *testing.T) {
	env := setupRelayTestEnv(t)

	alice := env.dial(t)
	bob := env.dial(t)

	authenticate(t, alice, env.users["alice"].ID)
	authenticate(t, bob, env.users["bob"].ID)

	joinChannel(t, alice, env.channel.ID)
	joinChannel(t, bob, env.channel.ID)

	require.NoError(t, alice.WriteJSON(Frame{
		Type:      FrameTyping,
		ChannelID: env.channel.ID,
		IsTyping:  true,
	}))

	require.NoError(t, bob.SetReadDeadline(time.Now().Add(2*time.Second)))
	var event UserTypingEvent
	require.NoError(t, bob.ReadJSON(&event))
	require.Equal(t, EventUserTyping, event.Type)
	require.Equal(t, env.users["alice"].ID, event.UserID)
	require.True(t, event.IsTyping)

	// The sender does not get their own indicator back.
	require.NoError(t, alice.SetReadDeadline(time.Now().Add(300*time.Millisecond)))
	var stray map[string]json.RawMessage
	require.Error(t, alice.ReadJSON(&stray))
}

func TestRelay_ReauthReleasesPreviousIdentity(t *testing.T) {
	env := setupRelayTestEnv(t)

	// Alice connects, then re-authenticates as carol and disconnects.
	// Alice's registry slot must not survive pointing at the dead socket.
	turncoat := env.dial(t)
	authenticate(t, turncoat, env.users["alice"].ID)
	joinChannel(t, turncoat, env.channel.ID)
	authenticate(t, turncoat, env.users["carol"].ID)
	require.NoError(t, turncoat.Close())

	// Give the server time to unwind the connection.
	time.Sleep(100 * time.Millisecond)

	bob := env.dial(t)
	authenticate(t, bob, env.users["bob"].ID)
	joinChannel(t, bob, env.channel.ID)

	require.NoError(t, bob.WriteJSON(Frame{
		Type:      FrameChatMessage,
		ChannelID: env.channel.ID,
		Content:   "anyone here?",
	}))

	// The fan-out to alice's stale entry must not break delivery to bob.
	require.NoError(t, bob.SetReadDeadline(time.Now().Add(2*time.Second)))
	var event ChatMessageEvent
	require.NoError(t, bob.ReadJSON(&event))
	require.Equal(t, EventChatMessage, event.Type)
	require.Equal(t, "anyone here?", event.Message.Content)
}

func TestClient_EnqueueAfterCloseIsNoop(t *testing.T) {
	client := &Client{send: make(chan interface{}, 1)}
	client.close()
	client.close()

	// Must not panic on the closed send channel.
	client.enqueue(ErrorEvent{Type: EventError, Message: "late"})
}

func TestRegistry_ReconnectReplaces(t *testing.T) {
	registry := NewRegistry()

	older := &Client{userID: 7, send: make(chan interface{}, 1)}
	newer := &Client{userID: 7, send: make(chan interface{}, 1)}

	require.Nil(t, registry.Register(older))
	require.Equal(t, older, registry.Register(newer))
	require.Equal(t, newer, registry.Get(7))

	// Unregistering the stale client must not evict its successor.
	registry.Unregister(older)
	require.Equal(t, newer, registry.Get(7))

	registry.Unregister(newer)
	require.Nil(t, registry.Get(7))
}
