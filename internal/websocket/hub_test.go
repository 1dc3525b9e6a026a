package websocket

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockClient is a test double for Client that captures sent messages
type mockClient struct {
	id       string
	userID   uuid.UUID
	messages [][]byte
	mu       sync.Mutex
	closed   bool
}

func newMockClient(id string, userID uuid.UUID) *mockClient {
	return &mockClient{
		id:       id,
		userID:   userID,
		messages: make([][]byte, 0),
	}
}

func (m *mockClient) ID() string { return m.id }

func (m *mockClient) UserID() uuid.UUID { return m.userID }

func (m *mockClient) Send(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClientClosed
	}
	m.messages = append(m.messages, data)
	return nil
}

func (m *mockClient) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *mockClient) GetMessages() [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([][]byte, len(m.messages))
	copy(out, m.messages)
	return out
}

func waitForMessages(t *testing.T, client *mockClient, want int) [][]byte {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		msgs := client.GetMessages()
		if len(msgs) >= want {
			return msgs
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d messages", want)
	return nil
}

func TestHub_RegisterAndCount(t *testing.T) {
	hub := NewHub()
	userA := uuid.New()
	userB := uuid.New()

	hub.Register(newMockClient("c1", userA))
	hub.Register(newMockClient("c2", userA))
	hub.Register(newMockClient("c3", userB))

	assert.Equal(t, 2, hub.ClientCount(userA))
	assert.Equal(t, 1, hub.ClientCount(userB))
	assert.Len(t, hub.ConnectedUsers(), 2)
}

func TestHub_UnregisterRemovesUser(t *testing.T) {
	hub := NewHub()
	userID := uuid.New()
	client := newMockClient("c1", userID)

	hub.Register(client)
	require.Equal(t, 1, hub.ClientCount(userID))

	hub.Unregister(client)
	assert.Equal(t, 0, hub.ClientCount(userID))
	assert.Empty(t, hub.ConnectedUsers())
}

func TestHub_BroadcastReachesOnlyTargetUser(t *testing.T) {
	hub := NewHub()
	userA := uuid.New()
	userB := uuid.New()
	clientA := newMockClient("c1", userA)
	clientB := newMockClient("c2", userB)

	hub.Register(clientA)
	hub.Register(clientB)

	event := NewEvent(EventTypeRefreshed, EntityTypeAlerts, map[string]string{"hello": "world"})
	hub.Broadcast(userA, event)

	msgs := waitForMessages(t, clientA, 1)

	var decoded Event
	require.NoError(t, json.Unmarshal(msgs[0], &decoded))
	assert.Equal(t, "alerts.refreshed", decoded.Type)
	assert.Equal(t, EntityTypeAlerts, decoded.Entity)

	assert.Empty(t, clientB.GetMessages(), "other user must not receive the event")
}

func TestHub_BroadcastToUnknownUserIsNoOp(t *testing.T) {
	hub := NewHub()
	// Should not panic or block
	hub.Broadcast(uuid.New(), NewEvent(EventTypeRefreshed, EntityTypeAlerts, nil))
}
