package session

import (
	"crypto/rand"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Sender identifies which side of the conversation produced a message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Message is a single transcript entry. Messages are never mutated after
// creation; the transcript is append-only and insertion order is display order.
type Message struct {
	Sender     Sender    `json:"sender"`
	Body       string    `json:"body"`
	RenderedAt time.Time `json:"rendered_at"`
}

// Manager owns the client-side session identifier that correlates this
// client's messages with a server-side conversation. The id is created lazily
// on first use, survives restarts through the Store, and is replaced by Reset.
type Manager struct {
	store Store
	log   *slog.Logger

	mu sync.Mutex
	id string
}

func NewManager(store Store, log *slog.Logger) *Manager {
	return &Manager{store: store, log: log}
}

// GetOrCreate returns the persisted session id, generating and persisting a
// new one if none exists. Storage failures degrade to an in-memory id for the
// lifetime of the process; they never fail the chat flow.
func (m *Manager) GetOrCreate() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.id != "" {
		return m.id
	}

	id, err := m.store.Load()
	if err != nil {
		m.log.Warn("session storage unavailable, id will not survive restarts", "error", err)
	}
	if id == "" {
		id = NewID()
		if err := m.store.Save(id); err != nil {
			m.log.Warn("failed to persist session id", "error", err)
		}
		m.log.Info("created new session", "session_id", id)
	} else {
		m.log.Info("restored existing session", "session_id", id)
	}

	m.id = id
	return id
}

// Reset always generates a new id, overwriting any persisted one.
func (m *Manager) Reset() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := NewID()
	if err := m.store.Save(id); err != nil {
		m.log.Warn("failed to persist session id", "error", err)
	}
	m.id = id
	m.log.Info("created new session", "session_id", id)
	return id
}

// NewID builds a session id from a random component and the current time in
// milliseconds. The format is part of the backend correlation contract.
func NewID() string {
	return fmt.Sprintf("session_%s_%d", randomToken(9), time.Now().UnixMilli())
}

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

func randomToken(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		// uniqueness then rests on the timestamp suffix
		now := time.Now().UnixNano()
		for i := range buf {
			buf[i] = byte(now >> (uint(i) * 8))
		}
	}
	for i, b := range buf {
		buf[i] = base36[int(b)%len(base36)]
	}
	return string(buf)
}
