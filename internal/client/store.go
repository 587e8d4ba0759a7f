package client

import (
	"context"
	"errors"
	"sync"

	"github.com/KirkDiggler/sketchparty/internal/models"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_store.go github.com/KirkDiggler/sketchparty/internal/client SessionStore

// Keys the session keeps in its store
const (
	KeyRoomCode   = "roomCode"
	KeyPlayerID   = "playerId"
	KeyPlayerName = "playerName"
)

// ErrKeyNotFound is returned by a SessionStore for a key that was never set or was cleared
var ErrKeyNotFound = errors.New("key not found")

// SessionStore is the local memory of a client: which room it is in and as
// whom. It survives reconnects, never the room itself.
type SessionStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Clear(ctx context.Context) error
}

// MemoryStore keeps the session in process memory
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (m *MemoryStore) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.values[key]
	if !ok {
		return "", ErrKeyNotFound
	}
	return v, nil
}

func (m *MemoryStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = value
	return nil
}

func (m *MemoryStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values = make(map[string]string)
	return nil
}

// Intent is the room a client means to be in
type Intent struct {
	RoomCode   models.RoomCode
	PlayerID   models.PlayerID
	PlayerName string
}

// SaveIntent remembers the room and player in store
func SaveIntent(ctx context.Context, store SessionStore, intent Intent) error {
	if intent.RoomCode == "" || intent.PlayerID == "" {
		return errors.New("room code and player ID cannot be empty")
	}

	values := map[string]string{
		KeyRoomCode:   string(intent.RoomCode),
		KeyPlayerID:   string(intent.PlayerID),
		KeyPlayerName: intent.PlayerName,
	}
	for k, v := range values {
		if err := store.Set(ctx, k, v); err != nil {
			return err
		}
	}
	return nil
}

// LoadIntent reads the remembered room and player. It returns ErrNoSession
// when the client is not in a room.
func LoadIntent(ctx context.Context, store SessionStore) (Intent, error) {
	code, err := store.Get(ctx, KeyRoomCode)
	if errors.Is(err, ErrKeyNotFound) {
		return Intent{}, ErrNoSession
	}
	if err != nil {
		return Intent{}, err
	}

	player, err := store.Get(ctx, KeyPlayerID)
	if errors.Is(err, ErrKeyNotFound) {
		return Intent{}, ErrNoSession
	}
	if err != nil {
		return Intent{}, err
	}

	name, err := store.Get(ctx, KeyPlayerName)
	if err != nil && !errors.Is(err, ErrKeyNotFound) {
		return Intent{}, err
	}

	return Intent{
		RoomCode:   models.RoomCode(code),
		PlayerID:   models.PlayerID(player),
		PlayerName: name,
	}, nil
}
