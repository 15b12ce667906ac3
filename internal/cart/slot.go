package cart

import (
	"context"
	"errors"
	"sync"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// ErrSlotEmpty reports that no snapshot has been stored for the session yet.
var ErrSlotEmpty = errors.New("cart: slot empty")

// Slot is durable storage for one session's serialized cart.
type Slot interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
}

type kv interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

// RedisSlot keeps the snapshot under a fixed key with a sliding TTL.
type RedisSlot struct {
	store kv
	key   string
	ttl   time.Duration
}

func NewRedisSlot(store kv, key string, ttl time.Duration) *RedisSlot {
	return &RedisSlot{store: store, key: key, ttl: ttl}
}

func (s *RedisSlot) Load(ctx context.Context) ([]byte, error) {
	val, err := s.store.Get(ctx, s.key)
	if errors.Is(err, goredis.Nil) {
		return nil, ErrSlotEmpty
	}
	if err != nil {
		return nil, err
	}
	return []byte(val), nil
}

func (s *RedisSlot) Save(ctx context.Context, data []byte) error {
	return s.store.Set(ctx, s.key, string(data), s.ttl)
}

// NewMemorySlots returns a factory that keeps one in-process slot per session,
// so a cart reopened after idle eviction still finds its snapshot.
func NewMemorySlots() SlotFactory {
	var (
		mu    sync.Mutex
		slots = make(map[string]*MemorySlot)
	)
	return func(sessionID string) Slot {
		mu.Lock()
		defer mu.Unlock()
		slot, ok := slots[sessionID]
		if !ok {
			slot = &MemorySlot{}
			slots[sessionID] = slot
		}
		return slot
	}
}

// MemorySlot is an in-process slot.
type MemorySlot struct {
	mu    sync.Mutex
	data  []byte
	saves int
}

func (m *MemorySlot) Load(context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return nil, ErrSlotEmpty
	}
	return append([]byte(nil), m.data...), nil
}

func (m *MemorySlot) Save(_ context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = append([]byte(nil), data...)
	m.saves++
	return nil
}

// Saves reports how many writes the slot has accepted.
func (m *MemorySlot) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
