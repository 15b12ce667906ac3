package cart

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Hasan-Creations/MobiSwap/internal/catalog"
	"github.com/Hasan-Creations/MobiSwap/pkg/logger"
	"github.com/Hasan-Creations/MobiSwap/pkg/metrics"
)

// Store holds one shopper's cart. Mutations are serialized; every mutation
// writes the full snapshot back to the slot, best-effort.
type Store struct {
	mu    sync.RWMutex
	items []LineItem

	slot      Slot
	sessionID string
	log       *logger.Logger
	observers []Observer
	metrics   *metrics.CartMetrics
	now       func() time.Time
}

type Option func(*Store)

func WithSessionID(id string) Option {
	return func(s *Store) { s.sessionID = id }
}

func WithObservers(obs ...Observer) Option {
	return func(s *Store) { s.observers = append(s.observers, obs...) }
}

func WithMetrics(m *metrics.CartMetrics) Option {
	return func(s *Store) { s.metrics = m }
}

// Open builds a store and seeds it from the slot. A missing, unreadable or
// malformed snapshot yields an empty cart; the failure is logged, not returned.
func Open(ctx context.Context, slot Slot, logg *logger.Logger, opts ...Option) *Store {
	if logg == nil {
		logg = logger.Nop()
	}
	s := &Store{
		items: []LineItem{},
		slot:  slot,
		log:   logg,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.rehydrate(ctx)
	return s
}

func (s *Store) rehydrate(ctx context.Context) {
	if s.slot == nil {
		return
	}
	raw, err := s.slot.Load(ctx)
	if errors.Is(err, ErrSlotEmpty) {
		return
	}
	if err != nil {
		s.log.Error(s.logCtx(ctx), "failed to load cart snapshot", err)
		return
	}
	items, err := decodeItems(raw)
	if err != nil {
		s.log.Warn(s.log.WithField(s.logCtx(ctx), "error", err.Error()), "discarding malformed cart snapshot")
		return
	}
	s.items = items
}

// Add increments the quantity of an existing line or appends a new line with quantity 1.
func (s *Store) Add(ctx context.Context, product catalog.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if idx := s.indexOf(product.ID); idx >= 0 {
		s.items[idx].Quantity++
	} else {
		line := LineItem{Product: product, Quantity: 1}
		line.Specs = append([]string(nil), product.Specs...)
		s.items = append(s.items, line)
	}
	s.metrics.IncMutation("add")
	s.persistLocked(ctx)
}

// Remove deletes the line for productID. An absent id is a no-op.
func (s *Store) Remove(ctx context.Context, productID string) {
	removed, ok := s.remove(ctx, productID)
	if ok {
		s.notify(ctx, Event{
			Type:       EventItemRemoved,
			SessionID:  s.sessionID,
			ProductID:  removed.ID,
			Name:       removed.Name,
			OccurredAt: s.now(),
		})
	}
}

func (s *Store) remove(ctx context.Context, productID string) (LineItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(productID)
	if idx < 0 {
		return LineItem{}, false
	}
	removed := s.items[idx]
	s.items = append(s.items[:idx:idx], s.items[idx+1:]...)
	s.metrics.IncMutation("remove")
	s.persistLocked(ctx)
	return removed, true
}

// UpdateQuantity sets the quantity for productID. quantity <= 0 behaves like
// Remove; an absent id is a no-op.
func (s *Store) UpdateQuantity(ctx context.Context, productID string, quantity int) {
	if quantity <= 0 {
		s.Remove(ctx, productID)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(productID)
	if idx < 0 || s.items[idx].Quantity == quantity {
		return
	}
	s.items[idx].Quantity = quantity
	s.metrics.IncMutation("update_quantity")
	s.persistLocked(ctx)
}

// Clear empties the cart unconditionally.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = []LineItem{}
	s.metrics.IncMutation("clear")
	s.persistLocked(ctx)
}

// Items returns a copy of the line items in insertion order.
func (s *Store) Items() []LineItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneItems(s.items)
}

func (s *Store) TotalPrice() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return totalPrice(s.items)
}

func (s *Store) ItemCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return itemCount(s.items)
}

// Snapshot returns items and both derived values from a single consistent read.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Items:      cloneItems(s.items),
		TotalPrice: totalPrice(s.items),
		ItemCount:  itemCount(s.items),
	}
}

func (s *Store) SessionID() string {
	return s.sessionID
}

func (s *Store) indexOf(productID string) int {
	for i := range s.items {
		if s.items[i].ID == productID {
			return i
		}
	}
	return -1
}

func (s *Store) persistLocked(ctx context.Context) {
	if s.slot == nil {
		return
	}
	data, err := encodeItems(s.items)
	if err != nil {
		s.log.Error(s.logCtx(ctx), "failed to encode cart snapshot", err)
		return
	}
	if err := s.slot.Save(ctx, data); err != nil {
		s.log.Error(s.logCtx(ctx), "failed to persist cart snapshot", err)
	}
}

func (s *Store) notify(ctx context.Context, evt Event) {
	for _, obs := range s.observers {
		obs.OnCartEvent(ctx, evt)
	}
}

func (s *Store) logCtx(ctx context.Context) context.Context {
	if s.sessionID == "" {
		return ctx
	}
	return s.log.WithSessionID(ctx, s.sessionID)
}

func totalPrice(items []LineItem) int64 {
	var total int64
	for _, item := range items {
		total += item.Subtotal()
	}
	return total
}

func itemCount(items []LineItem) int {
	count := 0
	for _, item := range items {
		count += item.Quantity
	}
	return count
}
