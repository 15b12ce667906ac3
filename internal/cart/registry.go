package cart

import (
	"context"
	"strings"
	"sync"
	"time"

	pkgerrors "github.com/Hasan-Creations/MobiSwap/pkg/errors"
	"github.com/Hasan-Creations/MobiSwap/pkg/logger"
	"github.com/Hasan-Creations/MobiSwap/pkg/metrics"
)

const sweepJob = "cart_session_sweep"

// SlotFactory returns the durable slot for a session.
type SlotFactory func(sessionID string) Slot

// Registry owns exactly one Store per live session. Idle stores are evicted
// and rehydrate from their slot on the next access.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*session

	slots     SlotFactory
	log       *logger.Logger
	idleTTL   time.Duration
	observers []Observer
	metrics   *metrics.CartMetrics
	jobs      *metrics.JobMetrics
	now       func() time.Time
}

type session struct {
	store    *Store
	lastSeen time.Time
}

type RegistryOption func(*Registry)

func WithIdleTTL(ttl time.Duration) RegistryOption {
	return func(r *Registry) { r.idleTTL = ttl }
}

func WithRegistryObservers(obs ...Observer) RegistryOption {
	return func(r *Registry) { r.observers = append(r.observers, obs...) }
}

func WithRegistryMetrics(cart *metrics.CartMetrics, jobs *metrics.JobMetrics) RegistryOption {
	return func(r *Registry) {
		r.metrics = cart
		r.jobs = jobs
	}
}

func withClock(now func() time.Time) RegistryOption {
	return func(r *Registry) { r.now = now }
}

func NewRegistry(slots SlotFactory, logg *logger.Logger, opts ...RegistryOption) *Registry {
	if logg == nil {
		logg = logger.Nop()
	}
	r := &Registry{
		sessions: make(map[string]*session),
		slots:    slots,
		log:      logg,
		idleTTL:  30 * time.Minute,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Get returns the store for sessionID, opening it from its slot on first use.
func (r *Registry) Get(ctx context.Context, sessionID string) (*Store, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart session id is required")
	}

	if store, ok := r.touch(sessionID); ok {
		return store, nil
	}

	// Open outside the lock so a slow slot read does not stall other sessions.
	opened := Open(ctx, r.slots(sessionID), r.log,
		WithSessionID(sessionID),
		WithObservers(r.observers...),
		WithMetrics(r.metrics),
	)

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.sessions[sessionID]; ok {
		existing.lastSeen = r.now()
		return existing.store, nil
	}
	r.sessions[sessionID] = &session{store: opened, lastSeen: r.now()}
	r.metrics.SetActiveSessions(len(r.sessions))
	return opened, nil
}

func (r *Registry) touch(sessionID string) (*Store, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sess, ok := r.sessions[sessionID]
	if !ok {
		return nil, false
	}
	sess.lastSeen = r.now()
	return sess.store, true
}

// Len reports how many sessions are held in memory.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep evicts sessions idle longer than the idle TTL and returns how many were dropped.
func (r *Registry) Sweep() int {
	if r.idleTTL <= 0 {
		return 0
	}
	cutoff := r.now().Add(-r.idleTTL)

	r.mu.Lock()
	defer r.mu.Unlock()
	evicted := 0
	for id, sess := range r.sessions {
		if sess.lastSeen.Before(cutoff) {
			delete(r.sessions, id)
			evicted++
		}
	}
	r.metrics.SetActiveSessions(len(r.sessions))
	return evicted
}

// Run sweeps on every tick until ctx is cancelled.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			start := time.Now()
			evicted := r.Sweep()
			r.jobs.ObserveDuration(sweepJob, time.Since(start))
			r.jobs.IncSuccess(sweepJob)
			if evicted > 0 {
				r.log.Debug(r.log.WithField(ctx, "evicted", evicted), "cart sessions evicted")
			}
		}
	}
}
