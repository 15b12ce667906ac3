// Package events carries storefront domain events to an external broker.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Hasan-Creations/MobiSwap/pkg/enums"
	"github.com/Hasan-Creations/MobiSwap/pkg/logger"
)

const envelopeVersion = 1

// Envelope is the stable wire shape of every published event.
type Envelope struct {
	Version     int             `json:"version"`
	EventID     string          `json:"eventId"`
	EventType   enums.EventType `json:"eventType"`
	AggregateID string          `json:"aggregateId"`
	OccurredAt  time.Time       `json:"occurredAt"`
	Data        json.RawMessage `json:"data"`
}

func NewEnvelope(eventType enums.EventType, aggregateID string, data any, occurredAt time.Time) (Envelope, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return Envelope{}, fmt.Errorf("encode %s payload: %w", eventType, err)
	}
	return Envelope{
		Version:     envelopeVersion,
		EventID:     uuid.NewString(),
		EventType:   eventType,
		AggregateID: aggregateID,
		OccurredAt:  occurredAt.UTC(),
		Data:        payload,
	}, nil
}

// Publisher delivers an envelope to a named topic or queue.
type Publisher interface {
	Publish(ctx context.Context, topic string, env Envelope) error
}

// Noop drops every event.
type Noop struct{}

func (Noop) Publish(context.Context, string, Envelope) error { return nil }

// Emitter routes event types to topics and publishes best-effort: failures
// are logged and never returned to the caller.
type Emitter struct {
	pub     Publisher
	topics  map[enums.EventType]string
	timeout time.Duration
	log     *logger.Logger
	now     func() time.Time
}

func NewEmitter(pub Publisher, topics map[enums.EventType]string, timeout time.Duration, logg *logger.Logger) *Emitter {
	if pub == nil {
		pub = Noop{}
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &Emitter{pub: pub, topics: topics, timeout: timeout, log: logg, now: time.Now}
}

// Emit publishes data as an event of the given type. It reports whether the
// broker accepted the event.
func (e *Emitter) Emit(ctx context.Context, eventType enums.EventType, aggregateID string, data any) bool {
	logCtx := e.log.WithFields(ctx, map[string]any{
		"event_type":   eventType.String(),
		"aggregate_id": aggregateID,
	})
	topic, ok := e.topics[eventType]
	if !ok || topic == "" {
		e.log.Warn(logCtx, "no topic configured for event")
		return false
	}
	env, err := NewEnvelope(eventType, aggregateID, data, e.now())
	if err != nil {
		e.log.Error(logCtx, "failed to build event envelope", err)
		return false
	}

	pubCtx := ctx
	if e.timeout > 0 {
		var cancel context.CancelFunc
		pubCtx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}
	if err := e.pub.Publish(pubCtx, topic, env); err != nil {
		e.log.Error(e.log.WithField(logCtx, "topic", topic), "failed to publish event", err)
		return false
	}
	e.log.Debug(e.log.WithFields(logCtx, map[string]any{"topic": topic, "event_id": env.EventID}), "event published")
	return true
}
