package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hasan-Creations/MobiSwap/pkg/enums"
	"github.com/Hasan-Creations/MobiSwap/pkg/logger"
)

type recordingPublisher struct {
	topics    []string
	envelopes []Envelope
	err       error
}

func (r *recordingPublisher) Publish(_ context.Context, topic string, env Envelope) error {
	r.topics = append(r.topics, topic)
	r.envelopes = append(r.envelopes, env)
	return r.err
}

func TestNewEnvelope(t *testing.T) {
	at := time.Date(2025, 6, 12, 9, 0, 0, 0, time.FixedZone("PKT", 5*3600))
	env, err := NewEnvelope(enums.EventTypeOrderPlaced, "MS-1", map[string]int{"total": 3097}, at)
	require.NoError(t, err)
	assert.Equal(t, 1, env.Version)
	assert.NotEmpty(t, env.EventID)
	assert.Equal(t, "MS-1", env.AggregateID)
	assert.Equal(t, time.UTC, env.OccurredAt.Location())
	assert.JSONEq(t, `{"total":3097}`, string(env.Data))

	encoded, err := json.Marshal(env)
	require.NoError(t, err)
	assert.Contains(t, string(encoded), `"eventType":"order.placed"`)
}

func TestEmitterRoutesByType(t *testing.T) {
	pub := &recordingPublisher{}
	emitter := NewEmitter(pub, map[enums.EventType]string{
		enums.EventTypeOrderPlaced: "ms-order-events",
	}, time.Second, logger.Nop())

	ok := emitter.Emit(context.Background(), enums.EventTypeOrderPlaced, "MS-1", struct{}{})
	assert.True(t, ok)
	require.Len(t, pub.topics, 1)
	assert.Equal(t, "ms-order-events", pub.topics[0])

	ok = emitter.Emit(context.Background(), enums.EventTypeExchangeRequested, "x", struct{}{})
	assert.False(t, ok)
	assert.Len(t, pub.topics, 1)
}

func TestEmitterSwallowsPublishErrors(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("broker down")}
	emitter := NewEmitter(pub, map[enums.EventType]string{
		enums.EventTypeExchangeRequested: "ms-exchange-events",
	}, 0, nil)

	assert.False(t, emitter.Emit(context.Background(), enums.EventTypeExchangeRequested, "id", map[string]string{}))
	assert.Len(t, pub.envelopes, 1)
}

func TestNoopPublisher(t *testing.T) {
	emitter := NewEmitter(nil, map[enums.EventType]string{enums.EventTypeOrderPlaced: "t"}, 0, nil)
	assert.True(t, emitter.Emit(context.Background(), enums.EventTypeOrderPlaced, "id", nil))
}
