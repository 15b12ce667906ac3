package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/Hasan-Creations/MobiSwap/pkg/events"
)

// Publisher writes envelopes to durable queues named after the event topic.
type Publisher struct {
	pool *ChannelPool
}

func NewPublisher(pool *ChannelPool) *Publisher {
	return &Publisher{pool: pool}
}

func (p *Publisher) Publish(ctx context.Context, queue string, env events.Envelope) error {
	msg, err := newPublishing(env)
	if err != nil {
		return err
	}

	ch, err := p.pool.get(ctx)
	if err != nil {
		return fmt.Errorf("failed to get channel from pool: %w", err)
	}
	defer p.pool.put(ch)

	if err := ch.PublishWithContext(ctx, "", queue, false, false, msg); err != nil {
		return fmt.Errorf("failed to publish %s: %w", env.EventType, err)
	}
	return nil
}

func newPublishing(env events.Envelope) (amqp.Publishing, error) {
	body, err := json.Marshal(env)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("encode envelope: %w", err)
	}
	return amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		MessageId:    env.EventID,
		Type:         env.EventType.String(),
		Timestamp:    env.OccurredAt,
		Body:         body,
	}, nil
}
