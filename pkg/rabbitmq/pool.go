package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/Hasan-Creations/MobiSwap/pkg/config"
	"github.com/Hasan-Creations/MobiSwap/pkg/logger"
)

type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	IsClosed() bool
	Close() error
}

var errPoolClosed = errors.New("rabbitmq channel pool closed")

// ChannelPool hands out pre-opened channels, each with the event queues declared.
type ChannelPool struct {
	conn     *amqp.Connection
	open     func() (channel, error)
	channels chan channel

	mu     sync.Mutex
	closed bool
}

// NewChannelPool dials the broker and pre-creates size channels.
func NewChannelPool(ctx context.Context, cfg config.RabbitMQConfig, queues []string, logg *logger.Logger) (*ChannelPool, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	open := func() (channel, error) {
		ch, err := conn.Channel()
		if err != nil {
			return nil, err
		}
		for _, q := range queues {
			if _, err := ch.QueueDeclare(q, true, false, false, false, nil); err != nil {
				_ = ch.Close()
				return nil, fmt.Errorf("failed to declare queue %s: %w", q, err)
			}
		}
		return ch, nil
	}

	pool, err := newPool(open, cfg.PoolSize)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	pool.conn = conn

	if logg != nil {
		logg.Info(logg.WithField(ctx, "channels", cap(pool.channels)), "rabbitmq channel pool created")
	}
	return pool, nil
}

func newPool(open func() (channel, error), size int) (*ChannelPool, error) {
	if size <= 0 {
		size = 1
	}
	pool := &ChannelPool{
		open:     open,
		channels: make(chan channel, size),
	}
	for i := 0; i < size; i++ {
		ch, err := open()
		if err != nil {
			pool.closeChannels()
			return nil, fmt.Errorf("failed to create channel %d: %w", i, err)
		}
		pool.channels <- ch
	}
	return pool, nil
}

// get waits for a free channel, replacing it if the broker closed it.
func (p *ChannelPool) get(ctx context.Context) (channel, error) {
	select {
	case ch, ok := <-p.channels:
		if !ok {
			return nil, errPoolClosed
		}
		if ch.IsClosed() {
			return p.open()
		}
		return ch, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (p *ChannelPool) put(ch channel) {
	if ch == nil || ch.IsClosed() {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		_ = ch.Close()
		return
	}
	select {
	case p.channels <- ch:
	default:
		_ = ch.Close()
	}
}

// Ping reports whether the underlying connection is still open.
func (p *ChannelPool) Ping(context.Context) error {
	if p == nil || p.conn == nil || p.conn.IsClosed() {
		return errors.New("rabbitmq connection closed")
	}
	return nil
}

// Close closes all channels and the connection.
func (p *ChannelPool) Close() error {
	p.closeChannels()
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

func (p *ChannelPool) closeChannels() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	close(p.channels)
	for ch := range p.channels {
		_ = ch.Close()
	}
}
