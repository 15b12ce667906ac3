package cart

import (
	"context"
	"time"

	"github.com/Hasan-Creations/MobiSwap/pkg/logger"
	"github.com/Hasan-Creations/MobiSwap/pkg/metrics"
)

type EventType string

const EventItemRemoved EventType = "item_removed"

// Event is delivered to observers after the mutation that caused it.
type Event struct {
	Type       EventType
	SessionID  string
	ProductID  string
	Name       string
	OccurredAt time.Time
}

type Observer interface {
	OnCartEvent(ctx context.Context, evt Event)
}

type ObserverFunc func(ctx context.Context, evt Event)

func (f ObserverFunc) OnCartEvent(ctx context.Context, evt Event) { f(ctx, evt) }

// LogObserver logs removals and counts them.
func LogObserver(logg *logger.Logger, m *metrics.CartMetrics) Observer {
	return ObserverFunc(func(ctx context.Context, evt Event) {
		if evt.Type != EventItemRemoved {
			return
		}
		m.IncItemRemoved()
		if logg == nil {
			return
		}
		logCtx := logg.WithFields(ctx, map[string]any{
			"event":      "cart." + string(evt.Type),
			"product_id": evt.ProductID,
			"session_id": evt.SessionID,
		})
		logg.Info(logCtx, "removed "+evt.Name+" from cart")
	})
}
