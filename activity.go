package canteen

import (
	"context"
	"time"
)

// ActivityEventType enumerates supported activity categories.
type ActivityEventType string

const (
	ActivityEventSessionLogin       ActivityEventType = "session.login"
	ActivityEventSessionLogout      ActivityEventType = "session.logout"
	ActivityEventCartChanged        ActivityEventType = "cart.changed"
	ActivityEventOrderPlaced        ActivityEventType = "order.placed"
	ActivityEventOrderStatusChanged ActivityEventType = "order.status.changed"
	ActivityEventOrderArchived      ActivityEventType = "order.archived"
)

// ActivityEvent captures what changed so presentation layers can re-render.
type ActivityEvent struct {
	EventType  ActivityEventType
	OrderID    string
	FromStatus OrderStatus
	ToStatus   OrderStatus
	Metadata   map[string]any
	OccurredAt time.Time
}

// ActivitySink consumes activity events. Sinks run best-effort: failures are
// logged by the emitter and never block or roll back the state change.
type ActivitySink interface {
	Record(ctx context.Context, event ActivityEvent) error
}

// ActivitySinkFunc adapts a function to the ActivitySink interface.
type ActivitySinkFunc func(ctx context.Context, event ActivityEvent) error

// Record implements ActivitySink.
func (f ActivitySinkFunc) Record(ctx context.Context, event ActivityEvent) error {
	if f == nil {
		return nil
	}
	return f(ctx, event)
}

type noopActivitySink struct{}

func (noopActivitySink) Record(context.Context, ActivityEvent) error {
	return nil
}

func normalizeActivitySink(s ActivitySink) ActivitySink {
	if s == nil {
		return noopActivitySink{}
	}
	return s
}
