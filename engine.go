package canteen

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// DefaultAutoAdvanceDelay is how long a placed order stays pending before the
// simulated kitchen acknowledgment moves it to preparing.
const DefaultAutoAdvanceDelay = 5 * time.Second

// Engine owns the cart and the active/history order collections. All
// mutation funnels through a single mutex: the auto-advance timer and the
// presentation layer read and write from foreign goroutines.
type Engine struct {
	mu               sync.Mutex
	catalog          *Catalog
	lines            []CartLine
	active           []*Order
	history          []*Order
	timers           map[uuid.UUID]*time.Timer
	seq              uint64
	sm               OrderStateMachine
	now              func() time.Time
	autoAdvanceDelay time.Duration
	activitySink     ActivitySink
	logger           Logger
}

// EngineOption customizes engine construction.
type EngineOption func(*Engine)

// WithEngineClock injects a custom clock (useful for tests).
func WithEngineClock(clock func() time.Time) EngineOption {
	return func(e *Engine) {
		if clock != nil {
			e.now = clock
		}
	}
}

// WithAutoAdvanceDelay overrides the pending→preparing delay. Zero disables
// the simulated kitchen acknowledgment entirely.
func WithAutoAdvanceDelay(delay time.Duration) EngineOption {
	return func(e *Engine) {
		e.autoAdvanceDelay = delay
	}
}

// WithEngineLogger overrides the default logger.
func WithEngineLogger(logger Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithEngineActivitySink sets the ActivitySink notified on every state change.
func WithEngineActivitySink(sink ActivitySink) EngineOption {
	return func(e *Engine) {
		e.activitySink = normalizeActivitySink(sink)
	}
}

// WithEngineStateMachine replaces the default order state machine.
func WithEngineStateMachine(sm OrderStateMachine) EngineOption {
	return func(e *Engine) {
		if sm != nil {
			e.sm = sm
		}
	}
}

// WithEngineCatalog binds a menu catalog so items can be added by id.
func WithEngineCatalog(catalog *Catalog) EngineOption {
	return func(e *Engine) {
		e.catalog = catalog
	}
}

// NewEngine returns an order lifecycle engine.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		timers:           map[uuid.UUID]*time.Timer{},
		now:              time.Now,
		autoAdvanceDelay: DefaultAutoAdvanceDelay,
		activitySink:     noopActivitySink{},
		logger:           defLogger{},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}

	if e.sm == nil {
		// Engine emits status-change events itself after releasing the lock,
		// so the default machine stays silent to avoid double emission.
		e.sm = NewOrderStateMachine(WithStateMachineClock(e.now), WithStateMachineLogger(e.logger))
	}

	return e
}

// PlaceOrder snapshots the current cart into a pending order, clears the
// cart, and schedules the simulated kitchen acknowledgment. It fails with
// ErrEmptyCart when the cart has no lines.
func (e *Engine) PlaceOrder(ctx context.Context, submitter SessionIdentity) (*Order, error) {
	if err := submitter.Validate(); err != nil {
		return nil, ErrInvalidSubmitter.WithMetadata(map[string]any{
			"validation": err.Error(),
		})
	}

	e.mu.Lock()

	if len(e.lines) == 0 {
		e.mu.Unlock()
		return nil, ErrEmptyCart
	}

	now := e.now()
	e.seq++
	number := fmt.Sprintf("C-%d-%04d", now.Unix(), e.seq)

	id, err := hashid.NewUUID(number)
	if err != nil {
		id = uuid.New()
	}

	order := &Order{
		ID:            id,
		Number:        number,
		Lines:         cloneLines(e.lines),
		Status:        OrderStatusPending,
		SubmitterName: submitter.Name,
		SubmitterID:   submitter.UserID,
		PlacedAt:      now,
	}

	e.active = append(e.active, order)
	e.lines = nil

	if e.autoAdvanceDelay > 0 {
		orderID := order.ID
		e.timers[orderID] = time.AfterFunc(e.autoAdvanceDelay, func() {
			e.autoAdvance(orderID)
		})
	}

	snapshot := order.clone()
	e.mu.Unlock()

	e.recordActivity(ctx, ActivityEvent{
		EventType:  ActivityEventOrderPlaced,
		OrderID:    order.ID.String(),
		ToStatus:   OrderStatusPending,
		OccurredAt: now,
		Metadata: map[string]any{
			"number":       snapshot.Number,
			"total":        snapshot.Total(),
			"item_count":   snapshot.ItemCount(),
			"submitter_id": submitter.UserID,
		},
	})

	return snapshot, nil
}

// AdvanceStatus moves an active order to target. Unknown ids return
// ErrOrderNotFound (benign when racing archival); transitions outside the
// state graph are rejected without mutating the order. Terminal targets move
// the order from the active set into history in the same critical section,
// so no reader ever sees it in neither or both.
func (e *Engine) AdvanceStatus(ctx context.Context, orderID uuid.UUID, target OrderStatus, opts ...TransitionOption) error {
	e.mu.Lock()

	idx := -1
	for i, order := range e.active {
		if order.ID == orderID {
			idx = i
			break
		}
	}
	if idx < 0 {
		e.mu.Unlock()
		return ErrOrderNotFound.WithMetadata(map[string]any{
			"order_id": orderID.String(),
		})
	}

	order := e.active[idx]
	from := order.Status

	if err := e.sm.Transition(ctx, order, target, opts...); err != nil {
		e.mu.Unlock()
		return err
	}

	archived := false
	if target.IsTerminal() {
		e.stopTimer(orderID)
		e.active = append(e.active[:idx], e.active[idx+1:]...)
		e.history = append(e.history, order)
		archived = true
	}

	occurredAt := e.now()
	e.mu.Unlock()

	if from == target {
		return nil
	}

	e.recordActivity(ctx, ActivityEvent{
		EventType:  ActivityEventOrderStatusChanged,
		OrderID:    orderID.String(),
		FromStatus: from,
		ToStatus:   target,
		OccurredAt: occurredAt,
	})
	if archived {
		e.recordActivity(ctx, ActivityEvent{
			EventType:  ActivityEventOrderArchived,
			OrderID:    orderID.String(),
			FromStatus: from,
			ToStatus:   target,
			OccurredAt: occurredAt,
		})
	}

	return nil
}

// CancelOrder cancels an active order and archives it.
func (e *Engine) CancelOrder(ctx context.Context, orderID uuid.UUID, opts ...TransitionOption) error {
	return e.AdvanceStatus(ctx, orderID, OrderStatusCancelled, opts...)
}

// ActiveOrders returns snapshots of every non-terminal order, oldest first.
func (e *Engine) ActiveOrders() []*Order {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]*Order, 0, len(e.active))
	for _, order := range e.active {
		out = append(out, order.clone())
	}
	return out
}

// OrderHistory returns snapshots of the archived terminal orders, oldest first.
func (e *Engine) OrderHistory() []*Order {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]*Order, 0, len(e.history))
	for _, order := range e.history {
		out = append(out, order.clone())
	}
	return out
}

// Order looks up a snapshot by id across the active and history collections.
func (e *Engine) Order(orderID uuid.UUID) (*Order, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, order := range e.active {
		if order.ID == orderID {
			return order.clone(), true
		}
	}
	for _, order := range e.history {
		if order.ID == orderID {
			return order.clone(), true
		}
	}
	return nil, false
}

// autoAdvance is the fired kitchen-acknowledgment timer. The order may have
// been cancelled or advanced while the timer was pending, so every outcome
// other than pending→preparing is ignored.
func (e *Engine) autoAdvance(orderID uuid.UUID) {
	e.mu.Lock()
	delete(e.timers, orderID)
	e.mu.Unlock()

	err := e.AdvanceStatus(context.Background(), orderID, OrderStatusPreparing,
		WithTransitionReason("kitchen acknowledgment"))
	if err != nil {
		e.logger.Debug("auto-advance skipped for %s: %v", orderID, err)
	}
}

// stopTimer must be called with the lock held.
func (e *Engine) stopTimer(orderID uuid.UUID) {
	if timer, ok := e.timers[orderID]; ok {
		timer.Stop()
		delete(e.timers, orderID)
	}
}

func (e *Engine) recordActivity(ctx context.Context, event ActivityEvent) {
	if err := e.activitySink.Record(ctx, event); err != nil {
		e.logger.Error("activity sink failed for %s: %v", event.EventType, err)
	}
}
