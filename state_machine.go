package canteen

import (
	"context"
	"time"
)

// TransitionMetadata captures extra context for a transition.
type TransitionMetadata struct {
	Reason   string
	Metadata map[string]any
}

// TransitionOption customizes a single transition.
type TransitionOption func(*transitionOptions)

// WithTransitionReason sets the human-readable reason for the transition.
func WithTransitionReason(reason string) TransitionOption {
	return func(opts *transitionOptions) {
		opts.metadata.Reason = reason
	}
}

// WithTransitionMetadata merges metadata into the recorded activity event.
func WithTransitionMetadata(metadata map[string]any) TransitionOption {
	return func(opts *transitionOptions) {
		if len(metadata) == 0 {
			return
		}
		if opts.metadata.Metadata == nil {
			opts.metadata.Metadata = make(map[string]any, len(metadata))
		}
		for k, v := range metadata {
			opts.metadata.Metadata[k] = v
		}
	}
}

// OrderStateMachine defines lifecycle operations for orders.
type OrderStateMachine interface {
	Transition(ctx context.Context, order *Order, target OrderStatus, opts ...TransitionOption) error
	CanTransition(from, to OrderStatus) bool
}

// StateMachineOption customizes state machine construction.
type StateMachineOption func(*orderStateMachine)

// WithStateMachineClock injects a custom clock (useful for tests).
func WithStateMachineClock(clock func() time.Time) StateMachineOption {
	return func(sm *orderStateMachine) {
		if clock != nil {
			sm.now = clock
		}
	}
}

// WithStateMachineActivitySink sets the ActivitySink used to publish status changes.
func WithStateMachineActivitySink(sink ActivitySink) StateMachineOption {
	return func(sm *orderStateMachine) {
		sm.activitySink = normalizeActivitySink(sink)
	}
}

// WithStateMachineLogger overrides the logger used for sink failures.
func WithStateMachineLogger(logger Logger) StateMachineOption {
	return func(sm *orderStateMachine) {
		if logger != nil {
			sm.logger = logger
		}
	}
}

// NewOrderStateMachine returns the default implementation with the canteen
// transition graph: pending→preparing→ready→completed, cancellation allowed
// from any non-terminal status.
func NewOrderStateMachine(opts ...StateMachineOption) OrderStateMachine {
	sm := &orderStateMachine{
		transitions: map[OrderStatus]map[OrderStatus]struct{}{
			OrderStatusPending: {
				OrderStatusPreparing: {},
				OrderStatusCancelled: {},
			},
			OrderStatusPreparing: {
				OrderStatusReady:     {},
				OrderStatusCancelled: {},
			},
			OrderStatusReady: {
				OrderStatusCompleted: {},
				OrderStatusCancelled: {},
			},
		},
		now:          time.Now,
		activitySink: noopActivitySink{},
		logger:       defLogger{},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(sm)
		}
	}

	return sm
}

type orderStateMachine struct {
	transitions  map[OrderStatus]map[OrderStatus]struct{}
	now          func() time.Time
	activitySink ActivitySink
	logger       Logger
}

type transitionOptions struct {
	metadata TransitionMetadata
}

func (o *transitionOptions) cloneMetadata() map[string]any {
	out := map[string]any{}
	if o.metadata.Reason != "" {
		out["reason"] = o.metadata.Reason
	}
	for k, v := range o.metadata.Metadata {
		out[k] = v
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func (sm *orderStateMachine) Transition(ctx context.Context, order *Order, target OrderStatus, opts ...TransitionOption) error {
	if order == nil {
		return ErrInvalidTransition.WithMetadata(map[string]any{
			"target": target,
			"reason": "order is nil",
		})
	}

	from := order.Status
	if !target.IsValid() {
		return ErrInvalidTransition.WithMetadata(map[string]any{
			"from": from,
			"to":   target,
		})
	}

	if from == target {
		return nil
	}

	if from.IsTerminal() {
		return ErrTerminalStatus.WithMetadata(map[string]any{
			"from": from,
			"to":   target,
		})
	}

	if !sm.CanTransition(from, target) {
		return ErrInvalidTransition.WithMetadata(map[string]any{
			"from": from,
			"to":   target,
		})
	}

	options := &transitionOptions{}
	for _, opt := range opts {
		if opt != nil {
			opt(options)
		}
	}

	order.Status = target

	sm.recordActivity(ctx, ActivityEvent{
		EventType:  ActivityEventOrderStatusChanged,
		OrderID:    order.ID.String(),
		FromStatus: from,
		ToStatus:   target,
		Metadata:   options.cloneMetadata(),
		OccurredAt: sm.now(),
	})

	return nil
}

func (sm *orderStateMachine) CanTransition(from, to OrderStatus) bool {
	targets, ok := sm.transitions[from]
	if !ok {
		return false
	}
	_, ok = targets[to]
	return ok
}

func (sm *orderStateMachine) recordActivity(ctx context.Context, event ActivityEvent) {
	if err := sm.activitySink.Record(ctx, event); err != nil {
		sm.logger.Error("activity sink failed for %s: %v", event.EventType, err)
	}
}
