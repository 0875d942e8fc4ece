// Package canteen holds the stateful core of a campus-directory canteen
// feature: session presence tracking and the order lifecycle.
//
// Session watching:
//   - SessionWatcher subscribes to an external AuthStream and derives
//     edge-triggered login/logout notices from the raw presence events. The
//     first event after Start is treated as cold-start replay and never
//     produces a notice. Notices are consume-once; an optional Notifier
//     receives a one-shot user notification per genuine transition.
//
// Order lifecycle:
//   - Engine owns the cart and the active/history order collections.
//     PlaceOrder snapshots the cart into an immutable order, schedules the
//     kitchen-acknowledgment auto-advance, and clears the cart.
//     OrderStateMachine centralizes the transition graph so a completed
//     order can never re-enter preparation.
//
// Activity sinks:
//   - ActivitySink is a light-weight change emitter invoked after every
//     mutating operation. Sinks run best-effort (errors are logged) so UI
//     layers can re-render without blocking cart or session updates.
package canteen
