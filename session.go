package canteen

import (
	"context"
	"sync"
	"time"
)

// SessionWatcher translates the provider's raw presence stream into at most
// one notice per genuine login/logout transition. The first event after
// Start is cold-start replay and never produces a notice.
//
// All state lives behind a single mutex: the stream delivers events on
// arbitrary goroutines, and consumers read from the UI context.
type SessionWatcher struct {
	mu            sync.Mutex
	stream        AuthStream
	notifier      Notifier
	logger        Logger
	activitySink  ActivitySink
	now           func() time.Time
	unsubscribe   func()
	loggedIn      bool
	firstEvent    bool
	pendingLogin  bool
	pendingLogout bool
	identity      *SessionIdentity
}

// SessionWatcherOption customizes watcher construction.
type SessionWatcherOption func(*SessionWatcher)

// WithSessionNotifier sets the Notifier that receives one-shot notifications.
// Without one, notices stay pending until consumed by the caller.
func WithSessionNotifier(n Notifier) SessionWatcherOption {
	return func(w *SessionWatcher) {
		w.notifier = n
	}
}

// WithSessionLogger overrides the default logger.
func WithSessionLogger(logger Logger) SessionWatcherOption {
	return func(w *SessionWatcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithSessionActivitySink sets the ActivitySink notified on every transition.
func WithSessionActivitySink(sink ActivitySink) SessionWatcherOption {
	return func(w *SessionWatcher) {
		w.activitySink = normalizeActivitySink(sink)
	}
}

// WithSessionClock injects a custom clock (useful for tests).
func WithSessionClock(clock func() time.Time) SessionWatcherOption {
	return func(w *SessionWatcher) {
		if clock != nil {
			w.now = clock
		}
	}
}

// NewSessionWatcher returns a watcher bound to the given auth stream.
func NewSessionWatcher(stream AuthStream, opts ...SessionWatcherOption) *SessionWatcher {
	w := &SessionWatcher{
		stream:       stream,
		logger:       defLogger{},
		activitySink: noopActivitySink{},
		now:          time.Now,
		firstEvent:   true,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(w)
		}
	}

	return w
}

// Start begins observing the auth stream. Calling Start on a watcher that is
// already observing is a no-op, so the stream is never double-subscribed.
func (w *SessionWatcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.unsubscribe != nil {
		w.logger.Debug("session watcher already started")
		return nil
	}

	unsubscribe, err := w.stream.Subscribe(w.onAuthEvent)
	if err != nil {
		return err
	}

	w.unsubscribe = unsubscribe
	w.firstEvent = true
	return nil
}

// Stop unsubscribes from the auth stream. Pending notices survive Stop so a
// consumer can still drain them; the next Start treats its first event as
// cold-start replay again.
func (w *SessionWatcher) Stop() {
	w.mu.Lock()
	unsubscribe := w.unsubscribe
	w.unsubscribe = nil
	w.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}

// IsLoggedIn reports the last recorded presence.
func (w *SessionWatcher) IsLoggedIn() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.loggedIn
}

// Identity returns the display identity from the most recent signed-in event.
func (w *SessionWatcher) Identity() (SessionIdentity, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.identity == nil {
		return SessionIdentity{}, false
	}
	return *w.identity, true
}

// ConsumeLoginNotice atomically reads and clears the pending login notice.
func (w *SessionWatcher) ConsumeLoginNotice() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	pending := w.pendingLogin
	w.pendingLogin = false
	return pending
}

// ConsumeLogoutNotice atomically reads and clears the pending logout notice.
func (w *SessionWatcher) ConsumeLogoutNotice() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	pending := w.pendingLogout
	w.pendingLogout = false
	return pending
}

func (w *SessionWatcher) onAuthEvent(event AuthEvent) {
	w.mu.Lock()

	if w.firstEvent {
		w.firstEvent = false
		w.loggedIn = event.UserPresent
		w.updateIdentity(event)
		w.mu.Unlock()
		return
	}

	previous := w.loggedIn
	w.loggedIn = event.UserPresent
	w.updateIdentity(event)

	var eventType ActivityEventType
	switch {
	case !previous && event.UserPresent:
		w.pendingLogin = true
		w.pendingLogout = false
		eventType = ActivityEventSessionLogin
	case previous && !event.UserPresent:
		w.pendingLogout = true
		w.pendingLogin = false
		eventType = ActivityEventSessionLogout
	default:
		w.mu.Unlock()
		return
	}
	occurredAt := w.now()
	w.mu.Unlock()

	w.recordActivity(ActivityEvent{
		EventType:  eventType,
		OccurredAt: occurredAt,
	})
	w.dispatchNotices()
}

// updateIdentity must be called with the lock held.
func (w *SessionWatcher) updateIdentity(event AuthEvent) {
	if !event.UserPresent {
		w.identity = nil
		return
	}
	if event.IDToken == "" {
		return
	}
	identity, err := IdentityFromToken(event.IDToken)
	if err != nil {
		w.logger.Error("unable to extract identity claims: %v", err)
		return
	}
	w.identity = &identity
}

// dispatchNotices fires the one-shot notifications when a Notifier is
// configured. Delivery failures are logged and never block the stream.
func (w *SessionWatcher) dispatchNotices() {
	if w.notifier == nil {
		return
	}

	if w.ConsumeLoginNotice() {
		if err := w.notifier.Notify("Signed in", "You are now signed in to the campus portal."); err != nil {
			w.logger.Error("login notification failed: %v", err)
		}
	}

	if w.ConsumeLogoutNotice() {
		if err := w.notifier.Notify("Signed out", "You have been signed out of the campus portal."); err != nil {
			w.logger.Error("logout notification failed: %v", err)
		}
	}
}

func (w *SessionWatcher) recordActivity(event ActivityEvent) {
	if err := w.activitySink.Record(context.Background(), event); err != nil {
		w.logger.Error("activity sink failed for %s: %v", event.EventType, err)
	}
}
