package canteen_test

import (
	"context"
	"sync"

	canteen "github.com/campushub/go-canteen"
	"github.com/stretchr/testify/mock"
)

// fakeAuthStream drives the watcher by hand and counts subscriptions.
type fakeAuthStream struct {
	mu           sync.Mutex
	handler      func(canteen.AuthEvent)
	subscribeErr error
	subscribes   int
	unsubscribes int
}

func (f *fakeAuthStream) Subscribe(handler func(event canteen.AuthEvent)) (func(), error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.subscribeErr != nil {
		return nil, f.subscribeErr
	}

	f.subscribes++
	f.handler = handler

	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.unsubscribes++
		f.handler = nil
	}, nil
}

func (f *fakeAuthStream) Emit(event canteen.AuthEvent) {
	f.mu.Lock()
	handler := f.handler
	f.mu.Unlock()

	if handler != nil {
		handler(event)
	}
}

func (f *fakeAuthStream) SubscribeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.subscribes
}

func (f *fakeAuthStream) UnsubscribeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.unsubscribes
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(title, body string) error {
	args := m.Called(title, body)
	return args.Error(0)
}

// recordingSink collects activity events for assertions.
type recordingSink struct {
	mu     sync.Mutex
	events []canteen.ActivityEvent
	err    error
}

func (s *recordingSink) Record(_ context.Context, event canteen.ActivityEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return s.err
}

func (s *recordingSink) Events() []canteen.ActivityEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]canteen.ActivityEvent(nil), s.events...)
}

func (s *recordingSink) EventsOfType(eventType canteen.ActivityEventType) []canteen.ActivityEvent {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []canteen.ActivityEvent
	for _, event := range s.events {
		if event.EventType == eventType {
			out = append(out, event)
		}
	}
	return out
}
