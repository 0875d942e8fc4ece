package canteen

import (
	"fmt"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Error(format string, args ...any)
}

// AuthEvent is a single raw presence event delivered by the provider.
type AuthEvent struct {
	// UserPresent reports whether a user is currently signed in.
	UserPresent bool
	// IDToken optionally carries the provider's ID token so display claims
	// can be surfaced. Empty on signed-out events.
	IDToken string
}

// AuthStream is the external authentication collaborator. Subscribe registers
// a handler for every raw presence event and returns an unsubscribe function.
// Events may be delivered on arbitrary goroutines.
type AuthStream interface {
	Subscribe(handler func(event AuthEvent)) (func(), error)
}

// Notifier delivers a user-visible notification. Permission prompts and
// OS-level delivery are the implementation's concern.
type Notifier interface {
	Notify(title, body string) error
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(title, body string) error

// Notify implements Notifier.
func (f NotifierFunc) Notify(title, body string) error {
	if f == nil {
		return nil
	}
	return f(title, body)
}

// MenuSource supplies the static menu item list seeded into a Catalog.
type MenuSource interface {
	MenuItems() []MenuItem
}

// MenuSourceFunc adapts a function to the MenuSource interface.
type MenuSourceFunc func() []MenuItem

// MenuItems implements MenuSource.
func (f MenuSourceFunc) MenuItems() []MenuItem {
	if f == nil {
		return nil
	}
	return f()
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] CANTEEN "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] CANTEEN "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] CANTEEN "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
