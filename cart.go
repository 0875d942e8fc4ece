package canteen

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AddToCart merges quantity into the existing line for item, or appends a new
// line. Non-positive quantities are rejected silently; the cart only ever
// holds lines with quantity >= 1.
func (e *Engine) AddToCart(item MenuItem, quantity int) {
	if quantity <= 0 {
		e.logger.Debug("ignoring non-positive cart increment %d for %q", quantity, item.ID)
		return
	}

	e.mu.Lock()
	merged := false
	for i := range e.lines {
		if e.lines[i].Item.ID == item.ID {
			e.lines[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		e.lines = append(e.lines, CartLine{
			ID:       uuid.New(),
			Item:     item,
			Quantity: quantity,
		})
	}
	occurredAt := e.now()
	e.mu.Unlock()

	e.emitCartChanged(occurredAt, "add", item.ID)
}

// AddItemByID resolves an item through the bound catalog and adds it to the
// cart. Unknown ids and unavailable items are rejected.
func (e *Engine) AddItemByID(itemID string, quantity int) error {
	if e.catalog == nil {
		return fmt.Errorf("%w: %s (no catalog bound)", ErrUnknownMenuItem, itemID)
	}

	item, ok := e.catalog.Item(itemID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownMenuItem, itemID)
	}
	if !item.Available {
		return fmt.Errorf("%w: %s", ErrItemUnavailable, itemID)
	}

	e.AddToCart(item, quantity)
	return nil
}

// RemoveFromCart deletes the matching line. Unknown line ids are a no-op;
// the UI may race a submission that already cleared the cart.
func (e *Engine) RemoveFromCart(lineID uuid.UUID) {
	e.mu.Lock()
	removed := false
	for i := range e.lines {
		if e.lines[i].ID == lineID {
			e.lines = append(e.lines[:i], e.lines[i+1:]...)
			removed = true
			break
		}
	}
	occurredAt := e.now()
	e.mu.Unlock()

	if removed {
		e.emitCartChanged(occurredAt, "remove", "")
	}
}

// UpdateQuantity sets the line's quantity; values <= 0 remove the line.
func (e *Engine) UpdateQuantity(lineID uuid.UUID, quantity int) {
	if quantity <= 0 {
		e.RemoveFromCart(lineID)
		return
	}

	e.mu.Lock()
	updated := false
	for i := range e.lines {
		if e.lines[i].ID == lineID {
			e.lines[i].Quantity = quantity
			updated = true
			break
		}
	}
	occurredAt := e.now()
	e.mu.Unlock()

	if updated {
		e.emitCartChanged(occurredAt, "update", "")
	}
}

// ClearCart empties the cart unconditionally.
func (e *Engine) ClearCart() {
	e.mu.Lock()
	hadLines := len(e.lines) > 0
	e.lines = nil
	occurredAt := e.now()
	e.mu.Unlock()

	if hadLines {
		e.emitCartChanged(occurredAt, "clear", "")
	}
}

// CartLines returns a snapshot of the current cart lines.
func (e *Engine) CartLines() []CartLine {
	e.mu.Lock()
	defer e.mu.Unlock()
	return cloneLines(e.lines)
}

// CartSubtotal sums the line totals of the current cart.
func (e *Engine) CartSubtotal() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	var subtotal float64
	for _, line := range e.lines {
		subtotal += line.Total()
	}
	return subtotal
}

// CartItemCount sums the quantities of the current cart.
func (e *Engine) CartItemCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	var count int
	for _, line := range e.lines {
		count += line.Quantity
	}
	return count
}

func (e *Engine) emitCartChanged(occurredAt time.Time, op, itemID string) {
	metadata := map[string]any{"op": op}
	if itemID != "" {
		metadata["item_id"] = itemID
	}
	e.recordActivity(context.Background(), ActivityEvent{
		EventType:  ActivityEventCartChanged,
		Metadata:   metadata,
		OccurredAt: occurredAt,
	})
}
