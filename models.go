package canteen

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/google/uuid"
)

// MenuCategory groups menu items the way the canteen board does.
type MenuCategory = string

const (
	// CategoryColdDrink covers bottled and fountain cold drinks
	CategoryColdDrink MenuCategory = "cold_drink"
	// CategoryFastFood covers the counter-service snacks and mains
	CategoryFastFood MenuCategory = "fast_food"
	// CategoryDessert covers sweets and desserts
	CategoryDessert MenuCategory = "dessert"
	// CategoryBeverage covers hot and other non-cold-drink beverages
	CategoryBeverage MenuCategory = "beverage"
)

// MenuItem is an immutable catalog entry. Items are seeded once at startup
// and never mutated afterwards.
type MenuItem struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Price       float64      `json:"price"`
	Category    MenuCategory `json:"category"`
	Available   bool         `json:"available"`
	PrepMinutes int          `json:"prep_minutes"`
	Rating      float64      `json:"rating,omitempty"`
	Ingredients []string     `json:"ingredients,omitempty"`
}

// Validate checks the invariants a catalog entry must satisfy before seeding.
func (m MenuItem) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.ID, validation.Required),
		validation.Field(&m.Name, validation.Required, validation.Length(1, 120)),
		validation.Field(&m.Price, validation.Min(0.0)),
		validation.Field(
			&m.Category,
			validation.Required,
			validation.In(CategoryColdDrink, CategoryFastFood, CategoryDessert, CategoryBeverage),
		),
		validation.Field(&m.PrepMinutes, validation.Min(0)),
		validation.Field(&m.Rating, validation.Min(0.0), validation.Max(5.0)),
	)
}

// CartLine references a menu item plus a mutable quantity. Quantity stays >= 1
// for any line present in the cart; a drop to zero removes the line.
type CartLine struct {
	ID       uuid.UUID `json:"id"`
	Item     MenuItem  `json:"item"`
	Quantity int       `json:"quantity"`
}

// Total is the line total (unit price times quantity).
func (l CartLine) Total() float64 {
	return l.Item.Price * float64(l.Quantity)
}

// OrderStatus is the order's lifecycle state.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// IsValid reports whether s is a known status.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPreparing, OrderStatusReady,
		OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether s ends the order's lifecycle.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// Order is an immutable snapshot of cart lines taken at submission time.
// Only Status changes post-creation, and only through the state machine.
type Order struct {
	ID            uuid.UUID   `json:"id"`
	Number        string      `json:"number"`
	Lines         []CartLine  `json:"lines"`
	Status        OrderStatus `json:"status"`
	SubmitterName string      `json:"submitter_name"`
	SubmitterID   string      `json:"submitter_id"`
	PlacedAt      time.Time   `json:"placed_at"`
}

// Total sums the line totals over the frozen snapshot.
func (o *Order) Total() float64 {
	var total float64
	for _, line := range o.Lines {
		total += line.Total()
	}
	return total
}

// ItemCount sums the quantities over the frozen snapshot.
func (o *Order) ItemCount() int {
	var count int
	for _, line := range o.Lines {
		count += line.Quantity
	}
	return count
}

// EstimatedReadyMinutes is the queueing heuristic shown on the order card:
// the slowest line's prep time plus two minutes per distinct line.
func (o *Order) EstimatedReadyMinutes() int {
	var maxPrep int
	for _, line := range o.Lines {
		if line.Item.PrepMinutes > maxPrep {
			maxPrep = line.Item.PrepMinutes
		}
	}
	return maxPrep + 2*len(o.Lines)
}

// IsActive reports whether the order is still in a non-terminal status.
func (o *Order) IsActive() bool {
	return !o.Status.IsTerminal()
}

// clone returns a deep copy so read accessors never leak internal state.
func (o *Order) clone() *Order {
	dup := *o
	dup.Lines = cloneLines(o.Lines)
	return &dup
}

func cloneLines(lines []CartLine) []CartLine {
	if lines == nil {
		return nil
	}
	out := make([]CartLine, len(lines))
	copy(out, lines)
	for i := range out {
		if len(out[i].Item.Ingredients) > 0 {
			out[i].Item.Ingredients = append([]string(nil), out[i].Item.Ingredients...)
		}
	}
	return out
}
