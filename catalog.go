package canteen

import (
	"fmt"
)

// Catalog holds the read-only menu seeded once at startup.
type Catalog struct {
	items []MenuItem
	byID  map[string]MenuItem
}

// NewCatalog validates and seeds the catalog from the given source.
func NewCatalog(source MenuSource) (*Catalog, error) {
	if source == nil {
		source = MenuSourceFunc(SampleMenu)
	}

	items := source.MenuItems()
	byID := make(map[string]MenuItem, len(items))
	seeded := make([]MenuItem, 0, len(items))

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, fmt.Errorf("invalid menu item %q: %w", item.ID, err)
		}
		if _, exists := byID[item.ID]; exists {
			return nil, fmt.Errorf("duplicate menu item id %q", item.ID)
		}
		byID[item.ID] = item
		seeded = append(seeded, item)
	}

	return &Catalog{items: seeded, byID: byID}, nil
}

// Items returns a copy of every seeded item in seed order.
func (c *Catalog) Items() []MenuItem {
	return append([]MenuItem(nil), c.items...)
}

// Item looks up a single entry by id.
func (c *Catalog) Item(id string) (MenuItem, bool) {
	item, ok := c.byID[id]
	return item, ok
}

// ByCategory returns the items in a category, in seed order.
func (c *Catalog) ByCategory(category MenuCategory) []MenuItem {
	var out []MenuItem
	for _, item := range c.items {
		if item.Category == category {
			out = append(out, item)
		}
	}
	return out
}

// Available returns the items currently offered at the counter.
func (c *Catalog) Available() []MenuItem {
	var out []MenuItem
	for _, item := range c.items {
		if item.Available {
			out = append(out, item)
		}
	}
	return out
}

// SampleMenu is the built-in menu the campus app ships with. Hosts with a
// real menu feed pass their own MenuSource to NewCatalog instead.
func SampleMenu() []MenuItem {
	return []MenuItem{
		{
			ID:          "cold-coffee",
			Name:        "Cold Coffee",
			Description: "Blended iced coffee with milk and a scoop of ice cream",
			Price:       60,
			Category:    CategoryColdDrink,
			Available:   true,
			PrepMinutes: 5,
			Rating:      4.4,
			Ingredients: []string{"coffee", "milk", "sugar", "ice cream"},
		},
		{
			ID:          "fresh-lime-soda",
			Name:        "Fresh Lime Soda",
			Description: "Sweet and salted lime soda",
			Price:       40,
			Category:    CategoryColdDrink,
			Available:   true,
			PrepMinutes: 3,
			Rating:      4.1,
			Ingredients: []string{"lime", "soda", "sugar", "salt"},
		},
		{
			ID:          "veg-sandwich",
			Name:        "Veg Sandwich",
			Description: "Grilled sandwich with vegetables and cheese",
			Price:       50,
			Category:    CategoryFastFood,
			Available:   true,
			PrepMinutes: 10,
			Rating:      4.0,
			Ingredients: []string{"bread", "cheese", "tomato", "cucumber", "onion"},
		},
		{
			ID:          "samosa-plate",
			Name:        "Samosa Plate",
			Description: "Two samosas with mint and tamarind chutney",
			Price:       30,
			Category:    CategoryFastFood,
			Available:   true,
			PrepMinutes: 8,
			Rating:      4.6,
			Ingredients: []string{"potato", "peas", "flour", "spices"},
		},
		{
			ID:          "paneer-roll",
			Name:        "Paneer Roll",
			Description: "Paneer tikka wrapped in a rumali roti",
			Price:       80,
			Category:    CategoryFastFood,
			Available:   true,
			PrepMinutes: 12,
			Rating:      4.5,
			Ingredients: []string{"paneer", "roti", "onion", "capsicum"},
		},
		{
			ID:          "gulab-jamun",
			Name:        "Gulab Jamun",
			Description: "Two pieces soaked in warm sugar syrup",
			Price:       35,
			Category:    CategoryDessert,
			Available:   true,
			PrepMinutes: 2,
			Rating:      4.7,
			Ingredients: []string{"khoya", "sugar", "cardamom"},
		},
		{
			ID:          "masala-chai",
			Name:        "Masala Chai",
			Description: "Spiced milk tea",
			Price:       15,
			Category:    CategoryBeverage,
			Available:   true,
			PrepMinutes: 4,
			Rating:      4.8,
			Ingredients: []string{"tea", "milk", "ginger", "cardamom"},
		},
		{
			ID:          "filter-coffee",
			Name:        "Filter Coffee",
			Description: "South Indian filter coffee",
			Price:       25,
			Category:    CategoryBeverage,
			Available:   false,
			PrepMinutes: 6,
			Rating:      4.3,
			Ingredients: []string{"coffee", "milk", "sugar"},
		},
	}
}
