// Package menu holds the read-only menu catalog: category -> item -> details.
// The catalog is loaded once at startup and never mutated.
package menu

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// Item describes one menu entry.
type Item struct {
	Price       float64 `json:"price"`
	Description string  `json:"description"`
}

// Catalog is an immutable category -> item name -> Item mapping with a stable
// display order so formatted output is deterministic.
type Catalog struct {
	items      map[string]map[string]Item
	categories []string
	itemOrder  map[string][]string
	rawJSON    string
}

func newCatalog(items map[string]map[string]Item, categories []string) *Catalog {
	itemOrder := make(map[string][]string, len(items))
	for cat, entries := range items {
		names := make([]string, 0, len(entries))
		for name := range entries {
			names = append(names, name)
		}
		sort.Strings(names)
		itemOrder[cat] = names
	}
	raw, _ := json.Marshal(items)
	return &Catalog{
		items:      items,
		categories: categories,
		itemOrder:  itemOrder,
		rawJSON:    string(raw),
	}
}

// Default returns the built-in catalog.
func Default() *Catalog {
	items := map[string]map[string]Item{
		"pizza": {
			"margherita": {Price: 10.99, Description: "Classic cheese and tomato pizza"},
			"pepperoni":  {Price: 12.99, Description: "Pizza with pepperoni toppings"},
			"vegetarian": {Price: 11.99, Description: "Pizza loaded with fresh vegetables"},
			"hawaiian":   {Price: 13.99, Description: "Pizza with ham and pineapple"},
			"supreme":    {Price: 14.99, Description: "Pizza with multiple toppings including pepperoni, sausage, vegetables"},
		},
		"burger": {
			"classic burger":      {Price: 8.99, Description: "Simple beef patty with lettuce and tomato"},
			"cheeseburger":        {Price: 9.99, Description: "Beef patty with cheese, lettuce and tomato"},
			"veggie burger":       {Price: 8.99, Description: "Plant-based patty with lettuce and tomato"},
			"double bacon burger": {Price: 12.99, Description: "Two beef patties with bacon, cheese, lettuce and tomato"},
			"chicken burger":      {Price: 10.99, Description: "Chicken patty with lettuce and mayo"},
		},
		"sides": {
			"french fries":      {Price: 3.99, Description: "Crispy fried potatoes"},
			"onion rings":       {Price: 4.99, Description: "Battered and fried onion rings"},
			"mozzarella sticks": {Price: 5.99, Description: "Breaded and fried mozzarella cheese"},
			"garlic bread":      {Price: 3.49, Description: "Bread with garlic butter"},
			"salad":             {Price: 4.49, Description: "Fresh garden salad"},
		},
		"drinks": {
			"soda":          {Price: 1.99, Description: "Carbonated soft drink"},
			"bottled water": {Price: 1.49, Description: "Still mineral water"},
			"iced tea":      {Price: 2.49, Description: "Cold tea with ice"},
			"milkshake":     {Price: 4.99, Description: "Thick milk-based drink"},
			"coffee":        {Price: 2.29, Description: "Hot brewed coffee"},
		},
	}
	return newCatalog(items, []string{"pizza", "burger", "sides", "drinks"})
}

// Load reads a catalog from a JSON file of the form
// {"category": {"item name": {"price": 1.99, "description": "..."}}}.
// Categories are ordered alphabetically.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read menu file: %w", err)
	}
	var items map[string]map[string]Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("unmarshal menu: %w", err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("menu file %s has no categories", path)
	}
	categories := make([]string, 0, len(items))
	for cat := range items {
		categories = append(categories, cat)
	}
	sort.Strings(categories)
	return newCatalog(items, categories), nil
}

// Categories returns the category names in display order.
func (c *Catalog) Categories() []string {
	return c.categories
}

// ItemNames returns the item names for a category in display order.
func (c *Catalog) ItemNames(category string) []string {
	return c.itemOrder[category]
}

// Item returns the entry for the given category and item name.
func (c *Catalog) Item(category, name string) (Item, bool) {
	entries, ok := c.items[category]
	if !ok {
		return Item{}, false
	}
	it, ok := entries[name]
	return it, ok
}

// HasCategory reports whether the category exists.
func (c *Catalog) HasCategory(category string) bool {
	_, ok := c.items[category]
	return ok
}

// Find searches all categories for an item by exact name and returns its
// category and details.
func (c *Catalog) Find(name string) (string, Item, bool) {
	for _, cat := range c.categories {
		if it, ok := c.items[cat][name]; ok {
			return cat, it, true
		}
	}
	return "", Item{}, false
}

// JSON returns the catalog serialized once at construction, for embedding
// into model prompts.
func (c *Catalog) JSON() string {
	return c.rawJSON
}
