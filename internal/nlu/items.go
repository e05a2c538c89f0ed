package nlu

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/user/quickbite/internal/menu"
	"github.com/user/quickbite/internal/types"
)

const itemsPromptFormat = `You extract food orders from customer messages.
The menu is:
%s

Extract the menu items the customer wants as JSON in this exact shape:
{"items": [{"category": "...", "name": "...", "quantity": 1}]}

Only include items that appear on the menu. Use the exact lowercase menu names.
If no menu items are mentioned, return {"items": []}.
Respond with only the JSON, nothing else.`

// extractedItem is the model's view of one ordered item.
type extractedItem struct {
	Category string  `json:"category"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

type extractedItems struct {
	Items []extractedItem `json:"items"`
}

// ExtractItems pulls menu items out of the customer's message. Every returned
// item is validated against the catalog: category and price come from the
// catalog, never the model, and items not on the menu are dropped. Returns
// nil when the model is unavailable or nothing on the menu was mentioned.
func (c *Client) ExtractItems(ctx context.Context, message string, catalog *menu.Catalog) []types.CartItem {
	system := fmt.Sprintf(itemsPromptFormat, catalog.JSON())
	response, ok := c.Query(ctx, system, message)
	if !ok {
		return nil
	}

	var parsed extractedItems
	if err := json.Unmarshal([]byte(ExtractJSONPayload(response)), &parsed); err != nil {
		return nil
	}

	var items []types.CartItem
	for _, raw := range parsed.Items {
		name := strings.ToLower(strings.TrimSpace(raw.Name))
		category, item, ok := catalog.Find(name)
		if !ok {
			continue
		}
		quantity := raw.Quantity
		if quantity < 1 {
			quantity = 1
		}
		items = append(items, types.CartItem{
			Category: category,
			Name:     name,
			Price:    item.Price,
			Quantity: quantity,
		})
	}
	return items
}
