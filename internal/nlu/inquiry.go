package nlu

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/user/quickbite/internal/menu"
)

const inquiryPromptFormat = `You detect menu questions for a food ordering assistant.
The menu categories are: %s.

Decide whether the user is asking about the menu (categories, specific items,
or prices) rather than placing an order. Respond as JSON in this exact shape:
{"is_menu_inquiry": true, "category": "pizza", "item": ""}

Set "category" when they ask about a whole category, "item" when they ask
about a specific dish. Both may be empty for a general menu question.
If the message is not a menu question, respond {"is_menu_inquiry": false}.
Respond with only the JSON, nothing else.`

// MenuInquiry describes a detected menu question.
type MenuInquiry struct {
	IsMenuInquiry bool   `json:"is_menu_inquiry"`
	Category      string `json:"category"`
	Item          string `json:"item"`
}

// DetectMenuInquiry asks the model whether the message is a menu question.
// Returns nil when the model is unavailable, the response can't be parsed, or
// the message is not a menu inquiry.
func (c *Client) DetectMenuInquiry(ctx context.Context, message string, catalog *menu.Catalog) *MenuInquiry {
	system := fmt.Sprintf(inquiryPromptFormat, strings.Join(catalog.Categories(), ", "))
	response, ok := c.Query(ctx, system, message)
	if !ok {
		return nil
	}

	var inquiry MenuInquiry
	if err := json.Unmarshal([]byte(ExtractJSONPayload(response)), &inquiry); err != nil {
		return nil
	}
	if !inquiry.IsMenuInquiry {
		return nil
	}
	inquiry.Category = strings.ToLower(strings.TrimSpace(inquiry.Category))
	inquiry.Item = strings.ToLower(strings.TrimSpace(inquiry.Item))
	return &inquiry
}
