package nlu

import (
	"context"
	"strings"
)

// Action is what the customer wants to do with a cart under review.
type Action string

const (
	ActionModify   Action = "modify"
	ActionCheckout Action = "checkout"
	ActionCancel   Action = "cancel"
	ActionUnclear  Action = "unclear"
)

const actionSystemPrompt = `A customer is reviewing their food order. Classify their response
into exactly one of these actions:
- modify: they want to change, add, or remove items
- checkout: they are happy with the order and want to proceed
- cancel: they want to abandon the order
- unclear: you cannot tell

Respond with only the action word, nothing else.`

// ReviewAction classifies the customer's response while they review their
// cart. Falls back to ActionUnclear when the model is unavailable.
func (c *Client) ReviewAction(ctx context.Context, message string) Action {
	response, ok := c.Query(ctx, actionSystemPrompt, message)
	if !ok {
		return ActionUnclear
	}

	lowered := strings.ToLower(response)
	for _, action := range []Action{ActionModify, ActionCheckout, ActionCancel} {
		if strings.Contains(lowered, string(action)) {
			return action
		}
	}
	return ActionUnclear
}

const removalSystemPrompt = `A customer wants to remove an item from their food order.
Extract the name of the item they want removed. Respond with only the item
name in lowercase, nothing else.`

// RemovalTarget extracts which item the customer wants taken out of the cart.
// Returns "" when the model is unavailable.
func (c *Client) RemovalTarget(ctx context.Context, message string) string {
	response, ok := c.Query(ctx, removalSystemPrompt, message)
	if !ok {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(response))
}
