package nlu

import (
	"context"
	"strings"
)

// Intent is a coarse classification of what the customer wants to do.
type Intent string

const (
	IntentOrder    Intent = "order"
	IntentInfo     Intent = "info"
	IntentModify   Intent = "modify"
	IntentCheckout Intent = "checkout"
	IntentHelp     Intent = "help"
	IntentExit     Intent = "exit"
	IntentNone     Intent = "none"
)

const intentSystemPrompt = `You are an intent classifier for a food ordering assistant.
Classify the user's message into exactly one of these intents:
- order: the user wants to order food or add items
- info: the user is asking about the menu, items, or prices
- modify: the user wants to change or remove items from their cart
- checkout: the user is done ordering and wants to pay
- help: the user is asking how the assistant works
- exit: the user wants to end the conversation
- none: none of the above

Respond with only the intent word, nothing else.`

// DetectIntent classifies the customer's message. Falls back to IntentNone
// when the model is unavailable or the response doesn't name a known intent.
func (c *Client) DetectIntent(ctx context.Context, message string) Intent {
	response, ok := c.Query(ctx, intentSystemPrompt, message)
	if !ok {
		return IntentNone
	}

	lowered := strings.ToLower(response)
	for _, intent := range []Intent{IntentOrder, IntentInfo, IntentModify, IntentCheckout, IntentHelp, IntentExit} {
		if strings.Contains(lowered, string(intent)) {
			return intent
		}
	}
	return IntentNone
}
