package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/user/quickbite/internal/nlu"
	"github.com/user/quickbite/internal/types"
)

const helpText = "Here's how you can use our system:\n\n" +
	"• You can order food by saying something like 'I'd like to order a pepperoni pizza and a soda.'\n" +
	"• You can ask about our menu by saying 'What pizzas do you have?' or 'Tell me about your burgers.'\n" +
	"• When you're done ordering, say 'checkout' or 'I'm done' to complete your order.\n\n" +
	"What would you like to do?"

func (e *Engine) handleWelcome(ctx context.Context, message string, sess *types.Session) string {
	intent := e.nlu.DetectIntent(ctx, message)
	lowered := strings.ToLower(message)

	switch {
	case intent == nlu.IntentOrder || strings.Contains(lowered, "order") || strings.Contains(lowered, "food"):
		sess.State = types.StateCustomerIdentification
		return "Would you like to order as a new customer or are you a returning customer?"
	case strings.Contains(lowered, "check") || strings.Contains(lowered, "status") || strings.Contains(lowered, "existing"):
		sess.State = types.StateCheckOrder
		return "Do you know your order ID?"
	case intent == nlu.IntentHelp || strings.Contains(lowered, "help"):
		return helpText
	default:
		sess.State = types.StateCustomerIdentification
		return "I'll help you order some food. Are you a new customer or have you ordered with us before?"
	}
}

func (e *Engine) handleCustomerIdentification(_ context.Context, message string, sess *types.Session) string {
	lowered := strings.ToLower(message)
	switch {
	case strings.Contains(lowered, "new"):
		sess.State = types.StateGetCustomerName
		return "Let's set you up as a new customer. What's your name?"
	case strings.Contains(lowered, "return") || strings.Contains(lowered, "before") || strings.Contains(lowered, "existing"):
		sess.State = types.StateGetCustomerPhone
		return "Welcome back! What's your phone number? (10 digits)"
	default:
		sess.State = types.StateGetCustomerName
		return "I'll register you as a new customer. What's your name?"
	}
}

func (e *Engine) handleGetCustomerName(_ context.Context, message string, sess *types.Session) string {
	sess.Customer.Name = message
	sess.State = types.StateGetCustomerPhone
	return fmt.Sprintf("Nice to meet you, %s. What's your phone number? (10 digits)", sess.Customer.Name)
}

func (e *Engine) handleGetCustomerPhone(ctx context.Context, message string, sess *types.Session) string {
	phone := nlu.ExtractPhone(message)
	if phone == "" {
		return "I need a valid 10-digit phone number. Please try again."
	}
	sess.Customer.Phone = phone

	existing, err := e.customers.Get(ctx, phone)
	if err == nil {
		sess.Customer = *existing
		sess.State = types.StateOrderFood
		return fmt.Sprintf("Welcome back, %s! What would you like to order today?", existing.Name)
	}
	if !errors.Is(err, types.ErrNotFound) {
		slog.Warn("customer lookup failed", "error", err)
	}

	sess.State = types.StateGetCustomerAddress
	return "What's your delivery address?"
}

func (e *Engine) handleGetCustomerAddress(_ context.Context, message string, sess *types.Session) string {
	sess.Customer.Address = message
	sess.State = types.StateGetCustomerZipcode
	return "What's your zip code? (5 digits)"
}

func (e *Engine) handleGetCustomerZipcode(ctx context.Context, message string, sess *types.Session) string {
	zip := nlu.ExtractZip(message)
	if zip == "" {
		return "I need a valid 5-digit zip code. Please try again."
	}

	sess.Customer.ZipCode = zip
	if sess.Customer.OrderHistory == nil {
		sess.Customer.OrderHistory = []string{}
	}

	if err := e.customers.Put(ctx, &sess.Customer); err != nil {
		slog.Error("saving customer failed", "error", err)
		return "I'm sorry, I couldn't save your information just now. Please try again."
	}

	sess.State = types.StateOrderFood
	return fmt.Sprintf("Thanks, %s! Your information has been saved. What would you like to order?", sess.Customer.Name)
}
