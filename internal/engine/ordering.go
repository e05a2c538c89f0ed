package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/user/quickbite/internal/nlu"
	"github.com/user/quickbite/internal/types"
)

func (e *Engine) handleOrderFood(ctx context.Context, message string, sess *types.Session) string {
	intent := e.nlu.DetectIntent(ctx, message)

	if intent == nlu.IntentCheckout {
		if len(sess.Cart) == 0 {
			return "Your cart is empty. Please add some items before checking out."
		}
		sess.State = types.StateReviewOrder
		var b strings.Builder
		b.WriteString("Here's your current order:\n")
		b.WriteString(formatCartLines(sess.Cart))
		fmt.Fprintf(&b, "\nTotal: $%.2f\n\n", CalculateTotal(sess.Cart))
		b.WriteString("Would you like to modify your order, proceed to checkout, or cancel?")
		return b.String()
	}

	items := e.nlu.ExtractItems(ctx, message, e.catalog)
	if len(items) == 0 {
		return "I didn't catch any menu items in your order. Here's what we have:\n\n" +
			e.catalog.FormatSummary() +
			"\nWhat would you like to order?"
	}

	sess.Cart = append(sess.Cart, items...)

	var b strings.Builder
	for _, item := range items {
		fmt.Fprintf(&b, "Added %d %s(s) to your cart.\n", item.Quantity, item.Name)
	}
	b.WriteString("\nWould you like to order anything else?")
	return b.String()
}

func (e *Engine) handleReviewOrder(ctx context.Context, message string, sess *types.Session) string {
	switch e.nlu.ReviewAction(ctx, message) {
	case nlu.ActionModify:
		sess.State = types.StateModifyOrder
		return "What would you like to change? You can say 'remove' followed by an item, or add new items."
	case nlu.ActionCancel:
		sess.Cart = []types.CartItem{}
		sess.State = types.StateWelcome
		return "Order canceled. Your cart has been cleared. What would you like to do?"
	default:
		// Checkout, and the conservative default when the action is unclear.
		return e.prepareCheckout(sess)
	}
}

func (e *Engine) handleModifyOrder(ctx context.Context, message string, sess *types.Session) string {
	lowered := strings.ToLower(message)

	var b strings.Builder
	if strings.Contains(lowered, "remove") || strings.Contains(lowered, "delete") || strings.Contains(lowered, "cancel") {
		if target := e.nlu.RemovalTarget(ctx, message); target != "" {
			found := false
			for i, item := range sess.Cart {
				if strings.Contains(strings.ToLower(item.Name), target) {
					sess.Cart = append(sess.Cart[:i], sess.Cart[i+1:]...)
					found = true
					break
				}
			}
			if found {
				fmt.Fprintf(&b, "Removed %s from your cart.\n\n", target)
			} else {
				fmt.Fprintf(&b, "I couldn't find %s in your cart.\n\n", target)
			}
		}
	}

	for _, item := range e.nlu.ExtractItems(ctx, message, e.catalog) {
		sess.Cart = append(sess.Cart, item)
		fmt.Fprintf(&b, "Added %d %s(s) to your cart.\n", item.Quantity, item.Name)
	}

	if len(sess.Cart) > 0 {
		b.WriteString("\nHere's your updated order:\n")
		b.WriteString(formatCartLines(sess.Cart))
		fmt.Fprintf(&b, "\nTotal: $%.2f\n\n", CalculateTotal(sess.Cart))
		b.WriteString("Would you like to make more changes, proceed to checkout, or cancel your order?")
		sess.State = types.StateReviewOrder
	} else {
		b.WriteString("Your cart is now empty. Would you like to order something else?")
		sess.State = types.StateOrderFood
	}
	return b.String()
}
