package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode"

	"github.com/user/quickbite/internal/nlu"
	"github.com/user/quickbite/internal/types"
)

func containsDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

func (e *Engine) handleCheckOrder(ctx context.Context, message string, sess *types.Session) string {
	lowered := strings.ToLower(message)
	if strings.Contains(lowered, "yes") || strings.Contains(lowered, "yeah") || strings.Contains(lowered, "order") {
		if strings.Contains(lowered, "id") && containsDigit(message) {
			sess.TempOrderID = message
			sess.State = types.StateShowOrderDetails
			return e.dispatch(ctx, message, sess)
		}
		sess.State = types.StateGetOrderID
		return "Great! What's your order ID?"
	}
	sess.State = types.StateGetOrderPhone
	return "No problem. I can look up your orders using your phone number. What's your phone number? (10 digits)"
}

func (e *Engine) handleGetOrderID(ctx context.Context, message string, sess *types.Session) string {
	sess.TempOrderID = types.NormalizeOrderID(message)
	sess.State = types.StateShowOrderDetails
	return e.dispatch(ctx, message, sess)
}

func (e *Engine) handleShowOrderDetails(ctx context.Context, message string, sess *types.Session) string {
	orderID := sess.TempOrderID
	if orderID == "" {
		orderID = types.NormalizeOrderID(message)
	}

	order, err := e.orders.GetByID(ctx, orderID)
	if err != nil {
		if !errors.Is(err, types.ErrNotFound) {
			slog.Warn("order lookup failed", "error", err)
		}
		sess.State = types.StateOrderNotFound
		return "I couldn't find that order. Would you like to place a new order instead?"
	}

	sess.State = types.StateOrderCompleted
	var b strings.Builder
	fmt.Fprintf(&b, "I found your order %s.\n\n", order.OrderID)
	fmt.Fprintf(&b, "Status: %s\n", order.Status)
	fmt.Fprintf(&b, "Order Date: %s\n\n", order.Timestamp.Format("2006-01-02 15:04:05"))
	b.WriteString("Items ordered:\n")
	for _, item := range order.Items {
		fmt.Fprintf(&b, "• %d %s(s) - $%.2f\n", item.Quantity, item.Name, item.Price*float64(item.Quantity))
	}
	fmt.Fprintf(&b, "\nTotal: $%.2f\n\n", order.Total)
	b.WriteString("Is there anything else I can help you with?")
	return b.String()
}

func (e *Engine) handleGetOrderPhone(ctx context.Context, message string, sess *types.Session) string {
	phone := nlu.ExtractPhone(message)
	if phone == "" {
		return "I need a valid 10-digit phone number. Please try again."
	}

	customer, err := e.customers.Get(ctx, phone)
	if err == nil && len(customer.OrderHistory) > 0 {
		sess.TempPhone = phone
		sess.State = types.StateShowPhoneOrders
		return e.dispatch(ctx, message, sess)
	}
	if err != nil && !errors.Is(err, types.ErrNotFound) {
		slog.Warn("customer lookup failed", "error", err)
	}
	return "I couldn't find any orders for this phone number. Would you like to place a new order?"
}

func (e *Engine) handleShowPhoneOrders(ctx context.Context, _ string, sess *types.Session) string {
	phone := sess.TempPhone
	if phone == "" {
		return "I'm having trouble finding your phone number. Let's try again."
	}

	customer, err := e.customers.Get(ctx, phone)
	if err != nil || len(customer.OrderHistory) == 0 {
		sess.State = types.StateWelcome
		return "You don't have any previous orders. Would you like to place a new order?"
	}

	latestID := customer.OrderHistory[len(customer.OrderHistory)-1]
	latest, err := e.orders.GetByID(ctx, latestID)
	if err != nil {
		sess.State = types.StateWelcome
		return "I couldn't find details for your most recent order. Would you like to place a new order?"
	}

	sess.State = types.StateOrderCompleted
	var b strings.Builder
	fmt.Fprintf(&b, "I found %d orders for this phone number. Here's your most recent order:\n\n", len(customer.OrderHistory))
	fmt.Fprintf(&b, "Order ID: %s\n", latest.OrderID)
	fmt.Fprintf(&b, "Status: %s\n", latest.Status)
	fmt.Fprintf(&b, "Order Date: %s\n\n", latest.Timestamp.Format("2006-01-02 15:04:05"))
	b.WriteString("Items ordered:\n")
	for _, item := range latest.Items {
		fmt.Fprintf(&b, "• %d %s(s) - $%.2f\n", item.Quantity, item.Name, item.Price*float64(item.Quantity))
	}
	fmt.Fprintf(&b, "\nTotal: $%.2f\n\n", latest.Total)
	b.WriteString("Would you like to place a new order?")
	return b.String()
}

func (e *Engine) handleOrderNotFound(_ context.Context, message string, sess *types.Session) string {
	lowered := strings.ToLower(message)
	if strings.Contains(lowered, "yes") || strings.Contains(lowered, "yeah") {
		sess.State = types.StateCustomerIdentification
		return "Let's place a new order. Have you ordered with us before?"
	}
	sess.State = types.StateWelcome
	return "Is there anything else I can help you with today?"
}
