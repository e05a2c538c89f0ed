package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/user/quickbite/internal/nlu"
	"github.com/user/quickbite/internal/types"
)

// orderIDAttempts bounds retries when a generated order ID collides with an
// existing one.
const orderIDAttempts = 3

// prepareCheckout freezes the totals in the session's scratch fields and asks
// the customer to confirm the delivery address. Later cart changes do not
// affect the frozen totals until checkout is prepared again.
func (e *Engine) prepareCheckout(sess *types.Session) string {
	subtotal := CalculateTotal(sess.Cart)
	tax := subtotal * TaxRate

	sess.Subtotal = subtotal
	sess.Tax = tax
	sess.FinalTotal = subtotal + tax
	sess.State = types.StateConfirmAddress

	var b strings.Builder
	fmt.Fprintf(&b, "Your subtotal is $%.2f\n", sess.Subtotal)
	fmt.Fprintf(&b, "Tax is $%.2f\n", sess.Tax)
	fmt.Fprintf(&b, "Final total is $%.2f\n\n", sess.FinalTotal)
	fmt.Fprintf(&b, "Your order will be delivered to:\n%s, %s\n\n", sess.Customer.Address, sess.Customer.ZipCode)
	b.WriteString("Is this address correct?")
	return b.String()
}

func (e *Engine) handleConfirmAddress(_ context.Context, message string, sess *types.Session) string {
	lowered := strings.ToLower(message)
	if strings.Contains(lowered, "yes") || strings.Contains(lowered, "correct") || strings.Contains(lowered, "right") {
		sess.State = types.StateSelectPayment
		return "How would you like to pay? You can say 'credit card' or 'cash on delivery'."
	}
	sess.State = types.StateUpdateAddress
	return "Let's update your delivery address. What's the correct address?"
}

func (e *Engine) handleUpdateAddress(_ context.Context, message string, sess *types.Session) string {
	sess.Customer.Address = message
	sess.State = types.StateUpdateZipcode
	return "And what's the correct zip code? (5 digits)"
}

func (e *Engine) handleUpdateZipcode(ctx context.Context, message string, sess *types.Session) string {
	zip := nlu.ExtractZip(message)
	if zip == "" {
		return "I need a valid 5-digit zip code. Please try again."
	}
	sess.Customer.ZipCode = zip

	if sess.Customer.Phone != "" {
		if err := e.customers.Put(ctx, &sess.Customer); err != nil {
			slog.Error("saving customer failed", "error", err)
			return "I'm sorry, I couldn't save your updated address just now. Please try again."
		}
	}

	sess.State = types.StateSelectPayment
	return "How would you like to pay? You can say 'credit card' or 'cash on delivery'."
}

func (e *Engine) handleSelectPayment(ctx context.Context, message string, sess *types.Session) string {
	lowered := strings.ToLower(message)

	paymentType := "Cash on Delivery"
	paymentMsg := "You'll pay cash when your order is delivered."
	if strings.Contains(lowered, "credit") || strings.Contains(lowered, "card") {
		paymentType = "Credit Card"
		paymentMsg = "We'll process your payment when your order is delivered."
	}

	order := &types.Order{
		Customer:      sess.Customer,
		Items:         append([]types.CartItem(nil), sess.Cart...),
		Subtotal:      sess.Subtotal,
		Tax:           sess.Tax,
		Total:         sess.FinalTotal,
		PaymentMethod: paymentType,
		Status:        types.OrderStatusConfirmed,
		Timestamp:     time.Now(),
		SessionKey:    sess.SessionKey,
	}

	// The random order ID suffix can collide; regenerate on duplicate.
	var err error
	for attempt := 0; attempt < orderIDAttempts; attempt++ {
		order.OrderID = types.NewOrderID(time.Now())
		if err = e.orders.Add(ctx, order); err == nil {
			break
		}
		if !errors.Is(err, types.ErrDuplicateOrderID) {
			break
		}
	}
	if err != nil {
		slog.Error("saving order failed", "error", err)
		return "I'm sorry, I couldn't place your order just now. Please try again in a moment."
	}

	if sess.Customer.Phone != "" {
		if histErr := e.customers.AppendOrder(ctx, sess.Customer.Phone, order.OrderID); histErr != nil {
			slog.Warn("appending order history failed", "phone", sess.Customer.Phone, "error", histErr)
		}
	}

	sess.Cart = []types.CartItem{}
	sess.State = types.StateOrderCompleted

	var b strings.Builder
	fmt.Fprintf(&b, "Thank you for your order! %s\n\n", paymentMsg)
	fmt.Fprintf(&b, "Your order ID is: %s\n\n", order.OrderID)
	b.WriteString("Your order has been confirmed and will be delivered in 30-45 minutes.\n\n")
	b.WriteString("Is there anything else I can help you with today?")
	return b.String()
}

func (e *Engine) handleOrderCompleted(_ context.Context, message string, sess *types.Session) string {
	lowered := strings.ToLower(message)
	sess.State = types.StateWelcome
	if strings.Contains(lowered, "yes") || strings.Contains(lowered, "yeah") {
		return "What would you like to do?"
	}
	return "Thank you for using our service. Have a great day! Let me know if you need anything else."
}
