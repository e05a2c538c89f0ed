package engine

import (
	"context"
	"errors"
	"math"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/user/quickbite/internal/menu"
	"github.com/user/quickbite/internal/nlu"
	"github.com/user/quickbite/internal/state"
	"github.com/user/quickbite/internal/types"
	"github.com/user/quickbite/pkg/llm"
)

// fakeProvider answers model calls from canned fields, routed on markers in
// the system prompt. When down, every call fails with a non-retryable error
// so fallback paths run immediately.
type fakeProvider struct {
	down    bool
	intent  string
	inquiry string
	items   string
	action  string
	removal string
}

func (p *fakeProvider) Complete(_ context.Context, messages []llm.Message) (*llm.Response, error) {
	if p.down {
		return nil, errors.New("invalid: provider down")
	}
	var system string
	for _, msg := range messages {
		if msg.Role == "system" {
			system = msg.Content
		}
	}
	var content string
	switch {
	case strings.Contains(system, "intent classifier"):
		content = p.intent
	case strings.Contains(system, "detect menu questions"):
		content = p.inquiry
	case strings.Contains(system, "extract food orders"):
		content = p.items
	case strings.Contains(system, "reviewing their food order"):
		content = p.action
	case strings.Contains(system, "remove an item"):
		content = p.removal
	}
	return &llm.Response{Content: content}, nil
}

type fixture struct {
	engine    *Engine
	provider  *fakeProvider
	orders    *state.OrderStore
	customers *state.CustomerStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	provider := &fakeProvider{inquiry: `{"is_menu_inquiry": false}`}
	orders := state.NewOrderStore(dir)
	customers := state.NewCustomerStore(dir)
	client := nlu.NewClient(provider, "test-model", time.Second, 0)
	return &fixture{
		engine:    New(menu.Default(), orders, customers, client),
		provider:  provider,
		orders:    orders,
		customers: customers,
	}
}

func newSession() *types.Session {
	return &types.Session{
		UserID:     types.NewSessionID(),
		SessionKey: types.NewSessionKey("test", "1"),
		State:      types.StateWelcome,
		Cart:       []types.CartItem{},
	}
}

func TestNewCustomerFullOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sess := newSession()

	f.provider.intent = "order"
	resp := f.engine.ProcessMessage(ctx, "I'd like to order some food", sess)
	if sess.State != types.StateCustomerIdentification {
		t.Fatalf("expected customer_identification, got %s", sess.State)
	}

	f.engine.ProcessMessage(ctx, "I'm new", sess)
	if sess.State != types.StateGetCustomerName {
		t.Fatalf("expected get_customer_name, got %s", sess.State)
	}

	resp = f.engine.ProcessMessage(ctx, "Alex Smith", sess)
	if !strings.Contains(resp, "Nice to meet you, Alex Smith") {
		t.Errorf("unexpected name response: %q", resp)
	}

	f.engine.ProcessMessage(ctx, "5551234567", sess)
	if sess.State != types.StateGetCustomerAddress {
		t.Fatalf("expected get_customer_address, got %s", sess.State)
	}

	f.engine.ProcessMessage(ctx, "1 Main St", sess)
	f.engine.ProcessMessage(ctx, "90210", sess)
	if sess.State != types.StateOrderFood {
		t.Fatalf("expected order_food, got %s", sess.State)
	}

	// Customer record persisted at onboarding
	if _, err := f.customers.Get(ctx, "5551234567"); err != nil {
		t.Fatalf("customer not persisted: %v", err)
	}

	f.provider.intent = "none"
	f.provider.items = `{"items": [
		{"category": "pizza", "name": "pepperoni", "quantity": 1},
		{"category": "drinks", "name": "soda", "quantity": 1}
	]}`
	resp = f.engine.ProcessMessage(ctx, "one pepperoni pizza and a soda", sess)
	if len(sess.Cart) != 2 {
		t.Fatalf("expected 2 cart lines, got %d", len(sess.Cart))
	}
	if !strings.Contains(resp, "Added 1 pepperoni(s)") {
		t.Errorf("unexpected add response: %q", resp)
	}

	f.provider.intent = "checkout"
	resp = f.engine.ProcessMessage(ctx, "checkout", sess)
	if sess.State != types.StateReviewOrder {
		t.Fatalf("expected review_order, got %s", sess.State)
	}
	if !strings.Contains(resp, "Total: $14.98") {
		t.Errorf("expected subtotal 14.98 in review, got %q", resp)
	}

	f.provider.action = "checkout"
	resp = f.engine.ProcessMessage(ctx, "proceed", sess)
	if sess.State != types.StateConfirmAddress {
		t.Fatalf("expected confirm_address, got %s", sess.State)
	}
	if !strings.Contains(resp, "Final total is $16.18") {
		t.Errorf("expected final total 16.18, got %q", resp)
	}
	if math.Abs(sess.Subtotal-14.98) > 1e-9 || math.Abs(sess.FinalTotal-14.98*1.08) > 1e-9 {
		t.Errorf("scratch totals wrong: %v %v", sess.Subtotal, sess.FinalTotal)
	}

	f.engine.ProcessMessage(ctx, "yes", sess)
	if sess.State != types.StateSelectPayment {
		t.Fatalf("expected select_payment, got %s", sess.State)
	}

	resp = f.engine.ProcessMessage(ctx, "credit card", sess)
	if sess.State != types.StateOrderCompleted {
		t.Fatalf("expected order_completed, got %s", sess.State)
	}
	if len(sess.Cart) != 0 {
		t.Error("cart should be cleared after checkout")
	}

	idPattern := regexp.MustCompile(`ORD-\d{14}-\d{4}`)
	orderID := idPattern.FindString(resp)
	if orderID == "" {
		t.Fatalf("no order ID in response: %q", resp)
	}

	order, err := f.orders.GetByID(ctx, orderID)
	if err != nil {
		t.Fatal(err)
	}
	if order.Status != types.OrderStatusConfirmed {
		t.Errorf("expected Confirmed, got %s", order.Status)
	}
	if order.PaymentMethod != "Credit Card" {
		t.Errorf("expected Credit Card, got %s", order.PaymentMethod)
	}
	if len(order.Items) != 2 {
		t.Errorf("expected 2 order items, got %d", len(order.Items))
	}

	// Order appended to the customer's history
	customer, err := f.customers.Get(ctx, "5551234567")
	if err != nil {
		t.Fatal(err)
	}
	if len(customer.OrderHistory) != 1 || customer.OrderHistory[0] != orderID {
		t.Errorf("order history not updated: %v", customer.OrderHistory)
	}
}

func TestMalformedZipRetries(t *testing.T) {
	f := newFixture(t)
	sess := newSession()
	sess.State = types.StateGetCustomerZipcode
	sess.Customer = types.Customer{Name: "Alex Smith", Phone: "5551234567", Address: "1 Main St"}

	resp := f.engine.ProcessMessage(context.Background(), "abc", sess)
	if sess.State != types.StateGetCustomerZipcode {
		t.Errorf("state must not change on malformed zip, got %s", sess.State)
	}
	if !strings.Contains(resp, "valid 5-digit zip code") {
		t.Errorf("unexpected response: %q", resp)
	}
}

func TestPhoneLookupNoHistory(t *testing.T) {
	f := newFixture(t)
	sess := newSession()
	sess.State = types.StateGetOrderPhone

	resp := f.engine.ProcessMessage(context.Background(), "5550000000", sess)
	if sess.State != types.StateGetOrderPhone {
		t.Errorf("expected to stay in get_order_phone, got %s", sess.State)
	}
	if !strings.Contains(resp, "couldn't find any orders") {
		t.Errorf("unexpected response: %q", resp)
	}
}

func TestOrderIDRoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	order := &types.Order{
		OrderID:   "ORD-20250314092653-1234",
		Items:     []types.CartItem{{Category: "pizza", Name: "pepperoni", Price: 12.99, Quantity: 1}},
		Total:     14.03,
		Status:    types.OrderStatusConfirmed,
		Timestamp: time.Now(),
	}
	if err := f.orders.Add(ctx, order); err != nil {
		t.Fatal(err)
	}

	// Lowercase with stray spacing still resolves through normalization
	sess := newSession()
	sess.State = types.StateGetOrderID
	resp := f.engine.ProcessMessage(ctx, "ord - 20250314092653 - 1234", sess)
	if sess.State != types.StateOrderCompleted {
		t.Fatalf("expected order_completed, got %s; response %q", sess.State, resp)
	}
	if !strings.Contains(resp, "ORD-20250314092653-1234") || !strings.Contains(resp, "Status: Confirmed") {
		t.Errorf("unexpected details: %q", resp)
	}
}

func TestOrderLookupMiss(t *testing.T) {
	f := newFixture(t)
	sess := newSession()
	sess.State = types.StateGetOrderID

	resp := f.engine.ProcessMessage(context.Background(), "ORD-19990101000000-0000", sess)
	if sess.State != types.StateOrderNotFound {
		t.Fatalf("expected order_not_found, got %s", sess.State)
	}
	if !strings.Contains(resp, "couldn't find that order") {
		t.Errorf("unexpected response: %q", resp)
	}

	// "yes" starts a fresh order
	f.engine.ProcessMessage(context.Background(), "yes", sess)
	if sess.State != types.StateCustomerIdentification {
		t.Errorf("expected customer_identification, got %s", sess.State)
	}
}

func TestWelcomeFallsBackToKeywordsWhenModelDown(t *testing.T) {
	f := newFixture(t)
	f.provider.down = true
	sess := newSession()

	f.engine.ProcessMessage(context.Background(), "I want food", sess)
	if sess.State != types.StateCustomerIdentification {
		t.Errorf("keyword fallback failed, got %s", sess.State)
	}
}

func TestOrderFoodModelDownShowsMenuSummary(t *testing.T) {
	f := newFixture(t)
	f.provider.down = true
	sess := newSession()
	sess.State = types.StateOrderFood

	resp := f.engine.ProcessMessage(context.Background(), "a large pepperoni please", sess)
	if sess.State != types.StateOrderFood {
		t.Errorf("state must not change, got %s", sess.State)
	}
	if !strings.Contains(resp, "I didn't catch any menu items") {
		t.Errorf("unexpected response: %q", resp)
	}
	if !strings.Contains(resp, "Pizza:") {
		t.Errorf("expected menu summary, got %q", resp)
	}
}

func TestReviewDefaultsToCheckoutWhenUnclear(t *testing.T) {
	f := newFixture(t)
	f.provider.action = "hmm not sure"
	sess := newSession()
	sess.State = types.StateReviewOrder
	sess.Customer = types.Customer{Address: "1 Main St", ZipCode: "90210"}
	sess.Cart = []types.CartItem{{Category: "drinks", Name: "soda", Price: 1.99, Quantity: 1}}

	f.engine.ProcessMessage(context.Background(), "mumble", sess)
	if sess.State != types.StateConfirmAddress {
		t.Errorf("unclear review action should default to checkout, got %s", sess.State)
	}
}

func TestReviewCancelClearsCart(t *testing.T) {
	f := newFixture(t)
	f.provider.action = "cancel"
	sess := newSession()
	sess.State = types.StateReviewOrder
	sess.Cart = []types.CartItem{{Category: "drinks", Name: "soda", Price: 1.99, Quantity: 1}}

	f.engine.ProcessMessage(context.Background(), "forget it", sess)
	if sess.State != types.StateWelcome {
		t.Errorf("expected welcome, got %s", sess.State)
	}
	if len(sess.Cart) != 0 {
		t.Error("cart should be cleared on cancel")
	}
}

func TestModifyOrderRemoval(t *testing.T) {
	f := newFixture(t)
	f.provider.removal = "soda"
	f.provider.items = `{"items": []}`
	sess := newSession()
	sess.State = types.StateModifyOrder
	sess.Cart = []types.CartItem{
		{Category: "pizza", Name: "pepperoni", Price: 12.99, Quantity: 1},
		{Category: "drinks", Name: "soda", Price: 1.99, Quantity: 1},
	}

	resp := f.engine.ProcessMessage(context.Background(), "remove the soda", sess)
	if len(sess.Cart) != 1 || sess.Cart[0].Name != "pepperoni" {
		t.Fatalf("unexpected cart after removal: %+v", sess.Cart)
	}
	if !strings.Contains(resp, "Removed soda from your cart") {
		t.Errorf("unexpected response: %q", resp)
	}
	if sess.State != types.StateReviewOrder {
		t.Errorf("non-empty cart should return to review_order, got %s", sess.State)
	}
}

func TestModifyOrderEmptiesCart(t *testing.T) {
	f := newFixture(t)
	f.provider.removal = "soda"
	f.provider.items = `{"items": []}`
	sess := newSession()
	sess.State = types.StateModifyOrder
	sess.Cart = []types.CartItem{{Category: "drinks", Name: "soda", Price: 1.99, Quantity: 1}}

	resp := f.engine.ProcessMessage(context.Background(), "remove the soda", sess)
	if len(sess.Cart) != 0 {
		t.Fatalf("expected empty cart, got %+v", sess.Cart)
	}
	if sess.State != types.StateOrderFood {
		t.Errorf("empty cart should return to order_food, got %s", sess.State)
	}
	if !strings.Contains(resp, "Your cart is now empty") {
		t.Errorf("unexpected response: %q", resp)
	}
}

func TestEmptyCartCheckoutStays(t *testing.T) {
	f := newFixture(t)
	f.provider.intent = "checkout"
	sess := newSession()
	sess.State = types.StateOrderFood

	resp := f.engine.ProcessMessage(context.Background(), "checkout", sess)
	if sess.State != types.StateOrderFood {
		t.Errorf("expected to stay in order_food, got %s", sess.State)
	}
	if !strings.Contains(resp, "Your cart is empty") {
		t.Errorf("unexpected response: %q", resp)
	}
}

func TestCheckoutTotalsFrozen(t *testing.T) {
	f := newFixture(t)
	f.provider.action = "checkout"
	sess := newSession()
	sess.State = types.StateReviewOrder
	sess.Customer = types.Customer{Address: "1 Main St", ZipCode: "90210"}
	sess.Cart = []types.CartItem{{Category: "pizza", Name: "pepperoni", Price: 12.99, Quantity: 1}}

	f.engine.ProcessMessage(context.Background(), "checkout", sess)
	frozen := sess.FinalTotal

	// Later cart changes must not move the frozen totals
	sess.Cart = append(sess.Cart, types.CartItem{Category: "drinks", Name: "soda", Price: 1.99, Quantity: 3})
	f.engine.ProcessMessage(context.Background(), "yes", sess)
	resp := f.engine.ProcessMessage(context.Background(), "cash", sess)
	if sess.State != types.StateOrderCompleted {
		t.Fatalf("expected order_completed, got %s; response %q", sess.State, resp)
	}

	orders, err := f.orders.List(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(orders) != 1 {
		t.Fatalf("expected 1 order, got %d", len(orders))
	}
	if math.Abs(orders[0].Total-frozen) > 1e-9 {
		t.Errorf("order total %v should equal frozen total %v", orders[0].Total, frozen)
	}
	if orders[0].PaymentMethod != "Cash on Delivery" {
		t.Errorf("expected Cash on Delivery, got %s", orders[0].PaymentMethod)
	}
}

func TestMenuInquiryInterceptsAnyState(t *testing.T) {
	f := newFixture(t)
	f.provider.inquiry = `{"is_menu_inquiry": true, "category": "pizza", "item": ""}`
	sess := newSession()
	sess.State = types.StateGetCustomerName

	resp := f.engine.ProcessMessage(context.Background(), "what pizzas do you have?", sess)
	if sess.State != types.StateGetCustomerName {
		t.Errorf("menu inquiry must not change state, got %s", sess.State)
	}
	if !strings.Contains(resp, "Here are our pizza options:") {
		t.Errorf("unexpected response: %q", resp)
	}
	if sess.Customer.Name != "" {
		t.Error("inquiry text must not be captured as a name")
	}
}

func TestMenuInquiryUnknownItemFallsThrough(t *testing.T) {
	f := newFixture(t)
	f.provider.inquiry = `{"is_menu_inquiry": true, "category": "", "item": "sushi"}`
	f.provider.intent = "none"
	sess := newSession()

	// Unknown item means the inquiry can't be answered; normal dispatch runs.
	f.engine.ProcessMessage(context.Background(), "do you have sushi?", sess)
	if sess.State != types.StateCustomerIdentification {
		t.Errorf("expected fall-through to welcome handling, got %s", sess.State)
	}
}

func TestUnknownStateResetsToWelcome(t *testing.T) {
	f := newFixture(t)
	sess := newSession()
	sess.State = types.DialogState("garbage")

	resp := f.engine.ProcessMessage(context.Background(), "hello", sess)
	if sess.State != types.StateWelcome {
		t.Errorf("expected reset to welcome, got %s", sess.State)
	}
	if !strings.Contains(resp, "order food") {
		t.Errorf("unexpected response: %q", resp)
	}
}

func TestCalculateTotal(t *testing.T) {
	if got := CalculateTotal(nil); got != 0 {
		t.Errorf("empty cart should total 0, got %v", got)
	}
	cart := []types.CartItem{
		{Price: 12.99, Quantity: 2},
		{Price: 1.99, Quantity: 1},
	}
	if got := CalculateTotal(cart); math.Abs(got-27.97) > 1e-9 {
		t.Errorf("expected 27.97, got %v", got)
	}
}

func TestCheckOrderWithInlineID(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order := &types.Order{
		OrderID:   "ORD-20250314092653-1234",
		Items:     []types.CartItem{{Name: "soda", Price: 1.99, Quantity: 1}},
		Total:     2.15,
		Status:    types.OrderStatusConfirmed,
		Timestamp: time.Now(),
	}
	if err := f.orders.Add(ctx, order); err != nil {
		t.Fatal(err)
	}

	sess := newSession()
	sess.State = types.StateCheckOrder
	resp := f.engine.ProcessMessage(ctx, "yes my order id is ORD-20250314092653-1234", sess)
	if sess.State != types.StateOrderCompleted {
		t.Fatalf("expected order_completed, got %s; response %q", sess.State, resp)
	}
}
