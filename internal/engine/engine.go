// Package engine implements the dialogue state machine that drives a food
// ordering conversation: per-state handlers keyed by the session's dialog
// state, a pre-dispatch interceptor chain, cart and checkout arithmetic, and
// order persistence at payment time.
package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/user/quickbite/internal/menu"
	"github.com/user/quickbite/internal/nlu"
	"github.com/user/quickbite/internal/types"
)

// TaxRate is applied to the cart subtotal at checkout.
const TaxRate = 0.08

// handlerFunc processes one user turn in a specific dialog state. Handlers
// mutate the session in place and return the assistant's response.
type handlerFunc func(ctx context.Context, message string, sess *types.Session) string

// Engine maps (message, session state) to (response, next state).
type Engine struct {
	catalog      *menu.Catalog
	orders       types.OrderStore
	customers    types.CustomerStore
	nlu          *nlu.Client
	handlers     map[types.DialogState]handlerFunc
	interceptors []Interceptor
}

// New creates a dialogue engine over the given catalog, stores, and NLU
// client.
func New(catalog *menu.Catalog, orders types.OrderStore, customers types.CustomerStore, nluClient *nlu.Client) *Engine {
	e := &Engine{
		catalog:   catalog,
		orders:    orders,
		customers: customers,
		nlu:       nluClient,
	}
	e.handlers = map[types.DialogState]handlerFunc{
		types.StateWelcome:                e.handleWelcome,
		types.StateCustomerIdentification: e.handleCustomerIdentification,
		types.StateGetCustomerName:        e.handleGetCustomerName,
		types.StateGetCustomerPhone:       e.handleGetCustomerPhone,
		types.StateGetCustomerAddress:     e.handleGetCustomerAddress,
		types.StateGetCustomerZipcode:     e.handleGetCustomerZipcode,
		types.StateOrderFood:              e.handleOrderFood,
		types.StateReviewOrder:            e.handleReviewOrder,
		types.StateModifyOrder:            e.handleModifyOrder,
		types.StateConfirmAddress:         e.handleConfirmAddress,
		types.StateUpdateAddress:          e.handleUpdateAddress,
		types.StateUpdateZipcode:          e.handleUpdateZipcode,
		types.StateSelectPayment:          e.handleSelectPayment,
		types.StateOrderCompleted:         e.handleOrderCompleted,
		types.StateCheckOrder:             e.handleCheckOrder,
		types.StateGetOrderID:             e.handleGetOrderID,
		types.StateShowOrderDetails:       e.handleShowOrderDetails,
		types.StateGetOrderPhone:          e.handleGetOrderPhone,
		types.StateShowPhoneOrders:        e.handleShowPhoneOrders,
		types.StateOrderNotFound:          e.handleOrderNotFound,
	}
	e.interceptors = []Interceptor{e.menuInquiryInterceptor}
	return e
}

// ProcessMessage runs one user turn: interceptors first (a short-circuiting
// interceptor leaves the state untouched), then the handler for the session's
// current state. Always returns a usable response.
func (e *Engine) ProcessMessage(ctx context.Context, message string, sess *types.Session) string {
	for _, interceptor := range e.interceptors {
		if response, ok := interceptor(ctx, message, sess); ok {
			return response
		}
	}
	return e.dispatch(ctx, message, sess)
}

// dispatch routes to the handler for the session's current state. An
// unrecognized state resets the session to welcome so the conversation stays
// usable.
func (e *Engine) dispatch(ctx context.Context, message string, sess *types.Session) string {
	handler, ok := e.handlers[sess.State]
	if !ok {
		sess.State = types.StateWelcome
		return "I'm not sure what you want to do. You can say 'order food', 'check my order', or ask for 'help'."
	}
	return handler(ctx, message, sess)
}

// CalculateTotal sums price times quantity over the cart lines.
func CalculateTotal(cart []types.CartItem) float64 {
	var total float64
	for _, item := range cart {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// formatCartLines renders the numbered cart listing used while reviewing an
// order.
func formatCartLines(cart []types.CartItem) string {
	var b strings.Builder
	for i, item := range cart {
		fmt.Fprintf(&b, "%d. %s - $%.2f x %d = $%.2f\n",
			i+1, item.Name, item.Price, item.Quantity, item.Price*float64(item.Quantity))
	}
	return b.String()
}
