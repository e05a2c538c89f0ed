// internal/types/states.go
package types

// DialogState selects which handler processes the next message in a session.
type DialogState string

const (
	StateWelcome                DialogState = "welcome"
	StateCustomerIdentification DialogState = "customer_identification"
	StateGetCustomerName        DialogState = "get_customer_name"
	StateGetCustomerPhone       DialogState = "get_customer_phone"
	StateGetCustomerAddress     DialogState = "get_customer_address"
	StateGetCustomerZipcode     DialogState = "get_customer_zipcode"
	StateOrderFood              DialogState = "order_food"
	StateReviewOrder            DialogState = "review_order"
	StateModifyOrder            DialogState = "modify_order"
	StateConfirmAddress         DialogState = "confirm_address"
	StateUpdateAddress          DialogState = "update_address"
	StateUpdateZipcode          DialogState = "update_zipcode"
	StateSelectPayment          DialogState = "select_payment"
	StateOrderCompleted         DialogState = "order_completed"
	StateCheckOrder             DialogState = "check_order"
	StateGetOrderID             DialogState = "get_order_id"
	StateShowOrderDetails       DialogState = "show_order_details"
	StateGetOrderPhone          DialogState = "get_order_phone"
	StateShowPhoneOrders        DialogState = "show_phone_orders"
	StateOrderNotFound          DialogState = "order_not_found"
)

var allStates = map[DialogState]bool{
	StateWelcome:                true,
	StateCustomerIdentification: true,
	StateGetCustomerName:        true,
	StateGetCustomerPhone:       true,
	StateGetCustomerAddress:     true,
	StateGetCustomerZipcode:     true,
	StateOrderFood:              true,
	StateReviewOrder:            true,
	StateModifyOrder:            true,
	StateConfirmAddress:         true,
	StateUpdateAddress:          true,
	StateUpdateZipcode:          true,
	StateSelectPayment:          true,
	StateOrderCompleted:         true,
	StateCheckOrder:             true,
	StateGetOrderID:             true,
	StateShowOrderDetails:       true,
	StateGetOrderPhone:          true,
	StateShowPhoneOrders:        true,
	StateOrderNotFound:          true,
}

// Valid reports whether s is one of the enumerated dialog states.
func (s DialogState) Valid() bool {
	return allStates[s]
}
