// internal/types/models.go
package types

import "time"

// Order status lifecycle. Status is the only mutable field on a persisted
// order; the scheduler advances it as delivery progresses.
const (
	OrderStatusConfirmed      = "Confirmed"
	OrderStatusPreparing      = "Preparing"
	OrderStatusOutForDelivery = "Out for Delivery"
	OrderStatusDelivered      = "Delivered"
)

// CartItem is one line of a session's cart. Price is the catalog price at the
// time the item was extracted and is not re-validated at checkout.
type CartItem struct {
	Category string  `json:"category"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// Customer is the durable profile keyed by phone number. OrderHistory is
// append-only.
type Customer struct {
	Name         string   `json:"name,omitempty"`
	Phone        string   `json:"phone,omitempty"`
	Address      string   `json:"address,omitempty"`
	ZipCode      string   `json:"zip_code,omitempty"`
	OrderHistory []string `json:"order_history,omitempty"`
}

// Order is the durable snapshot of a completed checkout.
type Order struct {
	OrderID       OrderID    `json:"order_id"`
	Customer      Customer   `json:"customer_info"`
	Items         []CartItem `json:"items"`
	Subtotal      float64    `json:"subtotal"`
	Tax           float64    `json:"tax"`
	Total         float64    `json:"total"`
	PaymentMethod string     `json:"payment_method"`
	Status        string     `json:"status"`
	Timestamp     time.Time  `json:"timestamp"`
	SessionKey    SessionKey `json:"session_key,omitempty"`
}

// Session is the per-conversation dialog state. It is created by the shell
// that owns the conversation and mutated only by the dialogue engine.
//
// Subtotal, Tax, FinalTotal, TempOrderID and TempPhone are scratch fields
// that pass computed values between consecutive turns of a single checkout
// or lookup flow. They are overwritten each time they are set and must not
// be relied upon across unrelated flows.
type Session struct {
	UserID     SessionID   `json:"user_id"`
	SessionKey SessionKey  `json:"session_key"`
	State      DialogState `json:"current_state"`
	Cart       []CartItem  `json:"cart"`
	Customer   Customer    `json:"customer_info"`

	Subtotal    float64 `json:"subtotal,omitempty"`
	Tax         float64 `json:"tax,omitempty"`
	FinalTotal  float64 `json:"final_total,omitempty"`
	TempOrderID string  `json:"temp_order_id,omitempty"`
	TempPhone   string  `json:"temp_phone,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TranscriptEntry is one chat line in a session's conversation log.
type TranscriptEntry struct {
	Seq  int64     `json:"seq"`
	Role string    `json:"role"`
	Text string    `json:"text"`
	At   time.Time `json:"at"`
}

// InboundMessage is a user turn arriving from a presentation shell.
type InboundMessage struct {
	Source     string     `json:"source"`
	SessionKey SessionKey `json:"session_key"`
	UserID     string     `json:"user_id"`
	Text       string     `json:"text"`
}
