// internal/types/ids.go
package types

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
)

type SessionKey string
type SessionID string
type TurnID string
type OrderID string

func NewSessionID() SessionID {
	return SessionID(uuid.New().String())
}

func NewTurnID() TurnID {
	return TurnID(uuid.New().String())
}

func NewSessionKey(parts ...string) SessionKey {
	return SessionKey(strings.Join(parts, ":"))
}

// NewOrderID generates an order ID of the form ORD-<YYYYMMDDHHMMSS>-<4 digits>.
// The timestamp prefix keeps IDs roughly sortable by creation time; the random
// suffix separates orders placed within the same second. Collisions are rare
// but possible, so OrderStore.Add rejects duplicates and callers regenerate.
func NewOrderID(now time.Time) OrderID {
	return OrderID(fmt.Sprintf("ORD-%s-%04d", now.Format("20060102150405"), 1000+rand.Intn(9000)))
}

// NormalizeOrderID strips spaces and dashes and uppercases, so user-supplied
// IDs that differ only by case or punctuation compare equal.
func NormalizeOrderID(id string) string {
	id = strings.ReplaceAll(id, " ", "")
	id = strings.ReplaceAll(id, "-", "")
	return strings.ToUpper(id)
}
