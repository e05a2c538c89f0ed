// internal/types/interfaces.go
package types

import (
	"context"
	"errors"
)

// ErrNotFound is returned by stores when a record does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicateOrderID is returned by OrderStore.Add when an order with the
// same exact ID already exists. Callers regenerate the ID and retry.
var ErrDuplicateOrderID = errors.New("duplicate order id")

type SessionStore interface {
	ResolveOrCreate(ctx context.Context, key SessionKey) (*Session, error)
	Get(ctx context.Context, id SessionID) (*Session, error)
	List(ctx context.Context) ([]*Session, error)
	Save(ctx context.Context, session *Session) error
}

type OrderStore interface {
	Add(ctx context.Context, order *Order) error
	// GetByID looks up an order by a normalized ID. The match is fuzzy:
	// either the stored ID contains the given ID or vice versa, after
	// normalization.
	GetByID(ctx context.Context, id string) (*Order, error)
	List(ctx context.Context) ([]*Order, error)
	UpdateStatus(ctx context.Context, id OrderID, status string) error
}

type CustomerStore interface {
	Get(ctx context.Context, phone string) (*Customer, error)
	Put(ctx context.Context, customer *Customer) error
	AppendOrder(ctx context.Context, phone string, orderID OrderID) error
	List(ctx context.Context) ([]*Customer, error)
}

type TranscriptStore interface {
	Append(ctx context.Context, id SessionID, entry *TranscriptEntry) error
	Tail(ctx context.Context, id SessionID, limit int) ([]*TranscriptEntry, error)
	Count(ctx context.Context, id SessionID) (int64, error)
}
