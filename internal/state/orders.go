// internal/state/orders.go
package state

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/user/quickbite/internal/types"
)

// OrderStore is a JSON-file-backed order store. Orders are kept as an
// append-only array in orders.json; every mutation is flushed to disk with an
// atomic write before the call returns.
type OrderStore struct {
	path string
	mu   sync.RWMutex
}

// NewOrderStore creates a file-backed OrderStore rooted at the given directory.
func NewOrderStore(root string) *OrderStore {
	return &OrderStore{path: filepath.Join(root, "orders.json")}
}

// Add appends a new order. Returns types.ErrDuplicateOrderID if an order with
// the same exact ID already exists; the caller regenerates the ID and retries.
func (s *OrderStore) Add(_ context.Context, order *types.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.load()
	if err != nil {
		return err
	}
	for _, existing := range orders {
		if existing.OrderID == order.OrderID {
			return fmt.Errorf("order %s: %w", order.OrderID, types.ErrDuplicateOrderID)
		}
	}
	orders = append(orders, order)
	return s.save(orders)
}

// GetByID finds an order by a normalized ID. The match is deliberately fuzzy:
// after stripping dashes and uppercasing, either side may contain the other,
// so a user pasting extra text around the ID still resolves.
func (s *OrderStore) GetByID(_ context.Context, id string) (*types.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	orders, err := s.load()
	if err != nil {
		return nil, err
	}

	needle := types.NormalizeOrderID(id)
	if needle == "" {
		return nil, fmt.Errorf("order %q: %w", id, types.ErrNotFound)
	}
	for _, order := range orders {
		stored := types.NormalizeOrderID(string(order.OrderID))
		if strings.Contains(needle, stored) || strings.Contains(stored, needle) {
			return order, nil
		}
	}
	return nil, fmt.Errorf("order %q: %w", id, types.ErrNotFound)
}

// List returns all orders in insertion order.
func (s *OrderStore) List(_ context.Context) ([]*types.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	orders, err := s.load()
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []*types.Order{}
	}
	return orders, nil
}

// UpdateStatus sets the status of the order with the given exact ID.
func (s *OrderStore) UpdateStatus(_ context.Context, id types.OrderID, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.load()
	if err != nil {
		return err
	}
	for _, order := range orders {
		if order.OrderID == id {
			order.Status = status
			return s.save(orders)
		}
	}
	return fmt.Errorf("order %s: %w", id, types.ErrNotFound)
}

// load reads orders.json. Returns nil if the file doesn't exist yet.
func (s *OrderStore) load() ([]*types.Order, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read orders file: %w", err)
	}
	var orders []*types.Order
	if err := json.Unmarshal(data, &orders); err != nil {
		return nil, fmt.Errorf("unmarshal orders: %w", err)
	}
	return orders, nil
}

// save writes the order list to disk using atomic write (temp file + rename).
func (s *OrderStore) save(orders []*types.Order) error {
	data, err := json.MarshalIndent(orders, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal orders: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create orders dir: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp orders file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename temp orders file: %w", err)
	}
	return nil
}
