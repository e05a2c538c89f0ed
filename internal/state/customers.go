// internal/state/customers.go
package state

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/user/quickbite/internal/types"
)

// CustomerStore is a JSON-file-backed customer store keyed by 10-digit phone
// number.
type CustomerStore struct {
	path string
	mu   sync.RWMutex
}

// NewCustomerStore creates a file-backed CustomerStore rooted at the given
// directory.
func NewCustomerStore(root string) *CustomerStore {
	return &CustomerStore{path: filepath.Join(root, "customers.json")}
}

// Get returns the customer with the given phone number.
func (s *CustomerStore) Get(_ context.Context, phone string) (*types.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	customers, err := s.load()
	if err != nil {
		return nil, err
	}
	customer, ok := customers[phone]
	if !ok {
		return nil, fmt.Errorf("customer %s: %w", phone, types.ErrNotFound)
	}
	return customer, nil
}

// Put adds or replaces the customer record keyed by its phone number.
func (s *CustomerStore) Put(_ context.Context, customer *types.Customer) error {
	if customer.Phone == "" {
		return fmt.Errorf("customer has no phone number")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	customers, err := s.load()
	if err != nil {
		return err
	}
	customers[customer.Phone] = customer
	return s.save(customers)
}

// AppendOrder adds an order ID to the customer's order history.
// The history is append-only.
func (s *CustomerStore) AppendOrder(_ context.Context, phone string, orderID types.OrderID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	customers, err := s.load()
	if err != nil {
		return err
	}
	customer, ok := customers[phone]
	if !ok {
		return fmt.Errorf("customer %s: %w", phone, types.ErrNotFound)
	}
	customer.OrderHistory = append(customer.OrderHistory, string(orderID))
	return s.save(customers)
}

// List returns all customers ordered by phone number.
func (s *CustomerStore) List(_ context.Context) ([]*types.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	customers, err := s.load()
	if err != nil {
		return nil, err
	}
	list := make([]*types.Customer, 0, len(customers))
	for _, c := range customers {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Phone < list[j].Phone })
	return list, nil
}

// load reads customers.json. Returns an empty map if the file doesn't exist.
func (s *CustomerStore) load() (map[string]*types.Customer, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]*types.Customer), nil
		}
		return nil, fmt.Errorf("read customers file: %w", err)
	}
	var customers map[string]*types.Customer
	if err := json.Unmarshal(data, &customers); err != nil {
		return nil, fmt.Errorf("unmarshal customers: %w", err)
	}
	if customers == nil {
		customers = make(map[string]*types.Customer)
	}
	return customers, nil
}

// save writes the customer map to disk using atomic write (temp file + rename).
func (s *CustomerStore) save(customers map[string]*types.Customer) error {
	data, err := json.MarshalIndent(customers, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal customers: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create customers dir: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp customers file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename temp customers file: %w", err)
	}
	return nil
}
