// internal/types/ids_test.go
package types

import (
	"regexp"
	"testing"
	"time"
)

func TestNewSessionID(t *testing.T) {
	id := NewSessionID()
	if id == "" {
		t.Error("expected non-empty SessionID")
	}
	if len(string(id)) != 36 {
		t.Errorf("expected UUID format, got %s", id)
	}
}

func TestSessionKeyFormat(t *testing.T) {
	key := NewSessionKey("telegram", "123", "456")
	expected := SessionKey("telegram:123:456")
	if key != expected {
		t.Errorf("expected %s, got %s", expected, key)
	}
}

func TestNewOrderIDFormat(t *testing.T) {
	now := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	pattern := regexp.MustCompile(`^ORD-20250314092653-\d{4}$`)
	for i := 0; i < 10; i++ {
		id := NewOrderID(now)
		if !pattern.MatchString(string(id)) {
			t.Fatalf("unexpected order ID format: %s", id)
		}
	}
}

func TestNormalizeOrderID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"ORD-20250314092653-1234", "ORD202503140926531234"},
		{"ord 2025 0314-0926531234", "ORD202503140926531234"},
		{"ORD202503140926531234", "ORD202503140926531234"},
	}
	for _, tt := range tests {
		if got := NormalizeOrderID(tt.in); got != tt.want {
			t.Errorf("NormalizeOrderID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDialogStateValid(t *testing.T) {
	if !StateWelcome.Valid() {
		t.Error("welcome should be a valid state")
	}
	if DialogState("bogus").Valid() {
		t.Error("bogus should not be a valid state")
	}
}
