// Package state provides filesystem-backed storage implementations.
package state

import "github.com/user/quickbite/internal/types"

// Compile-time interface compliance checks.
var _ types.OrderStore = (*OrderStore)(nil)
var _ types.CustomerStore = (*CustomerStore)(nil)
var _ types.SessionStore = (*SessionStore)(nil)
var _ types.TranscriptStore = (*TranscriptStore)(nil)
