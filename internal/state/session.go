// internal/state/session.go
package state

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/user/quickbite/internal/types"
)

// SessionStore is a JSON-file-backed session store. An index mapping session
// keys to IDs lives in sessions/sessions.json; each session's dialog state is
// written to sessions/<sessionID>/state.json.
type SessionStore struct {
	root string
	mu   sync.RWMutex
}

// indexEntry maps a shell-supplied session key to its session ID.
type indexEntry struct {
	SessionID  types.SessionID  `json:"session_id"`
	SessionKey types.SessionKey `json:"session_key"`
	CreatedAt  time.Time        `json:"created_at"`
}

// NewSessionStore creates a file-backed SessionStore rooted at the given directory.
func NewSessionStore(root string) *SessionStore {
	return &SessionStore{root: root}
}

func (s *SessionStore) indexPath() string {
	return filepath.Join(s.root, "sessions", "sessions.json")
}

func (s *SessionStore) statePath(id types.SessionID) string {
	return filepath.Join(s.root, "sessions", string(id), "state.json")
}

// ResolveOrCreate returns the session for the given key, creating a fresh
// session in the welcome state if none exists.
func (s *SessionStore) ResolveOrCreate(_ context.Context, key types.SessionKey) (*types.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	index, err := s.loadIndex()
	if err != nil {
		return nil, err
	}

	if entry, ok := index[key]; ok {
		return s.loadSession(entry.SessionID)
	}

	now := time.Now()
	session := &types.Session{
		UserID:     types.NewSessionID(),
		SessionKey: key,
		State:      types.StateWelcome,
		Cart:       []types.CartItem{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	index[key] = &indexEntry{
		SessionID:  session.UserID,
		SessionKey: key,
		CreatedAt:  now,
	}
	if err := s.saveIndex(index); err != nil {
		return nil, err
	}
	if err := s.saveSession(session); err != nil {
		return nil, err
	}
	return session, nil
}

// Get returns the session with the given ID.
func (s *SessionStore) Get(_ context.Context, id types.SessionID) (*types.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.loadSession(id)
}

// List returns all sessions.
func (s *SessionStore) List(_ context.Context) ([]*types.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	index, err := s.loadIndex()
	if err != nil {
		return nil, err
	}
	sessions := make([]*types.Session, 0, len(index))
	for _, entry := range index {
		session, err := s.loadSession(entry.SessionID)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	return sessions, nil
}

// Save persists the session's dialog state, setting UpdatedAt to now.
func (s *SessionStore) Save(_ context.Context, session *types.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session.UpdatedAt = time.Now()
	return s.saveSession(session)
}

// loadIndex reads sessions.json and returns a map keyed by SessionKey.
func (s *SessionStore) loadIndex() (map[types.SessionKey]*indexEntry, error) {
	data, err := os.ReadFile(s.indexPath())
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[types.SessionKey]*indexEntry), nil
		}
		return nil, fmt.Errorf("read session index: %w", err)
	}

	var entries []*indexEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("unmarshal session index: %w", err)
	}

	index := make(map[types.SessionKey]*indexEntry, len(entries))
	for _, entry := range entries {
		index[entry.SessionKey] = entry
	}
	return index, nil
}

// saveIndex converts the map to a slice, marshals with indentation, and writes atomically.
func (s *SessionStore) saveIndex(index map[types.SessionKey]*indexEntry) error {
	entries := make([]*indexEntry, 0, len(index))
	for _, entry := range index {
		entries = append(entries, entry)
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session index: %w", err)
	}

	if err := os.MkdirAll(filepath.Join(s.root, "sessions"), 0o755); err != nil {
		return fmt.Errorf("create sessions dir: %w", err)
	}

	tmp := s.indexPath() + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp index: %w", err)
	}
	if err := os.Rename(tmp, s.indexPath()); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename temp index: %w", err)
	}
	return nil
}

func (s *SessionStore) loadSession(id types.SessionID) (*types.Session, error) {
	data, err := os.ReadFile(s.statePath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("session %s: %w", id, types.ErrNotFound)
		}
		return nil, fmt.Errorf("read session state: %w", err)
	}
	var session types.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("unmarshal session state: %w", err)
	}
	return &session, nil
}

func (s *SessionStore) saveSession(session *types.Session) error {
	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session state: %w", err)
	}

	path := s.statePath(session.UserID)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp session state: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename temp session state: %w", err)
	}
	return nil
}
