// internal/state/transcript.go
package state

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/user/quickbite/internal/types"
)

// TranscriptStore is a JSONL-backed append-only conversation log. Lines are
// stored per-session in sessions/<sessionID>/transcript.jsonl.
type TranscriptStore struct {
	root  string
	mu    sync.Mutex
	locks map[types.SessionID]*sync.Mutex
}

// NewTranscriptStore creates a file-backed TranscriptStore rooted at the given
// directory.
func NewTranscriptStore(root string) *TranscriptStore {
	return &TranscriptStore{
		root:  root,
		locks: make(map[types.SessionID]*sync.Mutex),
	}
}

// getLock returns the per-session mutex, creating one if it doesn't exist.
func (t *TranscriptStore) getLock(id types.SessionID) *sync.Mutex {
	t.mu.Lock()
	defer t.mu.Unlock()

	if lock, ok := t.locks[id]; ok {
		return lock
	}
	lock := &sync.Mutex{}
	t.locks[id] = lock
	return lock
}

func (t *TranscriptStore) transcriptPath(id types.SessionID) string {
	return filepath.Join(t.root, "sessions", string(id), "transcript.jsonl")
}

// count reads the transcript file and counts lines. Caller must hold the
// session lock.
func (t *TranscriptStore) count(id types.SessionID) (int64, error) {
	f, err := os.Open(t.transcriptPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("open transcript file: %w", err)
	}
	defer f.Close()

	var count int64
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		count++
	}
	if err := scanner.Err(); err != nil {
		return 0, fmt.Errorf("scan transcript file: %w", err)
	}
	return count, nil
}

// Append adds a chat line to the session's transcript with an
// auto-incremented sequence number.
func (t *TranscriptStore) Append(_ context.Context, id types.SessionID, entry *types.TranscriptEntry) error {
	lock := t.getLock(id)
	lock.Lock()
	defer lock.Unlock()

	dir := filepath.Dir(t.transcriptPath(id))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	existing, err := t.count(id)
	if err != nil {
		return err
	}
	entry.Seq = existing + 1

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal transcript entry: %w", err)
	}

	f, err := os.OpenFile(t.transcriptPath(id), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open transcript file: %w", err)
	}
	defer f.Close()

	data = append(data, '\n')
	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("write transcript entry: %w", err)
	}
	return nil
}

// Tail returns the last N transcript entries for the given session.
func (t *TranscriptStore) Tail(_ context.Context, id types.SessionID, limit int) ([]*types.TranscriptEntry, error) {
	lock := t.getLock(id)
	lock.Lock()
	defer lock.Unlock()

	f, err := os.Open(t.transcriptPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open transcript file: %w", err)
	}
	defer f.Close()

	var entries []*types.TranscriptEntry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var entry types.TranscriptEntry
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			return nil, fmt.Errorf("unmarshal transcript entry: %w", err)
		}
		entries = append(entries, &entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan transcript file: %w", err)
	}

	if len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	return entries, nil
}

// Count returns the number of transcript entries for the given session.
func (t *TranscriptStore) Count(_ context.Context, id types.SessionID) (int64, error) {
	lock := t.getLock(id)
	lock.Lock()
	defer lock.Unlock()

	return t.count(id)
}
