package gateway

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/user/quickbite/internal/engine"
	"github.com/user/quickbite/internal/state"
	"github.com/user/quickbite/internal/types"
)

// Processor runs one dequeued turn through the dialogue engine: load the
// session, log the user line, process the message, save the session, log the
// assistant line, deliver the response.
type Processor struct {
	engine      *engine.Engine
	sessions    types.SessionStore
	transcripts *state.TranscriptStore
}

// NewProcessor wires the engine to its session and transcript stores.
func NewProcessor(eng *engine.Engine, sessions types.SessionStore, transcripts *state.TranscriptStore) *Processor {
	return &Processor{
		engine:      eng,
		sessions:    sessions,
		transcripts: transcripts,
	}
}

// ProcessTurn executes a single turn. Transcript failures are logged and do
// not fail the turn; a failed session save does, so the shell can tell the
// user the message was not processed.
func (p *Processor) ProcessTurn(turn *Turn) error {
	turn.Status = TurnRunning

	sess, err := p.sessions.Get(turn.Ctx, turn.SessionID)
	if err != nil {
		turn.Status = TurnFailed
		return fmt.Errorf("load session: %w", err)
	}

	if err := p.transcripts.Append(turn.Ctx, turn.SessionID, &types.TranscriptEntry{
		Role: "user", Text: turn.Message.Text, At: time.Now(),
	}); err != nil {
		slog.Warn("appending user transcript failed", "session_id", string(turn.SessionID), "error", err)
	}

	response := p.engine.ProcessMessage(turn.Ctx, turn.Message.Text, sess)

	if err := p.sessions.Save(turn.Ctx, sess); err != nil {
		turn.Status = TurnFailed
		return fmt.Errorf("save session: %w", err)
	}

	if err := p.transcripts.Append(turn.Ctx, turn.SessionID, &types.TranscriptEntry{
		Role: "assistant", Text: response, At: time.Now(),
	}); err != nil {
		slog.Warn("appending assistant transcript failed", "session_id", string(turn.SessionID), "error", err)
	}

	turn.Status = TurnComplete
	if turn.OnComplete != nil {
		turn.OnComplete(response)
	}
	return nil
}
