package gateway

import (
	"context"
	"time"

	"github.com/user/quickbite/internal/types"
)

// TurnStatus tracks a turn through its lifecycle.
type TurnStatus string

const (
	TurnQueued   TurnStatus = "queued"
	TurnRunning  TurnStatus = "running"
	TurnComplete TurnStatus = "complete"
	TurnFailed   TurnStatus = "failed"
)

// Turn is one user message travelling through the gateway: the inbound
// message, the session it belongs to, and an optional completion callback
// that delivers the engine's response back to the shell.
type Turn struct {
	ID         types.TurnID
	SessionID  types.SessionID
	Message    *types.InboundMessage
	Status     TurnStatus
	CreatedAt  time.Time
	Ctx        context.Context
	OnComplete func(response string)
}

// NewTurn wraps an inbound message for the given session.
func NewTurn(sessionID types.SessionID, message *types.InboundMessage) *Turn {
	return &Turn{
		ID:        types.NewTurnID(),
		SessionID: sessionID,
		Message:   message,
		Status:    TurnQueued,
		CreatedAt: time.Now(),
	}
}
