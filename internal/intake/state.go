package intake

import (
	"errors"
	"fmt"
)

// Phase is the coarse state of a session.
type Phase int

const (
	// AwaitingAnswer means the session waits for the answer at State.Position.
	AwaitingAnswer Phase = iota
	// Complete is terminal; a new session must be started.
	Complete
)

func (p Phase) String() string {
	switch p {
	case AwaitingAnswer:
		return "awaiting_answer"
	case Complete:
		return "complete"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// State is the current position of a session in its script.
type State struct {
	Phase    Phase
	Position int
}

func (s State) String() string {
	if s.Phase == Complete {
		return s.Phase.String()
	}
	return fmt.Sprintf("%s(%d)", s.Phase, s.Position)
}

var (
	// ErrInvalidState matches every *InvalidStateError.
	ErrInvalidState = errors.New("invalid intake state")
	// ErrBusy is returned when an answer arrives while another one is being processed.
	ErrBusy = errors.New("another answer is being processed")
)

// InvalidStateError is returned when an answer is submitted to a completed session.
type InvalidStateError struct {
	SessionID string
	State     State
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("session %s cannot accept answers in state %s; start a new session", e.SessionID, e.State)
}

func (e *InvalidStateError) Unwrap() error { return ErrInvalidState }
