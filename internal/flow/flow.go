// Package flow tracks which screen of the application is active.
package flow

import (
	"errors"
	"fmt"
	"sync"
)

// Stage is a screen of the application.
type Stage string

const (
	StageLanguage        Stage = "language"
	StageChat            Stage = "chat"
	StageRecommendations Stage = "recommendations"
)

// Event moves the machine between stages.
type Event string

const (
	LanguageSelected Event = "language_selected"
	IntakeCompleted  Event = "intake_completed"
	ChangeLanguage   Event = "change_language"
	Restart          Event = "restart"
)

// ErrInvalidTransition is returned for an event the current stage does not accept.
var ErrInvalidTransition = errors.New("invalid flow transition")

var transitions = map[Stage]map[Event]Stage{
	StageLanguage: {
		LanguageSelected: StageChat,
	},
	StageChat: {
		IntakeCompleted: StageRecommendations,
		ChangeLanguage:  StageLanguage,
	},
	StageRecommendations: {
		ChangeLanguage: StageLanguage,
		Restart:        StageChat,
	},
}

// Machine is safe for concurrent use.
type Machine struct {
	mu      sync.Mutex
	stage   Stage
	history []Stage
}

// New returns a machine on the language selection screen.
func New() *Machine {
	return &Machine{stage: StageLanguage}
}

// Stage returns the active stage.
func (m *Machine) Stage() Stage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stage
}

// Fire applies e and returns the new stage.
func (m *Machine) Fire(e Event) (Stage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	next, ok := transitions[m.stage][e]
	if !ok {
		return m.stage, fmt.Errorf("%w: %s on %s", ErrInvalidTransition, e, m.stage)
	}

	m.history = append(m.history, m.stage)
	m.stage = next
	return next, nil
}

// Can reports whether e is accepted in the active stage.
func (m *Machine) Can(e Event) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := transitions[m.stage][e]
	return ok
}

// History returns the stages left so far, oldest first.
func (m *Machine) History() []Stage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Stage(nil), m.history...)
}
