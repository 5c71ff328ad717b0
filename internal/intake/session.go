// Package intake drives the question-and-answer dialog that builds a profile.
package intake

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spigell/internbuddy/internal/logger"
	"github.com/spigell/internbuddy/internal/profile"
	"github.com/spigell/internbuddy/internal/script"
)

// Reply is what the session emits after Start or an answer.
type Reply struct {
	// Prompt is the next question, the same question on re-prompt, or the closing text.
	Prompt string
	// Reprompt is set when a blank answer was ignored.
	Reprompt bool
	// Done is set once, on the answer that completes the session.
	Done bool
	// Profile is only set together with Done.
	Profile *profile.Profile
}

// Session is a single intake dialog. Answers are processed one at a time;
// an answer arriving while another is processed is rejected with ErrBusy.
type Session struct {
	mu sync.Mutex

	registry *script.Registry
	base     *zap.Logger
	logger   *zap.Logger

	id      string
	locale  string
	script  script.Script
	state   State
	profile profile.Profile
}

// New validates the registry and starts a session in the given locale.
func New(registry *script.Registry, loc string, log *zap.Logger) (*Session, error) {
	if registry == nil {
		return nil, fmt.Errorf("script registry is required")
	}
	if err := registry.Ready(); err != nil {
		return nil, err
	}

	s := &Session{
		registry: registry,
		base:     logger.WithFields(log),
	}
	s.logger = s.base
	s.Start(loc)

	return s, nil
}

// Start discards any progress and begins again at the first question of the locale's script.
func (s *Session) Start(loc string) Reply {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.start(loc)
}

// ChangeLocale restarts the session with another script. Answers already given are discarded.
func (s *Session) ChangeLocale(loc string) Reply {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.logger.Info("locale change requested; restarting intake",
		zap.String("from", s.locale),
		zap.String("to", loc),
		zap.Int("discarded_answers", len(s.profile.Assigned())),
	)

	return s.start(loc)
}

func (s *Session) start(loc string) Reply {
	sc, resolved := s.registry.Get(loc)

	s.id = uuid.NewString()
	s.locale = resolved
	s.script = sc
	s.state = State{Phase: AwaitingAnswer, Position: 0}
	s.profile = profile.Profile{}
	s.logger = logger.WithFields(s.base, logger.SessionFields(s.id, resolved)...)

	if !strings.EqualFold(strings.TrimSpace(loc), resolved) {
		s.logger.Debug("locale resolved to fallback script", zap.String("requested", loc))
	}
	s.logger.Info("intake started", zap.Int("questions", sc.Questions()))

	return Reply{Prompt: sc.Entries[0].Prompt}
}

// Submit applies an answer to the current question.
// Blank answers re-prompt without changing state. Answers after completion fail with *InvalidStateError.
func (s *Session) Submit(raw string) (Reply, error) {
	if !s.mu.TryLock() {
		return Reply{}, ErrBusy
	}
	defer s.mu.Unlock()

	if s.state.Phase == Complete {
		return Reply{}, &InvalidStateError{SessionID: s.id, State: s.state}
	}

	entry := s.script.Entries[s.state.Position]

	if strings.TrimSpace(raw) == "" {
		s.logger.Debug("blank answer ignored", zap.Int("position", s.state.Position))
		return Reply{Prompt: entry.Prompt, Reprompt: true}, nil
	}

	value := entry.Mode.Parse(raw)
	if !entry.IsTerminal() {
		if err := s.profile.Assign(entry.Field, value); err != nil {
			// Registration guarantees each field once per script.
			return Reply{}, fmt.Errorf("assign answer at position %d: %w", s.state.Position, err)
		}
	}

	s.logger.Debug("answer accepted",
		zap.Int("position", s.state.Position),
		zap.String("field", string(entry.Field)),
		zap.String("mode", string(entry.Mode)),
	)

	next := s.state.Position + 1
	if next < s.script.Len()-1 {
		s.state.Position = next
		return Reply{Prompt: s.script.Entries[next].Prompt}, nil
	}

	s.state = State{Phase: Complete, Position: next}
	completed := s.profile.Clone()

	s.logger.Info("intake completed", zap.Strings("fields", fieldNames(completed.Assigned())))

	return Reply{
		Prompt:  s.script.Terminal().Prompt,
		Done:    true,
		Profile: &completed,
	}, nil
}

// Current returns the prompt the session is waiting on, or the closing prompt when complete.
func (s *Session) Current() Reply {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Phase == Complete {
		return Reply{Prompt: s.script.Terminal().Prompt}
	}
	return Reply{Prompt: s.script.Entries[s.state.Position].Prompt}
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Profile returns a copy of the answers collected so far.
func (s *Session) Profile() profile.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile.Clone()
}

// Progress returns the number of answered questions and the total number of questions.
func (s *Session) Progress() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	answered := s.state.Position
	if s.state.Phase == Complete {
		answered = s.script.Questions()
	}
	return answered, s.script.Questions()
}

// Locale returns the locale the active script was resolved to.
func (s *Session) Locale() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.locale
}

// ID returns the identifier of the current session run. It changes on every Start.
func (s *Session) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

func fieldNames(fields []profile.Field) []string {
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, string(f))
	}
	return names
}
