package chat

import (
	"context"
	"log"
	"sync"
	"time"

	"finadvisor/internal/model"
)

// Conversation states. Mostly informational: the dispatcher derives its
// routing from the session contents, but the tag makes the machine explicit
// and observable.
type State int

const (
	StateAwaitingSlots State = iota
	StateHasPartialSlots
	StateRecommending
	StateRecommendationShown
	StateDissatisfactionHandling
	StateClosingPending
)

func (s State) String() string {
	switch s {
	case StateAwaitingSlots:
		return "awaiting_slots"
	case StateHasPartialSlots:
		return "has_partial_slots"
	case StateRecommending:
		return "recommending"
	case StateRecommendationShown:
		return "recommendation_shown"
	case StateDissatisfactionHandling:
		return "dissatisfaction_handling"
	case StateClosingPending:
		return "closing_pending"
	default:
		return "unknown"
	}
}

// Session owns everything one conversation accumulates: the transcript, the
// slots, the last recommendation, the monotonically growing exclusion set
// and the pending closing timer. Created per session, torn down with it,
// never a hidden singleton. Callers hold the embedded mutex for the whole
// turn; one message is fully processed before the next.
type Session struct {
	sync.Mutex

	ID       string
	Messages []model.ChatMessage
	Slots    model.InvestmentSlots
	LastRec  *model.Recommendation
	Excluded map[string]bool
	State    State

	closing    *time.Timer
	closingGen int
}

func NewSession(id string) *Session {
	return &Session{
		ID:       id,
		Excluded: make(map[string]bool),
		State:    StateAwaitingSlots,
	}
}

func (s *Session) Append(msg model.ChatMessage) {
	s.Messages = append(s.Messages, msg)
}

// UserMessages returns the user turns of the transcript, the subset the
// extractor reads.
func (s *Session) UserMessages() []model.ChatMessage {
	var out []model.ChatMessage
	for _, m := range s.Messages {
		if m.Role == "user" {
			out = append(out, m)
		}
	}
	return out
}

// Exclude adds names to the exclusion set. The set only ever grows; an
// excluded product is never recommended again in this session.
func (s *Session) Exclude(names ...string) {
	for _, n := range names {
		s.Excluded[n] = true
	}
}

// ScheduleClosing arms the deferred closing pitch. Any previously armed
// timer is replaced. Callers must hold the session lock; fire runs with the
// session locked and only if no newer turn canceled or re-armed the timer
// in the meantime.
func (s *Session) ScheduleClosing(delay time.Duration, fire func()) {
	s.CancelClosing()
	s.State = StateClosingPending
	s.closingGen++
	gen := s.closingGen
	s.closing = time.AfterFunc(delay, func() {
		s.Lock()
		defer s.Unlock()
		if gen != s.closingGen || s.State != StateClosingPending {
			return
		}
		fire()
	})
}

// CancelClosing disarms a pending closing pitch, if any. Called on every
// incoming turn so a new message always wins over the scheduled pitch. The
// generation bump invalidates a timer that already slipped past Stop.
func (s *Session) CancelClosing() {
	s.closingGen++
	if s.closing != nil {
		s.closing.Stop()
		s.closing = nil
		if s.State == StateClosingPending {
			s.State = StateRecommendationShown
		}
	}
}

// Manager owns the live sessions. When a HistoryStore is configured, a
// session created after a restart rehydrates its transcript from the mirror
// so mid-conversation slots can be re-extracted.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	History  *HistoryStore
}

func NewManager(history *HistoryStore) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		History:  history,
	}
}

// Get returns the session for id, creating it on first contact.
func (m *Manager) Get(ctx context.Context, id string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[id]; ok {
		return s
	}

	s := NewSession(id)
	if m.History != nil {
		if msgs := m.History.Load(ctx, id); len(msgs) > 0 {
			s.Messages = msgs
			s.Slots = ExtractSlots(s.UserMessages())
			log.Printf("[Session] rehydrated %s: %d messages", id, len(msgs))
		}
	}
	m.sessions[id] = s
	return s
}

// End tears the session down and cancels any pending closing pitch.
func (m *Manager) End(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[id]; ok {
		s.Lock()
		s.CancelClosing()
		s.Unlock()
		delete(m.sessions, id)
	}
}
