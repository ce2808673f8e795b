package chat

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"finadvisor/internal/model"
	"finadvisor/internal/observability"
)

type ChatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

type ChatResponse struct {
	SessionID string `json:"session_id"`
	Answer    string `json:"answer"`
}

// Handler serves one user turn. The session is locked for the whole turn,
// so a message is fully processed before the next one for the same session
// is accepted. A pending closing pitch is canceled by any new message; when
// this turn produced a recommendation, a fresh pitch is armed.
func Handler(mgr *Manager, d *Dispatcher, closingDelay time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Message == "" {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if req.SessionID == "" {
			req.SessionID = uuid.NewString()
		}
		observability.TurnsTotal.Inc()

		s := mgr.Get(r.Context(), req.SessionID)
		s.Lock()
		defer s.Unlock()

		s.CancelClosing()

		res := d.HandleTurn(r.Context(), s, req.Message)

		s.Append(model.ChatMessage{Role: "user", Content: req.Message})
		s.Append(model.ChatMessage{Role: "assistant", Content: res.Reply})
		if mgr.History != nil {
			mgr.History.Save(r.Context(), s.ID, s.Messages)
		}

		if len(res.Recommended) > 0 {
			scheduleClosing(mgr, s, closingDelay)
		}

		json.NewEncoder(w).Encode(ChatResponse{
			SessionID: s.ID,
			Answer:    res.Reply,
		})
	}
}

// scheduleClosing arms the deferred pitch. The pitch is built when the
// timer fires, from whatever the session's last recommendation is by then.
// The callback runs with the session locked (see Session.ScheduleClosing).
func scheduleClosing(mgr *Manager, s *Session, delay time.Duration) {
	s.ScheduleClosing(delay, func() {
		if s.LastRec == nil {
			return
		}
		closing := GenerateClosing(s.LastRec.Candidates, s.LastRec.Slots)
		if closing == "" {
			s.State = StateRecommendationShown
			return
		}

		s.Append(model.ChatMessage{Role: "assistant", Content: closing})
		s.State = StateRecommendationShown
		if mgr.History != nil {
			mgr.History.Save(context.Background(), s.ID, s.Messages)
		}
		observability.ClosingsTotal.Inc()
		log.Printf("[Chat] session %s: closing pitch delivered", s.ID)
	})
}

// HistoryHandler returns the transcript, including any closing pitch that
// was appended after the recommendation turn returned.
func HistoryHandler(mgr *Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Query().Get("session_id")
		if id == "" {
			http.Error(w, "session_id required", http.StatusBadRequest)
			return
		}

		s := mgr.Get(r.Context(), id)
		s.Lock()
		msgs := make([]model.ChatMessage, len(s.Messages))
		copy(msgs, s.Messages)
		s.Unlock()

		json.NewEncoder(w).Encode(msgs)
	}
}

// CatalogHandler serves the strategy-grouped product overview.
func CatalogHandler(d *Dispatcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte(d.Catalog.Summary()))
	}
}
