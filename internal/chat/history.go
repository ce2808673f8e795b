package chat

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"finadvisor/internal/model"
)

const historyTTL = 30 * time.Minute

// HistoryStore mirrors a session transcript into redis with a rolling TTL.
// It is a mirror, not the source of truth: slots and exclusions live in the
// Session, the mirror only lets a restarted process pick the transcript
// back up within the TTL. Failures are logged and swallowed; the chat never
// depends on redis being up.
type HistoryStore struct {
	Client *redis.Client
}

func (h *HistoryStore) key(sessionID string) string {
	return "advisor:history:" + sessionID
}

func (h *HistoryStore) Load(ctx context.Context, sessionID string) []model.ChatMessage {
	val, err := h.Client.Get(ctx, h.key(sessionID)).Result()
	if err != nil {
		return nil
	}

	var msgs []model.ChatMessage
	if err := json.Unmarshal([]byte(val), &msgs); err != nil {
		log.Printf("[History] corrupt transcript for %s: %v", sessionID, err)
		return nil
	}
	return msgs
}

func (h *HistoryStore) Save(ctx context.Context, sessionID string, msgs []model.ChatMessage) {
	b, err := json.Marshal(msgs)
	if err != nil {
		return
	}
	if err := h.Client.Set(ctx, h.key(sessionID), b, historyTTL).Err(); err != nil {
		log.Printf("[History] save %s: %v", sessionID, err)
	}
}
