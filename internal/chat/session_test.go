package chat

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finadvisor/internal/model"
)

func TestScheduleClosingFires(t *testing.T) {
	s := NewSession("s1")
	fired := make(chan struct{})

	s.Lock()
	s.ScheduleClosing(10*time.Millisecond, func() {
		close(fired)
	})
	assert.Equal(t, StateClosingPending, s.State)
	s.Unlock()

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("closing pitch never fired")
	}
}

func TestCancelClosingStopsThePitch(t *testing.T) {
	s := NewSession("s2")
	fired := make(chan struct{})

	s.Lock()
	s.ScheduleClosing(20*time.Millisecond, func() {
		close(fired)
	})
	s.CancelClosing()
	assert.Equal(t, StateRecommendationShown, s.State)
	s.Unlock()

	select {
	case <-fired:
		t.Fatal("canceled pitch still fired")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestReArmingReplacesTheOlderTimer(t *testing.T) {
	s := NewSession("s3")
	fires := make(chan string, 2)

	s.Lock()
	s.ScheduleClosing(20*time.Millisecond, func() { fires <- "old" })
	s.ScheduleClosing(40*time.Millisecond, func() { fires <- "new" })
	s.Unlock()

	// Only the newer timer may fire; the generation check silences the old
	// one even if it slipped past Stop.
	select {
	case who := <-fires:
		assert.Equal(t, "new", who)
	case <-time.After(time.Second):
		t.Fatal("no pitch fired")
	}
	select {
	case <-fires:
		t.Fatal("replaced pitch fired too")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestFireRunsWithSessionLocked(t *testing.T) {
	s := NewSession("s4")
	done := make(chan struct{})

	s.Lock()
	s.ScheduleClosing(10*time.Millisecond, func() {
		// The callback owns the lock, so mutating the transcript here is
		// safe against concurrent turns.
		s.Append(model.ChatMessage{Role: "assistant", Content: "pitch"})
		close(done)
	})
	s.Unlock()

	<-done
	s.Lock()
	require.Len(t, s.Messages, 1)
	assert.Equal(t, "pitch", s.Messages[0].Content)
	s.Unlock()
}

func TestManagerReturnsSameSessionForSameID(t *testing.T) {
	m := NewManager(nil)

	a := m.Get(context.Background(), "abc")
	b := m.Get(context.Background(), "abc")
	assert.Same(t, a, b)

	c := m.Get(context.Background(), "def")
	assert.NotSame(t, a, c)
}

func TestManagerEndDropsSessionAndPendingPitch(t *testing.T) {
	m := NewManager(nil)
	fired := make(chan struct{})

	s := m.Get(context.Background(), "abc")
	s.Lock()
	s.ScheduleClosing(20*time.Millisecond, func() { close(fired) })
	s.Unlock()

	m.End("abc")

	select {
	case <-fired:
		t.Fatal("pitch fired after the session ended")
	case <-time.After(100 * time.Millisecond):
	}

	// A fresh session comes back for the same id.
	again := m.Get(context.Background(), "abc")
	assert.NotSame(t, s, again)
	assert.Empty(t, again.Messages)
}

func TestStateStrings(t *testing.T) {
	assert.Equal(t, "awaiting_slots", StateAwaitingSlots.String())
	assert.Equal(t, "closing_pending", StateClosingPending.String())
	assert.Equal(t, "unknown", State(99).String())
}
