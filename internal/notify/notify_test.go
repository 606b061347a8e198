package notify

import (
	"testing"
	"time"
)

func TestShowDisplaysMessage(t *testing.T) {
	m := New(80)

	m, cmd := m.Update(ShowMsg{Message: "Video ready!", Level: LevelSuccess})
	if !m.Visible() {
		t.Fatal("notification should be visible after ShowMsg")
	}
	if got := m.Message(); got != "Video ready!" {
		t.Fatalf("Message = %q", got)
	}
	if cmd == nil {
		t.Fatal("ShowMsg should schedule an expiry timer")
	}
}

func TestNewestNotificationWins(t *testing.T) {
	m := New(80)

	m, _ = m.Update(ShowMsg{Message: "first", Level: LevelInfo})
	m, _ = m.Update(ShowMsg{Message: "second", Level: LevelError})

	if got := m.Message(); got != "second" {
		t.Fatalf("Message = %q, want the newest", got)
	}
}

func TestExpiryDismisses(t *testing.T) {
	m := New(80)
	m.SetLifetime(time.Millisecond)

	m, _ = m.Update(ShowMsg{Message: "fleeting", Level: LevelInfo})
	m, _ = m.Update(expiredMsg{seq: 1})

	if m.Visible() {
		t.Fatal("notification should be gone after its timer fires")
	}
}

func TestStaleTimerDoesNotDismissReplacement(t *testing.T) {
	m := New(80)

	m, _ = m.Update(ShowMsg{Message: "first", Level: LevelInfo})
	m, _ = m.Update(ShowMsg{Message: "second", Level: LevelInfo})

	// The first notification's timer fires after it was evicted.
	m, _ = m.Update(expiredMsg{seq: 1})
	if !m.Visible() {
		t.Fatal("stale timer must not dismiss the newer notification")
	}

	m, _ = m.Update(expiredMsg{seq: 2})
	if m.Visible() {
		t.Fatal("the current timer should dismiss its own notification")
	}
}

func TestManualDismiss(t *testing.T) {
	m := New(80)

	m, _ = m.Update(ShowMsg{Message: "dismiss me", Level: LevelInfo})
	m = m.Dismiss()

	if m.Visible() {
		t.Fatal("Dismiss should hide the notification")
	}
	if m.View() != "" {
		t.Fatal("View should render nothing after dismissal")
	}
}
