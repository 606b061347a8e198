package reviewsview

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vidface/cli/internal/model"
)

func TestTickAdvancesAndWraps(t *testing.T) {
	m := New(80, 24)
	n := len(model.Reviews)

	for i := 0; i < n; i++ {
		if m.Index() != i {
			t.Fatalf("expected index %d, got %d", i, m.Index())
		}
		m, _ = m.Update(TickMsg{Seq: 0})
	}

	if m.Index() != 0 {
		t.Errorf("expected wrap to 0 after %d ticks, got %d", n, m.Index())
	}
}

func TestStaleTickIgnored(t *testing.T) {
	m := New(80, 24)

	m, _ = m.Update(TickMsg{Seq: 99})
	if m.Index() != 0 {
		t.Errorf("stale tick advanced the carousel to %d", m.Index())
	}
}

func TestPauseStopsRotation(t *testing.T) {
	m := New(80, 24)
	m.Pause()

	if !m.Paused() {
		t.Fatal("expected carousel paused")
	}

	before := m.Index()
	m, cmd := m.Update(TickMsg{Seq: 0})
	if m.Index() != before {
		t.Errorf("paused carousel advanced from %d to %d", before, m.Index())
	}
	if cmd != nil {
		t.Error("paused carousel rescheduled a tick")
	}
}

func TestResumeBumpsSequence(t *testing.T) {
	m := New(80, 24)
	m.Pause()
	seqAfterPause := m.seq

	cmd := m.Resume()
	if cmd == nil {
		t.Fatal("expected resume to schedule a tick")
	}
	if m.seq == seqAfterPause {
		t.Error("resume did not bump the tick sequence")
	}

	// A tick scheduled before the pause must not advance the resumed carousel.
	m, _ = m.Update(TickMsg{Seq: seqAfterPause - 1})
	if m.Index() != 0 {
		t.Errorf("pre-pause tick advanced the carousel to %d", m.Index())
	}
}

func TestManualNavigation(t *testing.T) {
	m := New(80, 24)
	n := len(model.Reviews)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if m.Index() != n-1 {
		t.Errorf("expected backward wrap to %d, got %d", n-1, m.Index())
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.Index() != 0 {
		t.Errorf("expected forward wrap to 0, got %d", m.Index())
	}
}
