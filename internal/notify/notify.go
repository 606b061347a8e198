// Package notify renders transient status toasts. The surface is a
// single slot: showing a new notification evicts the visible one
// immediately, and each notification self-dismisses after a fixed
// display duration unless the user dismisses it first.
package notify

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vidface/cli/internal/theme"
)

// Level selects the visual treatment of a notification. It never
// affects timing or behavior.
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelError
)

// DisplayDuration is how long a notification stays visible before
// dismissing itself.
const DisplayDuration = 5 * time.Second

// ShowMsg requests that a notification be displayed.
type ShowMsg struct {
	Message string
	Level   Level
}

// expiredMsg fires when a notification's display time elapses. The seq
// ties it to the notification it was scheduled for, so a timer from an
// evicted notification cannot dismiss its replacement.
type expiredMsg struct {
	seq int
}

// Show returns a command that displays a notification. Safe to call
// from any error path.
func Show(message string, level Level) tea.Cmd {
	return func() tea.Msg {
		return ShowMsg{Message: message, Level: level}
	}
}

// Model is the single-slot toast component.
type Model struct {
	message  string
	level    Level
	seq      int
	visible  bool
	lifetime time.Duration
	width    int
}

// New creates a toast model with the default display duration.
func New(width int) Model {
	return Model{lifetime: DisplayDuration, width: width}
}

// SetLifetime overrides the display duration (used by tests).
func (m *Model) SetLifetime(d time.Duration) {
	m.lifetime = d
}

// SetWidth updates the available render width.
func (m *Model) SetWidth(width int) {
	m.width = width
}

// Visible reports whether a notification is currently displayed.
func (m Model) Visible() bool {
	return m.visible
}

// Message returns the currently displayed text, or "".
func (m Model) Message() string {
	if !m.visible {
		return ""
	}
	return m.message
}

// Update handles show, expiry, and dismissal messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ShowMsg:
		// Last message wins; the previous one is evicted immediately.
		m.seq++
		m.message = msg.Message
		m.level = msg.Level
		m.visible = true

		seq := m.seq
		lifetime := m.lifetime
		return m, tea.Tick(lifetime, func(time.Time) tea.Msg {
			return expiredMsg{seq: seq}
		})

	case expiredMsg:
		// Ignore timers belonging to an already-evicted notification.
		if msg.seq == m.seq {
			m.visible = false
		}
		return m, nil
	}

	return m, nil
}

// Dismiss hides the current notification ahead of its timer.
func (m Model) Dismiss() Model {
	m.visible = false
	return m
}

// View renders the toast, or "" when nothing is displayed.
func (m Model) View() string {
	if !m.visible {
		return ""
	}

	var style lipgloss.Style
	switch m.level {
	case LevelSuccess:
		style = theme.ToastSuccessStyle
	case LevelError:
		style = theme.ToastErrorStyle
	default:
		style = theme.ToastInfoStyle
	}

	maxWidth := m.width - 4
	if maxWidth > 0 {
		style = style.MaxWidth(maxWidth)
	}
	return style.Render(m.message)
}
