package reviewsview

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vidface/cli/internal/avatar"
	"github.com/vidface/cli/internal/model"
	"github.com/vidface/cli/internal/theme"
)

// RotateInterval is how long each testimonial stays on screen before
// the carousel advances.
const RotateInterval = 3 * time.Second

// TickMsg advances the carousel. Seq guards against ticks from a
// paused or superseded rotation schedule.
type TickMsg struct {
	Seq int
}

// Model is the rotating testimonial carousel.
type Model struct {
	reviews  []model.Review
	interval time.Duration
	index    int
	paused   bool
	seq      int
	width    int
	height   int
}

// New creates a carousel over the built-in testimonial sequence.
func New(width, height int) Model {
	return Model{
		reviews:  model.Reviews,
		interval: RotateInterval,
		width:    width,
		height:   height,
	}
}

// SetInterval overrides the rotation cadence.
func (m *Model) SetInterval(d time.Duration) {
	if d > 0 {
		m.interval = d
	}
}

// Init schedules the first rotation.
func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles messages for the carousel.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		if msg.Seq != m.seq || m.paused {
			return m, nil
		}
		m.index = (m.index + 1) % len(m.reviews)
		return m, m.tick()

	case tea.KeyMsg:
		switch msg.String() {
		case "left", "h":
			m.index = (m.index - 1 + len(m.reviews)) % len(m.reviews)
			return m, nil
		case "right", "l":
			m.index = (m.index + 1) % len(m.reviews)
			return m, nil
		case " ":
			return m.togglePause()
		}
	}

	return m, nil
}

// togglePause stops or restarts automatic rotation. Restarting bumps
// the sequence so a stale pending tick cannot double-advance.
func (m Model) togglePause() (Model, tea.Cmd) {
	m.paused = !m.paused
	m.seq++
	if m.paused {
		return m, nil
	}
	return m, m.tick()
}

// Pause stops automatic rotation, used when the view gains keyboard
// focus for reading.
func (m *Model) Pause() {
	m.paused = true
	m.seq++
}

// Resume restarts automatic rotation from the current position.
func (m *Model) Resume() tea.Cmd {
	m.paused = false
	m.seq++
	return m.tick()
}

// Index returns the current carousel position.
func (m Model) Index() int {
	return m.index
}

// Paused reports whether automatic rotation is stopped.
func (m Model) Paused() bool {
	return m.paused
}

// tick schedules the next rotation step.
func (m Model) tick() tea.Cmd {
	seq := m.seq
	return tea.Tick(m.interval, func(time.Time) tea.Msg {
		return TickMsg{Seq: seq}
	})
}

// View renders the current testimonial with its progress indicator.
func (m Model) View() string {
	if len(m.reviews) == 0 {
		return ""
	}

	r := m.reviews[m.index]

	initial, color, _ := avatar.ForName(r.Author, 32)
	badge := theme.InitialBadgeStyle(color).Render(initial)

	author := lipgloss.NewStyle().Bold(true).Render(r.Author)
	role := theme.DimmedStyle.Render(r.Role)

	quote := lipgloss.NewStyle().
		Width(m.width - 10).
		Italic(true).
		Render("“" + r.Quote + "”")

	progress := theme.DimmedStyle.Render(
		fmt.Sprintf("%d / %d", m.index+1, len(m.reviews)),
	)
	if m.paused {
		progress += theme.DimmedStyle.Render("  (paused)")
	}

	body := lipgloss.JoinVertical(
		lipgloss.Left,
		badge+" "+author+"  "+role,
		"",
		quote,
		"",
		progress,
		theme.HelpStyle.Render("←/→ browse · space pause"),
	)

	return theme.PanelStyle.Width(m.width - 4).Render(body)
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
