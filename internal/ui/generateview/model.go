package generateview

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vidface/cli/internal/api"
	"github.com/vidface/cli/internal/generate"
	"github.com/vidface/cli/internal/keys"
	"github.com/vidface/cli/internal/model"
	"github.com/vidface/cli/internal/store"
	"github.com/vidface/cli/internal/theme"
)

// ScriptSoftLimit is where the character counter starts warning. The
// backend accepts longer scripts but generation time grows quickly.
const ScriptSoftLimit = 1000

// scriptWarnThreshold is where the counter turns yellow.
const scriptWarnThreshold = 900

// AvatarsLoadedMsg is sent when the presenter catalog has been loaded.
type AvatarsLoadedMsg struct {
	Avatars []model.Avatar
}

// DraftSavedMsg is sent after a draft save attempt completes.
type DraftSavedMsg struct {
	Name string
	Err  error
}

// DraftsLoadedMsg is sent when saved drafts have been loaded.
type DraftsLoadedMsg struct {
	Drafts []model.ScriptDraft
}

// overlay selects which picker, if any, covers the editor.
type overlay int

const (
	overlayNone overlay = iota
	overlayTemplates
	overlayAvatars
	overlayDrafts
)

// jobState tracks the run the view is currently displaying.
type jobState struct {
	active   bool
	status   string
	progress float64
	attempt  int
	message  string
	assetURL string
	done     bool
	failed   bool
}

// Model is the video generation view: script editor, avatar selection,
// and live run status.
type Model struct {
	editor   textarea.Model
	spinner  spinner.Model
	progress progress.Model

	workflow *generate.Workflow
	store    store.Store
	client   *api.Client
	keys     *keys.KeyMap

	avatars     []model.Avatar
	avatarIndex int
	drafts      []model.ScriptDraft
	overlay     overlay
	overlayIdx  int

	job jobState

	width  int
	height int
}

// New creates a new generate view model.
func New(w *generate.Workflow, s store.Store, c *api.Client, k *keys.KeyMap, width, height int) Model {
	ta := textarea.New()
	ta.Placeholder = "Write the script your avatar will speak..."
	ta.CharLimit = 0
	ta.SetWidth(width - 6)
	ta.SetHeight(10)
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.ColorBlue)

	pb := progress.New(progress.WithDefaultGradient())

	return Model{
		editor:   ta,
		spinner:  sp,
		progress: pb,
		workflow: w,
		store:    s,
		client:   c,
		keys:     k,
		width:    width,
		height:   height,
	}
}

// Init loads the avatar catalog and starts the spinner ticking.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.LoadAvatars(), m.spinner.Tick)
}

// Update handles messages for the generate view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case AvatarsLoadedMsg:
		m.avatars = msg.Avatars
		m.avatarIndex = 0
		for i, a := range m.avatars {
			if a.ID == model.DefaultAvatarID {
				m.avatarIndex = i
				break
			}
		}
		return m, nil

	case DraftsLoadedMsg:
		m.drafts = msg.Drafts
		m.overlayIdx = 0
		return m, nil

	case DraftSavedMsg:
		return m, nil

	case generate.JobSubmittedMsg:
		m.job = jobState{active: true, status: model.StatusPending}
		return m, nil

	case generate.JobProgressMsg:
		m.job.active = true
		m.job.status = msg.Status
		m.job.progress = msg.Progress
		m.job.attempt = msg.Attempt
		return m, nil

	case generate.JobReadyMsg:
		m.job.active = false
		m.job.done = true
		m.job.status = model.StatusCompleted
		m.job.progress = 100
		m.job.assetURL = msg.AssetURL
		return m, nil

	case generate.JobFailedMsg:
		m.job.active = false
		m.job.failed = true
		m.job.message = msg.Message
		return m, nil

	case generate.JobTimedOutMsg:
		m.job.active = false
		m.job.failed = true
		m.job.message = msg.Message
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.overlay != overlayNone {
			return m.handleOverlayKeys(msg)
		}
		return m.handleEditorKeys(msg)
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

// EditorFocused reports whether the script editor is capturing keys.
// While focused, printable keys type into the script instead of acting
// as shortcuts.
func (m Model) EditorFocused() bool {
	return m.editor.Focused()
}

// handleEditorKeys processes key input while the script editor is active.
func (m Model) handleEditorKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	// Esc toggles out of typing so single-letter shortcuts and view
	// switching become available; i or enter resumes typing.
	if m.editor.Focused() {
		if msg.String() == "esc" {
			m.editor.Blur()
			return m, nil
		}
	} else {
		switch msg.String() {
		case "i", "enter":
			return m, m.editor.Focus()
		}
	}

	switch {
	case key.Matches(msg, m.keys.Submit):
		if m.workflow.InFlight() {
			return m, nil
		}
		m.job = jobState{}
		m.workflow.Begin(m.editor.Value(), m.selectedAvatarID())
		return m, nil

	case key.Matches(msg, m.keys.SaveDraft):
		return m, m.saveDraft()

	case msg.String() == "ctrl+o":
		m.overlay = overlayDrafts
		return m, m.loadDrafts()
	}

	// Single-letter shortcuts only apply while not typing.
	if !m.editor.Focused() {
		switch {
		case key.Matches(msg, m.keys.Template):
			m.overlay = overlayTemplates
			m.overlayIdx = 0
			return m, nil

		case key.Matches(msg, m.keys.PickAvatar):
			if len(m.avatars) == 0 {
				return m, m.LoadAvatars()
			}
			m.overlay = overlayAvatars
			m.overlayIdx = m.avatarIndex
			return m, nil
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

// handleOverlayKeys processes key input while a picker overlay is open.
func (m Model) handleOverlayKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	count := m.overlayCount()

	switch {
	case key.Matches(msg, m.keys.Back):
		m.overlay = overlayNone
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if count > 0 {
			m.overlayIdx = (m.overlayIdx + 1) % count
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if count > 0 {
			m.overlayIdx = (m.overlayIdx - 1 + count) % count
		}
		return m, nil

	case key.Matches(msg, m.keys.Select):
		return m.applyOverlaySelection()
	}

	return m, nil
}

// overlayCount returns the number of entries in the open overlay.
func (m Model) overlayCount() int {
	switch m.overlay {
	case overlayTemplates:
		return len(model.Templates)
	case overlayAvatars:
		return len(m.avatars)
	case overlayDrafts:
		return len(m.drafts)
	}
	return 0
}

// applyOverlaySelection commits the highlighted overlay entry.
func (m Model) applyOverlaySelection() (Model, tea.Cmd) {
	switch m.overlay {
	case overlayTemplates:
		if m.overlayIdx < len(model.Templates) {
			m.editor.SetValue(model.Templates[m.overlayIdx].Body)
		}

	case overlayAvatars:
		if m.overlayIdx < len(m.avatars) {
			m.avatarIndex = m.overlayIdx
		}

	case overlayDrafts:
		if m.overlayIdx < len(m.drafts) {
			draft := m.drafts[m.overlayIdx]
			m.editor.SetValue(draft.Body)
			for i, a := range m.avatars {
				if a.ID == draft.AvatarID {
					m.avatarIndex = i
					break
				}
			}
		}
	}

	m.overlay = overlayNone
	return m, nil
}

// selectedAvatarID returns the chosen presenter, defaulting when the
// catalog has not loaded.
func (m Model) selectedAvatarID() int {
	if m.avatarIndex < len(m.avatars) {
		return m.avatars[m.avatarIndex].ID
	}
	return model.DefaultAvatarID
}

// View renders the generate view.
func (m Model) View() string {
	if m.overlay != overlayNone {
		return m.renderOverlay()
	}

	sections := []string{
		m.renderEditor(),
		m.renderMeta(),
		m.renderStatus(),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderEditor draws the script editor with its character counter.
func (m Model) renderEditor() string {
	counter := m.renderCounter()
	body := m.editor.View() + "\n" + counter
	return theme.FocusedPanelStyle.Width(m.width - 4).Render(body)
}

// renderCounter colors the character count as the script approaches the
// soft limit.
func (m Model) renderCounter() string {
	n := len([]rune(m.editor.Value()))
	text := fmt.Sprintf("%d/%d", n, ScriptSoftLimit)

	style := lipgloss.NewStyle().Foreground(theme.ColorGray)
	switch {
	case n >= ScriptSoftLimit:
		style = lipgloss.NewStyle().Foreground(theme.ColorRed).Bold(true)
	case n >= scriptWarnThreshold:
		style = lipgloss.NewStyle().Foreground(theme.ColorYellow)
	}
	return style.Render(text)
}

// renderMeta draws the avatar selection line and keyboard hints.
func (m Model) renderMeta() string {
	avatarLabel := "default"
	if m.avatarIndex < len(m.avatars) {
		avatarLabel = m.avatars[m.avatarIndex].Name
	}
	avatarLine := fmt.Sprintf("Avatar: %s", avatarLabel)

	mode := "esc shortcuts"
	if !m.editor.Focused() {
		mode = "i type"
	}
	hints := theme.HelpStyle.Render(
		"ctrl+s generate · " + mode + " · t templates · a avatar · ctrl+d save draft · ctrl+o open draft",
	)
	return lipgloss.JoinVertical(lipgloss.Left, avatarLine, hints)
}

// renderStatus draws the live run panel.
func (m Model) renderStatus() string {
	switch {
	case m.workflow.InFlight():
		label := m.workflow.Phase().String()
		line := fmt.Sprintf("%s %s", m.spinner.View(), label)
		if m.job.status != "" {
			line += "  " + theme.StatusStyle(m.job.status).Render(m.job.status)
		}
		bar := m.progress.ViewAs(m.job.progress / 100)
		return theme.PanelStyle.Width(m.width - 4).Render(line + "\n" + bar)

	case m.job.done:
		body := theme.StatusStyle(model.StatusCompleted).Render("ready") +
			"\nVideo: " + m.job.assetURL +
			"\n" + theme.HelpStyle.Render("open the library (2) to download")
		return theme.PanelStyle.Width(m.width - 4).Render(body)

	case m.job.failed:
		body := theme.StatusStyle(model.StatusFailed).Render("failed") +
			"\n" + m.job.message
		return theme.PanelStyle.Width(m.width - 4).Render(body)
	}

	return ""
}

// renderOverlay draws the open picker list.
func (m Model) renderOverlay() string {
	var title string
	var lines []string

	switch m.overlay {
	case overlayTemplates:
		title = "Templates"
		for i, t := range model.Templates {
			lines = append(lines, m.overlayLine(i, t.Name))
		}
	case overlayAvatars:
		title = "Avatars"
		for i, a := range m.avatars {
			label := a.Name
			if a.Category != "" {
				label += "  " + theme.DimmedStyle.Render(a.Category)
			}
			lines = append(lines, m.overlayLine(i, label))
		}
	case overlayDrafts:
		title = "Drafts"
		if len(m.drafts) == 0 {
			lines = append(lines, theme.DimmedStyle.Render("No saved drafts."))
		}
		for i, d := range m.drafts {
			lines = append(lines, m.overlayLine(i, d.Name))
		}
	}

	body := theme.HeaderStyle.Render(title) + "\n" +
		strings.Join(lines, "\n") + "\n" +
		theme.HelpStyle.Render("enter select · esc close")
	return theme.FocusedPanelStyle.Width(m.width - 4).Render(body)
}

// overlayLine renders one overlay row with selection highlighting.
func (m Model) overlayLine(i int, label string) string {
	if i == m.overlayIdx {
		return theme.SelectedItemStyle.Render(label)
	}
	return theme.ListItemStyle.Render(label)
}

// LoadAvatars returns a tea.Cmd that reads the cached catalog, fetching
// from the backend when the cache is empty.
func (m Model) LoadAvatars() tea.Cmd {
	s := m.store
	c := m.client
	return func() tea.Msg {
		ctx := context.Background()

		avatars, err := s.GetAvatars(ctx)
		if err == nil && len(avatars) > 0 {
			return AvatarsLoadedMsg{Avatars: avatars}
		}

		fetched, err := c.Avatars(ctx)
		if err != nil {
			return AvatarsLoadedMsg{}
		}
		_ = s.UpsertAvatars(ctx, fetched)
		return AvatarsLoadedMsg{Avatars: fetched}
	}
}

// saveDraft persists the current editor content as a named draft.
func (m Model) saveDraft() tea.Cmd {
	body := m.editor.Value()
	avatarID := m.selectedAvatarID()
	s := m.store

	if strings.TrimSpace(body) == "" {
		return func() tea.Msg {
			return DraftSavedMsg{Err: fmt.Errorf("nothing to save")}
		}
	}

	return func() tea.Msg {
		name := draftName(body)
		_, err := s.CreateDraft(context.Background(), model.ScriptDraft{
			Name:     name,
			Body:     body,
			AvatarID: avatarID,
		})
		return DraftSavedMsg{Name: name, Err: err}
	}
}

// loadDrafts returns a tea.Cmd that reads the saved drafts.
func (m Model) loadDrafts() tea.Cmd {
	s := m.store
	return func() tea.Msg {
		drafts, err := s.GetDrafts(context.Background())
		if err != nil {
			return DraftsLoadedMsg{}
		}
		return DraftsLoadedMsg{Drafts: drafts}
	}
}

// draftName derives a short label from the script head.
func draftName(body string) string {
	fields := strings.Fields(body)
	if len(fields) > 6 {
		fields = fields[:6]
	}
	name := strings.Join(fields, " ")
	if len(name) > 48 {
		name = name[:48]
	}
	return name
}

// SetSize updates the editor dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.editor.SetWidth(width - 6)
	m.progress.Width = width - 10
}
