package profileview

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/vidface/cli/internal/api"
	"github.com/vidface/cli/internal/avatar"
	"github.com/vidface/cli/internal/model"
	"github.com/vidface/cli/internal/theme"
)

// ProfileLoadedMsg is sent when the account record has been fetched.
// Placeholder is set when the fetch failed for a non-auth reason and
// the view is showing the generic fallback identity instead.
type ProfileLoadedMsg struct {
	Profile     model.Profile
	Stats       *api.UserStats
	Placeholder bool
}

// ProfileSavedMsg is sent after a profile edit attempt completes.
type ProfileSavedMsg struct {
	Profile model.Profile
	Err     error
}

// SignedOutMsg is dispatched when the user logs out from this view.
type SignedOutMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	fullName string
	bio      string
	company  string
	website  string
}

// Model is the profile view: identity panel, activity stats, and the
// profile edit form.
type Model struct {
	profile model.Profile
	stats   *api.UserStats
	client  *api.Client

	form    *huh.Form
	fb      *formBindings
	editing bool
	loaded  bool

	width  int
	height int
}

// New creates a new profile model.
func New(c *api.Client, width, height int) Model {
	return Model{
		fb:     &formBindings{},
		client: c,
		width:  width,
		height: height,
	}
}

// Init fetches the account record.
func (m Model) Init() tea.Cmd {
	return m.LoadProfile()
}

// Update handles messages for the profile view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ProfileLoadedMsg:
		m.profile = msg.Profile
		m.stats = msg.Stats
		m.loaded = true
		return m, nil

	case ProfileSavedMsg:
		m.editing = false
		m.form = nil
		if msg.Err == nil {
			m.profile = msg.Profile
		}
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			return m.updateForm(msg)
		}
		switch msg.String() {
		case "e":
			return m.startEdit()
		case "r":
			return m, m.LoadProfile()
		case "ctrl+l":
			m.client.Logout()
			return m, func() tea.Msg { return SignedOutMsg{} }
		}
		return m, nil
	}

	if m.editing {
		return m.updateForm(msg)
	}
	return m, nil
}

// Editing reports whether the edit form is capturing keys.
func (m Model) Editing() bool {
	return m.editing
}

// startEdit opens the profile edit form seeded with current values.
func (m Model) startEdit() (Model, tea.Cmd) {
	m.fb.fullName = m.profile.FullName
	m.fb.bio = m.profile.Bio
	m.fb.company = m.profile.Company
	m.fb.website = m.profile.Website
	m.form = m.buildEditForm()
	m.editing = true
	return m, m.form.Init()
}

// updateForm drives the huh form while editing.
func (m Model) updateForm(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, m.saveProfile()
	}
	if m.form.State == huh.StateAborted {
		m.editing = false
		m.form = nil
		return m, nil
	}

	return m, cmd
}

func (m *Model) buildEditForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Full name").
				Value(&m.fb.fullName),
			huh.NewText().
				Title("Bio").
				Placeholder("A short line about you...").
				Value(&m.fb.bio),
			huh.NewInput().
				Title("Company").
				Value(&m.fb.company),
			huh.NewInput().
				Title("Website").
				Value(&m.fb.website),
		),
	).WithWidth(m.formWidth())
}

// View renders the profile view.
func (m Model) View() string {
	if m.editing && m.form != nil {
		title := lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.ColorWhite).
			MarginBottom(1).
			Render("Edit Profile")
		return lipgloss.NewStyle().Padding(1, 2).Render(title + "\n" + m.form.View())
	}

	if !m.loaded {
		return theme.DimmedStyle.Padding(1, 2).Render("Loading profile...")
	}

	sections := []string{m.renderIdentity()}
	if m.stats != nil {
		sections = append(sections, m.renderStats())
	}
	sections = append(sections, theme.HelpStyle.Render(
		"e edit · r refresh · ctrl+l sign out",
	))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderIdentity draws the avatar badge and account fields.
func (m Model) renderIdentity() string {
	name := m.profile.DisplayName()

	var badge string
	if m.profile.HasPhoto() {
		badge = theme.InitialBadgeStyle("#8b5cf6").Render("⚉")
	} else {
		initial, color, _ := avatar.ForName(name, 32)
		badge = theme.InitialBadgeStyle(color).Render(initial)
	}

	nameLine := lipgloss.NewStyle().Bold(true).Render(name)
	if m.profile.IsVerified {
		nameLine += lipgloss.NewStyle().Foreground(theme.ColorBlue).Render(" ✓")
	}

	lines := []string{
		badge + " " + nameLine,
		theme.DimmedStyle.Render(m.profile.Email),
	}
	if m.profile.Bio != "" {
		lines = append(lines, m.profile.Bio)
	}
	if m.profile.Company != "" {
		lines = append(lines, "Company: "+m.profile.Company)
	}
	if m.profile.Website != "" {
		lines = append(lines, "Website: "+m.profile.Website)
	}
	if m.profile.SubscriptionTier != "" {
		lines = append(lines, "Plan: "+m.profile.SubscriptionTier)
	}

	return theme.PanelStyle.Width(m.width - 4).Render(
		lipgloss.JoinVertical(lipgloss.Left, lines...),
	)
}

// renderStats draws the generation activity summary.
func (m Model) renderStats() string {
	body := fmt.Sprintf(
		"Videos: %d   Completed: %d   Failed: %d   Total duration: %.0fs",
		m.stats.TotalVideos,
		m.stats.CompletedVideos,
		m.stats.FailedVideos,
		m.stats.TotalDuration,
	)
	return theme.PanelStyle.Width(m.width - 4).Render(body)
}

// LoadProfile returns a tea.Cmd that fetches the account record and
// stats. Non-auth failures fall back to the placeholder identity so the
// view still renders; auth failures surface through the session store's
// invalidation listener instead.
func (m Model) LoadProfile() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		ctx := context.Background()

		profile, err := c.Profile(ctx)
		if err != nil {
			// An expired session already surfaced through the store's
			// invalidation listener; anything else degrades to the
			// generic identity.
			return ProfileLoadedMsg{
				Profile:     model.PlaceholderProfile(),
				Placeholder: true,
			}
		}

		// Stats are decoration; a failed fetch leaves the panel out.
		stats, _ := c.Stats(ctx)

		return ProfileLoadedMsg{Profile: *profile, Stats: stats}
	}
}

// saveProfile sends the edited fields to the backend.
func (m Model) saveProfile() tea.Cmd {
	c := m.client
	fb := *m.fb
	return func() tea.Msg {
		profile, err := c.UpdateProfile(context.Background(), api.ProfileUpdate{
			FullName: fb.fullName,
			Bio:      fb.bio,
			Company:  fb.company,
			Website:  fb.website,
		})
		if err != nil {
			return ProfileSavedMsg{Err: err}
		}
		return ProfileSavedMsg{Profile: *profile}
	}
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
