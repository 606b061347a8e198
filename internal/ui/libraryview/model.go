package libraryview

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vidface/cli/internal/api"
	"github.com/vidface/cli/internal/keys"
	"github.com/vidface/cli/internal/model"
	"github.com/vidface/cli/internal/store"
	"github.com/vidface/cli/internal/theme"
)

// VideosLoadedMsg is sent when cached jobs have been loaded from the store.
type VideosLoadedMsg struct {
	Jobs []model.VideoJob
}

// RefreshDoneMsg is sent after a backend refresh attempt completes.
type RefreshDoneMsg struct {
	Count int
	Err   error
}

// VideoDeletedMsg is sent after a delete request completes.
type VideoDeletedMsg struct {
	ID  int
	Err error
}

// DownloadResolvedMsg is sent after a download location request completes.
type DownloadResolvedMsg struct {
	ID  int
	URL string
	Err error
}

// Model is the video library view: the locally cached job list backed
// by the remote account library.
type Model struct {
	list        list.Model
	store       store.Store
	client      *api.Client
	keys        *keys.KeyMap
	filter      store.VideoFilter
	searchMode  bool
	searchInput textinput.Model
	width       int
	height      int
}

// New creates a new library model.
func New(s store.Store, c *api.Client, k *keys.KeyMap, width, height int) Model {
	delegate := VideoDelegate{}
	l := list.New([]list.Item{}, delegate, width, height-2)
	l.Title = "My Videos"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	si := textinput.New()
	si.Placeholder = "search videos..."
	si.Prompt = "/ "
	si.Width = width - 4

	return Model{
		list:   l,
		store:  s,
		client: c,
		keys:   k,
		filter: store.VideoFilter{
			SortBy:   "created_at",
			SortDesc: true,
		},
		searchInput: si,
		width:       width,
		height:      height,
	}
}

// Init loads the cached jobs and kicks off a backend refresh.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.LoadVideos(), m.Refresh())
}

// Update handles messages for the library view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case VideosLoadedMsg:
		items := make([]list.Item, len(msg.Jobs))
		for i, job := range msg.Jobs {
			items[i] = VideoItem{Job: job}
		}
		cmd := m.list.SetItems(items)
		return m, cmd

	case RefreshDoneMsg:
		if msg.Err != nil {
			return m, nil
		}
		return m, m.LoadVideos()

	case VideoDeletedMsg:
		if msg.Err != nil {
			return m, nil
		}
		return m, m.LoadVideos()

	case tea.KeyMsg:
		if m.searchMode {
			return m.handleSearchKeys(msg)
		}
		return m.handleNormalKeys(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// handleSearchKeys processes key input while in search mode.
func (m Model) handleSearchKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searchMode = false
		query := m.searchInput.Value()
		if query != "" {
			m.filter.Query = &query
		} else {
			m.filter.Query = nil
		}
		return m, m.LoadVideos()

	case "esc":
		m.searchMode = false
		m.searchInput.Reset()
		m.filter.Query = nil
		return m, m.LoadVideos()
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// handleNormalKeys processes key input in normal (non-search) mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Refresh):
		return m, m.Refresh()

	case key.Matches(msg, m.keys.Search):
		m.searchMode = true
		m.searchInput.Reset()
		return m, m.searchInput.Focus()

	case key.Matches(msg, m.keys.Delete):
		item, ok := m.list.SelectedItem().(VideoItem)
		if !ok {
			return m, nil
		}
		return m, m.deleteVideo(item.Job.ID)

	case key.Matches(msg, m.keys.Download):
		item, ok := m.list.SelectedItem().(VideoItem)
		if !ok || item.Job.Status != model.StatusCompleted {
			return m, nil
		}
		return m, m.resolveDownload(item.Job.ID)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// SearchActive reports whether the search input is capturing keys.
func (m Model) SearchActive() bool {
	return m.searchMode
}

// Selected returns the currently highlighted job, if any.
func (m Model) Selected() (model.VideoJob, bool) {
	item, ok := m.list.SelectedItem().(VideoItem)
	if !ok {
		return model.VideoJob{}, false
	}
	return item.Job, true
}

// View renders the library view.
func (m Model) View() string {
	if m.searchMode {
		searchBar := lipgloss.NewStyle().
			Foreground(theme.ColorWhite).
			Padding(0, 1).
			Render(m.searchInput.View())
		return lipgloss.JoinVertical(lipgloss.Left, searchBar, m.list.View())
	}

	if len(m.list.Items()) == 0 {
		return m.renderEmptyState()
	}

	return m.list.View()
}

// renderEmptyState shows guidance text when no videos are cached.
func (m Model) renderEmptyState() string {
	style := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	if m.filter.Query != nil {
		return style.Render("No matching videos.\nTry a different search.")
	}

	return style.Render(
		"No videos yet.\n\n" +
			"Press 1 to open the generator and create your first video.",
	)
}

// LoadVideos returns a tea.Cmd that queries the local cache with the
// current filter.
func (m Model) LoadVideos() tea.Cmd {
	filter := m.filter
	s := m.store
	return func() tea.Msg {
		jobs, err := s.GetVideos(context.Background(), filter)
		if err != nil {
			return VideosLoadedMsg{Jobs: nil}
		}
		return VideosLoadedMsg{Jobs: jobs}
	}
}

// Refresh returns a tea.Cmd that fetches the account library from the
// backend and writes it into the local cache.
func (m Model) Refresh() tea.Cmd {
	c := m.client
	s := m.store
	return func() tea.Msg {
		ctx := context.Background()
		jobs, err := c.Videos(ctx)
		if err != nil {
			return RefreshDoneMsg{Err: err}
		}
		if err := s.UpsertVideos(ctx, jobs); err != nil {
			return RefreshDoneMsg{Err: err}
		}
		return RefreshDoneMsg{Count: len(jobs)}
	}
}

// deleteVideo removes the job on the backend and from the local cache.
func (m Model) deleteVideo(id int) tea.Cmd {
	c := m.client
	s := m.store
	return func() tea.Msg {
		ctx := context.Background()
		if err := c.DeleteVideo(ctx, id); err != nil {
			return VideoDeletedMsg{ID: id, Err: err}
		}
		if err := s.DeleteVideo(ctx, id); err != nil {
			return VideoDeletedMsg{ID: id, Err: err}
		}
		return VideoDeletedMsg{ID: id}
	}
}

// resolveDownload asks the backend for the job's download location,
// falling back to the API download path when the response is empty.
func (m Model) resolveDownload(id int) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		resp, err := c.DownloadVideo(context.Background(), id)
		if err != nil {
			return DownloadResolvedMsg{ID: id, Err: err}
		}
		url := resp.DownloadURL
		if url == "" {
			url = c.DownloadPath(id)
		}
		return DownloadResolvedMsg{ID: id, URL: url}
	}
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
	m.searchInput.Width = width - 4
}
