package app

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vidface/cli/internal/api"
	"github.com/vidface/cli/internal/generate"
	"github.com/vidface/cli/internal/model"
	"github.com/vidface/cli/internal/notify"
	"github.com/vidface/cli/internal/session"
	"github.com/vidface/cli/internal/store"
	"github.com/vidface/cli/internal/ui"
	"github.com/vidface/cli/internal/ui/generateview"
	helpview "github.com/vidface/cli/internal/ui/help"
	"github.com/vidface/cli/internal/ui/libraryview"
	"github.com/vidface/cli/internal/ui/loginview"
	"github.com/vidface/cli/internal/ui/profileview"
	"github.com/vidface/cli/internal/ui/reviewsview"
)

// SessionInvalidatedMsg is injected when the stored credential is
// rejected by the backend on any endpoint.
type SessionInvalidatedMsg struct{}

// healthCheckMsg carries the startup backend liveness result.
type healthCheckMsg struct {
	ok bool
}

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewLogin ViewState = iota
	ViewGenerate
	ViewLibrary
	ViewProfile
	ViewReviews
	ViewHelp
)

// Model is the root Bubble Tea model that manages view routing,
// layout, session state, and the generation workflow subscription.
type Model struct {
	currentView ViewState
	layout      ui.Layout
	keys        *KeyMap

	session  *session.Store
	client   *api.Client
	store    store.Store
	workflow *generate.Workflow

	loginView    loginview.Model
	generateView generateview.Model
	libraryView  libraryview.Model
	profileView  profileview.Model
	reviewsView  reviewsview.Model
	helpView     helpview.Model
	toast        notify.Model

	previousView ViewState
	ready        bool
	quitArmed    bool
	backendUp    bool
}

// New creates a new root application model.
func New(sess *session.Store, client *api.Client, s store.Store, w *generate.Workflow) Model {
	keys := DefaultKeyMap()

	initial := ViewLogin
	if sess.Present() {
		initial = ViewGenerate
	}

	return Model{
		currentView:  initial,
		keys:         keys,
		session:      sess,
		client:       client,
		store:        s,
		workflow:     w,
		loginView:    loginview.New(client, 80, 24),
		generateView: generateview.New(w, s, client, keys, 80, 24),
		libraryView:  libraryview.New(s, client, keys, 80, 24),
		profileView:  profileview.New(client, 80, 24),
		reviewsView:  reviewsview.New(80, 24),
		helpView:     helpview.New(keys, 80, 24),
		toast:        notify.New(80),
		backendUp:    true,
	}
}

// Init starts the workflow subscription, probes backend liveness, and
// initializes the views behind the initial screen.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.workflow.Subscribe(),
		m.checkHealth(),
	}

	if m.currentView == ViewLogin {
		cmds = append(cmds, m.loginView.Init())
	} else {
		cmds = append(cmds,
			m.generateView.Init(),
			m.libraryView.Init(),
			m.profileView.Init(),
		)
	}

	return tea.Batch(cmds...)
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		contentWidth := m.layout.ContentWidth()
		contentHeight := m.layout.ContentHeight()
		m.loginView.SetSize(contentWidth, contentHeight)
		m.generateView.SetSize(contentWidth, contentHeight)
		m.libraryView.SetSize(contentWidth, contentHeight)
		m.profileView.SetSize(contentWidth, contentHeight)
		m.reviewsView.SetSize(contentWidth, contentHeight)
		m.helpView.SetSize(contentWidth, contentHeight)
		m.toast.SetWidth(contentWidth)
		// Forward to the active view so huh forms can recalculate.
		return m.updateActiveView(msg)

	case healthCheckMsg:
		m.backendUp = msg.ok
		if !msg.ok {
			return m, notify.Show(
				"Backend is unreachable. Some features will not work.",
				notify.LevelError,
			)
		}
		return m, nil

	case SessionInvalidatedMsg:
		m.currentView = ViewLogin
		m.loginView = loginview.New(m.client, m.layout.ContentWidth(), m.layout.ContentHeight())
		return m, tea.Batch(
			m.loginView.Init(),
			notify.Show("Your session has expired. Please sign in again.", notify.LevelError),
		)

	case notify.ShowMsg:
		var cmd tea.Cmd
		m.toast, cmd = m.toast.Update(msg)
		return m, cmd

	case loginview.SignedInMsg:
		m.currentView = ViewGenerate
		greeting := "Signed in."
		if msg.Username != "" {
			greeting = fmt.Sprintf("Welcome, %s!", msg.Username)
		}
		return m, tea.Batch(
			m.generateView.Init(),
			m.libraryView.Init(),
			m.profileView.Init(),
			notify.Show(greeting, notify.LevelSuccess),
		)

	case loginview.AuthFailedMsg:
		var cmd tea.Cmd
		m.loginView, cmd = m.loginView.Update(msg)
		return m, tea.Batch(cmd, notify.Show(msg.Message, notify.LevelError))

	case profileview.SignedOutMsg:
		m.currentView = ViewLogin
		m.loginView = loginview.New(m.client, m.layout.ContentWidth(), m.layout.ContentHeight())
		return m, tea.Batch(
			m.loginView.Init(),
			notify.Show("Signed out.", notify.LevelInfo),
		)

	case generate.JobSubmittedMsg:
		var cmd tea.Cmd
		m.generateView, cmd = m.generateView.Update(msg)
		return m, tea.Batch(cmd, m.workflow.Subscribe(),
			notify.Show("Video submitted. Generation started.", notify.LevelInfo))

	case generate.JobProgressMsg:
		var cmd tea.Cmd
		m.generateView, cmd = m.generateView.Update(msg)
		return m, tea.Batch(cmd, m.workflow.Subscribe())

	case generate.JobReadyMsg:
		var cmd tea.Cmd
		m.generateView, cmd = m.generateView.Update(msg)
		return m, tea.Batch(
			cmd,
			m.workflow.Subscribe(),
			m.cacheJob(msg.Job),
			notify.Show("Your video is ready!", notify.LevelSuccess),
		)

	case generate.JobFailedMsg:
		var cmd tea.Cmd
		m.generateView, cmd = m.generateView.Update(msg)
		cmds := []tea.Cmd{cmd, m.workflow.Subscribe(),
			notify.Show(msg.Message, notify.LevelError)}
		if msg.AuthExpired {
			cmds = append(cmds, func() tea.Msg { return SessionInvalidatedMsg{} })
		}
		return m, tea.Batch(cmds...)

	case generate.JobTimedOutMsg:
		var cmd tea.Cmd
		m.generateView, cmd = m.generateView.Update(msg)
		return m, tea.Batch(cmd, m.workflow.Subscribe(),
			notify.Show(msg.Message, notify.LevelError))

	case generateview.DraftSavedMsg:
		var cmd tea.Cmd
		m.generateView, cmd = m.generateView.Update(msg)
		if msg.Err != nil {
			return m, tea.Batch(cmd,
				notify.Show("Could not save draft: "+msg.Err.Error(), notify.LevelError))
		}
		return m, tea.Batch(cmd,
			notify.Show(fmt.Sprintf("Draft %q saved.", msg.Name), notify.LevelSuccess))

	case libraryview.RefreshDoneMsg:
		var cmd tea.Cmd
		m.libraryView, cmd = m.libraryView.Update(msg)
		if msg.Err != nil {
			return m, tea.Batch(cmd,
				notify.Show("Could not refresh the library.", notify.LevelError))
		}
		return m, cmd

	case libraryview.VideoDeletedMsg:
		var cmd tea.Cmd
		m.libraryView, cmd = m.libraryView.Update(msg)
		if msg.Err != nil {
			return m, tea.Batch(cmd,
				notify.Show("Could not delete the video.", notify.LevelError))
		}
		return m, tea.Batch(cmd, notify.Show("Video deleted.", notify.LevelSuccess))

	case libraryview.DownloadResolvedMsg:
		if msg.Err != nil {
			return m, notify.Show("Could not resolve the download.", notify.LevelError)
		}
		return m, notify.Show("Download: "+msg.URL, notify.LevelInfo)

	case tea.KeyMsg:
		if handled, mdl, cmd := m.handleGlobalKeys(msg); handled {
			return mdl, cmd
		}
	}

	// Toast timers run regardless of the active view.
	var toastCmd tea.Cmd
	m.toast, toastCmd = m.toast.Update(msg)

	mdl, cmd := m.updateActiveView(msg)
	return mdl, tea.Batch(cmd, toastCmd)
}

// handleGlobalKeys processes keys that work regardless of the active
// view. It reports whether the key was consumed.
func (m Model) handleGlobalKeys(msg tea.KeyMsg) (bool, tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		// Text-entry contexts own plain q.
		if key == "q" && m.textEntryActive() {
			return false, m, nil
		}
		if m.workflow.InFlight() && !m.quitArmed {
			m.quitArmed = true
			return true, m, notify.Show(
				"A video is still generating. Press again to quit anyway.",
				notify.LevelInfo,
			)
		}
		return true, m, tea.Quit
	}

	// View switching is only available once signed in.
	if m.currentView == ViewLogin {
		return false, m, nil
	}

	// Text-entry contexts own the number keys too.
	if m.textEntryActive() {
		return false, m, nil
	}

	switch key {
	case "?":
		if m.currentView == ViewHelp {
			m.currentView = m.previousView
			return true, m, nil
		}
		m.previousView = m.currentView
		m.currentView = ViewHelp
		return true, m, nil
	case "esc":
		if m.currentView == ViewHelp {
			m.currentView = m.previousView
			return true, m, nil
		}
		return false, m, nil
	case "1":
		mdl, cmd := m.switchTo(ViewGenerate)
		return true, mdl, cmd
	case "2":
		mdl, cmd := m.switchTo(ViewLibrary)
		return true, mdl, cmd
	case "3":
		mdl, cmd := m.switchTo(ViewProfile)
		return true, mdl, cmd
	case "4":
		mdl, cmd := m.switchTo(ViewReviews)
		return true, mdl, cmd
	}

	return false, m, nil
}

// textEntryActive reports whether the active view is capturing
// printable keys for text input.
func (m Model) textEntryActive() bool {
	switch m.currentView {
	case ViewLogin:
		return true
	case ViewGenerate:
		return m.generateView.EditorFocused()
	case ViewLibrary:
		return m.libraryView.SearchActive()
	case ViewProfile:
		return m.profileView.Editing()
	}
	return false
}

// switchTo activates a view, managing the carousel's rotation state.
func (m Model) switchTo(v ViewState) (tea.Model, tea.Cmd) {
	leaving := m.currentView
	m.currentView = v
	m.quitArmed = false

	var cmd tea.Cmd
	if v == ViewReviews {
		cmd = m.reviewsView.Resume()
	} else if leaving == ViewReviews {
		m.reviewsView.Pause()
	}

	if v == ViewLibrary {
		cmd = tea.Batch(cmd, m.libraryView.LoadVideos())
	}

	return m, cmd
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewLogin:
		m.loginView, cmd = m.loginView.Update(msg)
	case ViewGenerate:
		m.generateView, cmd = m.generateView.Update(msg)
	case ViewLibrary:
		m.libraryView, cmd = m.libraryView.Update(msg)
	case ViewProfile:
		m.profileView, cmd = m.profileView.Update(msg)
	case ViewReviews:
		m.reviewsView, cmd = m.reviewsView.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	}

	return m, cmd
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader("VidFace", m.headerIndicator())
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.keyHints())

	if m.toast.Visible() {
		content = m.toast.View() + "\n" + content
	}

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewLogin:
		return m.loginView.View()
	case ViewGenerate:
		return m.generateView.View()
	case ViewLibrary:
		return m.libraryView.View()
	case ViewProfile:
		return m.profileView.View()
	case ViewReviews:
		return m.reviewsView.View()
	case ViewHelp:
		return m.helpView.View()
	default:
		return ""
	}
}

// headerIndicator summarizes backend and run state for the header.
func (m Model) headerIndicator() string {
	if !m.backendUp {
		return "⚠ offline"
	}
	if m.workflow.InFlight() {
		return m.workflow.Phase().String()
	}
	if m.session.Present() {
		return "connected"
	}
	return "signed out"
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	switch m.currentView {
	case ViewLogin:
		return "enter submit | ctrl+t switch sign in/up | ctrl+c quit"
	case ViewGenerate:
		if m.generateView.EditorFocused() {
			return "ctrl+s generate | ctrl+d save draft | esc shortcuts"
		}
		return "i type | t templates | a avatar | 2 library | 3 profile | 4 reviews | q quit"
	case ViewLibrary:
		return "r refresh | d download | x delete | / search | 1 generate | q quit"
	case ViewProfile:
		return "e edit | r refresh | ctrl+l sign out | 1 generate"
	case ViewReviews:
		return "←/→ browse | space pause | 1 generate | q quit"
	case ViewHelp:
		return "? close help | esc back"
	default:
		return ""
	}
}

// checkHealth probes backend liveness once at startup.
func (m Model) checkHealth() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		_, err := c.Health(context.Background())
		return healthCheckMsg{ok: err == nil}
	}
}

// cacheJob writes a finished job into the local library cache so the
// library view shows it without waiting for a refresh.
func (m Model) cacheJob(job *model.VideoJob) tea.Cmd {
	if job == nil {
		return nil
	}
	s := m.store
	j := *job
	return func() tea.Msg {
		_ = s.UpsertVideos(context.Background(), []model.VideoJob{j})
		return libraryview.RefreshDoneMsg{Count: 1}
	}
}
