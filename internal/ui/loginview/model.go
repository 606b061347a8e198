package loginview

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/vidface/cli/internal/api"
	"github.com/vidface/cli/internal/theme"
)

// SignedInMsg is dispatched when a login or registration succeeds and
// the session holds a fresh credential.
type SignedInMsg struct {
	Username string
}

// AuthFailedMsg is dispatched when a login or registration attempt fails.
type AuthFailedMsg struct {
	Message string
}

// mode selects which form the view shows.
type mode int

const (
	modeLogin mode = iota
	modeRegister
)

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	email    string
	username string
	fullName string
	password string
	confirm  string
}

// Model is the Bubble Tea model for the sign-in / sign-up screen.
type Model struct {
	form       *huh.Form
	fb         *formBindings
	client     *api.Client
	mode       mode
	submitting bool
	width      int
	height     int
}

// New creates a new login model showing the sign-in form.
func New(c *api.Client, width, height int) Model {
	m := Model{
		fb:     &formBindings{},
		client: c,
		mode:   modeLogin,
		width:  width,
		height: height,
	}
	m.form = m.buildLoginForm()
	return m
}

// Init starts the active form.
func (m Model) Init() tea.Cmd {
	return m.form.Init()
}

// Update handles messages for the login view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case AuthFailedMsg:
		// Re-arm the form so the user can correct and retry.
		m.submitting = false
		if m.mode == modeLogin {
			m.form = m.buildLoginForm()
		} else {
			m.form = m.buildRegisterForm()
		}
		return m, m.form.Init()

	case tea.KeyMsg:
		if msg.String() == "ctrl+t" && !m.submitting && m.form.State == huh.StateNormal {
			return m.toggleMode()
		}
	}

	if m.form == nil || m.submitting {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.submitting = true
		return m, m.submit()
	}

	return m, cmd
}

// toggleMode switches between the sign-in and sign-up forms.
func (m Model) toggleMode() (Model, tea.Cmd) {
	if m.mode == modeLogin {
		m.mode = modeRegister
		m.form = m.buildRegisterForm()
	} else {
		m.mode = modeLogin
		m.form = m.buildLoginForm()
	}
	return m, m.form.Init()
}

// View renders the login view.
func (m Model) View() string {
	titleText := "Sign in to VidFace"
	hint := "ctrl+t: create an account instead"
	if m.mode == modeRegister {
		titleText = "Create your VidFace account"
		hint = "ctrl+t: sign in instead"
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	body := titleStyle.Render(titleText) + "\n" + m.form.View()
	if m.submitting {
		body += "\n" + theme.DimmedStyle.Render("Contacting server...")
	} else {
		body += "\n" + theme.HelpStyle.Render(hint)
	}

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(body)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
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

func (m *Model) buildLoginForm() *huh.Form {
	m.fb.password = ""
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Placeholder("you@example.com").
				Value(&m.fb.email).
				Validate(validateEmail),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&m.fb.password).
				Validate(validateRequired("Password")),
		),
	).WithWidth(m.formWidth())
}

func (m *Model) buildRegisterForm() *huh.Form {
	m.fb.password = ""
	m.fb.confirm = ""
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Placeholder("you@example.com").
				Value(&m.fb.email).
				Validate(validateEmail),
			huh.NewInput().
				Title("Username").
				Value(&m.fb.username).
				Validate(validateRequired("Username")),
			huh.NewInput().
				Title("Full name").
				Placeholder("Optional").
				Value(&m.fb.fullName),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&m.fb.password).
				Validate(validatePassword),
			huh.NewInput().
				Title("Confirm password").
				EchoMode(huh.EchoModePassword).
				Value(&m.fb.confirm).
				Validate(m.validateConfirm),
		),
	).WithWidth(m.formWidth())
}

// submit performs the network call for the active mode.
func (m Model) submit() tea.Cmd {
	c := m.client
	fb := *m.fb
	register := m.mode == modeRegister

	return func() tea.Msg {
		ctx := context.Background()

		if register {
			profile, err := c.Register(ctx, api.RegisterRequest{
				Email:    fb.email,
				Username: fb.username,
				FullName: fb.fullName,
				Password: fb.password,
			})
			if err != nil {
				return AuthFailedMsg{Message: authErrorMessage(err)}
			}
			// Registration does not return a token; sign in with the
			// same credentials to establish the session.
			if _, err := c.Login(ctx, api.LoginRequest{Email: fb.email, Password: fb.password}); err != nil {
				return AuthFailedMsg{Message: authErrorMessage(err)}
			}
			return SignedInMsg{Username: profile.Username}
		}

		resp, err := c.Login(ctx, api.LoginRequest{Email: fb.email, Password: fb.password})
		if err != nil {
			return AuthFailedMsg{Message: authErrorMessage(err)}
		}
		return SignedInMsg{Username: resp.Username}
	}
}

// authErrorMessage maps transport errors to what the form shows.
func authErrorMessage(err error) string {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		return apiErr.UserMessage()
	}
	if api.IsNetworkError(err) {
		return "Cannot reach the server. Check your connection and try again."
	}
	return err.Error()
}

func (m *Model) validateConfirm(s string) error {
	if s != m.fb.password {
		return fmt.Errorf("passwords do not match")
	}
	return nil
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}

func validateEmail(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("Email is required")
	}
	if !strings.Contains(s, "@") {
		return fmt.Errorf("enter a valid email address")
	}
	return nil
}

func validatePassword(s string) error {
	if len(s) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	return nil
}
