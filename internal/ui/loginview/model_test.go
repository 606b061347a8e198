package loginview

import (
	"net/http"
	"net/http/httptest"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/vidface/cli/internal/api"
	"github.com/vidface/cli/internal/session"
)

func newTestModel(t *testing.T, handler http.Handler) (Model, *session.Store) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	sess := session.NewWithPersister(nil)
	return New(api.NewClient(srv.URL, sess), 80, 24), sess
}

func TestFormWidthClampsToTerminal(t *testing.T) {
	cases := []struct {
		width int
		want  int
	}{
		{width: 20, want: 40},
		{width: 80, want: 76},
		{width: 200, want: 100},
	}
	for _, tc := range cases {
		m := New(nil, tc.width, 24)
		if got := m.formWidth(); got != tc.want {
			t.Errorf("formWidth at terminal width %d = %d, want %d", tc.width, got, tc.want)
		}
	}
}

func TestToggleModeSwitchesForms(t *testing.T) {
	m := New(nil, 80, 24)
	if m.mode != modeLogin {
		t.Fatal("initial mode should be sign-in")
	}

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	if m.mode != modeRegister {
		t.Fatal("ctrl+t should switch to the sign-up form")
	}
	if m.form == nil || cmd == nil {
		t.Fatal("toggling must rebuild and re-init the form")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	if m.mode != modeLogin {
		t.Fatal("ctrl+t should switch back to the sign-in form")
	}
}

func TestToggleIgnoredWhileSubmitting(t *testing.T) {
	m := New(nil, 80, 24)
	m.submitting = true

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	if m.mode != modeLogin {
		t.Fatal("mode must not change while a request is in flight")
	}
}

func TestSubmitLoginCapturesSession(t *testing.T) {
	m, sess := newTestModel(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/login" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.Write([]byte(`{"access_token": "tok-1", "token_type": "bearer", "username": "maya"}`))
	}))
	m.fb.email = "maya@example.com"
	m.fb.password = "hunter22"

	msg := m.submit()()
	signed, ok := msg.(SignedInMsg)
	if !ok {
		t.Fatalf("submit result %T, want SignedInMsg", msg)
	}
	if signed.Username != "maya" {
		t.Fatalf("Username = %q, want maya", signed.Username)
	}
	if got := sess.Token(); got != "tok-1" {
		t.Fatalf("session token = %q, want tok-1", got)
	}
}

func TestSubmitRegisterSignsInWithSameCredentials(t *testing.T) {
	var paths []string
	m, sess := newTestModel(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		switch r.URL.Path {
		case "/api/auth/register":
			w.Write([]byte(`{"id": 9, "email": "new@example.com", "username": "newbie"}`))
		case "/api/auth/login":
			w.Write([]byte(`{"access_token": "tok-2", "token_type": "bearer", "username": "newbie"}`))
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	}))
	m.mode = modeRegister
	m.fb.email = "new@example.com"
	m.fb.username = "newbie"
	m.fb.password = "hunter22"

	msg := m.submit()()
	signed, ok := msg.(SignedInMsg)
	if !ok {
		t.Fatalf("submit result %T, want SignedInMsg", msg)
	}
	if signed.Username != "newbie" {
		t.Fatalf("Username = %q, want newbie", signed.Username)
	}
	if got := sess.Token(); got != "tok-2" {
		t.Fatalf("session token = %q, want tok-2", got)
	}

	want := []string{"POST /api/auth/register", "POST /api/auth/login"}
	if len(paths) != len(want) || paths[0] != want[0] || paths[1] != want[1] {
		t.Fatalf("requests = %v, want %v", paths, want)
	}
}

func TestSubmitFailureCarriesServerDetail(t *testing.T) {
	m, sess := newTestModel(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail": "incorrect email or password"}`))
	}))
	m.fb.email = "maya@example.com"
	m.fb.password = "wrong"

	msg := m.submit()()
	failed, ok := msg.(AuthFailedMsg)
	if !ok {
		t.Fatalf("submit result %T, want AuthFailedMsg", msg)
	}
	if failed.Message != "incorrect email or password" {
		t.Fatalf("Message = %q", failed.Message)
	}
	if sess.Present() {
		t.Fatal("failed login must not leave a credential behind")
	}
}

func TestAuthFailedReArmsForm(t *testing.T) {
	m := New(nil, 80, 24)
	m.submitting = true

	m, cmd := m.Update(AuthFailedMsg{Message: "incorrect email or password"})
	if m.submitting {
		t.Fatal("a failed attempt must unlock the form")
	}
	if m.form == nil || m.form.State != huh.StateNormal || cmd == nil {
		t.Fatal("the form should be rebuilt and re-initialized for a retry")
	}
}

func TestPasswordValidation(t *testing.T) {
	if err := validatePassword("short"); err == nil {
		t.Fatal("passwords under 8 characters must be rejected")
	}
	if err := validatePassword("longenough"); err != nil {
		t.Fatalf("validatePassword: %v", err)
	}

	m := New(nil, 80, 24)
	m.fb.password = "hunter22"
	if err := m.validateConfirm("mismatch"); err == nil {
		t.Fatal("mismatched confirmation must be rejected")
	}
	if err := m.validateConfirm("hunter22"); err != nil {
		t.Fatalf("validateConfirm: %v", err)
	}
}
