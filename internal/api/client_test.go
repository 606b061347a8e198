package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vidface/cli/internal/session"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *session.Store) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	sess := session.NewWithPersister(nil)
	return NewClient(srv.URL, sess), sess
}

func TestRequestHeadersWithCredential(t *testing.T) {
	var gotAuth, gotContentType string
	client, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		json.NewEncoder(w).Encode(HealthResponse{Status: "ok"})
	}))
	sess.Set("tok-abc")

	if _, err := client.Health(context.Background()); err != nil {
		t.Fatalf("Health: %v", err)
	}
	if gotAuth != "Bearer tok-abc" {
		t.Fatalf("Authorization = %q, want Bearer tok-abc", gotAuth)
	}
	if gotContentType != "application/json" {
		t.Fatalf("Content-Type = %q, want application/json", gotContentType)
	}
}

func TestGuestRequestOmitsAuthorization(t *testing.T) {
	var hadAuth bool
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hadAuth = r.Header["Authorization"]
		json.NewEncoder(w).Encode(HealthResponse{Status: "ok"})
	}))

	if _, err := client.Health(context.Background()); err != nil {
		t.Fatalf("Health: %v", err)
	}
	if hadAuth {
		t.Fatal("guest request should carry no Authorization header")
	}
}

func TestErrorBodyDetailString(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail": "script must be at least 10 characters long"}`))
	}))

	_, err := client.CreateVideo(context.Background(), CreateVideoRequest{})
	if err == nil {
		t.Fatal("expected error")
	}

	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("error type %T, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest {
		t.Fatalf("StatusCode = %d, want 400", apiErr.StatusCode)
	}
	if got := apiErr.UserMessage(); got != "script must be at least 10 characters long" {
		t.Fatalf("UserMessage = %q", got)
	}
}

func TestErrorBodyDetailList(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"detail": [{"msg": "title too short"}, {"msg": "language not supported"}]}`))
	}))

	_, err := client.CreateVideo(context.Background(), CreateVideoRequest{})
	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("error type %T, want *APIError", err)
	}
	if got := apiErr.UserMessage(); got != "title too short, language not supported" {
		t.Fatalf("UserMessage = %q", got)
	}
}

func TestErrorBodyFallbackMessage(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("not json"))
	}))

	_, err := client.Videos(context.Background())
	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("error type %T, want *APIError", err)
	}
	if got := apiErr.UserMessage(); got != "http error, status 500" {
		t.Fatalf("UserMessage = %q", got)
	}
}

func TestUnauthorizedClearsSessionFromAnyEndpoint(t *testing.T) {
	client, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail": "could not validate credentials"}`))
	}))
	sess.Set("stale-token")

	invalidated := false
	sess.SetOnInvalidate(func() { invalidated = true })

	// Any endpoint triggers the side effect, not just auth routes.
	_, err := client.Avatars(context.Background())
	if !IsAuthError(err) {
		t.Fatalf("IsAuthError(%v) = false", err)
	}
	if sess.Present() {
		t.Fatal("credential should be cleared after a 401")
	}
	if !invalidated {
		t.Fatal("invalidate listener should have fired")
	}
}

func TestNetworkFailureIsDistinctFromHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // nothing listening

	sess := session.NewWithPersister(nil)
	client := NewClient(srv.URL, sess)

	_, err := client.Health(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsNetworkError(err) {
		t.Fatalf("IsNetworkError(%v) = false", err)
	}
	if IsAuthError(err) {
		t.Fatal("network failure must not read as an auth error")
	}
}

func TestLoginCapturesToken(t *testing.T) {
	client, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/login" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode(LoginResponse{
			AccessToken: "fresh-token",
			TokenType:   "bearer",
			Username:    "maya",
		})
	}))

	resp, err := client.Login(context.Background(), LoginRequest{
		Email:    "maya@example.com",
		Password: "hunter2",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if resp.Username != "maya" {
		t.Fatalf("Username = %q", resp.Username)
	}
	if got := sess.Token(); got != "fresh-token" {
		t.Fatalf("session token = %q, want fresh-token", got)
	}
}

func TestLogoutClearsSessionUnconditionally(t *testing.T) {
	sess := session.NewWithPersister(nil)
	sess.Set("tok")
	client := NewClient("http://127.0.0.1:1", sess)

	client.Logout()
	if sess.Present() {
		t.Fatal("Logout must clear the local credential")
	}
}

func TestProbeAsset(t *testing.T) {
	ready := false
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodHead {
			t.Errorf("probe used %s, want HEAD", r.Method)
		}
		if r.URL.Path != "/generated/42.mp4" {
			t.Errorf("probe path = %s", r.URL.Path)
		}
		if !ready {
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	ok, err := client.ProbeAsset(context.Background(), 42)
	if err != nil || ok {
		t.Fatalf("ProbeAsset before publish = (%v, %v), want (false, nil)", ok, err)
	}

	ready = true
	ok, err = client.ProbeAsset(context.Background(), 42)
	if err != nil || !ok {
		t.Fatalf("ProbeAsset after publish = (%v, %v), want (true, nil)", ok, err)
	}
}

func TestVideoEndpointsUseExpectedRoutes(t *testing.T) {
	var paths []string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		switch {
		case r.URL.Path == "/api/video/list":
			w.Write([]byte(`[]`))
		case r.Method == http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		default:
			w.Write([]byte(`{"id": 7, "status": "processing"}`))
		}
	}))

	ctx := context.Background()
	if _, err := client.CreateVideo(ctx, CreateVideoRequest{Script: "hello world script"}); err != nil {
		t.Fatalf("CreateVideo: %v", err)
	}
	if _, err := client.Videos(ctx); err != nil {
		t.Fatalf("Videos: %v", err)
	}
	if _, err := client.Video(ctx, 7); err != nil {
		t.Fatalf("Video: %v", err)
	}
	if err := client.DeleteVideo(ctx, 7); err != nil {
		t.Fatalf("DeleteVideo: %v", err)
	}

	want := []string{
		"POST /api/video/create",
		"GET /api/video/list",
		"GET /api/video/7",
		"DELETE /api/video/7",
	}
	if len(paths) != len(want) {
		t.Fatalf("requests = %v, want %v", paths, want)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Fatalf("request %d = %q, want %q", i, paths[i], want[i])
		}
	}
}
