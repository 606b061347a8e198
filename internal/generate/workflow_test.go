package generate

import (
	"context"
	"errors"
	gosync "sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vidface/cli/internal/api"
	"github.com/vidface/cli/internal/model"
	"github.com/vidface/cli/internal/session"
)

// fakeBackend scripts backend responses for workflow tests and records
// every call it receives.
type fakeBackend struct {
	mu gosync.Mutex

	createJob   *model.VideoJob
	createErr   error
	createGate  chan struct{} // when set, CreateVideo blocks until closed
	createCalls int
	lastCreate  api.CreateVideoRequest

	statuses    []string // one entry per status fetch; last repeats
	failMessage string
	statusCalls int

	healthErr   error
	healthCalls int

	probeResults []bool // one entry per probe; last repeats
	probeCalls   int
}

func (f *fakeBackend) CreateVideo(ctx context.Context, req api.CreateVideoRequest) (*model.VideoJob, error) {
	f.mu.Lock()
	f.createCalls++
	f.lastCreate = req
	gate := f.createGate
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createJob != nil {
		return f.createJob, nil
	}
	return &model.VideoJob{ID: 7, Status: model.StatusPending}, nil
}

func (f *fakeBackend) Video(ctx context.Context, id int) (*model.VideoJob, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	idx := f.statusCalls
	f.statusCalls++
	if idx >= len(f.statuses) {
		idx = len(f.statuses) - 1
	}
	status := f.statuses[idx]

	job := &model.VideoJob{ID: id, Status: status, Progress: float64(idx)}
	if status == model.StatusFailed {
		job.ErrorMessage = f.failMessage
	}
	return job, nil
}

func (f *fakeBackend) Health(ctx context.Context) (*api.HealthResponse, error) {
	f.mu.Lock()
	f.healthCalls++
	f.mu.Unlock()

	if f.healthErr != nil {
		return nil, f.healthErr
	}
	return &api.HealthResponse{Status: "ok"}, nil
}

func (f *fakeBackend) ProbeAsset(ctx context.Context, id int) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	idx := f.probeCalls
	f.probeCalls++
	if len(f.probeResults) == 0 {
		return true, nil
	}
	if idx >= len(f.probeResults) {
		idx = len(f.probeResults) - 1
	}
	return f.probeResults[idx], nil
}

func (f *fakeBackend) AssetURL(id int) string {
	return "http://127.0.0.1:8000/generated/7.mp4"
}

func (f *fakeBackend) counts() (create, status, health, probe int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.createCalls, f.statusCalls, f.healthCalls, f.probeCalls
}

// testConfig shrinks every duration so polls run at full speed.
func testConfig() Config {
	cfg := DefaultConfig()
	cfg.SubmitTimeout = 2 * time.Second
	cfg.PollInterval = time.Millisecond
	cfg.HealthBackoff = time.Millisecond
	cfg.AssetRetryDelay = time.Millisecond
	return cfg
}

func newTestWorkflow(backend Backend, cfg Config, loggedIn bool) *Workflow {
	sess := session.NewWithPersister(nil)
	if loggedIn {
		sess.Set("tok")
	}
	return New(backend, sess, cfg)
}

func nextEvent(t *testing.T, w *Workflow) tea.Msg {
	t.Helper()
	select {
	case msg := <-w.events:
		return msg
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for workflow event")
		return nil
	}
}

// waitFor drains events until one of type T arrives.
func waitFor[T tea.Msg](t *testing.T, w *Workflow) T {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case msg := <-w.events:
			if typed, ok := msg.(T); ok {
				return typed
			}
		case <-deadline:
			var zero T
			t.Fatalf("timed out waiting for %T", zero)
			return zero
		}
	}
}

func TestEmptyScriptFailsWithoutNetworkCalls(t *testing.T) {
	backend := &fakeBackend{}
	w := newTestWorkflow(backend, testConfig(), true)

	w.Begin("   \n\t  ", 0)

	msg := nextEvent(t, w)
	failed, ok := msg.(JobFailedMsg)
	if !ok {
		t.Fatalf("event %T, want JobFailedMsg", msg)
	}
	if failed.AuthExpired {
		t.Fatal("validation failure should not be flagged as auth expiry")
	}

	if create, status, health, probe := backend.counts(); create+status+health+probe != 0 {
		t.Fatalf("backend touched: create=%d status=%d health=%d probe=%d", create, status, health, probe)
	}
	if got := w.Phase(); got != PhaseFailed {
		t.Fatalf("phase = %v, want PhaseFailed", got)
	}
}

func TestMissingCredentialFailsWithoutNetworkCalls(t *testing.T) {
	backend := &fakeBackend{}
	w := newTestWorkflow(backend, testConfig(), false)

	w.Begin("a perfectly fine script", 0)

	failed := waitFor[JobFailedMsg](t, w)
	if !failed.AuthExpired {
		t.Fatal("missing credential should steer to sign-in")
	}
	if create, _, _, _ := backend.counts(); create != 0 {
		t.Fatalf("create called %d times, want 0", create)
	}
}

func TestSubmitPayload(t *testing.T) {
	backend := &fakeBackend{statuses: []string{model.StatusCompleted}}
	cfg := testConfig()
	cfg.Language = "en"
	cfg.DefaultAvatarID = 1
	w := newTestWorkflow(backend, cfg, true)
	w.now = func() time.Time { return time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC) }

	long := ""
	for i := 0; i < 30; i++ {
		long += "abcdefghij" // 300 chars total
	}
	w.Begin(long, 0)
	waitFor[JobReadyMsg](t, w)

	if create, _, _, _ := backend.counts(); create != 1 {
		t.Fatalf("create called %d times, want exactly 1", create)
	}

	req := backend.lastCreate
	if req.Title != "Video - 3/9/2026" {
		t.Errorf("Title = %q", req.Title)
	}
	if len(req.Description) != 103 || req.Description[100:] != "..." {
		t.Errorf("Description = %q (len %d), want 100-char head plus ellipsis", req.Description, len(req.Description))
	}
	if req.Script != long {
		t.Error("Script should carry the full text")
	}
	if req.AvatarID != 1 {
		t.Errorf("AvatarID = %d, want default 1", req.AvatarID)
	}
	if req.Language != "en" {
		t.Errorf("Language = %q", req.Language)
	}
}

func TestSelectedAvatarIsForwarded(t *testing.T) {
	backend := &fakeBackend{statuses: []string{model.StatusCompleted}}
	w := newTestWorkflow(backend, testConfig(), true)

	w.Begin("another fine script", 5)
	waitFor[JobReadyMsg](t, w)

	if got := backend.lastCreate.AvatarID; got != 5 {
		t.Fatalf("AvatarID = %d, want the selected 5", got)
	}
}

func TestCompletedOnFinalAttemptWithinBudget(t *testing.T) {
	statuses := make([]string, 120)
	for i := 0; i < 119; i++ {
		statuses[i] = model.StatusProcessing
	}
	statuses[119] = model.StatusCompleted

	backend := &fakeBackend{statuses: statuses}
	w := newTestWorkflow(backend, testConfig(), true)

	w.Begin("script that renders slowly", 0)
	ready := waitFor[JobReadyMsg](t, w)

	if ready.AssetURL == "" {
		t.Fatal("ready event should carry the asset URL")
	}
	if _, status, _, _ := backend.counts(); status != 120 {
		t.Fatalf("status fetched %d times, want 120", status)
	}
	if got := w.Phase(); got != PhaseReady {
		t.Fatalf("phase = %v, want PhaseReady", got)
	}
}

func TestBackendFailureStopsImmediately(t *testing.T) {
	backend := &fakeBackend{
		statuses:    []string{model.StatusFailed},
		failMessage: "voice synthesis crashed",
	}
	w := newTestWorkflow(backend, testConfig(), true)

	w.Begin("doomed script", 0)
	failed := waitFor[JobFailedMsg](t, w)

	if failed.Message != "voice synthesis crashed" {
		t.Fatalf("Message = %q, want the backend's reason", failed.Message)
	}
	if _, status, _, _ := backend.counts(); status != 1 {
		t.Fatalf("status fetched %d times, want exactly 1", status)
	}
}

func TestAssetProbeRetriesWithoutConsumingBudget(t *testing.T) {
	backend := &fakeBackend{
		statuses:     []string{model.StatusCompleted},
		probeResults: []bool{false, false, true},
	}
	cfg := testConfig()
	// A budget this small would time out if the probe retries consumed
	// attempts.
	cfg.MaxAttempts = 2
	w := newTestWorkflow(backend, cfg, true)

	w.Begin("script with a slow file publish", 0)
	waitFor[JobReadyMsg](t, w)

	if _, _, _, probe := backend.counts(); probe != 3 {
		t.Fatalf("asset probed %d times, want 3", probe)
	}
}

func TestBudgetExhaustionTimesOut(t *testing.T) {
	backend := &fakeBackend{statuses: []string{model.StatusProcessing}}
	cfg := testConfig()
	cfg.MaxAttempts = 3
	w := newTestWorkflow(backend, cfg, true)

	w.Begin("script that never finishes", 0)
	timedOut := waitFor[JobTimedOutMsg](t, w)

	if timedOut.Message == "" {
		t.Fatal("timeout event should carry the still-working message")
	}
	if _, status, _, _ := backend.counts(); status != 3 {
		t.Fatalf("status fetched %d times, want 3", status)
	}
	if got := w.Phase(); got != PhaseTimedOut {
		t.Fatalf("phase = %v, want PhaseTimedOut", got)
	}
}

func TestUnreachableBackendConsumesBudgetWithoutStatusFetches(t *testing.T) {
	backend := &fakeBackend{
		statuses:  []string{model.StatusProcessing},
		healthErr: errors.New("connection refused"),
	}
	cfg := testConfig()
	cfg.MaxAttempts = 2
	w := newTestWorkflow(backend, cfg, true)

	w.Begin("script against a dead backend", 0)
	waitFor[JobTimedOutMsg](t, w)

	_, status, health, _ := backend.counts()
	if status != 0 {
		t.Fatalf("status fetched %d times while health failing, want 0", status)
	}
	if health != 2 {
		t.Fatalf("health probed %d times, want 2", health)
	}
}

func TestMissingJobIDFailsBeforePolling(t *testing.T) {
	backend := &fakeBackend{createJob: &model.VideoJob{Status: model.StatusPending}}
	w := newTestWorkflow(backend, testConfig(), true)

	w.Begin("script with an odd backend response", 0)
	failed := waitFor[JobFailedMsg](t, w)

	if failed.Message != "Could not start preview: missing video id." {
		t.Fatalf("Message = %q", failed.Message)
	}
	if _, status, _, _ := backend.counts(); status != 0 {
		t.Fatalf("polling started despite missing id (%d fetches)", status)
	}
}

func TestSubmitTimeoutIgnoresLateResult(t *testing.T) {
	gate := make(chan struct{})
	backend := &fakeBackend{createGate: gate}
	cfg := testConfig()
	cfg.SubmitTimeout = 5 * time.Millisecond
	w := newTestWorkflow(backend, cfg, true)

	w.Begin("script whose create call hangs", 0)
	waitFor[JobTimedOutMsg](t, w)

	if got := w.Phase(); got != PhaseTimedOut {
		t.Fatalf("phase = %v, want PhaseTimedOut", got)
	}

	// Release the hung request; its late result must change nothing.
	close(gate)
	time.Sleep(20 * time.Millisecond)

	if got := w.Phase(); got != PhaseTimedOut {
		t.Fatalf("late create result overrode the timeout: phase = %v", got)
	}
	if _, status, _, _ := backend.counts(); status != 0 {
		t.Fatal("late create result must not start polling")
	}
}

func TestUnauthorizedSubmitMarksAuthExpired(t *testing.T) {
	backend := &fakeBackend{createErr: &api.APIError{StatusCode: 401, Message: "could not validate credentials"}}
	w := newTestWorkflow(backend, testConfig(), true)

	w.Begin("script with a stale token", 0)
	failed := waitFor[JobFailedMsg](t, w)

	if !failed.AuthExpired {
		t.Fatal("401 on submission should be flagged as auth expiry")
	}
}

func TestValidationDetailsPreferredOverGenericMessage(t *testing.T) {
	backend := &fakeBackend{createErr: &api.APIError{
		StatusCode: 422,
		Message:    "http error, status 422",
		Details:    []string{"script must be at least 10 characters long"},
	}}
	w := newTestWorkflow(backend, testConfig(), true)

	w.Begin("too short", 0)
	failed := waitFor[JobFailedMsg](t, w)

	if failed.Message != "script must be at least 10 characters long" {
		t.Fatalf("Message = %q, want the validation detail", failed.Message)
	}
}

func TestNewRunSupersedesOldOne(t *testing.T) {
	gate := make(chan struct{})
	backend := &fakeBackend{createGate: gate, statuses: []string{model.StatusCompleted}}
	w := newTestWorkflow(backend, testConfig(), true)

	w.Begin("first run, hangs in submission", 0)
	firstSeq := w.Seq()

	// A fresh submission supersedes the hung run.
	w.Begin("", 0)
	failed := waitFor[JobFailedMsg](t, w)
	if failed.Seq == firstSeq {
		t.Fatal("validation failure should belong to the new run")
	}

	// Release the first run; its events must be discarded as stale.
	close(gate)
	time.Sleep(20 * time.Millisecond)

	select {
	case msg := <-w.events:
		t.Fatalf("stale run leaked event %T", msg)
	default:
	}
}
