// Package generate drives the video generation lifecycle: validate the
// request, submit it, poll the backend until the render reaches a
// terminal state, and confirm the asset is retrievable before declaring
// it ready. One goroutine owns each run; results reach the UI as
// Bubble Tea messages tagged with a run sequence number so a late
// result from an abandoned run can never override the current state.
package generate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	gosync "sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vidface/cli/internal/api"
	"github.com/vidface/cli/internal/model"
	"github.com/vidface/cli/internal/session"
)

// Phase is the workflow's explicit state. Transitions:
// Idle -> Validating -> Submitting -> Polling -> Ready | Failed | TimedOut.
// Ready, Failed, and TimedOut are terminal; only a fresh submission
// restarts the workflow.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseValidating
	PhaseSubmitting
	PhasePolling
	PhaseReady
	PhaseFailed
	PhaseTimedOut
)

// String returns the phase label used in the status bar.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseValidating:
		return "validating"
	case PhaseSubmitting:
		return "submitting"
	case PhasePolling:
		return "generating"
	case PhaseReady:
		return "ready"
	case PhaseFailed:
		return "failed"
	case PhaseTimedOut:
		return "timed out"
	default:
		return "unknown"
	}
}

// Backend is the slice of the API client the workflow depends on.
// *api.Client satisfies it; tests supply fakes.
type Backend interface {
	CreateVideo(ctx context.Context, req api.CreateVideoRequest) (*model.VideoJob, error)
	Video(ctx context.Context, id int) (*model.VideoJob, error)
	Health(ctx context.Context) (*api.HealthResponse, error)
	ProbeAsset(ctx context.Context, id int) (bool, error)
	AssetURL(id int) string
}

// Config tunes the workflow's budgets and cadences. The defaults match
// the product's contract; tests shrink the durations.
type Config struct {
	// Language is the fixed narration language sent with every job.
	Language string

	// DefaultAvatarID is used when no avatar is selected.
	DefaultAvatarID int

	// SubmitTimeout bounds the creation call. An elapsed budget stops
	// waiting but does not cancel the in-flight request; its eventual
	// result is discarded.
	SubmitTimeout time.Duration

	// PollInterval is the cadence between status fetches.
	PollInterval time.Duration

	// MaxAttempts caps status polls before declaring a timeout.
	MaxAttempts int

	// HealthBackoff is the longer wait after a failed health probe.
	HealthBackoff time.Duration

	// AssetRetryDelay is the short wait before re-confirming a
	// completed job whose asset is not yet retrievable.
	AssetRetryDelay time.Duration
}

// DefaultConfig returns the production tuning.
func DefaultConfig() Config {
	return Config{
		Language:        "en",
		DefaultAvatarID: model.DefaultAvatarID,
		SubmitTimeout:   30 * time.Second,
		PollInterval:    time.Second,
		MaxAttempts:     120,
		HealthBackoff:   2 * time.Second,
		AssetRetryDelay: 750 * time.Millisecond,
	}
}

// JobSubmittedMsg is sent once the backend accepted the job and polling
// is about to begin.
type JobSubmittedMsg struct {
	Seq int
	Job *model.VideoJob
}

// JobProgressMsg carries a non-terminal status snapshot.
type JobProgressMsg struct {
	Seq      int
	Status   string
	Progress float64
	Attempt  int
}

// JobReadyMsg is sent when the render is complete and the asset has
// been confirmed retrievable.
type JobReadyMsg struct {
	Seq      int
	Job      *model.VideoJob
	AssetURL string
}

// JobFailedMsg is a terminal failure. AuthExpired marks validation and
// 401 failures that should steer the user to the sign-in surface.
type JobFailedMsg struct {
	Seq         int
	Message     string
	AuthExpired bool
}

// JobTimedOutMsg is sent when the attempt budget (or the submit budget)
// is exhausted without a terminal status. It is framed as "still
// working", not as a hard failure.
type JobTimedOutMsg struct {
	Seq     int
	Message string
}

// Workflow coordinates one generation at a time.
type Workflow struct {
	backend Backend
	session *session.Store
	cfg     Config
	events  chan tea.Msg
	now     func() time.Time

	mu    gosync.Mutex
	seq   int
	phase Phase
}

// New creates a workflow bound to the given backend and session store.
func New(backend Backend, sess *session.Store, cfg Config) *Workflow {
	return &Workflow{
		backend: backend,
		session: sess,
		cfg:     cfg,
		events:  make(chan tea.Msg, 16),
		now:     time.Now,
	}
}

// Phase returns the current workflow phase.
func (w *Workflow) Phase() Phase {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.phase
}

// InFlight reports whether a generation is between submission and a
// terminal state. Used to disable the submit control and to guard
// quitting the app mid-generation.
func (w *Workflow) InFlight() bool {
	p := w.Phase()
	return p == PhaseSubmitting || p == PhasePolling
}

// Seq returns the current run's sequence number. Messages carrying an
// older sequence belong to an abandoned run and must be discarded.
func (w *Workflow) Seq() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.seq
}

// Subscribe returns a command that waits for the next workflow event.
// Call it once at startup and again after handling each event.
func (w *Workflow) Subscribe() tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-w.events
		if !ok {
			return nil
		}
		return msg
	}
}

// Begin starts a new generation run for the given script and avatar
// selection. Validation failures short-circuit without any network
// call; otherwise a goroutine drives submission and polling, posting
// events to the subscription channel.
func (w *Workflow) Begin(script string, avatarID int) {
	w.mu.Lock()
	w.seq++
	seq := w.seq
	w.phase = PhaseValidating
	w.mu.Unlock()

	trimmed := strings.TrimSpace(script)
	if trimmed == "" {
		w.setPhase(seq, PhaseFailed)
		w.send(seq, JobFailedMsg{
			Seq:     seq,
			Message: "Please enter a script to generate the video.",
		})
		return
	}

	if !w.session.Present() {
		w.setPhase(seq, PhaseFailed)
		w.send(seq, JobFailedMsg{
			Seq:         seq,
			Message:     "Please sign in to generate videos.",
			AuthExpired: true,
		})
		return
	}

	w.setPhase(seq, PhaseSubmitting)
	go w.run(seq, trimmed, avatarID)
}

// buildRequest derives the creation payload: a dated title, a truncated
// description from the script head, and defaults for avatar and
// language.
func (w *Workflow) buildRequest(script string, avatarID int) api.CreateVideoRequest {
	if avatarID <= 0 {
		avatarID = w.cfg.DefaultAvatarID
	}

	return api.CreateVideoRequest{
		Title:       fmt.Sprintf("Video - %s", w.now().Format("1/2/2006")),
		Description: truncateScript(script, 100),
		Script:      script,
		AvatarID:    avatarID,
		Language:    w.cfg.Language,
	}
}

// truncateScript returns the first limit runes of the script followed
// by an ellipsis.
func truncateScript(script string, limit int) string {
	runes := []rune(script)
	if len(runes) > limit {
		runes = runes[:limit]
	}
	return string(runes) + "..."
}

// run drives a single generation from submission to a terminal state.
func (w *Workflow) run(seq int, script string, avatarID int) {
	job, ok := w.submit(seq, script, avatarID)
	if !ok {
		return
	}

	w.setPhase(seq, PhasePolling)
	w.send(seq, JobSubmittedMsg{Seq: seq, Job: job})
	w.poll(seq, job.ID)
}

// submit issues the creation call under the submit budget. The request
// is raced against a timer rather than cancelled: if the budget elapses
// first, the run ends and the request's eventual result is ignored.
func (w *Workflow) submit(seq int, script string, avatarID int) (*model.VideoJob, bool) {
	req := w.buildRequest(script, avatarID)

	type result struct {
		job *model.VideoJob
		err error
	}
	done := make(chan result, 1)
	go func() {
		job, err := w.backend.CreateVideo(context.Background(), req)
		done <- result{job: job, err: err}
	}()

	var res result
	select {
	case res = <-done:
	case <-time.After(w.cfg.SubmitTimeout):
		w.setPhase(seq, PhaseTimedOut)
		w.send(seq, JobTimedOutMsg{
			Seq:     seq,
			Message: "Video generation is taking longer than expected. Please check back later.",
		})
		return nil, false
	}

	if res.err != nil {
		w.setPhase(seq, PhaseFailed)
		w.send(seq, failureMessage(seq, res.err))
		return nil, false
	}

	if res.job == nil || res.job.ID == 0 {
		w.setPhase(seq, PhaseFailed)
		w.send(seq, JobFailedMsg{
			Seq:     seq,
			Message: "Could not start preview: missing video id.",
		})
		return nil, false
	}

	return res.job, true
}

// poll fetches job status at a fixed cadence until a terminal state or
// the attempt budget runs out. Fetch failures consume an attempt but
// never abort the loop on their own. Before each status fetch a health
// probe gates the cycle: an unreachable backend also consumes an
// attempt, but waits the longer backoff instead of querying status.
func (w *Workflow) poll(seq int, jobID int) {
	attempts := 0

	for attempts < w.cfg.MaxAttempts {
		if w.stale(seq) {
			return
		}

		if _, err := w.backend.Health(context.Background()); err != nil {
			attempts++
			if attempts >= w.cfg.MaxAttempts {
				break
			}
			time.Sleep(w.cfg.HealthBackoff)
			continue
		}

		job, err := w.backend.Video(context.Background(), jobID)
		if err != nil {
			attempts++
			if attempts >= w.cfg.MaxAttempts {
				break
			}
			time.Sleep(w.cfg.PollInterval)
			continue
		}

		switch job.Status {
		case model.StatusCompleted:
			// Rendering completion and file publication race on the
			// backend. Confirm the asset responds before declaring
			// ready; an unavailable asset re-enters the loop after a
			// short delay without consuming an attempt.
			ready, probeErr := w.backend.ProbeAsset(context.Background(), jobID)
			if probeErr != nil || !ready {
				time.Sleep(w.cfg.AssetRetryDelay)
				continue
			}

			w.setPhase(seq, PhaseReady)
			w.send(seq, JobReadyMsg{
				Seq:      seq,
				Job:      job,
				AssetURL: w.backend.AssetURL(jobID),
			})
			return

		case model.StatusFailed:
			message := job.ErrorMessage
			if message == "" {
				message = "Video generation failed. Please try again."
			}
			w.setPhase(seq, PhaseFailed)
			w.send(seq, JobFailedMsg{Seq: seq, Message: message})
			return

		default:
			w.send(seq, JobProgressMsg{
				Seq:      seq,
				Status:   job.Status,
				Progress: job.Progress,
				Attempt:  attempts + 1,
			})
			attempts++
			if attempts >= w.cfg.MaxAttempts {
				break
			}
			time.Sleep(w.cfg.PollInterval)
		}
	}

	w.setPhase(seq, PhaseTimedOut)
	w.send(seq, JobTimedOutMsg{
		Seq:     seq,
		Message: "Video generation is taking longer than expected. Please check back later.",
	})
}

// failureMessage classifies a submission error into the user-facing
// failure event, preferring the most specific message available.
func failureMessage(seq int, err error) JobFailedMsg {
	if api.IsAuthError(err) {
		return JobFailedMsg{
			Seq:         seq,
			Message:     "Could not validate credentials. Please sign in again.",
			AuthExpired: true,
		}
	}

	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		return JobFailedMsg{Seq: seq, Message: apiErr.UserMessage()}
	}

	if api.IsNetworkError(err) {
		return JobFailedMsg{Seq: seq, Message: "Backend is not responding. Please check the server and try again."}
	}

	return JobFailedMsg{Seq: seq, Message: "Failed to generate video. Please try again."}
}

// stale reports whether a newer run has superseded seq.
func (w *Workflow) stale(seq int) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.seq != seq
}

// setPhase updates the phase, unless the run has been superseded.
func (w *Workflow) setPhase(seq int, p Phase) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.seq == seq {
		w.phase = p
	}
}

// send posts an event without blocking, dropping it when the run is
// stale or the channel is full.
func (w *Workflow) send(seq int, msg tea.Msg) {
	if w.stale(seq) {
		return
	}
	select {
	case w.events <- msg:
	default:
	}
}
