package model

import "time"

// Video generation lifecycle statuses as reported by the backend.
const (
	StatusPending    = "pending"
	StatusQueued     = "queued"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// VideoJob is one requested video render tracked by the backend.
// The client never mutates a job locally except to overwrite it with
// the latest fetched snapshot.
type VideoJob struct {
	// ID is the backend-assigned job identifier.
	ID int `json:"id" db:"id"`

	// Title is the human-readable name of the video.
	Title string `json:"title" db:"title"`

	// Description is a short summary derived from the script head.
	Description string `json:"description" db:"description"`

	// Script is the full narration text submitted for generation.
	Script string `json:"script" db:"script"`

	// AvatarID selects the presenter avatar.
	AvatarID int `json:"avatar_id" db:"avatar_id"`

	// Language is the narration language tag (e.g., "en").
	Language string `json:"language" db:"language"`

	// Status is the lifecycle status (use Status* constants).
	Status string `json:"status" db:"status"`

	// Progress is the backend-reported completion fraction, 0-100.
	Progress float64 `json:"progress" db:"progress"`

	// ErrorMessage carries the backend failure reason when Status is failed.
	ErrorMessage string `json:"error_message" db:"error_message"`

	// OutputPath is the rendered asset location, when available.
	OutputPath string `json:"output_video_path" db:"output_path"`

	// CreatedAt is when the job was submitted.
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// UpdatedAt is when the backend last touched the job.
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	// FetchedAt is when this snapshot was last retrieved from the backend.
	FetchedAt time.Time `json:"-" db:"fetched_at"`
}

// Terminal reports whether the job has reached a state the backend will
// not advance further.
func (v VideoJob) Terminal() bool {
	return v.Status == StatusCompleted || v.Status == StatusFailed
}
