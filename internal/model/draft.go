package model

import "time"

// ScriptDraft is a locally saved script the user can reload into the
// editor later. Drafts never leave the machine.
type ScriptDraft struct {
	// ID is a locally generated unique identifier.
	ID string `json:"id" db:"id"`

	// Name is the user-chosen label for the draft.
	Name string `json:"name" db:"name"`

	// Body is the saved script text.
	Body string `json:"body" db:"body"`

	// AvatarID remembers the avatar selected when the draft was saved.
	AvatarID int `json:"avatar_id" db:"avatar_id"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
