package model

import "time"

// DefaultAvatarID is the presenter used when the user has not picked one.
const DefaultAvatarID = 1

// Avatar is a selectable presenter served by the backend catalog.
type Avatar struct {
	// ID is the backend avatar identifier.
	ID int `json:"id" db:"id"`

	// Name is the display label for the avatar.
	Name string `json:"name" db:"name"`

	// ImagePath points at the avatar's preview image.
	ImagePath string `json:"image_path" db:"image_path"`

	// Category groups avatars in the catalog (e.g., "business", "casual").
	Category string `json:"category" db:"category"`

	// Gender is an optional catalog filter attribute.
	Gender string `json:"gender" db:"gender"`

	// UsageCount is how many videos have been generated with this avatar.
	UsageCount int `json:"usage_count" db:"usage_count"`

	// FetchedAt is when this record was last retrieved from the catalog.
	FetchedAt time.Time `json:"-" db:"fetched_at"`
}
