package api

// RegisterRequest creates a new account.
type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	FullName string `json:"full_name,omitempty"`
	Password string `json:"password"`
}

// LoginRequest authenticates an existing account.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the token envelope returned by a successful login.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	UserID      int    `json:"user_id"`
	Username    string `json:"username"`
}

// ProfileUpdate carries the editable profile fields. Empty fields are
// omitted so the backend leaves them untouched.
type ProfileUpdate struct {
	FullName  string `json:"full_name,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
	Bio       string `json:"bio,omitempty"`
	Company   string `json:"company,omitempty"`
	Website   string `json:"website,omitempty"`
}

// UserStats summarizes the account's generation activity.
type UserStats struct {
	TotalVideos     int     `json:"total_videos"`
	CompletedVideos int     `json:"completed_videos"`
	FailedVideos    int     `json:"failed_videos"`
	TotalDuration   float64 `json:"total_duration"`
}

// CreateVideoRequest submits a new generation job.
type CreateVideoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Script      string `json:"script"`
	AvatarID    int    `json:"avatar_id"`
	Language    string `json:"language"`
}

// UpdateVideoRequest edits job metadata. Empty fields are left as-is.
type UpdateVideoRequest struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

// DownloadResponse carries the server-side download location for a
// completed video.
type DownloadResponse struct {
	DownloadURL string `json:"download_url"`
}

// HealthResponse is the backend liveness payload.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}
