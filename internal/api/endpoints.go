package api

import (
	"context"
	"fmt"

	"github.com/vidface/cli/internal/model"
)

// Register creates a new account and returns the created profile.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*model.Profile, error) {
	var profile model.Profile
	if err := c.post(ctx, "/api/auth/register", req, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Login authenticates and, on success, captures the returned access
// token into the session store.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	var resp LoginResponse
	if err := c.post(ctx, "/api/auth/login", req, &resp); err != nil {
		return nil, err
	}

	if resp.AccessToken != "" {
		c.session.Set(resp.AccessToken)
	}

	return &resp, nil
}

// Logout ends the session locally. The backend holds no server-side
// session state for bearer tokens, so there is nothing to call remotely;
// clearing the stored credential is the whole operation.
func (c *Client) Logout() {
	c.session.Clear()
}

// Profile fetches the authenticated user's account record.
func (c *Client) Profile(ctx context.Context) (*model.Profile, error) {
	var profile model.Profile
	if err := c.get(ctx, "/api/user/profile", &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile edits the authenticated user's account record.
func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) (*model.Profile, error) {
	var profile model.Profile
	if err := c.put(ctx, "/api/user/profile", update, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Stats fetches the account's generation activity summary.
func (c *Client) Stats(ctx context.Context) (*UserStats, error) {
	var stats UserStats
	if err := c.get(ctx, "/api/user/stats", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// Avatars lists the full presenter catalog.
func (c *Client) Avatars(ctx context.Context) ([]model.Avatar, error) {
	var avatars []model.Avatar
	if err := c.get(ctx, "/api/avatar/list", &avatars); err != nil {
		return nil, err
	}
	return avatars, nil
}

// AvatarCategories lists the catalog's category labels.
func (c *Client) AvatarCategories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := c.get(ctx, "/api/avatar/categories", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// PopularAvatars lists the most-used presenters.
func (c *Client) PopularAvatars(ctx context.Context) ([]model.Avatar, error) {
	var avatars []model.Avatar
	if err := c.get(ctx, "/api/avatar/popular", &avatars); err != nil {
		return nil, err
	}
	return avatars, nil
}

// FeaturedAvatars lists the editorially featured presenters.
func (c *Client) FeaturedAvatars(ctx context.Context) ([]model.Avatar, error) {
	var avatars []model.Avatar
	if err := c.get(ctx, "/api/avatar/featured", &avatars); err != nil {
		return nil, err
	}
	return avatars, nil
}

// Avatar fetches a single presenter by id.
func (c *Client) Avatar(ctx context.Context, id int) (*model.Avatar, error) {
	var avatar model.Avatar
	if err := c.get(ctx, fmt.Sprintf("/api/avatar/%d", id), &avatar); err != nil {
		return nil, err
	}
	return &avatar, nil
}

// CreateVideo submits a new generation job.
func (c *Client) CreateVideo(ctx context.Context, req CreateVideoRequest) (*model.VideoJob, error) {
	var job model.VideoJob
	if err := c.post(ctx, "/api/video/create", req, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// Videos lists the account's generation jobs.
func (c *Client) Videos(ctx context.Context) ([]model.VideoJob, error) {
	var jobs []model.VideoJob
	if err := c.get(ctx, "/api/video/list", &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// Video fetches the latest snapshot of one job.
func (c *Client) Video(ctx context.Context, id int) (*model.VideoJob, error) {
	var job model.VideoJob
	if err := c.get(ctx, fmt.Sprintf("/api/video/%d", id), &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// UpdateVideo edits a job's metadata.
func (c *Client) UpdateVideo(ctx context.Context, id int, req UpdateVideoRequest) (*model.VideoJob, error) {
	var job model.VideoJob
	if err := c.put(ctx, fmt.Sprintf("/api/video/%d", id), req, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// DeleteVideo removes a job and its rendered asset.
func (c *Client) DeleteVideo(ctx context.Context, id int) error {
	return c.delete(ctx, fmt.Sprintf("/api/video/%d", id))
}

// DownloadVideo resolves the download location for a completed job.
func (c *Client) DownloadVideo(ctx context.Context, id int) (*DownloadResponse, error) {
	var resp DownloadResponse
	if err := c.get(ctx, fmt.Sprintf("/api/video/%d/download", id), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DownloadPath returns the API fallback download path used when the
// backend response carries no download_url.
func (c *Client) DownloadPath(id int) string {
	return fmt.Sprintf("%s/api/video/%d/download", c.baseURL, id)
}

// Health probes backend liveness.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var resp HealthResponse
	if err := c.get(ctx, "/health", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AssetURL returns the static location a completed job's rendering is
// served from. The backend writes renders to /generated/{id}.mp4 rather
// than returning a URL with the status payload.
func (c *Client) AssetURL(id int) string {
	return fmt.Sprintf("%s/generated/%d.mp4", c.baseURL, id)
}

// ProbeAsset checks that a completed job's rendering is actually
// retrievable before the player is pointed at it. Rendering completion
// and file visibility race on the backend, so a false result is normal
// for a moment after the status flips to completed.
func (c *Client) ProbeAsset(ctx context.Context, id int) (bool, error) {
	return c.head(ctx, fmt.Sprintf("/generated/%d.mp4", id))
}
