package store

import (
	"context"

	"github.com/vidface/cli/internal/model"
)

// VideoFilter controls filtering and sorting for cached video queries.
type VideoFilter struct {
	Status   *string // one of the model.Status* values, or nil (all)
	Query    *string // search title + description
	SortBy   string  // "created_at", "updated_at", "title", "status"
	SortDesc bool
	Limit    int
	Offset   int
}

// Store defines the local persistence interface: a read-through cache
// of backend video jobs and avatars, plus locally owned script drafts.
type Store interface {
	// === Video job cache ===

	UpsertVideos(ctx context.Context, jobs []model.VideoJob) error
	GetVideos(ctx context.Context, opts VideoFilter) ([]model.VideoJob, error)
	GetVideoByID(ctx context.Context, id int) (*model.VideoJob, error)
	DeleteVideo(ctx context.Context, id int) error

	// === Avatar catalog cache ===

	UpsertAvatars(ctx context.Context, avatars []model.Avatar) error
	GetAvatars(ctx context.Context) ([]model.Avatar, error)

	// === Script drafts (local only) ===

	CreateDraft(ctx context.Context, draft model.ScriptDraft) (string, error)
	UpdateDraft(ctx context.Context, draft model.ScriptDraft) error
	GetDrafts(ctx context.Context) ([]model.ScriptDraft, error)
	GetDraftByID(ctx context.Context, id string) (*model.ScriptDraft, error)
	DeleteDraft(ctx context.Context, id string) error
}
