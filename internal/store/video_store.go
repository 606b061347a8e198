package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vidface/cli/internal/model"
)

// UpsertVideos inserts or replaces a batch of cached job snapshots.
func (s *SQLiteStore) UpsertVideos(ctx context.Context, jobs []model.VideoJob) error {
	if len(jobs) == 0 {
		return nil
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	const query = `
		INSERT OR REPLACE INTO videos (
			id, title, description, script,
			avatar_id, language, status, progress,
			error_message, output_path,
			created_at, updated_at, fetched_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	stmt, err := tx.PreparexContext(ctx, query)
	if err != nil {
		return fmt.Errorf("preparing upsert statement: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, job := range jobs {
		fetchedAt := job.FetchedAt
		if fetchedAt.IsZero() {
			fetchedAt = now
		}
		_, err := stmt.ExecContext(ctx,
			job.ID, job.Title, job.Description, job.Script,
			job.AvatarID, job.Language, job.Status, job.Progress,
			job.ErrorMessage, job.OutputPath,
			job.CreatedAt, job.UpdatedAt, fetchedAt,
		)
		if err != nil {
			return fmt.Errorf("upserting video %d: %w", job.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing upsert: %w", err)
	}
	return nil
}

// GetVideos retrieves cached job snapshots matching the filter.
func (s *SQLiteStore) GetVideos(ctx context.Context, opts VideoFilter) ([]model.VideoJob, error) {
	query := "SELECT * FROM videos"
	var conditions []string
	var args []interface{}

	if opts.Status != nil {
		conditions = append(conditions, "status = ?")
		args = append(args, *opts.Status)
	}
	if opts.Query != nil && *opts.Query != "" {
		conditions = append(conditions, "(title LIKE ? OR description LIKE ?)")
		pattern := "%" + *opts.Query + "%"
		args = append(args, pattern, pattern)
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	sortBy := opts.SortBy
	switch sortBy {
	case "created_at", "updated_at", "title", "status":
	default:
		sortBy = "created_at"
	}
	direction := "ASC"
	if opts.SortDesc {
		direction = "DESC"
	}
	query += fmt.Sprintf(" ORDER BY %s %s", sortBy, direction)

	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
		if opts.Offset > 0 {
			query += " OFFSET ?"
			args = append(args, opts.Offset)
		}
	}

	var jobs []model.VideoJob
	if err := s.db.SelectContext(ctx, &jobs, query, args...); err != nil {
		return nil, fmt.Errorf("querying videos: %w", err)
	}
	return jobs, nil
}

// GetVideoByID retrieves a single cached job snapshot, or nil when the
// id is not cached.
func (s *SQLiteStore) GetVideoByID(ctx context.Context, id int) (*model.VideoJob, error) {
	var job model.VideoJob
	err := s.db.GetContext(ctx, &job, "SELECT * FROM videos WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying video %d: %w", id, err)
	}
	return &job, nil
}

// DeleteVideo removes a cached job snapshot.
func (s *SQLiteStore) DeleteVideo(ctx context.Context, id int) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM videos WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting video %d: %w", id, err)
	}
	return nil
}
