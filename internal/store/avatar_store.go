package store

import (
	"context"
	"fmt"
	"time"

	"github.com/vidface/cli/internal/model"
)

// UpsertAvatars replaces the cached avatar catalog entries.
func (s *SQLiteStore) UpsertAvatars(ctx context.Context, avatars []model.Avatar) error {
	if len(avatars) == 0 {
		return nil
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	const query = `
		INSERT OR REPLACE INTO avatars (
			id, name, image_path, category, gender, usage_count, fetched_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)`

	stmt, err := tx.PreparexContext(ctx, query)
	if err != nil {
		return fmt.Errorf("preparing upsert statement: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, a := range avatars {
		fetchedAt := a.FetchedAt
		if fetchedAt.IsZero() {
			fetchedAt = now
		}
		_, err := stmt.ExecContext(ctx,
			a.ID, a.Name, a.ImagePath, a.Category, a.Gender, a.UsageCount, fetchedAt,
		)
		if err != nil {
			return fmt.Errorf("upserting avatar %d: %w", a.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing upsert: %w", err)
	}
	return nil
}

// GetAvatars retrieves the cached avatar catalog ordered by name.
func (s *SQLiteStore) GetAvatars(ctx context.Context) ([]model.Avatar, error) {
	var avatars []model.Avatar
	err := s.db.SelectContext(ctx, &avatars, "SELECT * FROM avatars ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("querying avatars: %w", err)
	}
	return avatars, nil
}
