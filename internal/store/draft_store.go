package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vidface/cli/internal/model"
)

// ErrDraftNotFound is returned when a draft id has no row.
var ErrDraftNotFound = errors.New("draft not found")

// CreateDraft saves a new script draft and returns its generated id.
func (s *SQLiteStore) CreateDraft(ctx context.Context, draft model.ScriptDraft) (string, error) {
	id := draft.ID
	if id == "" {
		id = uuid.New().String()
	}

	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO drafts (id, name, body, avatar_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		id, draft.Name, draft.Body, draft.AvatarID, now, now,
	)
	if err != nil {
		return "", fmt.Errorf("creating draft: %w", err)
	}
	return id, nil
}

// UpdateDraft overwrites an existing draft's content.
func (s *SQLiteStore) UpdateDraft(ctx context.Context, draft model.ScriptDraft) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE drafts
		SET name = ?, body = ?, avatar_id = ?, updated_at = ?
		WHERE id = ?`,
		draft.Name, draft.Body, draft.AvatarID, time.Now().UTC(), draft.ID,
	)
	if err != nil {
		return fmt.Errorf("updating draft %s: %w", draft.ID, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}
	if rows == 0 {
		return ErrDraftNotFound
	}
	return nil
}

// GetDrafts retrieves all drafts, most recently updated first.
func (s *SQLiteStore) GetDrafts(ctx context.Context) ([]model.ScriptDraft, error) {
	var drafts []model.ScriptDraft
	err := s.db.SelectContext(ctx, &drafts, "SELECT * FROM drafts ORDER BY updated_at DESC")
	if err != nil {
		return nil, fmt.Errorf("querying drafts: %w", err)
	}
	return drafts, nil
}

// GetDraftByID retrieves a single draft.
func (s *SQLiteStore) GetDraftByID(ctx context.Context, id string) (*model.ScriptDraft, error) {
	var draft model.ScriptDraft
	err := s.db.GetContext(ctx, &draft, "SELECT * FROM drafts WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDraftNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying draft %s: %w", id, err)
	}
	return &draft, nil
}

// DeleteDraft removes a saved draft.
func (s *SQLiteStore) DeleteDraft(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM drafts WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting draft %s: %w", id, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if rows == 0 {
		return ErrDraftNotFound
	}
	return nil
}
