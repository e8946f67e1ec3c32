package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ladobot/lado/internal/core"
	"github.com/ladobot/lado/pkg/log"
)

// ContextRepo stores per-chat context memory: facts the user asked to
// remember and one-line summaries of past search answers.
type ContextRepo struct {
	db *sql.DB
}

var _ core.ContextMemoryRepository = (*ContextRepo)(nil)

func NewContextRepo(db *sql.DB) *ContextRepo {
	return &ContextRepo{db: db}
}

func (r *ContextRepo) SaveContext(ctx context.Context, chatID int64, contextType, content string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO context_memory (chat_id, context_type, content, created_at) VALUES (?, ?, ?, ?)`,
		chatID, contextType, content, now)
	if err != nil {
		return fmt.Errorf("failed to save context: %w", err)
	}
	log.FromCtx(ctx).Debug().
		Int64("chat_id", chatID).
		Str("type", contextType).
		Int("length", len(content)).
		Msg("context saved")
	return nil
}

// RecentContext returns the last limit entries, oldest first.
func (r *ContextRepo) RecentContext(ctx context.Context, chatID int64, limit int) ([]core.ContextEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, context_type, content, created_at FROM context_memory WHERE chat_id = ? ORDER BY id DESC LIMIT ?`,
		chatID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query context: %w", err)
	}
	defer rows.Close()

	var entries []core.ContextEntry
	for rows.Next() {
		var e core.ContextEntry
		if err := rows.Scan(&e.ID, &e.Type, &e.Content, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan context entry: %w", err)
		}
		e.ChatID = chatID
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries, nil
}

func (r *ContextRepo) ClearContext(ctx context.Context, chatID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM context_memory WHERE chat_id = ?`, chatID)
	if err != nil {
		return fmt.Errorf("failed to clear context: %w", err)
	}
	return nil
}
