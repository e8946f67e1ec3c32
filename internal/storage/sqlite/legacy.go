package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ladobot/lado/internal/core"
)

// LegacyMessagesRepo is the flat message log that predates per-chat
// storage. It is still written on every turn so the contextual query
// rewriter has history to fall back on when no chat is selected.
type LegacyMessagesRepo struct {
	db *sql.DB
}

func NewLegacyMessagesRepo(db *sql.DB) *LegacyMessagesRepo {
	return &LegacyMessagesRepo{db: db}
}

func (r *LegacyMessagesRepo) Save(ctx context.Context, role, content string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO messages (role, content, created_at) VALUES (?, ?, ?)`,
		role, content, now)
	if err != nil {
		return fmt.Errorf("failed to save legacy message: %w", err)
	}
	return nil
}

// Load returns the last limit messages, oldest first.
func (r *LegacyMessagesRepo) Load(ctx context.Context, limit int) ([]core.Message, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT role, content FROM messages ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load legacy messages: %w", err)
	}
	defer rows.Close()

	var msgs []core.Message
	for rows.Next() {
		var m core.Message
		if err := rows.Scan(&m.Role, &m.Content); err != nil {
			return nil, fmt.Errorf("failed to scan legacy message: %w", err)
		}
		msgs = append(msgs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs, nil
}

func (r *LegacyMessagesRepo) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM messages`)
	if err != nil {
		return fmt.Errorf("failed to clear legacy messages: %w", err)
	}
	return nil
}
