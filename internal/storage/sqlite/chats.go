package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ladobot/lado/internal/core"
	"github.com/ladobot/lado/pkg/log"
)

const defaultChatTitle = "Новый чат"

type ChatsRepo struct {
	db *sql.DB
}

var _ core.ChatRepository = (*ChatsRepo)(nil)

// NewChatsRepo wraps the chats tables. On first run it seeds one active
// chat so the UI never starts empty.
func NewChatsRepo(ctx context.Context, db *sql.DB) (*ChatsRepo, error) {
	r := &ChatsRepo{db: db}

	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM chats`).Scan(&count); err != nil {
		return nil, fmt.Errorf("failed to count chats: %w", err)
	}
	if count == 0 {
		now := time.Now().UTC().Format(time.RFC3339)
		_, err := db.ExecContext(ctx,
			`INSERT INTO chats (title, created_at, updated_at, is_active) VALUES (?, ?, ?, 1)`,
			defaultChatTitle, now, now)
		if err != nil {
			return nil, fmt.Errorf("failed to seed first chat: %w", err)
		}
		log.FromCtx(ctx).Info().Msg("created first chat")
	}
	return r, nil
}

func (r *ChatsRepo) CreateChat(ctx context.Context, title string) (int64, error) {
	if title == "" {
		title = defaultChatTitle
	}
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO chats (title, created_at, updated_at, is_active) VALUES (?, ?, ?, 0)`,
		title, now, now)
	if err != nil {
		return 0, fmt.Errorf("failed to create chat: %w", err)
	}
	return res.LastInsertId()
}

// AllChats returns chats newest-activity first.
func (r *ChatsRepo) AllChats(ctx context.Context) ([]core.Chat, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, created_at, updated_at, is_active FROM chats ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query chats: %w", err)
	}
	defer rows.Close()

	var chats []core.Chat
	for rows.Next() {
		var c core.Chat
		var active int
		if err := rows.Scan(&c.ID, &c.Title, &c.CreatedAt, &c.UpdatedAt, &active); err != nil {
			return nil, fmt.Errorf("failed to scan chat: %w", err)
		}
		c.Active = active == 1
		chats = append(chats, c)
	}
	return chats, rows.Err()
}

// ActiveChatID returns 0 when no chat is marked active.
func (r *ChatsRepo) ActiveChatID(ctx context.Context) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `SELECT id FROM chats WHERE is_active = 1 LIMIT 1`).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to query active chat: %w", err)
	}
	return id, nil
}

func (r *ChatsRepo) SetActiveChat(ctx context.Context, chatID int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `UPDATE chats SET is_active = 0`); err != nil {
		return fmt.Errorf("failed to reset active flag: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `UPDATE chats SET is_active = 1 WHERE id = ?`, chatID); err != nil {
		return fmt.Errorf("failed to set active chat: %w", err)
	}
	return tx.Commit()
}

func (r *ChatsRepo) UpdateChatTitle(ctx context.Context, chatID int64, title string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := r.db.ExecContext(ctx,
		`UPDATE chats SET title = ?, updated_at = ? WHERE id = ?`, title, now, chatID)
	if err != nil {
		return fmt.Errorf("failed to update chat title: %w", err)
	}
	return nil
}

// DeleteChat removes the chat and its messages. If the deleted chat was
// active, the most recently updated survivor becomes active.
func (r *ChatsRepo) DeleteChat(ctx context.Context, chatID int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var wasActive int
	if err := tx.QueryRowContext(ctx,
		`SELECT is_active FROM chats WHERE id = ?`, chatID).Scan(&wasActive); err != nil {
		if err == sql.ErrNoRows {
			return nil
		}
		return fmt.Errorf("failed to check chat: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM chat_messages WHERE chat_id = ?`, chatID); err != nil {
		return fmt.Errorf("failed to delete chat messages: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM chats WHERE id = ?`, chatID); err != nil {
		return fmt.Errorf("failed to delete chat: %w", err)
	}

	if wasActive == 1 {
		_, err = tx.ExecContext(ctx,
			`UPDATE chats SET is_active = 1 WHERE id = (SELECT id FROM chats ORDER BY updated_at DESC LIMIT 1)`)
		if err != nil {
			return fmt.Errorf("failed to promote next chat: %w", err)
		}
	}
	return tx.Commit()
}

// SaveMessage appends a message and bumps the chat's updated_at so chat
// ordering follows activity.
func (r *ChatsRepo) SaveMessage(ctx context.Context, chatID int64, role, content string, attachedFiles []string) error {
	var filesJSON sql.NullString
	if len(attachedFiles) > 0 {
		b, err := json.Marshal(attachedFiles)
		if err != nil {
			return fmt.Errorf("failed to marshal attached files: %w", err)
		}
		filesJSON = sql.NullString{String: string(b), Valid: true}
	}

	now := time.Now().UTC().Format(time.RFC3339)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO chat_messages (chat_id, role, content, attached_files, created_at) VALUES (?, ?, ?, ?, ?)`,
		chatID, role, content, filesJSON, now)
	if err != nil {
		return fmt.Errorf("failed to insert message: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `UPDATE chats SET updated_at = ? WHERE id = ?`, now, chatID); err != nil {
		return fmt.Errorf("failed to bump chat: %w", err)
	}
	return tx.Commit()
}

// Messages returns the last limit messages in chronological order.
func (r *ChatsRepo) Messages(ctx context.Context, chatID int64, limit int) ([]core.StoredMessage, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, role, content, attached_files, created_at FROM chat_messages WHERE chat_id = ? ORDER BY id DESC LIMIT ?`,
		chatID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()

	var msgs []core.StoredMessage
	for rows.Next() {
		var m core.StoredMessage
		var files sql.NullString
		if err := rows.Scan(&m.ID, &m.Role, &m.Content, &files, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		m.ChatID = chatID
		if files.Valid && files.String != "" {
			if err := json.Unmarshal([]byte(files.String), &m.AttachedFiles); err != nil {
				return nil, fmt.Errorf("failed to unmarshal attached files: %w", err)
			}
		}
		msgs = append(msgs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// DESC query gave newest first; the model wants oldest first.
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}

	log.FromCtx(ctx).Debug().Int64("chat_id", chatID).Int("count", len(msgs)).Msg("loaded chat messages")
	return msgs, nil
}

func (r *ChatsRepo) ClearMessages(ctx context.Context, chatID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM chat_messages WHERE chat_id = ?`, chatID)
	if err != nil {
		return fmt.Errorf("failed to clear messages: %w", err)
	}
	return nil
}

// DeleteLastMessages drops the n newest messages of a chat. Used by
// regenerate to pop the last exchange.
func (r *ChatsRepo) DeleteLastMessages(ctx context.Context, chatID int64, n int) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM chat_messages WHERE id IN (
			SELECT id FROM chat_messages WHERE chat_id = ? ORDER BY id DESC LIMIT ?
		)`, chatID, n)
	if err != nil {
		return fmt.Errorf("failed to delete last messages: %w", err)
	}
	return nil
}
