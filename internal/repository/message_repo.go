package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"portfolio-api/internal/model"
)

type MessageRepository struct {
	pool *pgxpool.Pool
}

func NewMessageRepository(pool *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{pool: pool}
}

func (r *MessageRepository) List(ctx context.Context) ([]model.Message, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, email, subject, message, status, ip, user_agent, created_at
		 FROM messages ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	messages := make([]model.Message, 0)
	for rows.Next() {
		var m model.Message
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Message, &m.Status,
			&m.IP, &m.UserAgent, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

func (r *MessageRepository) Create(ctx context.Context, m model.Message) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO messages (id, name, email, subject, message, status, ip, user_agent, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		m.ID, m.Name, m.Email, m.Subject, m.Message, m.Status, m.IP, m.UserAgent, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("create message: %w", err)
	}
	return nil
}

func (r *MessageRepository) UpdateStatus(ctx context.Context, id string, status string) error {
	if !validID(id) {
		return model.ErrNotFound
	}
	tag, err := r.pool.Exec(ctx, `UPDATE messages SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update message status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *MessageRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.pool, "messages", id)
}

// Count returns the number of messages with the given status, or all
// messages when status is empty.
func (r *MessageRepository) Count(ctx context.Context, status string) (int, error) {
	if status == "" {
		return countRows(ctx, r.pool, "messages")
	}
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM messages WHERE status = $1`, status).Scan(&n); err != nil {
		return 0, fmt.Errorf("count messages: %w", err)
	}
	return n, nil
}
