package database

import (
	"context"
	"database/sql"
	"fmt"

	"tenant_portal/internal/domain/message"
)

var ErrMessageNotFound = fmt.Errorf("message not found")

type PostgresMessageRepository struct {
	db *sql.DB
}

func NewPostgresMessageRepository(db *sql.DB) *PostgresMessageRepository {
	return &PostgresMessageRepository{db: db}
}

func (r *PostgresMessageRepository) Create(ctx context.Context, m *message.Message) error {
	query := `INSERT INTO messages (tenant_id, body, date_sent, status)
               VALUES ($1, $2, $3, $4)
               RETURNING id`
	err := r.db.QueryRowContext(ctx, query, m.TenantID, m.Body, m.DateSent, m.Status).Scan(&m.ID)
	if err != nil {
		return fmt.Errorf("error creating message: %w", err)
	}
	return nil
}

func (r *PostgresMessageRepository) GetByID(ctx context.Context, id int64) (*message.Message, error) {
	query := `SELECT id, tenant_id, body, reply, date_sent, date_reply, status
               FROM messages WHERE id = $1`
	m := &message.Message{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&m.ID, &m.TenantID, &m.Body, &m.Reply, &m.DateSent, &m.DateReply, &m.Status)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrMessageNotFound
		}
		return nil, fmt.Errorf("error getting message by ID: %w", err)
	}
	return m, nil
}

func (r *PostgresMessageRepository) ListByTenant(ctx context.Context, tenantID int64) ([]*message.Message, error) {
	query := `SELECT id, tenant_id, body, reply, date_sent, date_reply, status
               FROM messages WHERE tenant_id = $1 ORDER BY date_sent DESC`
	return r.queryMessages(ctx, query, tenantID)
}

func (r *PostgresMessageRepository) List(ctx context.Context) ([]*message.Message, error) {
	query := `SELECT id, tenant_id, body, reply, date_sent, date_reply, status
               FROM messages ORDER BY date_sent DESC`
	return r.queryMessages(ctx, query)
}

func (r *PostgresMessageRepository) Reply(ctx context.Context, id int64, reply string) (*message.Message, error) {
	query := `UPDATE messages
               SET reply = $1, date_reply = NOW(), status = $2
               WHERE id = $3
               RETURNING id, tenant_id, body, reply, date_sent, date_reply, status`
	m := &message.Message{}
	err := r.db.QueryRowContext(ctx, query, reply, message.StatusReplied, id).
		Scan(&m.ID, &m.TenantID, &m.Body, &m.Reply, &m.DateSent, &m.DateReply, &m.Status)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrMessageNotFound
		}
		return nil, fmt.Errorf("error replying to message: %w", err)
	}
	return m, nil
}

func (r *PostgresMessageRepository) queryMessages(ctx context.Context, query string, args ...any) ([]*message.Message, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing messages: %w", err)
	}
	defer rows.Close()

	messages := make([]*message.Message, 0)
	for rows.Next() {
		m := &message.Message{}
		if err := rows.Scan(&m.ID, &m.TenantID, &m.Body, &m.Reply, &m.DateSent, &m.DateReply, &m.Status); err != nil {
			return nil, fmt.Errorf("error scanning message: %w", err)
		}
		messages = append(messages, m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating messages: %w", err)
	}
	return messages, nil
}
