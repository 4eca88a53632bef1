package outbox

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

//go:generate mockgen -source=outbox_repo.go -destination=../mock/outbox/outbox_repo_mock.go -package=mock
type Repository interface {
	CreateOutboxEvent(ctx context.Context, e Event) error
	ListPending(ctx context.Context, limit int32) ([]Event, error)
	MarkSent(ctx context.Context, id uuid.UUID) error
	MarkFailed(ctx context.Context, id uuid.UUID) error
}

type outboxRepository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &outboxRepository{db: db}
}

const createOutboxEvent = `
INSERT INTO outbox_events (id, aggregate_type, aggregate_id, event_type, payload, status)
VALUES ($1, $2, $3, $4, $5, $6)`

func (r *outboxRepository) CreateOutboxEvent(ctx context.Context, e Event) error {
	status := e.Status
	if status == "" {
		status = StatusPending
	}
	_, err := r.db.ExecContext(ctx, createOutboxEvent,
		e.ID, e.AggregateType, e.AggregateID, e.EventType, e.Payload, status,
	)
	if err != nil {
		return fmt.Errorf("create outbox event: %w", err)
	}
	return nil
}

const listPendingOutbox = `
SELECT id, aggregate_type, aggregate_id, event_type, payload, status, created_at
FROM outbox_events
WHERE status = 'PENDING'
ORDER BY created_at
LIMIT $1`

func (r *outboxRepository) ListPending(ctx context.Context, limit int32) ([]Event, error) {
	rows, err := r.db.QueryContext(ctx, listPendingOutbox, limit)
	if err != nil {
		return nil, fmt.Errorf("list pending outbox: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.AggregateType, &e.AggregateID, &e.EventType, &e.Payload, &e.Status, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan outbox event: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate outbox events: %w", err)
	}
	return events, nil
}

const markOutboxSent = `UPDATE outbox_events SET status = 'SENT', sent_at = NOW() WHERE id = $1`

func (r *outboxRepository) MarkSent(ctx context.Context, id uuid.UUID) error {
	if _, err := r.db.ExecContext(ctx, markOutboxSent, id); err != nil {
		return fmt.Errorf("mark outbox sent: %w", err)
	}
	return nil
}

const markOutboxFailed = `UPDATE outbox_events SET status = 'FAILED', retry_count = retry_count + 1 WHERE id = $1`

func (r *outboxRepository) MarkFailed(ctx context.Context, id uuid.UUID) error {
	if _, err := r.db.ExecContext(ctx, markOutboxFailed, id); err != nil {
		return fmt.Errorf("mark outbox failed: %w", err)
	}
	return nil
}
