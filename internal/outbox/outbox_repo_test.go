package outbox_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"go-cart-api/internal/outbox"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutboxRepository_CreateOutboxEvent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := outbox.NewRepository(db)
	ev, err := outbox.NewEvent("ORDER", "ORD-1", "CLEAR_CART_ITEMS", map[string]string{"sessionId": "s1"})
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO outbox_events")).
			WithArgs(ev.ID, "ORDER", "ORD-1", "CLEAR_CART_ITEMS", ev.Payload, outbox.StatusPending).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.CreateOutboxEvent(context.Background(), ev))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("db_error", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO outbox_events")).
			WillReturnError(errors.New("conn reset"))

		assert.Error(t, repo.CreateOutboxEvent(context.Background(), ev))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestOutboxRepository_ListPending(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := outbox.NewRepository(db)
	id := uuid.New()
	now := time.Now()

	rows := sqlmock.NewRows([]string{"id", "aggregate_type", "aggregate_id", "event_type", "payload", "status", "created_at"}).
		AddRow(id, "ORDER", "ORD-1", "CLEAR_CART_ITEMS", []byte(`{}`), "PENDING", now)
	mock.ExpectQuery(regexp.QuoteMeta("FROM outbox_events")).
		WithArgs(int32(10)).
		WillReturnRows(rows)

	events, err := repo.ListPending(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, id, events[0].ID)
	assert.Equal(t, "CLEAR_CART_ITEMS", events[0].EventType)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_Mark(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := outbox.NewRepository(db)
	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta("SET status = 'SENT'")).WithArgs(id).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("SET status = 'FAILED'")).WithArgs(id).WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.MarkSent(context.Background(), id))
	require.NoError(t, repo.MarkFailed(context.Background(), id))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewEvent(t *testing.T) {
	ev, err := outbox.NewEvent("ORDER", "1", "X", map[string]int{"a": 1})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(ev.Payload))
	assert.Equal(t, outbox.StatusPending, ev.Status)
	assert.NotEqual(t, uuid.Nil, ev.ID)

	_, err = outbox.NewEvent("ORDER", "1", "X", make(chan int))
	assert.Error(t, err)
}
