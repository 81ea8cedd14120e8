package repository

import (
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alsham360/prima-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnqueue(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	entry := &domain.OutboxEntry{
		ID:            "evt-1",
		EventType:     domain.EventOpportunityWon,
		Payload:       []byte(`{"event":"opportunity.won"}`),
		NextAttemptAt: now,
		CreatedAt:     now,
	}

	mock.ExpectExec(regexp.QuoteMeta(
		"INSERT INTO webhook_outbox (id,event_type,payload,status,attempts,next_attempt_at,created_at) VALUES ($1,$2,$3,$4,$5,$6,$7)",
	)).
		WithArgs("evt-1", "opportunity.won", entry.Payload, "pending", 0, now, now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewOutboxRepository(db)
	require.NoError(t, repo.Enqueue(t.Context(), entry))

	assert.Equal(t, domain.OutboxStatusPending, entry.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListDue(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "event_type", "payload", "status", "attempts", "next_attempt_at", "last_error", "created_at", "delivered_at"}).
		AddRow("evt-1", "opportunity.won", []byte(`{}`), "pending", 0, now, nil, now, nil).
		AddRow("evt-2", "opportunity.won", []byte(`{}`), "pending", 2, now, "status 500", now, nil)

	mock.ExpectQuery(regexp.QuoteMeta(
		"FROM webhook_outbox WHERE status = $1 AND next_attempt_at <= $2 ORDER BY created_at ASC LIMIT 50",
	)).
		WithArgs("pending", now).
		WillReturnRows(rows)

	repo := NewOutboxRepository(db)
	entries, err := repo.ListDue(t.Context(), now, 50)

	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Nil(t, entries[0].LastError)
	require.NotNil(t, entries[1].LastError)
	assert.Equal(t, "status 500", *entries[1].LastError)
	assert.Equal(t, 2, entries[1].Attempts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkFailed(t *testing.T) {
	next := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)
	query := regexp.QuoteMeta(
		"UPDATE webhook_outbox SET status = $1, attempts = $2, next_attempt_at = $3, last_error = $4 WHERE id = $5",
	)

	tests := []struct {
		name       string
		dead       bool
		wantStatus string
	}{
		{name: "volta para pendente", dead: false, wantStatus: "pending"},
		{name: "esgotou tentativas", dead: true, wantStatus: "dead"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			mock.ExpectExec(query).
				WithArgs(tt.wantStatus, 3, next, "timeout", "evt-1").
				WillReturnResult(sqlmock.NewResult(0, 1))

			repo := NewOutboxRepository(db)
			err = repo.MarkFailed(t.Context(), "evt-1", 3, next, "timeout", tt.dead)

			assert.NoError(t, err)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestMarkDelivered_Inexistente(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE webhook_outbox SET status = $1, delivered_at = $2, attempts = attempts + 1 WHERE id = $3")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewOutboxRepository(db)
	err = repo.MarkDelivered(t.Context(), "evt-x", time.Now())

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCountByStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT status, COUNT(*) FROM webhook_outbox GROUP BY status")).
		WillReturnRows(sqlmock.NewRows([]string{"status", "count"}).
			AddRow("pending", 3).
			AddRow("dead", 1))

	repo := NewOutboxRepository(db)
	counts, err := repo.CountByStatus(t.Context())

	require.NoError(t, err)
	assert.Equal(t, 3, counts[domain.OutboxStatusPending])
	assert.Equal(t, 1, counts[domain.OutboxStatusDead])
	assert.Equal(t, 0, counts[domain.OutboxStatusDelivered])
}
