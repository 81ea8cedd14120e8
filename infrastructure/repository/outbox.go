package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/alsham360/prima-api/infrastructure/database/postgres"
	"github.com/alsham360/prima-api/internal/domain"
	"github.com/pkg/errors"
)

const outboxTable = "webhook_outbox"

type OutboxRepository interface {
	Enqueue(ctx context.Context, entry *domain.OutboxEntry) error
	ListDue(ctx context.Context, now time.Time, limit int) ([]*domain.OutboxEntry, error)
	MarkDelivered(ctx context.Context, id string, deliveredAt time.Time) error
	MarkFailed(ctx context.Context, id string, attempts int, nextAttemptAt time.Time, lastError string, dead bool) error
	CountByStatus(ctx context.Context) (map[domain.OutboxStatus]int, error)
}

type outboxRepository struct {
	conn postgres.Queryer
}

func NewOutboxRepository(conn postgres.Queryer) OutboxRepository {
	return &outboxRepository{
		conn: conn,
	}
}

func (r *outboxRepository) Enqueue(ctx context.Context, entry *domain.OutboxEntry) error {
	if entry.ID == "" {
		return errors.New("ID is required")
	}

	if entry.Status == "" {
		entry.Status = domain.OutboxStatusPending
	}

	query, args, err := squirrel.
		Insert(outboxTable).
		Columns("id", "event_type", "payload", "status", "attempts", "next_attempt_at", "created_at").
		Values(entry.ID, entry.EventType, entry.Payload, string(entry.Status), entry.Attempts, entry.NextAttemptAt, entry.CreatedAt).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "failed to build query")
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return wrapExecError(err)
	}

	return nil
}

// ListDue devolve as entradas pendentes cujo próximo envio já venceu, das mais antigas para as mais novas
func (r *outboxRepository) ListDue(ctx context.Context, now time.Time, limit int) ([]*domain.OutboxEntry, error) {
	builder := squirrel.
		Select("id, event_type, payload, status, attempts, next_attempt_at, last_error, created_at, delivered_at").
		From(outboxTable).
		Where(squirrel.Eq{"status": string(domain.OutboxStatusPending)}).
		Where(squirrel.LtOrEq{"next_attempt_at": now}).
		OrderBy("created_at ASC").
		PlaceholderFormat(squirrel.Dollar)

	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao consultar outbox")
	}
	defer rows.Close()

	entries := make([]*domain.OutboxEntry, 0)
	for rows.Next() {
		var (
			entry       domain.OutboxEntry
			status      string
			lastError   sql.NullString
			deliveredAt sql.NullTime
		)

		if err := rows.Scan(
			&entry.ID,
			&entry.EventType,
			&entry.Payload,
			&status,
			&entry.Attempts,
			&entry.NextAttemptAt,
			&lastError,
			&entry.CreatedAt,
			&deliveredAt,
		); err != nil {
			return nil, errors.Wrap(err, "erro ao deserializar entrada do outbox")
		}

		entry.Status = domain.OutboxStatus(status)
		if lastError.Valid {
			entry.LastError = &lastError.String
		}
		if deliveredAt.Valid {
			entry.DeliveredAt = &deliveredAt.Time
		}

		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro ao iterar sobre os resultados")
	}

	return entries, nil
}

func (r *outboxRepository) MarkDelivered(ctx context.Context, id string, deliveredAt time.Time) error {
	query, args, err := squirrel.
		Update(outboxTable).
		Set("status", string(domain.OutboxStatusDelivered)).
		Set("delivered_at", deliveredAt).
		Set("attempts", squirrel.Expr("attempts + 1")).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "failed to build query")
	}

	return r.execExpectingRow(ctx, query, args)
}

func (r *outboxRepository) MarkFailed(ctx context.Context, id string, attempts int, nextAttemptAt time.Time, lastError string, dead bool) error {
	status := domain.OutboxStatusPending
	if dead {
		status = domain.OutboxStatusDead
	}

	query, args, err := squirrel.
		Update(outboxTable).
		Set("status", string(status)).
		Set("attempts", attempts).
		Set("next_attempt_at", nextAttemptAt).
		Set("last_error", lastError).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "failed to build query")
	}

	return r.execExpectingRow(ctx, query, args)
}

func (r *outboxRepository) CountByStatus(ctx context.Context) (map[domain.OutboxStatus]int, error) {
	query, args, err := squirrel.
		Select("status, COUNT(*)").
		From(outboxTable).
		GroupBy("status").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao contar outbox")
	}
	defer rows.Close()

	counts := make(map[domain.OutboxStatus]int)
	for rows.Next() {
		var (
			status string
			count  int
		)
		if err := rows.Scan(&status, &count); err != nil {
			return nil, errors.Wrap(err, "erro ao ler contagem do outbox")
		}
		counts[domain.OutboxStatus(status)] = count
	}

	return counts, rows.Err()
}

func (r *outboxRepository) execExpectingRow(ctx context.Context, query string, args []interface{}) error {
	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return wrapExecError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "error getting rows affected")
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
