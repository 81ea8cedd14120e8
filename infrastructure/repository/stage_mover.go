package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/alsham360/prima-api/infrastructure/database/postgres"
	"github.com/alsham360/prima-api/internal/domain"
)

// StageMover grava a nova etapa e o evento do outbox na mesma transação
type StageMover interface {
	MoveStage(ctx context.Context, id string, status domain.StageID, updatedAt time.Time, event *domain.OutboxEntry) error
}

type stageMover struct {
	conn postgres.Conn
}

func NewStageMover(conn postgres.Conn) StageMover {
	return &stageMover{
		conn: conn,
	}
}

// MoveStage atualiza a etapa e, quando event não é nil, enfileira o evento.
// Se o insert no outbox falhar a troca de etapa também é desfeita.
func (m *stageMover) MoveStage(ctx context.Context, id string, status domain.StageID, updatedAt time.Time, event *domain.OutboxEntry) error {
	return m.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		if err := NewOpportunityRepository(tx).UpdateStatus(ctx, id, status, updatedAt); err != nil {
			return err
		}

		if event == nil {
			return nil
		}

		return NewOutboxRepository(tx).Enqueue(ctx, event)
	})
}
