package repository

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alsham360/prima-api/infrastructure/database/postgres"
	"github.com/alsham360/prima-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoveStage(t *testing.T) {
	now := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	updateQuery := regexp.QuoteMeta("UPDATE opportunities SET status = $1, updated_at = $2 WHERE id = $3")
	insertQuery := regexp.QuoteMeta("INSERT INTO webhook_outbox")

	newEvent := func() *domain.OutboxEntry {
		return &domain.OutboxEntry{
			ID:            "evt-1",
			EventType:     domain.EventOpportunityWon,
			Payload:       []byte(`{}`),
			NextAttemptAt: now,
			CreatedAt:     now,
		}
	}

	tests := []struct {
		name    string
		status  domain.StageID
		event   *domain.OutboxEntry
		setup   func(mock sqlmock.Sqlmock)
		wantErr error
		errText string
	}{
		{
			name:   "sem evento só atualiza a etapa",
			status: domain.StageNegociacao,
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(updateQuery).
					WithArgs("negociacao", now, "opp-1").
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
		},
		{
			name:   "etapa e evento na mesma transação",
			status: domain.StageGanho,
			event:  newEvent(),
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(updateQuery).
					WithArgs("ganho", now, "opp-1").
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(insertQuery).WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
		},
		{
			name:   "falha no outbox desfaz a troca de etapa",
			status: domain.StageGanho,
			event:  newEvent(),
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(updateQuery).
					WithArgs("ganho", now, "opp-1").
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(insertQuery).WillReturnError(errors.New("disk full"))
				mock.ExpectRollback()
			},
			errText: "disk full",
		},
		{
			name:   "oportunidade inexistente não enfileira",
			status: domain.StageGanho,
			event:  newEvent(),
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(updateQuery).
					WithArgs("ganho", now, "opp-1").
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectRollback()
			},
			wantErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.setup(mock)

			mover := NewStageMover(&postgres.Connection{DB: db})
			err = mover.MoveStage(t.Context(), "opp-1", tt.status, now, tt.event)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.errText != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errText)
			default:
				assert.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
