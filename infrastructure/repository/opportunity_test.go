package repository

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alsham360/prima-api/internal/domain"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var opportunityRowColumns = []string{"id", "titulo", "valor", "probabilidade", "status", "created_at", "updated_at"}

func TestListOpportunities(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	created := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	updated := created.Add(time.Hour)

	rows := sqlmock.NewRows(opportunityRowColumns).
		AddRow("opp-1", "Contrato anual", "1500.50", int64(60), "proposta", created, updated).
		AddRow("opp-2", "Renovação", nil, nil, "ganho", created, nil)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT o.id, o.titulo, o.valor, o.probabilidade, o.status, o.created_at, o.updated_at FROM opportunities o ORDER BY o.created_at DESC",
	)).WillReturnRows(rows)

	repo := NewOpportunityRepository(db)
	opps, err := repo.ListOpportunities(t.Context())

	require.NoError(t, err)
	require.Len(t, opps, 2)

	assert.Equal(t, "opp-1", opps[0].ID)
	assert.Equal(t, domain.StageProposta, opps[0].Status)
	assert.True(t, opps[0].Valor.Valid)
	assert.InDelta(t, 1500.50, opps[0].Valor.Float(), 0.001)
	require.NotNil(t, opps[0].Probabilidade)
	assert.Equal(t, 60, *opps[0].Probabilidade)
	require.NotNil(t, opps[0].UpdatedAt)
	assert.Equal(t, updated, *opps[0].UpdatedAt)

	assert.False(t, opps[1].Valor.Valid)
	assert.Nil(t, opps[1].Probabilidade)
	assert.Nil(t, opps[1].UpdatedAt)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListOpportunities_ErroNaConsulta(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT").WillReturnError(errors.New("connection refused"))

	repo := NewOpportunityRepository(db)
	opps, err := repo.ListOpportunities(t.Context())

	assert.Error(t, err)
	assert.Nil(t, opps)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestUpdateStatus(t *testing.T) {
	updateQuery := regexp.QuoteMeta("UPDATE opportunities SET status = $1, updated_at = $2 WHERE id = $3")
	now := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		id      string
		setup   func(mock sqlmock.Sqlmock)
		wantErr error
		errText string
	}{
		{
			name: "sucesso",
			id:   "opp-1",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(updateQuery).
					WithArgs("ganho", now, "opp-1").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "nenhuma linha afetada",
			id:   "opp-x",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(updateQuery).
					WithArgs("ganho", now, "opp-x").
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErr: ErrNotFound,
		},
		{
			name: "erro do postgres preserva o código",
			id:   "opp-1",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(updateQuery).
					WithArgs("ganho", now, "opp-1").
					WillReturnError(&pq.Error{Code: "23514", Message: "check constraint"})
			},
			errText: "code: 23514",
		},
		{
			name:    "ID vazio",
			id:      "",
			setup:   func(mock sqlmock.Sqlmock) {},
			errText: "ID is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.setup(mock)

			repo := NewOpportunityRepository(db)
			err = repo.UpdateStatus(t.Context(), tt.id, domain.StageGanho, now)

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
