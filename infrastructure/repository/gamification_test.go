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

func TestAwardPoints(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	award := &domain.PointAward{
		UserID:    "user-1",
		Points:    10,
		Action:    domain.ActionPipelineMove,
		Details:   "proposta->ganho",
		CreatedAt: now,
	}

	mock.ExpectQuery(regexp.QuoteMeta(
		"INSERT INTO gamification_points (user_id,points,action,details,created_at) VALUES ($1,$2,$3,$4,$5) RETURNING id",
	)).
		WithArgs("user-1", 10, "pipeline_move", "proposta->ganho", now).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(42)))

	repo := NewGamificationRepository(db)
	require.NoError(t, repo.AwardPoints(t.Context(), award))

	assert.Equal(t, int64(42), award.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAwardPoints_SemUsuario(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewGamificationRepository(db)
	err = repo.AwardPoints(t.Context(), &domain.PointAward{Points: 10})

	assert.EqualError(t, err, "user ID is required")
}

func TestGetUserTotal(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT COALESCE(SUM(points), 0) FROM gamification_points WHERE user_id = $1",
	)).
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow(130))

	repo := NewGamificationRepository(db)
	total, err := repo.GetUserTotal(t.Context(), "user-1")

	require.NoError(t, err)
	assert.Equal(t, 130, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}
