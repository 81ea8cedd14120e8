package repository

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/alsham360/prima-api/infrastructure/database/postgres"
	"github.com/alsham360/prima-api/internal/domain"
	"github.com/pkg/errors"
)

const gamificationPointsTable = "gamification_points"

type GamificationRepository interface {
	AwardPoints(ctx context.Context, award *domain.PointAward) error
	GetUserTotal(ctx context.Context, userID string) (int, error)
}

type gamificationRepository struct {
	conn postgres.Queryer
}

func NewGamificationRepository(conn postgres.Queryer) GamificationRepository {
	return &gamificationRepository{
		conn: conn,
	}
}

// AwardPoints registra um lançamento de pontos e preenche o ID gerado
func (r *gamificationRepository) AwardPoints(ctx context.Context, award *domain.PointAward) error {
	if award.UserID == "" {
		return errors.New("user ID is required")
	}

	if award.CreatedAt.IsZero() {
		award.CreatedAt = time.Now()
	}

	query, args, err := squirrel.
		Insert(gamificationPointsTable).
		Columns("user_id", "points", "action", "details", "created_at").
		Values(award.UserID, award.Points, award.Action, award.Details, award.CreatedAt).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "failed to build query")
	}

	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&award.ID); err != nil {
		return wrapExecError(err)
	}

	return nil
}

func (r *gamificationRepository) GetUserTotal(ctx context.Context, userID string) (int, error) {
	query, args, err := squirrel.
		Select("COALESCE(SUM(points), 0)").
		From(gamificationPointsTable).
		Where(squirrel.Eq{"user_id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, errors.Wrap(err, "erro ao construir a query")
	}

	var total int
	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, errors.Wrap(err, "erro ao somar pontos do usuário")
	}

	return total, nil
}
