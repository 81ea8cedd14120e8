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

const (
	opportunitiesTable   = "opportunities o"
	opportunityColumns   = "o.id, o.titulo, o.valor, o.probabilidade, o.status, o.created_at, o.updated_at"
	opportunitiesUpdates = "opportunities"
)

type OpportunityRepository interface {
	ListOpportunities(ctx context.Context) ([]*domain.Opportunity, error)
	UpdateStatus(ctx context.Context, id string, status domain.StageID, updatedAt time.Time) error
}

type opportunityRepository struct {
	conn postgres.Queryer
}

func NewOpportunityRepository(conn postgres.Queryer) OpportunityRepository {
	return &opportunityRepository{
		conn: conn,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

// ListOpportunities devolve todas as oportunidades, das mais recentes para as mais antigas
func (r *opportunityRepository) ListOpportunities(ctx context.Context) ([]*domain.Opportunity, error) {
	query, args, err := squirrel.
		Select(opportunityColumns).
		From(opportunitiesTable).
		OrderBy("o.created_at DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao consultar oportunidades")
	}
	defer rows.Close()

	opportunities := make([]*domain.Opportunity, 0)
	for rows.Next() {
		opp, err := r.deserializeOpportunity(rows)
		if err != nil {
			return nil, errors.Wrap(err, "erro ao deserializar oportunidade")
		}
		opportunities = append(opportunities, opp)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro ao iterar sobre os resultados")
	}

	return opportunities, nil
}

func (r *opportunityRepository) deserializeOpportunity(row rowScanner) (*domain.Opportunity, error) {
	var (
		opp           domain.Opportunity
		status        string
		probabilidade sql.NullInt64
		updatedAt     sql.NullTime
	)

	if err := row.Scan(
		&opp.ID,
		&opp.Titulo,
		&opp.Valor,
		&probabilidade,
		&status,
		&opp.CreatedAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}

	opp.Status = domain.StageID(status)

	if probabilidade.Valid {
		p := int(probabilidade.Int64)
		opp.Probabilidade = &p
	}

	if updatedAt.Valid {
		u := updatedAt.Time
		opp.UpdatedAt = &u
	}

	return &opp, nil
}

// UpdateStatus move a oportunidade para outra etapa
func (r *opportunityRepository) UpdateStatus(ctx context.Context, id string, status domain.StageID, updatedAt time.Time) error {
	if id == "" {
		return errors.New("ID is required")
	}

	query, args, err := squirrel.
		Update(opportunitiesUpdates).
		Set("status", string(status)).
		Set("updated_at", updatedAt).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "failed to build query")
	}

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
