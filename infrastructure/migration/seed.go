package migration

import (
	"context"
	"database/sql"
	"time"

	"github.com/alsham360/prima-api/infrastructure/database/postgres"
	"github.com/alsham360/prima-api/internal/domain"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// SeedResult resume uma carga de oportunidades
type SeedResult struct {
	Inserted int
	Skipped  int
}

// DemoOpportunities é a carga usada em ambientes locais
func DemoOpportunities(now time.Time) []*domain.Opportunity {
	prob := func(p int) *int { return &p }

	return []*domain.Opportunity{
		{Titulo: "Implantação CRM - Ótica Central", Valor: domain.NewAmount(18500), Probabilidade: prob(20), Status: domain.StageProspeccao, CreatedAt: now.Add(-96 * time.Hour)},
		{Titulo: "Licenças anuais, filial Sul", Valor: domain.NewAmount(7200), Probabilidade: prob(40), Status: domain.StageQualificacao, CreatedAt: now.Add(-72 * time.Hour)},
		{Titulo: "Consultoria de automação", Valor: domain.NewAmount(12900.9), Probabilidade: prob(60), Status: domain.StageProposta, CreatedAt: now.Add(-48 * time.Hour)},
		{Titulo: "Renovação contrato \"Premium\"", Valor: domain.NewAmount(30000), Probabilidade: prob(80), Status: domain.StageNegociacao, CreatedAt: now.Add(-24 * time.Hour)},
		{Titulo: "Treinamento equipe comercial", Valor: domain.NewAmount(4500), Probabilidade: prob(100), Status: domain.StageGanho, CreatedAt: now.Add(-12 * time.Hour)},
		{Titulo: "Integração ERP legado", Valor: domain.Amount{}, Status: domain.StagePerdido, CreatedAt: now.Add(-6 * time.Hour)},
	}
}

// Seed insere as oportunidades numa única transação; IDs vazios recebem um UUID
func Seed(ctx context.Context, conn postgres.Conn, opportunities []*domain.Opportunity) (SeedResult, error) {
	var result SeedResult

	logrus.Infof("Iniciando inserção de %d oportunidades...", len(opportunities))
	startTime := time.Now()

	err := conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `INSERT INTO opportunities (id, titulo, valor, probabilidade, status, created_at)
			VALUES ($1, $2, $3, $4, $5, $6) ON CONFLICT (id) DO NOTHING`)
		if err != nil {
			return errors.Wrap(err, "erro ao preparar statement para opportunities")
		}
		defer stmt.Close()

		for i, opp := range opportunities {
			if opp.ID == "" {
				opp.ID = uuid.NewString()
			}

			var probabilidade any
			if opp.Probabilidade != nil {
				probabilidade = *opp.Probabilidade
			}

			res, err := stmt.ExecContext(ctx, opp.ID, opp.Titulo, opp.Valor, probabilidade, string(opp.Status), opp.CreatedAt)
			if err != nil {
				return errors.Wrapf(err, "erro ao inserir oportunidade %d (%s)", i+1, opp.Titulo)
			}

			if n, _ := res.RowsAffected(); n == 0 {
				result.Skipped++
				continue
			}
			result.Inserted++
		}

		return nil
	})
	if err != nil {
		return SeedResult{}, err
	}

	logrus.Infof("Inserção concluída em %v: %d inseridas, %d já existentes",
		time.Since(startTime), result.Inserted, result.Skipped)

	return result, nil
}
