package pipeline

import (
	"github.com/alsham360/prima-api/internal/domain"
	"github.com/alsham360/prima-api/pkg/utils"
)

// BuildBoard agrupa as oportunidades nas raias fixas do pipeline.
// Valores não numéricos contam como zero. Oportunidades com status
// desconhecido ficam em Unassigned e fora dos totais.
func BuildBoard(opportunities []*domain.Opportunity) *domain.Board {
	stages := domain.Stages()

	board := &domain.Board{
		Columns: make([]domain.StageColumn, len(stages)),
	}

	index := make(map[domain.StageID]int, len(stages))
	for i, stage := range stages {
		index[stage.ID] = i
		board.Columns[i] = domain.StageColumn{
			Stage:         stage,
			Opportunities: make([]*domain.Opportunity, 0),
		}
	}

	for _, opp := range opportunities {
		if opp == nil {
			continue
		}

		i, ok := index[opp.Status]
		if !ok {
			board.Unassigned = append(board.Unassigned, opp)
			continue
		}

		column := &board.Columns[i]
		column.Opportunities = append(column.Opportunities, opp)
		column.Count++
		column.Total += opp.Valor.Float()
	}

	var grandTotal float64
	for i := range board.Columns {
		board.Columns[i].Total = utils.RoundWithTwoDecimalPlace(board.Columns[i].Total)
		grandTotal += board.Columns[i].Total
	}
	board.GrandTotal = utils.RoundWithTwoDecimalPlace(grandTotal)

	return board
}
