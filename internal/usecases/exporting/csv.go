package exporting

import (
	"encoding/csv"
	"io"

	"github.com/alsham360/prima-api/internal/domain"
	"github.com/pkg/errors"
)

// WriteCSV escreve o cabeçalho e uma linha por oportunidade.
// Campos com vírgula, aspas ou quebra de linha saem entre aspas, com aspas internas duplicadas.
func WriteCSV(w io.Writer, opportunities []*domain.Opportunity) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(Header); err != nil {
		return errors.Wrap(err, "erro ao escrever cabeçalho")
	}

	for _, opp := range opportunities {
		if opp == nil {
			continue
		}
		if err := writer.Write(record(opp)); err != nil {
			return errors.Wrapf(err, "erro ao escrever oportunidade %s", opp.ID)
		}
	}

	writer.Flush()
	return writer.Error()
}
