package exporting

import (
	"io"

	"github.com/alsham360/prima-api/internal/domain"
	"github.com/alsham360/prima-api/pkg/utils"
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

const SheetName = "Pipeline"

// WriteXLSX escreve a mesma tabela do CSV numa planilha; valor e probabilidade saem como números
func WriteXLSX(w io.Writer, opportunities []*domain.Opportunity) error {
	file := excelize.NewFile()
	defer func() { _ = file.Close() }()

	if err := file.SetSheetName(file.GetSheetName(0), SheetName); err != nil {
		return errors.Wrap(err, "erro ao nomear planilha")
	}

	header := make([]interface{}, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := file.SetSheetRow(SheetName, "A1", &header); err != nil {
		return errors.Wrap(err, "erro ao escrever cabeçalho")
	}

	bold, err := file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return errors.Wrap(err, "erro ao criar estilo")
	}
	if err := file.SetCellStyle(SheetName, "A1", "F1", bold); err != nil {
		return errors.Wrap(err, "erro ao aplicar estilo")
	}

	row := 2
	for _, opp := range opportunities {
		if opp == nil {
			continue
		}

		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}

		values := []interface{}{
			opp.ID,
			opp.Titulo,
			nil,
			nil,
			string(opp.Status),
			utils.FormatDateBR(opp.CreatedAt),
		}
		if opp.Valor.Valid {
			values[2] = opp.Valor.Number
		}
		if opp.Probabilidade != nil {
			values[3] = *opp.Probabilidade
		}

		if err := file.SetSheetRow(SheetName, cell, &values); err != nil {
			return errors.Wrapf(err, "erro ao escrever oportunidade %s", opp.ID)
		}
		row++
	}

	if err := file.SetColWidth(SheetName, "A", "A", 38); err != nil {
		return err
	}
	if err := file.SetColWidth(SheetName, "B", "B", 40); err != nil {
		return err
	}

	if _, err := file.WriteTo(w); err != nil {
		return errors.Wrap(err, "erro ao gravar planilha")
	}

	return nil
}
