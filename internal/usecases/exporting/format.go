// Package exporting gera as planilhas da lista de oportunidades
package exporting

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/alsham360/prima-api/internal/domain"
	"github.com/alsham360/prima-api/pkg/utils"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

var ErrUnsupportedFormat = errors.New("unsupported export format")

// Header é a linha de cabeçalho comum aos dois formatos
var Header = []string{"ID", "Título", "Valor", "Probabilidade", "Status", "Data de criação"}

// ParseFormat aceita "csv" ou "xlsx"; vazio vira csv
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// FileName monta o nome do arquivo baixado, ex: pipeline_2025-03-10.csv
func FileName(f Format, now time.Time) string {
	return fmt.Sprintf("pipeline_%s.%s", now.Format(time.DateOnly), f)
}

// Write gera a exportação no formato pedido
func Write(w io.Writer, f Format, opportunities []*domain.Opportunity) error {
	switch f {
	case FormatCSV:
		return WriteCSV(w, opportunities)
	case FormatXLSX:
		return WriteXLSX(w, opportunities)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
}

func formatValor(a domain.Amount) string {
	if !a.Valid {
		return ""
	}
	return strconv.FormatFloat(a.Number, 'f', 2, 64)
}

func formatProbabilidade(p *int) string {
	if p == nil {
		return ""
	}
	return strconv.Itoa(*p)
}

func record(opp *domain.Opportunity) []string {
	return []string{
		opp.ID,
		opp.Titulo,
		formatValor(opp.Valor),
		formatProbabilidade(opp.Probabilidade),
		string(opp.Status),
		utils.FormatDateBR(opp.CreatedAt),
	}
}
