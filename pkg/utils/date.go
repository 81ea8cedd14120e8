package utils

import "time"

const brazilianDateLayout = "02/01/2006"

var saoPaulo = loadLocation("America/Sao_Paulo")

func loadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.FixedZone("BRT", -3*60*60)
	}
	return loc
}

// FormatDateBR formata a data no padrão dd/mm/aaaa no fuso de São Paulo
func FormatDateBR(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(saoPaulo).Format(brazilianDateLayout)
}
