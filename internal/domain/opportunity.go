// Package domain contém as estruturas de dados do domínio do pipeline de vendas
package domain

import (
	"database/sql/driver"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Opportunity é um card do pipeline de vendas
type Opportunity struct {
	ID            string     `json:"id"`
	Titulo        string     `json:"titulo"`
	Valor         Amount     `json:"valor"`
	Probabilidade *int       `json:"probabilidade"`
	Status        StageID    `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}

// Clone devolve uma cópia independente da oportunidade
func (o *Opportunity) Clone() *Opportunity {
	c := *o
	if o.Probabilidade != nil {
		p := *o.Probabilidade
		c.Probabilidade = &p
	}
	if o.UpdatedAt != nil {
		u := *o.UpdatedAt
		c.UpdatedAt = &u
	}
	return &c
}

// Amount representa o campo valor. Valores não numéricos contam como zero.
type Amount struct {
	Number float64
	Valid  bool
}

// NewAmount cria um valor monetário válido
func NewAmount(v float64) Amount {
	return Amount{Number: v, Valid: true}
}

// Float retorna o valor numérico, zero quando inválido
func (a Amount) Float() float64 {
	if !a.Valid {
		return 0
	}
	return a.Number
}

func (a Amount) String() string {
	if !a.Valid {
		return ""
	}
	return strconv.FormatFloat(a.Number, 'f', -1, 64)
}

func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(a.Number, 'f', -1, 64)), nil
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	*a = Amount{}

	raw := strings.TrimSpace(string(data))
	if raw == "" || raw == "null" {
		return nil
	}

	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		*a = parseAmount(s)
		return nil
	}

	*a = parseAmount(raw)
	return nil
}

// Scan implementa sql.Scanner para colunas numeric do Postgres
func (a *Amount) Scan(src any) error {
	*a = Amount{}

	switch v := src.(type) {
	case nil:
		return nil
	case float64:
		*a = finiteAmount(v)
	case int64:
		*a = NewAmount(float64(v))
	case []byte:
		*a = parseAmount(string(v))
	case string:
		*a = parseAmount(v)
	default:
		return fmt.Errorf("tipo não suportado para valor: %T", src)
	}

	return nil
}

// Value implementa driver.Valuer
func (a Amount) Value() (driver.Value, error) {
	if !a.Valid {
		return nil, nil
	}
	return a.Number, nil
}

func parseAmount(s string) Amount {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return Amount{}
	}
	return finiteAmount(f)
}

// finiteAmount descarta NaN e infinitos, que o numeric do Postgres aceita mas não somam
func finiteAmount(f float64) Amount {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Amount{}
	}
	return NewAmount(f)
}
