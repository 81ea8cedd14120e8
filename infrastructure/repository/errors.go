// Package repository contém as implementações dos repositórios para acesso aos dados
package repository

import (
	"fmt"

	"github.com/lib/pq"
	"github.com/pkg/errors"
)

// ErrNotFound indica que a linha alvo não existe
var ErrNotFound = errors.New("registro não encontrado")

// wrapExecError anexa o código do Postgres quando o driver devolve *pq.Error
func wrapExecError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return fmt.Errorf("database error: %w (code: %s)", pqErr, pqErr.Code)
	}
	return errors.Wrap(err, "failed to execute query")
}
