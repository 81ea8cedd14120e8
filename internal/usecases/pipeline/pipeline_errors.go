package pipeline

import (
	"errors"
	"fmt"
)

// Erros específicos do board de pipeline
var (
	// Erros de validação
	ErrUserRequired = errors.New("user ID is required")
	ErrInvalidStage = errors.New("invalid pipeline stage")

	// Erros de estado do board
	ErrNoCardDragged       = errors.New("no card is being dragged")
	ErrOpportunityNotFound = errors.New("opportunity not found")

	// Erros de banco de dados
	ErrLoadOpportunities = errors.New("error loading opportunities")
	ErrUpdateStatus      = errors.New("error updating opportunity status")
	ErrFetchPoints       = errors.New("error fetching gamification points")
	ErrInvalidateCache   = errors.New("error invalidating opportunity cache")
)

// PipelineError é um erro com contexto adicional para operações do board
type PipelineError struct {
	Err           error  // Erro base
	Code          string // Código de erro para API
	OpportunityID string // Oportunidade envolvida (quando aplicável)
	Details       string // Detalhes adicionais
}

func (e *PipelineError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

func NewPipelineError(err error, code string, details string) *PipelineError {
	return &PipelineError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}

func NewPipelineErrorWithID(err error, code string, opportunityID string, details string) *PipelineError {
	return &PipelineError{
		Err:           err,
		Code:          code,
		OpportunityID: opportunityID,
		Details:       details,
	}
}
