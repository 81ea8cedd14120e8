package handler

import (
	"errors"
	"net/http"

	"github.com/alsham360/prima-api/internal/usecases/pipeline"
	"github.com/alsham360/prima-api/pkg/apiErrors"
	"github.com/alsham360/prima-api/pkg/log"
	"github.com/alsham360/prima-api/pkg/middleware"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.WithError(err).Error("Erro ao codificar resposta")
	}
}

// userID extrai o usuário autenticado; escreve 401 e devolve vazio quando ausente
func userID(w http.ResponseWriter, r *http.Request) string {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok || claims.UserID() == "" {
		apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
		return ""
	}
	return claims.UserID()
}

func writePipelineError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	log.ForContext(r.Context()).WithError(err).Error(fallback)

	var pipelineErr *pipeline.PipelineError
	if errors.As(err, &pipelineErr) {
		var details map[string]any
		if pipelineErr.OpportunityID != "" {
			details = map[string]any{
				"opportunity_id": pipelineErr.OpportunityID,
				"error_type":     pipelineErr.Err.Error(),
			}
		}
		apiErrors.WriteError(w, pipelineErr.Code, pipelineErr.Error(), details)
		return
	}

	switch {
	case errors.Is(err, pipeline.ErrInvalidStage):
		apiErrors.WriteError(w, apiErrors.ErrInvalidStage, "Etapa desconhecida", nil)
	case errors.Is(err, pipeline.ErrNoCardDragged):
		apiErrors.WriteError(w, apiErrors.ErrNoCardDragged, "Nenhum card sendo arrastado", nil)
	case errors.Is(err, pipeline.ErrOpportunityNotFound):
		apiErrors.WriteError(w, apiErrors.ErrOpportunityNotFound, "Oportunidade não encontrada", nil)
	case errors.Is(err, pipeline.ErrLoadOpportunities), errors.Is(err, pipeline.ErrFetchPoints):
		apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao consultar o banco de dados", nil)
	default:
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, fallback, nil)
	}
}
