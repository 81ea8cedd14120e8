package handler

import (
	"net/http"
	"strconv"

	"github.com/alsham360/prima-api/internal/domain"
	"github.com/alsham360/prima-api/internal/usecases/pipeline"
	"github.com/alsham360/prima-api/pkg/apiErrors"
	"github.com/alsham360/prima-api/pkg/log"
	"github.com/julienschmidt/httprouter"
)

// GetBoard devolve o board do usuário; ?force=true ignora o cache local
func GetBoard(service pipeline.PipelineService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uid := userID(w, r)
		if uid == "" {
			return
		}

		force := false
		if raw := r.URL.Query().Get("force"); raw != "" {
			parsed, err := strconv.ParseBool(raw)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro force inválido", nil)
				return
			}
			force = parsed
		}

		if force {
			if _, err := service.Load(r.Context(), uid, true); err != nil {
				writePipelineError(w, r, err, "Erro ao recarregar oportunidades")
				return
			}
		}

		board, err := service.Board(r.Context(), uid)
		if err != nil {
			writePipelineError(w, r, err, "Erro ao montar o board")
			return
		}

		writeJSON(w, http.StatusOK, board)
	})
}

func ListStages() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, domain.Stages())
	})
}

func DragStart(service pipeline.PipelineService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uid := userID(w, r)
		if uid == "" {
			return
		}

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da oportunidade é obrigatório", nil)
			return
		}

		if err := service.DragStart(r.Context(), uid, id); err != nil {
			writePipelineError(w, r, err, "Erro ao iniciar o arraste")
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{"dragging": id})
	})
}

func DragEnd(service pipeline.PipelineService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uid := userID(w, r)
		if uid == "" {
			return
		}

		service.DragEnd(uid)
		w.WriteHeader(http.StatusNoContent)
	})
}

// Drop solta o card arrastado na etapa da URL. O arraste termina mesmo em caso de erro.
func Drop(service pipeline.PipelineService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uid := userID(w, r)
		if uid == "" {
			return
		}
		defer service.DragEnd(uid)

		stage := domain.StageID(httprouter.ParamsFromContext(r.Context()).ByName("stage"))

		result, err := service.Drop(r.Context(), uid, stage)
		if err != nil {
			writePipelineError(w, r, err, "Erro ao mover oportunidade")
			return
		}

		logDrop(r, uid, result)
		writeJSON(w, http.StatusOK, result)
	})
}

func MoveOpportunity(service pipeline.PipelineService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uid := userID(w, r)
		if uid == "" {
			return
		}

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da oportunidade é obrigatório", nil)
			return
		}

		var req domain.MoveRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido: "+err.Error(), nil)
			return
		}

		if req.Status == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Campo status é obrigatório", nil)
			return
		}

		result, err := service.Move(r.Context(), uid, id, req.Status)
		if err != nil {
			writePipelineError(w, r, err, "Erro ao mover oportunidade")
			return
		}

		logDrop(r, uid, result)
		writeJSON(w, http.StatusOK, result)
	})
}

func logDrop(r *http.Request, uid string, result *domain.DropResult) {
	if result == nil || !result.Moved {
		return
	}

	log.ForContext(r.Context()).WithFields(log.Fields{
		"user_id":        uid,
		"opportunity_id": result.OpportunityID,
		"stage":          result.To,
		"points":         result.PointsAwarded,
	}).Info("Oportunidade movida")
}

func GetMyPoints(service pipeline.PipelineService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uid := userID(w, r)
		if uid == "" {
			return
		}

		points, err := service.UserPoints(r.Context(), uid)
		if err != nil {
			writePipelineError(w, r, err, "Erro ao consultar pontos")
			return
		}

		writeJSON(w, http.StatusOK, points)
	})
}
