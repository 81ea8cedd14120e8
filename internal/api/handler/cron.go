package handler

import (
	"net/http"

	"github.com/alsham360/prima-api/internal/scheduler"
	"github.com/alsham360/prima-api/pkg/apiErrors"
	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
)

// CronJobType define o tipo de cron job que será executada
const (
	CronJobTypeOutbox = "outbox"
	CronJobTypeAll    = "all"
)

// CronJobServices contém os serviços de cron necessários para executar manualmente
type CronJobServices struct {
	OutboxDispatchService *scheduler.OutboxDispatchService
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunCronJob")

		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		switch cronType {
		case CronJobTypeOutbox, CronJobTypeAll:
			if services.OutboxDispatchService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de despacho do outbox não disponível", nil)
				return
			}
			services.OutboxDispatchService.TriggerManualSync()

		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: outbox, all", nil)
			return
		}

		writeJSON(w, http.StatusAccepted, map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
		})
	})
}

// GetCronStatus retorna o status das cron jobs e o tamanho da fila do outbox
func GetCronStatus(services CronJobServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetCronStatus")

		if services.OutboxDispatchService == nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de despacho do outbox não disponível", nil)
			return
		}

		status := services.OutboxDispatchService.GetStatus()

		counts, err := services.OutboxDispatchService.QueueCounts(r.Context())
		if err != nil {
			logrus.WithError(err).Warn("Erro ao contar entradas do outbox")
		} else {
			status["queue"] = counts
		}

		writeJSON(w, http.StatusOK, map[string]any{
			CronJobTypeOutbox: status,
		})
	})
}
