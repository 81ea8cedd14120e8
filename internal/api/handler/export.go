package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/alsham360/prima-api/infrastructure/archive"
	"github.com/alsham360/prima-api/internal/usecases/exporting"
	"github.com/alsham360/prima-api/internal/usecases/pipeline"
	"github.com/alsham360/prima-api/pkg/apiErrors"
	"github.com/alsham360/prima-api/pkg/log"
)

// ExportPipeline exporta as oportunidades carregadas pelo usuário.
// Com ?archive=true o arquivo vai para o bucket configurado e a resposta traz a localização.
func ExportPipeline(service pipeline.PipelineService, uploader archive.Uploader) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uid := userID(w, r)
		if uid == "" {
			return
		}

		format, err := exporting.ParseFormat(r.URL.Query().Get("format"))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Formato inválido. Valores aceitos: csv, xlsx", nil)
			return
		}

		toArchive := false
		if raw := r.URL.Query().Get("archive"); raw != "" {
			toArchive, err = strconv.ParseBool(raw)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro archive inválido", nil)
				return
			}
		}

		opportunities, err := service.Opportunities(r.Context(), uid)
		if err != nil {
			writePipelineError(w, r, err, "Erro ao carregar oportunidades para exportação")
			return
		}

		now := time.Now()
		fileName := exporting.FileName(format, now)
		logger := log.ForContext(r.Context()).WithFields(log.Fields{
			"user_id": uid,
			"format":  string(format),
			"rows":    len(opportunities),
		})

		if toArchive {
			if uploader == nil {
				apiErrors.WriteError(w, apiErrors.ErrExternalService, "Arquivamento de exportações não configurado", nil)
				return
			}

			key := fmt.Sprintf("%s/%d_%s", uid, now.Unix(), fileName)
			location, err := exporting.Archive(r.Context(), uploader, key, format, opportunities)
			if err != nil {
				logger.WithError(err).Error("Erro ao arquivar exportação")
				if errors.Is(err, archive.ErrArchiveNotConfigured) {
					apiErrors.WriteError(w, apiErrors.ErrExternalService, "Arquivamento de exportações não configurado", nil)
					return
				}
				apiErrors.WriteError(w, apiErrors.ErrExternalService, "Erro ao enviar exportação para o armazenamento", nil)
				return
			}

			logger.WithField("location", location).Info("Exportação arquivada")
			writeJSON(w, http.StatusCreated, map[string]any{
				"file":     fileName,
				"location": location,
				"rows":     len(opportunities),
			})
			return
		}

		w.Header().Set("Content-Type", format.ContentType())
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))

		if err := exporting.Write(w, format, opportunities); err != nil {
			// cabeçalhos já enviados, só resta registrar
			logger.WithError(err).Error("Erro ao escrever exportação")
			return
		}

		logger.Info("Exportação gerada")
	})
}
