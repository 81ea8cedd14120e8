package handler

import (
	"net/http"

	"github.com/alsham360/prima-api/infrastructure/archive"
	"github.com/alsham360/prima-api/internal/api/handler/router"
	"github.com/alsham360/prima-api/internal/usecases/pipeline"
	"github.com/alsham360/prima-api/pkg/middleware"
)

func Healthcheck(db Pinger) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(db),
		},
	}
}

func Pipeline(service pipeline.PipelineService, uploader archive.Uploader) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/pipeline/stages",
			Method:  http.MethodGet,
			Handler: ListStages(),
		},
		{
			Path:        "/v1/pipeline/board",
			Method:      http.MethodGet,
			Handler:     GetBoard(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.Authenticated()},
		},
		{
			Path:        "/v1/pipeline/drag/:id",
			Method:      http.MethodPost,
			Handler:     DragStart(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.Authenticated()},
		},
		{
			Path:        "/v1/pipeline/drag",
			Method:      http.MethodDelete,
			Handler:     DragEnd(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.Authenticated()},
		},
		{
			Path:        "/v1/pipeline/drop/:stage",
			Method:      http.MethodPost,
			Handler:     Drop(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.Authenticated()},
		},
		{
			Path:        "/v1/pipeline/opportunities/:id/stage",
			Method:      http.MethodPut,
			Handler:     MoveOpportunity(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.Authenticated()},
		},
		{
			Path:        "/v1/pipeline/export",
			Method:      http.MethodGet,
			Handler:     ExportPipeline(service, uploader),
			Middlewares: []func(http.Handler) http.Handler{middleware.Authenticated()},
		},
	}
}

func Gamification(service pipeline.PipelineService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/me/points",
			Method:      http.MethodGet,
			Handler:     GetMyPoints(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.Authenticated()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrGestor()},
		},
	}
}
