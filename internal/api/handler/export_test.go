package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/alsham360/prima-api/infrastructure/repository/mocks"
	"github.com/alsham360/prima-api/internal/config"
	"github.com/alsham360/prima-api/internal/domain"
	"github.com/alsham360/prima-api/internal/scheduler"
	"github.com/alsham360/prima-api/internal/usecases/exporting"
	pipelinemocks "github.com/alsham360/prima-api/internal/usecases/pipeline/mocks"
	"github.com/alsham360/prima-api/pkg/apiErrors"
	"github.com/alsham360/prima-api/pkg/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fakeUploader struct {
	key         string
	body        []byte
	contentType string
	err         error
}

func (u *fakeUploader) Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	if u.err != nil {
		return "", u.err
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	u.key, u.body, u.contentType = key, data, contentType
	return "s3://bucket/" + key, nil
}

func TestExportPipeline_CSV(t *testing.T) {
	ctrl := gomock.NewController(t)
	service := pipelinemocks.NewMockPipelineService(ctrl)
	service.EXPECT().Opportunities(gomock.Any(), testUserID).Return(sampleOpportunities(), nil)

	h := newTestRouter(testUserID, middleware.RoleVendedor, Pipeline(service, nil))
	rec := doRequest(h, http.MethodGet, "/v1/pipeline/export", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, exporting.FormatCSV.ContentType(), rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), `attachment; filename="pipeline_`)

	lines := strings.Split(strings.TrimRight(rec.Body.String(), "\r\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "ID,Título,Valor,Probabilidade,Status,Data de criação", strings.TrimRight(lines[0], "\r"))
	assert.True(t, strings.HasPrefix(lines[1], "opp-1,Clínica Sorriso,100.00,40,proposta,"))
}

func TestExportPipeline_XLSX(t *testing.T) {
	ctrl := gomock.NewController(t)
	service := pipelinemocks.NewMockPipelineService(ctrl)
	service.EXPECT().Opportunities(gomock.Any(), testUserID).Return(sampleOpportunities(), nil)

	h := newTestRouter(testUserID, middleware.RoleVendedor, Pipeline(service, nil))
	rec := doRequest(h, http.MethodGet, "/v1/pipeline/export?format=xlsx", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, exporting.FormatXLSX.ContentType(), rec.Header().Get("Content-Type"))
	// arquivos xlsx são zip
	assert.True(t, strings.HasPrefix(rec.Body.String(), "PK"))
}

func TestExportPipeline_Erros(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		uploader   *fakeUploader
		setupMock  func(m *pipelinemocks.MockPipelineService)
		wantStatus int
		wantCode   string
	}{
		{
			name:       "formato desconhecido",
			target:     "/v1/pipeline/export?format=pdf",
			setupMock:  func(m *pipelinemocks.MockPipelineService) {},
			wantStatus: http.StatusBadRequest,
			wantCode:   apiErrors.ErrInvalidFormat,
		},
		{
			name:       "archive inválido",
			target:     "/v1/pipeline/export?archive=sim",
			setupMock:  func(m *pipelinemocks.MockPipelineService) {},
			wantStatus: http.StatusBadRequest,
			wantCode:   apiErrors.ErrInvalidFormat,
		},
		{
			name:   "archive sem bucket configurado",
			target: "/v1/pipeline/export?archive=true",
			setupMock: func(m *pipelinemocks.MockPipelineService) {
				m.EXPECT().Opportunities(gomock.Any(), testUserID).Return(sampleOpportunities(), nil)
			},
			wantStatus: http.StatusBadGateway,
			wantCode:   apiErrors.ErrExternalService,
		},
		{
			name:     "falha no upload",
			target:   "/v1/pipeline/export?archive=true",
			uploader: &fakeUploader{err: errors.New("access denied")},
			setupMock: func(m *pipelinemocks.MockPipelineService) {
				m.EXPECT().Opportunities(gomock.Any(), testUserID).Return(sampleOpportunities(), nil)
			},
			wantStatus: http.StatusBadGateway,
			wantCode:   apiErrors.ErrExternalService,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			service := pipelinemocks.NewMockPipelineService(ctrl)
			tt.setupMock(service)

			var h http.Handler
			if tt.uploader != nil {
				h = newTestRouter(testUserID, middleware.RoleVendedor, Pipeline(service, tt.uploader))
			} else {
				h = newTestRouter(testUserID, middleware.RoleVendedor, Pipeline(service, nil))
			}
			rec := doRequest(h, http.MethodGet, tt.target, nil)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCode, decodeError(t, rec).Code)
		})
	}
}

func TestExportPipeline_Archive(t *testing.T) {
	ctrl := gomock.NewController(t)
	service := pipelinemocks.NewMockPipelineService(ctrl)
	service.EXPECT().Opportunities(gomock.Any(), testUserID).Return(sampleOpportunities(), nil)
	uploader := &fakeUploader{}

	h := newTestRouter(testUserID, middleware.RoleVendedor, Pipeline(service, uploader))
	rec := doRequest(h, http.MethodGet, "/v1/pipeline/export?format=csv&archive=true", nil)

	require.Equal(t, http.StatusCreated, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "s3://bucket/"+uploader.key, body["location"])
	assert.EqualValues(t, 1, body["rows"])

	assert.True(t, strings.HasPrefix(uploader.key, testUserID+"/"))
	assert.True(t, strings.HasSuffix(uploader.key, ".csv"))
	assert.Equal(t, exporting.FormatCSV.ContentType(), uploader.contentType)
	assert.Contains(t, string(uploader.body), "opp-1,Clínica Sorriso")
}

func newCronServices(t *testing.T) (CronJobServices, *mocks.MockOutboxRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	outboxRepo := mocks.NewMockOutboxRepository(ctrl)

	dispatch := scheduler.NewOutboxDispatchService(outboxRepo, nil, &config.Config{
		OutboxDispatch: config.OutboxDispatch{CronSchedule: "* * * * *", BatchSize: 10, MaxAttempts: 3},
	})
	return CronJobServices{OutboxDispatchService: dispatch}, outboxRepo
}

func TestGetCronStatus(t *testing.T) {
	services, outboxRepo := newCronServices(t)
	outboxRepo.EXPECT().CountByStatus(gomock.Any()).Return(map[domain.OutboxStatus]int{
		domain.OutboxStatusPending: 2,
		domain.OutboxStatusDead:    1,
	}, nil)

	h := newTestRouter(testUserID, middleware.RoleAdmin, CronJobs(services))
	rec := doRequest(h, http.MethodGet, "/v1/cron/status", nil)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	outbox := body[CronJobTypeOutbox]
	require.NotNil(t, outbox)
	assert.Equal(t, false, outbox["sync_running"])
	queue, ok := outbox["queue"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 2, queue[string(domain.OutboxStatusPending)])
}

func TestCronJobs_Permissoes(t *testing.T) {
	services, _ := newCronServices(t)

	h := newTestRouter(testUserID, middleware.RoleVendedor, CronJobs(services))

	rec := doRequest(h, http.MethodPost, "/v1/cron/outbox/run", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doRequest(h, http.MethodGet, "/v1/cron/status", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRunCronJob_TipoInvalido(t *testing.T) {
	services, _ := newCronServices(t)

	h := newTestRouter(testUserID, middleware.RoleAdmin, CronJobs(services))
	rec := doRequest(h, http.MethodPost, "/v1/cron/ranking/run", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apiErrors.ErrInvalidRequest, decodeError(t, rec).Code)
}

func TestRunCronJob_ServicoIndisponivel(t *testing.T) {
	h := newTestRouter(testUserID, middleware.RoleAdmin, CronJobs(CronJobServices{}))
	rec := doRequest(h, http.MethodPost, "/v1/cron/outbox/run", nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
