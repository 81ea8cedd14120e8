package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/alsham360/prima-api/infrastructure/integrator/automation"
	"github.com/alsham360/prima-api/infrastructure/integrator/automation/automationclient"
	"github.com/alsham360/prima-api/infrastructure/repository"
	"github.com/alsham360/prima-api/internal/config"
	"github.com/alsham360/prima-api/internal/domain"
	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
)

// MaxBackoff limita o intervalo entre tentativas de entrega
const MaxBackoff = time.Hour

// outcomeSkipped marca uma entrada que não foi tentada e segue pendente
const outcomeSkipped domain.OutboxStatus = "skipped"

// OutboxDispatchConfig representa a configuração do despachante do outbox
type OutboxDispatchConfig struct {
	CronSchedule      string
	BatchSize         int
	MaxAttempts       int
	BaseBackoff       time.Duration
	MaxConcurrentJobs int
	SyncEnabled       bool
}

// DispatchSummary resume uma rodada de entregas
type DispatchSummary struct {
	Picked    int `json:"picked"`
	Delivered int `json:"delivered"`
	Retried   int `json:"retried"`
	Dead      int `json:"dead"`
	Skipped   int `json:"skipped"`
}

// OutboxDispatchService entrega os eventos pendentes do outbox ao endpoint de automação
type OutboxDispatchService struct {
	scheduler           *gocron.Scheduler
	config              OutboxDispatchConfig
	outboxRepo          repository.OutboxRepository
	automationService   automation.AutomationIntegrator
	now                 func() time.Time
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastSummary         DispatchSummary
}

func NewOutboxDispatchService(
	outboxRepo repository.OutboxRepository,
	automationService automation.AutomationIntegrator,
	appConfig *config.Config,
) *OutboxDispatchService {
	dispatchConfig := OutboxDispatchConfig{
		CronSchedule:      appConfig.OutboxDispatch.CronSchedule,
		BatchSize:         appConfig.OutboxDispatch.BatchSize,
		MaxAttempts:       appConfig.OutboxDispatch.MaxAttempts,
		BaseBackoff:       appConfig.OutboxDispatch.BaseBackoff,
		MaxConcurrentJobs: appConfig.OutboxDispatch.MaxConcurrentJobs,
		SyncEnabled:       appConfig.OutboxDispatch.Enabled,
	}

	if dispatchConfig.MaxConcurrentJobs <= 0 {
		dispatchConfig.MaxConcurrentJobs = 1
	}
	if dispatchConfig.MaxAttempts <= 0 {
		dispatchConfig.MaxAttempts = 1
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule":       dispatchConfig.CronSchedule,
		"batch_size":          dispatchConfig.BatchSize,
		"max_attempts":        dispatchConfig.MaxAttempts,
		"base_backoff":        dispatchConfig.BaseBackoff.String(),
		"max_concurrent_jobs": dispatchConfig.MaxConcurrentJobs,
		"sync_enabled":        dispatchConfig.SyncEnabled,
	}).Info("Configuração do despachante do outbox carregada")

	return &OutboxDispatchService{
		scheduler:         gocron.NewScheduler(time.Local),
		config:            dispatchConfig,
		outboxRepo:        outboxRepo,
		automationService: automationService,
		now:               time.Now,
	}
}

// Start inicia o agendador
func (s *OutboxDispatchService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Despacho do outbox desabilitado por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de despacho do outbox")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.runDispatch(context.Background())
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar despacho do outbox: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de despacho do outbox")
		s.scheduler.Stop()
	}()

	return nil
}

// runDispatch garante uma única rodada por vez; devolve falso se outra já estava em andamento
func (s *OutboxDispatchService) runDispatch(ctx context.Context) (DispatchSummary, bool) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Despacho do outbox já em andamento, ignorando")
		return DispatchSummary{}, false
	}
	s.syncRunning = true
	s.lastSyncStartedAt = s.now()
	s.syncMutex.Unlock()

	summary, err := s.DispatchPending(ctx)
	if err != nil {
		logrus.WithError(err).Error("Erro ao despachar eventos do outbox")
	}

	s.syncMutex.Lock()
	s.syncRunning = false
	s.lastSyncCompletedAt = s.now()
	s.lastSummary = summary
	s.syncMutex.Unlock()

	return summary, true
}

// DispatchPending envia até BatchSize entradas vencidas com concorrência limitada.
// Falhas reagendam a entrada com backoff exponencial; ao atingir MaxAttempts ela vira dead.
func (s *OutboxDispatchService) DispatchPending(ctx context.Context) (DispatchSummary, error) {
	var summary DispatchSummary

	entries, err := s.outboxRepo.ListDue(ctx, s.now(), s.config.BatchSize)
	if err != nil {
		return summary, fmt.Errorf("erro ao buscar eventos pendentes: %w", err)
	}

	summary.Picked = len(entries)
	if len(entries) == 0 {
		logrus.Debug("Nenhum evento pendente no outbox")
		return summary, nil
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		semaphore = make(chan struct{}, s.config.MaxConcurrentJobs)
	)

	for _, entry := range entries {
		wg.Add(1)
		semaphore <- struct{}{}

		go func(e *domain.OutboxEntry) {
			defer func() {
				<-semaphore
				wg.Done()
			}()

			outcome := s.deliver(ctx, e)

			mu.Lock()
			switch outcome {
			case domain.OutboxStatusDelivered:
				summary.Delivered++
			case domain.OutboxStatusDead:
				summary.Dead++
			case outcomeSkipped:
				summary.Skipped++
			default:
				summary.Retried++
			}
			mu.Unlock()
		}(entry)
	}

	wg.Wait()

	logrus.WithFields(logrus.Fields{
		"picked":    summary.Picked,
		"delivered": summary.Delivered,
		"retried":   summary.Retried,
		"dead":      summary.Dead,
		"skipped":   summary.Skipped,
	}).Info("Despacho do outbox concluído")

	return summary, nil
}

// deliver envia uma entrada e registra o resultado; devolve o novo status.
// Sem endpoint configurado a entrada continua pendente e a tentativa não é contada.
func (s *OutboxDispatchService) deliver(ctx context.Context, entry *domain.OutboxEntry) domain.OutboxStatus {
	fields := logrus.Fields{
		"event_id":   entry.ID,
		"event_type": entry.EventType,
		"attempt":    entry.Attempts + 1,
	}

	sendErr := s.automationService.Deliver(ctx, entry)
	if sendErr == nil {
		if err := s.outboxRepo.MarkDelivered(ctx, entry.ID, s.now()); err != nil {
			logrus.WithFields(fields).WithError(err).Error("Evento entregue mas não marcado como entregue")
		}
		logrus.WithFields(fields).Info("Evento entregue ao endpoint de automação")
		return domain.OutboxStatusDelivered
	}

	if errors.Is(sendErr, automationclient.ErrWebhookNotConfigured) {
		logrus.WithFields(fields).Warn("Endpoint de automação não configurado, evento continua no outbox")
		return outcomeSkipped
	}

	attempts := entry.Attempts + 1
	dead := attempts >= s.config.MaxAttempts
	nextAttemptAt := s.now().Add(NextBackoff(s.config.BaseBackoff, attempts))

	if err := s.outboxRepo.MarkFailed(ctx, entry.ID, attempts, nextAttemptAt, sendErr.Error(), dead); err != nil {
		logrus.WithFields(fields).WithError(err).Error("Erro ao registrar falha de entrega")
	}

	if dead {
		logrus.WithFields(fields).WithError(sendErr).Error("Evento descartado após esgotar as tentativas")
		return domain.OutboxStatusDead
	}

	logrus.WithFields(fields).WithError(sendErr).Warnf("Falha na entrega, nova tentativa em %s", nextAttemptAt.Format(time.RFC3339))
	return domain.OutboxStatusPending
}

// NextBackoff devolve base * 2^(attempts-1), limitado a MaxBackoff
func NextBackoff(base time.Duration, attempts int) time.Duration {
	if base <= 0 {
		return 0
	}
	if attempts < 1 {
		attempts = 1
	}

	backoff := base
	for i := 1; i < attempts; i++ {
		backoff *= 2
		if backoff >= MaxBackoff {
			return MaxBackoff
		}
	}

	if backoff > MaxBackoff {
		return MaxBackoff
	}
	return backoff
}

// TriggerManualSync inicia manualmente uma rodada de despacho
func (s *OutboxDispatchService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Despacho do outbox já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando despacho manual do outbox")
	go s.runDispatch(context.Background())
}

// GetStatus retorna o status atual do agendador
func (s *OutboxDispatchService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_batch_size":        s.config.BatchSize,
		"sync_max_attempts":      s.config.MaxAttempts,
		"sync_base_backoff":      s.config.BaseBackoff.String(),
		"sync_max_concurrent":    s.config.MaxConcurrentJobs,
		"sync_running":           s.syncRunning,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_summary":           s.lastSummary,
	}
}

// QueueCounts conta as entradas do outbox por status
func (s *OutboxDispatchService) QueueCounts(ctx context.Context) (map[domain.OutboxStatus]int, error) {
	return s.outboxRepo.CountByStatus(ctx)
}
