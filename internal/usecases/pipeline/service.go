// Package pipeline mantém o board Kanban de oportunidades de cada usuário
package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/alsham360/prima-api/infrastructure/repository"
	"github.com/alsham360/prima-api/internal/config"
	"github.com/alsham360/prima-api/internal/domain"
	"github.com/alsham360/prima-api/pkg/apiErrors"
	"github.com/alsham360/prima-api/pkg/log"
	"github.com/alsham360/prima-api/pkg/utils"
	"github.com/pkg/errors"
)

type PipelineService interface {
	Load(ctx context.Context, userID string, force bool) ([]*domain.Opportunity, error)
	Board(ctx context.Context, userID string) (*domain.Board, error)
	Opportunities(ctx context.Context, userID string) ([]*domain.Opportunity, error)
	DragStart(ctx context.Context, userID, opportunityID string) error
	DragEnd(userID string)
	Drop(ctx context.Context, userID string, toStage domain.StageID) (*domain.DropResult, error)
	Move(ctx context.Context, userID, opportunityID string, toStage domain.StageID) (*domain.DropResult, error)
	UserPoints(ctx context.Context, userID string) (*domain.UserPoints, error)
	InvalidateAll(ctx context.Context) error
}

// session é o estado do board de um usuário
type session struct {
	opportunities []*domain.Opportunity
	loaded        bool
	dragging      string
}

func (s *session) find(id string) *domain.Opportunity {
	for _, opp := range s.opportunities {
		if opp.ID == id {
			return opp
		}
	}
	return nil
}

type Service struct {
	opportunityRepository  repository.OpportunityRepository
	gamificationRepository repository.GamificationRepository
	stageMover             repository.StageMover
	cache                  *OpportunityCache
	pointsPerMove          int
	now                    func() time.Time

	mu        sync.Mutex
	sessions  map[string]*session
	ownWrites map[string]ownWrite
}

// ownWrite é o último movimento gravado por este processo em cada oportunidade
type ownWrite struct {
	status    domain.StageID
	updatedAt time.Time
}

func NewService(
	opportunityRepository repository.OpportunityRepository,
	gamificationRepository repository.GamificationRepository,
	stageMover repository.StageMover,
	store Store,
	cfg *config.Config,
) *Service {
	return &Service{
		opportunityRepository:  opportunityRepository,
		gamificationRepository: gamificationRepository,
		stageMover:             stageMover,
		cache:                  NewOpportunityCache(store, opportunityRepository.ListOpportunities, cfg.Cache.TTL),
		pointsPerMove:          cfg.Pipeline.PointsPerMove,
		now:                    time.Now,
		sessions:               make(map[string]*session),
		ownWrites:              make(map[string]ownWrite),
	}
}

// sessionFor deve ser chamado com s.mu travado
func (s *Service) sessionFor(userID string) *session {
	sess, ok := s.sessions[userID]
	if !ok {
		sess = &session{}
		s.sessions[userID] = sess
	}
	return sess
}

func cloneAll(opportunities []*domain.Opportunity) []*domain.Opportunity {
	clones := make([]*domain.Opportunity, 0, len(opportunities))
	for _, opp := range opportunities {
		if opp == nil {
			continue
		}
		clones = append(clones, opp.Clone())
	}
	return clones
}

// Load carrega a lista pelo cache (ou remotamente quando force) e substitui a lista do usuário
func (s *Service) Load(ctx context.Context, userID string, force bool) ([]*domain.Opportunity, error) {
	if userID == "" {
		return nil, NewPipelineError(ErrUserRequired, apiErrors.ErrInvalidToken, "Usuário não identificado")
	}

	opportunities, err := s.cache.Load(ctx, force)
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("Erro ao carregar oportunidades")
		return nil, NewPipelineError(ErrLoadOpportunities, apiErrors.ErrDatabaseOperation, "Falha ao carregar oportunidades do banco de dados")
	}

	s.mu.Lock()
	sess := s.sessionFor(userID)
	sess.opportunities = cloneAll(opportunities)
	sess.loaded = true
	s.mu.Unlock()

	return cloneAll(opportunities), nil
}

func (s *Service) ensureLoaded(ctx context.Context, userID string) error {
	if userID == "" {
		return NewPipelineError(ErrUserRequired, apiErrors.ErrInvalidToken, "Usuário não identificado")
	}

	s.mu.Lock()
	sess, ok := s.sessions[userID]
	loaded := ok && sess.loaded
	s.mu.Unlock()

	if loaded {
		return nil
	}

	_, err := s.Load(ctx, userID, false)
	return err
}

func (s *Service) Board(ctx context.Context, userID string) (*domain.Board, error) {
	if err := s.ensureLoaded(ctx, userID); err != nil {
		return nil, err
	}

	s.mu.Lock()
	sess := s.sessionFor(userID)
	board := BuildBoard(cloneAll(sess.opportunities))
	if sess.dragging != "" {
		dragging := sess.dragging
		board.Dragging = &dragging
	}
	s.mu.Unlock()

	return board, nil
}

func (s *Service) Opportunities(ctx context.Context, userID string) ([]*domain.Opportunity, error) {
	if err := s.ensureLoaded(ctx, userID); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return cloneAll(s.sessionFor(userID).opportunities), nil
}

// DragStart marca o card arrastado; um novo drag substitui o anterior
func (s *Service) DragStart(ctx context.Context, userID, opportunityID string) error {
	if err := s.ensureLoaded(ctx, userID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.sessionFor(userID)
	if sess.find(opportunityID) == nil {
		return NewPipelineErrorWithID(ErrOpportunityNotFound, apiErrors.ErrOpportunityNotFound, opportunityID, "Oportunidade não está no board")
	}

	sess.dragging = opportunityID
	return nil
}

// DragEnd limpa o card arrastado independente do resultado do drop
func (s *Service) DragEnd(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[userID]; ok {
		sess.dragging = ""
	}
}

// Drop move o card arrastado para toStage.
// Soltar na própria etapa não faz nada. Caso contrário o card é movido localmente
// antes da atualização remota e volta para a etapa original se ela falhar.
func (s *Service) Drop(ctx context.Context, userID string, toStage domain.StageID) (*domain.DropResult, error) {
	if !domain.IsValidStage(toStage) {
		return nil, NewPipelineError(ErrInvalidStage, apiErrors.ErrInvalidStage, fmt.Sprintf("Etapa desconhecida: %q", toStage))
	}

	if err := s.ensureLoaded(ctx, userID); err != nil {
		return nil, err
	}

	logger := log.ForContext(ctx).WithFields(log.Fields{
		"user_id": userID,
		"stage":   string(toStage),
	})

	s.mu.Lock()
	sess := s.sessionFor(userID)
	if sess.dragging == "" {
		s.mu.Unlock()
		return nil, NewPipelineError(ErrNoCardDragged, apiErrors.ErrNoCardDragged, "Nenhum card sendo arrastado")
	}

	opportunityID := sess.dragging
	opp := sess.find(opportunityID)
	if opp == nil {
		s.mu.Unlock()
		return nil, NewPipelineErrorWithID(ErrOpportunityNotFound, apiErrors.ErrOpportunityNotFound, opportunityID, "Oportunidade não está no board")
	}

	from := opp.Status
	result := &domain.DropResult{
		OpportunityID: opportunityID,
		From:          from,
		To:            toStage,
	}

	if from == toStage {
		s.mu.Unlock()
		return result, nil
	}

	now := s.now()
	previousUpdatedAt := opp.UpdatedAt
	opp.Status = toStage
	opp.UpdatedAt = &now
	snapshot := opp.Clone()
	s.mu.Unlock()

	logger = logger.WithField("opportunity_id", opportunityID)

	var event *domain.OutboxEntry
	if toStage == domain.StageWon {
		var err error
		event, err = newWonEvent(userID, snapshot, from, now)
		if err != nil {
			s.revert(userID, opportunityID, from, toStage, now, previousUpdatedAt)
			logger.WithError(err).Error("Falha ao montar evento de oportunidade ganha, movimento revertido")
			return nil, NewPipelineErrorWithID(ErrUpdateStatus, apiErrors.ErrStageUpdateFailed, opportunityID, "Falha ao registrar o evento da oportunidade ganha")
		}
	}

	s.rememberWrite(opportunityID, toStage, now)

	if err := s.stageMover.MoveStage(ctx, opportunityID, toStage, now, event); err != nil {
		s.forgetWrite(opportunityID, now)
		s.revert(userID, opportunityID, from, toStage, now, previousUpdatedAt)
		logger.WithError(err).Error("Falha ao atualizar etapa, movimento revertido")

		if errors.Is(err, repository.ErrNotFound) {
			return nil, NewPipelineErrorWithID(ErrOpportunityNotFound, apiErrors.ErrOpportunityNotFound, opportunityID, "Oportunidade não existe mais no banco de dados")
		}
		return nil, NewPipelineErrorWithID(ErrUpdateStatus, apiErrors.ErrStageUpdateFailed, opportunityID, "Falha ao atualizar a etapa no banco de dados")
	}

	result.Moved = true
	result.WebhookQueued = event != nil
	s.afterMove(ctx, userID, snapshot, from, now, result)

	logger.Infof("Oportunidade movida de %s para %s", from, toStage)

	return result, nil
}

// revert desfaz o movimento otimista se o card ainda estiver no estado que este drop deixou
func (s *Service) revert(userID, opportunityID string, from, to domain.StageID, movedAt time.Time, previousUpdatedAt *time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[userID]
	if !ok {
		return
	}

	current := sess.find(opportunityID)
	if current == nil || current.Status != to || current.UpdatedAt == nil || !current.UpdatedAt.Equal(movedAt) {
		return
	}

	current.Status = from
	current.UpdatedAt = previousUpdatedAt
}

// rememberWrite é chamado antes do commit porque o NOTIFY pode chegar antes de MoveStage retornar
func (s *Service) rememberWrite(opportunityID string, status domain.StageID, updatedAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ownWrites[opportunityID] = ownWrite{status: status, updatedAt: updatedAt}
}

func (s *Service) forgetWrite(opportunityID string, updatedAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if w, ok := s.ownWrites[opportunityID]; ok && w.updatedAt.Equal(updatedAt) {
		delete(s.ownWrites, opportunityID)
	}
}

// ConsumeOwnWrite diz se a notificação é o eco do último movimento gravado aqui.
// O Postgres guarda microssegundos, então a comparação tolera essa diferença.
func (s *Service) ConsumeOwnWrite(opportunityID, status string, updatedAt time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.ownWrites[opportunityID]
	if !ok || string(w.status) != status {
		return false
	}

	diff := w.updatedAt.Sub(updatedAt)
	if diff <= -time.Microsecond || diff >= time.Microsecond {
		return false
	}

	delete(s.ownWrites, opportunityID)
	return true
}

// afterMove atualiza o cache e os pontos de um movimento confirmado; falhas aqui são só registradas
func (s *Service) afterMove(ctx context.Context, userID string, opp *domain.Opportunity, from domain.StageID, now time.Time, result *domain.DropResult) {
	logger := log.ForContext(ctx).WithField("opportunity_id", opp.ID)

	s.mu.Lock()
	sess := s.sessionFor(userID)
	current := cloneAll(sess.opportunities)
	for otherID, other := range s.sessions {
		if otherID != userID {
			other.loaded = false
		}
	}
	s.mu.Unlock()

	if err := s.cache.Save(ctx, current); err != nil {
		logger.WithError(err).Warn("Falha ao atualizar o cache após mover oportunidade")
	}

	if s.pointsPerMove > 0 {
		award := &domain.PointAward{
			UserID:    userID,
			Points:    s.pointsPerMove,
			Action:    domain.ActionPipelineMove,
			Details:   fmt.Sprintf("%s->%s", from, opp.Status),
			CreatedAt: now,
		}

		if err := s.gamificationRepository.AwardPoints(ctx, award); err != nil {
			logger.WithError(err).Warn("Falha ao registrar pontos de gamificação")
		} else {
			result.PointsAwarded = award.Points
		}
	}
}

// newWonEvent monta a entrada do outbox gravada junto com a troca para ganho
func newWonEvent(userID string, opp *domain.Opportunity, from domain.StageID, now time.Time) (*domain.OutboxEntry, error) {
	payload, err := json.Marshal(domain.OpportunityWonEvent{
		Event:       domain.EventOpportunityWon,
		Opportunity: opp,
		From:        from,
		UserID:      userID,
		OccurredAt:  now,
	})
	if err != nil {
		return nil, errors.Wrap(err, "erro ao serializar evento")
	}

	id, err := utils.GenerateID()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao gerar ID do evento")
	}

	return &domain.OutboxEntry{
		ID:            id,
		EventType:     domain.EventOpportunityWon,
		Payload:       payload,
		Status:        domain.OutboxStatusPending,
		NextAttemptAt: now,
		CreatedAt:     now,
	}, nil
}

// Move equivale a DragStart, Drop e DragEnd em sequência
func (s *Service) Move(ctx context.Context, userID, opportunityID string, toStage domain.StageID) (*domain.DropResult, error) {
	if !domain.IsValidStage(toStage) {
		return nil, NewPipelineError(ErrInvalidStage, apiErrors.ErrInvalidStage, fmt.Sprintf("Etapa desconhecida: %q", toStage))
	}

	if err := s.DragStart(ctx, userID, opportunityID); err != nil {
		return nil, err
	}
	defer s.DragEnd(userID)

	return s.Drop(ctx, userID, toStage)
}

func (s *Service) UserPoints(ctx context.Context, userID string) (*domain.UserPoints, error) {
	if userID == "" {
		return nil, NewPipelineError(ErrUserRequired, apiErrors.ErrInvalidToken, "Usuário não identificado")
	}

	total, err := s.gamificationRepository.GetUserTotal(ctx, userID)
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("Erro ao buscar pontos do usuário")
		return nil, NewPipelineError(ErrFetchPoints, apiErrors.ErrDatabaseOperation, "Falha ao consultar pontos no banco de dados")
	}

	return &domain.UserPoints{UserID: userID, Total: total}, nil
}

// InvalidateAll descarta o snapshot e força todos os boards a recarregar no próximo acesso
func (s *Service) InvalidateAll(ctx context.Context) error {
	s.mu.Lock()
	for _, sess := range s.sessions {
		sess.loaded = false
	}
	s.mu.Unlock()

	if err := s.cache.Invalidate(ctx); err != nil {
		return NewPipelineError(ErrInvalidateCache, apiErrors.ErrInternalServer, err.Error())
	}

	return nil
}
