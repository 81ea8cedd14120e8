package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/alsham360/prima-api/infrastructure/localstore"
	"github.com/alsham360/prima-api/internal/domain"
	"github.com/alsham360/prima-api/pkg/log"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// CacheKey é a chave fixa da lista de oportunidades no armazenamento local
const CacheKey = "alsham_pipeline_opportunities"

// Store é o armazenamento chave/valor que guarda o snapshot
type Store interface {
	Get(ctx context.Context, key string) (*localstore.Entry, error)
	Set(ctx context.Context, key string, value []byte, storedAt time.Time) error
	Delete(ctx context.Context, key string) error
}

// FetchFunc busca a lista completa no banco remoto
type FetchFunc func(ctx context.Context) ([]*domain.Opportunity, error)

// OpportunityCache guarda o último snapshot da lista de oportunidades
type OpportunityCache struct {
	store Store
	fetch FetchFunc
	ttl   time.Duration
	now   func() time.Time
	mu    sync.Mutex
}

// NewOpportunityCache cria o cache; ttl 0 desabilita a expiração
func NewOpportunityCache(store Store, fetch FetchFunc, ttl time.Duration) *OpportunityCache {
	return &OpportunityCache{
		store: store,
		fetch: fetch,
		ttl:   ttl,
		now:   time.Now,
	}
}

// Load devolve o snapshot guardado quando ele existe, está dentro do TTL e force é falso.
// Nos demais casos busca remotamente e sobrescreve o snapshot.
func (c *OpportunityCache) Load(ctx context.Context, force bool) ([]*domain.Opportunity, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	logger := log.ForContext(ctx)

	if !force {
		opportunities, ok := c.read(ctx)
		if ok {
			logger.Debugf("Servindo %d oportunidades do cache", len(opportunities))
			return opportunities, nil
		}
	}

	opportunities, err := c.fetch(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao buscar oportunidades")
	}

	if err := c.write(ctx, opportunities); err != nil {
		logger.WithError(err).Warn("Falha ao gravar oportunidades no cache")
	}

	return opportunities, nil
}

// Save substitui o snapshot guardado
func (c *OpportunityCache) Save(ctx context.Context, opportunities []*domain.Opportunity) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.write(ctx, opportunities)
}

func (c *OpportunityCache) Invalidate(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.store.Delete(ctx, CacheKey)
}

func (c *OpportunityCache) read(ctx context.Context) ([]*domain.Opportunity, bool) {
	logger := log.ForContext(ctx)

	entry, err := c.store.Get(ctx, CacheKey)
	if err != nil {
		logger.WithError(err).Warn("Falha ao ler o cache de oportunidades")
		return nil, false
	}

	if entry == nil {
		return nil, false
	}

	if c.ttl > 0 && c.now().Sub(entry.StoredAt) > c.ttl {
		logger.Debug("Cache de oportunidades expirado")
		return nil, false
	}

	var opportunities []*domain.Opportunity
	if err := json.Unmarshal(entry.Value, &opportunities); err != nil {
		logger.WithError(err).Warn("Snapshot de oportunidades corrompido, buscando novamente")
		return nil, false
	}

	return opportunities, true
}

func (c *OpportunityCache) write(ctx context.Context, opportunities []*domain.Opportunity) error {
	if opportunities == nil {
		opportunities = []*domain.Opportunity{}
	}

	payload, err := json.Marshal(opportunities)
	if err != nil {
		return errors.Wrap(err, "erro ao serializar oportunidades")
	}

	return c.store.Set(ctx, CacheKey, payload, c.now())
}
