package pipeline

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/alsham360/prima-api/infrastructure/localstore"
	"github.com/alsham360/prima-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore é um Store em memória para testes
type memStore struct {
	mu      sync.Mutex
	entries map[string]localstore.Entry
	getErr  error
}

func newMemStore() *memStore {
	return &memStore{entries: make(map[string]localstore.Entry)}
}

func (m *memStore) Get(ctx context.Context, key string) (*localstore.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	entry, ok := m.entries[key]
	if !ok {
		return nil, nil
	}
	return &entry, nil
}

func (m *memStore) Set(ctx context.Context, key string, value []byte, storedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = localstore.Entry{Key: key, Value: value, StoredAt: storedAt}
	return nil
}

func (m *memStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

type countingFetch struct {
	calls int
	opps  []*domain.Opportunity
	err   error
}

func (f *countingFetch) fetch(ctx context.Context) ([]*domain.Opportunity, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.opps, nil
}

func sampleOpportunities() []*domain.Opportunity {
	created := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	return []*domain.Opportunity{
		{ID: "opp-1", Titulo: "Contrato", Valor: domain.NewAmount(100), Status: domain.StageProposta, CreatedAt: created},
		{ID: "opp-2", Titulo: "Renovação", Valor: domain.NewAmount(200), Status: domain.StageNegociacao, CreatedAt: created},
	}
}

func TestOpportunityCache_Load(t *testing.T) {
	base := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		ttl         time.Duration
		prime       bool
		elapsed     time.Duration
		force       bool
		wantFetches int
	}{
		{name: "sem entrada busca remotamente", prime: false, wantFetches: 1},
		{name: "entrada presente sem force não busca", prime: true, wantFetches: 0},
		{name: "force sempre busca", prime: true, force: true, wantFetches: 1},
		{name: "dentro do TTL usa o cache", ttl: time.Minute, prime: true, elapsed: 30 * time.Second, wantFetches: 0},
		{name: "TTL vencido busca remotamente", ttl: time.Minute, prime: true, elapsed: 2 * time.Minute, wantFetches: 1},
		{name: "TTL zero nunca expira", ttl: 0, prime: true, elapsed: 1000 * time.Hour, wantFetches: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemStore()
			fetch := &countingFetch{opps: sampleOpportunities()}
			cache := NewOpportunityCache(store, fetch.fetch, tt.ttl)
			cache.now = func() time.Time { return base }

			if tt.prime {
				require.NoError(t, cache.Save(t.Context(), sampleOpportunities()))
			}
			cache.now = func() time.Time { return base.Add(tt.elapsed) }

			opps, err := cache.Load(t.Context(), tt.force)

			require.NoError(t, err)
			assert.Equal(t, tt.wantFetches, fetch.calls)
			require.Len(t, opps, 2)
			assert.Equal(t, "opp-1", opps[0].ID)
			assert.Equal(t, 100.0, opps[0].Valor.Float())
		})
	}
}

func TestOpportunityCache_ForceSobrescreveEntrada(t *testing.T) {
	store := newMemStore()
	fetch := &countingFetch{opps: sampleOpportunities()}
	cache := NewOpportunityCache(store, fetch.fetch, 0)

	require.NoError(t, cache.Save(t.Context(), sampleOpportunities()[:1]))

	opps, err := cache.Load(t.Context(), true)
	require.NoError(t, err)
	assert.Len(t, opps, 2)

	opps, err = cache.Load(t.Context(), false)
	require.NoError(t, err)
	assert.Len(t, opps, 2)
	assert.Equal(t, 1, fetch.calls)
}

func TestOpportunityCache_SnapshotCorrompido(t *testing.T) {
	store := newMemStore()
	require.NoError(t, store.Set(t.Context(), CacheKey, []byte("{not json"), time.Now()))

	fetch := &countingFetch{opps: sampleOpportunities()}
	cache := NewOpportunityCache(store, fetch.fetch, 0)

	opps, err := cache.Load(t.Context(), false)

	require.NoError(t, err)
	assert.Len(t, opps, 2)
	assert.Equal(t, 1, fetch.calls)
}

func TestOpportunityCache_ErroNaLeituraBuscaRemotamente(t *testing.T) {
	store := newMemStore()
	store.getErr = errors.New("disk I/O error")

	fetch := &countingFetch{opps: sampleOpportunities()}
	cache := NewOpportunityCache(store, fetch.fetch, 0)

	opps, err := cache.Load(t.Context(), false)

	require.NoError(t, err)
	assert.Len(t, opps, 2)
	assert.Equal(t, 1, fetch.calls)
}

func TestOpportunityCache_ErroNaBusca(t *testing.T) {
	fetch := &countingFetch{err: errors.New("connection refused")}
	cache := NewOpportunityCache(newMemStore(), fetch.fetch, 0)

	opps, err := cache.Load(t.Context(), true)

	assert.Error(t, err)
	assert.Nil(t, opps)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestOpportunityCache_Invalidate(t *testing.T) {
	fetch := &countingFetch{opps: sampleOpportunities()}
	cache := NewOpportunityCache(newMemStore(), fetch.fetch, 0)

	_, err := cache.Load(t.Context(), false)
	require.NoError(t, err)
	require.NoError(t, cache.Invalidate(t.Context()))
	_, err = cache.Load(t.Context(), false)
	require.NoError(t, err)

	assert.Equal(t, 2, fetch.calls)
}

func TestOpportunityCache_ComArmazenamentoSQLite(t *testing.T) {
	store, err := localstore.Open(filepath.Join(t.TempDir(), "alsham.db"))
	require.NoError(t, err)
	defer store.Close()

	fetch := &countingFetch{opps: sampleOpportunities()}
	cache := NewOpportunityCache(store, fetch.fetch, time.Hour)

	first, err := cache.Load(t.Context(), false)
	require.NoError(t, err)
	second, err := cache.Load(t.Context(), false)
	require.NoError(t, err)

	assert.Equal(t, 1, fetch.calls)
	require.Len(t, second, len(first))
	assert.Equal(t, first[1].ID, second[1].ID)
	assert.True(t, first[1].CreatedAt.Equal(second[1].CreatedAt))
}
