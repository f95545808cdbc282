package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"quiz-session-service/internal/app"
	"quiz-session-service/internal/domain"

	"golang.org/x/sync/singleflight"
)

const catalogKey = "catalog"

// CatalogRepository caches the catalog with TTL to avoid repeated provider hits.
type CatalogRepository struct {
	loader app.CatalogLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu    sync.RWMutex
	cache *cachedCatalog
}

type cachedCatalog struct {
	subjects  []domain.Subject
	expiresAt time.Time
}

func NewCatalogRepository(loader app.CatalogLoader, ttl time.Duration) *CatalogRepository {
	return &CatalogRepository{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *CatalogRepository) GetCatalog(ctx context.Context) ([]domain.Subject, error) {
	if subjects, ok := r.cached(r.clock()); ok {
		return subjects, nil
	}

	result, err, _ := r.sf.Do(catalogKey, func() (interface{}, error) {
		now := r.clock()
		if subjects, ok := r.cached(now); ok {
			return subjects, nil
		}

		subjects, err := r.loader.LoadCatalog(ctx)
		if err != nil {
			return nil, err
		}

		r.mu.Lock()
		r.cache = &cachedCatalog{
			subjects:  subjects,
			expiresAt: now.Add(r.ttlWithJitter()),
		}
		r.mu.Unlock()
		return subjects, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Subject), nil
}

func (r *CatalogRepository) cached(now time.Time) ([]domain.Subject, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.cache != nil && r.cache.expiresAt.After(now) {
		return r.cache.subjects, true
	}
	return nil, false
}

// StaticCatalogLoader is a simple loader backed by an in-memory slice (useful for tests/demos).
type StaticCatalogLoader struct {
	subjects []domain.Subject
}

func NewStaticCatalogLoader(subjects []domain.Subject) *StaticCatalogLoader {
	return &StaticCatalogLoader{subjects: subjects}
}

func (l *StaticCatalogLoader) LoadCatalog(_ context.Context) ([]domain.Subject, error) {
	if len(l.subjects) == 0 {
		return nil, domain.ErrCatalogNotFound
	}
	return l.subjects, nil
}

func (r *CatalogRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
