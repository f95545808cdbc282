package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"time"

	"quiz-session-service/internal/app"
	"quiz-session-service/internal/domain"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// CatalogKey holds the JSON-encoded catalog: SET quiz:catalog {subjects...}
const CatalogKey = "quiz:catalog"

// CatalogRepository caches the catalog in Redis so several instances share one provider
// fetch, and falls back to a loader on cache miss.
type CatalogRepository struct {
	client *redis.Client
	loader app.CatalogLoader
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewCatalogRepository(client *redis.Client, loader app.CatalogLoader, ttl time.Duration) *CatalogRepository {
	return &CatalogRepository{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *CatalogRepository) GetCatalog(ctx context.Context) ([]domain.Subject, error) {
	if subjects, ok := r.fromCache(ctx); ok {
		return subjects, nil
	}

	result, err, _ := r.sf.Do(CatalogKey, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if subjects, ok := r.fromCache(ctx); ok {
			return subjects, nil
		}

		subjects, err := r.loader.LoadCatalog(ctx)
		if err != nil {
			return nil, err
		}

		data, err := json.Marshal(subjects)
		if err != nil {
			return nil, fmt.Errorf("encode catalog: %w", err)
		}
		if err := r.client.Set(ctx, CatalogKey, data, r.ttlWithJitter()).Err(); err != nil {
			log.Printf("cache catalog: %v", err)
		}
		return subjects, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Subject), nil
}

func (r *CatalogRepository) fromCache(ctx context.Context) ([]domain.Subject, bool) {
	data, err := r.client.Get(ctx, CatalogKey).Bytes()
	if err != nil {
		return nil, false
	}
	var subjects []domain.Subject
	if err := json.Unmarshal(data, &subjects); err != nil {
		log.Printf("decode cached catalog: %v", err)
		return nil, false
	}
	return subjects, len(subjects) > 0
}

func (r *CatalogRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
