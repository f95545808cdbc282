package cli

import (
	"context"
	"fmt"
	"time"

	"quiz-session-service/internal/app"
	"quiz-session-service/internal/config"
	"quiz-session-service/internal/domain"
	"quiz-session-service/internal/infra/memory"
	pgloader "quiz-session-service/internal/infra/postgres"
	redisinfra "quiz-session-service/internal/infra/redis"
	"quiz-session-service/internal/infra/remote"
	"quiz-session-service/internal/infra/sqlite"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
)

// backends holds the connections opened for a command.
type backends struct {
	redis   *redis.Client
	pool    *pgxpool.Pool
	sqlite  *sqlite.CatalogLoader
	catalog app.CatalogRepository
}

func (b *backends) Close() {
	if b.redis != nil {
		_ = b.redis.Close()
	}
	if b.pool != nil {
		b.pool.Close()
	}
	if b.sqlite != nil {
		_ = b.sqlite.Close()
	}
}

// openBackends builds the catalog provider named by provider.kind and puts a
// cache in front of it: Redis when configured, memory otherwise.
func openBackends(ctx context.Context, cfg config.Config) (*backends, error) {
	b := &backends{}
	if cfg.Redis.Addr != "" {
		b.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	loader, err := b.loader(ctx, cfg)
	if err != nil {
		b.Close()
		return nil, err
	}

	catalogTTL := config.TTLDuration(cfg.Catalog.TTL, 10*time.Minute)
	if b.redis != nil {
		b.catalog = redisinfra.NewCatalogRepository(b.redis, loader, catalogTTL)
	} else {
		b.catalog = memory.NewCatalogRepository(loader, catalogTTL)
	}
	return b, nil
}

func (b *backends) loader(ctx context.Context, cfg config.Config) (app.CatalogLoader, error) {
	switch cfg.Provider.Kind {
	case config.ProviderStatic, "":
		return memory.NewStaticCatalogLoader(sampleCatalog()), nil
	case config.ProviderHTTP:
		return remote.NewLoader(cfg.Provider.URL, remote.Shape(cfg.Provider.Shape), nil), nil
	case config.ProviderPostgres:
		if cfg.Postgres.URL == "" {
			return nil, fmt.Errorf("postgres url not configured")
		}
		schema := pgloader.OpenSchema(cfg.Postgres.URL)
		err := upgradeSchema(ctx, schema)
		_ = schema.Close()
		if err != nil {
			return nil, fmt.Errorf("migrate postgres: %w", err)
		}
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		b.pool = pool
		return pgloader.NewCatalogLoader(pool), nil
	case config.ProviderSQLite:
		if cfg.SQLite.Path == "" {
			return nil, fmt.Errorf("sqlite path not configured")
		}
		loader, err := sqlite.Open(cfg.SQLite.Path)
		if err != nil {
			return nil, err
		}
		b.sqlite = loader
		return loader, nil
	default:
		return nil, fmt.Errorf("unknown provider kind %q", cfg.Provider.Kind)
	}
}

// sessionStore picks the Redis-aware store when Redis is configured.
func (b *backends) sessionStore(cfg config.Config) app.SessionRepository {
	if b.redis != nil {
		return redisinfra.NewSessionStore(b.redis, config.TTLDuration(cfg.Redis.TTL, 10*time.Minute))
	}
	return memory.NewSessionStore()
}

// newService loads config, opens backends and fetches the catalog once.
func newService(ctx context.Context, configPath string) (*app.QuizService, config.Config, *backends, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, cfg, nil, err
	}
	b, err := openBackends(ctx, cfg)
	if err != nil {
		return nil, cfg, nil, err
	}
	service := app.NewQuizService(b.sessionStore(cfg), b.catalog, app.WithPassThreshold(cfg.Quiz.PassThreshold))
	// failures are logged by the service and leave the catalog empty
	_ = service.LoadCatalog(ctx)
	return service, cfg, b, nil
}

// sampleCatalog is the built-in catalog served by the static provider.
func sampleCatalog() []domain.Subject {
	return []domain.Subject{
		{
			ID:   "go",
			Name: "Go",
			Questions: []domain.Question{
				{ID: "q1", Prompt: "Which keyword starts a goroutine?", Options: []domain.Option{
					{ID: "o1", Text: "go", Correct: true},
					{ID: "o2", Text: "async"},
					{ID: "o3", Text: "spawn"},
				}},
				{ID: "q2", Prompt: "What does a nil map panic on?", Options: []domain.Option{
					{ID: "o1", Text: "Read"},
					{ID: "o2", Text: "Write", Correct: true},
					{ID: "o3", Text: "len"},
				}},
				{ID: "q3", Prompt: "Which package provides singleflight?", Options: []domain.Option{
					{ID: "o1", Text: "sync"},
					{ID: "o2", Text: "golang.org/x/sync/singleflight", Correct: true},
					{ID: "o3", Text: "context"},
				}},
			},
		},
		{
			ID:   "geography",
			Name: "Geography",
			Questions: []domain.Question{
				{ID: "q1", Prompt: "What is the capital of France?", Options: []domain.Option{
					{ID: "o1", Text: "Paris", Correct: true},
					{ID: "o2", Text: "Lyon"},
					{ID: "o3", Text: "Marseille"},
				}},
				{ID: "q2", Prompt: "Which is the longest river?", Options: []domain.Option{
					{ID: "o1", Text: "Amazon"},
					{ID: "o2", Text: "Nile", Correct: true},
					{ID: "o3", Text: "Danube"},
				}},
			},
		},
	}
}
