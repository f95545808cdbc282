package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"quiz-session-service/internal/domain"

	"github.com/jackc/pgx/v4/pgxpool"
)

// CatalogLoader loads subjects and their JSONB question lists from Postgres.
type CatalogLoader struct {
	pool *pgxpool.Pool
}

func NewCatalogLoader(pool *pgxpool.Pool) *CatalogLoader {
	return &CatalogLoader{pool: pool}
}

func (l *CatalogLoader) LoadCatalog(ctx context.Context) ([]domain.Subject, error) {
	rows, err := l.pool.Query(ctx, `SELECT id, name, data FROM subjects ORDER BY position, id`)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	defer rows.Close()

	var subjects []domain.Subject
	for rows.Next() {
		var (
			subject domain.Subject
			raw     []byte
		)
		if err := rows.Scan(&subject.ID, &subject.Name, &raw); err != nil {
			return nil, fmt.Errorf("scan subject: %w", err)
		}
		if err := json.Unmarshal(raw, &subject.Questions); err != nil {
			return nil, fmt.Errorf("unmarshal questions of %s: %w", subject.ID, err)
		}
		subjects = append(subjects, subject)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	if len(subjects) == 0 {
		return nil, domain.ErrCatalogNotFound
	}
	return subjects, nil
}
