// Package sqlite reads the subject catalog from a local SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"quiz-session-service/internal/domain"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

const schema = `CREATE TABLE IF NOT EXISTS subjects (
	id       TEXT PRIMARY KEY,
	name     TEXT NOT NULL,
	position INTEGER NOT NULL DEFAULT 0,
	data     TEXT NOT NULL
)`

// CatalogLoader loads subjects from the same table layout the Postgres
// migrations create, with questions stored as JSON text.
type CatalogLoader struct {
	db *sql.DB
}

// Open connects to the SQLite database at dsn and ensures the subjects table exists.
func Open(dsn string) (*CatalogLoader, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create subjects table: %w", err)
	}
	return &CatalogLoader{db: db}, nil
}

// Close closes the database connection.
func (l *CatalogLoader) Close() error {
	return l.db.Close()
}

// Seed inserts or replaces subjects, keeping their catalog order.
func (l *CatalogLoader) Seed(ctx context.Context, subjects []domain.Subject) error {
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for i, subject := range subjects {
		data, err := json.Marshal(subject.Questions)
		if err != nil {
			return fmt.Errorf("encode questions of %s: %w", subject.ID, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO subjects (id, name, position, data) VALUES (?, ?, ?, ?)`,
			subject.ID, subject.Name, i, string(data)); err != nil {
			return fmt.Errorf("insert subject %s: %w", subject.ID, err)
		}
	}
	return tx.Commit()
}

func (l *CatalogLoader) LoadCatalog(ctx context.Context) ([]domain.Subject, error) {
	rows, err := l.db.QueryContext(ctx, `SELECT id, name, data FROM subjects ORDER BY position, id`)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	defer rows.Close()

	var subjects []domain.Subject
	for rows.Next() {
		var (
			subject domain.Subject
			raw     string
		)
		if err := rows.Scan(&subject.ID, &subject.Name, &raw); err != nil {
			return nil, fmt.Errorf("scan subject: %w", err)
		}
		if err := json.Unmarshal([]byte(raw), &subject.Questions); err != nil {
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
