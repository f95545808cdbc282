package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"quiz-session-service/internal/infra/postgres/migrations"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"
)

// Schema owns the subjects table lifecycle.
type Schema struct {
	db       *bun.DB
	migrator *migrate.Migrator
}

func OpenSchema(dsn string) *Schema {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqldb, pgdialect.New())
	return &Schema{db: db, migrator: migrate.NewMigrator(db, migrations.Migrations)}
}

// DB exposes the connection for seeding.
func (s *Schema) DB() *bun.DB {
	return s.db
}

func (s *Schema) Close() error {
	return s.db.Close()
}

// Up applies every pending migration as one group. Concurrent callers wait on the migration lock.
func (s *Schema) Up(ctx context.Context) (*migrate.MigrationGroup, error) {
	var group *migrate.MigrationGroup
	err := s.locked(ctx, func() error {
		var err error
		group, err = s.migrator.Migrate(ctx)
		return err
	})
	return group, err
}

// Down rolls back the last applied group.
func (s *Schema) Down(ctx context.Context) (*migrate.MigrationGroup, error) {
	var group *migrate.MigrationGroup
	err := s.locked(ctx, func() error {
		var err error
		group, err = s.migrator.Rollback(ctx)
		return err
	})
	return group, err
}

// Pending lists migrations not applied yet.
func (s *Schema) Pending(ctx context.Context) (migrate.MigrationSlice, error) {
	if err := s.migrator.Init(ctx); err != nil {
		return nil, fmt.Errorf("init migrations: %w", err)
	}
	all, err := s.migrator.MigrationsWithStatus(ctx)
	if err != nil {
		return nil, err
	}
	return all.Unapplied(), nil
}

func (s *Schema) locked(ctx context.Context, fn func() error) error {
	if err := s.migrator.Init(ctx); err != nil {
		return fmt.Errorf("init migrations: %w", err)
	}
	if err := s.migrator.Lock(ctx); err != nil {
		return fmt.Errorf("lock migrations: %w", err)
	}
	defer func() { _ = s.migrator.Unlock(ctx) }()
	return fn()
}
