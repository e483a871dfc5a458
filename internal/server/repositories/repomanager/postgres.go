// Package repomanager provides a concrete RepositoryManager for PostgreSQL,
// wiring together repository constructors and database migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/mealy-app/backend/internal/dbx"
	"github.com/mealy-app/backend/internal/server/migrations"
	"github.com/mealy-app/backend/internal/server/repositories/mealplans"
	"github.com/mealy-app/backend/internal/server/repositories/recipes"
	"github.com/mealy-app/backend/internal/server/repositories/users"
)

// PostgresRepositoryManager vends PostgreSQL-backed repository implementations
// and exposes a schema migration hook.
type PostgresRepositoryManager struct{}

// Users returns a users.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

// Recipes returns a recipes.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Recipes(db dbx.DBTX) recipes.Repository {
	return recipes.NewPostgresRepository(db)
}

// MealPlans returns a mealplans.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) MealPlans(db dbx.DBTX) mealplans.Repository {
	return mealplans.NewPostgresRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the provided database connection.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return err
	}
	return nil
}

// NewPostgresRepositoryManager constructs a PostgreSQL-backed RepositoryManager.
func NewPostgresRepositoryManager() RepositoryManager {
	return &PostgresRepositoryManager{}
}
