package repomanager

import (
	"context"
	"database/sql"

	"github.com/mealy-app/backend/internal/dbx"
	"github.com/mealy-app/backend/internal/server/repositories/mealplans"
	"github.com/mealy-app/backend/internal/server/repositories/recipes"
	"github.com/mealy-app/backend/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX, so a service method
// can run several repository calls against the same transaction handle.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Recipes(db dbx.DBTX) recipes.Repository
	MealPlans(db dbx.DBTX) mealplans.Repository
}
