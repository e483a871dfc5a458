// Package recipes provides persistence for recipes and their ingredient
// value objects.
package recipes

import (
	"context"

	"github.com/mealy-app/backend/internal/server/models"
)

type Repository interface {
	// Create inserts the recipe and its ingredients for the owner resolved
	// from OwnerEmail. The ingredient rows live and die with the recipe.
	Create(ctx context.Context, recipe *models.Recipe) (*models.Recipe, error)

	ListNamesByOwner(ctx context.Context, ownerEmail string) ([]models.RecipeName, error)
	GetByIDAndOwner(ctx context.Context, id int64, ownerEmail string) (*models.Recipe, error)

	ListShared(ctx context.Context) ([]models.SharedRecipeRow, error)
	GetSharedByID(ctx context.Context, id int64) (*models.Recipe, error)
	SetShared(ctx context.Context, id int64, ownerEmail string, shared bool) (bool, error)

	// FindAllByIDs returns one row per distinct existing id; result order is
	// not guaranteed. Callers needing the input order must project the rows
	// back over their own id sequence.
	FindAllByIDs(ctx context.Context, ids []int64) ([]models.RecipeRef, error)

	DeleteByIDAndOwner(ctx context.Context, id int64, ownerEmail string) (bool, error)
	DeleteByOwner(ctx context.Context, ownerEmail string) (int64, error)
}
