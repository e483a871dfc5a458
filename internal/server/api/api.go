// Package api is the HTTP boundary: Gin router, identity middleware and
// handlers. Handlers own the cross-aggregate orchestration (cascading
// deletes, meal-plan assembly, notification firing) and translate domain
// sentinels into the wire error shape {"reason": "..."}.
package api

import (
	"context"

	"github.com/mealy-app/backend/internal/server/models"
	"github.com/mealy-app/backend/internal/server/services"
)

// UserService is the slice of the user service the boundary consumes.
type UserService interface {
	Register(ctx context.Context, userName, email, password string) (*models.User, error)
	Authenticate(ctx context.Context, identifier, password string) (*models.User, error)
	IssueToken(user *models.User) (string, error)
	ResolveToken(ctx context.Context, token string) (*models.User, error)
	UpdateForOwner(ctx context.Context, ownerEmail string, patch services.UserPatch) (*models.User, error)
	DeleteByEmail(ctx context.Context, email string) (bool, error)
}

type RecipeService interface {
	Save(ctx context.Context, ownerEmail string, input services.RecipeInput) (*models.Recipe, error)
	ReadNames(ctx context.Context, ownerEmail string) ([]models.RecipeName, error)
	ReadDetail(ctx context.Context, id int64, ownerEmail string) (*models.Recipe, error)
	DeleteOwned(ctx context.Context, id int64, ownerEmail string) (bool, error)
	SetShared(ctx context.Context, id int64, ownerEmail string, shared bool) (bool, error)
	ListShared(ctx context.Context) ([]models.SharedRecipeRow, error)
	ReadSharedDetail(ctx context.Context, id int64) (*models.Recipe, error)
	ReadNamesByIDs(ctx context.Context, ids []*int64) ([]string, error)
	ReadNutritionByIDs(ctx context.Context, ids []*int64) ([]services.MacroSummary, error)
	DeleteByOwnerEmail(ctx context.Context, ownerEmail string) (int64, error)
}

type MealPlanService interface {
	UpsertSlot(ctx context.Context, ownerEmail string, input services.SlotInput) (*models.MealEntry, error)
	ReadSlots(ctx context.Context, ownerEmail string) ([]models.SlotTime, error)
	ReadSlotRecipeIDs(ctx context.Context, ownerEmail string) ([]*int64, error)
	DeleteSlot(ctx context.Context, ownerEmail, day, time string) (bool, error)
	DeleteByRecipe(ctx context.Context, ownerEmail string, recipeID int64) (int64, error)
	DeleteByOwnerEmail(ctx context.Context, ownerEmail string) (int64, error)
}
