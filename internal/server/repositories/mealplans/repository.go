// Package mealplans provides persistence for weekly meal-plan slots.
package mealplans

import (
	"context"

	"github.com/mealy-app/backend/internal/server/models"
)

type Repository interface {
	// ListByOwnerOrderByIDAsc returns the owner's slots in insertion order.
	// The meal-plan assembly relies on this order being stable across the
	// paired day/time and recipe-id reads.
	ListByOwnerOrderByIDAsc(ctx context.Context, ownerEmail string) ([]models.MealEntry, error)

	GetByNaturalKey(ctx context.Context, ownerEmail, day, time string) (*models.MealEntry, error)
	Create(ctx context.Context, entry *models.MealEntry) (*models.MealEntry, error)
	UpdateRecipe(ctx context.Context, id int64, recipeID *int64) error

	DeleteByNaturalKey(ctx context.Context, ownerEmail, day, time string) (bool, error)
	DeleteByOwnerAndRecipe(ctx context.Context, ownerEmail string, recipeID int64) (int64, error)
	DeleteByOwner(ctx context.Context, ownerEmail string) (int64, error)
}
