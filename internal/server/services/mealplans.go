package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/mealy-app/backend/internal/common"
	"github.com/mealy-app/backend/internal/dbx"
	"github.com/mealy-app/backend/internal/logging"
	"github.com/mealy-app/backend/internal/server/models"
	"github.com/mealy-app/backend/internal/server/repositories/repomanager"
)

// ErrRecipeNotOwned reports a slot assignment referencing a recipe outside
// the caller's collection. It wraps common.ErrValidation so boundary code
// matching the broader class keeps working.
var ErrRecipeNotOwned = fmt.Errorf("%w: recipe not in your collection", common.ErrValidation)

// SlotInput addresses one meal-plan slot. RecipeID is the raw string from
// the client: blank clears the slot, otherwise it must be a numeric id of a
// recipe the owner has.
type SlotInput struct {
	Day      string
	Time     string
	RecipeID string
}

type MealPlanService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewMealPlanService(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger) *MealPlanService {
	return &MealPlanService{
		db:          db,
		repomanager: m,
		logger:      logger,
	}
}

// UpsertSlot assigns a recipe to the (owner, day, time) slot, creating the
// slot on first use and overwriting the reference on every later call. A
// recipe id that is not owned by the caller fails validation; a blank id
// clears the slot while keeping the row.
func (s *MealPlanService) UpsertSlot(ctx context.Context, ownerEmail string, input SlotInput) (*models.MealEntry, error) {
	if strings.TrimSpace(input.Day) == "" || strings.TrimSpace(input.Time) == "" {
		return nil, fmt.Errorf("%w: day and time must not be blank", common.ErrValidation)
	}

	recipeID, err := parseRecipeID(input.RecipeID)
	if err != nil {
		return nil, err
	}

	var entry *models.MealEntry

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if recipeID != nil {
			if _, err := s.repomanager.Recipes(tx).GetByIDAndOwner(ctx, *recipeID, ownerEmail); err != nil {
				if errors.Is(err, common.ErrNotFound) {
					return fmt.Errorf("%w (id %d)", ErrRecipeNotOwned, *recipeID)
				}
				return err
			}
		}

		repo := s.repomanager.MealPlans(tx)

		existing, err := repo.GetByNaturalKey(ctx, ownerEmail, input.Day, input.Time)
		switch {
		case err == nil:
			if err := repo.UpdateRecipe(ctx, existing.ID, recipeID); err != nil {
				return err
			}
			existing.RecipeID = recipeID
			entry = existing
			return nil
		case errors.Is(err, common.ErrNotFound):
			created, err := repo.Create(ctx, &models.MealEntry{
				OwnerEmail: ownerEmail,
				Day:        input.Day,
				Time:       input.Time,
				RecipeID:   recipeID,
			})
			if err != nil {
				return err
			}
			entry = created
			return nil
		default:
			return err
		}
	})
	if err != nil {
		if errors.Is(err, common.ErrValidation) || errors.Is(err, common.ErrConflict) {
			return nil, err
		}
		return nil, common.ErrInternal
	}

	return entry, nil
}

func parseRecipeID(raw string) (*int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid recipe id %q", common.ErrValidation, raw)
	}
	return &id, nil
}

// ReadSlots returns the owner's day/time pairs in insertion order. The order
// matches ReadSlotRecipeIDs position for position, which is what lets the
// client zip the two lists back into a plan.
func (s *MealPlanService) ReadSlots(ctx context.Context, ownerEmail string) ([]models.SlotTime, error) {
	entries, err := s.repomanager.MealPlans(s.db).ListByOwnerOrderByIDAsc(ctx, ownerEmail)
	if err != nil {
		return nil, common.ErrInternal
	}

	slots := make([]models.SlotTime, 0, len(entries))
	for _, e := range entries {
		slots = append(slots, models.SlotTime{Day: e.Day, Time: e.Time})
	}
	return slots, nil
}

// ReadSlotRecipeIDs returns the owner's recipe references in the same
// insertion order as ReadSlots; nil marks a cleared slot.
func (s *MealPlanService) ReadSlotRecipeIDs(ctx context.Context, ownerEmail string) ([]*int64, error) {
	entries, err := s.repomanager.MealPlans(s.db).ListByOwnerOrderByIDAsc(ctx, ownerEmail)
	if err != nil {
		return nil, common.ErrInternal
	}

	ids := make([]*int64, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.RecipeID)
	}
	return ids, nil
}

// DeleteSlot removes one slot by natural key. Blank day or time matches
// nothing and reports false without touching the database.
func (s *MealPlanService) DeleteSlot(ctx context.Context, ownerEmail, day, time string) (bool, error) {
	if strings.TrimSpace(day) == "" || strings.TrimSpace(time) == "" {
		return false, nil
	}

	deleted, err := s.repomanager.MealPlans(s.db).DeleteByNaturalKey(ctx, ownerEmail, day, time)
	if err != nil {
		return false, common.ErrInternal
	}
	return deleted, nil
}

// DeleteByRecipe removes every slot of the owner that references the recipe.
// It runs ahead of a recipe delete so no reference is left dangling.
func (s *MealPlanService) DeleteByRecipe(ctx context.Context, ownerEmail string, recipeID int64) (int64, error) {
	n, err := s.repomanager.MealPlans(s.db).DeleteByOwnerAndRecipe(ctx, ownerEmail, recipeID)
	if err != nil {
		return 0, common.ErrInternal
	}
	return n, nil
}

// DeleteByOwnerEmail clears the owner's whole plan, for the account removal
// cascade.
func (s *MealPlanService) DeleteByOwnerEmail(ctx context.Context, ownerEmail string) (int64, error) {
	n, err := s.repomanager.MealPlans(s.db).DeleteByOwner(ctx, ownerEmail)
	if err != nil {
		return 0, common.ErrInternal
	}
	return n, nil
}
