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
	"github.com/mealy-app/backend/internal/server/nutrition"
	"github.com/mealy-app/backend/internal/server/repositories/repomanager"
)

// Placeholder names used by the positional meal-plan name lookup.
const (
	EmptySlotName     = "-"
	UnknownRecipeName = "Unbekanntes Rezept"
)

// RecipeInput is the create payload. Sharing state is not part of it; new
// recipes always start private.
type RecipeInput struct {
	Name        string
	Description string
	Ingredients []models.Ingredient
}

// MacroSummary is one position of the meal-plan macro projection. Unknown
// and empty slots contribute zeros, never an error.
type MacroSummary struct {
	CaloriesKcal float64
	ProteinG     float64
	CarbsG       float64
	FatG         float64
}

type RecipeService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	estimator   nutrition.Estimator
	logger      logging.Logger
}

func NewRecipeService(db *sql.DB, m repomanager.RepositoryManager, estimator nutrition.Estimator, logger logging.Logger) *RecipeService {
	return &RecipeService{
		db:          db,
		repomanager: m,
		estimator:   estimator,
		logger:      logger,
	}
}

// Save creates a recipe for the owner, enriching it with a macro snapshot
// first. The enrichment call happens outside the insert transaction and any
// failure there degrades to an empty snapshot; only the insert itself can
// fail the save.
func (s *RecipeService) Save(ctx context.Context, ownerEmail string, input RecipeInput) (*models.Recipe, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("%w: recipe name must not be blank", common.ErrValidation)
	}

	recipe := &models.Recipe{
		OwnerEmail:  ownerEmail,
		Name:        input.Name,
		Description: input.Description,
		Ingredients: input.Ingredients,
		Nutrition:   s.estimateNutrition(ctx, input.Ingredients),
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		created, err := s.repomanager.Recipes(tx).Create(ctx, recipe)
		if err != nil {
			return err
		}
		recipe = created
		return nil
	})
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, err
		}
		return nil, common.ErrInternal
	}

	return recipe, nil
}

// estimateNutrition asks the collaborator for a macro snapshot. Errors are
// logged and swallowed, leaving the all-nil snapshot.
func (s *RecipeService) estimateNutrition(ctx context.Context, ingredients []models.Ingredient) models.Nutrition {
	if s.estimator == nil {
		return models.Nutrition{}
	}

	req := make([]nutrition.Ingredient, 0, len(ingredients))
	for _, ing := range ingredients {
		// The estimate API is always queried in grams regardless of the
		// unit the user typed; the stored ingredient keeps the free text.
		req = append(req, nutrition.Ingredient{
			Name:   ing.Name,
			Amount: normalizeAmount(ing.Amount),
			Unit:   "grams",
		})
	}

	facts, err := s.estimator.Estimate(ctx, req)
	if err != nil {
		s.logger.Warn(ctx, "nutrition estimate failed, saving recipe without macros", "error", err.Error())
		return models.Nutrition{}
	}
	if facts == nil {
		return models.Nutrition{}
	}

	return models.Nutrition{
		CaloriesKcal:        facts.CaloriesKcal,
		TotalFatG:           facts.TotalFatG,
		SaturatedFatG:       facts.SaturatedFatG,
		CholesterolMg:       facts.CholesterolMg,
		SodiumMg:            facts.SodiumMg,
		TotalCarbohydratesG: facts.TotalCarbohydratesG,
		DietaryFiberG:       facts.DietaryFiberG,
		SugarsG:             facts.SugarsG,
		ProteinG:            facts.ProteinG,
	}
}

// normalizeAmount parses a free-text amount, accepting a comma as the
// decimal separator. Anything unparseable counts as zero.
func normalizeAmount(amount string) float64 {
	amount = strings.ReplaceAll(strings.TrimSpace(amount), ",", ".")
	v, err := strconv.ParseFloat(amount, 64)
	if err != nil {
		return 0
	}
	return v
}

// ReadNames lists the owner's collection as id/name pairs.
func (s *RecipeService) ReadNames(ctx context.Context, ownerEmail string) ([]models.RecipeName, error) {
	names, err := s.repomanager.Recipes(s.db).ListNamesByOwner(ctx, ownerEmail)
	if err != nil {
		return nil, common.ErrInternal
	}
	return names, nil
}

// ReadDetail loads an owned recipe. A recipe that exists but belongs to
// someone else is indistinguishable from one that does not exist.
func (s *RecipeService) ReadDetail(ctx context.Context, id int64, ownerEmail string) (*models.Recipe, error) {
	recipe, err := s.repomanager.Recipes(s.db).GetByIDAndOwner(ctx, id, ownerEmail)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, common.ErrInternal
	}
	return recipe, nil
}

// DeleteOwned removes an owned recipe with its ingredients. The caller must
// clear meal-plan references first so no slot is left dangling.
func (s *RecipeService) DeleteOwned(ctx context.Context, id int64, ownerEmail string) (bool, error) {
	deleted, err := s.repomanager.Recipes(s.db).DeleteByIDAndOwner(ctx, id, ownerEmail)
	if err != nil {
		return false, common.ErrInternal
	}
	return deleted, nil
}

// SetShared flips community visibility on an owned recipe. It reports
// whether a matching owned recipe was updated.
func (s *RecipeService) SetShared(ctx context.Context, id int64, ownerEmail string, shared bool) (bool, error) {
	updated, err := s.repomanager.Recipes(s.db).SetShared(ctx, id, ownerEmail, shared)
	if err != nil {
		return false, common.ErrInternal
	}
	return updated, nil
}

// ListShared returns the community list across all owners.
func (s *RecipeService) ListShared(ctx context.Context) ([]models.SharedRecipeRow, error) {
	rows, err := s.repomanager.Recipes(s.db).ListShared(ctx)
	if err != nil {
		return nil, common.ErrInternal
	}
	return rows, nil
}

// ReadSharedDetail loads a recipe by id regardless of owner, but only while
// it is shared. Revoking share access immediately makes it ErrNotFound here.
func (s *RecipeService) ReadSharedDetail(ctx context.Context, id int64) (*models.Recipe, error) {
	recipe, err := s.repomanager.Recipes(s.db).GetSharedByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, common.ErrInternal
	}
	return recipe, nil
}

// ReadNamesByIDs resolves recipe ids positionally: result[i] names ids[i].
// A nil id is an empty slot ("-") and an id with no recipe row reports
// UnknownRecipeName, so stale references degrade instead of failing.
func (s *RecipeService) ReadNamesByIDs(ctx context.Context, ids []*int64) ([]string, error) {
	refs, err := s.findRefs(ctx, ids)
	if err != nil {
		return nil, common.ErrInternal
	}

	names := make([]string, len(ids))
	for i, id := range ids {
		switch {
		case id == nil:
			names[i] = EmptySlotName
		default:
			ref, ok := refs[*id]
			if !ok {
				names[i] = UnknownRecipeName
				continue
			}
			names[i] = ref.Name
		}
	}
	return names, nil
}

// ReadNutritionByIDs resolves recipe ids positionally to headline macros.
// Nil ids, unknown ids and nil macro columns all contribute zeros.
func (s *RecipeService) ReadNutritionByIDs(ctx context.Context, ids []*int64) ([]MacroSummary, error) {
	refs, err := s.findRefs(ctx, ids)
	if err != nil {
		return nil, common.ErrInternal
	}

	summaries := make([]MacroSummary, len(ids))
	for i, id := range ids {
		if id == nil {
			continue
		}
		ref, ok := refs[*id]
		if !ok {
			continue
		}
		summaries[i] = MacroSummary{
			CaloriesKcal: deref0(ref.CaloriesKcal),
			ProteinG:     deref0(ref.ProteinG),
			CarbsG:       deref0(ref.CarbsG),
			FatG:         deref0(ref.FatG),
		}
	}
	return summaries, nil
}

func (s *RecipeService) findRefs(ctx context.Context, ids []*int64) (map[int64]models.RecipeRef, error) {
	distinct := make([]int64, 0, len(ids))
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if id == nil {
			continue
		}
		if _, ok := seen[*id]; ok {
			continue
		}
		seen[*id] = struct{}{}
		distinct = append(distinct, *id)
	}

	if len(distinct) == 0 {
		return map[int64]models.RecipeRef{}, nil
	}

	rows, err := s.repomanager.Recipes(s.db).FindAllByIDs(ctx, distinct)
	if err != nil {
		return nil, err
	}

	refs := make(map[int64]models.RecipeRef, len(rows))
	for _, row := range rows {
		refs[row.ID] = row
	}
	return refs, nil
}

func deref0(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// DeleteByOwnerEmail removes every recipe the owner has, for the account
// removal cascade. It returns the number of recipes deleted.
func (s *RecipeService) DeleteByOwnerEmail(ctx context.Context, ownerEmail string) (int64, error) {
	n, err := s.repomanager.Recipes(s.db).DeleteByOwner(ctx, ownerEmail)
	if err != nil {
		return 0, common.ErrInternal
	}
	return n, nil
}
