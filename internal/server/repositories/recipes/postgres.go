package recipes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/mealy-app/backend/internal/common"
	"github.com/mealy-app/backend/internal/dbx"
	"github.com/mealy-app/backend/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, recipe *models.Recipe) (*models.Recipe, error) {

	query :=
		`INSERT INTO recipes
		   (owner_user_id, name, description, shared,
		    calories_kcal, total_fat_g, saturated_fat_g, cholesterol_mg, sodium_mg,
		    total_carbohydrates_g, dietary_fiber_g, sugars_g, protein_g)
		 SELECT u.id, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13
		 FROM users u WHERE u.email = $1
		 RETURNING id
		 `

	n := recipe.Nutrition
	err := r.db.QueryRowContext(ctx, query,
		recipe.OwnerEmail, recipe.Name, recipe.Description, recipe.Shared,
		n.CaloriesKcal, n.TotalFatG, n.SaturatedFatG, n.CholesterolMg, n.SodiumMg,
		n.TotalCarbohydratesG, n.DietaryFiberG, n.SugarsG, n.ProteinG,
	).Scan(&recipe.ID)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// owner row vanished between token check and write
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	ingQuery :=
		`INSERT INTO recipe_ingredients (recipe_id, position, name, unit, amount)
		 VALUES ($1, $2, $3, $4, $5)
		 `

	for i, ing := range recipe.Ingredients {
		if _, err := r.db.ExecContext(ctx, ingQuery, recipe.ID, i, ing.Name, ing.Unit, ing.Amount); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
	}

	return recipe, nil
}

func (r *PostgresRepository) ListNamesByOwner(ctx context.Context, ownerEmail string) ([]models.RecipeName, error) {
	query :=
		`SELECT r.id, r.name
		 FROM recipes r
		 JOIN users u ON u.id = r.owner_user_id
		 WHERE u.email = $1
		 ORDER BY r.id ASC
		 `

	rows, err := r.db.QueryContext(ctx, query, ownerEmail)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []models.RecipeName
	for rows.Next() {
		var rn models.RecipeName
		if err := rows.Scan(&rn.ID, &rn.Name); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, rn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return out, nil
}

func (r *PostgresRepository) GetByIDAndOwner(ctx context.Context, id int64, ownerEmail string) (*models.Recipe, error) {
	query :=
		`SELECT r.id, u.email, r.name, r.description, r.shared,
		        r.calories_kcal, r.total_fat_g, r.saturated_fat_g, r.cholesterol_mg, r.sodium_mg,
		        r.total_carbohydrates_g, r.dietary_fiber_g, r.sugars_g, r.protein_g
		 FROM recipes r
		 JOIN users u ON u.id = r.owner_user_id
		 WHERE r.id = $1 AND u.email = $2
		 `

	return r.getOne(ctx, query, id, ownerEmail)
}

func (r *PostgresRepository) GetSharedByID(ctx context.Context, id int64) (*models.Recipe, error) {
	query :=
		`SELECT r.id, u.email, r.name, r.description, r.shared,
		        r.calories_kcal, r.total_fat_g, r.saturated_fat_g, r.cholesterol_mg, r.sodium_mg,
		        r.total_carbohydrates_g, r.dietary_fiber_g, r.sugars_g, r.protein_g
		 FROM recipes r
		 JOIN users u ON u.id = r.owner_user_id
		 WHERE r.id = $1 AND r.shared = TRUE
		 `

	return r.getOne(ctx, query, id)
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, args ...any) (*models.Recipe, error) {
	recipe := &models.Recipe{}
	n := &recipe.Nutrition

	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&recipe.ID, &recipe.OwnerEmail, &recipe.Name, &recipe.Description, &recipe.Shared,
		&n.CaloriesKcal, &n.TotalFatG, &n.SaturatedFatG, &n.CholesterolMg, &n.SodiumMg,
		&n.TotalCarbohydratesG, &n.DietaryFiberG, &n.SugarsG, &n.ProteinG,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	ingredients, err := r.listIngredients(ctx, recipe.ID)
	if err != nil {
		return nil, err
	}
	recipe.Ingredients = ingredients

	return recipe, nil
}

func (r *PostgresRepository) listIngredients(ctx context.Context, recipeID int64) ([]models.Ingredient, error) {
	query :=
		`SELECT name, unit, amount
		 FROM recipe_ingredients
		 WHERE recipe_id = $1
		 ORDER BY position ASC
		 `

	rows, err := r.db.QueryContext(ctx, query, recipeID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []models.Ingredient
	for rows.Next() {
		var ing models.Ingredient
		if err := rows.Scan(&ing.Name, &ing.Unit, &ing.Amount); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, ing)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return out, nil
}

func (r *PostgresRepository) ListShared(ctx context.Context) ([]models.SharedRecipeRow, error) {
	query :=
		`SELECT r.id, r.name, u.email
		 FROM recipes r
		 JOIN users u ON u.id = r.owner_user_id
		 WHERE r.shared = TRUE
		 ORDER BY r.id ASC
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []models.SharedRecipeRow
	for rows.Next() {
		var row models.SharedRecipeRow
		if err := rows.Scan(&row.ID, &row.Name, &row.OwnerEmail); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return out, nil
}

func (r *PostgresRepository) SetShared(ctx context.Context, id int64, ownerEmail string, shared bool) (bool, error) {
	query :=
		`UPDATE recipes r
		 SET shared = $3
		 FROM users u
		 WHERE r.id = $1 AND u.id = r.owner_user_id AND u.email = $2
		 `

	res, err := r.db.ExecContext(ctx, query, id, ownerEmail, shared)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	return affected > 0, nil
}

func (r *PostgresRepository) FindAllByIDs(ctx context.Context, ids []int64) ([]models.RecipeRef, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}

	query := fmt.Sprintf(
		`SELECT id, name, calories_kcal, protein_g, total_carbohydrates_g, total_fat_g
		 FROM recipes
		 WHERE id IN (%s)
		 `, strings.Join(placeholders, ", "))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []models.RecipeRef
	for rows.Next() {
		var ref models.RecipeRef
		if err := rows.Scan(&ref.ID, &ref.Name, &ref.CaloriesKcal, &ref.ProteinG, &ref.CarbsG, &ref.FatG); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return out, nil
}

func (r *PostgresRepository) DeleteByIDAndOwner(ctx context.Context, id int64, ownerEmail string) (bool, error) {
	query :=
		`DELETE FROM recipes r
		 USING users u
		 WHERE r.id = $1 AND u.id = r.owner_user_id AND u.email = $2
		 `

	res, err := r.db.ExecContext(ctx, query, id, ownerEmail)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	return affected > 0, nil
}

func (r *PostgresRepository) DeleteByOwner(ctx context.Context, ownerEmail string) (int64, error) {
	query :=
		`DELETE FROM recipes r
		 USING users u
		 WHERE u.id = r.owner_user_id AND u.email = $1
		 `

	res, err := r.db.ExecContext(ctx, query, ownerEmail)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	return affected, nil
}
