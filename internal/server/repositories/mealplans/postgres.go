package mealplans

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

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

func (r *PostgresRepository) ListByOwnerOrderByIDAsc(ctx context.Context, ownerEmail string) ([]models.MealEntry, error) {
	query :=
		`SELECT m.id, u.email, m.day, m.time, m.recipe_id
		 FROM meal_entries m
		 JOIN users u ON u.id = m.owner_user_id
		 WHERE u.email = $1
		 ORDER BY m.id ASC
		 `

	rows, err := r.db.QueryContext(ctx, query, ownerEmail)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []models.MealEntry
	for rows.Next() {
		var entry models.MealEntry
		var recipeID sql.NullInt64
		if err := rows.Scan(&entry.ID, &entry.OwnerEmail, &entry.Day, &entry.Time, &recipeID); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		if recipeID.Valid {
			entry.RecipeID = &recipeID.Int64
		}
		out = append(out, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return out, nil
}

func (r *PostgresRepository) GetByNaturalKey(ctx context.Context, ownerEmail, day, time string) (*models.MealEntry, error) {
	query :=
		`SELECT m.id, u.email, m.day, m.time, m.recipe_id
		 FROM meal_entries m
		 JOIN users u ON u.id = m.owner_user_id
		 WHERE u.email = $1 AND m.day = $2 AND m.time = $3
		 `

	entry := &models.MealEntry{}
	var recipeID sql.NullInt64
	err := r.db.QueryRowContext(ctx, query, ownerEmail, day, time).
		Scan(&entry.ID, &entry.OwnerEmail, &entry.Day, &entry.Time, &recipeID)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	if recipeID.Valid {
		entry.RecipeID = &recipeID.Int64
	}

	return entry, nil
}

func (r *PostgresRepository) Create(ctx context.Context, entry *models.MealEntry) (*models.MealEntry, error) {
	query :=
		`INSERT INTO meal_entries (owner_user_id, day, time, recipe_id)
		 SELECT u.id, $2, $3, $4
		 FROM users u WHERE u.email = $1
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		entry.OwnerEmail, entry.Day, entry.Time, entry.RecipeID).Scan(&entry.ID)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		if dbx.IsUniqueViolation(err) {
			// lost the (owner, day, time) race to a concurrent upsert
			return nil, common.ErrConflict
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return entry, nil
}

func (r *PostgresRepository) UpdateRecipe(ctx context.Context, id int64, recipeID *int64) error {
	query := `UPDATE meal_entries SET recipe_id = $1 WHERE id = $2`

	res, err := r.db.ExecContext(ctx, query, recipeID, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}

	return nil
}

func (r *PostgresRepository) DeleteByNaturalKey(ctx context.Context, ownerEmail, day, time string) (bool, error) {
	query :=
		`DELETE FROM meal_entries m
		 USING users u
		 WHERE u.id = m.owner_user_id AND u.email = $1 AND m.day = $2 AND m.time = $3
		 `

	res, err := r.db.ExecContext(ctx, query, ownerEmail, day, time)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	return affected > 0, nil
}

func (r *PostgresRepository) DeleteByOwnerAndRecipe(ctx context.Context, ownerEmail string, recipeID int64) (int64, error) {
	query :=
		`DELETE FROM meal_entries m
		 USING users u
		 WHERE u.id = m.owner_user_id AND u.email = $1 AND m.recipe_id = $2
		 `

	res, err := r.db.ExecContext(ctx, query, ownerEmail, recipeID)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	return affected, nil
}

func (r *PostgresRepository) DeleteByOwner(ctx context.Context, ownerEmail string) (int64, error) {
	query :=
		`DELETE FROM meal_entries m
		 USING users u
		 WHERE u.id = m.owner_user_id AND u.email = $1
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
