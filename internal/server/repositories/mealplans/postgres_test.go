package mealplans

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mealy-app/backend/internal/common"
	"github.com/mealy-app/backend/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestListByOwnerOrderByIDAsc(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)SELECT\s+m\.id,\s*u\.email,\s*m\.day,\s*m\.time,\s*m\.recipe_id\s+FROM\s+meal_entries\s+m\s+JOIN\s+users\s+u.*ORDER\s+BY\s+m\.id\s+ASC`

	rows := sqlmock.NewRows([]string{"id", "email", "day", "time", "recipe_id"}).
		AddRow(int64(1), "a@example.com", "Montag", "Mittag", int64(4)).
		AddRow(int64(2), "a@example.com", "Montag", "Abend", nil)
	mock.ExpectQuery(q).WithArgs("a@example.com").WillReturnRows(rows)

	entries, err := repo.ListByOwnerOrderByIDAsc(context.Background(), "a@example.com")
	if err != nil {
		t.Fatalf("ListByOwnerOrderByIDAsc error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("want 2 entries, got %d", len(entries))
	}
	if entries[0].RecipeID == nil || *entries[0].RecipeID != 4 {
		t.Fatalf("unexpected recipe ref: %+v", entries[0])
	}
	if entries[1].RecipeID != nil {
		t.Fatalf("cleared slot must carry nil, got %v", entries[1].RecipeID)
	}
}

func TestGetByNaturalKey_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)WHERE\s+u\.email\s*=\s*\$1\s+AND\s+m\.day\s*=\s*\$2\s+AND\s+m\.time\s*=\s*\$3`).
		WithArgs("a@example.com", "Montag", "Mittag").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByNaturalKey(context.Background(), "a@example.com", "Montag", "Mittag")
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestCreate_ResolvesOwner(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rid := int64(4)
	mock.ExpectQuery(`(?s)INSERT\s+INTO\s+meal_entries\s*\(owner_user_id,\s*day,\s*time,\s*recipe_id\)\s*SELECT\s+u\.id,\s*\$2,\s*\$3,\s*\$4\s+FROM\s+users\s+u\s+WHERE\s+u\.email\s*=\s*\$1\s+RETURNING\s+id`).
		WithArgs("a@example.com", "Montag", "Mittag", &rid).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(11)))

	entry, err := repo.Create(context.Background(), &models.MealEntry{
		OwnerEmail: "a@example.com", Day: "Montag", Time: "Mittag", RecipeID: &rid,
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if entry.ID != 11 {
		t.Fatalf("unexpected id: %d", entry.ID)
	}
}

func TestCreate_SlotRace(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT\s+INTO\s+meal_entries`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "uq_user_day_time"})

	_, err := repo.Create(context.Background(), &models.MealEntry{
		OwnerEmail: "a@example.com", Day: "Montag", Time: "Mittag",
	})
	if !errors.Is(err, common.ErrConflict) {
		t.Fatalf("want ErrConflict, got %v", err)
	}
}

func TestUpdateRecipe_ClearAndSet(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `UPDATE\s+meal_entries\s+SET\s+recipe_id\s*=\s*\$1\s+WHERE\s+id\s*=\s*\$2`

	rid := int64(6)
	mock.ExpectExec(q).WithArgs(&rid, int64(11)).WillReturnResult(sqlmock.NewResult(0, 1))
	if err := repo.UpdateRecipe(context.Background(), 11, &rid); err != nil {
		t.Fatalf("UpdateRecipe error: %v", err)
	}

	mock.ExpectExec(q).WithArgs(nil, int64(11)).WillReturnResult(sqlmock.NewResult(0, 1))
	if err := repo.UpdateRecipe(context.Background(), 11, nil); err != nil {
		t.Fatalf("UpdateRecipe clear error: %v", err)
	}

	mock.ExpectExec(q).WithArgs(nil, int64(99)).WillReturnResult(sqlmock.NewResult(0, 0))
	if err := repo.UpdateRecipe(context.Background(), 99, nil); !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestDeleteByNaturalKey(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)DELETE\s+FROM\s+meal_entries\s+m\s+USING\s+users\s+u\s+WHERE\s+u\.id\s*=\s*m\.owner_user_id\s+AND\s+u\.email\s*=\s*\$1\s+AND\s+m\.day\s*=\s*\$2\s+AND\s+m\.time\s*=\s*\$3`

	mock.ExpectExec(q).
		WithArgs("a@example.com", "Montag", "Mittag").
		WillReturnResult(sqlmock.NewResult(0, 1))

	deleted, err := repo.DeleteByNaturalKey(context.Background(), "a@example.com", "Montag", "Mittag")
	if err != nil || !deleted {
		t.Fatalf("want (true, nil), got (%v, %v)", deleted, err)
	}
}

func TestDeleteByOwnerAndRecipe(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)DELETE\s+FROM\s+meal_entries\s+m\s+USING\s+users\s+u\s+WHERE\s+u\.id\s*=\s*m\.owner_user_id\s+AND\s+u\.email\s*=\s*\$1\s+AND\s+m\.recipe_id\s*=\s*\$2`).
		WithArgs("a@example.com", int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 2))

	n, err := repo.DeleteByOwnerAndRecipe(context.Background(), "a@example.com", 4)
	if err != nil || n != 2 {
		t.Fatalf("want (2, nil), got (%v, %v)", n, err)
	}
}

func TestDeleteByOwner(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)DELETE\s+FROM\s+meal_entries\s+m\s+USING\s+users\s+u\s+WHERE\s+u\.id\s*=\s*m\.owner_user_id\s+AND\s+u\.email\s*=\s*\$1\s*$`).
		WithArgs("a@example.com").
		WillReturnResult(sqlmock.NewResult(0, 7))

	n, err := repo.DeleteByOwner(context.Background(), "a@example.com")
	if err != nil || n != 7 {
		t.Fatalf("want (7, nil), got (%v, %v)", n, err)
	}
}
