package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/mealy-app/backend/internal/dbx"
	"github.com/mealy-app/backend/internal/logging"
	"github.com/mealy-app/backend/internal/server/config"
	"github.com/mealy-app/backend/internal/server/models"
	mealplansrepo "github.com/mealy-app/backend/internal/server/repositories/mealplans"
	recipesrepo "github.com/mealy-app/backend/internal/server/repositories/recipes"
	"github.com/mealy-app/backend/internal/server/repositories/repomanager"
	usersrepo "github.com/mealy-app/backend/internal/server/repositories/users"
)

// --- helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func testConfig() *config.Config {
	return &config.Config{
		SecretKey:             "0123456789abcdef0123456789abcdef",
		TokenValidityDuration: time.Hour,
	}
}

type nopLogger struct{}

func (nopLogger) Info(context.Context, string, ...any)  {}
func (nopLogger) Warn(context.Context, string, ...any)  {}
func (nopLogger) Error(context.Context, string, ...any) {}
func (nopLogger) With(...any) logging.Logger            { return nopLogger{} }

// --- fake repositories ---

type fakeUsersRepo struct {
	createOut *models.User
	createErr error

	getByEmailOut *models.User
	getByEmailErr error

	getFirstOut *models.User
	getFirstErr error

	existsOut bool
	existsErr error

	updateErr   error
	updatedWith *models.User

	updateHashErr  error
	updatedHash    string
	updatedHashUID int64

	deleteOut bool
	deleteErr error
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.createOut, nil
}
func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.getByEmailErr != nil {
		return nil, f.getByEmailErr
	}
	return f.getByEmailOut, nil
}
func (f *fakeUsersRepo) GetFirstByUserName(ctx context.Context, name string) (*models.User, error) {
	if f.getFirstErr != nil {
		return nil, f.getFirstErr
	}
	return f.getFirstOut, nil
}
func (f *fakeUsersRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return f.existsOut, f.existsErr
}
func (f *fakeUsersRepo) Update(ctx context.Context, u *models.User) error {
	f.updatedWith = u
	return f.updateErr
}
func (f *fakeUsersRepo) UpdatePasswordHash(ctx context.Context, id int64, hash string) error {
	f.updatedHashUID = id
	f.updatedHash = hash
	return f.updateHashErr
}
func (f *fakeUsersRepo) DeleteByEmail(ctx context.Context, email string) (bool, error) {
	return f.deleteOut, f.deleteErr
}

type fakeRecipesRepo struct {
	createOut *models.Recipe
	createErr error

	listNamesOut []models.RecipeName
	listNamesErr error

	getOut *models.Recipe
	getErr error

	listSharedOut []models.SharedRecipeRow
	listSharedErr error

	getSharedOut *models.Recipe
	getSharedErr error

	setSharedOut bool
	setSharedErr error

	findAllOut []models.RecipeRef
	findAllErr error
	findAllIn  []int64

	deleteOneOut bool
	deleteOneErr error

	deleteAllOut int64
	deleteAllErr error
}

func (f *fakeRecipesRepo) Create(ctx context.Context, r *models.Recipe) (*models.Recipe, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	return r, nil
}
func (f *fakeRecipesRepo) ListNamesByOwner(ctx context.Context, owner string) ([]models.RecipeName, error) {
	return f.listNamesOut, f.listNamesErr
}
func (f *fakeRecipesRepo) GetByIDAndOwner(ctx context.Context, id int64, owner string) (*models.Recipe, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}
func (f *fakeRecipesRepo) ListShared(ctx context.Context) ([]models.SharedRecipeRow, error) {
	return f.listSharedOut, f.listSharedErr
}
func (f *fakeRecipesRepo) GetSharedByID(ctx context.Context, id int64) (*models.Recipe, error) {
	if f.getSharedErr != nil {
		return nil, f.getSharedErr
	}
	return f.getSharedOut, nil
}
func (f *fakeRecipesRepo) SetShared(ctx context.Context, id int64, owner string, shared bool) (bool, error) {
	return f.setSharedOut, f.setSharedErr
}
func (f *fakeRecipesRepo) FindAllByIDs(ctx context.Context, ids []int64) ([]models.RecipeRef, error) {
	f.findAllIn = ids
	return f.findAllOut, f.findAllErr
}
func (f *fakeRecipesRepo) DeleteByIDAndOwner(ctx context.Context, id int64, owner string) (bool, error) {
	return f.deleteOneOut, f.deleteOneErr
}
func (f *fakeRecipesRepo) DeleteByOwner(ctx context.Context, owner string) (int64, error) {
	return f.deleteAllOut, f.deleteAllErr
}

type fakeMealPlansRepo struct {
	listOut []models.MealEntry
	listErr error

	getOut *models.MealEntry
	getErr error

	createOut *models.MealEntry
	createErr error
	createdIn *models.MealEntry

	updateErr     error
	updatedID     int64
	updatedRecipe *int64

	deleteOneOut bool
	deleteOneErr error

	deleteByRecipeOut int64
	deleteByRecipeErr error

	deleteAllOut int64
	deleteAllErr error
}

func (f *fakeMealPlansRepo) ListByOwnerOrderByIDAsc(ctx context.Context, owner string) ([]models.MealEntry, error) {
	return f.listOut, f.listErr
}
func (f *fakeMealPlansRepo) GetByNaturalKey(ctx context.Context, owner, day, time string) (*models.MealEntry, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}
func (f *fakeMealPlansRepo) Create(ctx context.Context, e *models.MealEntry) (*models.MealEntry, error) {
	f.createdIn = e
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	return e, nil
}
func (f *fakeMealPlansRepo) UpdateRecipe(ctx context.Context, id int64, recipeID *int64) error {
	f.updatedID = id
	f.updatedRecipe = recipeID
	return f.updateErr
}
func (f *fakeMealPlansRepo) DeleteByNaturalKey(ctx context.Context, owner, day, time string) (bool, error) {
	return f.deleteOneOut, f.deleteOneErr
}
func (f *fakeMealPlansRepo) DeleteByOwnerAndRecipe(ctx context.Context, owner string, recipeID int64) (int64, error) {
	return f.deleteByRecipeOut, f.deleteByRecipeErr
}
func (f *fakeMealPlansRepo) DeleteByOwner(ctx context.Context, owner string) (int64, error) {
	return f.deleteAllOut, f.deleteAllErr
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	r *fakeRecipesRepo
	m *fakeMealPlansRepo
}

func (f *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error   { return nil }
func (f *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository         { return f.u }
func (f *fakeRepoManager) Recipes(db dbx.DBTX) recipesrepo.Repository     { return f.r }
func (f *fakeRepoManager) MealPlans(db dbx.DBTX) mealplansrepo.Repository { return f.m }

var _ repomanager.RepositoryManager = (*fakeRepoManager)(nil)
