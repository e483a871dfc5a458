// Package users provides persistence for account rows.
package users

import (
	"context"

	"github.com/mealy-app/backend/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetFirstByUserName(ctx context.Context, userName string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, user *models.User) error
	UpdatePasswordHash(ctx context.Context, id int64, passwordHash string) error
	DeleteByEmail(ctx context.Context, email string) (bool, error)
}
