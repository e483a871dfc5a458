// Package services implements the domain layer between the HTTP boundary and
// the repositories: identity resolution, ownership enforcement, cascade
// helpers and the best-effort enrichment flow.
package services

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mealy-app/backend/internal/common"
	"github.com/mealy-app/backend/internal/dbx"
	"github.com/mealy-app/backend/internal/logging"
	"github.com/mealy-app/backend/internal/server/auth"
	"github.com/mealy-app/backend/internal/server/config"
	"github.com/mealy-app/backend/internal/server/models"
	"github.com/mealy-app/backend/internal/server/repositories/repomanager"
)

// UserPatch carries a self-service profile update. Every field is optional;
// blank means "leave unchanged".
type UserPatch struct {
	UserName string
	Email    string
	Password string
}

type UserService struct {
	db                    *sql.DB
	repomanager           repomanager.RepositoryManager
	jwtSecret             []byte
	tokenValidityDuration time.Duration
	logger                logging.Logger
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, logger logging.Logger) *UserService {
	return &UserService{
		db:                    db,
		repomanager:           m,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
		logger:                logger,
	}
}

// Register creates an account, storing only the bcrypt hash of the password.
// A duplicate email is a conflict whether it is caught by the pre-check or
// by the unique index when two registrations race.
func (s *UserService) Register(ctx context.Context, userName, email, password string) (*models.User, error) {
	if strings.TrimSpace(email) == "" {
		return nil, fmt.Errorf("%w: email must not be blank", common.ErrValidation)
	}
	if strings.TrimSpace(password) == "" {
		return nil, fmt.Errorf("%w: password must not be blank", common.ErrValidation)
	}

	repo := s.repomanager.Users(s.db)

	exists, err := repo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, common.ErrInternal
	}
	if exists {
		return nil, fmt.Errorf("%w: email already used", common.ErrConflict)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, common.ErrInternal
	}

	user := &models.User{
		UserName:     userName,
		Email:        email,
		PasswordHash: string(hash),
	}

	user, err = repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrConflict) {
			return nil, fmt.Errorf("%w: email already used", common.ErrConflict)
		}
		return nil, common.ErrInternal
	}

	return user.PublicView(), nil
}

// Authenticate verifies credentials for an identifier that is an email when
// it contains "@" and a user name otherwise. Any failure collapses into
// ErrUnauthorized so callers cannot distinguish a missing account from a
// wrong password.
func (s *UserService) Authenticate(ctx context.Context, identifier, password string) (*models.User, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return nil, common.ErrUnauthorized
	}

	repo := s.repomanager.Users(s.db)

	var user *models.User
	var err error
	if strings.Contains(identifier, "@") {
		user, err = repo.GetByEmail(ctx, identifier)
	} else {
		// user names are not unique; this picks the oldest match
		s.logger.Warn(ctx, "login by user name, matches are not guaranteed unique", "userName", identifier)
		user, err = repo.GetFirstByUserName(ctx, identifier)
	}
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		return nil, common.ErrInternal
	}

	ok, err := s.passwordMatchesAndUpgrade(ctx, password, user)
	if err != nil {
		return nil, common.ErrInternal
	}
	if !ok {
		return nil, common.ErrUnauthorized
	}

	return user.PublicView(), nil
}

// passwordMatchesAndUpgrade compares the password against the stored value.
// Rows predating hashing carry plaintext; on a successful plaintext match the
// stored value is replaced with a bcrypt hash so the legacy comparison runs
// at most once per account.
func (s *UserService) passwordMatchesAndUpgrade(ctx context.Context, password string, user *models.User) (bool, error) {
	stored := user.PasswordHash
	if stored == "" {
		return false, nil
	}

	if isBcryptHash(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil, nil
	}

	if subtle.ConstantTimeCompare([]byte(password), []byte(stored)) != 1 {
		return false, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}
	if err := s.repomanager.Users(s.db).UpdatePasswordHash(ctx, user.ID, string(hash)); err != nil {
		return false, err
	}
	user.PasswordHash = string(hash)

	s.logger.Info(ctx, "upgraded legacy password hash", "userID", user.ID)
	return true, nil
}

func isBcryptHash(s string) bool {
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}

// IssueToken signs an identity token for the user. The uid and userName
// claims are advisory only; authorization always re-derives identity from
// the verified subject.
func (s *UserService) IssueToken(user *models.User) (string, error) {
	if user == nil || user.Email == "" {
		return "", common.ErrInternal
	}
	return auth.GenerateToken(user.Email, user.ID, user.UserName, s.jwtSecret, s.tokenValidityDuration)
}

// ResolveToken turns a bearer token into a verified user view with the
// credential material stripped. A bad token yields ErrInvalidToken; a token
// whose subject no longer resolves (deleted account, changed email) yields
// ErrNotFound.
func (s *UserService) ResolveToken(ctx context.Context, token string) (*models.User, error) {
	email, err := auth.ExtractSubject(token, s.jwtSecret)
	if err != nil {
		return nil, common.ErrInvalidToken
	}

	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, common.ErrInternal
	}

	return user.PublicView(), nil
}

// UpdateForOwner applies a partial profile update for the verified owner.
// Changing the email implicitly invalidates tokens issued for the old one,
// since tokens resolve by email; the caller is responsible for issuing a
// fresh token from the returned user.
func (s *UserService) UpdateForOwner(ctx context.Context, ownerEmail string, patch UserPatch) (*models.User, error) {
	var updated *models.User

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		user, err := repo.GetByEmail(ctx, ownerEmail)
		if err != nil {
			return err
		}

		if strings.TrimSpace(patch.UserName) != "" {
			user.UserName = patch.UserName
		}

		if strings.TrimSpace(patch.Email) != "" && patch.Email != user.Email {
			exists, err := repo.ExistsByEmail(ctx, patch.Email)
			if err != nil {
				return err
			}
			if exists {
				return fmt.Errorf("%w: email already used", common.ErrConflict)
			}
			user.Email = patch.Email
		}

		if strings.TrimSpace(patch.Password) != "" {
			hash, err := bcrypt.GenerateFromPassword([]byte(patch.Password), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			user.PasswordHash = string(hash)
		}

		if err := repo.Update(ctx, user); err != nil {
			return err
		}

		updated = user
		return nil
	})

	if err != nil {
		if errors.Is(err, common.ErrConflict) || errors.Is(err, common.ErrNotFound) {
			return nil, err
		}
		return nil, common.ErrInternal
	}

	return updated.PublicView(), nil
}

// DeleteByEmail removes the identity row. Dependent recipes and meal-plan
// slots must already be gone; the boundary runs those cascades first.
func (s *UserService) DeleteByEmail(ctx context.Context, email string) (bool, error) {
	if strings.TrimSpace(email) == "" {
		return false, nil
	}

	deleted, err := s.repomanager.Users(s.db).DeleteByEmail(ctx, email)
	if err != nil {
		return false, common.ErrInternal
	}

	return deleted, nil
}
