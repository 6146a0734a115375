package adminauth

import (
	"context"
	"time"

	"github.com/avellaneda-dev/storefront-backend/pkg/auth"
	"github.com/avellaneda-dev/storefront-backend/pkg/config"
	"github.com/avellaneda-dev/storefront-backend/pkg/db"
	pkgerrors "github.com/avellaneda-dev/storefront-backend/pkg/errors"
	"github.com/avellaneda-dev/storefront-backend/pkg/logger"
	"github.com/avellaneda-dev/storefront-backend/pkg/security"
)

// test seam
var timeNowUTC = func() time.Time { return time.Now().UTC() }

// LoginInput is the admin login request body.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResult carries the minted session token.
type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Service authenticates admin accounts. Bad email and bad password are
// indistinguishable to the caller.
type Service struct {
	repo *Repository
	jwt  config.JWTConfig
	logg *logger.Logger
}

// NewService validates dependencies and builds the auth service.
func NewService(repo *Repository, jwt config.JWTConfig, logg *logger.Logger) (*Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "admin repository is required")
	}
	if jwt.Secret == "" {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "jwt secret is required")
	}
	return &Service{repo: repo, jwt: jwt, logg: logg}, nil
}

// Login verifies the credentials and mints a bearer token.
func (s *Service) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	admin, err := s.repo.FindByEmail(ctx, input.Email)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load admin account")
	}

	ok, err := security.VerifyPassword(input.Password, admin.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}

	now := timeNowUTC()
	token, err := auth.MintAccessToken(s.jwt, now, auth.AccessTokenPayload{
		AdminID: admin.ID,
		Email:   admin.Email,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint token")
	}

	if s.logg != nil {
		s.logg.Info(s.logg.WithField(ctx, "admin_id", admin.ID.String()), "admin login")
	}

	return &LoginResult{
		Token:     token,
		ExpiresAt: now.Add(time.Duration(s.jwt.ExpirationMinutes) * time.Minute),
	}, nil
}
