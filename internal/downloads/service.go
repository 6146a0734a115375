package downloads

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/avellaneda-dev/storefront-backend/pkg/config"
	"github.com/avellaneda-dev/storefront-backend/pkg/db"
	"github.com/avellaneda-dev/storefront-backend/pkg/db/models"
	pkgerrors "github.com/avellaneda-dev/storefront-backend/pkg/errors"
	"github.com/avellaneda-dev/storefront-backend/pkg/logger"
)

// test seam
var timeNowUTC = func() time.Time { return time.Now().UTC() }

// Grant is what a valid token resolves to.
type Grant struct {
	TokenID     uuid.UUID `json:"token_id"`
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	FilePath    string    `json:"file_path"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Service issues and resolves time-boxed download tokens. Expiry is checked
// when the token is used; rows are never mutated after issue.
type Service struct {
	repo *Repository
	ttl  time.Duration
	logg *logger.Logger
}

// NewService validates dependencies and builds the download service.
func NewService(repo *Repository, cfg config.DownloadsConfig, logg *logger.Logger) (*Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "download repository is required")
	}
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Service{repo: repo, ttl: ttl, logg: logg}, nil
}

// WithTx returns a service whose writes run on the provided transaction.
func (s *Service) WithTx(tx *gorm.DB) *Service {
	return &Service{repo: s.repo.WithTx(tx), ttl: s.ttl, logg: s.logg}
}

// Issue mints a token for the product, valid for the configured TTL.
func (s *Service) Issue(ctx context.Context, productID uuid.UUID) (*models.DownloadToken, error) {
	token := &models.DownloadToken{
		ID:        uuid.New(),
		ProductID: productID,
		ExpiresAt: timeNowUTC().Add(s.ttl),
	}
	created, err := s.repo.Create(ctx, token)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "issue download token")
	}
	if s.logg != nil {
		s.logg.Info(s.logg.WithProductID(ctx, productID.String()), "download token issued")
	}
	return created, nil
}

// Resolve validates the token and returns the grant. Unknown tokens are 404;
// known-but-stale tokens are 410.
func (s *Service) Resolve(ctx context.Context, tokenID uuid.UUID) (*Grant, error) {
	token, err := s.repo.FindByID(ctx, tokenID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "download not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load download token")
	}

	if !timeNowUTC().Before(token.ExpiresAt) {
		return nil, pkgerrors.New(pkgerrors.CodeTokenExpired, "download link expired")
	}

	grant := &Grant{
		TokenID:   token.ID,
		ProductID: token.ProductID,
		ExpiresAt: token.ExpiresAt,
	}
	if token.Product != nil {
		grant.ProductName = token.Product.Name
		grant.FilePath = token.Product.FilePath
	}
	return grant, nil
}
