package fulfillment

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/avellaneda-dev/storefront-backend/internal/downloads"
	"github.com/avellaneda-dev/storefront-backend/internal/orders"
	"github.com/avellaneda-dev/storefront-backend/internal/products"
	"github.com/avellaneda-dev/storefront-backend/internal/users"
	"github.com/avellaneda-dev/storefront-backend/pkg/config"
	"github.com/avellaneda-dev/storefront-backend/pkg/db"
	"github.com/avellaneda-dev/storefront-backend/pkg/db/models"
	"github.com/avellaneda-dev/storefront-backend/pkg/enums"
	pkgerrors "github.com/avellaneda-dev/storefront-backend/pkg/errors"
	"github.com/avellaneda-dev/storefront-backend/pkg/logger"
	pkgstripe "github.com/avellaneda-dev/storefront-backend/pkg/stripe"
)

// PaymentChecker is the provider surface fulfillment needs.
type PaymentChecker interface {
	RetrievePayment(ctx context.Context, id string) (*pkgstripe.PaymentResult, error)
}

// TxRunner executes fn inside a database transaction.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service drives a payment intent through verification, order creation, and
// token issue. Every attempt either lands on exactly one order for the
// intent or rejects without writing.
type Service struct {
	payments  PaymentChecker
	products  *products.Repository
	orders    *orders.Repository
	users     *users.Repository
	downloads *downloads.Service
	tx        TxRunner
	cfg       config.FulfillmentConfig
	logg      *logger.Logger
}

// NewService validates dependencies and builds the fulfillment service.
func NewService(
	payments PaymentChecker,
	productRepo *products.Repository,
	orderRepo *orders.Repository,
	userRepo *users.Repository,
	downloadSvc *downloads.Service,
	tx TxRunner,
	cfg config.FulfillmentConfig,
	logg *logger.Logger,
) (*Service, error) {
	if payments == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "payment checker is required")
	}
	if productRepo == nil || orderRepo == nil || userRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "repositories are required")
	}
	if downloadSvc == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "download service is required")
	}
	if tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "tx runner is required")
	}
	return &Service{
		payments:  payments,
		products:  productRepo,
		orders:    orderRepo,
		users:     userRepo,
		downloads: downloadSvc,
		tx:        tx,
		cfg:       cfg,
		logg:      logg,
	}, nil
}

// Fulfill verifies the payment and records the purchase. The purchased item
// is resolved before the payment status is judged, so a payment that both
// failed and references an unknown product reports the unknown product.
func (s *Service) Fulfill(ctx context.Context, input Input) (*Result, error) {
	ctx, cancel := s.boundWorkflow(ctx)
	defer cancel()

	ctx = s.withStep(ctx, StepStarted, input.PaymentIntentID)

	payment, err := s.payments.RetrievePayment(ctx, input.PaymentIntentID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "retrieve payment")
	}

	productID, err := uuid.Parse(payment.ProductID)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "payment references an unknown product")
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "payment references an unknown product")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	status, parseErr := enums.ParsePaymentStatus(payment.Status)
	if parseErr != nil || !status.IsSuccessful() {
		return nil, pkgerrors.New(pkgerrors.CodePaymentFailed, "payment was not successful").
			WithDetails(map[string]any{"status": payment.Status, "product_id": product.ID})
	}
	ctx = s.withStep(ctx, StepPaymentChecked, input.PaymentIntentID)

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		email = strings.ToLower(strings.TrimSpace(payment.Email))
	}
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "an email is required to fulfill the purchase")
	}

	// advisory check so most duplicates reject before the transaction; the
	// unique constraints below remain the source of truth under races
	owned, err := s.orders.HasPurchased(ctx, email, product.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check prior purchase")
	}
	if owned {
		existing, findErr := s.orders.FindByPaymentIntentID(ctx, input.PaymentIntentID)
		if findErr == nil {
			return s.replay(ctx, existing)
		}
		if !db.IsNotFound(findErr) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, findErr, "load existing order")
		}
		return nil, pkgerrors.New(pkgerrors.CodeAlreadyPurchased, "this product was already purchased with this email")
	}

	var result *Result
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if _, userErr := s.users.WithTx(tx).FirstOrCreateByEmail(ctx, email); userErr != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, userErr, "record customer")
		}

		order := &models.Order{
			ID:              uuid.New(),
			ProductID:       product.ID,
			Email:           email,
			PricePaidCents:  product.PriceCents,
			PaymentIntentID: input.PaymentIntentID,
		}
		created, wasCreated, orderErr := s.orders.WithTx(tx).CreateIfAbsent(ctx, order)
		if orderErr != nil {
			if db.IsUniqueViolation(orderErr) {
				return pkgerrors.New(pkgerrors.CodeAlreadyPurchased, "this product was already purchased with this email")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, orderErr, "create order")
		}
		s.logStep(ctx, StepOrderCreated, input.PaymentIntentID, "order recorded")

		token, tokenErr := s.downloads.WithTx(tx).Issue(ctx, product.ID)
		if tokenErr != nil {
			return tokenErr
		}
		s.logStep(ctx, StepTokenIssued, input.PaymentIntentID, "token issued")

		result = &Result{
			OrderID:          created.ID,
			ProductID:        created.ProductID,
			Email:            created.Email,
			DownloadTokenID:  token.ID,
			TokenExpiresAt:   token.ExpiresAt,
			AlreadyFulfilled: !wasCreated,
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "fulfillment timed out")
		}
		return nil, err
	}
	return result, nil
}

// Precheck reports whether the email already owns the product, so the
// storefront can block a second purchase before payment starts.
func (s *Service) Precheck(ctx context.Context, email string, productID uuid.UUID) (*PrecheckResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}

	owned, err := s.orders.HasPurchased(ctx, email, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check prior purchase")
	}
	return &PrecheckResult{AlreadyPurchased: owned}, nil
}

// replay re-serves a payment intent that already produced an order. The
// order is untouched; only a fresh token is minted.
func (s *Service) replay(ctx context.Context, existing *models.Order) (*Result, error) {
	token, err := s.downloads.Issue(ctx, existing.ProductID)
	if err != nil {
		return nil, err
	}
	return &Result{
		OrderID:          existing.ID,
		ProductID:        existing.ProductID,
		Email:            existing.Email,
		DownloadTokenID:  token.ID,
		TokenExpiresAt:   token.ExpiresAt,
		AlreadyFulfilled: true,
	}, nil
}

func (s *Service) boundWorkflow(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.cfg.QueryTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.cfg.QueryTimeout)
}

func (s *Service) withStep(ctx context.Context, step Step, paymentIntentID string) context.Context {
	if s.logg == nil {
		return ctx
	}
	ctx = s.logg.WithPaymentIntentID(ctx, paymentIntentID)
	return s.logg.WithField(ctx, "step", string(step))
}

func (s *Service) logStep(ctx context.Context, step Step, paymentIntentID, msg string) {
	if s.logg == nil {
		return
	}
	s.logg.Info(s.withStep(ctx, step, paymentIntentID), msg)
}
