package product

import (
	"context"
	"errors"
	"strings"

	"prodauth/internal/platform/metrics"
	id "prodauth/pkg/domain"
	dErrors "prodauth/pkg/domain-errors"
	audit "prodauth/pkg/platform/audit"
	"prodauth/pkg/platform/sentinel"
	"prodauth/pkg/requestcontext"
)

// ManufacturerChecker answers whether an account holds manufacturer status.
// identity.AccessControl satisfies it.
type ManufacturerChecker interface {
	IsRegisteredManufacturer(ctx context.Context, account id.AccountID) (bool, error)
}

// Service is the sole creation point for product records in the whole system.
// No update or delete operation exists anywhere.
type Service struct {
	store         Store
	manufacturers ManufacturerChecker
	audit         *audit.Publisher
	metrics       *metrics.Metrics
}

type Option func(*Service)

func WithAudit(publisher *audit.Publisher) Option {
	return func(s *Service) { s.audit = publisher }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func NewService(store Store, manufacturers ManufacturerChecker, opts ...Option) *Service {
	s := &Service{store: store, manufacturers: manufacturers}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register stores the immutable record for a new product.
//
// Errors: CodeUnauthorized when manufacturerID is not a registered
// manufacturer, CodeAlreadyExists when the product id is taken,
// CodeInvalidInput on missing required fields, CodeUnavailable on substrate
// failure. Every failure leaves the store unchanged.
func (s *Service) Register(ctx context.Context, manufacturerID id.AccountID, input RegisterInput) (Record, error) {
	if err := validateRegisterInput(input); err != nil {
		s.metrics.IncrementFailure("register_product", string(dErrors.CodeOf(err)))
		return Record{}, err
	}

	registered, err := s.manufacturers.IsRegisteredManufacturer(ctx, manufacturerID)
	if err != nil {
		return Record{}, dErrors.Wrap(err, dErrors.CodeUnavailable, "manufacturer lookup failed")
	}
	if !registered {
		s.metrics.IncrementFailure("register_product", string(dErrors.CodeUnauthorized))
		return Record{}, dErrors.New(dErrors.CodeUnauthorized, "caller is not a registered manufacturer")
	}

	record := Record{
		ProductID:    input.ProductID,
		Name:         strings.TrimSpace(input.Name),
		BatchNumber:  strings.TrimSpace(input.BatchNumber),
		Origin:       strings.TrimSpace(input.Origin),
		ContentHash:  input.ContentHash,
		Manufacturer: manufacturerID,
		RegisteredAt: requestcontext.Now(ctx),
	}
	if err := s.store.Create(ctx, record); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			s.metrics.IncrementFailure("register_product", string(dErrors.CodeAlreadyExists))
			return Record{}, dErrors.New(dErrors.CodeAlreadyExists, "product id is already registered")
		}
		return Record{}, dErrors.Wrap(err, dErrors.CodeUnavailable, "product store write failed")
	}

	if err := s.audit.Emit(ctx, audit.Event{
		Action:  audit.ActionProductRegistered,
		Product: record.ProductID,
		Actor:   manufacturerID,
	}); err != nil {
		return Record{}, dErrors.Wrap(err, dErrors.CodeUnavailable, "audit emit failed")
	}
	s.metrics.IncrementProductsRegistered()
	return record, nil
}

// Get returns the record for a product id.
//
// Errors: CodeNotFound when the product was never registered.
func (s *Service) Get(ctx context.Context, productID id.ProductID) (Record, error) {
	record, err := s.store.Find(ctx, productID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return Record{}, dErrors.New(dErrors.CodeNotFound, "product is not registered")
		}
		return Record{}, dErrors.Wrap(err, dErrors.CodeUnavailable, "product store read failed")
	}
	return record, nil
}

// Exists reports whether a product id has a record.
func (s *Service) Exists(ctx context.Context, productID id.ProductID) (bool, error) {
	exists, err := s.store.Exists(ctx, productID)
	if err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeUnavailable, "product store read failed")
	}
	return exists, nil
}

func validateRegisterInput(input RegisterInput) error {
	if input.ProductID == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "product id is required")
	}
	if strings.TrimSpace(input.Name) == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "product name is required")
	}
	if input.ContentHash == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "content hash is required")
	}
	return nil
}
