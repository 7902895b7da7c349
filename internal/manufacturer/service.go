package manufacturer

import (
	"context"
	"errors"

	"prodauth/internal/platform/metrics"
	id "prodauth/pkg/domain"
	dErrors "prodauth/pkg/domain-errors"
	audit "prodauth/pkg/platform/audit"
	"prodauth/pkg/platform/sentinel"
	"prodauth/pkg/requestcontext"
)

// Authorizer answers whether an account is the platform administrator.
// identity.AccessControl satisfies it.
type Authorizer interface {
	IsAdministrator(account id.AccountID) bool
}

// Service enforces the admin-only, idempotent registration rule over the
// manufacturer allow-list.
type Service struct {
	store   Store
	access  Authorizer
	audit   *audit.Publisher
	metrics *metrics.Metrics
}

// Option configures optional service wiring.
type Option func(*Service)

func WithAudit(publisher *audit.Publisher) Option {
	return func(s *Service) { s.audit = publisher }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func NewService(store Store, access Authorizer, opts ...Option) *Service {
	s := &Service{store: store, access: access}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register adds manufacturerID to the allow-list. Only the administrator may
// call it; re-registering an already-registered manufacturer is a no-op
// success, not an error.
//
// Errors: CodeUnauthorized when adminID is not the administrator,
// CodeInvalidInput when manufacturerID is unset, CodeUnavailable when the
// store cannot commit.
func (s *Service) Register(ctx context.Context, adminID, manufacturerID id.AccountID) error {
	if !s.access.IsAdministrator(adminID) {
		s.metrics.IncrementFailure("register_manufacturer", string(dErrors.CodeUnauthorized))
		return dErrors.New(dErrors.CodeUnauthorized, "only the administrator can register manufacturers")
	}
	if manufacturerID.IsZero() {
		s.metrics.IncrementFailure("register_manufacturer", string(dErrors.CodeInvalidInput))
		return dErrors.New(dErrors.CodeInvalidInput, "manufacturer account is required")
	}

	record := Record{
		Account:      manufacturerID,
		RegisteredBy: adminID,
		RegisteredAt: requestcontext.Now(ctx),
	}
	if err := s.store.Register(ctx, record); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			// Idempotent: already registered.
			return nil
		}
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "manufacturer registry write failed")
	}

	if err := s.audit.Emit(ctx, audit.Event{
		Action:  audit.ActionManufacturerRegistered,
		Actor:   adminID,
		Subject: manufacturerID,
	}); err != nil {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "audit emit failed")
	}
	s.metrics.IncrementManufacturersRegistered()
	return nil
}

// IsRegistered reports whether account holds manufacturer status.
func (s *Service) IsRegistered(ctx context.Context, account id.AccountID) (bool, error) {
	registered, err := s.store.IsRegistered(ctx, account)
	if err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeUnavailable, "manufacturer registry read failed")
	}
	return registered, nil
}

// Get returns the registration record for an account.
//
// Errors: CodeNotFound when the account is not a registered manufacturer.
func (s *Service) Get(ctx context.Context, account id.AccountID) (Record, error) {
	record, err := s.store.Find(ctx, account)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return Record{}, dErrors.New(dErrors.CodeNotFound, "manufacturer is not registered")
		}
		return Record{}, dErrors.Wrap(err, dErrors.CodeUnavailable, "manufacturer registry read failed")
	}
	return record, nil
}
