// Package ownership keeps the append-only ownership history per product and
// derives the current owner from it.
package ownership

import (
	"context"
	"errors"

	"prodauth/internal/ledger"
	"prodauth/internal/platform/metrics"
	"prodauth/internal/product"
	id "prodauth/pkg/domain"
	dErrors "prodauth/pkg/domain-errors"
	audit "prodauth/pkg/platform/audit"
	"prodauth/pkg/platform/sentinel"
)

// ProductDirectory resolves product records. product.Service satisfies it.
type ProductDirectory interface {
	Get(ctx context.Context, productID id.ProductID) (product.Record, error)
}

// Service enforces the transfer rules over the ownership log: only the
// current owner may transfer, except that the registering manufacturer makes
// the very first transfer.
type Service struct {
	log      ledger.Log
	products ProductDirectory
	audit    *audit.Publisher
	metrics  *metrics.Metrics
}

type Option func(*Service)

func WithAudit(publisher *audit.Publisher) Option {
	return func(s *Service) { s.audit = publisher }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func NewService(log ledger.Log, products ProductDirectory, opts ...Option) *Service {
	s := &Service{log: log, products: products}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Transfer appends an ownership event making newOwnerID the current owner.
// The authorization check runs inside the ledger guard, so it observes the
// event committed by any transfer that raced ahead of this one.
//
// Errors: CodeNotFound when the product has no record, CodeUnauthorized when
// callerID may not transfer, CodeInvalidInput on self-transfer or missing
// accounts, CodeUnavailable on substrate failure.
func (s *Service) Transfer(ctx context.Context, callerID id.AccountID, productID id.ProductID, newOwnerID id.AccountID) error {
	if callerID.IsZero() || newOwnerID.IsZero() {
		s.metrics.IncrementFailure("transfer_ownership", string(dErrors.CodeInvalidInput))
		return dErrors.New(dErrors.CodeInvalidInput, "caller and new owner accounts are required")
	}
	if newOwnerID == callerID {
		s.metrics.IncrementFailure("transfer_ownership", string(dErrors.CodeInvalidInput))
		return dErrors.New(dErrors.CodeInvalidInput, "cannot transfer ownership to yourself")
	}

	record, err := s.products.Get(ctx, productID)
	if err != nil {
		s.metrics.IncrementFailure("transfer_ownership", string(dErrors.CodeOf(err)))
		return err
	}

	_, err = s.log.Append(ctx, productID, newOwnerID, func(prior []ledger.Entry) error {
		if len(prior) == 0 {
			// First transfer is manufacturer-privileged.
			if callerID != record.Manufacturer {
				return dErrors.New(dErrors.CodeUnauthorized, "first transfer must come from the registering manufacturer")
			}
			return nil
		}
		if callerID != prior[len(prior)-1].Account {
			return dErrors.New(dErrors.CodeUnauthorized, "caller is not the current owner")
		}
		return nil
	})
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeUnauthorized) {
			s.metrics.IncrementFailure("transfer_ownership", string(dErrors.CodeUnauthorized))
			return err
		}
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "ownership ledger append failed")
	}

	if err := s.audit.Emit(ctx, audit.Event{
		Action:  audit.ActionOwnershipTransferred,
		Product: productID,
		Actor:   callerID,
		Subject: newOwnerID,
	}); err != nil {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "audit emit failed")
	}
	s.metrics.IncrementOwnershipTransfers()
	return nil
}

// CurrentOwner returns the owner of the most recent ownership event.
//
// Errors: CodeNotFound when the product has no record, CodeNoOwner when the
// product exists but no transfer has been recorded yet.
func (s *Service) CurrentOwner(ctx context.Context, productID id.ProductID) (id.AccountID, error) {
	if _, err := s.products.Get(ctx, productID); err != nil {
		return "", err
	}
	latest, err := s.log.Latest(ctx, productID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return "", dErrors.New(dErrors.CodeNoOwner, "no ownership event recorded for product")
		}
		return "", dErrors.Wrap(err, dErrors.CodeUnavailable, "ownership ledger read failed")
	}
	return latest.Account, nil
}

// Custodian resolves who currently holds the product for custody purposes:
// the current owner, or the registering manufacturer while no ownership
// event exists yet.
func (s *Service) Custodian(ctx context.Context, productID id.ProductID) (id.AccountID, error) {
	record, err := s.products.Get(ctx, productID)
	if err != nil {
		return "", err
	}
	latest, err := s.log.Latest(ctx, productID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return record.Manufacturer, nil
		}
		return "", dErrors.Wrap(err, dErrors.CodeUnavailable, "ownership ledger read failed")
	}
	return latest.Account, nil
}

// History returns the full ownership event log in append order.
//
// Errors: CodeNotFound when the product has no record.
func (s *Service) History(ctx context.Context, productID id.ProductID) ([]Event, error) {
	if _, err := s.products.Get(ctx, productID); err != nil {
		return nil, err
	}
	entries, err := s.log.History(ctx, productID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "ownership ledger read failed")
	}
	events := make([]Event, 0, len(entries))
	for _, entry := range entries {
		events = append(events, Event{
			ProductID:  entry.Key,
			Owner:      entry.Account,
			Seq:        entry.Seq,
			RecordedAt: entry.RecordedAt,
		})
	}
	return events, nil
}
