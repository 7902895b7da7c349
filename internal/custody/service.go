// Package custody keeps the append-only distributor hand-off log per product.
package custody

import (
	"context"

	"prodauth/internal/ledger"
	"prodauth/internal/platform/metrics"
	id "prodauth/pkg/domain"
	dErrors "prodauth/pkg/domain-errors"
	audit "prodauth/pkg/platform/audit"
)

// CustodianResolver answers who currently holds a product: the current owner,
// or the registering manufacturer before any ownership event exists.
// ownership.Service satisfies it.
type CustodianResolver interface {
	Custodian(ctx context.Context, productID id.ProductID) (id.AccountID, error)
}

// Service enforces the custodian-only rule over the custody log.
type Service struct {
	log        ledger.Log
	custodians CustodianResolver
	audit      *audit.Publisher
	metrics    *metrics.Metrics
}

type Option func(*Service)

func WithAudit(publisher *audit.Publisher) Option {
	return func(s *Service) { s.audit = publisher }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func NewService(log ledger.Log, custodians CustodianResolver, opts ...Option) *Service {
	s := &Service{log: log, custodians: custodians}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Track appends a custody event for distributorID. The custodian lookup runs
// inside the ledger guard so it reads the latest committed ownership state
// before the append commits.
//
// Errors: CodeNotFound when the product has no record, CodeUnauthorized when
// callerID is not the current custodian, CodeInvalidInput on missing
// accounts, CodeUnavailable on substrate failure.
func (s *Service) Track(ctx context.Context, callerID id.AccountID, productID id.ProductID, distributorID id.AccountID) error {
	if callerID.IsZero() || distributorID.IsZero() {
		s.metrics.IncrementFailure("track_distributor", string(dErrors.CodeInvalidInput))
		return dErrors.New(dErrors.CodeInvalidInput, "caller and distributor accounts are required")
	}

	_, err := s.log.Append(ctx, productID, distributorID, func([]ledger.Entry) error {
		custodian, err := s.custodians.Custodian(ctx, productID)
		if err != nil {
			return err
		}
		if callerID != custodian {
			return dErrors.New(dErrors.CodeUnauthorized, "caller is not the current custodian")
		}
		return nil
	})
	if err != nil {
		code := dErrors.CodeOf(err)
		switch code {
		case dErrors.CodeUnauthorized, dErrors.CodeNotFound:
			s.metrics.IncrementFailure("track_distributor", string(code))
			return err
		}
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "custody ledger append failed")
	}

	if err := s.audit.Emit(ctx, audit.Event{
		Action:  audit.ActionCustodyTracked,
		Product: productID,
		Actor:   callerID,
		Subject: distributorID,
	}); err != nil {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "audit emit failed")
	}
	s.metrics.IncrementCustodyEvents()
	return nil
}

// History returns the custody log in append order.
//
// Errors: CodeNotFound when the product has no record.
func (s *Service) History(ctx context.Context, productID id.ProductID) ([]Event, error) {
	// Existence gate: an unregistered product has no history, not an empty one.
	if _, err := s.custodians.Custodian(ctx, productID); err != nil {
		return nil, err
	}
	entries, err := s.log.History(ctx, productID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "custody ledger read failed")
	}
	events := make([]Event, 0, len(entries))
	for _, entry := range entries {
		events = append(events, Event{
			ProductID:   entry.Key,
			Distributor: entry.Account,
			Seq:         entry.Seq,
			RecordedAt:  entry.RecordedAt,
		})
	}
	return events, nil
}
