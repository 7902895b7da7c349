package verify

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"prodauth/internal/custody"
	"prodauth/internal/ownership"
	"prodauth/internal/product"
	id "prodauth/pkg/domain"
	dErrors "prodauth/pkg/domain-errors"
)

const provenanceTimeout = 5 * time.Second

// Report is the composed state of a product across all four registries.
type Report struct {
	Record                 product.Record
	ManufacturerRegistered bool
	CurrentOwner           id.AccountID // zero when no ownership event exists yet
	OwnershipHistory       []ownership.Event
	CustodyHistory         []custody.Event
	GatheredAt             time.Time
}

// Provenance gathers the full picture for a product id: record, manufacturer
// status, current owner, and both histories, fetched in parallel with shared
// cancellation. Unlike VerifyProduct it is an operator-facing read, so an
// unknown product is an error rather than a quiet false.
func (s *Service) Provenance(ctx context.Context, productID id.ProductID) (*Report, error) {
	ctx, span := s.tracer.Start(ctx, "Provenance",
		trace.WithAttributes(attribute.String("product.id", productID.String())))
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, provenanceTimeout)
	defer cancel()

	// The record anchors everything else (manufacturer, existence), so it is
	// fetched first; the remaining reads fan out.
	record, err := s.products.Get(ctx, productID)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Record:     record,
		GatheredAt: time.Now(),
	}
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		registered, err := s.manufacturers.IsRegisteredManufacturer(ctx, record.Manufacturer)
		if err != nil {
			return err
		}
		mu.Lock()
		report.ManufacturerRegistered = registered
		mu.Unlock()
		return nil
	})

	g.Go(func() error {
		owner, err := s.owners.CurrentOwner(ctx, productID)
		if err != nil {
			if dErrors.HasCode(err, dErrors.CodeNoOwner) {
				return nil
			}
			return err
		}
		mu.Lock()
		report.CurrentOwner = owner
		mu.Unlock()
		return nil
	})

	g.Go(func() error {
		events, err := s.owners.History(ctx, productID)
		if err != nil {
			return err
		}
		mu.Lock()
		report.OwnershipHistory = events
		mu.Unlock()
		return nil
	})

	g.Go(func() error {
		events, err := s.custody.History(ctx, productID)
		if err != nil {
			return err
		}
		mu.Lock()
		report.CustodyHistory = events
		mu.Unlock()
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return report, nil
}
