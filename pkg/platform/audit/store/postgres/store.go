package postgres

import (
	"context"
	"database/sql"
	"fmt"

	id "prodauth/pkg/domain"
	audit "prodauth/pkg/platform/audit"
)

// Store persists audit events in PostgreSQL. Rows are insert-only; there is no
// update or delete path, so the table doubles as a durable trail.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Append(ctx context.Context, event audit.Event) error {
	query := `
		INSERT INTO audit_events (id, occurred_at, action, product_id, actor, subject, request_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(ctx, query,
		event.ID,
		event.Timestamp,
		string(event.Action),
		event.Product.String(),
		event.Actor.String(),
		event.Subject.String(),
		event.RequestID,
	)
	if err != nil {
		return fmt.Errorf("append audit event: %w", err)
	}
	return nil
}

func (s *Store) ListByProduct(ctx context.Context, productID id.ProductID) ([]audit.Event, error) {
	query := `
		SELECT id, occurred_at, action, product_id, actor, subject, request_id
		FROM audit_events
		WHERE product_id = $1
		ORDER BY occurred_at ASC, id ASC
	`
	rows, err := s.db.QueryContext(ctx, query, productID.String())
	if err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	defer rows.Close()

	events := []audit.Event{}
	for rows.Next() {
		var (
			event   audit.Event
			action  string
			product string
			actor   string
			subject string
		)
		if err := rows.Scan(&event.ID, &event.Timestamp, &action, &product, &actor, &subject, &event.RequestID); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		event.Action = audit.Action(action)
		event.Product = id.ProductID(product)
		event.Actor = id.AccountID(actor)
		event.Subject = id.AccountID(subject)
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit events: %w", err)
	}
	return events, nil
}
