package product

import (
	"context"
	"database/sql"
	"fmt"

	id "prodauth/pkg/domain"
	"prodauth/pkg/platform/sentinel"
)

// PostgresStore persists product records in PostgreSQL. The primary key on
// product_id is what enforces create-once under concurrent registration
// attempts; the store surfaces the collision as sentinel.ErrConflict.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, record Record) error {
	query := `
		INSERT INTO products (product_id, name, batch_number, origin, content_hash, manufacturer, registered_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (product_id) DO NOTHING
	`
	result, err := s.db.ExecContext(ctx, query,
		record.ProductID.String(),
		record.Name,
		record.BatchNumber,
		record.Origin,
		record.ContentHash.String(),
		record.Manufacturer.String(),
		record.RegisteredAt,
	)
	if err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("create product rows: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrConflict
	}
	return nil
}

func (s *PostgresStore) Find(ctx context.Context, productID id.ProductID) (Record, error) {
	query := `
		SELECT product_id, name, batch_number, origin, content_hash, manufacturer, registered_at
		FROM products
		WHERE product_id = $1
	`
	var (
		record       Record
		pid          string
		hash         string
		manufacturer string
	)
	err := s.db.QueryRowContext(ctx, query, productID.String()).Scan(
		&pid, &record.Name, &record.BatchNumber, &record.Origin,
		&hash, &manufacturer, &record.RegisteredAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return Record{}, sentinel.ErrNotFound
		}
		return Record{}, fmt.Errorf("find product: %w", err)
	}
	record.ProductID = id.ProductID(pid)
	record.ContentHash = id.ContentHash(hash)
	record.Manufacturer = id.AccountID(manufacturer)
	return record, nil
}

func (s *PostgresStore) Exists(ctx context.Context, productID id.ProductID) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM products WHERE product_id = $1)`,
		productID.String(),
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check product: %w", err)
	}
	return exists, nil
}
