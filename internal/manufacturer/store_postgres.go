package manufacturer

import (
	"context"
	"database/sql"
	"fmt"

	id "prodauth/pkg/domain"
	"prodauth/pkg/platform/sentinel"
)

// PostgresStore persists the allow-list in PostgreSQL. This store is pure
// I/O; the admin-only rule lives in the service.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Register(ctx context.Context, record Record) error {
	query := `
		INSERT INTO manufacturers (account, registered_by, registered_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (account) DO NOTHING
	`
	result, err := s.db.ExecContext(ctx, query,
		record.Account.String(),
		record.RegisteredBy.String(),
		record.RegisteredAt,
	)
	if err != nil {
		return fmt.Errorf("register manufacturer: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("register manufacturer rows: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrConflict
	}
	return nil
}

func (s *PostgresStore) Find(ctx context.Context, account id.AccountID) (Record, error) {
	query := `
		SELECT account, registered_by, registered_at
		FROM manufacturers
		WHERE account = $1
	`
	var (
		record       Record
		accountStr   string
		registeredBy string
	)
	err := s.db.QueryRowContext(ctx, query, account.String()).
		Scan(&accountStr, &registeredBy, &record.RegisteredAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return Record{}, sentinel.ErrNotFound
		}
		return Record{}, fmt.Errorf("find manufacturer: %w", err)
	}
	record.Account = id.AccountID(accountStr)
	record.RegisteredBy = id.AccountID(registeredBy)
	return record, nil
}

func (s *PostgresStore) IsRegistered(ctx context.Context, account id.AccountID) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM manufacturers WHERE account = $1)`,
		account.String(),
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check manufacturer: %w", err)
	}
	return exists, nil
}
