package ledger

import (
	"context"
	"database/sql"
	"fmt"

	id "prodauth/pkg/domain"
	"prodauth/pkg/platform/sentinel"
	"prodauth/pkg/requestcontext"
)

// PostgresLog persists an append-only log in PostgreSQL, one table per log.
// This store is pure I/O; the authorization rules live in the guards services
// pass in.
//
// Append serialization uses a transaction-scoped advisory lock keyed by
// (table, key), which also covers the first append when no row exists yet to
// lock with FOR UPDATE.
type PostgresLog struct {
	db    *sql.DB
	table string
}

// Tables this log is allowed to target. The table name is interpolated into
// SQL, so it must come from this fixed set rather than caller input.
var allowedTables = map[string]bool{
	"custody_events":   true,
	"ownership_events": true,
}

// NewPostgresLog constructs a PostgreSQL-backed log over the named table.
func NewPostgresLog(db *sql.DB, table string) (*PostgresLog, error) {
	if !allowedTables[table] {
		return nil, fmt.Errorf("unknown ledger table %q", table)
	}
	return &PostgresLog{db: db, table: table}, nil
}

func (l *PostgresLog) Append(ctx context.Context, key id.ProductID, account id.AccountID, guard Guard) (Entry, error) {
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return Entry{}, fmt.Errorf("begin %s append: %w", l.table, err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	// Serialize appends on this key, including the very first one.
	if _, err := tx.ExecContext(ctx,
		`SELECT pg_advisory_xact_lock(hashtext($1), hashtext($2))`,
		l.table, key.String(),
	); err != nil {
		return Entry{}, fmt.Errorf("acquire append lock: %w", err)
	}

	prior, err := l.historyTx(ctx, tx, key)
	if err != nil {
		return Entry{}, err
	}
	if guard != nil {
		if err := guard(prior); err != nil {
			return Entry{}, err
		}
	}

	entry := Entry{
		Key:        key,
		Seq:        uint64(len(prior)) + 1,
		Account:    account,
		RecordedAt: requestcontext.Now(ctx),
	}
	query := fmt.Sprintf(`
		INSERT INTO %s (product_id, seq, account, recorded_at)
		VALUES ($1, $2, $3, $4)
	`, l.table)
	if _, err := tx.ExecContext(ctx, query,
		entry.Key.String(), entry.Seq, entry.Account.String(), entry.RecordedAt,
	); err != nil {
		return Entry{}, fmt.Errorf("append %s entry: %w", l.table, err)
	}
	if err := tx.Commit(); err != nil {
		return Entry{}, fmt.Errorf("commit %s append: %w", l.table, err)
	}
	return entry, nil
}

func (l *PostgresLog) History(ctx context.Context, key id.ProductID) ([]Entry, error) {
	query := fmt.Sprintf(`
		SELECT product_id, seq, account, recorded_at
		FROM %s
		WHERE product_id = $1
		ORDER BY seq ASC
	`, l.table)
	rows, err := l.db.QueryContext(ctx, query, key.String())
	if err != nil {
		return nil, fmt.Errorf("list %s entries: %w", l.table, err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

func (l *PostgresLog) Latest(ctx context.Context, key id.ProductID) (Entry, error) {
	query := fmt.Sprintf(`
		SELECT product_id, seq, account, recorded_at
		FROM %s
		WHERE product_id = $1
		ORDER BY seq DESC
		LIMIT 1
	`, l.table)
	entry, err := scanEntry(l.db.QueryRowContext(ctx, query, key.String()))
	if err != nil {
		if err == sql.ErrNoRows {
			return Entry{}, sentinel.ErrNotFound
		}
		return Entry{}, fmt.Errorf("latest %s entry: %w", l.table, err)
	}
	return entry, nil
}

func (l *PostgresLog) historyTx(ctx context.Context, tx *sql.Tx, key id.ProductID) ([]Entry, error) {
	query := fmt.Sprintf(`
		SELECT product_id, seq, account, recorded_at
		FROM %s
		WHERE product_id = $1
		ORDER BY seq ASC
		FOR UPDATE
	`, l.table)
	rows, err := tx.QueryContext(ctx, query, key.String())
	if err != nil {
		return nil, fmt.Errorf("lock %s entries: %w", l.table, err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (Entry, error) {
	var (
		entry   Entry
		key     string
		account string
	)
	if err := row.Scan(&key, &entry.Seq, &account, &entry.RecordedAt); err != nil {
		return Entry{}, err
	}
	entry.Key = id.ProductID(key)
	entry.Account = id.AccountID(account)
	return entry, nil
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	entries := []Entry{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ledger entries: %w", err)
	}
	return entries, nil
}
