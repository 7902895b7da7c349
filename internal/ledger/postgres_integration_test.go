//go:build integration

package ledger_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"

	"prodauth/internal/ledger"
	id "prodauth/pkg/domain"
	dErrors "prodauth/pkg/domain-errors"
	"prodauth/pkg/platform/sentinel"
	"prodauth/pkg/testutil/containers"
)

type PostgresLogSuite struct {
	suite.Suite
	pg  *containers.PostgresContainer
	log *ledger.PostgresLog
}

func (s *PostgresLogSuite) SetupSuite() {
	s.pg = containers.NewPostgresContainer(s.T(), "../../migrations")

	// The event tables reference products, so seed the row every test keys on.
	_, err := s.pg.DB.Exec(`
		INSERT INTO manufacturers (account, registered_by, registered_at)
		VALUES ('0x1111111111111111111111111111111111111111', '0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa', now());
		INSERT INTO products (product_id, name, content_hash, manufacturer, registered_at)
		VALUES ('P1', 'Widget', '0x' || repeat('ab', 32), '0x1111111111111111111111111111111111111111', now());
	`)
	s.Require().NoError(err)

	log, err := ledger.NewPostgresLog(s.pg.DB, "ownership_events")
	s.Require().NoError(err)
	s.log = log
}

func (s *PostgresLogSuite) SetupTest() {
	_, err := s.pg.DB.Exec(`TRUNCATE ownership_events`)
	s.Require().NoError(err)
}

func TestPostgresLogSuite(t *testing.T) {
	suite.Run(t, new(PostgresLogSuite))
}

func (s *PostgresLogSuite) TestRejectsUnknownTable() {
	_, err := ledger.NewPostgresLog(s.pg.DB, "manufacturers; DROP TABLE manufacturers")
	s.Require().Error(err)
}

func (s *PostgresLogSuite) TestAppendAssignsMonotonicSeq() {
	ctx := context.Background()
	key := id.MustProductID("P1")
	account := id.MustAccountID("0x1111111111111111111111111111111111111111")

	for want := uint64(1); want <= 3; want++ {
		entry, err := s.log.Append(ctx, key, account, nil)
		s.Require().NoError(err)
		s.Equal(want, entry.Seq)
	}

	history, err := s.log.History(ctx, key)
	s.Require().NoError(err)
	s.Require().Len(history, 3)
}

func (s *PostgresLogSuite) TestGuardRejectionLeavesLogUnchanged() {
	ctx := context.Background()
	key := id.MustProductID("P1")
	account := id.MustAccountID("0x1111111111111111111111111111111111111111")

	_, err := s.log.Append(ctx, key, account, func(prior []ledger.Entry) error {
		s.Empty(prior)
		return dErrors.New(dErrors.CodeUnauthorized, "nope")
	})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))

	history, err := s.log.History(ctx, key)
	s.Require().NoError(err)
	s.Empty(history)
}

func (s *PostgresLogSuite) TestGuardObservesCommittedHistory() {
	ctx := context.Background()
	key := id.MustProductID("P1")
	first := id.MustAccountID("0x1111111111111111111111111111111111111111")
	second := id.MustAccountID("0x2222222222222222222222222222222222222222")

	_, err := s.log.Append(ctx, key, first, nil)
	s.Require().NoError(err)

	_, err = s.log.Append(ctx, key, second, func(prior []ledger.Entry) error {
		s.Require().Len(prior, 1)
		s.Equal(first, prior[0].Account)
		return nil
	})
	s.Require().NoError(err)
}

func (s *PostgresLogSuite) TestLatest() {
	ctx := context.Background()
	key := id.MustProductID("P1")

	_, err := s.log.Latest(ctx, key)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)

	for i := 1; i <= 2; i++ {
		account := id.MustAccountID(fmt.Sprintf("0x%040d", i))
		_, err := s.log.Append(ctx, key, account, nil)
		s.Require().NoError(err)
	}

	latest, err := s.log.Latest(ctx, key)
	s.Require().NoError(err)
	s.Equal(uint64(2), latest.Seq)
}

func (s *PostgresLogSuite) TestConcurrentAppendsSerialize() {
	ctx := context.Background()
	key := id.MustProductID("P1")

	const writers = 8
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		account := id.MustAccountID(fmt.Sprintf("0x%040d", i))
		go func(account id.AccountID) {
			_, err := s.log.Append(ctx, key, account, nil)
			errs <- err
		}(account)
	}
	for i := 0; i < writers; i++ {
		s.Require().NoError(<-errs)
	}

	history, err := s.log.History(ctx, key)
	s.Require().NoError(err)
	s.Require().Len(history, writers)
	for i, entry := range history {
		s.Equal(uint64(i+1), entry.Seq)
	}
}
