//go:build integration

package product_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"prodauth/internal/product"
	id "prodauth/pkg/domain"
	"prodauth/pkg/platform/sentinel"
	"prodauth/pkg/testutil/containers"
)

func widgetRecord() product.Record {
	return product.Record{
		ProductID:    id.MustProductID("P1"),
		Name:         "Widget",
		BatchNumber:  "B1",
		Origin:       "OriginX",
		ContentHash:  id.MustContentHash("0x" + strings.Repeat("ab", 32)),
		Manufacturer: id.MustAccountID("0x1111111111111111111111111111111111111111"),
		RegisteredAt: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
	}
}

type PostgresStoreSuite struct {
	suite.Suite
	pg    *containers.PostgresContainer
	store *product.PostgresStore
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.pg = containers.NewPostgresContainer(s.T(), "../../migrations")
	s.store = product.NewPostgresStore(s.pg.DB)

	// Products reference the manufacturer registry.
	_, err := s.pg.DB.Exec(`
		INSERT INTO manufacturers (account, registered_by, registered_at)
		VALUES ('0x1111111111111111111111111111111111111111', '0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa', now())
	`)
	s.Require().NoError(err)
}

func (s *PostgresStoreSuite) SetupTest() {
	_, err := s.pg.DB.Exec(`TRUNCATE products CASCADE`)
	s.Require().NoError(err)
}

func TestPostgresStoreSuite(t *testing.T) {
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) TestCreateAndFind() {
	ctx := context.Background()
	record := widgetRecord()

	s.Require().NoError(s.store.Create(ctx, record))

	found, err := s.store.Find(ctx, record.ProductID)
	s.Require().NoError(err)
	s.Equal(record.ProductID, found.ProductID)
	s.Equal(record.Name, found.Name)
	s.Equal(record.BatchNumber, found.BatchNumber)
	s.Equal(record.Origin, found.Origin)
	s.Equal(record.ContentHash, found.ContentHash)
	s.Equal(record.Manufacturer, found.Manufacturer)
	s.True(record.RegisteredAt.Equal(found.RegisteredAt))
}

func (s *PostgresStoreSuite) TestCreateConflict() {
	ctx := context.Background()
	record := widgetRecord()

	s.Require().NoError(s.store.Create(ctx, record))

	duplicate := record
	duplicate.Name = "Widget v2"
	s.Require().ErrorIs(s.store.Create(ctx, duplicate), sentinel.ErrConflict)

	// The original record survives the rejected duplicate.
	found, err := s.store.Find(ctx, record.ProductID)
	s.Require().NoError(err)
	s.Equal("Widget", found.Name)
}

func (s *PostgresStoreSuite) TestFindUnknownProduct() {
	ctx := context.Background()

	_, err := s.store.Find(ctx, id.MustProductID("missing"))
	s.Require().ErrorIs(err, sentinel.ErrNotFound)

	exists, err := s.store.Exists(ctx, id.MustProductID("missing"))
	s.Require().NoError(err)
	s.False(exists)
}

func (s *PostgresStoreSuite) TestExists() {
	ctx := context.Background()
	s.Require().NoError(s.store.Create(ctx, widgetRecord()))

	exists, err := s.store.Exists(ctx, id.MustProductID("P1"))
	s.Require().NoError(err)
	s.True(exists)
}
