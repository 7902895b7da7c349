package product

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"prodauth/internal/identity"
	"prodauth/internal/manufacturer"
	id "prodauth/pkg/domain"
	dErrors "prodauth/pkg/domain-errors"
	audit "prodauth/pkg/platform/audit"
	auditmemory "prodauth/pkg/platform/audit/store/memory"
	"prodauth/pkg/requestcontext"
)

var (
	adminAccount    = id.MustAccountID("0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	makerAccount    = id.MustAccountID("0x1111111111111111111111111111111111111111")
	strangerAccount = id.MustAccountID("0x9999999999999999999999999999999999999999")

	widgetHash = id.MustContentHash("0x" + strings.Repeat("ab", 32))
)

type ProductServiceSuite struct {
	suite.Suite
	store   *InMemoryStore
	events  *auditmemory.Store
	service *Service
}

func (s *ProductServiceSuite) SetupTest() {
	s.store = NewInMemoryStore()
	s.events = auditmemory.New()

	manufacturerStore := manufacturer.NewInMemoryStore()
	access := identity.NewAccessControl(adminAccount, manufacturerStore)
	manufacturers := manufacturer.NewService(manufacturerStore, access)
	s.Require().NoError(manufacturers.Register(context.Background(), adminAccount, makerAccount))

	s.service = NewService(s.store, access, WithAudit(audit.NewPublisher(s.events)))
}

func TestProductServiceSuite(t *testing.T) {
	suite.Run(t, new(ProductServiceSuite))
}

func widgetInput() RegisterInput {
	return RegisterInput{
		ProductID:   id.MustProductID("P1"),
		Name:        "Widget",
		BatchNumber: "B1",
		Origin:      "OriginX",
		ContentHash: widgetHash,
	}
}

func (s *ProductServiceSuite) TestRegisterRequiresManufacturerStatus() {
	ctx := context.Background()

	_, err := s.service.Register(ctx, strangerAccount, widgetInput())
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))

	exists, err := s.service.Exists(ctx, id.MustProductID("P1"))
	s.Require().NoError(err)
	s.False(exists, "failed registration must not create a record")
}

func (s *ProductServiceSuite) TestRegisterIsCreateOnce() {
	ctx := context.Background()

	_, err := s.service.Register(ctx, makerAccount, widgetInput())
	s.Require().NoError(err)

	_, err = s.service.Register(ctx, makerAccount, widgetInput())
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeAlreadyExists))

	// The duplicate attempt must not touch the original record.
	record, err := s.service.Get(ctx, id.MustProductID("P1"))
	s.Require().NoError(err)
	s.Equal("Widget", record.Name)
	s.Equal(widgetHash, record.ContentHash)
}

func (s *ProductServiceSuite) TestRegisterValidatesRequiredFields() {
	ctx := context.Background()

	for name, mutate := range map[string]func(*RegisterInput){
		"empty product id": func(input *RegisterInput) { input.ProductID = "" },
		"empty name":       func(input *RegisterInput) { input.Name = "   " },
		"empty hash":       func(input *RegisterInput) { input.ContentHash = "" },
	} {
		s.Run(name, func() {
			input := widgetInput()
			mutate(&input)
			_, err := s.service.Register(ctx, makerAccount, input)
			s.Require().Error(err)
			s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
		})
	}
}

func (s *ProductServiceSuite) TestRegisterStampsManufacturerAndTime() {
	fixed := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), fixed)

	record, err := s.service.Register(ctx, makerAccount, widgetInput())
	s.Require().NoError(err)
	s.Equal(makerAccount, record.Manufacturer)
	s.Equal(fixed, record.RegisteredAt)
}

func (s *ProductServiceSuite) TestRegisterEmitsAuditEvent() {
	_, err := s.service.Register(context.Background(), makerAccount, widgetInput())
	s.Require().NoError(err)

	events := s.events.All()
	s.Require().Len(events, 1)
	s.Equal(audit.ActionProductRegistered, events[0].Action)
	s.Equal(id.MustProductID("P1"), events[0].Product)
	s.Equal(makerAccount, events[0].Actor)
}

func (s *ProductServiceSuite) TestGetUnknownProduct() {
	_, err := s.service.Get(context.Background(), id.MustProductID("missing"))
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}
