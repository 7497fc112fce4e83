package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/bookease/bookease/internal/apperrors"
	"github.com/bookease/bookease/internal/core/domain"
	portssvc "github.com/bookease/bookease/internal/core/ports/services"
	"github.com/bookease/bookease/internal/core/services"
)

type SeedServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	mockJournalRepo *MockJournalRepository
	service         portssvc.SeedService
}

func (suite *SeedServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockJournalRepo = new(MockJournalRepository)
	accountSvc := services.NewAccountService(suite.mockAccountRepo, suite.mockJournalRepo)
	suite.service = services.NewSeedService(accountSvc, suite.mockAccountRepo)
}

func (suite *SeedServiceTestSuite) TestSeedDefaultAccounts_EmptyStore() {
	ctx := context.Background()

	suite.mockAccountRepo.On("CountAccounts", ctx).Return(int64(0), nil).Once()
	suite.mockAccountRepo.On("FindAccountByCode", ctx, mock.AnythingOfType("string")).Return(nil, apperrors.ErrNotFound)

	var seeded []domain.Account
	suite.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account"), mock.AnythingOfType("domain.AuditLog")).
		Run(func(args mock.Arguments) {
			seeded = append(seeded, args.Get(1).(domain.Account))
		}).Return(nil)

	created, err := suite.service.SeedDefaultAccounts(ctx)

	suite.Require().NoError(err)
	suite.Equal(len(services.DefaultChartOfAccounts), created)
	suite.Require().Len(seeded, len(services.DefaultChartOfAccounts))

	byCode := make(map[string]domain.Account, len(seeded))
	for _, a := range seeded {
		byCode[a.Code] = a
	}
	suite.Equal("Cash on Hand", byCode["1101"].Name)
	suite.Equal(domain.Asset, byCode["1101"].Type)
	suite.Equal("Current Asset", byCode["1101"].Subtype)
	suite.Equal(domain.Liability, byCode["2101"].Type)
	suite.Equal(domain.Equity, byCode["3100"].Type)
	suite.Equal(domain.Income, byCode["4100"].Type)
	suite.Equal(domain.Expense, byCode["5201"].Type)
	for _, a := range seeded {
		suite.True(a.Balance.IsZero(), "seeded account %s must start at zero", a.Code)
		suite.True(a.IsActive, "seeded account %s must start active", a.Code)
	}
}

func (suite *SeedServiceTestSuite) TestSeedDefaultAccounts_SkipsNonEmptyStore() {
	ctx := context.Background()

	suite.mockAccountRepo.On("CountAccounts", ctx).Return(int64(5), nil).Once()

	created, err := suite.service.SeedDefaultAccounts(ctx)

	suite.Require().NoError(err)
	suite.Equal(0, created)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SeedServiceTestSuite) TestDefaultChart_CodesAreUnique() {
	seen := make(map[string]bool, len(services.DefaultChartOfAccounts))
	for _, template := range services.DefaultChartOfAccounts {
		suite.False(seen[template.Code], "duplicate code %s in default chart", template.Code)
		seen[template.Code] = true
		suite.True(domain.ValidAccountType(template.Type))
	}
}

func TestSeedServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SeedServiceTestSuite))
}
