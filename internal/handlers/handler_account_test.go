package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/bookease/bookease/internal/apperrors"
	"github.com/bookease/bookease/internal/core/domain"
	portssvc "github.com/bookease/bookease/internal/core/ports/services"
	"github.com/bookease/bookease/internal/dto"
	"github.com/bookease/bookease/internal/handlers"
	"github.com/bookease/bookease/internal/platform/config"
)

type AccountHandlerTestSuite struct {
	suite.Suite
	router            *gin.Engine
	mockAccountSvc    *MockAccountService
	mockJournalSvc    *MockJournalService
	mockReconcilerSvc *MockReconcilerService
	mockSeedSvc       *MockSeedService
	mockAuditSvc      *MockAuditService
}

func (suite *AccountHandlerTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	handlers.RegisterCustomValidators()
}

func (suite *AccountHandlerTestSuite) SetupTest() {
	suite.mockAccountSvc = new(MockAccountService)
	suite.mockJournalSvc = new(MockJournalService)
	suite.mockReconcilerSvc = new(MockReconcilerService)
	suite.mockSeedSvc = new(MockSeedService)
	suite.mockAuditSvc = new(MockAuditService)

	services := &portssvc.ServiceContainer{
		Account:    suite.mockAccountSvc,
		Journal:    suite.mockJournalSvc,
		Reconciler: suite.mockReconcilerSvc,
		Seed:       suite.mockSeedSvc,
		Audit:      suite.mockAuditSvc,
	}

	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, &config.Config{}, services)
}

func (suite *AccountHandlerTestSuite) performJSON(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *AccountHandlerTestSuite) TestHealth() {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("OK", w.Body.String())
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_Created() {
	account := &domain.Account{
		AccountID: uuid.NewString(),
		Code:      "1101",
		Name:      "Cash on Hand",
		Type:      domain.Asset,
		Balance:   decimal.Zero,
		IsActive:  true,
	}
	suite.mockAccountSvc.On("CreateAccount", mock.Anything, mock.AnythingOfType("dto.CreateAccountRequest")).Return(account, nil).Once()

	w := suite.performJSON(http.MethodPost, "/api/v1/accounts", dto.CreateAccountRequest{
		Code: "1101", Name: "Cash on Hand", Type: domain.Asset,
	})

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.AccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("1101", resp.Code)
	suite.True(resp.IsActive)
	suite.mockAccountSvc.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_InvalidTypeFailsBinding() {
	w := suite.performJSON(http.MethodPost, "/api/v1/accounts", map[string]string{
		"code": "9999", "name": "Weird", "type": "Imaginary",
	})

	// The accounttype binding rule rejects before the service is reached.
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockAccountSvc.AssertNotCalled(suite.T(), "CreateAccount", mock.Anything, mock.Anything)
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_DuplicateConflict() {
	suite.mockAccountSvc.On("CreateAccount", mock.Anything, mock.AnythingOfType("dto.CreateAccountRequest")).
		Return(nil, apperrors.ErrDuplicate).Once()

	w := suite.performJSON(http.MethodPost, "/api/v1/accounts", dto.CreateAccountRequest{
		Code: "1101", Name: "Cash on Hand", Type: domain.Asset,
	})

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *AccountHandlerTestSuite) TestGetAccount_NotFound() {
	suite.mockAccountSvc.On("GetAccountByID", mock.Anything, "missing-id").Return(nil, apperrors.ErrNotFound).Once()

	w := suite.performJSON(http.MethodGet, "/api/v1/accounts/missing-id", nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *AccountHandlerTestSuite) TestListAccounts_PlainList() {
	accounts := []domain.Account{
		{AccountID: uuid.NewString(), Code: "1101", Name: "Cash on Hand", Type: domain.Asset, IsActive: true},
	}
	suite.mockAccountSvc.On("ListAccounts", mock.Anything).Return(accounts, nil).Once()

	w := suite.performJSON(http.MethodGet, "/api/v1/accounts", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockAccountSvc.AssertNotCalled(suite.T(), "SearchAccounts", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountHandlerTestSuite) TestListAccounts_SearchDelegation() {
	suite.mockAccountSvc.On("SearchAccounts", mock.Anything, "Cash", mock.AnythingOfType("*domain.AccountType")).
		Return([]domain.Account{}, nil).Once()

	w := suite.performJSON(http.MethodGet, "/api/v1/accounts?q=Cash&type=Asset", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockAccountSvc.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestListAccounts_BadTypeFilter() {
	w := suite.performJSON(http.MethodGet, "/api/v1/accounts?type=Imaginary", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *AccountHandlerTestSuite) TestToggleAccount() {
	accountID := uuid.NewString()
	account := &domain.Account{AccountID: accountID, Code: "1101", Name: "Cash on Hand", Type: domain.Asset, IsActive: false}
	suite.mockAccountSvc.On("ToggleAccountStatus", mock.Anything, accountID).Return(account, nil).Once()

	w := suite.performJSON(http.MethodPatch, "/api/v1/accounts/"+accountID+"/toggle", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.AccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.False(resp.IsActive)
}

func (suite *AccountHandlerTestSuite) TestGetAccountBalance() {
	accountID := uuid.NewString()
	account := &domain.Account{AccountID: accountID, Code: "1101", Name: "Cash on Hand", Type: domain.Asset, Balance: decimal.NewFromInt(500)}
	suite.mockAccountSvc.On("GetAccountByID", mock.Anything, accountID).Return(account, nil).Once()
	suite.mockAccountSvc.On("RecomputeBalance", mock.Anything, accountID).Return(decimal.NewFromInt(500), nil).Once()

	w := suite.performJSON(http.MethodGet, "/api/v1/accounts/"+accountID+"/balance", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp map[string]any
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(true, resp["consistent"])
}

func TestAccountHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AccountHandlerTestSuite))
}
