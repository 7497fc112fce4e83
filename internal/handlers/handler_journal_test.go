package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

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

type JournalHandlerTestSuite struct {
	suite.Suite
	router            *gin.Engine
	mockAccountSvc    *MockAccountService
	mockJournalSvc    *MockJournalService
	mockReconcilerSvc *MockReconcilerService
	mockSeedSvc       *MockSeedService
	mockAuditSvc      *MockAuditService
}

func (suite *JournalHandlerTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	handlers.RegisterCustomValidators()
}

func (suite *JournalHandlerTestSuite) SetupTest() {
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

func (suite *JournalHandlerTestSuite) performJSON(method, path string, body any) *httptest.ResponseRecorder {
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

func sampleEntry(status domain.EntryStatus) *domain.JournalEntry {
	entryID := uuid.NewString()
	return &domain.JournalEntry{
		EntryID:     entryID,
		Date:        time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		Description: "Owner investment",
		Status:      status,
		Lines: []domain.JournalLine{
			{LineID: uuid.NewString(), EntryID: entryID, AccountID: uuid.NewString(), Debit: decimal.NewFromInt(5000), Credit: decimal.Zero},
			{LineID: uuid.NewString(), EntryID: entryID, AccountID: uuid.NewString(), Debit: decimal.Zero, Credit: decimal.NewFromInt(5000)},
		},
	}
}

func (suite *JournalHandlerTestSuite) TestCreateEntry_Created() {
	entry := sampleEntry(domain.Posted)
	suite.mockJournalSvc.On("CreateEntry", mock.Anything, mock.AnythingOfType("dto.CreateEntryRequest")).Return(entry, nil).Once()

	w := suite.performJSON(http.MethodPost, "/api/v1/journal-entries", dto.CreateEntryRequest{
		Date:        entry.Date,
		Description: "Owner investment",
		Status:      domain.Posted,
		Lines: []dto.CreateEntryLine{
			{AccountID: entry.Lines[0].AccountID, Debit: decimal.NewFromInt(5000)},
			{AccountID: entry.Lines[1].AccountID, Credit: decimal.NewFromInt(5000)},
		},
	})

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.EntryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(domain.Posted, resp.Status)
	suite.True(resp.TotalAmount.Equal(decimal.NewFromInt(5000)))
	suite.Len(resp.Lines, 2)
}

func (suite *JournalHandlerTestSuite) TestCreateEntry_SingleLineFailsBinding() {
	w := suite.performJSON(http.MethodPost, "/api/v1/journal-entries", dto.CreateEntryRequest{
		Date:        time.Now(),
		Description: "One line only",
		Lines: []dto.CreateEntryLine{
			{AccountID: uuid.NewString(), Debit: decimal.NewFromInt(100)},
		},
	})

	// min=2 on lines fails at binding, before the service.
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockJournalSvc.AssertNotCalled(suite.T(), "CreateEntry", mock.Anything, mock.Anything)
}

func (suite *JournalHandlerTestSuite) TestCreateEntry_UnbalancedRejected() {
	suite.mockJournalSvc.On("CreateEntry", mock.Anything, mock.AnythingOfType("dto.CreateEntryRequest")).
		Return(nil, apperrors.ErrValidation).Once()

	w := suite.performJSON(http.MethodPost, "/api/v1/journal-entries", dto.CreateEntryRequest{
		Date:        time.Now(),
		Description: "Unbalanced",
		Status:      domain.Posted,
		Lines: []dto.CreateEntryLine{
			{AccountID: uuid.NewString(), Debit: decimal.NewFromInt(100)},
			{AccountID: uuid.NewString(), Credit: decimal.NewFromInt(99)},
		},
	})

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *JournalHandlerTestSuite) TestPostEntry_Success() {
	entry := sampleEntry(domain.Posted)
	suite.mockJournalSvc.On("PostEntry", mock.Anything, entry.EntryID).Return(entry, nil).Once()

	w := suite.performJSON(http.MethodPost, "/api/v1/journal-entries/"+entry.EntryID+"/post", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.EntryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(domain.Posted, resp.Status)
}

func (suite *JournalHandlerTestSuite) TestPostEntry_AlreadyPostedRejected() {
	entryID := uuid.NewString()
	suite.mockJournalSvc.On("PostEntry", mock.Anything, entryID).Return(nil, apperrors.ErrValidation).Once()

	w := suite.performJSON(http.MethodPost, "/api/v1/journal-entries/"+entryID+"/post", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *JournalHandlerTestSuite) TestDeleteEntry_PostedConflict() {
	entryID := uuid.NewString()
	suite.mockJournalSvc.On("DeleteEntry", mock.Anything, entryID).Return(apperrors.ErrValidation).Once()

	w := suite.performJSON(http.MethodDelete, "/api/v1/journal-entries/"+entryID, nil)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *JournalHandlerTestSuite) TestDeleteEntry_Draft() {
	entryID := uuid.NewString()
	suite.mockJournalSvc.On("DeleteEntry", mock.Anything, entryID).Return(nil).Once()

	w := suite.performJSON(http.MethodDelete, "/api/v1/journal-entries/"+entryID, nil)

	suite.Equal(http.StatusNoContent, w.Code)
}

func (suite *JournalHandlerTestSuite) TestListEntryAudit() {
	entryID := uuid.NewString()
	logs := []domain.AuditLog{
		{AuditID: uuid.NewString(), TargetID: entryID, TargetType: domain.TargetJournalEntry, Action: domain.AuditPost, Actor: "local", Timestamp: time.Now().UTC()},
	}
	suite.mockAuditSvc.On("ListAuditLogs", mock.Anything, entryID).Return(logs, nil).Once()

	w := suite.performJSON(http.MethodGet, "/api/v1/journal-entries/"+entryID+"/audit", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"action":"post"`)
}

func (suite *JournalHandlerTestSuite) TestImportCSV() {
	summary := &dto.ImportSummary{Imported: 2, Skipped: 1, Warnings: []string{"row 4: account \"Slush Fund\" not found"}}
	suite.mockReconcilerSvc.On("ImportRecords", mock.Anything, mock.Anything).Return(summary, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/data/import", strings.NewReader("Date,Entry Description\n"))
	req.Header.Set("Content-Type", "text/csv")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ImportSummary
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(2, resp.Imported)
	suite.Equal(1, resp.Skipped)
}

func (suite *JournalHandlerTestSuite) TestExportCSV_Headers() {
	suite.mockReconcilerSvc.On("ExportRecords", mock.Anything, mock.Anything).Return(3, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/data/export.csv", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Header().Get("Content-Type"), "text/csv")
	suite.Contains(w.Header().Get("Content-Disposition"), "bookease-export.csv")
}

func TestJournalHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(JournalHandlerTestSuite))
}
