package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/quantabooks/accounting_backend/internal/apperrors"
	"github.com/quantabooks/accounting_backend/internal/core/domain"
	portssvc "github.com/quantabooks/accounting_backend/internal/core/ports/services"
	"github.com/quantabooks/accounting_backend/internal/dto"
	"github.com/quantabooks/accounting_backend/internal/handlers"
	"github.com/quantabooks/accounting_backend/pkg/config"
)

// --- Mock EntryService ---
type MockEntryService struct {
	mock.Mock
}

func (m *MockEntryService) CreateEntry(ctx context.Context, req dto.CreateEntryRequest, actorID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockEntryService) GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockEntryService) ListEntries(ctx context.Context, params dto.ListEntriesParams) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	return args.Get(0).([]domain.JournalEntry), next, args.Error(2)
}
func (m *MockEntryService) UpdateEntry(ctx context.Context, entryID string, req dto.UpdateEntryRequest, actorID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockEntryService) DeleteEntry(ctx context.Context, entryID string, actorID string) error {
	args := m.Called(ctx, entryID, actorID)
	return args.Error(0)
}
func (m *MockEntryService) ApproveEntry(ctx context.Context, entryID string, actorID string, force bool) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID, actorID, force)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockEntryService) PostEntry(ctx context.Context, entryID string, actorID string, force bool) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID, actorID, force)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockEntryService) CancelEntry(ctx context.Context, entryID string, reason string, actorID string, force bool) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID, reason, actorID, force)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockEntryService) ReverseEntry(ctx context.Context, entryID string, reason string, actorID string, force bool) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID, reason, actorID, force)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockEntryService) ResetEntryToDraft(ctx context.Context, entryID string, actorID string, force bool) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID, actorID, force)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockEntryService) ValidateTransition(ctx context.Context, entryID string, op domain.EntryOperation, reason string) (*domain.TransitionCheck, error) {
	args := m.Called(ctx, entryID, op, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransitionCheck), args.Error(1)
}

var _ portssvc.EntrySvcFacade = (*MockEntryService)(nil)

// --- Mock BulkService ---
type MockBulkService struct {
	mock.Mock
}

func (m *MockBulkService) BulkApply(ctx context.Context, op domain.EntryOperation, req dto.BulkEntryRequest, actorID string) (*domain.BulkOperationResult, error) {
	args := m.Called(ctx, op, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BulkOperationResult), args.Error(1)
}
func (m *MockBulkService) BulkValidate(ctx context.Context, op domain.EntryOperation, entryIDs []string, reason string) ([]domain.BulkValidationItem, error) {
	args := m.Called(ctx, op, entryIDs, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BulkValidationItem), args.Error(1)
}

var _ portssvc.BulkSvcFacade = (*MockBulkService)(nil)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, actorID string) (*domain.Account, error) {
	args := m.Called(ctx, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}
func (m *MockAccountService) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}
func (m *MockAccountService) DeactivateAccount(ctx context.Context, accountID string, actorID string) error {
	args := m.Called(ctx, accountID, actorID)
	return args.Error(0)
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) TrialBalance(ctx context.Context, asOf time.Time) (*domain.TrialBalanceReport, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrialBalanceReport), args.Error(1)
}
func (m *MockReportingService) BalanceSheet(ctx context.Context, asOf time.Time) (*domain.BalanceSheetReport, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceSheetReport), args.Error(1)
}
func (m *MockReportingService) IncomeStatement(ctx context.Context, from, to time.Time) (*domain.IncomeStatementReport, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IncomeStatementReport), args.Error(1)
}
func (m *MockReportingService) GeneralLedger(ctx context.Context, from, to time.Time, accountIDs []string) (*domain.GeneralLedgerReport, error) {
	args := m.Called(ctx, from, to, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GeneralLedgerReport), args.Error(1)
}
func (m *MockReportingService) FinancialRatios(ctx context.Context, asOf time.Time, from, to time.Time) (*domain.FinancialRatios, error) {
	args := m.Called(ctx, asOf, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialRatios), args.Error(1)
}

var _ portssvc.ReportingSvcFacade = (*MockReportingService)(nil)

// --- Test Suite Setup ---
type EntryHandlerTestSuite struct {
	suite.Suite
	router               *gin.Engine
	mockEntryService     *MockEntryService
	mockBulkService      *MockBulkService
	mockAccountService   *MockAccountService
	mockReportingService *MockReportingService
	jwtSecret            string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *EntryHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "accounting-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedString, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signedString
}

func (suite *EntryHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	dto.RegisterCustomValidators()

	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.mockEntryService = new(MockEntryService)
	suite.mockBulkService = new(MockBulkService)
	suite.mockAccountService = new(MockAccountService)
	suite.mockReportingService = new(MockReportingService)

	cfg := &config.Config{
		JWTSecret:    suite.jwtSecret,
		IsProduction: true, // skip swagger wiring in tests
	}
	services := &portssvc.ServiceContainer{
		Entry:     suite.mockEntryService,
		Bulk:      suite.mockBulkService,
		Account:   suite.mockAccountService,
		Reporting: suite.mockReportingService,
	}
	handlers.RegisterRoutes(suite.router, cfg, services)
}

func (suite *EntryHandlerTestSuite) doRequest(method, url string, body interface{}, userID string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reqBody = bytes.NewBuffer(raw)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, url, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func draftEntryFixture() *domain.JournalEntry {
	entryID := uuid.NewString()
	return &domain.JournalEntry{
		EntryID:     entryID,
		EntryNumber: "JE-000042",
		EntryDate:   time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Description: "Office supplies",
		EntryType:   domain.EntryManual,
		Status:      domain.StatusDraft,
		TotalDebit:  decimal.NewFromInt(100),
		TotalCredit: decimal.NewFromInt(100),
		Lines: []domain.JournalEntryLine{
			{LineID: uuid.NewString(), EntryID: entryID, LineNumber: 1, AccountID: uuid.NewString(), DebitAmount: decimal.NewFromInt(100)},
			{LineID: uuid.NewString(), EntryID: entryID, LineNumber: 2, AccountID: uuid.NewString(), CreditAmount: decimal.NewFromInt(100)},
		},
	}
}

// --- Test Cases ---

func (suite *EntryHandlerTestSuite) TestCreateEntry_Success() {
	userID := uuid.NewString()
	expected := draftEntryFixture()

	suite.mockEntryService.On("CreateEntry",
		mock.Anything,
		mock.AnythingOfType("dto.CreateEntryRequest"),
		userID,
	).Return(expected, nil).Once()

	body := dto.CreateEntryRequest{
		EntryDate:   expected.EntryDate,
		Description: "Office supplies",
		Lines: []dto.EntryLineRequest{
			{AccountID: expected.Lines[0].AccountID, DebitAmount: decimal.NewFromInt(100)},
			{AccountID: expected.Lines[1].AccountID, CreditAmount: decimal.NewFromInt(100)},
		},
	}

	w := suite.doRequest(http.MethodPost, "/api/v1/entries", body, userID)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.EntryResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(expected.EntryID, resp.EntryID)
	suite.Equal(domain.StatusDraft, resp.Status)
	suite.Len(resp.Lines, 2)
	suite.mockEntryService.AssertExpectations(suite.T())
}

func (suite *EntryHandlerTestSuite) TestCreateEntry_ReversalTypeRejectedByBinding() {
	userID := uuid.NewString()

	body := dto.CreateEntryRequest{
		EntryDate:   time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Description: "Sneaky reversal",
		EntryType:   domain.EntryReversal,
		Lines: []dto.EntryLineRequest{
			{AccountID: uuid.NewString(), DebitAmount: decimal.NewFromInt(10)},
			{AccountID: uuid.NewString(), CreditAmount: decimal.NewFromInt(10)},
		},
	}

	w := suite.doRequest(http.MethodPost, "/api/v1/entries", body, userID)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockEntryService.AssertNotCalled(suite.T(), "CreateEntry")
}

func (suite *EntryHandlerTestSuite) TestCreateEntry_Unauthorized() {
	w := suite.doRequest(http.MethodPost, "/api/v1/entries", dto.CreateEntryRequest{}, "")
	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockEntryService.AssertNotCalled(suite.T(), "CreateEntry")
}

func (suite *EntryHandlerTestSuite) TestGetEntry_NotFound() {
	userID := uuid.NewString()
	entryID := uuid.NewString()

	suite.mockEntryService.On("GetEntryByID", mock.Anything, entryID).
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/entries/"+entryID, nil, userID)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockEntryService.AssertExpectations(suite.T())
}

func (suite *EntryHandlerTestSuite) TestListEntries_BadTokenIsBadRequest() {
	userID := uuid.NewString()

	suite.mockEntryService.On("ListEntries", mock.Anything, mock.AnythingOfType("dto.ListEntriesParams")).
		Return(nil, nil, apperrors.NewAppError(http.StatusBadRequest, "invalid nextToken", errors.New("illegal base64 data"))).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/entries?nextToken=garbage", nil, userID)

	suite.Equal(http.StatusBadRequest, w.Code)
	var resp map[string]string
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("invalid nextToken", resp["error"])
	suite.mockEntryService.AssertExpectations(suite.T())
}

func (suite *EntryHandlerTestSuite) TestPostEntry_ForceFlagForwarded() {
	userID := uuid.NewString()
	expected := draftEntryFixture()
	expected.Status = domain.StatusPosted

	suite.mockEntryService.On("PostEntry", mock.Anything, expected.EntryID, userID, true).
		Return(expected, nil).Once()

	url := fmt.Sprintf("/api/v1/entries/%s/post", expected.EntryID)
	w := suite.doRequest(http.MethodPost, url, dto.TransitionRequest{Force: true}, userID)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.EntryResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(domain.StatusPosted, resp.Status)
	suite.mockEntryService.AssertExpectations(suite.T())
}

func (suite *EntryHandlerTestSuite) TestCancelEntry_ReasonRequiredByBinding() {
	userID := uuid.NewString()
	entryID := uuid.NewString()

	url := fmt.Sprintf("/api/v1/entries/%s/cancel", entryID)
	w := suite.doRequest(http.MethodPost, url, dto.CancelEntryRequest{Reason: ""}, userID)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockEntryService.AssertNotCalled(suite.T(), "CancelEntry")
}

func (suite *EntryHandlerTestSuite) TestBulkApply_AllFailedReturns422() {
	userID := uuid.NewString()
	entryID := uuid.NewString()

	result := &domain.BulkOperationResult{
		TotalRequested: 1,
		TotalSucceeded: 0,
		Failed: []domain.BulkEntryFailure{
			{EntryID: entryID, Errors: []string{"entry must be approved before posting"}},
		},
	}
	suite.mockBulkService.On("BulkApply",
		mock.Anything, domain.OperationPost, mock.AnythingOfType("dto.BulkEntryRequest"), userID,
	).Return(result, nil).Once()

	body := dto.BulkEntryRequest{EntryIDs: []string{entryID}}
	w := suite.doRequest(http.MethodPost, "/api/v1/entries/bulk/post", body, userID)

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	var resp dto.BulkOperationResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(1, resp.TotalRequested)
	suite.Zero(resp.TotalSucceeded)
	suite.mockBulkService.AssertExpectations(suite.T())
}

func (suite *EntryHandlerTestSuite) TestBulkApply_UnknownOperation() {
	userID := uuid.NewString()

	body := dto.BulkEntryRequest{EntryIDs: []string{uuid.NewString()}}
	w := suite.doRequest(http.MethodPost, "/api/v1/entries/bulk/promote", body, userID)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockBulkService.AssertNotCalled(suite.T(), "BulkApply")
}

func (suite *EntryHandlerTestSuite) TestValidateTransition_Success() {
	userID := uuid.NewString()
	entryID := uuid.NewString()

	check := &domain.TransitionCheck{
		CanTransition: false,
		Errors:        []string{"entry must be approved before posting"},
	}
	suite.mockEntryService.On("ValidateTransition", mock.Anything, entryID, domain.OperationPost, "").
		Return(check, nil).Once()

	url := fmt.Sprintf("/api/v1/entries/%s/validations/post", entryID)
	w := suite.doRequest(http.MethodGet, url, nil, userID)

	suite.Equal(http.StatusOK, w.Code)
	var resp domain.TransitionCheck
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.False(resp.CanTransition)
	suite.mockEntryService.AssertExpectations(suite.T())
}

func (suite *EntryHandlerTestSuite) TestTrialBalance_Success() {
	userID := uuid.NewString()

	report := &domain.TrialBalanceReport{
		AsOf:         time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
		TotalDebits:  decimal.NewFromInt(700),
		TotalCredits: decimal.NewFromInt(700),
	}
	suite.mockReportingService.On("TrialBalance", mock.Anything, mock.AnythingOfType("time.Time")).
		Return(report, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/reports/trial-balance?asOf=2025-06-30", nil, userID)

	suite.Equal(http.StatusOK, w.Code)
	var resp domain.TrialBalanceReport
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.TotalDebits.Equal(resp.TotalCredits))
	suite.mockReportingService.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestEntryHandler(t *testing.T) {
	suite.Run(t, new(EntryHandlerTestSuite))
}
