package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fundline/mca_backend/internal/apperrors"
	"github.com/fundline/mca_backend/internal/core/domain"
	portssvc "github.com/fundline/mca_backend/internal/core/ports/services"
	"github.com/fundline/mca_backend/internal/dto"
	"github.com/fundline/mca_backend/internal/handlers"
	"github.com/fundline/mca_backend/pkg/config"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock BusinessService ---
type MockBusinessService struct {
	mock.Mock
}

func (m *MockBusinessService) GetBusiness(ctx context.Context, name string) (*domain.BusinessRecord, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BusinessRecord), args.Error(1)
}

func (m *MockBusinessService) ListBusinesses(ctx context.Context) ([]domain.BusinessRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BusinessRecord), args.Error(1)
}

func (m *MockBusinessService) GetPercentage(ctx context.Context, name string) (decimal.Decimal, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockBusinessService) UpsertBusiness(ctx context.Context, req dto.UpsertBusinessRequest, updatedBy string) (*domain.BusinessRecord, error) {
	args := m.Called(ctx, req, updatedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BusinessRecord), args.Error(1)
}

func (m *MockBusinessService) DeleteBusiness(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

var _ portssvc.BusinessSvcFacade = (*MockBusinessService)(nil)

// --- Mock ProcessingService ---
type MockProcessingService struct {
	mock.Mock
}

func (m *MockProcessingService) Aggregate(ctx context.Context, txns []domain.Transaction, businessName string, percentage decimal.Decimal, period domain.Period) (*domain.CalculationResult, error) {
	args := m.Called(ctx, txns, businessName, percentage, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CalculationResult), args.Error(1)
}

func (m *MockProcessingService) ProcessBatch(ctx context.Context, exports []domain.TransactionExport, period domain.Period, persist bool) (*domain.BatchResult, error) {
	args := m.Called(ctx, exports, period, persist)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BatchResult), args.Error(1)
}

var _ portssvc.ProcessingSvcFacade = (*MockProcessingService)(nil)

// --- Mock HistoryService ---
type MockHistoryService struct {
	mock.Mock
}

func (m *MockHistoryService) ListHistory(ctx context.Context, businessName string) ([]domain.ProcessingRecord, error) {
	args := m.Called(ctx, businessName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ProcessingRecord), args.Error(1)
}

var _ portssvc.HistorySvcFacade = (*MockHistoryService)(nil)

// newTestRouter wires a gin engine with mocked services behind the real routes.
func newTestRouter(business *MockBusinessService, processing *MockProcessingService, history *MockHistoryService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	cfg := &config.Config{
		RateLimit:          "1000-S",
		CORSAllowedOrigins: []string{"http://localhost:3000"},
		MaxUploadBytes:     1 << 20,
	}
	handlers.RegisterRoutes(r, cfg, &portssvc.ServiceContainer{
		Business:   business,
		Processing: processing,
		History:    history,
	})
	return r
}

// --- Test Suite ---
type BusinessHandlerTestSuite struct {
	suite.Suite
	mockService *MockBusinessService
	router      *gin.Engine
}

func (suite *BusinessHandlerTestSuite) SetupTest() {
	suite.mockService = new(MockBusinessService)
	suite.router = newTestRouter(suite.mockService, new(MockProcessingService), new(MockHistoryService))
}

func (suite *BusinessHandlerTestSuite) record(name, percentage string) *domain.BusinessRecord {
	return &domain.BusinessRecord{
		BusinessID: "biz-1",
		Name:       name,
		Percentage: decimal.RequireFromString(percentage),
	}
}

func (suite *BusinessHandlerTestSuite) TestUpsertBusiness_Success() {
	saved := suite.record("Abc Ltd", "15")
	suite.mockService.On("UpsertBusiness", mock.Anything, mock.MatchedBy(func(req dto.UpsertBusinessRequest) bool {
		return req.Name == "Abc Ltd" && req.Percentage.Equal(decimal.RequireFromString("15"))
	}), mock.AnythingOfType("string")).Return(saved, nil).Once()

	body := bytes.NewBufferString(`{"name": "Abc Ltd", "processingPercentage": 15}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/businesses", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.BusinessResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("Abc Ltd", resp.Name)
	suite.True(resp.Percentage.Equal(decimal.RequireFromString("15")))
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *BusinessHandlerTestSuite) TestUpsertBusiness_MissingName() {
	body := bytes.NewBufferString(`{"processingPercentage": 15}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/businesses", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "UpsertBusiness", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BusinessHandlerTestSuite) TestUpsertBusiness_ValidationError() {
	suite.mockService.On("UpsertBusiness", mock.Anything, mock.AnythingOfType("dto.UpsertBusinessRequest"), mock.AnythingOfType("string")).
		Return(nil, apperrors.ErrValidation).Once()

	body := bytes.NewBufferString(`{"name": "Abc Ltd", "processingPercentage": 150}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/businesses", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *BusinessHandlerTestSuite) TestGetBusiness_Success() {
	suite.mockService.On("GetBusiness", mock.Anything, "Abc Ltd").Return(suite.record("Abc Ltd", "15"), nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/businesses/Abc%20Ltd", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *BusinessHandlerTestSuite) TestGetBusiness_NotFound() {
	suite.mockService.On("GetBusiness", mock.Anything, "Ghost Ltd").Return(nil, apperrors.ErrNotFound).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/businesses/Ghost%20Ltd", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *BusinessHandlerTestSuite) TestListBusinesses() {
	businesses := []domain.BusinessRecord{*suite.record("Abc Ltd", "15"), *suite.record("Xyz Corp", "10")}
	suite.mockService.On("ListBusinesses", mock.Anything).Return(businesses, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/businesses", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var resp struct {
		Businesses []dto.BusinessResponse `json:"businesses"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Businesses, 2)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *BusinessHandlerTestSuite) TestUpdatePercentage_Success() {
	suite.mockService.On("GetBusiness", mock.Anything, "Abc Ltd").Return(suite.record("Abc Ltd", "15"), nil).Once()
	suite.mockService.On("UpsertBusiness", mock.Anything, mock.MatchedBy(func(req dto.UpsertBusinessRequest) bool {
		return req.Name == "Abc Ltd" && req.Percentage.Equal(decimal.RequireFromString("20"))
	}), mock.AnythingOfType("string")).Return(suite.record("Abc Ltd", "20"), nil).Once()

	body := bytes.NewBufferString(`{"processingPercentage": 20}`)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/businesses/Abc%20Ltd", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *BusinessHandlerTestSuite) TestUpdatePercentage_NotFound() {
	suite.mockService.On("GetBusiness", mock.Anything, "Ghost Ltd").Return(nil, apperrors.ErrNotFound).Once()

	body := bytes.NewBufferString(`{"processingPercentage": 20}`)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/businesses/Ghost%20Ltd", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "UpsertBusiness", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BusinessHandlerTestSuite) TestDeleteBusiness_Success() {
	suite.mockService.On("DeleteBusiness", mock.Anything, "Abc Ltd").Return(nil).Once()

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/businesses/Abc%20Ltd", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *BusinessHandlerTestSuite) TestDeleteBusiness_NotFound() {
	suite.mockService.On("DeleteBusiness", mock.Anything, "Ghost Ltd").Return(apperrors.ErrNotFound).Once()

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/businesses/Ghost%20Ltd", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockService.AssertExpectations(suite.T())
}

// --- Run Suite ---
func TestBusinessHandler(t *testing.T) {
	suite.Run(t, new(BusinessHandlerTestSuite))
}
