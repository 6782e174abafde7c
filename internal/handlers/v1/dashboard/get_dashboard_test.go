package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/networth-server/internal/service"
)

// mockDashboardService is a mock for dashboardGetter.
type mockDashboardService struct {
	mock.Mock
}

func (m *mockDashboardService) GetDashboard(ctx context.Context, userID uuid.UUID) (*service.Dashboard, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Dashboard), args.Error(1)
}

// newTestAPI registers the handler against a humatest API and returns it.
func newTestAPI(t *testing.T, svc dashboardGetter) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewGetDashboardHandler(svc).Register(api)
	return api
}

func TestHTTP_GetDashboard_Success(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())
	lastSync := time.Date(2025, 3, 9, 9, 0, 0, 0, time.UTC)

	mockSvc := new(mockDashboardService)
	mockSvc.On("GetDashboard", mock.Anything, userID).Return(&service.Dashboard{
		DisplayCurrency: "EUR",
		Categories: map[string]decimal.Decimal{
			"checking": decimal.RequireFromString("1000"),
			"loan":     decimal.RequireFromString("-400"),
		},
		Personal: decimal.RequireFromString("600"),
		Total:    decimal.RequireFromString("600"),
		Accounts: []service.DashboardAccount{{
			AccountID: uuid.Must(uuid.NewV4()),
			Name:      "Checking",
			Balance:   decimal.RequireFromString("1000"),
			Currency:  "EUR",
			Usage:     "personal",
			LastSync:  &lastSync,
		}},
	}, nil)

	resp := newTestAPI(t, mockSvc).Get("/v1/dashboard/" + userID.String())

	assert.Equal(t, http.StatusOK, resp.Code)
	var body Dashboard
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "EUR", body.DisplayCurrency)
	assert.Equal(t, "600", body.Total)
	assert.Equal(t, "1000", body.Categories["checking"])
	assert.Len(t, body.Accounts, 1)
	assert.Equal(t, "2025-03-09T09:00:00Z", body.Accounts[0].LastSync)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_GetDashboard_InvalidUserID(t *testing.T) {
	mockSvc := new(mockDashboardService)

	// Huma's format:"uuid" schema validation rejects this before the handler runs.
	resp := newTestAPI(t, mockSvc).Get("/v1/dashboard/not-a-uuid")

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	mockSvc.AssertNotCalled(t, "GetDashboard")
}

func TestHTTP_GetDashboard_ServiceError(t *testing.T) {
	mockSvc := new(mockDashboardService)
	mockSvc.On("GetDashboard", mock.Anything, mock.Anything).
		Return(nil, errors.New("database unavailable"))

	resp := newTestAPI(t, mockSvc).Get("/v1/dashboard/" + uuid.Must(uuid.NewV4()).String())

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	mockSvc.AssertExpectations(t)
}
