package dashboard

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/networth-server/internal/service"
)

// dashboardGetter is the service surface the handler needs.
type dashboardGetter interface {
	GetDashboard(ctx context.Context, userID uuid.UUID) (*service.Dashboard, error)
}

// GetDashboardInput is the Huma input for fetching the dashboard.
type GetDashboardInput struct {
	UserID string `path:"userID" format:"uuid" doc:"User UUID"`
}

// GetDashboardOutput is the Huma output for fetching the dashboard.
type GetDashboardOutput struct {
	Body Dashboard
}

// GetDashboardHandler handles GET /v1/dashboard/{userID}.
type GetDashboardHandler struct {
	Service dashboardGetter
}

// NewGetDashboardHandler creates a new GetDashboardHandler.
func NewGetDashboardHandler(svc dashboardGetter) *GetDashboardHandler {
	return &GetDashboardHandler{Service: svc}
}

// Register registers the dashboard endpoint with the Huma API.
func (h *GetDashboardHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-dashboard",
		Method:      http.MethodGet,
		Path:        "/v1/dashboard/{userID}",
		Summary:     "Get dashboard",
		Description: "Returns the user's current net worth position.",
		Tags:        []string{"Dashboard"},
	}, h.handle)
}

func (h *GetDashboardHandler) handle(ctx context.Context, input *GetDashboardInput) (*GetDashboardOutput, error) {
	userID, err := uuid.FromString(input.UserID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid userID", err)
	}

	view, err := h.Service.GetDashboard(ctx, userID)
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to build dashboard", err)
	}

	return &GetDashboardOutput{Body: toResponse(view)}, nil
}

func toResponse(view *service.Dashboard) Dashboard {
	out := Dashboard{
		DisplayCurrency: view.DisplayCurrency,
		Categories:      make(map[string]string, len(view.Categories)),
		Personal:        view.Personal.String(),
		Professional:    view.Professional.String(),
		Total:           view.Total.String(),
		Unconvertible:   view.Unconvertible,
	}
	for category, value := range view.Categories {
		out.Categories[category] = value.String()
	}
	for _, acc := range view.Accounts {
		lastSync := ""
		if acc.LastSync != nil {
			lastSync = acc.LastSync.Format(time.RFC3339)
		}
		out.Accounts = append(out.Accounts, Account{
			ID:       acc.AccountID.String(),
			Name:     acc.Name,
			Balance:  acc.Balance.String(),
			Currency: acc.Currency,
			Usage:    acc.Usage,
			LastSync: lastSync,
			Stale:    acc.Stale,
		})
	}
	for _, as := range view.Assets {
		out.Assets = append(out.Assets, Asset{
			ID:              as.AssetID.String(),
			Name:            as.Name,
			Category:        as.Category,
			Usage:           as.Usage,
			Value:           as.Value.String(),
			NetValue:        as.NetValue.String(),
			MonthlyCashFlow: as.MonthlyCashFlow.String(),
		})
	}
	return out
}
