package history

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/networth-server/internal/service"
)

// historyGetter is the service surface the handler needs.
type historyGetter interface {
	GetHistory(ctx context.Context, userID uuid.UUID, filter service.HistoryFilter) (*service.History, error)
}

// Point is one dated value of the response series.
type Point struct {
	Date  string `json:"date" doc:"RFC3339 snapshot date"`
	Value string `json:"value" doc:"Decimal value"`
}

// History is the API response model for a snapshot series.
type History struct {
	Category      string  `json:"category" doc:"Snapshot category"`
	Points        []Point `json:"points" doc:"Ascending series"`
	Baseline      *Point  `json:"baseline,omitempty" doc:"Baseline point for change displays"`
	PercentChange string  `json:"percentChange,omitempty" doc:"Decimal percent change versus the baseline"`
}

// GetHistoryInput is the Huma input for fetching a series.
type GetHistoryInput struct {
	UserID       string `path:"userID" format:"uuid" doc:"User UUID"`
	Category     string `query:"category" doc:"Snapshot category, defaults to total"`
	From         string `query:"from" format:"date-time" doc:"RFC3339 range start, defaults to one year ago"`
	To           string `query:"to" format:"date-time" doc:"RFC3339 range end, defaults to now"`
	Gross        bool   `query:"gross" doc:"Exclude loan liabilities from the total series"`
	BaselineDate string `query:"baselineDate" format:"date-time" doc:"RFC3339 baseline alignment date"`
}

// GetHistoryOutput is the Huma output for fetching a series.
type GetHistoryOutput struct {
	Body History
}

// GetHistoryHandler handles GET /v1/history/{userID}.
type GetHistoryHandler struct {
	Service historyGetter
}

// NewGetHistoryHandler creates a new GetHistoryHandler.
func NewGetHistoryHandler(svc historyGetter) *GetHistoryHandler {
	return &GetHistoryHandler{Service: svc}
}

// Register registers the history endpoint with the Huma API.
func (h *GetHistoryHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-history",
		Method:      http.MethodGet,
		Path:        "/v1/history/{userID}",
		Summary:     "Get history",
		Description: "Returns a snapshot series for charting.",
		Tags:        []string{"History"},
	}, h.handle)
}

func (h *GetHistoryHandler) handle(ctx context.Context, input *GetHistoryInput) (*GetHistoryOutput, error) {
	userID, filter, err := parseGetHistoryInput(input)
	if err != nil {
		return nil, err
	}

	series, err := h.Service.GetHistory(ctx, userID, filter)
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to read history", err)
	}

	out := History{Category: series.Category, Points: make([]Point, len(series.Points))}
	for i, p := range series.Points {
		out.Points[i] = Point{Date: p.Date.Format(time.RFC3339), Value: p.Value.String()}
	}
	if series.Baseline != nil {
		out.Baseline = &Point{
			Date:  series.Baseline.Date.Format(time.RFC3339),
			Value: series.Baseline.Value.String(),
		}
	}
	if series.PercentChange != nil {
		out.PercentChange = series.PercentChange.String()
	}
	return &GetHistoryOutput{Body: out}, nil
}

func parseGetHistoryInput(input *GetHistoryInput) (uuid.UUID, service.HistoryFilter, error) {
	var filter service.HistoryFilter

	userID, err := uuid.FromString(input.UserID)
	if err != nil {
		return uuid.Nil, filter, huma.NewError(http.StatusBadRequest, "invalid userID", err)
	}

	filter.Category = input.Category
	filter.Gross = input.Gross

	if input.From != "" {
		if filter.From, err = time.Parse(time.RFC3339, input.From); err != nil {
			return uuid.Nil, filter, huma.NewError(http.StatusBadRequest, "invalid from", err)
		}
	}
	if input.To != "" {
		if filter.To, err = time.Parse(time.RFC3339, input.To); err != nil {
			return uuid.Nil, filter, huma.NewError(http.StatusBadRequest, "invalid to", err)
		}
	}
	if input.BaselineDate != "" {
		if filter.BaselineDate, err = time.Parse(time.RFC3339, input.BaselineDate); err != nil {
			return uuid.Nil, filter, huma.NewError(http.StatusBadRequest, "invalid baselineDate", err)
		}
	}

	return userID, filter, nil
}
