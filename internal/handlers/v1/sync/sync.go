// Package sync exposes the manual refresh triggers. Both endpoints run
// the refresh synchronously and report its outcome.
package sync

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
)

// syncer is the service surface the handlers need.
type syncer interface {
	SyncAccount(ctx context.Context, accountID uuid.UUID) error
	SyncConnection(ctx context.Context, userID uuid.UUID) error
}

// SyncOutput acknowledges a completed manual refresh.
type SyncOutput struct {
	Body struct {
		Status string `json:"status" doc:"Always ok on success"`
	}
}

// SyncAccountInput is the Huma input for refreshing one account.
type SyncAccountInput struct {
	AccountID string `path:"accountID" format:"uuid" doc:"Account UUID"`
}

// SyncConnectionInput is the Huma input for refreshing one user's
// connection.
type SyncConnectionInput struct {
	UserID string `path:"userID" format:"uuid" doc:"User UUID"`
}

// Handler handles the POST /v1/sync endpoints.
type Handler struct {
	Service syncer
}

// NewHandler creates a new sync Handler.
func NewHandler(svc syncer) *Handler {
	return &Handler{Service: svc}
}

// Register registers both sync endpoints with the Huma API.
func (h *Handler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "sync-account",
		Method:      http.MethodPost,
		Path:        "/v1/sync/account/{accountID}",
		Summary:     "Sync account",
		Description: "Refreshes one provider-linked account.",
		Tags:        []string{"Sync"},
	}, h.handleAccount)
	huma.Register(api, huma.Operation{
		OperationID: "sync-connection",
		Method:      http.MethodPost,
		Path:        "/v1/sync/connection/{userID}",
		Summary:     "Sync connection",
		Description: "Refreshes every provider account of one user.",
		Tags:        []string{"Sync"},
	}, h.handleConnection)
}

func (h *Handler) handleAccount(ctx context.Context, input *SyncAccountInput) (*SyncOutput, error) {
	accountID, err := uuid.FromString(input.AccountID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid accountID", err)
	}
	if err := h.Service.SyncAccount(ctx, accountID); err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to sync account", err)
	}
	return ok(), nil
}

func (h *Handler) handleConnection(ctx context.Context, input *SyncConnectionInput) (*SyncOutput, error) {
	userID, err := uuid.FromString(input.UserID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid userID", err)
	}
	if err := h.Service.SyncConnection(ctx, userID); err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to sync connection", err)
	}
	return ok(), nil
}

func ok() *SyncOutput {
	out := &SyncOutput{}
	out.Body.Status = "ok"
	return out
}
