package service

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/networth-server/internal/refresh"
)

// SyncService exposes manual refresh triggers. Both calls are
// synchronous: the caller gets the refresh outcome, not an enqueue
// acknowledgement.
type SyncService struct {
	orchestrator *refresh.Orchestrator
}

// NewSyncService creates a new SyncService.
func NewSyncService(orchestrator *refresh.Orchestrator) *SyncService {
	return &SyncService{orchestrator: orchestrator}
}

// SyncAccount refreshes one provider-linked account.
func (s *SyncService) SyncAccount(ctx context.Context, accountID uuid.UUID) error {
	return s.orchestrator.RefreshAccount(ctx, accountID)
}

// SyncConnection refreshes all provider accounts of one user.
func (s *SyncService) SyncConnection(ctx context.Context, userID uuid.UUID) error {
	return s.orchestrator.RefreshConnection(ctx, userID)
}
