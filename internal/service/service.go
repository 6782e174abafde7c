package service

import (
	"github.com/carson-networks/networth-server/internal/history"
	"github.com/carson-networks/networth-server/internal/networth"
	"github.com/carson-networks/networth-server/internal/refresh"
	"github.com/carson-networks/networth-server/internal/storage"
)

// Service holds all business logic services.
type Service struct {
	Dashboard *DashboardService
	History   *HistoryService
	Sync      *SyncService
}

// NewService creates a new Service wired to the engines.
func NewService(store *storage.Storage, engine *networth.Engine, reader *history.Reader, orchestrator *refresh.Orchestrator) *Service {
	return &Service{
		Dashboard: NewDashboardService(store, engine),
		History:   NewHistoryService(reader),
		Sync:      NewSyncService(orchestrator),
	}
}
