package api

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/networth-server/internal/handlers/v1/dashboard"
	"github.com/carson-networks/networth-server/internal/handlers/v1/history"
	"github.com/carson-networks/networth-server/internal/handlers/v1/status"
	"github.com/carson-networks/networth-server/internal/handlers/v1/sync"
	"github.com/carson-networks/networth-server/internal/logging"
	"github.com/carson-networks/networth-server/internal/scheduler"
	"github.com/carson-networks/networth-server/internal/service"
)

type Rest struct {
	Logger    *logrus.Logger
	Port      string
	Service   *service.Service
	Scheduler *scheduler.Scheduler
}

func (r *Rest) Serve() {
	mux := http.NewServeMux()

	humaAPI := humago.New(mux, huma.DefaultConfig("networth-server", "1.0.0"))
	dashboard.NewGetDashboardHandler(r.Service.Dashboard).Register(humaAPI)
	history.NewGetHistoryHandler(r.Service.History).Register(humaAPI)
	sync.NewHandler(r.Service.Sync).Register(humaAPI)

	statusHandler := status.NewHandler(r.Scheduler)
	mux.HandleFunc("/status", logging.LoggingWrapper("Status", r.Logger, statusHandler.Handler))

	server := http.Server{
		Addr:              ":" + r.Port,
		Handler:           mux,
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	r.Logger.Info("HttpServer.Serve.listening")
	err := server.ListenAndServe()
	if err != nil {
		r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
	}
	r.Logger.Info("HttpServer.Serve.shutting down")
}
