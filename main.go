package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/networth-server/api"
	"github.com/carson-networks/networth-server/internal/config"
	"github.com/carson-networks/networth-server/internal/history"
	"github.com/carson-networks/networth-server/internal/logging"
	"github.com/carson-networks/networth-server/internal/networth"
	"github.com/carson-networks/networth-server/internal/operator"
	"github.com/carson-networks/networth-server/internal/provider"
	"github.com/carson-networks/networth-server/internal/refresh"
	"github.com/carson-networks/networth-server/internal/scheduler"
	"github.com/carson-networks/networth-server/internal/service"
	"github.com/carson-networks/networth-server/internal/storage"
)

func main() {
	logger := logging.SetupLogging()
	logrus.Info("networth-server starting")

	envConfig, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("config.Load")
		return
	}

	dbStorage := storage.NewStorage(envConfig)

	delegator := operator.NewOperatorDelegator(operator.NewStorageStore(dbStorage), envConfig.WriteWorkers)
	delegator.Start()
	defer delegator.Stop()

	providerClient := provider.NewHTTPClient(envConfig.ProviderBaseURL, envConfig.ProviderTimeout)

	engine := networth.NewEngine(dbStorage, logger, envConfig.DefaultCurrency)
	historyReader := history.NewReader(dbStorage)
	orchestrator := refresh.NewOrchestrator(dbStorage, providerClient, delegator, logger, envConfig.TransactionFetchLimit)

	sched := scheduler.NewScheduler(logger)
	sched.Register(scheduler.Job{
		Name:  "snapshot",
		Every: envConfig.SnapshotInterval,
		Run: func(ctx context.Context) (string, error) {
			report, err := engine.Run(ctx)
			return report.String(), err
		},
	})
	sched.Register(scheduler.Job{
		Name:  "refresh",
		Every: envConfig.RefreshInterval,
		Run: func(ctx context.Context) (string, error) {
			summary, err := orchestrator.Run(ctx)
			return summary.String(), err
		},
	})
	sched.Start()
	defer sched.Stop()

	svc := service.NewService(dbStorage, engine, historyReader, orchestrator)

	go func() {
		httpRest := api.Rest{
			Logger:    logger,
			Port:      envConfig.Port,
			Service:   svc,
			Scheduler: sched,
		}
		httpRest.Serve()
	}()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	<-signals
	logrus.Info("networth-server shutting down")
}
