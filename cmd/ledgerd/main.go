package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/paytrack/ledger-gateway/internal/config"
	"github.com/paytrack/ledger-gateway/internal/repository"
	"github.com/paytrack/ledger-gateway/internal/services"
	xhttp "github.com/paytrack/ledger-gateway/pkg/http"
	"github.com/paytrack/ledger-gateway/pkg/logger"
	"github.com/paytrack/ledger-gateway/pkg/sqlite"
	"github.com/paytrack/ledger-gateway/pkg/worker"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	err := config.Load(argContainsEnvPath())
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return
	}
	logger.Info("starting ledgerd", "version", version, "commit", commit, "built", date)

	storeDebug := false
	if config.Get().AppEnv == "dev" {
		storeDebug = true
	}
	db, err := sqlite.Open(sqlite.Config{Path: config.Get().DatabasePath}, storeDebug)
	if err != nil {
		logger.Error("failed opening store", "error", err)
		return
	}
	defer db.Close()

	logRepo := repository.NewActionLogRepository(db)
	retention := services.NewRetentionService(logRepo, config.Get().LogRetentionDays)

	// Sweeps run on a single worker: the store serializes writers anyway
	// and overlapping sweeps would only contend.
	pool := worker.NewManager(8, 1, nil)
	pool.SetWorker(func(workerIndex int, job interface{}) {
		if _, err := retention.Sweep(context.Background()); err != nil {
			logger.Error("scheduled sweep failed", "error", err)
		}
	})
	go func() {
		if err := pool.Start(); err != nil {
			logger.Info("sweep workers stopped", "reason", err)
		}
	}()

	ticker := time.NewTicker(config.Get().SweepInterval)
	defer ticker.Stop()
	go func() {
		pool.Enqueue(struct{}{})
		for range ticker.C {
			pool.Enqueue(struct{}{})
		}
	}()

	s := xhttp.NewServer()
	s.Use(xhttp.RequestLoggerMiddleware)
	s.Use(xhttp.RecoverMiddleware)
	registerOpsRoutes(s.Router, db)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.ListenAndServe(config.Get().OpsListenAddr); err != nil {
			logger.Error("error in running ops server", "error", err)
		}
	}()

	<-c
	s.Shutdown()
	pool.Exit()
}

func argContainsEnvPath() string {
	for _, v := range os.Args {
		if strings.Contains(v, "--env=") {
			s := strings.Split(v, "=")
			if _, err := os.Open(s[1]); err != nil {
				logger.Error("failed to open the passed env file, got error" + err.Error())
				return ""
			}
			return s[1]
		}
	}
	return ""
}
