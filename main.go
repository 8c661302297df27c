package main

import (
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"sales-hierarchy/internal/config"
	"sales-hierarchy/internal/handler"
	"sales-hierarchy/internal/logging"
	"sales-hierarchy/internal/metrics"
	"sales-hierarchy/internal/store"
)

func main() {
	cfg, err := config.NewLoader().WithConfigPath(os.Getenv("SALES_CONFIG")).Load()
	if err != nil {
		// no logger yet
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger := logging.New(cfg.Log)
	defer logger.Sync()

	h := handler.New(logger, store.New(cfg.Store.MaxHierarchies), metrics.NewCollector("sales"))
	server := &fasthttp.Server{
		Handler:            h.Handle,
		Name:               "sales-hierarchy",
		ReadTimeout:        cfg.Server.ReadTimeout,
		WriteTimeout:       cfg.Server.WriteTimeout,
		MaxRequestBodySize: cfg.Server.MaxBodySize,
	}

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		logger.Info("shutting down")
		if err := server.Shutdown(); err != nil {
			logger.Error("shutdown failed", zap.Error(err))
		}
	}()

	addr := ":" + strconv.Itoa(cfg.Server.Port)
	logger.Info("sales hierarchy engine starting", zap.String("addr", addr))
	if err := server.ListenAndServe(addr); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}
