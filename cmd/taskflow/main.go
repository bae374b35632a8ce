package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"taskflow/internal/auth"
	"taskflow/internal/server"
	"taskflow/internal/storage/sqlite"
	"taskflow/internal/util"
)

func main() {
	addrFlag := flag.String("addr", util.EnvOrDefault("TASKFLOW_ADDR", ":8080"), "HTTP listen address")
	dbFlag := flag.String("db", util.EnvOrDefault("TASKFLOW_DB_PATH", "data/taskflow.db"), "Path to sqlite database file")
	secretFlag := flag.String("jwt-secret", util.EnvOrDefault("TASKFLOW_JWT_SECRET", ""), "Secret used to sign access tokens")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	secret := *secretFlag
	if secret == "" {
		secret = "taskflow-dev-secret"
		logger.Warn("TASKFLOW_JWT_SECRET not set, using insecure development secret")
	}

	store, err := sqlite.Open(*dbFlag, logger)
	if err != nil {
		logger.Error("unable to open database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer store.Close()

	srv := server.New(store, auth.NewIssuer(secret), logger)

	httpServer := &http.Server{
		Addr:    *addrFlag,
		Handler: srv.Engine(),
	}

	go func() {
		logger.Info("starting server", slog.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped unexpectedly", slog.String("error", err.Error()))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("failed to shutdown server", slog.String("error", err.Error()))
	}

	logger.Info("server stopped")
}
