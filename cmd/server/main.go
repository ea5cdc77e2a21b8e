package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"tickerprovider/internal/config"
	"tickerprovider/internal/httpx"
	"tickerprovider/internal/ticker"
	"tickerprovider/internal/yahoo"
)

func main() {
	// Config
	cfgPath := os.Getenv("CONFIG_FILE")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		panic("config: " + err.Error())
	}

	log := newLogger(cfg.Logging.Level)
	defer func() { _ = log.Sync() }()

	httpClient := httpx.New(time.Duration(cfg.Yahoo.TimeoutSec) * time.Second)
	httpClient.UserAgent = cfg.Yahoo.UserAgent

	yc := yahoo.New(
		yahoo.WithBaseURL(cfg.Yahoo.BaseURL),
		yahoo.WithHTTPClient(httpClient.HTTP),
		yahoo.WithUserAgent(cfg.Yahoo.UserAgent),
	)

	svc := ticker.New(yc, log.Named("ticker"))
	s := &server{svc: svc, log: log.Named("http")}

	mux := http.NewServeMux()
	s.routes(mux)

	handler := requestLog(log.Named("http"))(
		recoverPanic(log)(
			limitConcurrency(int64(cfg.Server.MaxConcurrentRequests))(
				withJSONHeaders(limitBody(mux)),
			),
		),
	)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		// Bulk downloads stream for a while; the write timeout covers the
		// slowest acceptable full response, not a single write.
		WriteTimeout: time.Duration(4*cfg.Server.RequestTimeoutSec) * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server", zap.Error(err))
		}
	}()

	// graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

func newLogger(level string) *zap.Logger {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	log, err := zc.Build()
	if err != nil {
		panic("logger: " + err.Error())
	}
	return log
}
