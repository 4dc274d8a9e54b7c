package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/KretovDmitry/fallback-shortener/internal/config"
	"github.com/KretovDmitry/fallback-shortener/internal/handler"
	"github.com/KretovDmitry/fallback-shortener/internal/logger"
	"github.com/KretovDmitry/fallback-shortener/internal/metrics"
	"github.com/KretovDmitry/fallback-shortener/internal/reconcile"
	"github.com/KretovDmitry/fallback-shortener/internal/repository/filestore"
	"github.com/KretovDmitry/fallback-shortener/internal/repository/memstore"
	"github.com/KretovDmitry/fallback-shortener/internal/repository/postgres"
	"github.com/KretovDmitry/fallback-shortener/internal/shortcode"
	"github.com/KretovDmitry/fallback-shortener/internal/shortener"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/handlers"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/crypto/acme/autocert"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// Server run context.
	serverCtx, serverStopCtx := context.WithCancel(context.Background())
	defer serverStopCtx()

	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logger.New(cfg)
	if err != nil {
		return fmt.Errorf("new logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	db, err := postgres.NewURLRepository(cfg, logger)
	if err != nil {
		return fmt.Errorf("new postgres repository: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Errorf("close database: %v", err)
		}
	}()

	files, err := filestore.NewFileStore(cfg, logger)
	if err != nil {
		return fmt.Errorf("new file store: %w", err)
	}

	// Build the working mapping before accepting requests.
	reconciler, err := reconcile.New(db, files, logger)
	if err != nil {
		return fmt.Errorf("new reconciler: %w", err)
	}
	mappings, connected, err := reconciler.Run(serverCtx)
	if err != nil {
		logger.Errorf("reconcile: %v", err)
	}

	urls := memstore.NewURLRepository()
	urls.Load(mappings)
	logger.With(serverCtx, "links", urls.Len(), "database", connected).
		Info("working mapping is ready")

	service, err := shortener.New(db, files, urls,
		shortcode.NewReserved(shortcode.DefaultReservedWords...), cfg, m, logger)
	if err != nil {
		return fmt.Errorf("new service: %w", err)
	}
	defer service.Stop()

	h, err := handler.New(service, cfg, reg, logger, buildVersion)
	if err != nil {
		return fmt.Errorf("new handler: %w", err)
	}

	hs := &http.Server{
		Addr: cfg.Server.RunAddress.String(),
		Handler: handlers.CORS(
			handlers.AllowedOrigins([]string{"*"}),
			handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
			handlers.AllowedHeaders([]string{"Content-Type", "Content-Encoding", "X-Request-ID"}),
		)(h.Register(chi.NewRouter())),
		ReadHeaderTimeout: cfg.Server.Timeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	// Graceful shutdown.
	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGHUP, syscall.SIGINT,
			syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)

		select {
		case s := <-sig:
			logger.With(serverCtx, "signal", s.String()).
				Infof("Shutting down server with %s timeout",
					cfg.Server.ShutdownTimeout)
		case <-serverCtx.Done():
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := hs.Shutdown(ctx); err != nil {
			logger.Errorf("graceful shutdown failed: %s", err)
		}
	}()

	logger.Infof("Server has started: %s", cfg.Server.RunAddress)
	logger.Infof("Return address: %s", cfg.Server.BaseURL)
	switch cfg.Server.TLSEnabled {
	case true:
		cm := &autocert.Manager{
			Cache:  autocert.DirCache("cache/certs"),
			Prompt: autocert.AcceptTOS,
		}
		hs.TLSConfig = cm.TLSConfig()
		logger.Info("The server is running over the SSL protocol")
		if err = hs.ListenAndServeTLS("", ""); err != nil &&
			!errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("run server failed: %w", err)
		}
	default:
		if err = hs.ListenAndServe(); err != nil &&
			!errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("run server failed: %w", err)
		}
	}

	// Wait for the in-flight requests to be finished.
	<-shutdownDone

	return nil
}

func printBuildInfo() {
	if buildVersion == "" {
		fmt.Println("Build version: N/A")
	} else {
		fmt.Printf("Build version: %s\n", buildVersion)
	}
	if buildDate == "" {
		fmt.Println("Build date: N/A")
	} else {
		fmt.Printf("Build date: %s\n", buildDate)
	}
	if buildCommit == "" {
		fmt.Println("Build commit: N/A")
	} else {
		fmt.Printf("Build commit: %s\n", buildCommit)
	}
}
