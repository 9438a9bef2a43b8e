// Package main starts the AssetDesk dashboard: it loads configuration,
// sets up logging, the session store, the asset API client and the HTTP
// server, and shuts down gracefully on SIGINT or SIGTERM.
package main

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	nethttp "net/http"

	"go.uber.org/zap"

	"github.com/atinyakov/AssetDesk/internal/client/api"
	"github.com/atinyakov/AssetDesk/internal/config"
	"github.com/atinyakov/AssetDesk/internal/db"
	"github.com/atinyakov/AssetDesk/internal/logger"
	"github.com/atinyakov/AssetDesk/internal/metrics"
	"github.com/atinyakov/AssetDesk/internal/middleware"
	"github.com/atinyakov/AssetDesk/internal/repository"
	"github.com/atinyakov/AssetDesk/internal/server/handler/http"
	"github.com/atinyakov/AssetDesk/internal/service"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

// sessionStore is what the dashboard needs from a session repository.
type sessionStore interface {
	service.SessionRepository
	db.Purger
}

func main() {
	options := config.Parse()

	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init(options.LogLevel); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var sessions sessionStore
	if options.DatabaseDSN != "" {
		postgresDB, err := db.InitPostgres(options.DatabaseDSN)
		if err != nil {
			zapLogger.Fatal("cannot init database", zap.Error(err))
		}
		defer postgresDB.Close()
		sessions = repository.NewPostgresSessionRepository(postgresDB)
	} else {
		zapLogger.Info("no database configured, keeping sessions in memory")
		sessions = repository.NewMemorySessionRepository()
	}

	httpClient, err := api.NewHTTPClient(options.APICAFile)
	if err != nil {
		zapLogger.Fatal("failed to build asset API client", zap.Error(err))
	}
	m := metrics.New()
	client := api.New(options.APIBaseURL,
		api.WithHTTPClient(httpClient),
		api.WithLogger(zapLogger),
		api.WithObserver(m),
	)

	workspaces := service.NewWorkspaces(options.SessionTTL)
	limiter := middleware.NewRateLimiter(options.LoginRate, options.LoginBurst)

	db.StartExpiryCleaner(ctx, time.Minute, zapLogger,
		db.Target{Name: "sessions", Purger: sessions},
		db.Target{Name: "workspaces", Purger: workspaces},
		db.Target{Name: "login limiter", Purger: limiter},
	)

	views, err := http.NewRenderer()
	if err != nil {
		zapLogger.Fatal("failed to parse templates", zap.Error(err))
	}

	router := http.NewRouter(http.Deps{
		Sessions:     service.NewSessions(sessions, client, options.SessionTTL, zapLogger),
		Workspaces:   workspaces,
		Collections:  service.NewCollections(client, zapLogger),
		Stats:        client,
		Mine:         client.Assets(),
		Users:        client.Users(),
		Views:        views,
		Limiter:      limiter,
		Metrics:      m,
		Log:          zapLogger,
		CookieSecure: options.CookieSecure,
		TrustProxy:   options.TrustProxy,
	})

	server := &nethttp.Server{
		Addr:              options.Address,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	drained := make(chan struct{})
	go func() {
		defer close(drained)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			zapLogger.Error("graceful shutdown failed", zap.Error(err))
		}
	}()

	tlsEnabled := options.TLSCert != "" && options.TLSKey != ""
	zapLogger.Info("starting dashboard",
		zap.String("addr", options.Address),
		zap.String("api", options.APIBaseURL),
		zap.Bool("tls", tlsEnabled),
	)
	if tlsEnabled {
		err = server.ListenAndServeTLS(options.TLSCert, options.TLSKey)
	} else {
		err = server.ListenAndServe()
	}
	if err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
		zapLogger.Fatal("server failed", zap.Error(err))
	}
	// Shutdown returns once in-flight requests finish or its timeout hits.
	<-drained
	zapLogger.Info("dashboard stopped")
}
