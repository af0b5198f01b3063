package app

import (
	"fmt"
	"net/http"

	"github.com/realbreda/clubsite/internal/config"
	"github.com/realbreda/clubsite/internal/infrastructure/account/gotrue"
	cacherepo "github.com/realbreda/clubsite/internal/infrastructure/repository/cache"
	"github.com/realbreda/clubsite/internal/interfaces/httpapi"
	basecache "github.com/realbreda/clubsite/internal/platform/cache"
	"github.com/realbreda/clubsite/internal/platform/logging"
	"github.com/realbreda/clubsite/internal/platform/resilience"
	"github.com/realbreda/clubsite/internal/usecase"
)

// NewHTTPServer wires repositories, services and the HTTP router into a
// ready-to-run server. The returned cleanup releases the database handle and
// the session notification pool and must be called after shutdown.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, func(), error) {
	if logger == nil {
		logger = logging.Default()
	}

	playerRepo, statsRepo, userRepo, closeDB, err := buildRepositories(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		playerRepo = cacherepo.NewPlayerRepository(playerRepo, store)
		statsRepo = cacherepo.NewPlayerStatsRepository(statsRepo, store)
		userRepo = cacherepo.NewUserRepository(userRepo, store)
		logger.Info("repository cache enabled", "ttl", cfg.CacheTTL.String())
	}

	rosterSvc := usecase.NewRosterService(playerRepo, statsRepo, logger)
	rosterSvc.SetFetchTimeout(cfg.BackendTimeout)
	statsSvc := usecase.NewStatsService(rosterSvc)

	if cfg.AuthBaseURL == "" {
		logger.Warn("AUTH_BASE_URL not configured, auth endpoints will report the auth service unavailable")
	}
	authClient := gotrue.NewClient(gotrue.ClientConfig{
		BaseURL: cfg.AuthBaseURL,
		AnonKey: cfg.AuthAnonKey,
		Timeout: cfg.AuthTimeout,
		Logger:  logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.AuthCircuitEnabled,
			FailureThreshold: cfg.AuthCircuitFailureCount,
			OpenTimeout:      cfg.AuthCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.AuthCircuitHalfOpenReq,
		},
	})

	sessionSvc, err := usecase.NewSessionService(authClient, userRepo, logger)
	if err != nil {
		if closeDB != nil {
			closeDB()
		}
		return nil, nil, fmt.Errorf("build session service: %w", err)
	}

	handler := httpapi.NewHandler(rosterSvc, statsSvc, sessionSvc, logger)
	router := httpapi.NewRouter(handler, sessionSvc, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		if closeDB != nil {
			closeDB()
		}
		sessionSvc.Close()
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	cleanup := func() {
		sessionSvc.Close()
		if closeDB != nil {
			closeDB()
		}
	}

	return server, cleanup, nil
}
