package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	_ "github.com/comitanigiacomo/kanso-history/docs"
	"github.com/comitanigiacomo/kanso-history/internal/adapters/cache"
	"github.com/comitanigiacomo/kanso-history/internal/adapters/color"
	adapterHTTP "github.com/comitanigiacomo/kanso-history/internal/adapters/handler/http"
	"github.com/comitanigiacomo/kanso-history/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/kanso-history/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-history/internal/bootstrap"
	"github.com/comitanigiacomo/kanso-history/internal/config"
	"github.com/comitanigiacomo/kanso-history/internal/core/domain"
	"github.com/comitanigiacomo/kanso-history/internal/core/services"
	"github.com/comitanigiacomo/kanso-history/internal/core/workers"
)

type app struct {
	router  *gin.Engine
	closers []func() error
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			log.Printf("[ERROR] Shutdown: %v", err)
		}
	}
}

// newApp wires every component for cfg. Background work stops with ctx.
func newApp(ctx context.Context, cfg *config.Config, startTime time.Time) (*app, error) {
	a := &app{}

	backend, err := bootstrap.OpenBackend(ctx, cfg)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, backend.Close)

	registry := services.NewHistoryRegistry(backend.StorageFor, color.NewRandomAssigner())

	streakWorker := workers.NewStreakWorker(registry)
	registry.Observe(streakWorker.HandleEvent)
	streakWorker.Start(ctx)

	deps := adapterHTTP.RouterDependencies{
		HistoryHandler: adapterHTTP.NewHistoryHandler(registry),
		StatsHandler:   adapterHTTP.NewStatsHandler(services.NewStatsService(registry, streakWorker)),
		HealthChecks:   make(map[string]adapterHTTP.HealthCheck),
		StartTime:      startTime,
	}

	if backend.DB != nil {
		deps.HealthChecks["database"] = backend.DB.PingContext
	}
	if backend.Redis != nil {
		deps.HealthChecks["redis"] = func(ctx context.Context) error {
			return backend.Redis.Ping(ctx).Err()
		}
	}

	if cfg.SingleOwner() {
		log.Printf("[AUTH] JWT_SECRET not set, every request belongs to %q", middleware.LocalOwnerID)
	} else {
		users, err := newUserRepository(ctx, cfg, backend, a)
		if err != nil {
			a.Close()
			return nil, err
		}
		tokens := services.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenTTL, users)
		deps.Tokens = tokens
		deps.AuthHandler = adapterHTTP.NewAuthHandler(services.NewAuthService(users, tokens))
	}

	if cfg.RateLimit > 0 {
		rdb := backend.Redis
		if rdb == nil {
			rdb, err = cache.NewRedisClient(bootstrap.RedisOptions(cfg))
			if err != nil {
				log.Printf("[CACHE] Rate limiting disabled: %v", err)
			} else {
				a.closers = append(a.closers, rdb.Close)
			}
		}
		if rdb != nil {
			deps.RateLimiter = middleware.NewRateLimiter(rdb, cfg.RateLimit, cfg.RateWindow)
		}
	}

	a.router = adapterHTTP.NewRouter(deps)
	return a, nil
}

// newUserRepository keeps accounts in postgres whenever a database is
// configured, and in memory otherwise.
func newUserRepository(ctx context.Context, cfg *config.Config, backend *bootstrap.Backend, a *app) (domain.UserRepository, error) {
	db := backend.DB
	if db == nil && cfg.DBUser != "" {
		var err error
		db, err = bootstrap.ConnectPostgres(cfg)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, db.Close)
	}

	if db == nil {
		log.Println("[AUTH] No database configured, accounts live in memory only")
		return repository.NewInMemoryUserRepository(), nil
	}

	users := repository.NewPostgresUserRepository(db)
	if err := users.Migrate(ctx); err != nil {
		return nil, err
	}
	return users, nil
}

// @title                      Kanso History API
// @version                    1.0
// @description                Date-indexed habit history with completion tracking, datasets and statistics.
// @BasePath                   /api/v1
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
func main() {
	startTime := time.Now()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Critical: invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg, startTime)
	if err != nil {
		log.Fatalf("Critical: %v", err)
	}
	defer a.Close()

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      a.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Kanso History running on http://localhost:%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Critical server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Stop signal received. Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Forced shutdown error: %v", err)
	}

	log.Println("Server stopped gracefully.")
}
