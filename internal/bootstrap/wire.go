package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/ymatsuda/auth-service/internal/application/registration"
	"github.com/ymatsuda/auth-service/internal/config"
	"github.com/ymatsuda/auth-service/internal/infrastructure/db/postgres"
	"github.com/ymatsuda/auth-service/internal/infrastructure/memory"
	rabbitmq_pub "github.com/ymatsuda/auth-service/internal/infrastructure/messaging/rabbitmq"
	"github.com/ymatsuda/auth-service/internal/infrastructure/redis"
	"github.com/ymatsuda/auth-service/internal/infrastructure/security"
	"github.com/ymatsuda/auth-service/internal/logger"
	http_handlers "github.com/ymatsuda/auth-service/internal/transport/http/handlers"
	"github.com/ymatsuda/auth-service/internal/transport/http/middleware"
	"github.com/ymatsuda/auth-service/internal/transport/http/response"
	"github.com/ymatsuda/auth-service/internal/transport/http/router"
)

/*
========================
 Public entry (prod)
========================
*/

func NewServer() (*http.Server, func(), error) {
	return newServer(defaultDeps())
}

// NewServerWithDeps allows injecting dependencies for testing
func NewServerWithDeps(deps Deps) (*http.Server, func(), error) {
	return newServer(deps)
}

/*
========================
 Dependency injection
========================
*/

type Deps struct {
	LoadConfig func() (*config.Config, error)

	NewDB func(addr string, debug bool) (DBCloser, error)

	Migrate func(dbURL string) error

	NewRedis func(addr, password string, db int) RedisClient

	NewPublisher func(rabbitURL string) (registration.EventPublisher, error)

	NewRouter func(router.Deps) (http.Handler, error)
}

type DBCloser interface {
	Close() error
}

type RedisClient interface {
	Ping(ctx context.Context) error
	Close() error
}

/*
========================
 Core bootstrap logic
========================
*/

func newServer(deps Deps) (*http.Server, func(), error) {
	// 0) config
	cfg, err := deps.LoadConfig()
	if err != nil {
		return nil, nil, err
	}

	// 1) db
	db, err := deps.NewDB(cfg.DBAddr, cfg.DBDebug)
	if err != nil {
		return nil, nil, err
	}

	cleanupFns := []func(){
		func() { _ = db.Close() },
	}

	sqlDB, ok := db.(*sql.DB)
	if !ok {
		runCleanup(cleanupFns)
		return nil, nil, errors.New("bootstrap: NewDB did not return *sql.DB")
	}

	// 2) schema
	if deps.Migrate != nil {
		if err := deps.Migrate(cfg.DBAddr); err != nil {
			runCleanup(cleanupFns)
			return nil, nil, err
		}
	}

	// 3) user repo
	userRepo := postgres.NewUserRepo(sqlDB)

	// 4) redis (best-effort; registration throttling only)
	var redisCli RedisClient
	if deps.NewRedis != nil && cfg.RedisAddr != "" {
		c := deps.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if err := c.Ping(ctx); err != nil {
			logger.Logger.Warn().Err(err).Msg("redis unavailable; registration throttling disabled")
			_ = c.Close()
		} else {
			logger.Logger.Info().Msg("redis connected")
			redisCli = c
			cleanupFns = append(cleanupFns, func() { _ = c.Close() })
		}
	}

	// 5) publisher
	var pub registration.EventPublisher
	if deps.NewPublisher != nil && cfg.RabbitURL != "" {
		p, err := deps.NewPublisher(cfg.RabbitURL)
		if err != nil {
			if cfg.Env == "dev" {
				logger.Logger.Warn().Err(err).Msg("rabbitmq unavailable; using noop publisher")
				pub = memory.NewNoopPublisher()
			} else {
				runCleanup(cleanupFns)
				return nil, nil, err
			}
		} else {
			pub = p
		}
	} else {
		pub = memory.NewNoopPublisher()
	}

	if c, ok := pub.(interface{ Close() error }); ok {
		cleanupFns = append(cleanupFns, func() { _ = c.Close() })
	}

	// 6) security
	hasher := security.NewBcryptHasher(cfg.BcryptCost)

	// seed (dev only)
	if cfg.SeedDemoUsers {
		postgres.SeedUsers(context.Background(), userRepo, hasher)
	}

	// 7) service
	regSvc := registration.NewService(userRepo, hasher, pub)

	// 8) handlers + middleware
	authH := http_handlers.NewAuthHandler(regSvc)
	healthH := http_handlers.NewHealthHandler(sqlDB)

	// rate limit (fail-open)
	var registerMW func(http.Handler) http.Handler
	if redisCli != nil {
		if c, ok := redisCli.(*redis.Client); ok {
			registerMW = middleware.RateLimitFixedWindow(
				redis.NewFixedWindowLimiter(c),
				middleware.FixedWindowConfig{
					RouteKey: "auth.register",
					Limit:    cfg.RegisterRateLimit,
					Window:   cfg.RegisterRateWindow,
				},
				response.WriteError,
			)
		}
	}

	// 9) router
	mux, err := deps.NewRouter(router.Deps{
		Health:         healthH,
		Auth:           authH,
		RegisterRateMW: registerMW,
	})
	if err != nil {
		runCleanup(cleanupFns)
		return nil, nil, err
	}

	// 10) server
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      mux,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	cleanup := func() {
		runCleanup(cleanupFns)
	}

	return srv, cleanup, nil
}

/*
========================
 Default deps (prod)
========================
*/

func defaultDeps() Deps {
	return Deps{
		LoadConfig: config.Load,
		NewDB: func(addr string, debug bool) (DBCloser, error) {
			return config.NewDB(addr, debug)
		},
		Migrate: postgres.RunMigrations,
		NewRedis: func(addr, password string, db int) RedisClient {
			return redis.New(addr, password, db)
		},
		NewPublisher: func(url string) (registration.EventPublisher, error) {
			return rabbitmq_pub.NewPublisher(url)
		},
		NewRouter: func(d router.Deps) (http.Handler, error) {
			return router.New(d)
		},
	}
}

/*
========================
 helpers
========================
*/

func runCleanup(fns []func()) {
	for i := len(fns) - 1; i >= 0; i-- {
		fns[i]()
	}
}
