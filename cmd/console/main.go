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
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rogerio-castellano/product-console/internal/auth"
	"github.com/rogerio-castellano/product-console/internal/client"
	"github.com/rogerio-castellano/product-console/internal/config"
	"github.com/rogerio-castellano/product-console/internal/console"
	api "github.com/rogerio-castellano/product-console/internal/http"
	"github.com/rogerio-castellano/product-console/internal/http/handlers"
	rl "github.com/rogerio-castellano/product-console/internal/http/rate_limiter"
	"github.com/rogerio-castellano/product-console/internal/logger"
	"github.com/rogerio-castellano/product-console/internal/session"
	"github.com/urfave/cli"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	app := cli.NewApp()
	app.Name = "console"
	app.Usage = "web console for the products REST API"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:   "config",
			Usage:  "config file; console.yaml is searched for when empty",
			EnvVar: "PRODUCT_CONSOLE_CONFIG",
		},
	}
	app.Action = serve
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFile(path)
}

func serve(c *cli.Context) error {
	cfg, err := loadConfig(c.String("config"))
	if err != nil {
		return fmt.Errorf("could not load config: %w", err)
	}

	appLogger, err := logger.New(logger.Config{Level: cfg.Logger.Level, Development: cfg.Logger.Development})
	if err != nil {
		return fmt.Errorf("could not build logger: %w", err)
	}
	defer appLogger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewGoCollector(), prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))

	products, err := client.New(cfg.API.BaseURL,
		client.WithTimeout(cfg.API.Timeout),
		client.WithRateLimit(cfg.API.RateLimit, cfg.API.Burst),
		client.WithMetrics(client.NewMetrics(reg)),
		client.WithLogger(appLogger.Named("client")),
	)
	if err != nil {
		return fmt.Errorf("could not create products client: %w", err)
	}

	store, closeStore, err := newStore(ctx, cfg, appLogger)
	if err != nil {
		return fmt.Errorf("could not create session store: %w", err)
	}
	defer closeStore()

	secret := cfg.Session.Secret
	if secret == "" {
		// sessions will not survive a restart
		secret = uuid.NewString()
		appLogger.Warn("session.secret is not set, using a random one")
	}
	signer, err := auth.NewSigner(secret, cfg.Session.TTL)
	if err != nil {
		return fmt.Errorf("could not create session signer: %w", err)
	}

	limiter := rl.New(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	go limiter.StartVisitorCleanupLoop(ctx)

	controller := console.New(products, appLogger.Named("console"))
	srv, err := handlers.NewServer(controller, store, cfg.Session.TTL, appLogger)
	if err != nil {
		return fmt.Errorf("could not create console server: %w", err)
	}

	router := api.NewRouter(api.RouterConfig{
		Server:     srv,
		Signer:     signer,
		CookieName: cfg.Session.CookieName,
		SessionTTL: cfg.Session.TTL,
		Limiter:    limiter,
		Metrics:    promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		Logger:     appLogger,
	})

	httpServer := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		appLogger.Info("Console running",
			zap.String("addr", cfg.Server.Addr),
			zap.String("api", cfg.API.BaseURL),
			zap.String("session_store", cfg.Session.Store))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}
	appLogger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Graceful shutdown failed", zap.Error(err))
	}
	return nil
}

func newStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (session.Store, func(), error) {
	if cfg.Session.Store == "redis" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			rdb.Close()
			return nil, nil, err
		}
		logger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))
		return session.NewRedisStore(rdb), func() { rdb.Close() }, nil
	}

	store := session.NewMemoryStore()
	go store.StartSweeper(ctx, time.Minute)
	return store, func() {}, nil
}
