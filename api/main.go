package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/rogerio-castellano/inventory-insights/internal/auth"
	"github.com/rogerio-castellano/inventory-insights/internal/config"
	"github.com/rogerio-castellano/inventory-insights/internal/db"
	"github.com/rogerio-castellano/inventory-insights/internal/gemini"
	"github.com/rogerio-castellano/inventory-insights/internal/http/handlers"
	rl "github.com/rogerio-castellano/inventory-insights/internal/http/rate_limiter"
	"github.com/rogerio-castellano/inventory-insights/internal/http/router"
	"github.com/rogerio-castellano/inventory-insights/internal/imagery"
	"github.com/rogerio-castellano/inventory-insights/internal/insight"
	"github.com/rogerio-castellano/inventory-insights/internal/models"
	"github.com/rogerio-castellano/inventory-insights/internal/notify"
	"github.com/rogerio-castellano/inventory-insights/internal/repo"
	"github.com/rogerio-castellano/inventory-insights/internal/seed"
	"github.com/rogerio-castellano/inventory-insights/internal/store"
	"github.com/rogerio-castellano/inventory-insights/pkg/logger"
)

const (
	refreshDebounce = 500 * time.Millisecond
	imageTimeout    = 60 * time.Second
)

// @title Inventory Insights API
// @version 1.0
// @description REST API for stock classification, hub transfers, AI insights and notifications.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Invalid configuration")
	}
	logger.SetLevel(cfg.App.LogLevel)
	auth.SetSecret(cfg.Auth.JWTSecret)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	products, transfers, suppliers, closeDB := openRepositories(ctx, cfg)
	defer closeDB()

	users, err := operatorRepository(cfg.Auth)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Could not create operator account")
	}

	var opts []store.Option
	opts = append(opts, store.WithScoring(cfg.Insights.Scoring))

	if cfg.Cache.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		})
		defer rdb.Close()

		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Log.Warn().Err(err).Str("addr", cfg.Cache.RedisAddr).Msg("Redis unavailable, notification feed stays in memory")
		} else {
			opts = append(opts, store.WithNotificationSink(notify.NewRedisFeed(rdb, notify.DefaultKey, cfg.Cache.NotificationMax)))
		}
	}

	var (
		online    insight.AnalysisProvider
		images    imagery.Generator
		refresher *insight.Refresher
	)
	if cfg.Insights.GeminiAPIKey != "" {
		client, err := gemini.NewClient(ctx, gemini.Config{
			APIKey:        cfg.Insights.GeminiAPIKey,
			AnalysisModel: cfg.Insights.AnalysisModel,
			ImageModel:    cfg.Insights.ImageModel,
		})
		if err != nil {
			logger.Log.Warn().Err(err).Msg("Gemini client unavailable, running offline")
		} else {
			online = client
			images = client
		}
	} else {
		logger.Log.Info().Msg("GEMINI_API_KEY not set, running offline")
	}
	modes := insight.NewModeSwitch(online, insight.HeuristicProvider{}, cfg.Insights.Offline)

	// The callback only fires after startup, once refresher has been assigned.
	var trigger func()
	opts = append(opts, store.OnProductsChanged(func() { trigger() }))

	inventory := store.New(products, transfers, opts...)
	refresher = insight.NewRefresher(inventory, modes, cfg.Insights.Timeout)
	trigger = refresher.Debounced(refreshDebounce)

	handlers.SetStore(inventory)
	handlers.SetUserRepo(users)
	handlers.SetSupplierRepo(suppliers)
	handlers.SetRefresher(refresher)
	handlers.SetModeSwitch(modes)
	handlers.SetEnricher(imagery.NewEnricher(inventory, images, imageTimeout))

	rl.Configure(cfg.Server.RateRPS, cfg.Server.RateBurst)
	go rl.StartVisitorCleanupLoop(ctx)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router.NewRouter(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	<-ctx.Done()
	logger.Log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error().Err(err).Msg("Server forced to shutdown")
	}
	logger.Log.Info().Msg("Server exiting")
}

// openRepositories returns Postgres repositories when DATABASE_URL is set and the
// seeded in-memory ones otherwise. Postgres suppliers come in with the seeded products.
func openRepositories(ctx context.Context, cfg *config.Config) (repo.ProductRepository, repo.TransferRepository, repo.SupplierRepository, func()) {
	if cfg.Database.URL == "" {
		logger.Log.Info().Msg("DATABASE_URL not set, using the in-memory catalogue")
		return repo.NewInMemoryProductRepository(seed.Products(cfg.App.SeedSales)...), repo.NewInMemoryTransferRepository(),
			repo.NewInMemorySupplierRepository(seed.Suppliers()...), func() {}
	}

	database, err := db.Connect(cfg.Database.URL)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Could not connect to database")
	}
	if err := db.Migrate(ctx, database); err != nil {
		logger.Log.Fatal().Err(err).Msg("Could not apply schema")
	}

	products := repo.NewPostgresProductRepository(database)
	if err := seedIfEmpty(products, cfg.App.SeedSales); err != nil {
		logger.Log.Fatal().Err(err).Msg("Could not seed catalogue")
	}
	return products, repo.NewPostgresTransferRepository(database), repo.NewPostgresSupplierRepository(database), func() { closeQuietly(database) }
}

func seedIfEmpty(products repo.ProductRepository, seedValue uint64) error {
	existing, err := products.GetAll()
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	for _, p := range seed.Products(seedValue) {
		if _, err := products.Create(p); err != nil {
			return err
		}
	}
	logger.Log.Info().Msg("Seeded empty database with the demo catalogue")
	return nil
}

func operatorRepository(cfg config.AuthConfig) (repo.UserRepository, error) {
	users := repo.NewInMemoryUserRepository()
	if cfg.AdminPassword == "" {
		logger.Log.Warn().Msg("ADMIN_PASSWORD not set, login is disabled")
		return users, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	if _, err := users.CreateUser(models.User{Username: cfg.AdminUsername, PasswordHash: string(hash), Role: "admin"}); err != nil {
		return nil, err
	}
	return users, nil
}

func closeQuietly(database *sql.DB) {
	if err := database.Close(); err != nil {
		logger.Log.Warn().Err(err).Msg("Closing database")
	}
}
