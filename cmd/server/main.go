package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"trip-planner-service/internal/adapters/cache"
	"trip-planner-service/internal/adapters/repositories"
	"trip-planner-service/internal/adapters/routing"
	"trip-planner-service/internal/adapters/trains"
	"trip-planner-service/internal/adapters/weather"
	"trip-planner-service/internal/api"
	"trip-planner-service/internal/config"
	"trip-planner-service/internal/platform/db"
	"trip-planner-service/internal/platform/obs"
	"trip-planner-service/internal/ports"
	"trip-planner-service/internal/services"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// main is the application composition root.
// It wires concrete adapters (SQL, Redis, ORS, SNCF, Open-Meteo) behind ports and starts the HTTP server.
func main() {
	dotenv := config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger, err := obs.NewLogger(obs.LogConfig{
		Level:    cfg.LogLevel,
		Format:   cfg.LogFormat,
		FilePath: cfg.LogFilePath,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	if !dotenv {
		logger.Info("no .env file found, using environment variables")
	}

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pricing, err := config.LoadPricing(cfg.PricingPath)
	if err != nil {
		return err
	}

	conn, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer conn.Close()

	// Initialize schema and seed the destination catalog on startup.
	if err := initAndSeed(ctx, conn, cfg.SeedPath); err != nil {
		return err
	}

	routeCache, geocodeCache, closeCache, err := openCaches(cfg, conn)
	if err != nil {
		return err
	}
	defer closeCache()

	routes, walking, err := routeProviders(cfg, routeCache, geocodeCache)
	if err != nil {
		return err
	}

	trainProvider, err := trainOffers(cfg, pricing)
	if err != nil {
		return err
	}

	forecast := weather.NewCachedProvider(weather.NewOpenMeteoProvider("", ""), time.Hour)
	catalog := repositories.NewSQLCatalogRepository(conn)

	router := api.NewRouter(api.Deps{
		Catalog: catalog,
		Sources: services.Sources{
			Catalog:             catalog,
			Trains:              trainProvider,
			Routes:              routes,
			Weather:             forecast,
			Walking:             walking,
			Destination:         cfg.Destination,
			DestinationPosition: cfg.DestinationPosition,
			CarCosts:            pricing.CarCosts,
		},
		Options: services.PlanOptions{PriceBands: pricing.PriceBands},
		Weather: forecast,
		RateLimit: api.RateLimit{
			RequestsPerSecond: cfg.RateLimitRPS,
			Burst:             cfg.RateLimitBurst,
		},
	})

	// Timeouts are tuned for cold-cache planning (external API latency).
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr), zap.String("destination", cfg.Destination))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// openDB prefers postgres when DATABASE_URL is set and falls back to a local sqlite file.
func openDB(cfg config.Config) (*sql.DB, error) {
	if cfg.DatabaseURL != "" {
		zap.L().Info("using postgres")
		return db.Open(cfg.DatabaseURL)
	}

	zap.L().Info("using sqlite", zap.String("path", cfg.DBPath))
	return db.OpenSQLite(cfg.DBPath)
}

func initAndSeed(ctx context.Context, conn *sql.DB, seedPath string) error {
	if err := repositories.InitSchema(ctx, conn); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if err := repositories.SeedFromJSON(ctx, conn, seedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	return nil
}

// openCaches uses Redis when REDIS_URL is set, otherwise the SQL cache tables.
func openCaches(cfg config.Config, conn *sql.DB) (ports.RouteCache, ports.GeocodeCache, func(), error) {
	if cfg.RedisURL == "" {
		return cache.NewSQLRouteCache(conn, cfg.CacheTTL), cache.NewSQLGeocodeCache(conn, cfg.CacheTTL), func() {}, nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open caches: parse redis url: %w", err)
	}

	rdb := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, nil, nil, fmt.Errorf("open caches: ping redis: %w", err)
	}

	zap.L().Info("using redis caches", zap.String("addr", opts.Addr))
	rc := cache.NewRedisCache(rdb, cfg.CacheTTL)
	return rc.Routes(), rc.Geocodes(), func() { rdb.Close() }, nil
}

// routeProviders returns the driving provider and, when enabled, a walking one.
// Without an ORS key a fixed table of origins is served and walking legs fall
// back to catalog positions.
func routeProviders(cfg config.Config, routes ports.RouteCache, geocodes ports.GeocodeCache) (ports.DistanceProvider, ports.DistanceProvider, error) {
	if cfg.ORSAPIKey == "" {
		zap.L().Warn("ORS_API_KEY not set, using fixed driving distances")
		return routing.NewMockDistanceProvider(routing.Symmetric(fallbackRoutes(cfg.Destination))), nil, nil
	}

	driving, err := routing.NewORSProvider(cfg.ORSAPIKey,
		routing.WithCountry(cfg.CountryCode),
		routing.WithCaches(routes, geocodes),
	)
	if err != nil {
		return nil, nil, err
	}

	if !cfg.ORSWalkingRoutes {
		return driving, nil, nil
	}

	walking, err := routing.NewORSProvider(cfg.ORSAPIKey,
		routing.WithProfile(routing.ProfileWalking),
		routing.WithCountry(cfg.CountryCode),
		routing.WithCaches(routes, geocodes),
	)
	if err != nil {
		return nil, nil, err
	}
	return driving, walking, nil
}

func fallbackRoutes(destination string) []routing.MockPair {
	return []routing.MockPair{
		{From: "Paris", To: destination, Meters: 225000, Seconds: 8100},
		{From: "Brussels", To: destination, Meters: 115000, Seconds: 4800},
		{From: "Amsterdam", To: destination, Meters: 320000, Seconds: 11400},
		{From: "Rouen", To: destination, Meters: 255000, Seconds: 9600},
	}
}

func trainOffers(cfg config.Config, pricing config.Pricing) (ports.TrainOfferProvider, error) {
	if cfg.SNCFAPIKey == "" {
		zap.L().Warn("SNCF_API_KEY not set, using static train fares")
		return trains.NewStaticProvider(pricing.TrainFares, pricing.TrainBookingFee), nil
	}
	return trains.NewSNCFProvider(cfg.SNCFAPIKey, "", pricing.TrainBookingFee)
}
