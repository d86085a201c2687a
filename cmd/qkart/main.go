package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/adi-0104/Qkart/internal/cache"
	"github.com/adi-0104/Qkart/internal/catalog"
	"github.com/adi-0104/Qkart/internal/config"
	"github.com/adi-0104/Qkart/internal/events"
	qhttp "github.com/adi-0104/Qkart/internal/http"
	"github.com/adi-0104/Qkart/internal/orders"
	"github.com/adi-0104/Qkart/internal/repository"
	"github.com/adi-0104/Qkart/internal/service"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})

	cfg := config.Load()
	log.Info().
		Str("port", cfg.HTTPPort).
		Str("mongo", cfg.MongoURI).
		Str("redis", cfg.RedisAddr).
		Str("catalog", cfg.CatalogDBPath).
		Msg("starting qkart backend")

	ctx := context.Background()

	// Document store
	mongoDB, err := repository.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	if err := repository.EnsureIndexes(ctx, mongoDB); err != nil {
		log.Fatal().Err(err).Msg("failed to create indexes")
	}
	cartRepo := repository.NewMongoCartRepository(mongoDB)
	userRepo := repository.NewMongoUserRepository(mongoDB)
	checkoutStore := repository.NewMongoCheckoutStore(mongoDB)

	// Cart cache
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	cartCache := cache.NewRedisCache(redisClient)

	// Product catalog
	catalogStore, err := catalog.Open(cfg.CatalogDBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open catalog database")
	}
	defer catalogStore.Close()
	if err := catalogStore.RunMigrations(cfg.CatalogMigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run catalog migrations")
	}
	cachedCatalog, err := catalog.NewCached(catalogStore, cfg.ProductCacheSize)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build catalog cache")
	}

	// Order history
	orderRepo, err := orders.NewRepository(&orders.Credentials{
		Host:     cfg.OrdersDBHost,
		Port:     cfg.OrdersDBPort,
		User:     cfg.OrdersDBUser,
		Password: cfg.OrdersDBPassword,
		DBName:   cfg.OrdersDBName,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to orders database")
	}
	defer orderRepo.Close()
	if err := orderRepo.RunMigrations(&orders.Credentials{MigrationsDirPath: cfg.OrdersMigrationsPath}); err != nil {
		log.Fatal().Err(err).Msg("failed to run orders migrations")
	}

	// Checkout events
	publisher := events.NewKafkaPublisher(cfg.KafkaBrokers...)
	defer publisher.Close()

	consumerCtx, cancelConsumer := context.WithCancel(ctx)
	consumer := orders.NewConsumer(orderRepo, cfg.KafkaBrokers...)
	go consumer.Run(consumerCtx)

	// Wiring
	cartService := service.NewCartService(cartRepo, checkoutStore, cachedCatalog, cartCache, publisher)

	router := qhttp.NewRouter(
		qhttp.NewCartHandler(cartService),
		qhttp.NewProductsHandler(catalogStore),
		qhttp.NewOrdersHandler(orderRepo),
		qhttp.UserLoader(userRepo),
		cfg.RequestTimeout,
	)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(router, "qkart-backend"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Warn().Msg("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	cancelConsumer()
	consumer.Close()
	if err := mongoDB.Client().Disconnect(context.Background()); err != nil {
		log.Error().Err(err).Msg("mongo disconnect failed")
	}

	log.Info().Msg("qkart backend stopped")
}
