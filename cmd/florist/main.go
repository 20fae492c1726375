package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"florist-api-io/api/internal"
	"florist-api-io/api/internal/auth"
	"florist-api-io/api/internal/common"
	"florist-api-io/api/internal/container"
	"florist-api-io/api/internal/indexer"
	"florist-api-io/api/internal/routers"
	"florist-api-io/api/pkg/cart"
	"florist-api-io/api/pkg/catalog"
	"florist-api-io/api/pkg/util"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func main() {
	cfg, err := common.LoadConfig()
	if err != nil {
		panic(err)
	}
	gin.SetMode(cfg.GinMode)

	logger, err := util.InitLogger(cfg.GinMode)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = util.ConnectRedis(ctx, cfg.RedisURL)
		if err != nil {
			logger.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer redisClient.Close()
	}

	var mongoClient *mongo.Client
	if cfg.CartStore == common.StoreMongo {
		mongoClient, err = util.ConnectDB(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("failed to connect to mongodb", zap.Error(err))
		}
		defer func() {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = mongoClient.Disconnect(disconnectCtx)
		}()
	}

	store, err := openStore(ctx, cfg, redisClient, mongoClient, logger)
	if err != nil {
		logger.Fatal("failed to open cart store", zap.Error(err))
	}

	secret := []byte(cfg.SessionSecret)
	if len(secret) == 0 {
		logger.Warn("SESSION_SECRET not set; cart sessions will not survive a restart")
		secret = []byte(auth.GenerateSecureToken(32))
	}

	serviceContainer, err := container.NewServiceContainer(container.Dependencies{
		Store:            store,
		Catalog:          catalog.NewClient(cfg.CatalogAPIURL, common.CATALOG_REQUEST_TIMEOUT),
		Redis:            redisClient,
		Logger:           logger,
		CatalogCacheTTL:  cfg.CatalogCacheTTL,
		SessionCacheSize: cfg.SessionCacheSize,
	})
	if err != nil {
		logger.Fatal("failed to build services", zap.Error(err))
	}

	if redisClient != nil {
		go internal.SubscribeCacheMessages(ctx, redisClient, serviceContainer.CatalogService.HandleCacheMessage)
	}

	router := routers.InitRoute(serviceContainer, routers.RouteOptions{
		SessionSecret: secret,
		AdminToken:    cfg.AdminToken,
		RateLimit:     uint(cfg.RateLimit),
		Redis:         redisClient,
	})

	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("addr", server.Addr), zap.String("cart_store", cfg.CartStore))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("ListenAndServe error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received; shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
		return
	}
	logger.Info("server stopped cleanly")
}

func openStore(ctx context.Context, cfg common.Config, redisClient *redis.Client, mongoClient *mongo.Client, logger *zap.Logger) (cart.Store, error) {
	switch cfg.CartStore {
	case common.StoreRedis:
		return cart.NewRedisStore(redisClient, common.CART_SNAPSHOT_EXPIRATION), nil
	case common.StoreMongo:
		db := mongoClient.Database(cfg.DatabaseName)
		result, err := indexer.NewManager(db, logger).
			LoadFromDefinitions(indexer.CartIndexes(common.CART_SNAPSHOT_EXPIRATION)).
			Create(ctx)
		if err != nil {
			return nil, err
		}
		logger.Info("cart indexes ready", zap.Int("created", result.SuccessCount), zap.Int("failed", result.FailedCount))
		return cart.NewMongoStore(util.GetCollection(mongoClient, cfg.DatabaseName, cart.SnapshotCollection)), nil
	default:
		return cart.NewMemoryStore(), nil
	}
}
