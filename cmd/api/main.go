package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/storage"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/AcasisDev/siteguard-hub/config"
	"github.com/AcasisDev/siteguard-hub/internal/container"
	pginfra "github.com/AcasisDev/siteguard-hub/internal/infrastructure/postgres"
	"github.com/AcasisDev/siteguard-hub/internal/interface/middleware"
	"github.com/AcasisDev/siteguard-hub/internal/router"
	"github.com/AcasisDev/siteguard-hub/pkg/helpers"
	"github.com/AcasisDev/siteguard-hub/pkg/response"
	"github.com/AcasisDev/siteguard-hub/pkg/validation"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env, cfg.LogLevel)
	gin.SetMode(cfg.GinMode)
	validation.Init()

	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer func() { _ = rdb.Close() }()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}

	jwtManager := helpers.NewJWTManager(cfg.JWTAccessSecret, cfg.JWTRefreshSecret, cfg.AccessTTL, cfg.RefreshTTL)

	container.SetConfig(cfg)
	container.SetLogger(logger)
	container.SetPGPool(pool)
	container.SetRedis(rdb)
	container.SetJWT(jwtManager)

	if gcs := initGCS(ctx, cfg, logger); gcs != nil {
		defer func() { _ = gcs.Close() }()
		container.SetGCS(gcs)
	}
	if addrs := cfg.ESAddrs(); len(addrs) > 0 {
		es, err := helpers.NewESClient(ctx, addrs, cfg.ElasticsearchUser, cfg.ElasticsearchPass)
		if err != nil {
			helpers.LogError(logger, "elasticsearch disabled", err, nil)
		} else {
			container.SetES(es)
		}
	}
	if cfg.RabbitMQURL != "" {
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQSignupQueue)
		if err != nil {
			helpers.LogError(logger, "rabbitmq disabled; sign-up jobs will not be published", err, nil)
		} else {
			defer pub.Close()
			container.SetRabbitPub(pub)
		}
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RealIP())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	if cfg.HTTPLogEnabled {
		r.Use(middleware.AccessLog(logger))
	}
	reg := router.NewRegistry(r)
	reg.Add(router.ModuleFunc(func(rg *gin.RouterGroup) {
		rg.GET("/healthz", func(c *gin.Context) {
			if err := rdb.Ping(c.Request.Context()).Err(); err != nil {
				response.Error[any](c, http.StatusServiceUnavailable, "redis unavailable", nil)
				return
			}
			response.Success[any](c, http.StatusOK, gin.H{"status": "ok"}, "healthy", nil)
		})
	}))
	detach := router.InitModules(reg)
	defer detach()
	reg.RegisterAll()

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		logger.Infof("server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Fatalf("server forced to shutdown: %v", err)
	}
	logger.Info("server exited properly")
}

// initGCS returns nil when no bucket is configured; avatar uploads then
// answer 503.
func initGCS(ctx context.Context, cfg *config.Config, logger *logrus.Logger) *storage.Client {
	if cfg.GCSBucket == "" {
		logger.Info("GCS_BUCKET not set; avatar uploads disabled")
		return nil
	}
	c, err := helpers.NewGCSClient(ctx, cfg.GCSCredentialsJSONPath)
	if err != nil {
		helpers.LogError(logger, "failed to init GCS client; avatar uploads disabled", err, logrus.Fields{"bucket": cfg.GCSBucket})
		return nil
	}
	return c
}
