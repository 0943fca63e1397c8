package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/shop-admin-dashboard/config"
	"github.com/oksasatya/shop-admin-dashboard/internal/application"
	"github.com/oksasatya/shop-admin-dashboard/internal/container"
	"github.com/oksasatya/shop-admin-dashboard/internal/infrastructure/memory"
	mongoinfra "github.com/oksasatya/shop-admin-dashboard/internal/infrastructure/mongo"
	pginfra "github.com/oksasatya/shop-admin-dashboard/internal/infrastructure/postgres"
	"github.com/oksasatya/shop-admin-dashboard/internal/infrastructure/search"
	"github.com/oksasatya/shop-admin-dashboard/internal/infrastructure/storage"
	"github.com/oksasatya/shop-admin-dashboard/internal/interface/middleware"
	"github.com/oksasatya/shop-admin-dashboard/internal/router"
	"github.com/oksasatya/shop-admin-dashboard/pkg/helpers"
	"github.com/oksasatya/shop-admin-dashboard/pkg/mailer"
	"github.com/oksasatya/shop-admin-dashboard/pkg/validation"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	gin.SetMode(cfg.GinMode)
	validation.Init()

	ctx := context.Background()
	var closers []func()
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}()

	// Document store
	switch cfg.StoreDriver {
	case "mongo":
		client, err := mongoinfra.Connect(ctx, cfg.MongoURI)
		if err != nil {
			logger.Fatalf("failed to connect to mongo: %v", err)
		}
		closers = append(closers, func() { _ = client.Disconnect(context.Background()) })
		db := client.Database(cfg.MongoDB)
		accounts, err := mongoinfra.NewAccountRepository(ctx, db)
		if err != nil {
			logger.Fatalf("accounts collection: %v", err)
		}
		products, err := mongoinfra.NewProductRepository(ctx, db)
		if err != nil {
			logger.Fatalf("products collection: %v", err)
		}
		container.SetAccounts(accounts)
		container.SetProducts(products)
	default:
		logger.Warn("using in-memory store; data is lost on restart")
		container.SetAccounts(memory.NewAccountRepository())
		container.SetProducts(memory.NewProductRepository())
	}

	// Audit log (Postgres)
	if cfg.AuditEnabled {
		if err := pginfra.Migrate(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
			logger.Fatalf("migration failed: %v", err)
		}
		pool, err := pginfra.NewAuditPool(ctx, pginfra.AuditPoolConfig{
			DSN:             cfg.PostgresDSN(),
			MaxConns:        cfg.DBMaxConns,
			MinConns:        cfg.DBMinConns,
			MaxConnLifetime: cfg.DBMaxConnLife,
			AppName:         cfg.AppName + "-audit",
			PingTimeout:     cfg.CallTimeout,
		})
		if err != nil {
			logger.Fatalf("failed to connect to postgres: %v", err)
		}
		closers = append(closers, pool.Close)
		container.SetAudit(pginfra.NewAuditRepository(pool))
	}

	// Redis (rate limiting, fail-open)
	rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	closers = append(closers, func() { _ = rdb.Close() })
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.WithError(err).Warn("redis unreachable; rate limits fail open")
	}

	if images := buildImageHost(ctx, cfg, logger, &closers); images != nil {
		container.SetImages(images)
	}
	container.SetMailer(buildMailer(cfg, logger, &closers))

	if cfg.SearchEnabled {
		es, err := helpers.NewESClient(helpers.ESOptions{
			Addrs:      cfg.ElasticsearchAddrs,
			Username:   cfg.ElasticsearchUser,
			Password:   cfg.ElasticsearchPass,
			Timeout:    cfg.CallTimeout,
			MaxRetries: 2,
		})
		if err != nil {
			logger.Fatalf("failed to init elasticsearch: %v", err)
		}
		container.SetAccountIndex(search.NewAccountIndex(es, cfg.ESAccountsIndex))
	}

	jwtManager := helpers.NewJWTManager(cfg.JWTSessionSecret, cfg.JWTConfirmSecret, cfg.SessionTTL, cfg.ConfirmTTL, cfg.JWTIssuer)

	container.SetConfig(cfg)
	container.SetLogger(logger)
	container.SetRedis(rdb)
	container.SetJWT(jwtManager)

	// Gin engine and global middleware
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RealIP())
	corsCfg := cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.HeaderRequestID},
		ExposeHeaders:    []string{"Content-Length", middleware.HeaderRequestID},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(corsCfg.AllowOrigins) == 0 {
		corsCfg.AllowOrigins = []string{"http://localhost:3000"}
	}
	r.Use(cors.New(corsCfg))
	if cfg.HTTPLogEnabled {
		r.Use(gin.Logger())
	}
	r.MaxMultipartMemory = cfg.UploadMaxBytes

	reg := router.NewRegistry(r)
	router.InitModules(reg)
	reg.RegisterAll()

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		logger.Infof("server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Errorf("server forced to shutdown: %v", err)
	}
	logger.Info("server exited properly")
}

// buildImageHost returns nil when no bucket is configured; uploads then
// fail as unavailable while the rest of the dashboard keeps working.
func buildImageHost(ctx context.Context, cfg *config.Config, logger *logrus.Logger, closers *[]func()) application.ImageHost {
	switch cfg.ImageDriver {
	case "s3":
		if cfg.S3Bucket == "" {
			logger.Warn("S3_BUCKET not set; image uploads disabled")
			return nil
		}
		client, err := helpers.NewS3Client(ctx, cfg.S3Region, cfg.S3Endpoint, cfg.S3AccessKey, cfg.S3SecretKey)
		if err != nil {
			logger.Fatalf("failed to init S3 client: %v", err)
		}
		host, err := storage.NewS3Host(client, cfg.S3Bucket, cfg.S3Region, cfg.ImagePublicBaseURL)
		if err != nil {
			logger.Fatalf("s3 image host: %v", err)
		}
		return host
	default:
		if cfg.GCSBucket == "" {
			logger.Warn("GCS_BUCKET not set; image uploads disabled")
			return nil
		}
		client, err := helpers.NewGCSClient(ctx, cfg.GCSCredentialsJSONPath)
		if err != nil {
			logger.Fatalf("failed to init GCS client: %v", err)
		}
		*closers = append(*closers, func() { _ = client.Close() })
		host, err := storage.NewGCSHost(client, cfg.GCSBucket, cfg.ImagePublicBaseURL)
		if err != nil {
			logger.Fatalf("gcs image host: %v", err)
		}
		return host
	}
}

func buildMailer(cfg *config.Config, logger *logrus.Logger, closers *[]func()) application.MailSender {
	if !cfg.MailSendEnabled {
		logger.Info("MAIL_SEND_ENABLED=false; mail is only logged")
		return mailer.NewLog(logger)
	}
	switch cfg.MailDriver {
	case "queue":
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
		if err != nil {
			logger.Fatalf("failed to init rabbitmq publisher: %v", err)
		}
		*closers = append(*closers, pub.Close)
		return mailer.NewQueue(pub)
	case "mailgun":
		return mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender)
	case "smtp":
		return mailer.NewSMTP(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom)
	default:
		return mailer.NewLog(logger)
	}
}
