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

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cafe/internal/config"
	"cafe/internal/database"
	"cafe/internal/logging"
	"cafe/internal/maintenance"
	"cafe/internal/metrics"
	"cafe/internal/middleware"
	"cafe/internal/models"
	"cafe/internal/notify"
	"cafe/internal/ordering"
	"cafe/internal/repository"
	"cafe/internal/telegram"
)

func main() {
	config.Load()
	cfg := config.AppEnv

	logger, err := logging.New(cfg.Env)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	client, err := database.Connect(cfg.MongoURI)
	if err != nil {
		logger.Fatal("mongo connect failed", zap.Error(err))
	}
	db := client.Database(cfg.DBName)
	logger.Info("MongoDB connected", zap.String("db", db.Name()))

	if err := database.EnsureIndexes(db, logger); err != nil {
		logger.Warn("index bootstrap incomplete", zap.Error(err))
	}
	admins := repository.NewDocuments[models.Admin](db, repository.Admins)
	if err := database.SeedAdmin(context.Background(), admins, cfg.AdminEmail, cfg.AdminPassword, logger); err != nil {
		logger.Warn("admin seed failed", zap.Error(err))
	}

	reg := metrics.NewRegistry()
	settings := repository.NewSettingsRepository(db)
	adminLogs := repository.NewAdminLogRepository(db)

	bot := telegram.NewClient(cfg.TelegramBotToken, cfg.TelegramAPIURL)
	if !bot.Configured() {
		logger.Warn("TELEGRAM_BOT_TOKEN not set, staff notifications will fail")
	}
	formatter := notify.Formatter{ShopName: cfg.ShopName, Currency: cfg.Currency, Location: cfg.Location()}
	resolver := notify.NewResolver(settings, logger)
	dispatcher := notify.NewDispatcher(resolver, bot, formatter, logger, reg)

	orders := repository.NewDocuments[models.Order](db, repository.Orders)
	orderService := ordering.NewService(orders, settings, dispatcher, logger, reg)

	limiter := middleware.PerMinute(cfg.RateLimitPerMinute, cfg.RateLimitBurst)

	app := &application{
		cfg:        cfg,
		mongo:      client,
		metrics:    reg,
		limiter:    limiter,
		settings:   settings,
		adminLogs:  adminLogs,
		admins:     admins,
		orders:     orders,
		items:      repository.NewDocuments[models.MenuItem](db, repository.Items),
		categories: repository.NewDocuments[models.Category](db, repository.Categories),
		offers:     repository.NewDocuments[models.Offer](db, repository.Offers),
		comments:   repository.NewDocuments[models.Comment](db, repository.Comments),
		messages:   repository.NewDocuments[models.ContactMessage](db, repository.ContactMessages),
		jobs:       repository.NewDocuments[models.Job](db, repository.Jobs),
		apps:       repository.NewDocuments[models.JobApplication](db, repository.JobApplications),
		bot:        bot,
		resolver:   resolver,
		dispatcher: dispatcher,
		ordering:   orderService,
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		logging.RequestLogger(logger),
		cors.New(cors.Config{
			AllowOrigins:     cfg.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
			ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
	)
	app.registerRoutes(r)

	jobsCtx, stopJobs := context.WithCancel(context.Background())
	defer stopJobs()
	runner := maintenance.NewRunner(logger,
		maintenance.AdminLogCleanup(adminLogs, cfg.AdminLogRetention, logger),
		maintenance.RateLimiterSweep(limiter),
	)
	go func() {
		if err := runner.Run(jobsCtx); err != nil {
			logger.Error("maintenance stopped", zap.Error(err))
		}
	}()

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		logger.Info("server started", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	stopJobs()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}
	if err := client.Disconnect(shutdownCtx); err != nil {
		logger.Error("mongo disconnect error", zap.Error(err))
	}
}
