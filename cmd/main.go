package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Dosada05/tournament-results/brackets"
	"github.com/Dosada05/tournament-results/config"
	"github.com/Dosada05/tournament-results/db"
	"github.com/Dosada05/tournament-results/handlers"
	"github.com/Dosada05/tournament-results/models"
	"github.com/Dosada05/tournament-results/notify"
	"github.com/Dosada05/tournament-results/repositories"
	"github.com/Dosada05/tournament-results/routes"
	"github.com/Dosada05/tournament-results/services"
	"github.com/Dosada05/tournament-results/storage"
)

// @title Tournament Results API
// @version 1.0
// @description Teams, matches, balanced schedules, four-team brackets and cumulative standings.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	// Настройка логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)
	logger.Info("configuration loaded",
		slog.Int("port", cfg.ServerPort),
		slog.String("scoring_mode", string(cfg.Mode())),
		slog.Bool("r2_enabled", cfg.R2Enabled()),
		slog.Bool("telegram_enabled", cfg.TelegramEnabled()),
	)

	// Подключение к базе данных
	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second, logger)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	if err := db.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
		logger.Error("failed to apply migrations", slog.Any("error", err))
		os.Exit(1)
	}

	// Публикация отчёта: R2 (если настроен) и локальный файл
	uploaders := make([]storage.FileUploader, 0, 2)
	if cfg.R2Enabled() {
		r2, err := storage.NewCloudflareR2Uploader(context.Background(), storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		}, logger)
		if err != nil {
			logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		uploaders = append(uploaders, r2)
		logger.Info("Cloudflare R2 uploader initialized")
	}
	uploaders = append(uploaders, storage.NewLocalFileUploader(filepath.Dir(cfg.ReportPath)))
	reportKey := filepath.Base(cfg.ReportPath)

	var notifier services.Notifier
	if cfg.TelegramEnabled() {
		bot, err := notify.NewTelegramBot(cfg.TelegramBotToken)
		if err != nil {
			logger.Error("failed to initialize telegram bot", slog.Any("error", err))
			os.Exit(1)
		}
		telegram := notify.NewTelegramNotifier(bot, cfg.TelegramChatID, logger)
		defer telegram.Stop()
		notifier = telegram
		logger.Info("telegram notifier initialized", slog.Int64("chat_id", cfg.TelegramChatID))
	}

	// Инициализация WebSocket Hub
	wsHub := brackets.NewHub(logger)
	go wsHub.Run()
	defer wsHub.Stop()
	logger.Info("WebSocket Hub started")

	// Инициализация репозиториев
	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	matchRepo := repositories.NewPostgresMatchRepository(dbConn)

	// Инициализация сервисов
	mode := cfg.Mode()
	resolver := brackets.NewResolver(models.DefaultPointsAward)
	authService := services.NewAuthService(cfg.AdminUsername, cfg.AdminPasswordHash, cfg.JWTSecretKey)
	teamService := services.NewTeamService(teamRepo, logger)
	matchService := services.NewMatchService(matchRepo, wsHub, logger)
	scheduleService := services.NewScheduleService(teamRepo, matchRepo, cfg.ScheduleMaxAttempts,
		models.ParseRoundRobinSettings(cfg.RoundRobinSettings), logger)
	bracketService := services.NewBracketService(matchRepo, brackets.NewSingleEliminationGenerator(), resolver, wsHub, logger)
	sportService := services.NewSportService(matchRepo, resolver, logger)
	reportService := services.NewReportService(teamRepo, matchRepo, resolver, mode, reportKey, uploaders, logger)
	standingsService := services.NewStandingsService(teamRepo, matchRepo, resolver, mode, reportService, wsHub, notifier, logger)
	logger.Info("services initialized")

	// Настройка маршрутизатора
	router := chi.NewRouter()
	routes.SetupRoutes(router, routes.Handlers{
		Auth:      handlers.NewAuthHandler(authService),
		Team:      handlers.NewTeamHandler(teamService),
		Match:     handlers.NewMatchHandler(matchService),
		Schedule:  handlers.NewScheduleHandler(scheduleService),
		Sport:     handlers.NewSportHandler(sportService, bracketService),
		Standings: handlers.NewStandingsHandler(standingsService, reportService),
		WebSocket: handlers.NewWebSocketHandler(wsHub, cfg.CORSAllowedOrigins, logger),
	}, routes.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		TokenParser:    authService,
		Logger:         logger,
	})
	logger.Info("routes configured")

	// Настройка и запуск HTTP-сервера
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	// Ожидание сигнала завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
	logger.Info("application exited")
}
