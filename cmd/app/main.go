package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"deliverybot/cmd"
	httpadapter "deliverybot/internal/adapters/in/http"
	"deliverybot/internal/adapters/in/telegram"
	"deliverybot/internal/adapters/out/postgres/sessionrepo"
	"deliverybot/internal/jobs"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustOpenDatabase(configs)

	root, err := cmd.NewCompositionRoot(configs, gormDB, logger)
	if err != nil {
		log.Fatalf("Failed to build composition root: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	jobManager := jobs.NewJobManager(
		root.CreateCleanupSessionsCommandHandler(),
		root.CreateGetActiveSessionsQueryHandler(),
		logger,
	)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	go startWebServer(&root, configs.HTTPPort)
	startBot(ctx, &root, configs, logger)
}

func getConfigs() cmd.Config {
	// the .env file is optional in containerized deployments
	_ = godotenv.Load(".env")

	config := cmd.Config{
		HTTPPort:          os.Getenv("HTTP_PORT"),
		DBHost:            os.Getenv("DB_HOST"),
		DBPort:            os.Getenv("DB_PORT"),
		DBUser:            os.Getenv("DB_USER"),
		DBPassword:        os.Getenv("DB_PASSWORD"),
		DBName:            os.Getenv("DB_NAME"),
		DBSslMode:         os.Getenv("DB_SSLMODE"),
		TelegramBotToken:  os.Getenv("TELEGRAM_BOT_TOKEN"),
		GeocoderBaseURL:   os.Getenv("GEOCODER_URL"),
		GeocoderUserAgent: os.Getenv("GEOCODER_USER_AGENT"),
		GeocoderTimeout:   cmd.DefaultGeocoderTimeout,
		OriginLatitude:    cmd.OriginLatitude,
		OriginLongitude:   cmd.OriginLongitude,
	}

	if config.TelegramBotToken == "" {
		log.Fatalf("TELEGRAM_BOT_TOKEN is required")
	}
	if config.HTTPPort == "" {
		config.HTTPPort = "8080"
	}
	if config.GeocoderUserAgent == "" {
		config.GeocoderUserAgent = "deliverybot/1.0"
	}
	if raw := os.Getenv("GEOCODER_TIMEOUT"); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil {
			log.Fatalf("Invalid GEOCODER_TIMEOUT: %v", err)
		}
		config.GeocoderTimeout = timeout
	}

	return config
}

func mustOpenDatabase(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode,
	)

	gormDB, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := gormDB.AutoMigrate(&sessionrepo.SessionDTO{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	return gormDB
}

func startWebServer(root *cmd.CompositionRoot, port string) {
	e := echo.New()

	server, err := httpadapter.NewServer(root.CreateGetActiveSessionsQueryHandler(), root.Origin())
	if err != nil {
		log.Fatalf("Failed to build HTTP server: %v", err)
	}
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}

func startBot(ctx context.Context, root *cmd.CompositionRoot, configs cmd.Config, logger *slog.Logger) {
	api, err := tgbotapi.NewBotAPI(configs.TelegramBotToken)
	if err != nil {
		log.Fatalf("Failed to authorize bot: %v", err)
	}

	bot, err := telegram.NewBot(
		api,
		root.CreateProcessMessageCommandHandler(),
		root.CreateResetSessionCommandHandler(),
		logger,
	)
	if err != nil {
		log.Fatalf("Failed to build bot: %v", err)
	}

	if err := bot.Run(ctx); err != nil {
		log.Fatalf("Bot stopped with error: %v", err)
	}
}
