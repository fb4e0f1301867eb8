package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fulfillment/cmd"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/vendorrepo"

	httpadapter "fulfillment/internal/adapters/in/http"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	configs := getConfigs()

	db, err := gorm.Open(gormpostgres.Open(configs.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.OrderMutationDTO{}, &vendorrepo.VendorDTO{}); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	app, err := cmd.NewCompositionRoot(configs, db, logger)
	if err != nil {
		log.Fatalf("failed to compose application: %v", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error("failed to close event publisher", "error", err)
		}
	}()

	if err := app.JobManager().StartAll(); err != nil {
		log.Fatalf("failed to start jobs: %v", err)
	}
	defer app.JobManager().StopAll()

	startWebServer(app, configs.HTTPPort, logger)
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Warnf("no .env file loaded, using the process environment: %v", err)
	}

	grace, err := cmd.ParseStatusUpdateGracePeriod(os.Getenv("STATUS_UPDATE_GRACE_PERIOD"))
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	return cmd.Config{
		HTTPPort:                os.Getenv("HTTP_PORT"),
		DBHost:                  os.Getenv("DB_HOST"),
		DBPort:                  os.Getenv("DB_PORT"),
		DBUser:                  os.Getenv("DB_USER"),
		DBPassword:              os.Getenv("DB_PASSWORD"),
		DBName:                  os.Getenv("DB_NAME"),
		DBSslMode:               os.Getenv("DB_SSLMODE"),
		KafkaHost:               os.Getenv("KAFKA_HOST"),
		KafkaOrderChangedTopic:  os.Getenv("KAFKA_ORDER_CHANGED_TOPIC"),
		StatusUpdateGracePeriod: grace,
		GraceFinalizerSchedule:  os.Getenv("GRACE_FINALIZER_SCHEDULE"),
	}
}

func startWebServer(app *cmd.CompositionRoot, port string, logger *slog.Logger) {
	server, err := app.CreateHTTPServer()
	if err != nil {
		log.Fatalf("failed to create http server: %v", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	if err := httpadapter.Register(e, server, app.Registry()); err != nil {
		log.Fatalf("failed to register routes: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatal(err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shut down http server", "error", err)
	}
}
