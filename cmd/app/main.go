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

	"fooddelivery/cmd"
	httpadapter "fooddelivery/internal/adapters/in/http"
	"fooddelivery/internal/adapters/out/postgres"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	configs, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}
	appLogger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: configs.LogLevel}))
	slog.SetDefault(appLogger)

	gormDB, err := openDatabase(configs)
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	if err = postgres.Migrate(gormDB); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	app, err := cmd.NewCompositionRoot(ctx, configs, gormDB, appLogger)
	if err != nil {
		log.Fatalf("Error building application: %v", err)
	}
	defer func() {
		if closeErr := app.Close(); closeErr != nil {
			appLogger.Error("Error closing adapters", "error", closeErr)
		}
	}()

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
	defer jobManager.StopAll()

	e, err := httpadapter.NewRouter(ctx, app.CreateHTTPServer(), appLogger.With("component", "http"))
	if err != nil {
		log.Fatalf("Error building router: %v", err)
	}
	startWebServer(ctx, e, configs.HTTPPort, configs.LogLevel)
}

func openDatabase(configs cmd.Config) (*gorm.DB, error) {
	dialector := gormpostgres.New(gormpostgres.Config{
		DriverName: configs.DBDriver,
		DSN:        configs.DSN(),
	})
	gormLogger := logger.Default.LogMode(logger.Warn)
	if configs.LogLevel <= slog.LevelDebug {
		gormLogger = logger.Default.LogMode(logger.Info)
	}
	return gorm.Open(dialector, &gorm.Config{Logger: gormLogger})
}

func startWebServer(ctx context.Context, e *echo.Echo, port string, level slog.Level) {
	if level <= slog.LevelDebug {
		e.Logger.SetLevel(log.DEBUG)
	} else {
		e.Logger.SetLevel(log.INFO)
	}

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatal(err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		e.Logger.Error(err)
	}
}
