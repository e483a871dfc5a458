// Package server initializes and runs the backend application: database,
// migrations, services, outbound collaborators and the HTTP server, with
// graceful shutdown on OS signals.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/mealy-app/backend/internal/logging"
	"github.com/mealy-app/backend/internal/server/api"
	"github.com/mealy-app/backend/internal/server/config"
	"github.com/mealy-app/backend/internal/server/notify"
	"github.com/mealy-app/backend/internal/server/nutrition"
	"github.com/mealy-app/backend/internal/server/repositories/repomanager"
	"github.com/mealy-app/backend/internal/server/services"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *http.Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	estimator := nutrition.NewClient(nutrition.Config{
		APIURL:  cfg.NutritionAPIURL,
		APIKey:  cfg.NutritionAPIKey,
		APIHost: cfg.NutritionAPIHost,
		Timeout: cfg.NutritionTimeout,
	})

	var notifier notify.Notifier = notify.Noop{}
	if cfg.MailEnabled {
		n, err := notify.NewSESNotifier(ctx, cfg.AWSRegion, cfg.MailSender, cfg.MailAdminTo, logger)
		if err != nil {
			return nil, fmt.Errorf("notifier init error: %w", err)
		}
		notifier = n
	}

	userService := services.NewUserService(db, rm, cfg, logger)
	recipeService := services.NewRecipeService(db, rm, estimator, logger)
	mealPlanService := services.NewMealPlanService(db, rm, logger)

	router := api.NewServer(userService, recipeService, mealPlanService, notifier, logger).Router()

	return &App{
		config: cfg,
		logger: logger,
		db:     db,
		server: &http.Server{Addr: cfg.EndpointAddr, Handler: router},
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting app", "addr", app.config.EndpointAddr)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	<-ctx.Done()

	app.logger.Info(ctx, "shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.server.Shutdown(shutdownCtx); err != nil {
		app.logger.Error(shutdownCtx, err.Error())
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error(shutdownCtx, err.Error())
	}

	wg.Wait()
}
