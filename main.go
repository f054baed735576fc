package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/rinkstats/streaks/internal/adapters/cache"
	"github.com/rinkstats/streaks/internal/adapters/database"
	"github.com/rinkstats/streaks/internal/adapters/gamelogrepository"
	"github.com/rinkstats/streaks/internal/adapters/scheduleprovider"
	"github.com/rinkstats/streaks/internal/app"
	"github.com/rinkstats/streaks/internal/config"
	"github.com/rinkstats/streaks/internal/domain"
	"github.com/rinkstats/streaks/internal/logging"
	"github.com/rinkstats/streaks/internal/ports"
	"github.com/rinkstats/streaks/internal/ratelimiting"
	"github.com/rinkstats/streaks/internal/reporting"
	"github.com/rinkstats/streaks/internal/telemetry"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	// Root certificates for minimal container images
	_ "golang.org/x/crypto/x509roots/fallback"
)

// TODO: Put in config
const PROD_DOMAIN_SUFFIX = "rinkstats.com"
const STAGING_DOMAIN_SUFFIX = "rinkstats.pages.dev"

const serviceName = "rinkstats-streaks"

func main() {
	// Local development only, deployed instances get their environment from the platform
	_ = godotenv.Load()

	if err := run(); err != nil {
		os.Exit(1)
	}
}

// run returns the first startup or serving error. Deferred flushes run before main exits.
func run() error {
	instanceID := uuid.New().String()

	config, err := config.ConfigFromEnv()
	if err != nil {
		slog.New(slog.NewJSONHandler(os.Stdout, nil)).Error("Failed to load config", "error", err.Error())
		return err
	}

	var handler slog.Handler = slog.NewJSONHandler(os.Stdout, nil)
	if project := config.GoogleCloudProject(); project != "" {
		handler = logging.NewGoogleCloudTracingLogHandler(handler, project)
	}
	logger := slog.New(handler).With("instanceID", instanceID)
	logger.Info("Loaded config", "config", config.NonSensitiveString())

	ctx := logging.AddToContext(context.Background(), logger)

	if !config.IsDevelopment() {
		shutdownTelemetry, err := telemetry.SetupOTelSDK(ctx, serviceName)
		if err != nil {
			logger.Error("Failed to set up telemetry", "error", err.Error())
			return err
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdownTelemetry(shutdownCtx); err != nil {
				logger.Error("Failed to shut down telemetry", "error", err.Error())
			}
		}()
		logger.Info("Initialized telemetry")
	}

	sentryMiddleware, flush, err := reporting.NewSentryMiddlewareOrMock(config)
	if err != nil {
		logger.Error("Failed to initialize Sentry", "error", err.Error())
		return err
	}
	defer flush()
	logger.Info("Initialized Sentry middleware")

	ctx = sentry.SetHubOnContext(ctx, sentry.CurrentHub().Clone())
	fail := func(msg string, err error) error {
		err = fmt.Errorf("%s: %w", msg, err)
		reporting.Report(ctx, err)
		return err
	}

	var gameLogSource gamelogrepository.GameLogSource
	if config.UseSQLite() {
		sqliteRepo, err := gamelogrepository.OpenSQLite(config.SQLitePath())
		if err != nil {
			return fail("Failed to open SQLite game log store", err)
		}
		defer sqliteRepo.Close()
		gameLogSource = sqliteRepo
		logger.Info("Initialized SQLite game log store", "path", config.SQLitePath())
	} else {
		logger.Info("Initializing database connection")
		db, err := database.NewCloudsqlPostgresDatabase(config)
		if err != nil {
			return fail("Failed to initialize database connection", err)
		}
		logger.Info("Initialized database connection")

		repositorySchemaName := database.GetSchemaName(!config.IsProduction())

		err = database.NewDatabaseMigrator(db, logger.With("component", "migrator")).Migrate(ctx, repositorySchemaName)
		if err != nil {
			return fail("Failed to migrate database", err)
		}

		gameLogSource = gamelogrepository.NewPostgres(db, repositorySchemaName)
		logger.Info("Initialized postgres game log store")
	}

	leaderboardCache := cache.NewTTLCache[[]domain.AggregateRow](1 * time.Minute)
	scheduleCache := cache.NewTTLCache[domain.Schedule](5 * time.Minute)

	httpClient := &http.Client{
		Timeout:   10 * time.Second,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
	nhlAPI := scheduleprovider.NewNHLAPI(
		httpClient,
		config.ScheduleBaseURL(),
		// Well below what the public feed tolerates, the schedule is cached anyway
		ratelimiting.NewWindowLimitRequestLimiter(30, time.Minute),
		time.Now,
	)
	scheduleProvider, err := scheduleprovider.NewNHLScheduleProvider(nhlAPI)
	if err != nil {
		return fail("Failed to initialize schedule provider", err)
	}

	getLeaderboard, err := app.BuildGetLeaderboard(gameLogSource, leaderboardCache, time.Now)
	if err != nil {
		return fail("Failed to initialize leaderboard", err)
	}
	getNextGame := app.BuildGetNextGame(scheduleProvider, scheduleCache, time.Now)

	allowedOrigins, err := ports.NewDomainSuffixes(PROD_DOMAIN_SUFFIX, STAGING_DOMAIN_SUFFIX)
	if err != nil {
		return fail("Failed to initialize allowed origins", err)
	}

	makeDependencies := func(port string, limits ports.RateLimits) ports.HandlerDependencies {
		return ports.HandlerDependencies{
			AllowedOrigins:   allowedOrigins,
			RootLogger:       logger.With("port", port),
			SentryMiddleware: sentryMiddleware,
			RateLimits:       limits,
		}
	}

	mux := http.NewServeMux()

	mux.HandleFunc(
		"OPTIONS /v1/players",
		ports.BuildCORSHandler(allowedOrigins),
	)
	mux.HandleFunc(
		"GET /v1/players",
		ports.MakeGetPlayersHandler(
			getLeaderboard,
			makeDependencies("players", ports.RateLimits{
				IPRefill:     4,
				IPBurst:      240,
				UserIDRefill: 1,
				UserIDBurst:  60,
			}),
		),
	)

	mux.HandleFunc(
		"OPTIONS /v1/schedule/{team}",
		ports.BuildCORSHandler(allowedOrigins),
	)
	mux.HandleFunc(
		"GET /v1/schedule/{team}",
		ports.MakeGetScheduleHandler(
			getNextGame,
			makeDependencies("schedule", ports.RateLimits{
				IPRefill:     2,
				IPBurst:      60,
				UserIDRefill: 1,
				UserIDBurst:  30,
			}),
		),
	)

	logger.Info("Init complete")
	err = http.ListenAndServe(fmt.Sprintf(":%s", config.Port()), otelhttp.NewHandler(mux, serviceName))
	if errors.Is(err, http.ErrServerClosed) {
		logger.Info("Server shutdown")
		return nil
	}
	return fail("Server error", err)
}
