package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/case-service/internal/api/http"
	"github.com/spec-kit/case-service/internal/api/http/handlers"
	"github.com/spec-kit/case-service/internal/auth"
	"github.com/spec-kit/case-service/internal/casenumber"
	"github.com/spec-kit/case-service/internal/config"
	"github.com/spec-kit/case-service/internal/events"
	"github.com/spec-kit/case-service/internal/media"
	"github.com/spec-kit/case-service/internal/observability"
	"github.com/spec-kit/case-service/internal/persistence"
	"github.com/spec-kit/case-service/internal/repository"
	"github.com/spec-kit/case-service/internal/service"
	"github.com/spec-kit/case-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	hospitalRepo := repository.NewHospitalRepository(pool)
	caseRepo := repository.NewCaseRepository(pool)
	mediaRepo := repository.NewCaseMediaRepository(pool)
	historyRepo := repository.NewCaseHistoryRepository(pool)
	draftRepo := repository.NewDraftRepository(pool)
	localDrafts := repository.NewLocalDraftStore(redis.Client, cfg.Draft.LocalKeyPrefix, cfg.Draft.LocalTTL())

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher(logger)

	notificationService := service.NewNotificationService(logger, cfg.Notification)
	notifier := worker.StartNotificationWorker(ctx, dispatcher, notificationService, logger, 256)

	numbers := casenumber.NewGenerator(
		cfg.CaseNumber.Prefix,
		casenumber.NewRedisSequence(redis.Client, cfg.CaseNumber.SequenceKeyBase, caseRepo),
		caseRepo,
	)

	authService := service.NewAuthService(*cfg, userRepo, logger)
	draftService := service.NewDraftService(service.DraftDependencies{
		DraftRepo:  draftRepo,
		LocalStore: localDrafts,
		Limits:     media.DefaultLimits(cfg.Media.MaxFileBytes),
		Logger:     logger,
		Metrics:    metrics,
	})
	caseService := service.NewCaseService(service.CaseDependencies{
		CaseRepo:     caseRepo,
		MediaRepo:    mediaRepo,
		HistoryRepo:  historyRepo,
		UserRepo:     userRepo,
		HospitalRepo: hospitalRepo,
		TxRunner:     repository.NewTxRunner(pool),
		Numbers:      numbers,
		Sessions:     draftService,
		Dispatcher:   dispatcher,
		Logger:       logger,
	})
	userService := service.NewUserService(*cfg, userRepo, hospitalRepo)
	hospitalService := service.NewHospitalService(hospitalRepo)
	reportService := service.NewReportService(caseRepo)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)

	app := fiber.New(fiber.Config{
		AppName:     cfg.App.Name,
		BodyLimit:   cfg.App.BodyLimitMB << 20,
		JSONEncoder: json.Marshal,
		JSONDecoder: json.Unmarshal,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, map[string]handlers.Pinger{
			"postgres": pg,
			"redis":    redis,
		}, metrics),
		Auth:           handlers.NewAuthHandler(authService),
		Users:          handlers.NewUsersHandler(userService),
		Hospitals:      handlers.NewHospitalsHandler(hospitalService),
		Drafts:         handlers.NewDraftsHandler(draftService, caseService),
		Cases:          handlers.NewCasesHandler(caseService),
		Reports:        handlers.NewReportsHandler(reportService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
	notifier.Stop()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
