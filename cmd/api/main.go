package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/municipal-services/complaint-service/internal/api/http"
	"github.com/municipal-services/complaint-service/internal/api/http/handlers"
	"github.com/municipal-services/complaint-service/internal/auth"
	"github.com/municipal-services/complaint-service/internal/config"
	"github.com/municipal-services/complaint-service/internal/events"
	"github.com/municipal-services/complaint-service/internal/mailer"
	"github.com/municipal-services/complaint-service/internal/observability"
	"github.com/municipal-services/complaint-service/internal/persistence"
	"github.com/municipal-services/complaint-service/internal/report"
	"github.com/municipal-services/complaint-service/internal/repository"
	"github.com/municipal-services/complaint-service/internal/service"
	"github.com/municipal-services/complaint-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
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
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	pool := pg.PoolHandle()
	complaintRepo := repository.NewComplaintRepository(pool)
	officeRepo := repository.NewOfficeRepository(pool)
	customerRepo := repository.NewCustomerRepository(pool)
	employeeRepo := repository.NewEmployeeRepository(pool)

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	authService := service.NewAuthService(customerRepo, employeeRepo, tokens)
	authMiddleware := auth.NewAuthMiddleware(tokens, customerRepo, employeeRepo)

	complaintService := service.NewComplaintService(service.ComplaintDependencies{
		ComplaintRepo: complaintRepo,
		EmployeeRepo:  employeeRepo,
		OfficeRepo:    officeRepo,
		Dispatcher:    dispatcher,
	})
	reportService := service.NewReportService(
		complaintRepo,
		report.NewRenderer(cfg.Report.OutputDir),
		service.NewRedisStatsCache(redis.Client),
		cfg.Report.StatsCacheTTL(),
		logger,
	)
	notificationService := service.NewNotificationService(
		dispatcher,
		complaintRepo,
		mailer.New(cfg.SMTP, logger),
		logger,
		metrics,
	)
	worker.StartNotificationWorker(notificationService)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis, metrics),
		Auth:           handlers.NewAuthHandler(authService),
		Complaints:     handlers.NewComplaintsHandler(complaintService, metrics),
		Staff:          handlers.NewStaffComplaintsHandler(complaintService, metrics),
		Reports:        handlers.NewReportsHandler(reportService, metrics),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
