package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/ledger-api/internal/application/service"
	"github.com/sangkips/ledger-api/internal/config"
	domainRepo "github.com/sangkips/ledger-api/internal/domain/repository"
	"github.com/sangkips/ledger-api/internal/infrastructure/database"
	"github.com/sangkips/ledger-api/internal/infrastructure/lock"
	"github.com/sangkips/ledger-api/internal/infrastructure/repository"
	"github.com/sangkips/ledger-api/internal/presentation/http/handler"
	"github.com/sangkips/ledger-api/internal/presentation/http/routes"
	"github.com/sangkips/ledger-api/pkg/utils"
	"github.com/sirupsen/logrus"
)

const (
	shutdownTimeout    = 15 * time.Second
	idempotencyCleanup = time.Hour
)

func main() {
	cfg := config.Load()
	config.ConfigureLogger(&cfg.Log)
	logger := config.GetLogger()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	db, err := database.NewPostgresDB(&cfg.Database, cfg.Tracing.Enabled)
	if err != nil {
		logger.WithError(err).Fatal("Failed to connect to database")
	}

	if err := database.AutoMigrate(db); err != nil {
		logger.WithError(err).Fatal("Failed to run migrations")
	}

	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours)

	// Repositories
	companyRepo := repository.NewCompanyRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	contactRepo := repository.NewContactRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	quoteRepo := repository.NewQuoteRepository(db)
	workOrderRepo := repository.NewWorkOrderRepository(db)
	trackingRepo := repository.NewTrackingRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)
	transactor := repository.NewTransactor(db)

	// Conversion lock shared between instances
	var locker service.Locker = lock.NoopLocker{}
	if cfg.Redis.Enabled {
		rdb, err := lock.NewRedisClient(sigCtx, &cfg.Redis)
		if err != nil {
			logger.WithError(err).Fatal("Failed to connect to redis")
		}
		defer func() { _ = rdb.Close() }()
		locker = lock.NewRedisLocker(rdb, cfg.Redis.LockTTL, cfg.Redis.LockWait)
	}

	// Services
	numberingService := service.NewNumberingService(companyRepo, transactor, &cfg.Numbering)
	companyService := service.NewCompanyService(companyRepo, numberingService)
	catalogService := service.NewCatalogService(catalogRepo)
	contactService := service.NewContactService(contactRepo, cfg.Phone.DefaultRegion)
	invoiceService := service.NewInvoiceService(invoiceRepo, contactRepo, companyRepo, catalogRepo, transactor, numberingService)
	quoteService := service.NewQuoteService(quoteRepo, contactRepo, companyRepo, catalogRepo, transactor, numberingService)
	workOrderService := service.NewWorkOrderService(workOrderRepo, contactRepo, companyRepo, catalogRepo, transactor, numberingService)
	trackingService := service.NewTrackingService(trackingRepo, contactRepo, catalogRepo, transactor, numberingService)
	conversionService := service.NewConversionService(
		quoteRepo, trackingRepo, invoiceRepo, companyRepo, catalogRepo, transactor, numberingService, locker,
	)

	company, err := companyService.EnsureDefaultCompany(sigCtx, &cfg.Seed)
	if err != nil {
		logger.WithError(err).Warn("Failed to seed default company")
	} else {
		logger.WithFields(logrus.Fields{"company_id": company.ID, "slug": company.Slug}).Info("Default company ready")
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.WithError(err).Fatal("Failed to get underlying sql.DB")
	}
	defer func() { _ = sqlDB.Close() }()

	handlers := &routes.Handlers{
		Health:      handler.NewHealthHandler(cfg.App.Name, sqlDB),
		Company:     handler.NewCompanyHandler(companyService, numberingService),
		Catalog:     handler.NewCatalogHandler(catalogService),
		Contact:     handler.NewContactHandler(contactService),
		Invoice:     handler.NewInvoiceHandler(invoiceService),
		Quote:       handler.NewQuoteHandler(quoteService, conversionService),
		PublicQuote: handler.NewPublicQuoteHandler(quoteService),
		WorkOrder:   handler.NewWorkOrderHandler(workOrderService),
		Tracking:    handler.NewTrackingHandler(trackingService, conversionService),
	}

	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		CompanyRepo:     companyRepo,
		IdempotencyRepo: idempotencyRepo,
	})
	defer router.Close()

	go purgeIdempotencyKeys(sigCtx, idempotencyRepo, logger)

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	serverErrCh := make(chan error, 1)
	go func() {
		logger.WithFields(logrus.Fields{"port": port, "env": cfg.App.Env}).Infof("Starting %s server", cfg.App.Name)
		serverErrCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Error("Server stopped unexpectedly")
		}
	case <-sigCtx.Done():
		logger.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Graceful shutdown failed")
	}
}

// purgeIdempotencyKeys deletes expired replay records until ctx is cancelled
func purgeIdempotencyKeys(ctx context.Context, repo domainRepo.IdempotencyRepository, logger *logrus.Logger) {
	ticker := time.NewTicker(idempotencyCleanup)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := repo.DeleteExpired(ctx); err != nil {
				config.LogError(logger, "main", "purgeIdempotencyKeys", "delete expired", nil, err)
			}
		}
	}
}
