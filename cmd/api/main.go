package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/Vivero-api/internal/application/auth"
	"github.com/jhoicas/Vivero-api/internal/application/billing"
	"github.com/jhoicas/Vivero-api/internal/application/catalog"
	"github.com/jhoicas/Vivero-api/internal/application/export"
	"github.com/jhoicas/Vivero-api/internal/application/inventory"
	"github.com/jhoicas/Vivero-api/internal/application/order"
	"github.com/jhoicas/Vivero-api/internal/application/report"
	"github.com/jhoicas/Vivero-api/internal/application/request"
	"github.com/jhoicas/Vivero-api/internal/application/review"
	infrapdf "github.com/jhoicas/Vivero-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Vivero-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Vivero-api/internal/interfaces/http"
	"github.com/jhoicas/Vivero-api/pkg/config"
	"github.com/jhoicas/Vivero-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	plantRepo := postgres.NewPlantRepository(pool)
	ledgerRepo := postgres.NewLedgerRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	reportingRepo := postgres.NewReportingRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	reviewRepo := postgres.NewReviewRepository(pool)
	requestRepo := postgres.NewServiceRequestRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	mutationUC := inventory.NewStockMutationUseCase(txRunner)
	ledgerQueryUC := inventory.NewLedgerQueryUseCase(ledgerRepo, plantRepo)
	replenishmentUC := inventory.NewReplenishmentUseCase(plantRepo, inventory.ReplenishmentOptions{
		SafetyBufferFactor: cfg.Inventory.SafetyBufferFactor,
		AssumedCostRatio:   cfg.Inventory.AssumedCostRatio,
	})
	plantUC := catalog.NewPlantUseCase(plantRepo)
	orderUC := order.NewCreateOrderUseCase(txRunner, mutationUC, plantRepo, orderRepo)
	reportUC := report.NewReportUseCase(reportRepo, reportingRepo, plantRepo)

	reviewUC := review.NewReviewUseCase(reviewRepo, plantRepo, orderRepo)
	requestUC := request.NewServiceRequestUseCase(requestRepo, userRepo)

	// PDF: orden de compra para el proveedor y factura de venta por pedido
	pdfGenerator := infrapdf.NewPurchaseOrderGenerator(cfg.App.Name)
	exportUC := export.NewExportUseCase(replenishmentUC, reportingRepo, pdfGenerator)
	invoiceGenerator := infrapdf.NewInvoiceGenerator(cfg.App.Name)
	billingUC := billing.NewBillingUseCase(orderRepo, userRepo, invoiceGenerator)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Vivero API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:          authUC,
		PlantUC:         plantUC,
		MutationUC:      mutationUC,
		LedgerQueryUC:   ledgerQueryUC,
		ReplenishmentUC: replenishmentUC,
		ExportUC:        exportUC,
		OrderUC:         orderUC,
		ReportUC:        reportUC,
		ReviewUC:        reviewUC,
		RequestUC:       requestUC,
		BillingUC:       billingUC,
		JWTSecret:       cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
