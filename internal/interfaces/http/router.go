package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Vivero-api/internal/application/auth"
	"github.com/jhoicas/Vivero-api/internal/application/billing"
	"github.com/jhoicas/Vivero-api/internal/application/catalog"
	"github.com/jhoicas/Vivero-api/internal/application/export"
	"github.com/jhoicas/Vivero-api/internal/application/inventory"
	"github.com/jhoicas/Vivero-api/internal/application/order"
	"github.com/jhoicas/Vivero-api/internal/application/report"
	"github.com/jhoicas/Vivero-api/internal/application/request"
	"github.com/jhoicas/Vivero-api/internal/application/review"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC          *auth.AuthUseCase
	PlantUC         *catalog.PlantUseCase
	MutationUC      *inventory.StockMutationUseCase
	LedgerQueryUC   *inventory.LedgerQueryUseCase
	ReplenishmentUC *inventory.ReplenishmentUseCase
	ExportUC        *export.ExportUseCase
	OrderUC         *order.CreateOrderUseCase
	ReportUC        *report.ReportUseCase
	ReviewUC        *review.ReviewUseCase
	RequestUC       *request.ServiceRequestUseCase
	BillingUC       *billing.BillingUseCase
	JWTSecret       string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Catálogo: lectura pública, escritura solo admin
	plants := api.Group("/plants")
	plantHandler := NewPlantHandler(deps.PlantUC)
	plants.Get("/", plantHandler.List)
	plants.Get("/:id", plantHandler.GetByID)
	plants.Post("/", AuthMiddleware(deps.JWTSecret), RequireAdmin(), plantHandler.Create)
	plants.Put("/:id", AuthMiddleware(deps.JWTSecret), RequireAdmin(), plantHandler.Update)

	// Reseñas: listado por planta público, crear y editar con Bearer Token
	reviewHandler := NewReviewHandler(deps.ReviewUC)
	plants.Get("/:id/reviews", reviewHandler.ListByPlant)
	reviews := api.Group("/reviews", AuthMiddleware(deps.JWTSecret))
	reviews.Post("/", reviewHandler.Create)
	reviews.Get("/mine", reviewHandler.ListMine)
	reviews.Put("/:id", reviewHandler.Update)

	// Pedidos (requieren Bearer Token)
	orders := api.Group("/orders", AuthMiddleware(deps.JWTSecret))
	orderHandler := NewOrderHandler(deps.OrderUC)
	orders.Post("/", orderHandler.Create)
	orders.Get("/mine", orderHandler.ListMine)
	orders.Get("/", RequireAdmin(), orderHandler.List)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Put("/:id/status", RequireAdmin(), orderHandler.UpdateStatus)

	// Stock: libro de movimientos, reposición y exports (solo admin)
	stock := api.Group("/stock", AuthMiddleware(deps.JWTSecret), RequireAdmin())
	inventoryHandler := NewInventoryHandler(deps.MutationUC, deps.LedgerQueryUC, deps.ReplenishmentUC, deps.ExportUC)
	stock.Post("/mutations", inventoryHandler.ApplyMutation)
	stock.Get("/transactions", inventoryHandler.ListTransactions)
	stock.Get("/plants/:id/history", inventoryHandler.PlantHistory)
	stock.Get("/replenishment", inventoryHandler.GetReplenishmentList)
	stock.Get("/exports/sales", inventoryHandler.ExportSalesCSV)
	stock.Get("/exports/purchase-order.csv", inventoryHandler.ExportPurchaseOrderCSV)
	stock.Get("/exports/purchase-order.pdf", inventoryHandler.ExportPurchaseOrderPDF)

	// Solicitudes de servicio: el cliente crea y consulta las suyas, el admin gestiona
	requests := api.Group("/requests", AuthMiddleware(deps.JWTSecret))
	requestHandler := NewRequestHandler(deps.RequestUC)
	requests.Post("/", requestHandler.Create)
	requests.Get("/mine", requestHandler.ListMine)
	requests.Get("/", RequireAdmin(), requestHandler.List)
	requests.Put("/:id/status", RequireAdmin(), requestHandler.UpdateStatus)
	requests.Delete("/:id", RequireAdmin(), requestHandler.Delete)

	// Facturación (solo admin)
	billingGroup := api.Group("/billing", AuthMiddleware(deps.JWTSecret), RequireAdmin())
	billingHandler := NewBillingHandler(deps.BillingUC)
	billingGroup.Get("/orders/:id/invoice.pdf", billingHandler.InvoicePDF)

	// Informes mensuales (solo admin)
	reports := api.Group("/reports", AuthMiddleware(deps.JWTSecret), RequireAdmin())
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Post("/generate", reportHandler.Generate)
	reports.Get("/history", reportHandler.List)
	reports.Get("/", reportHandler.Get)
}
