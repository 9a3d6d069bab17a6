package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Facturas-api/internal/application/analytics"
	"github.com/jhoicas/Facturas-api/internal/application/audit"
	"github.com/jhoicas/Facturas-api/internal/application/auth"
	"github.com/jhoicas/Facturas-api/internal/application/billing"
	"github.com/jhoicas/Facturas-api/internal/application/inventory"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AppName     string
	AuthUC      *auth.AuthUseCase
	ClientUC    *billing.ClientUseCase
	InvoiceUC   *billing.InvoiceUseCase
	DocumentUC  *billing.DocumentUseCase
	CatalogUC   *inventory.CatalogUseCase
	DashboardUC *analytics.DashboardUseCase
	Audit       *audit.Recorder
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})

	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	clients := protected.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientUC)
	clients.Get("/", clientHandler.List)
	clients.Post("/", clientHandler.Create)
	clients.Get("/:id", clientHandler.GetByID)
	clients.Put("/:id", clientHandler.Update)
	clients.Delete("/:id", clientHandler.Delete)

	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.CatalogUC)
	items.Get("/", itemHandler.List)
	items.Post("/", itemHandler.Create)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", itemHandler.Update)
	items.Put("/:id/stock", itemHandler.Restock)
	items.Delete("/:id", itemHandler.Delete)

	// Las rutas fijas van antes de /:id
	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.DocumentUC)
	invoices.Get("/", invoiceHandler.List)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/next-number", invoiceHandler.NextNumber)
	invoices.Post("/sweep-overdue", invoiceHandler.SweepOverdue)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Post("/:id/send", invoiceHandler.Send)
	invoices.Post("/:id/pay", invoiceHandler.Pay)
	invoices.Delete("/:id", invoiceHandler.Delete)
	invoices.Get("/:id/pdf", invoiceHandler.PDF)
	invoices.Get("/:id/xml", invoiceHandler.XML)

	analyticsGroup := protected.Group("/analytics")
	analyticsHandler := NewAnalyticsHandler(deps.DashboardUC)
	analyticsGroup.Get("/stats", analyticsHandler.Stats)
	analyticsGroup.Get("/revenue", analyticsHandler.Revenue)
	analyticsGroup.Get("/summary", analyticsHandler.Summary)

	auditHandler := NewAuditHandler(deps.Audit)
	protected.Get("/audit-logs", auditHandler.List)
}
