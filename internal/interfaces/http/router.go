package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/hisaab-kitaab/internal/application/auth"
	"github.com/jhoicas/hisaab-kitaab/internal/application/invoicing"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	InvoiceUC *invoicing.InvoiceUseCase
	PricingUC *invoicing.PricingUseCase
	ExportUC  *invoicing.ExportUseCase
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	pricingHandler := NewPricingHandler(deps.PricingUC)
	protected.Post("/pricing/row", pricingHandler.ComputeRow)

	// Las rutas fijas van antes de /:id
	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.ExportUC)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/new", invoiceHandler.New)
	invoices.Get("/export.xlsx", invoiceHandler.ExportXLSX)
	invoices.Post("/preview.pdf", invoiceHandler.PreviewPDF)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Put("/:id", invoiceHandler.Update)
	invoices.Patch("/:id/status", invoiceHandler.ToggleStatus)
	invoices.Delete("/:id", invoiceHandler.Delete)
	invoices.Get("/:id/pdf", invoiceHandler.DownloadPDF)
}
