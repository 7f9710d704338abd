package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Comanda-api/internal/application/billing"
	"github.com/jhoicas/Comanda-api/internal/application/inventory"
	"github.com/jhoicas/Comanda-api/pkg/jwt"
	"github.com/jhoicas/Comanda-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	UsageUC   *inventory.UsageUseCase
	DeductUC  *inventory.DeductStockUseCase
	ReceiptUC *billing.ReceiptUseCase
	PDFUC     *billing.ReceiptPDFUseCase
	JWTSecret string
	Logger    *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}

	api := app.Group("/api")
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Consumo y verificación de insumos (cualquier rol)
	inventoryHandler := NewInventoryHandler(deps.UsageUC, deps.DeductUC, log)
	invGroup := protected.Group("/inventory")
	invGroup.Post("/usage", inventoryHandler.Usage)
	invGroup.Post("/check", inventoryHandler.Check)
	invGroup.Post("/usage-details", inventoryHandler.UsageDetails)

	// Recibos (cualquier rol)
	receiptHandler := NewReceiptHandler(deps.ReceiptUC, deps.PDFUC, log)
	protected.Post("/receipts/merge", receiptHandler.Merge)

	orders := protected.Group("/orders")
	orders.Post("/:id/receipt", receiptHandler.Generate)
	orders.Post("/:id/receipt.pdf", receiptHandler.DownloadPDF)

	// Descuento de stock (solo admin y manager)
	orders.Post("/:id/deduct-stock", RequireRole(jwt.RoleAdmin, jwt.RoleManager), inventoryHandler.DeductStock)
}
