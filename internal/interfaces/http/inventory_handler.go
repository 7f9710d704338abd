package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Comanda-api/internal/application/dto"
	"github.com/jhoicas/Comanda-api/internal/application/inventory"
	"github.com/jhoicas/Comanda-api/pkg/logger"
)

// InventoryHandler maneja consumo, verificación y descuento de insumos (protegido).
type InventoryHandler struct {
	usage  *inventory.UsageUseCase
	deduct *inventory.DeductStockUseCase
	log    *logger.Logger
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(usage *inventory.UsageUseCase, deduct *inventory.DeductStockUseCase, log *logger.Logger) *InventoryHandler {
	return &InventoryHandler{usage: usage, deduct: deduct, log: log}
}

// parseItems lee y valida el body con las líneas del pedido.
func parseItems(c *fiber.Ctx) (dto.OrderItemsRequest, bool, error) {
	var in dto.OrderItemsRequest
	if err := c.BodyParser(&in); err != nil {
		return in, false, invalidBody(c)
	}
	if err := dto.Validate(in); err != nil {
		return in, false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	return in, true, nil
}

// Usage godoc
// @Summary      Consumo de insumos de un pedido
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OrderItemsRequest  true  "líneas del pedido (plato embebido o dishId)"
// @Success      200   {object}  dto.UsageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/usage [post]
func (h *InventoryHandler) Usage(c *fiber.Ctx) error {
	merchantID := GetMerchantID(c)
	if merchantID == "" {
		return unauthorized(c)
	}
	in, ok, err := parseItems(c)
	if !ok {
		return err
	}
	out, err := h.usage.OrderUsage(c.UserContext(), merchantID, in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Check godoc
// @Summary      Verificar stock para un pedido
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OrderItemsRequest  true  "líneas del pedido"
// @Success      200   {object}  dto.SufficiencyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/check [post]
func (h *InventoryHandler) Check(c *fiber.Ctx) error {
	merchantID := GetMerchantID(c)
	if merchantID == "" {
		return unauthorized(c)
	}
	in, ok, err := parseItems(c)
	if !ok {
		return err
	}
	out, err := h.usage.CheckOrder(c.UserContext(), merchantID, in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// UsageDetails godoc
// @Summary      Detalle de consumo por insumo
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OrderItemsRequest  true  "líneas del pedido"
// @Success      200   {object}  dto.UsageDetailsResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/usage-details [post]
func (h *InventoryHandler) UsageDetails(c *fiber.Ctx) error {
	merchantID := GetMerchantID(c)
	if merchantID == "" {
		return unauthorized(c)
	}
	in, ok, err := parseItems(c)
	if !ok {
		return err
	}
	rows, err := h.usage.UsageDetails(c.UserContext(), merchantID, in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.UsageDetailsResponse{Total: len(rows), Items: rows})
}

// DeductStock godoc
// @Summary      Descontar del inventario el consumo de un pedido
// @Description  Una sola vez por pedido; un segundo intento responde 409 STOCK_ALREADY_DEDUCTED.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "id del pedido"
// @Success      201  {object}  dto.DeductStockResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.InsufficientStockResponse  "stock insuficiente o pedido ya descontado"
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/deduct-stock [post]
func (h *InventoryHandler) DeductStock(c *fiber.Ctx) error {
	merchantID := GetMerchantID(c)
	userID := GetUserID(c)
	if merchantID == "" || userID == "" {
		return unauthorized(c)
	}
	out, err := h.deduct.DeductForOrder(c.UserContext(), merchantID, userID, c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
