package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Comanda-api/internal/application/billing"
	"github.com/jhoicas/Comanda-api/internal/application/dto"
	"github.com/jhoicas/Comanda-api/pkg/logger"
)

// ReceiptHandler maneja agrupación de líneas y emisión de recibos (protegido).
type ReceiptHandler struct {
	receipts *billing.ReceiptUseCase
	pdf      *billing.ReceiptPDFUseCase
	log      *logger.Logger
}

// NewReceiptHandler construye el handler.
func NewReceiptHandler(receipts *billing.ReceiptUseCase, pdf *billing.ReceiptPDFUseCase, log *logger.Logger) *ReceiptHandler {
	return &ReceiptHandler{receipts: receipts, pdf: pdf, log: log}
}

// parseReceiptRequest el body es opcional; vacío equivale a {}.
func parseReceiptRequest(c *fiber.Ctx) (dto.GenerateReceiptRequest, bool, error) {
	var in dto.GenerateReceiptRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return in, false, invalidBody(c)
		}
	}
	if err := dto.Validate(in); err != nil {
		return in, false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	return in, true, nil
}

// Merge godoc
// @Summary      Agrupar líneas iguales para el recibo
// @Tags         receipts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OrderItemsRequest  true  "líneas del pedido"
// @Success      200   {object}  dto.MergeItemsResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/receipts/merge [post]
func (h *ReceiptHandler) Merge(c *fiber.Ctx) error {
	if GetMerchantID(c) == "" {
		return unauthorized(c)
	}
	in, ok, err := parseItems(c)
	if !ok {
		return err
	}
	return c.JSON(h.receipts.MergeItems(in))
}

// Generate godoc
// @Summary      Generar recibo de un pedido
// @Description  billNumber reimprime un recibo existente; vacío reserva uno nuevo.
// @Tags         receipts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true   "id del pedido"
// @Param        body  body  dto.GenerateReceiptRequest  false  "mesa, local y número de cuenta opcionales"
// @Success      201   {object}  dto.ReceiptResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/receipt [post]
func (h *ReceiptHandler) Generate(c *fiber.Ctx) error {
	merchantID := GetMerchantID(c)
	userID := GetUserID(c)
	if merchantID == "" || userID == "" {
		return unauthorized(c)
	}
	in, ok, err := parseReceiptRequest(c)
	if !ok {
		return err
	}
	out, err := h.receipts.GenerateForOrder(c.UserContext(), merchantID, userID, c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// DownloadPDF godoc
// @Summary      Recibo del pedido en PDF (ticket 80 mm)
// @Tags         receipts
// @Security     Bearer
// @Accept       json
// @Produce      application/pdf
// @Param        id    path  string                      true   "id del pedido"
// @Param        body  body  dto.GenerateReceiptRequest  false  "mesa, local y número de cuenta opcionales"
// @Success      200   {file}    binary
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/receipt.pdf [post]
func (h *ReceiptHandler) DownloadPDF(c *fiber.Ctx) error {
	merchantID := GetMerchantID(c)
	userID := GetUserID(c)
	if merchantID == "" || userID == "" {
		return unauthorized(c)
	}
	in, ok, err := parseReceiptRequest(c)
	if !ok {
		return err
	}
	pdfBytes, filename, err := h.pdf.DownloadReceiptPDF(c.UserContext(), merchantID, userID, c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(pdfBytes)
}
