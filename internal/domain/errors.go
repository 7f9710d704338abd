package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrInvalidInput         = errors.New("entrada inválida")
	ErrInsufficientStock    = errors.New("stock insuficiente")
	ErrStockAlreadyDeducted = errors.New("el stock del pedido ya fue descontado")
	ErrOrderRequired        = errors.New("el pedido es obligatorio")
	ErrOrderItemsMissing    = errors.New("el pedido no tiene ítems")
	ErrBillNumberExhausted  = errors.New("no se pudo reservar un número de cuenta libre")
)
