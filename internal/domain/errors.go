package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrProductNotFound    = errors.New("producto no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrInvalidQuantity    = errors.New("cantidad inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrInsufficientStock  = errors.New("stock insuficiente")

	// Errores del motor de movimientos (recepción/despacho de órdenes).
	ErrOrderNotReceivable      = errors.New("la orden de compra no está pendiente de recepción")
	ErrOrderNotShippable       = errors.New("la orden de venta no está pendiente de despacho")
	ErrOrderNotPendingApproval = errors.New("la orden de venta no está pendiente de aprobación")
	ErrConcurrencyConflict     = errors.New("conflicto de concurrencia, reintente la operación")
)
