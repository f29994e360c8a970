package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrNegativeQuantity   = errors.New("la cantidad no puede ser negativa")
)

// StockNotFoundError indica que no existe registro de stock para el ID dado.
// Es un resultado de negocio esperado, no una falla de infraestructura.
type StockNotFoundError struct {
	StockID string
}

func (e *StockNotFoundError) Error() string {
	return fmt.Sprintf("stock no encontrado: %s", e.StockID)
}

// InsufficientStockError indica que una salida dejaría la cantidad en negativo.
// Requested es el valor absoluto del movimiento rechazado.
type InsufficientStockError struct {
	StockID   string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente: %s (solicitado %d, disponible %d)",
		e.StockID, e.Requested, e.Available)
}

// InvalidMovementError indica que un movimiento no cumple la invariante
// quantityAfter = quantityBefore + movement al construirse.
type InvalidMovementError struct {
	QuantityBefore int
	Movement       int
	QuantityAfter  int
}

func (e *InvalidMovementError) Error() string {
	return fmt.Sprintf("movimiento inválido: quantityAfter (%d) debe ser %d",
		e.QuantityAfter, e.QuantityBefore+e.Movement)
}
