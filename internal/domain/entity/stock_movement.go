package entity

import (
	"time"

	"github.com/bloodstock/blood-stock-service/internal/domain"
)

// StockMovement movimiento de stock: delta con signo aplicado a un registro,
// con cantidades antes/después para auditoría. Inmutable una vez creado;
// nunca se actualiza ni se elimina.
type StockMovement struct {
	ID             string
	StockID        string
	QuantityBefore Quantity
	Movement       int
	QuantityAfter  Quantity
	ActionBy       string
	Notes          string
	CreatedAt      time.Time
}

// NewStockMovement construye un movimiento validando la invariante
// quantityAfter = quantityBefore + movement. Un movimiento que la viola
// no puede existir, no solo fallar una validación posterior.
func NewStockMovement(
	id, stockID string,
	before Quantity,
	movement int,
	after Quantity,
	actionBy, notes string,
	createdAt time.Time,
) (*StockMovement, error) {
	if after.Int() != before.Int()+movement {
		return nil, &domain.InvalidMovementError{
			QuantityBefore: before.Int(),
			Movement:       movement,
			QuantityAfter:  after.Int(),
		}
	}
	return &StockMovement{
		ID:             id,
		StockID:        stockID,
		QuantityBefore: before,
		Movement:       movement,
		QuantityAfter:  after,
		ActionBy:       actionBy,
		Notes:          notes,
		CreatedAt:      createdAt,
	}, nil
}
