package repository

import (
	"context"

	"github.com/bloodstock/blood-stock-service/internal/domain/entity"
)

// StockMovementRepository bitácora append-only de movimientos.
type StockMovementRepository interface {
	// Create persiste un movimiento. Lo invoca únicamente el motor de
	// ajustes dentro de su transacción, junto con la actualización del stock.
	Create(ctx context.Context, movement *entity.StockMovement) error

	// ListByStock retorna los movimientos de un stock, más recientes primero,
	// hasta limit registros.
	ListByStock(ctx context.Context, stockID string, limit int) ([]*entity.StockMovement, error)
}
