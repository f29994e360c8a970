package stock

import (
	"context"
	"time"

	"github.com/bloodstock/blood-stock-service/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor de ajustes:
// o se persisten la nueva cantidad y el movimiento, o ninguno de los dos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		stockRepo repository.StockRepository,
		movementRepo repository.StockMovementRepository,
	) error) error
}

// IDGenerator genera identificadores únicos para nuevos movimientos.
type IDGenerator interface {
	NewID() string
}

// Clock provee la hora actual. Se captura una sola vez por ajuste para que
// el stock y el movimiento compartan el mismo timestamp.
type Clock interface {
	Now() time.Time
}

// Adjuster puerto de entrada del motor de ajustes (para handlers y tests).
type Adjuster interface {
	Adjust(ctx context.Context, input AdjustStockInput) (*AdjustStockResult, error)
}

// StockReader puerto de entrada de las consultas de stock.
type StockReader interface {
	ListStocks(ctx context.Context, query ListStocksQuery) (*StockPage, error)
	GetStockByID(ctx context.Context, stockID string) (*StockView, error)
	GetStockMovements(ctx context.Context, stockID string, limit int) ([]*MovementView, error)
}
