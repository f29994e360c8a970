package repository

import (
	"context"
	"time"

	"github.com/bloodstock/blood-stock-service/internal/domain/entity"
)

// StockFilter filtros y paginación para listar stocks.
type StockFilter struct {
	CompanyID string
	BloodType string
	Page      int // >= 1
	Limit     int // 1..100
}

// StockRepository acceso a la tabla stocks. Los métodos retornan (nil, nil)
// cuando el registro no existe; el caller decide si eso es un error.
type StockRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Stock, error)

	// GetForUpdate lee el registro bloqueando la fila (SELECT ... FOR UPDATE).
	// Solo tiene sentido dentro de una transacción del TxRunner.
	GetForUpdate(ctx context.Context, id string) (*entity.Stock, error)

	Create(ctx context.Context, stock *entity.Stock) error

	// UpdateQuantity escribe la nueva cantidad. Solo el motor de ajustes
	// debe invocarlo, dentro de su unidad atómica.
	UpdateQuantity(ctx context.Context, id string, quantity entity.Quantity, updatedAt time.Time) error

	GetByCompanyAndBloodType(ctx context.Context, companyID string, bloodType entity.BloodType) (*entity.Stock, error)

	// List retorna la página solicitada y el total sin paginar.
	List(ctx context.Context, filter StockFilter) ([]*entity.Stock, int, error)
}
