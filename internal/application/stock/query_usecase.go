package stock

import (
	"context"
	"time"

	"github.com/bloodstock/blood-stock-service/internal/domain"
	"github.com/bloodstock/blood-stock-service/internal/domain/entity"
	"github.com/bloodstock/blood-stock-service/internal/domain/repository"
)

// Límites de paginación para consultas de solo lectura.
const (
	defaultPageLimit    = 10
	maxPageLimit        = 100
	defaultHistoryLimit = 50
	maxHistoryLimit     = 200
)

// ListStocksQuery filtros opcionales + paginación para listar stocks.
type ListStocksQuery struct {
	CompanyID string
	BloodType string
	Page      int
	Limit     int
}

// StockView proyección de un registro de stock para la capa HTTP.
type StockView struct {
	ID        string
	CompanyID string
	BloodType entity.BloodType
	Quantity  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// StockPage página de resultados de ListStocks.
type StockPage struct {
	Items []*StockView
	Total int
	Page  int
	Limit int
}

// MovementView proyección de un movimiento para la capa HTTP.
type MovementView struct {
	ID             string
	StockID        string
	QuantityBefore int
	Movement       int
	QuantityAfter  int
	ActionBy       string
	Notes          string
	CreatedAt      time.Time
}

// QueryStockUseCase consultas de solo lectura sobre stocks y su historial.
// Sin riesgo de concurrencia más allá de la consistencia de lectura: los
// lectores solo ven estado committeado.
type QueryStockUseCase struct {
	stockRepo    repository.StockRepository
	movementRepo repository.StockMovementRepository
}

var _ StockReader = (*QueryStockUseCase)(nil)

// NewQueryStockUseCase construye el caso de uso de consultas.
func NewQueryStockUseCase(stockRepo repository.StockRepository, movementRepo repository.StockMovementRepository) *QueryStockUseCase {
	return &QueryStockUseCase{stockRepo: stockRepo, movementRepo: movementRepo}
}

// ListStocks lista registros de stock con filtros por empresa y tipo
// sanguíneo. Valida el tipo sanguíneo si viene; page >= 1, limit 1..100.
func (uc *QueryStockUseCase) ListStocks(ctx context.Context, query ListStocksQuery) (*StockPage, error) {
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = defaultPageLimit
	}
	if query.Limit > maxPageLimit {
		return nil, domain.ErrInvalidInput
	}

	filter := repository.StockFilter{
		CompanyID: query.CompanyID,
		Page:      query.Page,
		Limit:     query.Limit,
	}
	if query.BloodType != "" {
		bt, err := entity.ParseBloodType(query.BloodType)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		filter.BloodType = bt.String()
	}

	stocks, total, err := uc.stockRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]*StockView, 0, len(stocks))
	for _, s := range stocks {
		items = append(items, toStockView(s))
	}
	return &StockPage{Items: items, Total: total, Page: query.Page, Limit: query.Limit}, nil
}

// GetStockByID consulta puntual; *domain.StockNotFoundError si no existe.
func (uc *QueryStockUseCase) GetStockByID(ctx context.Context, stockID string) (*StockView, error) {
	if stockID == "" {
		return nil, domain.ErrInvalidInput
	}
	stk, err := uc.stockRepo.GetByID(ctx, stockID)
	if err != nil {
		return nil, err
	}
	if stk == nil {
		return nil, &domain.StockNotFoundError{StockID: stockID}
	}
	return toStockView(stk), nil
}

// GetStockMovements historial de movimientos, más recientes primero.
// limit se acota a 1..200; verifica primero que el stock exista.
func (uc *QueryStockUseCase) GetStockMovements(ctx context.Context, stockID string, limit int) ([]*MovementView, error) {
	if stockID == "" {
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		return nil, domain.ErrInvalidInput
	}

	stk, err := uc.stockRepo.GetByID(ctx, stockID)
	if err != nil {
		return nil, err
	}
	if stk == nil {
		return nil, &domain.StockNotFoundError{StockID: stockID}
	}

	movements, err := uc.movementRepo.ListByStock(ctx, stockID, limit)
	if err != nil {
		return nil, err
	}
	views := make([]*MovementView, 0, len(movements))
	for _, m := range movements {
		views = append(views, &MovementView{
			ID:             m.ID,
			StockID:        m.StockID,
			QuantityBefore: m.QuantityBefore.Int(),
			Movement:       m.Movement,
			QuantityAfter:  m.QuantityAfter.Int(),
			ActionBy:       m.ActionBy,
			Notes:          m.Notes,
			CreatedAt:      m.CreatedAt,
		})
	}
	return views, nil
}

func toStockView(s *entity.Stock) *StockView {
	return &StockView{
		ID:        s.ID,
		CompanyID: s.CompanyID,
		BloodType: s.BloodType,
		Quantity:  s.Quantity.Int(),
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
