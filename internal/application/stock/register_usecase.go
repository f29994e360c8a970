package stock

import (
	"context"

	"github.com/bloodstock/blood-stock-service/internal/domain"
	"github.com/bloodstock/blood-stock-service/internal/domain/entity"
	"github.com/bloodstock/blood-stock-service/internal/domain/repository"
)

// RegisterStockUseCase crea registros de stock. Los registros se crean
// explícitamente con cantidad cero; el motor de ajustes nunca crea registros,
// solo los modifica.
type RegisterStockUseCase struct {
	stockRepo   repository.StockRepository
	companyRepo repository.CompanyRepository
	ids         IDGenerator
	clock       Clock
}

// NewRegisterStockUseCase construye el caso de uso.
func NewRegisterStockUseCase(
	stockRepo repository.StockRepository,
	companyRepo repository.CompanyRepository,
	ids IDGenerator,
	clock Clock,
) *RegisterStockUseCase {
	return &RegisterStockUseCase{stockRepo: stockRepo, companyRepo: companyRepo, ids: ids, clock: clock}
}

// RegisterStock crea el registro (company, bloodType) con cantidad cero.
// Retorna domain.ErrNotFound si la empresa no existe y domain.ErrDuplicate
// si el par ya tiene registro.
func (uc *RegisterStockUseCase) RegisterStock(ctx context.Context, companyID, bloodType string) (*StockView, error) {
	if companyID == "" {
		return nil, domain.ErrInvalidInput
	}
	bt, err := entity.ParseBloodType(bloodType)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	company, err := uc.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}

	existing, err := uc.stockRepo.GetByCompanyAndBloodType(ctx, companyID, bt)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := uc.clock.Now()
	stk := &entity.Stock{
		ID:        uc.ids.NewID(),
		CompanyID: companyID,
		BloodType: bt,
		Quantity:  0,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.stockRepo.Create(ctx, stk); err != nil {
		return nil, err
	}
	return toStockView(stk), nil
}
