package report

import (
	"context"
	"time"

	"github.com/bloodstock/blood-stock-service/internal/application/stock"
	"github.com/bloodstock/blood-stock-service/internal/domain"
	"github.com/bloodstock/blood-stock-service/internal/domain/entity"
	"github.com/bloodstock/blood-stock-service/internal/domain/repository"
)

// StockReportGenerator renderiza el reporte de existencias de una empresa.
type StockReportGenerator interface {
	GenerateStockReport(ctx context.Context, company *entity.Company, stocks []*entity.Stock, generatedAt time.Time) ([]byte, error)
}

// StockReportUseCase genera el PDF con las existencias actuales por tipo
// sanguíneo de una empresa.
type StockReportUseCase struct {
	stockRepo   repository.StockRepository
	companyRepo repository.CompanyRepository
	generator   StockReportGenerator
	clock       stock.Clock
}

// NewStockReportUseCase construye el caso de uso.
func NewStockReportUseCase(
	stockRepo repository.StockRepository,
	companyRepo repository.CompanyRepository,
	generator StockReportGenerator,
	clock stock.Clock,
) *StockReportUseCase {
	return &StockReportUseCase{stockRepo: stockRepo, companyRepo: companyRepo, generator: generator, clock: clock}
}

// Generate arma el reporte de una empresa. domain.ErrNotFound si no existe.
func (uc *StockReportUseCase) Generate(ctx context.Context, companyID string) ([]byte, error) {
	if companyID == "" {
		return nil, domain.ErrInvalidInput
	}
	company, err := uc.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}

	// Una empresa tiene a lo sumo 8 registros (uno por tipo sanguíneo).
	stocks, _, err := uc.stockRepo.List(ctx, repository.StockFilter{
		CompanyID: companyID,
		Page:      1,
		Limit:     len(entity.BloodTypes),
	})
	if err != nil {
		return nil, err
	}

	return uc.generator.GenerateStockReport(ctx, company, stocks, uc.clock.Now())
}
