package repository

import (
	"context"

	"github.com/bloodstock/blood-stock-service/internal/domain/entity"
)

// CompanyRepository acceso a empresas.
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	List(ctx context.Context) ([]*entity.Company, error)
}
