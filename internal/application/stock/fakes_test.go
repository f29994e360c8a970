package stock_test

import (
	"context"

	"github.com/bloodstock/blood-stock-service/internal/domain/entity"
	"github.com/bloodstock/blood-stock-service/internal/domain/repository"
)

// memCompanyRepo fake mínimo de empresas para los tests de registro.
type memCompanyRepo struct {
	companies map[string]*entity.Company
}

var _ repository.CompanyRepository = (*memCompanyRepo)(nil)

func companyRepoWith(ids ...string) *memCompanyRepo {
	r := &memCompanyRepo{companies: make(map[string]*entity.Company)}
	for _, id := range ids {
		r.companies[id] = &entity.Company{ID: id, Name: "Hospital " + id}
	}
	return r
}

func (r *memCompanyRepo) Create(_ context.Context, c *entity.Company) error {
	r.companies[c.ID] = c
	return nil
}

func (r *memCompanyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	c, ok := r.companies[id]
	if !ok {
		return nil, nil
	}
	copied := *c
	return &copied, nil
}

func (r *memCompanyRepo) List(_ context.Context) ([]*entity.Company, error) {
	out := make([]*entity.Company, 0, len(r.companies))
	for _, c := range r.companies {
		copied := *c
		out = append(out, &copied)
	}
	return out, nil
}
