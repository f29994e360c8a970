package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/bloodstock/blood-stock-service/internal/domain/entity"
	"github.com/bloodstock/blood-stock-service/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL
// (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

const stockColumns = "id, company_id, blood_type, quantity, created_at, updated_at"

// GetByID obtiene un registro de stock; (nil, nil) si no existe.
func (r *StockRepo) GetByID(ctx context.Context, id string) (*entity.Stock, error) {
	query := `SELECT ` + stockColumns + ` FROM stocks WHERE id = $1`
	return r.scanOne(ctx, query, id)
}

// GetForUpdate obtiene el registro bloqueando la fila (SELECT ... FOR UPDATE).
// Serializa ajustes concurrentes al mismo stock; registros distintos no se
// bloquean entre sí. (nil, nil) si no existe: el motor decide el error.
func (r *StockRepo) GetForUpdate(ctx context.Context, id string) (*entity.Stock, error) {
	query := `SELECT ` + stockColumns + ` FROM stocks WHERE id = $1 FOR UPDATE`
	return r.scanOne(ctx, query, id)
}

// GetByCompanyAndBloodType busca el registro de un tipo sanguíneo en una
// empresa; (nil, nil) si no existe.
func (r *StockRepo) GetByCompanyAndBloodType(ctx context.Context, companyID string, bloodType entity.BloodType) (*entity.Stock, error) {
	query := `SELECT ` + stockColumns + ` FROM stocks WHERE company_id = $1 AND blood_type = $2`
	return r.scanOne(ctx, query, companyID, bloodType.String())
}

// Create inserta un registro de stock nuevo.
func (r *StockRepo) Create(ctx context.Context, stock *entity.Stock) error {
	query := `
		INSERT INTO stocks (id, company_id, blood_type, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		stock.ID, stock.CompanyID, stock.BloodType.String(),
		stock.Quantity.Int(), stock.CreatedAt, stock.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create stock: %w", err)
	}
	return nil
}

// UpdateQuantity escribe la nueva cantidad. Lo invoca el motor de ajustes
// dentro de su transacción, con la fila ya bloqueada por GetForUpdate.
func (r *StockRepo) UpdateQuantity(ctx context.Context, id string, quantity entity.Quantity, updatedAt time.Time) error {
	query := `UPDATE stocks SET quantity = $2, updated_at = $3 WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, quantity.Int(), updatedAt)
	if err != nil {
		return fmt.Errorf("update stock quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update stock quantity: fila %s no existe", id)
	}
	return nil
}

// List retorna la página solicitada y el total sin paginar.
func (r *StockRepo) List(ctx context.Context, filter repository.StockFilter) ([]*entity.Stock, int, error) {
	where := " WHERE 1=1"
	args := []any{}
	pos := 1
	if filter.CompanyID != "" {
		where += fmt.Sprintf(" AND company_id = $%d", pos)
		args = append(args, filter.CompanyID)
		pos++
	}
	if filter.BloodType != "" {
		where += fmt.Sprintf(" AND blood_type = $%d", pos)
		args = append(args, filter.BloodType)
		pos++
	}

	var total int
	if err := r.q.QueryRow(ctx, "SELECT COUNT(*) FROM stocks"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count stocks: %w", err)
	}

	query := "SELECT " + stockColumns + " FROM stocks" + where +
		fmt.Sprintf(" ORDER BY company_id, blood_type LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list stocks: %w", err)
	}
	defer rows.Close()

	var list []*entity.Stock
	for rows.Next() {
		s, err := scanStock(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, s)
	}
	return list, total, rows.Err()
}

func (r *StockRepo) scanOne(ctx context.Context, query string, args ...any) (*entity.Stock, error) {
	s, err := scanStock(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return s, nil
}

func scanStock(row pgx.Row) (*entity.Stock, error) {
	var s entity.Stock
	var bloodType string
	var quantity int
	if err := row.Scan(&s.ID, &s.CompanyID, &bloodType, &quantity, &s.CreatedAt, &s.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan stock: %w", err)
	}
	s.BloodType = entity.BloodType(bloodType)
	s.Quantity = entity.Quantity(quantity)
	return &s, nil
}
