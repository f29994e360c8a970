package postgres

import (
	"context"
	"fmt"

	"github.com/bloodstock/blood-stock-service/internal/domain/entity"
	"github.com/bloodstock/blood-stock-service/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo bitácora de movimientos sobre PostgreSQL. La tabla es
// append-only: no hay UPDATE ni DELETE.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste un movimiento. Se invoca dentro de la transacción del motor
// de ajustes, junto con la actualización del stock.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, stock_id, quantity_before, movement, quantity_after, action_by, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.StockID, m.QuantityBefore.Int(), m.Movement, m.QuantityAfter.Int(),
		m.ActionBy, m.Notes, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// ListByStock lista los movimientos de un stock, más recientes primero.
func (r *StockMovementRepo) ListByStock(ctx context.Context, stockID string, limit int) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, stock_id, quantity_before, movement, quantity_after, action_by, notes, created_at
		FROM stock_movements
		WHERE stock_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2`
	rows, err := r.q.Query(ctx, query, stockID, limit)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		var before, after int
		if err := rows.Scan(&m.ID, &m.StockID, &before, &m.Movement, &after,
			&m.ActionBy, &m.Notes, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		m.QuantityBefore = entity.Quantity(before)
		m.QuantityAfter = entity.Quantity(after)
		list = append(list, &m)
	}
	return list, rows.Err()
}
