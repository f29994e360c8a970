package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bloodstock/blood-stock-service/internal/application/stock"
	"github.com/bloodstock/blood-stock-service/internal/domain/repository"
)

var _ stock.TxRunner = (*TxRunner)(nil)

// Tope de espera por el bloqueo de fila: una unidad que no consigue el lock
// en este tiempo aborta en vez de quedar bloqueada indefinidamente.
const lockTimeout = "5s"

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL, entregando
// repositorios atados a esa tx. El motor de ajustes depende de esto para que
// la actualización de cantidad y el movimiento de auditoría sean una sola
// unidad: Commit si fn retorna nil, Rollback en cualquier otro caso.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback. Con el contexto cancelado la tx se revierte: la unidad
// siempre llega a un desenlace determinado.
func (r *TxRunner) Run(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
	movementRepo repository.StockMovementRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, "SET LOCAL lock_timeout = '"+lockTimeout+"'"); err != nil {
		return fmt.Errorf("set lock_timeout: %w", err)
	}

	stockRepo := NewStockRepository(tx)
	movementRepo := NewStockMovementRepository(tx)

	if err := fn(stockRepo, movementRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
