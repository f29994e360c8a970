package stock

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/bloodstock/blood-stock-service/internal/domain"
	"github.com/bloodstock/blood-stock-service/internal/domain/entity"
	"github.com/bloodstock/blood-stock-service/internal/domain/repository"
	"github.com/bloodstock/blood-stock-service/pkg/logger"
)

// Política de reintentos ante fallas de infraestructura. Los resultados de
// negocio (no encontrado, stock insuficiente) nunca se reintentan.
const (
	maxAttempts    = 3
	backoffBase    = 50 * time.Millisecond
	maxActionByLen = 255
	maxNotesLen    = 1000
)

// AdjustStockInput entrada para un ajuste de stock.
type AdjustStockInput struct {
	StockID  string
	Movement int // con signo: positivo entrada, negativo salida; nunca cero
	ActionBy string
	Notes    string
}

// AdjustStockResult snapshot antes/después de un ajuste aceptado.
type AdjustStockResult struct {
	StockID        string
	CompanyID      string
	BloodType      entity.BloodType
	QuantityBefore int
	QuantityAfter  int
	Timestamp      time.Time
}

// AdjustStockUseCase motor de ajustes: lee la cantidad actual con bloqueo de
// fila, valida el movimiento, y persiste la nueva cantidad junto con el
// movimiento de auditoría en una sola transacción. Dos ajustes concurrentes
// sobre el mismo stock se serializan por el bloqueo; sobre stocks distintos
// avanzan en paralelo.
type AdjustStockUseCase struct {
	txRunner TxRunner
	ids      IDGenerator
	clock    Clock
	log      *logger.Logger
}

var _ Adjuster = (*AdjustStockUseCase)(nil)

// NewAdjustStockUseCase construye el motor.
func NewAdjustStockUseCase(txRunner TxRunner, ids IDGenerator, clock Clock, log *logger.Logger) *AdjustStockUseCase {
	return &AdjustStockUseCase{txRunner: txRunner, ids: ids, clock: clock, log: log}
}

// Adjust aplica un movimiento con signo al stock indicado.
//
// Retorna *domain.StockNotFoundError si el registro no existe y
// *domain.InsufficientStockError si el resultado quedaría negativo; en ambos
// casos la transacción se revierte sin efectos observables. Las fallas de
// infraestructura reintentan la unidad completa hasta maxAttempts veces con
// backoff con jitter, de modo que nunca queda una cantidad actualizada sin su
// movimiento ni al revés.
func (uc *AdjustStockUseCase) Adjust(ctx context.Context, input AdjustStockInput) (*AdjustStockResult, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		result, err := uc.adjustOnce(ctx, input)
		if err == nil {
			return result, nil
		}
		if isBusinessError(err) || ctx.Err() != nil {
			return nil, err
		}
		lastErr = err
		if attempt < maxAttempts {
			uc.log.Warn().
				Err(err).
				Str("stock_id", input.StockID).
				Int("attempt", attempt).
				Msg("ajuste de stock falló, reintentando")
			select {
			case <-time.After(jitteredBackoff(attempt)):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	return nil, fmt.Errorf("ajustar stock %s: %w", input.StockID, lastErr)
}

// adjustOnce ejecuta una unidad atómica completa: lock de fila, validación,
// update de cantidad e inserción del movimiento, con Commit o Rollback.
func (uc *AdjustStockUseCase) adjustOnce(ctx context.Context, input AdjustStockInput) (*AdjustStockResult, error) {
	var result *AdjustStockResult
	err := uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		stk, err := stockRepo.GetForUpdate(ctx, input.StockID)
		if err != nil {
			return err
		}
		if stk == nil {
			return &domain.StockNotFoundError{StockID: input.StockID}
		}

		before := stk.Quantity
		after, err := before.Apply(input.Movement)
		if err != nil {
			return &domain.InsufficientStockError{
				StockID:   input.StockID,
				Requested: abs(input.Movement),
				Available: before.Int(),
			}
		}

		// Un solo timestamp y un solo ID por ajuste: el stock y el movimiento
		// deben coincidir.
		now := uc.clock.Now()
		movement, err := entity.NewStockMovement(
			uc.ids.NewID(), stk.ID,
			before, input.Movement, after,
			input.ActionBy, input.Notes, now,
		)
		if err != nil {
			return err
		}

		if err := stockRepo.UpdateQuantity(ctx, stk.ID, after, now); err != nil {
			return err
		}
		if err := movementRepo.Create(ctx, movement); err != nil {
			return err
		}

		result = &AdjustStockResult{
			StockID:        stk.ID,
			CompanyID:      stk.CompanyID,
			BloodType:      stk.BloodType,
			QuantityBefore: before.Int(),
			QuantityAfter:  after.Int(),
			Timestamp:      now,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (in AdjustStockInput) validate() error {
	if in.StockID == "" || in.Movement == 0 {
		return domain.ErrInvalidInput
	}
	if in.ActionBy == "" || len(in.ActionBy) > maxActionByLen {
		return domain.ErrInvalidInput
	}
	if len(in.Notes) > maxNotesLen {
		return domain.ErrInvalidInput
	}
	return nil
}

// isBusinessError distingue resultados de negocio esperados de fallas de
// infraestructura: solo las segundas se reintentan.
func isBusinessError(err error) bool {
	var notFound *domain.StockNotFoundError
	var insufficient *domain.InsufficientStockError
	var invalidMov *domain.InvalidMovementError
	return errors.As(err, &notFound) ||
		errors.As(err, &insufficient) ||
		errors.As(err, &invalidMov) ||
		errors.Is(err, domain.ErrInvalidInput)
}

func jitteredBackoff(attempt int) time.Duration {
	base := backoffBase << (attempt - 1)
	return base + time.Duration(rand.Int63n(int64(backoffBase)))
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
