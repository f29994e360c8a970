package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bloodstock/blood-stock-service/internal/domain"
	"github.com/bloodstock/blood-stock-service/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// La invariante del movimiento (quantityAfter = quantityBefore + movement) se
// valida en el constructor: un movimiento que no cuadra no puede existir.
// ──────────────────────────────────────────────────────────────────────────────

func TestNewStockMovement(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	t.Run("construye un movimiento que cuadra", func(t *testing.T) {
		before, _ := entity.NewQuantity(10)
		after, _ := entity.NewQuantity(7)

		m, err := entity.NewStockMovement(
			"mov-1", "stock-1", before, -3, after,
			"dr.garcia", "transfusión urgencias", now,
		)
		require.NoError(t, err)
		assert.Equal(t, "mov-1", m.ID)
		assert.Equal(t, "stock-1", m.StockID)
		assert.Equal(t, 10, m.QuantityBefore.Int())
		assert.Equal(t, -3, m.Movement)
		assert.Equal(t, 7, m.QuantityAfter.Int())
		assert.Equal(t, "dr.garcia", m.ActionBy)
		assert.Equal(t, now, m.CreatedAt)
	})

	t.Run("rechaza un movimiento que no cuadra", func(t *testing.T) {
		before, _ := entity.NewQuantity(10)
		after, _ := entity.NewQuantity(8) // 10 - 3 = 7, no 8

		_, err := entity.NewStockMovement(
			"mov-2", "stock-1", before, -3, after,
			"dr.garcia", "", now,
		)
		var invalid *domain.InvalidMovementError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, 10, invalid.QuantityBefore)
		assert.Equal(t, -3, invalid.Movement)
		assert.Equal(t, 8, invalid.QuantityAfter)
	})
}
