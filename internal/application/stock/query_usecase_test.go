package stock_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bloodstock/blood-stock-service/internal/application/stock"
	"github.com/bloodstock/blood-stock-service/internal/domain"
	"github.com/bloodstock/blood-stock-service/internal/domain/entity"
)

func newQueryUC(store *memStore) *stock.QueryStockUseCase {
	return stock.NewQueryStockUseCase(&memStockRepo{store: store}, &memMovementRepo{store: store})
}

func TestListStocks(t *testing.T) {
	store := newMemStore(stockWith("stock-1", 10), stockWith("stock-2", 0))
	uc := newQueryUC(store)
	ctx := context.Background()

	t.Run("aplica defaults de paginación", func(t *testing.T) {
		page, err := uc.ListStocks(ctx, stock.ListStocksQuery{})
		require.NoError(t, err)
		assert.Equal(t, 1, page.Page)
		assert.Equal(t, 10, page.Limit)
		assert.Equal(t, 2, page.Total)
	})

	t.Run("rechaza limit por encima del máximo", func(t *testing.T) {
		_, err := uc.ListStocks(ctx, stock.ListStocksQuery{Limit: 101})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("rechaza tipo sanguíneo inválido", func(t *testing.T) {
		_, err := uc.ListStocks(ctx, stock.ListStocksQuery{BloodType: "Z+"})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestGetStockByID(t *testing.T) {
	store := newMemStore(stockWith("stock-1", 7))
	uc := newQueryUC(store)
	ctx := context.Background()

	t.Run("retorna la proyección del registro", func(t *testing.T) {
		view, err := uc.GetStockByID(ctx, "stock-1")
		require.NoError(t, err)
		assert.Equal(t, "stock-1", view.ID)
		assert.Equal(t, "company-1", view.CompanyID)
		assert.Equal(t, entity.BloodTypeOPositive, view.BloodType)
		assert.Equal(t, 7, view.Quantity)
	})

	t.Run("not found tipado cuando no existe", func(t *testing.T) {
		_, err := uc.GetStockByID(ctx, "no-existe")
		var notFound *domain.StockNotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, "no-existe", notFound.StockID)
	})

	t.Run("id vacío es entrada inválida", func(t *testing.T) {
		_, err := uc.GetStockByID(ctx, "")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestGetStockMovements(t *testing.T) {
	store := newMemStore(stockWith("stock-1", 10))
	engine := newEngine(store)
	ctx := context.Background()

	// Tres ajustes dejan tres movimientos en el libro mayor.
	for _, mv := range []int{5, -3, 2} {
		_, err := engine.Adjust(ctx, stock.AdjustStockInput{
			StockID: "stock-1", Movement: mv, ActionBy: "dr.garcia",
		})
		require.NoError(t, err)
	}

	uc := newQueryUC(store)

	t.Run("retorna los más recientes primero", func(t *testing.T) {
		movements, err := uc.GetStockMovements(ctx, "stock-1", 10)
		require.NoError(t, err)
		require.Len(t, movements, 3)
		assert.Equal(t, 2, movements[0].Movement)
		assert.Equal(t, -3, movements[1].Movement)
		assert.Equal(t, 5, movements[2].Movement)
		// Encadenados: before de cada uno es el after del siguiente más antiguo.
		assert.Equal(t, movements[1].QuantityAfter, movements[0].QuantityBefore)
		assert.Equal(t, movements[2].QuantityAfter, movements[1].QuantityBefore)
	})

	t.Run("respeta el limit", func(t *testing.T) {
		movements, err := uc.GetStockMovements(ctx, "stock-1", 2)
		require.NoError(t, err)
		assert.Len(t, movements, 2)
	})

	t.Run("rechaza limit por encima del máximo", func(t *testing.T) {
		_, err := uc.GetStockMovements(ctx, "stock-1", 201)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("not found tipado si el stock no existe", func(t *testing.T) {
		_, err := uc.GetStockMovements(ctx, "no-existe", 10)
		var notFound *domain.StockNotFoundError
		assert.ErrorAs(t, err, &notFound)
	})
}

func TestRegisterStock(t *testing.T) {
	ctx := context.Background()

	t.Run("crea el registro con cantidad cero", func(t *testing.T) {
		store := newMemStore()
		uc := stock.NewRegisterStockUseCase(
			&memStockRepo{store: store},
			companyRepoWith("company-1"),
			&seqIDs{},
			fixedClock{t: testNow},
		)
		view, err := uc.RegisterStock(ctx, "company-1", "o+")
		require.NoError(t, err)
		assert.Equal(t, "company-1", view.CompanyID)
		assert.Equal(t, entity.BloodTypeOPositive, view.BloodType)
		assert.Equal(t, 0, view.Quantity)
	})

	t.Run("empresa inexistente", func(t *testing.T) {
		store := newMemStore()
		uc := stock.NewRegisterStockUseCase(
			&memStockRepo{store: store}, companyRepoWith(), &seqIDs{}, fixedClock{t: testNow},
		)
		_, err := uc.RegisterStock(ctx, "company-x", "O+")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("par empresa y tipo duplicado", func(t *testing.T) {
		store := newMemStore(stockWith("stock-1", 10))
		uc := stock.NewRegisterStockUseCase(
			&memStockRepo{store: store}, companyRepoWith("company-1"), &seqIDs{}, fixedClock{t: testNow},
		)
		_, err := uc.RegisterStock(ctx, "company-1", "O+")
		assert.ErrorIs(t, err, domain.ErrDuplicate)
	})

	t.Run("tipo sanguíneo inválido", func(t *testing.T) {
		store := newMemStore()
		uc := stock.NewRegisterStockUseCase(
			&memStockRepo{store: store}, companyRepoWith("company-1"), &seqIDs{}, fixedClock{t: testNow},
		)
		_, err := uc.RegisterStock(ctx, "company-1", "Z+")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}
