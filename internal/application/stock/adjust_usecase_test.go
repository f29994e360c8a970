package stock_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bloodstock/blood-stock-service/internal/application/stock"
	"github.com/bloodstock/blood-stock-service/internal/domain"
	"github.com/bloodstock/blood-stock-service/internal/domain/entity"
	"github.com/bloodstock/blood-stock-service/internal/domain/repository"
	"github.com/bloodstock/blood-stock-service/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
//
// memTxRunner simula la semántica transaccional del TxRunner real: serializa
// las unidades con un mutex (equivalente al bloqueo de fila) y revierte al
// snapshot previo si la función retorna error. Así los tests verifican la
// atomicidad observable del motor sin una base de datos.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	mu        sync.Mutex
	stocks    map[string]*entity.Stock
	movements []*entity.StockMovement

	// Fallas de infraestructura inyectadas en UpdateQuantity, una por llamada.
	updateFailures int
	runCalls       int
}

func newMemStore(stocks ...*entity.Stock) *memStore {
	s := &memStore{stocks: make(map[string]*entity.Stock)}
	for _, stk := range stocks {
		copied := *stk
		s.stocks[stk.ID] = &copied
	}
	return s
}

type memSnapshot struct {
	stocks       map[string]entity.Stock
	movementsLen int
}

func (s *memStore) snapshotLocked() memSnapshot {
	snap := memSnapshot{stocks: make(map[string]entity.Stock, len(s.stocks)), movementsLen: len(s.movements)}
	for id, stk := range s.stocks {
		snap.stocks[id] = *stk
	}
	return snap
}

func (s *memStore) restoreLocked(snap memSnapshot) {
	s.stocks = make(map[string]*entity.Stock, len(snap.stocks))
	for id, stk := range snap.stocks {
		copied := stk
		s.stocks[id] = &copied
	}
	s.movements = s.movements[:snap.movementsLen]
}

type memTxRunner struct {
	store *memStore
}

var _ stock.TxRunner = (*memTxRunner)(nil)

func (r *memTxRunner) Run(_ context.Context, fn func(repository.StockRepository, repository.StockMovementRepository) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.runCalls++
	snap := r.store.snapshotLocked()
	if err := fn(&memStockRepo{store: r.store}, &memMovementRepo{store: r.store}); err != nil {
		r.store.restoreLocked(snap)
		return err
	}
	return nil
}

// memStockRepo opera sobre el store con el mutex ya tomado por el runner.
type memStockRepo struct {
	store *memStore
}

var _ repository.StockRepository = (*memStockRepo)(nil)

func (r *memStockRepo) GetByID(_ context.Context, id string) (*entity.Stock, error) {
	stk, ok := r.store.stocks[id]
	if !ok {
		return nil, nil
	}
	copied := *stk
	return &copied, nil
}

func (r *memStockRepo) GetForUpdate(ctx context.Context, id string) (*entity.Stock, error) {
	return r.GetByID(ctx, id)
}

func (r *memStockRepo) Create(_ context.Context, stk *entity.Stock) error {
	copied := *stk
	r.store.stocks[stk.ID] = &copied
	return nil
}

func (r *memStockRepo) UpdateQuantity(_ context.Context, id string, quantity entity.Quantity, updatedAt time.Time) error {
	if r.store.updateFailures > 0 {
		r.store.updateFailures--
		return fmt.Errorf("update stock: %w", errors.New("conexión perdida"))
	}
	stk, ok := r.store.stocks[id]
	if !ok {
		return fmt.Errorf("stock %s no existe", id)
	}
	stk.Quantity = quantity
	stk.UpdatedAt = updatedAt
	return nil
}

func (r *memStockRepo) GetByCompanyAndBloodType(_ context.Context, companyID string, bloodType entity.BloodType) (*entity.Stock, error) {
	for _, stk := range r.store.stocks {
		if stk.CompanyID == companyID && stk.BloodType == bloodType {
			copied := *stk
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memStockRepo) List(_ context.Context, _ repository.StockFilter) ([]*entity.Stock, int, error) {
	out := make([]*entity.Stock, 0, len(r.store.stocks))
	for _, stk := range r.store.stocks {
		copied := *stk
		out = append(out, &copied)
	}
	return out, len(out), nil
}

type memMovementRepo struct {
	store *memStore
}

var _ repository.StockMovementRepository = (*memMovementRepo)(nil)

func (r *memMovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	copied := *m
	r.store.movements = append(r.store.movements, &copied)
	return nil
}

func (r *memMovementRepo) ListByStock(_ context.Context, stockID string, limit int) ([]*entity.StockMovement, error) {
	out := make([]*entity.StockMovement, 0)
	for i := len(r.store.movements) - 1; i >= 0 && len(out) < limit; i-- {
		if r.store.movements[i].StockID == stockID {
			copied := *r.store.movements[i]
			out = append(out, &copied)
		}
	}
	return out, nil
}

// seqIDs genera mov-1, mov-2, ... de forma segura entre goroutines.
type seqIDs struct {
	mu sync.Mutex
	n  int
}

func (g *seqIDs) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("mov-%d", g.n)
}

type fixedClock struct {
	t time.Time
}

func (c fixedClock) Now() time.Time { return c.t }

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

var testNow = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

func stockWith(id string, quantity int) *entity.Stock {
	q, _ := entity.NewQuantity(quantity)
	return &entity.Stock{
		ID:        id,
		CompanyID: "company-1",
		BloodType: entity.BloodTypeOPositive,
		Quantity:  q,
		CreatedAt: testNow,
		UpdatedAt: testNow,
	}
}

func newEngine(store *memStore) *stock.AdjustStockUseCase {
	return stock.NewAdjustStockUseCase(&memTxRunner{store: store}, &seqIDs{}, fixedClock{t: testNow}, logger.Nop())
}

// ──────────────────────────────────────────────────────────────────────────────
// Casos
// ──────────────────────────────────────────────────────────────────────────────

func TestAdjust_EntradaYSalida(t *testing.T) {
	store := newMemStore(stockWith("stock-1", 10))
	engine := newEngine(store)
	ctx := context.Background()

	// Entrada: donación de 5 bolsas.
	res, err := engine.Adjust(ctx, stock.AdjustStockInput{
		StockID: "stock-1", Movement: 5, ActionBy: "dr.garcia", Notes: "donación",
	})
	require.NoError(t, err)
	assert.Equal(t, "stock-1", res.StockID)
	assert.Equal(t, "company-1", res.CompanyID)
	assert.Equal(t, entity.BloodTypeOPositive, res.BloodType)
	assert.Equal(t, 10, res.QuantityBefore)
	assert.Equal(t, 15, res.QuantityAfter)
	assert.Equal(t, testNow, res.Timestamp)

	// Salida: transfusión de 15 bolsas, deja el stock exactamente en cero.
	res, err = engine.Adjust(ctx, stock.AdjustStockInput{
		StockID: "stock-1", Movement: -15, ActionBy: "dr.garcia",
	})
	require.NoError(t, err)
	assert.Equal(t, 15, res.QuantityBefore)
	assert.Equal(t, 0, res.QuantityAfter)

	// Cada ajuste aceptado deja exactamente un movimiento, y cada movimiento
	// comparte timestamp con la actualización del stock.
	require.Len(t, store.movements, 2)
	assert.Equal(t, 5, store.movements[0].Movement)
	assert.Equal(t, -15, store.movements[1].Movement)
	for _, m := range store.movements {
		assert.Equal(t, m.QuantityBefore.Int()+m.Movement, m.QuantityAfter.Int())
		assert.Equal(t, testNow, m.CreatedAt)
	}
	assert.Equal(t, 0, store.stocks["stock-1"].Quantity.Int())
	assert.Equal(t, testNow, store.stocks["stock-1"].UpdatedAt)
}

func TestAdjust_StockInsuficiente(t *testing.T) {
	store := newMemStore(stockWith("stock-1", 3))
	engine := newEngine(store)

	_, err := engine.Adjust(context.Background(), stock.AdjustStockInput{
		StockID: "stock-1", Movement: -5, ActionBy: "dr.garcia",
	})

	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, "stock-1", insufficient.StockID)
	assert.Equal(t, 5, insufficient.Requested)
	assert.Equal(t, 3, insufficient.Available)

	// El rechazo no deja efectos observables: ni cantidad ni movimientos.
	assert.Equal(t, 3, store.stocks["stock-1"].Quantity.Int())
	assert.Empty(t, store.movements)
	// Y es un resultado de negocio: una sola unidad, sin reintentos.
	assert.Equal(t, 1, store.runCalls)
}

func TestAdjust_StockNoEncontrado(t *testing.T) {
	store := newMemStore()
	engine := newEngine(store)

	_, err := engine.Adjust(context.Background(), stock.AdjustStockInput{
		StockID: "no-existe", Movement: 1, ActionBy: "dr.garcia",
	})

	var notFound *domain.StockNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "no-existe", notFound.StockID)
	assert.Equal(t, 1, store.runCalls, "no encontrado no se reintenta")
}

func TestAdjust_ValidacionDeEntrada(t *testing.T) {
	store := newMemStore(stockWith("stock-1", 10))
	engine := newEngine(store)
	ctx := context.Background()

	cases := []struct {
		name  string
		input stock.AdjustStockInput
	}{
		{"movimiento cero", stock.AdjustStockInput{StockID: "stock-1", Movement: 0, ActionBy: "x"}},
		{"stockId vacío", stock.AdjustStockInput{StockID: "", Movement: 1, ActionBy: "x"}},
		{"actionBy vacío", stock.AdjustStockInput{StockID: "stock-1", Movement: 1}},
		{"actionBy muy largo", stock.AdjustStockInput{StockID: "stock-1", Movement: 1, ActionBy: longString(256)}},
		{"notes muy largas", stock.AdjustStockInput{StockID: "stock-1", Movement: 1, ActionBy: "x", Notes: longString(1001)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := engine.Adjust(ctx, tc.input)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}

	// La validación rechaza antes de tocar el almacén.
	assert.Equal(t, 0, store.runCalls)
	assert.Equal(t, 10, store.stocks["stock-1"].Quantity.Int())
}

func TestAdjust_ReintentaFallasDeInfraestructura(t *testing.T) {
	store := newMemStore(stockWith("stock-1", 10))
	store.updateFailures = 2 // las dos primeras unidades fallan, la tercera pasa
	engine := newEngine(store)

	res, err := engine.Adjust(context.Background(), stock.AdjustStockInput{
		StockID: "stock-1", Movement: -4, ActionBy: "dr.garcia",
	})
	require.NoError(t, err)
	assert.Equal(t, 6, res.QuantityAfter)
	assert.Equal(t, 3, store.runCalls)

	// Los intentos fallidos se revirtieron completos: queda exactamente un
	// movimiento, el del intento que committeó.
	require.Len(t, store.movements, 1)
	assert.Equal(t, -4, store.movements[0].Movement)
	assert.Equal(t, 6, store.stocks["stock-1"].Quantity.Int())
}

func TestAdjust_AgotaReintentos(t *testing.T) {
	store := newMemStore(stockWith("stock-1", 10))
	store.updateFailures = 10 // más fallas que intentos
	engine := newEngine(store)

	_, err := engine.Adjust(context.Background(), stock.AdjustStockInput{
		StockID: "stock-1", Movement: 1, ActionBy: "dr.garcia",
	})
	require.Error(t, err)
	assert.Equal(t, 3, store.runCalls)

	// Sin efectos parciales tras agotar los reintentos.
	assert.Equal(t, 10, store.stocks["stock-1"].Quantity.Int())
	assert.Empty(t, store.movements)
}

func TestAdjust_ConcurrenciaSerializada(t *testing.T) {
	const (
		initial     = 100
		deposits    = 50
		withdrawals = 50
	)
	store := newMemStore(stockWith("stock-1", initial))
	engine := newEngine(store)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, deposits+withdrawals)
	run := func(movement int) {
		defer wg.Done()
		_, err := engine.Adjust(ctx, stock.AdjustStockInput{
			StockID: "stock-1", Movement: movement, ActionBy: "worker",
		})
		errs <- err
	}
	for i := 0; i < deposits; i++ {
		wg.Add(1)
		go run(1)
	}
	for i := 0; i < withdrawals; i++ {
		wg.Add(1)
		go run(-1)
	}
	wg.Wait()
	close(errs)

	// Con 100 iniciales y 50 salidas de a una, ninguna puede quedar en
	// negativo: los 100 ajustes deben aceptarse.
	for err := range errs {
		require.NoError(t, err)
	}

	// La cantidad final refleja todos los ajustes y el libro mayor tiene
	// exactamente una entrada por ajuste, cada una cuadrada.
	assert.Equal(t, initial+deposits-withdrawals, store.stocks["stock-1"].Quantity.Int())
	require.Len(t, store.movements, deposits+withdrawals)
	sum := 0
	for _, m := range store.movements {
		assert.Equal(t, m.QuantityBefore.Int()+m.Movement, m.QuantityAfter.Int())
		sum += m.Movement
	}
	assert.Equal(t, deposits-withdrawals, sum)
}

func TestAdjust_ContextoCancelado(t *testing.T) {
	store := newMemStore(stockWith("stock-1", 10))
	store.updateFailures = 10
	engine := newEngine(store)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := engine.Adjust(ctx, stock.AdjustStockInput{
		StockID: "stock-1", Movement: 1, ActionBy: "dr.garcia",
	})
	require.Error(t, err)
	// Cancelado no insiste: a lo sumo una unidad ejecutada.
	assert.LessOrEqual(t, store.runCalls, 1)
}

func longString(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = 'x'
	}
	return string(b)
}
