package inventory_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-api/internal/application/inventory"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
)

// memProductRepo implementación en memoria del puerto de productos.
type memProductRepo struct {
	products map[string]*entity.Product
}

func newMemProductRepo(products ...*entity.Product) *memProductRepo {
	r := &memProductRepo{products: make(map[string]*entity.Product)}
	for _, p := range products {
		cp := *p
		r.products[p.ID] = &cp
	}
	return r
}

func (r *memProductRepo) Create(p *entity.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *memProductRepo) Update(p *entity.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *memProductRepo) UpdateStock(productID string, quantity int) error {
	p, ok := r.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.StockQuantity = quantity
	return nil
}

func (r *memProductRepo) List(onlyActive bool, limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}
func (r *memProductRepo) ListLowStock(limit int) ([]*entity.Product, error) { return nil, nil }
func (r *memProductRepo) Count() (int, error)                               { return len(r.products), nil }
func (r *memProductRepo) CountLowStock() (int, error)                       { return 0, nil }
func (r *memProductRepo) SetActive(id string, active bool) error            { return nil }

// memMovementRepo ledger en memoria, append-only.
type memMovementRepo struct {
	movements []*entity.InventoryMovement
}

func (r *memMovementRepo) Create(m *entity.InventoryMovement) error {
	cp := *m
	r.movements = append(r.movements, &cp)
	return nil
}

func (r *memMovementRepo) GetByID(id string) (*entity.InventoryMovement, error) {
	for _, m := range r.movements {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memMovementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.InventoryMovement, error) {
	var out []*entity.InventoryMovement
	for _, m := range r.movements {
		if m.ProductID == productID {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func testProduct(id string, stock int) *entity.Product {
	return &entity.Product{ID: id, SKU: "SKU-" + id, Name: "Producto " + id, StockQuantity: stock, IsActive: true}
}

func TestApply_EntradaDeStock(t *testing.T) {
	products := newMemProductRepo(testProduct("p-1", 10))
	movements := &memMovementRepo{}
	ledger := inventory.NewStockLedger()
	now := time.Now()

	mov, err := ledger.Apply(products, movements, inventory.MovementInput{
		ProductID:      "p-1",
		UserID:         "u-1",
		Type:           entity.MovementTypeStockIn,
		QuantityChange: 5,
		Reason:         "Restock",
	}, now)
	require.NoError(t, err)

	assert.Equal(t, 10, mov.StockBefore)
	assert.Equal(t, 15, mov.StockAfter)
	assert.Equal(t, 5, mov.QuantityChange)
	assert.NotEmpty(t, mov.ID)

	p, _ := products.GetByID("p-1")
	assert.Equal(t, 15, p.StockQuantity, "el stock del producto debe reflejar el movimiento")
	assert.Len(t, movements.movements, 1)
}

func TestApply_SalidaPorVenta(t *testing.T) {
	products := newMemProductRepo(testProduct("p-1", 10))
	movements := &memMovementRepo{}
	ledger := inventory.NewStockLedger()

	mov, err := ledger.Apply(products, movements, inventory.MovementInput{
		ProductID:       "p-1",
		UserID:          "u-1",
		Type:            entity.MovementTypeSale,
		QuantityChange:  -3,
		Reason:          "Product sold",
		ReferenceNumber: "TXN-20250901-0001",
	}, time.Now())
	require.NoError(t, err)

	assert.Equal(t, 10, mov.StockBefore)
	assert.Equal(t, 7, mov.StockAfter)
	assert.Equal(t, "TXN-20250901-0001", mov.ReferenceNumber)
}

func TestApply_StockInsuficienteEnSalida(t *testing.T) {
	products := newMemProductRepo(testProduct("p-1", 2))
	movements := &memMovementRepo{}
	ledger := inventory.NewStockLedger()

	_, err := ledger.Apply(products, movements, inventory.MovementInput{
		ProductID:      "p-1",
		UserID:         "u-1",
		Type:           entity.MovementTypeSale,
		QuantityChange: -3,
	}, time.Now())
	require.Error(t, err)

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "p-1", stockErr.ProductID)
	assert.Equal(t, 3, stockErr.Requested)
	assert.Equal(t, 2, stockErr.Available)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Nada persistido: ni stock ni fila de auditoría.
	p, _ := products.GetByID("p-1")
	assert.Equal(t, 2, p.StockQuantity)
	assert.Empty(t, movements.movements)
}

func TestApply_AjusteNegativoBajoCeroEsValidacion(t *testing.T) {
	products := newMemProductRepo(testProduct("p-1", 2))
	movements := &memMovementRepo{}
	ledger := inventory.NewStockLedger()

	_, err := ledger.Apply(products, movements, inventory.MovementInput{
		ProductID:      "p-1",
		UserID:         "u-1",
		Type:           entity.MovementTypeAdjustment,
		QuantityChange: -5,
	}, time.Now())
	require.Error(t, err)

	// Un ajuste no es salida: el piso cero se reporta como validación.
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.NotErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestApply_HastaExactamenteCero(t *testing.T) {
	products := newMemProductRepo(testProduct("p-1", 3))
	movements := &memMovementRepo{}
	ledger := inventory.NewStockLedger()

	mov, err := ledger.Apply(products, movements, inventory.MovementInput{
		ProductID:      "p-1",
		UserID:         "u-1",
		Type:           entity.MovementTypeSale,
		QuantityChange: -3,
	}, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 0, mov.StockAfter, "vender la última unidad deja stock exactamente en cero")
}

func TestApply_ProductoInexistente(t *testing.T) {
	products := newMemProductRepo()
	movements := &memMovementRepo{}
	ledger := inventory.NewStockLedger()

	_, err := ledger.Apply(products, movements, inventory.MovementInput{
		ProductID:      "nope",
		UserID:         "u-1",
		Type:           entity.MovementTypeStockIn,
		QuantityChange: 1,
	}, time.Now())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestApply_ReplayReconstruyeElStock(t *testing.T) {
	products := newMemProductRepo(testProduct("p-1", 0))
	movements := &memMovementRepo{}
	ledger := inventory.NewStockLedger()
	now := time.Now()

	steps := []inventory.MovementInput{
		{ProductID: "p-1", UserID: "u-1", Type: entity.MovementTypeStockIn, QuantityChange: 20},
		{ProductID: "p-1", UserID: "u-1", Type: entity.MovementTypeSale, QuantityChange: -4},
		{ProductID: "p-1", UserID: "u-1", Type: entity.MovementTypeAdjustment, QuantityChange: -1},
		{ProductID: "p-1", UserID: "u-1", Type: entity.MovementTypeStockOut, QuantityChange: -5},
	}
	for _, in := range steps {
		_, err := ledger.Apply(products, movements, in, now)
		require.NoError(t, err)
	}

	// Reproducir los movimientos desde cero llega al mismo stock final.
	replayed := 0
	for _, m := range movements.movements {
		assert.Equal(t, replayed, m.StockBefore, "cada movimiento parte del stock que dejó el anterior")
		replayed += m.QuantityChange
		assert.Equal(t, replayed, m.StockAfter)
	}
	p, _ := products.GetByID("p-1")
	assert.Equal(t, replayed, p.StockQuantity)
	assert.Equal(t, 10, p.StockQuantity)
}
