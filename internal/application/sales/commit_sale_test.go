package sales_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/application/inventory"
	"github.com/jhoicas/pos-api/internal/application/sales"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
	domainsale "github.com/jhoicas/pos-api/internal/domain/sale"
	"github.com/jhoicas/pos-api/pkg/logger"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// store estado en memoria compartido por los repos fake.
type store struct {
	products  map[string]*entity.Product
	sales     map[string]*entity.Sale
	saleItems []*entity.SaleItem
	movements []*entity.InventoryMovement
}

func newStore(products ...*entity.Product) *store {
	s := &store{products: make(map[string]*entity.Product), sales: make(map[string]*entity.Sale)}
	for _, p := range products {
		cp := *p
		s.products[p.ID] = &cp
	}
	return s
}

func (s *store) clone() *store {
	c := newStore()
	for id, p := range s.products {
		cp := *p
		c.products[id] = &cp
	}
	for id, sl := range s.sales {
		cp := *sl
		c.sales[id] = &cp
	}
	c.saleItems = append([]*entity.SaleItem(nil), s.saleItems...)
	c.movements = append([]*entity.InventoryMovement(nil), s.movements...)
	return c
}

// fakeProductRepo puerto de productos sobre el store.
type fakeProductRepo struct{ s *store }

func (r *fakeProductRepo) Create(p *entity.Product) error {
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) { return nil, nil }

func (r *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) { return r.GetByID(id) }

func (r *fakeProductRepo) Update(p *entity.Product) error { return nil }

func (r *fakeProductRepo) UpdateStock(productID string, quantity int) error {
	p, ok := r.s.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.StockQuantity = quantity
	return nil
}

func (r *fakeProductRepo) List(bool, int, int) ([]*entity.Product, error) { return nil, nil }
func (r *fakeProductRepo) ListLowStock(int) ([]*entity.Product, error)    { return nil, nil }
func (r *fakeProductRepo) Count() (int, error)                            { return len(r.s.products), nil }
func (r *fakeProductRepo) CountLowStock() (int, error)                    { return 0, nil }
func (r *fakeProductRepo) SetActive(string, bool) error                   { return nil }

// fakeMovementRepo ledger append-only sobre el store.
type fakeMovementRepo struct{ s *store }

func (r *fakeMovementRepo) Create(m *entity.InventoryMovement) error {
	cp := *m
	r.s.movements = append(r.s.movements, &cp)
	return nil
}

func (r *fakeMovementRepo) GetByID(string) (*entity.InventoryMovement, error) { return nil, nil }

func (r *fakeMovementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.InventoryMovement, error) {
	var out []*entity.InventoryMovement
	for _, m := range r.s.movements {
		if m.ProductID == productID {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

// fakeSaleRepo puerto de ventas sobre el store. Create replica el
// comportamiento del índice único sobre transaction_number.
type fakeSaleRepo struct{ s *store }

func (r *fakeSaleRepo) Create(sale *entity.Sale) error {
	for _, existing := range r.s.sales {
		if existing.TransactionNumber == sale.TransactionNumber {
			return fmt.Errorf("%w: número de transacción %s ya existe", domain.ErrConflict, sale.TransactionNumber)
		}
	}
	cp := *sale
	r.s.sales[sale.ID] = &cp
	return nil
}

func (r *fakeSaleRepo) CreateItem(item *entity.SaleItem) error {
	cp := *item
	r.s.saleItems = append(r.s.saleItems, &cp)
	return nil
}

func (r *fakeSaleRepo) GetByID(id string) (*entity.Sale, error) {
	s, ok := r.s.sales[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSaleRepo) GetByTransactionNumber(number string) (*entity.Sale, error) {
	for _, s := range r.s.sales {
		if s.TransactionNumber == number {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeSaleRepo) GetItemsBySaleID(saleID string) ([]*entity.SaleItem, error) {
	var out []*entity.SaleItem
	for _, it := range r.s.saleItems {
		if it.SaleID == saleID {
			cp := *it
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeSaleRepo) List(limit, offset int) ([]*entity.Sale, error) {
	var out []*entity.Sale
	for _, s := range r.s.sales {
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}

// fakeTxRunner unidad de trabajo con semántica copy-on-commit: el callback
// trabaja sobre una copia del store y los cambios solo se publican si retorna
// nil, igual que un Rollback real descarta la transacción.
type fakeTxRunner struct{ s *store }

func (r *fakeTxRunner) RunSale(ctx context.Context, fn func(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	movRepo repository.InventoryMovementRepository,
) error) error {
	work := r.s.clone()
	if err := fn(&fakeSaleRepo{work}, &fakeProductRepo{work}, &fakeMovementRepo{work}); err != nil {
		return err
	}
	*r.s = *work
	return nil
}

// numberSeq genera números con sufijos predefinidos (para forzar colisiones).
func numberSeq(suffixes ...int) *domainsale.NumberGenerator {
	i := 0
	now := func() time.Time { return time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC) }
	return domainsale.NewNumberGenerator("TXN", now, func(n int) int {
		s := suffixes[i]
		if i < len(suffixes)-1 {
			i++
		}
		return s - 1 // Next suma 1
	})
}

func newUseCase(s *store, numbers *domainsale.NumberGenerator, retries int) *sales.CommitSaleUseCase {
	return sales.NewCommitSaleUseCase(
		&fakeTxRunner{s},
		domainsale.NewBuilder(dec("0.08")),
		numbers,
		inventory.NewStockLedger(),
		&fakeSaleRepo{s},
		logger.Nop(),
		retries,
	)
}

func product(id string, price string, stock int) *entity.Product {
	return &entity.Product{ID: id, SKU: "SKU-" + id, Name: id, Price: dec(price), StockQuantity: stock, IsActive: true}
}

func TestCommitSale_CaminoFeliz(t *testing.T) {
	s := newStore(product("p-1", "10.00", 5), product("p-2", "3.50", 8))
	uc := newUseCase(s, numberSeq(1), 3)

	resp, err := uc.CommitSale(context.Background(), "cashier-1", dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{
			{ProductID: "p-1", Quantity: 2, UnitPrice: dec("10.00")},
			{ProductID: "p-2", Quantity: 1, UnitPrice: dec("3.50")},
		},
		PaymentMethod: entity.PaymentMethodCash,
		AmountPaid:    dec("30.00"),
	})
	require.NoError(t, err)

	assert.Equal(t, "TXN-20250901-0001", resp.TransactionNumber)
	assert.Equal(t, entity.SaleStatusCompleted, resp.Status)
	assert.True(t, resp.Subtotal.Equal(dec("23.50")), "subtotal: %s", resp.Subtotal)
	assert.True(t, resp.TaxAmount.Equal(dec("1.88")), "impuesto: %s", resp.TaxAmount)
	assert.True(t, resp.Total.Equal(dec("25.38")), "total: %s", resp.Total)
	assert.True(t, resp.ChangeAmount.Equal(dec("4.62")), "cambio: %s", resp.ChangeAmount)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "p-1", resp.Items[0].ProductID, "las líneas conservan el orden de entrada")
	assert.Equal(t, "p-2", resp.Items[1].ProductID)

	// Stock decrementado y una fila de ledger por línea, con la venta como referencia.
	assert.Equal(t, 3, s.products["p-1"].StockQuantity)
	assert.Equal(t, 7, s.products["p-2"].StockQuantity)
	require.Len(t, s.movements, 2)
	for _, m := range s.movements {
		assert.Equal(t, entity.MovementTypeSale, m.Type)
		assert.Equal(t, "TXN-20250901-0001", m.ReferenceNumber)
		assert.Equal(t, "Product sold", m.Reason)
		assert.Equal(t, m.StockBefore+m.QuantityChange, m.StockAfter)
	}
	assert.Len(t, s.sales, 1)
	assert.Len(t, s.saleItems, 2)
}

func TestCommitSale_StockInsuficienteNoDejaRastro(t *testing.T) {
	// La primera línea tiene stock de sobra; la segunda no. Nada debe quedar.
	s := newStore(product("p-1", "10.00", 5), product("p-2", "3.50", 1))
	uc := newUseCase(s, numberSeq(1), 3)

	_, err := uc.CommitSale(context.Background(), "cashier-1", dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{
			{ProductID: "p-1", Quantity: 2, UnitPrice: dec("10.00")},
			{ProductID: "p-2", Quantity: 3, UnitPrice: dec("3.50")},
		},
		PaymentMethod: entity.PaymentMethodCash,
		AmountPaid:    dec("50.00"),
	})
	require.Error(t, err)

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "p-2", stockErr.ProductID)
	assert.Equal(t, 3, stockErr.Requested)
	assert.Equal(t, 1, stockErr.Available)

	assert.Equal(t, 5, s.products["p-1"].StockQuantity, "rollback: la primera línea no debe persistir")
	assert.Equal(t, 1, s.products["p-2"].StockQuantity)
	assert.Empty(t, s.sales)
	assert.Empty(t, s.saleItems)
	assert.Empty(t, s.movements)
}

func TestCommitSale_ProductoInexistenteEsTerminal(t *testing.T) {
	s := newStore(product("p-1", "10.00", 5))
	uc := newUseCase(s, numberSeq(1), 3)

	_, err := uc.CommitSale(context.Background(), "cashier-1", dto.CreateSaleRequest{
		Items:         []dto.SaleItemRequest{{ProductID: "ghost", Quantity: 1, UnitPrice: dec("1.00")}},
		PaymentMethod: entity.PaymentMethodCash,
		AmountPaid:    dec("5.00"),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, s.sales)
}

func TestCommitSale_ValidacionNoTocaStorage(t *testing.T) {
	s := newStore(product("p-1", "10.00", 5))
	uc := newUseCase(s, numberSeq(1), 3)

	_, err := uc.CommitSale(context.Background(), "cashier-1", dto.CreateSaleRequest{
		Items:         nil, // carrito vacío
		PaymentMethod: entity.PaymentMethodCash,
		AmountPaid:    dec("5.00"),
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, s.sales)
	assert.Empty(t, s.movements)
}

func TestCommitSale_ColisionDeNumeroReintentaConNumeroFresco(t *testing.T) {
	s := newStore(product("p-1", "10.00", 5))
	// Venta preexistente que ocupa el sufijo 0001.
	s.sales["prior"] = &entity.Sale{ID: "prior", TransactionNumber: "TXN-20250901-0001"}

	uc := newUseCase(s, numberSeq(1, 2), 3)

	resp, err := uc.CommitSale(context.Background(), "cashier-1", dto.CreateSaleRequest{
		Items:         []dto.SaleItemRequest{{ProductID: "p-1", Quantity: 1, UnitPrice: dec("10.00")}},
		PaymentMethod: entity.PaymentMethodCash,
		AmountPaid:    dec("15.00"),
	})
	require.NoError(t, err)

	assert.Equal(t, "TXN-20250901-0002", resp.TransactionNumber, "el reintento usa un número fresco")
	assert.Len(t, s.sales, 2, "exactamente una venta nueva")
	assert.Equal(t, 4, s.products["p-1"].StockQuantity, "el stock se descuenta una sola vez")
	assert.Len(t, s.movements, 1)
}

func TestCommitSale_ReintentosAgotados(t *testing.T) {
	s := newStore(product("p-1", "10.00", 5))
	s.sales["prior"] = &entity.Sale{ID: "prior", TransactionNumber: "TXN-20250901-0001"}

	// El generador siempre produce el número ocupado.
	uc := newUseCase(s, numberSeq(1), 2)

	_, err := uc.CommitSale(context.Background(), "cashier-1", dto.CreateSaleRequest{
		Items:         []dto.SaleItemRequest{{ProductID: "p-1", Quantity: 1, UnitPrice: dec("10.00")}},
		PaymentMethod: entity.PaymentMethodCash,
		AmountPaid:    dec("15.00"),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConflict)

	assert.Len(t, s.sales, 1, "solo la venta preexistente")
	assert.Equal(t, 5, s.products["p-1"].StockQuantity, "ningún intento dejó stock descontado")
	assert.Empty(t, s.movements)
}

func TestCommitSale_UltimaUnidadUnSoloGanador(t *testing.T) {
	s := newStore(product("p-1", "10.00", 1))
	uc := newUseCase(s, numberSeq(1, 2, 3), 3)

	req := dto.CreateSaleRequest{
		Items:         []dto.SaleItemRequest{{ProductID: "p-1", Quantity: 1, UnitPrice: dec("10.00")}},
		PaymentMethod: entity.PaymentMethodCash,
		AmountPaid:    dec("15.00"),
	}

	_, err := uc.CommitSale(context.Background(), "cashier-1", req)
	require.NoError(t, err, "el primer commit gana la última unidad")

	_, err = uc.CommitSale(context.Background(), "cashier-2", req)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock, "el segundo commit no puede sobrevender")

	assert.Equal(t, 0, s.products["p-1"].StockQuantity)
	assert.Len(t, s.sales, 1)
	assert.Len(t, s.movements, 1)
}

func TestGetSale_NoEncontrada(t *testing.T) {
	s := newStore()
	uc := newUseCase(s, numberSeq(1), 3)

	_, err := uc.GetSale(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCommitSale_VentaConsultableDespuesDelCommit(t *testing.T) {
	s := newStore(product("p-1", "10.00", 5))
	uc := newUseCase(s, numberSeq(7), 3)

	resp, err := uc.CommitSale(context.Background(), "cashier-1", dto.CreateSaleRequest{
		Items:         []dto.SaleItemRequest{{ProductID: "p-1", Quantity: 2, UnitPrice: dec("10.00")}},
		PaymentMethod: entity.PaymentMethodCard,
		AmountPaid:    dec("21.60"),
	})
	require.NoError(t, err)

	got, err := uc.GetSale(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, resp.TransactionNumber, got.TransactionNumber)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 2, got.Items[0].Quantity)
}
