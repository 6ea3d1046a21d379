package sale_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/sale"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestBuild_TotalesConImpuesto(t *testing.T) {
	b := sale.NewBuilder(dec("0.08"))

	s, items, err := b.Build("user-1", []sale.CartItem{
		{ProductID: "p-1", Quantity: 2, UnitPrice: dec("10.00")},
	}, sale.Payment{
		Method:     entity.PaymentMethodCash,
		AmountPaid: dec("25.00"),
	})
	require.NoError(t, err)
	require.Len(t, items, 1)

	assert.True(t, s.Subtotal.Equal(dec("20.00")), "subtotal: %s", s.Subtotal)
	assert.True(t, s.TaxAmount.Equal(dec("1.60")), "impuesto: %s", s.TaxAmount)
	assert.True(t, s.Total.Equal(dec("21.60")), "total: %s", s.Total)
	assert.True(t, s.ChangeAmount.Equal(dec("3.40")), "cambio: %s", s.ChangeAmount)
	assert.Equal(t, entity.SaleStatusCompleted, s.Status)
	assert.True(t, items[0].TotalPrice.Equal(dec("20.00")))

	// El builder es puro: no asigna identidad ni timestamps.
	assert.Empty(t, s.ID)
	assert.Empty(t, s.TransactionNumber)
	assert.True(t, s.CreatedAt.IsZero())
}

func TestBuild_DescuentoAplicadoDespuesDeImpuesto(t *testing.T) {
	b := sale.NewBuilder(dec("0.08"))

	s, _, err := b.Build("user-1", []sale.CartItem{
		{ProductID: "p-1", Quantity: 1, UnitPrice: dec("100.00")},
	}, sale.Payment{
		Method:         entity.PaymentMethodCard,
		AmountPaid:     dec("103.00"),
		DiscountAmount: dec("5.00"),
	})
	require.NoError(t, err)

	// total = 100 + 8 - 5 = 103
	assert.True(t, s.Total.Equal(dec("103.00")), "total: %s", s.Total)
	assert.True(t, s.ChangeAmount.Equal(dec("0.00")), "cambio: %s", s.ChangeAmount)
}

func TestBuild_RedondeoHalfUp(t *testing.T) {
	b := sale.NewBuilder(dec("0.08"))

	// 3 × 3.33 = 9.99; impuesto = 0.7992 -> 0.80
	s, _, err := b.Build("user-1", []sale.CartItem{
		{ProductID: "p-1", Quantity: 3, UnitPrice: dec("3.33")},
	}, sale.Payment{Method: entity.PaymentMethodCash, AmountPaid: dec("20.00")})
	require.NoError(t, err)

	assert.True(t, s.Subtotal.Equal(dec("9.99")))
	assert.True(t, s.TaxAmount.Equal(dec("0.80")), "impuesto: %s", s.TaxAmount)
	assert.True(t, s.Total.Equal(dec("10.79")))
}

func TestBuild_PreservaOrdenDeLineas(t *testing.T) {
	b := sale.NewBuilder(dec("0.08"))

	_, items, err := b.Build("user-1", []sale.CartItem{
		{ProductID: "p-c", Quantity: 1, UnitPrice: dec("1.00")},
		{ProductID: "p-a", Quantity: 1, UnitPrice: dec("2.00")},
		{ProductID: "p-b", Quantity: 1, UnitPrice: dec("3.00")},
	}, sale.Payment{Method: entity.PaymentMethodCash, AmountPaid: dec("10.00")})
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.Equal(t, "p-c", items[0].ProductID)
	assert.Equal(t, "p-a", items[1].ProductID)
	assert.Equal(t, "p-b", items[2].ProductID)
}

func TestBuild_TotalPriceInconsistenteRechazado(t *testing.T) {
	b := sale.NewBuilder(dec("0.08"))

	_, _, err := b.Build("user-1", []sale.CartItem{
		{ProductID: "p-1", Quantity: 2, UnitPrice: dec("10.00"), TotalPrice: dec("19.00")},
	}, sale.Payment{Method: entity.PaymentMethodCash, AmountPaid: dec("25.00")})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestBuild_Rechazos(t *testing.T) {
	b := sale.NewBuilder(dec("0.08"))
	okItems := []sale.CartItem{{ProductID: "p-1", Quantity: 1, UnitPrice: dec("10.00")}}
	okPay := sale.Payment{Method: entity.PaymentMethodCash, AmountPaid: dec("100.00")}

	cases := []struct {
		name  string
		user  string
		items []sale.CartItem
		pay   sale.Payment
		field string
	}{
		{"carrito vacío", "user-1", nil, okPay, "items"},
		{"operador vacío", "", okItems, okPay, "user_id"},
		{"cantidad cero", "user-1",
			[]sale.CartItem{{ProductID: "p-1", Quantity: 0, UnitPrice: dec("10.00")}}, okPay, "quantity"},
		{"precio negativo", "user-1",
			[]sale.CartItem{{ProductID: "p-1", Quantity: 1, UnitPrice: dec("-1.00")}}, okPay, "unit_price"},
		{"producto vacío", "user-1",
			[]sale.CartItem{{Quantity: 1, UnitPrice: dec("10.00")}}, okPay, "product_id"},
		{"método de pago inválido", "user-1", okItems,
			sale.Payment{Method: "bitcoin", AmountPaid: dec("100.00")}, "payment_method"},
		{"descuento negativo", "user-1", okItems,
			sale.Payment{Method: entity.PaymentMethodCash, AmountPaid: dec("100.00"), DiscountAmount: dec("-1.00")}, "discount_amount"},
		{"descuento excede total", "user-1", okItems,
			sale.Payment{Method: entity.PaymentMethodCash, AmountPaid: dec("100.00"), DiscountAmount: dec("50.00")}, "discount_amount"},
		{"pago insuficiente", "user-1", okItems,
			sale.Payment{Method: entity.PaymentMethodCash, AmountPaid: dec("5.00")}, "amount_paid"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := b.Build(tc.user, tc.items, tc.pay)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrValidation)
			var vErr *domain.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Contains(t, vErr.Field, tc.field)
		})
	}
}
