// Package sale contiene los servicios puros del dominio de ventas: el armado y
// validación del agregado Sale+SaleItems y la generación de números de
// transacción. Sin persistencia ni efectos.
package sale

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
)

// CartItem es una línea del carrito sin validar.
type CartItem struct {
	ProductID  string
	Quantity   int
	UnitPrice  decimal.Decimal
	TotalPrice decimal.Decimal // opcional; si viene, debe coincidir con Quantity × UnitPrice
}

// Payment son los campos de pago del carrito.
type Payment struct {
	Method         string
	AmountPaid     decimal.Decimal
	DiscountAmount decimal.Decimal
	Notes          string
}

// Builder valida y totaliza un carrito en un agregado Sale + SaleItems listo
// para persistir. Función pura de su entrada más la tasa de impuesto; no asigna
// IDs, número de transacción ni timestamps (eso lo hace el orquestador dentro
// de la unidad de trabajo).
type Builder struct {
	taxRate decimal.Decimal // fracción, ej. 0.08
}

// NewBuilder construye el builder con la tasa de impuesto vigente.
func NewBuilder(taxRate decimal.Decimal) *Builder {
	return &Builder{taxRate: taxRate}
}

// Build valida el carrito y calcula los totales:
//
//	subtotal = Σ (cantidad × precio unitario)
//	impuesto = subtotal × tasa
//	total    = subtotal + impuesto − descuento
//	cambio   = pagado − total
//
// Montos redondeados a 2 decimales con regla half-up (decimal.Round: mitad se
// aleja de cero, equivalente a half-up para montos no negativos). Un pago menor
// al total se rechaza aquí; el recorte del cambio a >= 0 queda como detalle de
// presentación y nunca como guarda de correctitud.
// El orden de las líneas de entrada se preserva (trazas de ledger deterministas).
func (b *Builder) Build(userID string, items []CartItem, pay Payment) (*entity.Sale, []*entity.SaleItem, error) {
	if userID == "" {
		return nil, nil, domain.NewValidationError("user_id", "operador requerido")
	}
	if len(items) == 0 {
		return nil, nil, domain.NewValidationError("items", "se requiere al menos un ítem")
	}
	if !entity.IsValidPaymentMethod(pay.Method) {
		return nil, nil, domain.NewValidationError("payment_method", "debe ser cash, card o digital")
	}
	if pay.AmountPaid.IsNegative() {
		return nil, nil, domain.NewValidationError("amount_paid", "debe ser >= 0")
	}
	if pay.DiscountAmount.IsNegative() {
		return nil, nil, domain.NewValidationError("discount_amount", "debe ser >= 0")
	}

	subtotal := decimal.Zero
	saleItems := make([]*entity.SaleItem, 0, len(items))
	for i, item := range items {
		field := fmt.Sprintf("items[%d]", i)
		if item.ProductID == "" {
			return nil, nil, domain.NewValidationError(field+".product_id", "producto requerido")
		}
		if item.Quantity < 1 {
			return nil, nil, domain.NewValidationError(field+".quantity", "debe ser >= 1")
		}
		if item.UnitPrice.IsNegative() {
			return nil, nil, domain.NewValidationError(field+".unit_price", "debe ser >= 0")
		}
		lineTotal := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))).Round(2)
		if !item.TotalPrice.IsZero() && !item.TotalPrice.Round(2).Equal(lineTotal) {
			return nil, nil, domain.NewValidationError(field+".total_price", "no coincide con cantidad × precio unitario")
		}
		subtotal = subtotal.Add(lineTotal)
		saleItems = append(saleItems, &entity.SaleItem{
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			TotalPrice: lineTotal,
		})
	}

	subtotal = subtotal.Round(2)
	taxAmount := subtotal.Mul(b.taxRate).Round(2)
	total := subtotal.Add(taxAmount).Sub(pay.DiscountAmount).Round(2)
	if total.IsNegative() {
		return nil, nil, domain.NewValidationError("discount_amount", "el descuento excede el subtotal más impuestos")
	}
	change := pay.AmountPaid.Sub(total).Round(2)
	if change.IsNegative() {
		return nil, nil, domain.NewValidationError("amount_paid", "el monto pagado es menor que el total")
	}

	s := &entity.Sale{
		UserID:         userID,
		Subtotal:       subtotal,
		TaxAmount:      taxAmount,
		DiscountAmount: pay.DiscountAmount.Round(2),
		Total:          total,
		AmountPaid:     pay.AmountPaid.Round(2),
		ChangeAmount:   change,
		PaymentMethod:  pay.Method,
		Status:         entity.SaleStatusCompleted,
		Notes:          pay.Notes,
	}
	return s, saleItems, nil
}
