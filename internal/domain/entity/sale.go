package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago aceptados.
const (
	PaymentMethodCash    = "cash"
	PaymentMethodCard    = "card"
	PaymentMethodDigital = "digital"
)

// Estados de una venta. La transición es de un solo sentido:
// completed -> refunded | partial_refund (la ejecución del reembolso vive fuera
// del núcleo transaccional; aquí solo se modelan los estados).
const (
	SaleStatusCompleted     = "completed"
	SaleStatusRefunded      = "refunded"
	SaleStatusPartialRefund = "partial_refund"
)

// Sale representa la cabecera de una venta. Inmutable una vez creada, salvo el
// cambio de estado por reembolso.
type Sale struct {
	ID                string
	TransactionNumber string // único, formato TXN-YYYYMMDD-NNNN
	UserID            string // operador que procesó la venta
	Subtotal          decimal.Decimal
	TaxAmount         decimal.Decimal
	DiscountAmount    decimal.Decimal
	Total             decimal.Decimal // Subtotal + TaxAmount - DiscountAmount
	AmountPaid        decimal.Decimal
	ChangeAmount      decimal.Decimal
	PaymentMethod     string
	Status            string
	Notes             string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsValidPaymentMethod valida el método de pago contra el enum aceptado.
func IsValidPaymentMethod(m string) bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodDigital:
		return true
	}
	return false
}
