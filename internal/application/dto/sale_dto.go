package dto

import "github.com/shopspring/decimal"

// SaleItemRequest línea del carrito tal como llega del terminal.
// TotalPrice es opcional; si viene se verifica contra cantidad × precio unitario.
type SaleItemRequest struct {
	ProductID  string          `json:"product_id"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// CreateSaleRequest entrada para commitSale. El impuesto lo calcula el servidor
// con la tasa configurada; el descuento y el pago vienen del terminal.
type CreateSaleRequest struct {
	Items          []SaleItemRequest `json:"items"`
	PaymentMethod  string            `json:"payment_method"`
	AmountPaid     decimal.Decimal   `json:"amount_paid"`
	DiscountAmount decimal.Decimal   `json:"discount_amount"`
	Notes          string            `json:"notes"`
}

// SaleItemResponse línea de venta persistida.
type SaleItemResponse struct {
	ID         string          `json:"id"`
	ProductID  string          `json:"product_id"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// SaleResponse venta persistida con sus líneas.
type SaleResponse struct {
	ID                string             `json:"id"`
	TransactionNumber string             `json:"transaction_number"`
	UserID            string             `json:"user_id"`
	Subtotal          decimal.Decimal    `json:"subtotal"`
	TaxAmount         decimal.Decimal    `json:"tax_amount"`
	DiscountAmount    decimal.Decimal    `json:"discount_amount"`
	Total             decimal.Decimal    `json:"total"`
	AmountPaid        decimal.Decimal    `json:"amount_paid"`
	ChangeAmount      decimal.Decimal    `json:"change_amount"`
	PaymentMethod     string             `json:"payment_method"`
	Status            string             `json:"status"`
	Notes             string             `json:"notes,omitempty"`
	CreatedAt         string             `json:"created_at"`
	Items             []SaleItemResponse `json:"items"`
}
