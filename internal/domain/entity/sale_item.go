package entity

import "github.com/shopspring/decimal"

// SaleItem representa una línea de venta. Se crea únicamente como parte del
// commit de la venta y nunca se muta ni se borra después (requisito de auditoría).
// UnitPrice es el precio al momento de la venta, independiente de cambios
// posteriores del precio del producto.
type SaleItem struct {
	ID         string
	SaleID     string
	ProductID  string
	Quantity   int
	UnitPrice  decimal.Decimal
	TotalPrice decimal.Decimal // Quantity × UnitPrice
}
