package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto vendible en el punto de venta.
// StockQuantity es la única fuente de verdad del stock actual; se muta
// exclusivamente a través del ledger de inventario (nunca por un UPDATE directo
// desde ventas) y es reconstruible reproduciendo los movimientos desde cero.
type Product struct {
	ID                string
	SKU               string // código único
	Name              string
	Description       string
	Price             decimal.Decimal // precio de venta unitario
	StockQuantity     int             // invariante: >= 0, garantizado por el protocolo de commit
	LowStockThreshold int
	CategoryID        string
	IsActive          bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsLowStock indica si el producto está en o bajo su umbral de reposición.
func (p *Product) IsLowStock() bool {
	return p.StockQuantity <= p.LowStockThreshold
}
