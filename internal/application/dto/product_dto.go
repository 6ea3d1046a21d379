package dto

import "github.com/shopspring/decimal"

// CreateProductRequest entrada para crear un producto. InitialStock se registra
// como movimiento stock_in a través del ledger (nunca como stock suelto).
type CreateProductRequest struct {
	SKU               string          `json:"sku"`
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	Price             decimal.Decimal `json:"price"`
	InitialStock      int             `json:"initial_stock"`
	LowStockThreshold int             `json:"low_stock_threshold"`
	CategoryID        string          `json:"category_id"`
}

// UpdateProductRequest entrada para actualizar un producto. No incluye stock:
// las correcciones de stock van por movimientos de inventario.
type UpdateProductRequest struct {
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	Price             decimal.Decimal `json:"price"`
	LowStockThreshold int             `json:"low_stock_threshold"`
	CategoryID        string          `json:"category_id"`
	IsActive          *bool           `json:"is_active"`
}

// ProductResponse producto para listados y detalle.
type ProductResponse struct {
	ID                string          `json:"id"`
	SKU               string          `json:"sku"`
	Name              string          `json:"name"`
	Description       string          `json:"description,omitempty"`
	Price             decimal.Decimal `json:"price"`
	StockQuantity     int             `json:"stock_quantity"`
	LowStockThreshold int             `json:"low_stock_threshold"`
	CategoryID        string          `json:"category_id,omitempty"`
	IsActive          bool            `json:"is_active"`
	LowStock          bool            `json:"low_stock"`
}
