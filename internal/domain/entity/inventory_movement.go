package entity

import "time"

// Tipos de movimiento de inventario.
const (
	MovementTypeStockIn    = "stock_in"
	MovementTypeStockOut   = "stock_out"
	MovementTypeAdjustment = "adjustment"
	MovementTypeSale       = "sale"
	MovementTypeRefund     = "refund"
)

// InventoryMovement es el registro append-only de auditoría de stock.
// Invariantes: StockAfter = StockBefore + QuantityChange y StockAfter >= 0.
// Se produce exactamente una fila por línea de venta al momento del commit,
// con Type = "sale" y QuantityChange = -cantidad.
type InventoryMovement struct {
	ID              string
	ProductID       string
	UserID          string
	Type            string
	QuantityChange  int // con signo: negativo para salidas
	StockBefore     int
	StockAfter      int
	Reason          string
	ReferenceNumber string // ej. transaction_number de la venta origen
	CreatedAt       time.Time
}

// IsOutflow indica si el tipo representa una salida de stock sujeta a la
// verificación de stock suficiente.
func IsOutflow(movementType string) bool {
	return movementType == MovementTypeSale || movementType == MovementTypeStockOut
}
