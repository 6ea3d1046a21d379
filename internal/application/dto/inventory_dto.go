package dto

// RegisterMovementRequest entrada para un movimiento manual de inventario.
// Type: stock_in | stock_out | adjustment (sale y refund están reservados al
// flujo de ventas). Para stock_in/stock_out Quantity es positiva; para
// adjustment Quantity es el cambio con signo.
type RegisterMovementRequest struct {
	ProductID string `json:"product_id"`
	Type      string `json:"type"`
	Quantity  int    `json:"quantity"`
	Reason    string `json:"reason"`
}

// MovementResponse fila del ledger de movimientos.
type MovementResponse struct {
	ID              string `json:"id"`
	ProductID       string `json:"product_id"`
	UserID          string `json:"user_id"`
	Type            string `json:"type"`
	QuantityChange  int    `json:"quantity_change"`
	StockBefore     int    `json:"stock_before"`
	StockAfter      int    `json:"stock_after"`
	Reason          string `json:"reason,omitempty"`
	ReferenceNumber string `json:"reference_number,omitempty"`
	CreatedAt       string `json:"created_at"`
}
