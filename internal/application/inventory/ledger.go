package inventory

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// StockLedger es el único camino de código autorizado a cambiar el stock de un
// producto. Opera siempre con repositorios atados a la transacción del caller:
// nunca hace commit por su cuenta y no tiene reintentos propios; los fallos se
// propagan al orquestador.
type StockLedger struct{}

// NewStockLedger construye el ledger (sin estado).
func NewStockLedger() *StockLedger { return &StockLedger{} }

// MovementInput describe un movimiento a aplicar sobre un producto.
type MovementInput struct {
	ProductID       string
	UserID          string
	Type            string
	QuantityChange  int // con signo: negativo para salidas
	Reason          string
	ReferenceNumber string
}

// Apply ejecuta la lectura-modificación-escritura atómica del stock:
// bloquea la fila del producto (SELECT FOR UPDATE), calcula
// stockAfter = stockBefore + quantityChange, persiste la nueva cantidad y
// agrega la fila de auditoría con el antes/después. El piso es siempre 0:
// para tipos de salida (sale, stock_out) un resultado negativo es
// InsufficientStockError; para el resto es un error de validación.
func (l *StockLedger) Apply(
	productRepo repository.ProductRepository,
	movRepo repository.InventoryMovementRepository,
	in MovementInput,
	now time.Time,
) (*entity.InventoryMovement, error) {
	product, err := productRepo.GetForUpdate(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	stockBefore := product.StockQuantity
	stockAfter := stockBefore + in.QuantityChange
	if stockAfter < 0 {
		if entity.IsOutflow(in.Type) {
			return nil, &domain.InsufficientStockError{
				ProductID: product.ID,
				Requested: -in.QuantityChange,
				Available: stockBefore,
			}
		}
		return nil, domain.NewValidationError("quantity", "el stock resultante no puede ser negativo")
	}

	if err := productRepo.UpdateStock(product.ID, stockAfter); err != nil {
		return nil, err
	}
	mov := &entity.InventoryMovement{
		ID:              uuid.New().String(),
		ProductID:       product.ID,
		UserID:          in.UserID,
		Type:            in.Type,
		QuantityChange:  in.QuantityChange,
		StockBefore:     stockBefore,
		StockAfter:      stockAfter,
		Reason:          in.Reason,
		ReferenceNumber: in.ReferenceNumber,
		CreatedAt:       now,
	}
	if err := movRepo.Create(mov); err != nil {
		return nil, err
	}
	return mov, nil
}
