package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// RegisterMovementUseCase registra movimientos manuales de inventario
// (stock_in, stock_out, adjustment) de forma transaccional a través del
// StockLedger. Los tipos sale y refund están reservados al flujo de ventas.
type RegisterMovementUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	movRepo     repository.InventoryMovementRepository
	ledger      *StockLedger
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	movRepo repository.InventoryMovementRepository,
	ledger *StockLedger,
) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		movRepo:     movRepo,
		ledger:      ledger,
	}
}

// RegisterMovement valida la entrada, resuelve el signo según el tipo y aplica
// el movimiento dentro de una transacción (Commit si todo ok, Rollback si algo
// falla).
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, userID string, in dto.RegisterMovementRequest) (*dto.MovementResponse, error) {
	var change int
	switch in.Type {
	case entity.MovementTypeStockIn:
		if in.Quantity <= 0 {
			return nil, domain.NewValidationError("quantity", "debe ser > 0 para stock_in")
		}
		change = in.Quantity
	case entity.MovementTypeStockOut:
		if in.Quantity <= 0 {
			return nil, domain.NewValidationError("quantity", "debe ser > 0 para stock_out")
		}
		change = -in.Quantity
	case entity.MovementTypeAdjustment:
		if in.Quantity == 0 {
			return nil, domain.NewValidationError("quantity", "un ajuste de cero no registra nada")
		}
		change = in.Quantity
	default:
		return nil, domain.NewValidationError("type", "debe ser stock_in, stock_out o adjustment")
	}
	if in.ProductID == "" {
		return nil, domain.NewValidationError("product_id", "producto requerido")
	}

	// Existencia del producto fuera de la tx (solo lectura); el ledger vuelve a
	// leer con bloqueo de fila dentro de la tx.
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	var mov *entity.InventoryMovement
	err = uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movRepo repository.InventoryMovementRepository,
	) error {
		var applyErr error
		mov, applyErr = uc.ledger.Apply(productRepo, movRepo, MovementInput{
			ProductID:      in.ProductID,
			UserID:         userID,
			Type:           in.Type,
			QuantityChange: change,
			Reason:         in.Reason,
		}, now)
		return applyErr
	})
	if err != nil {
		return nil, err
	}
	return toMovementResponse(mov), nil
}

// ListByProduct devuelve el historial de movimientos de un producto, más
// reciente primero.
func (uc *RegisterMovementUseCase) ListByProduct(ctx context.Context, productID string, page dto.PageRequest) ([]*dto.MovementResponse, error) {
	page.DefaultPage()
	movs, err := uc.movRepo.ListByProduct(productID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.MovementResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, toMovementResponse(m))
	}
	return out, nil
}

func toMovementResponse(m *entity.InventoryMovement) *dto.MovementResponse {
	return &dto.MovementResponse{
		ID:              m.ID,
		ProductID:       m.ProductID,
		UserID:          m.UserID,
		Type:            m.Type,
		QuantityChange:  m.QuantityChange,
		StockBefore:     m.StockBefore,
		StockAfter:      m.StockAfter,
		Reason:          m.Reason,
		ReferenceNumber: m.ReferenceNumber,
		CreatedAt:       m.CreatedAt.Format(time.RFC3339),
	}
}
