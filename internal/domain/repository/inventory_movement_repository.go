package repository

import "github.com/jhoicas/pos-api/internal/domain/entity"

// InventoryMovementRepository define el puerto de persistencia para el ledger
// de movimientos. Append-only: no hay Update ni Delete.
type InventoryMovementRepository interface {
	Create(movement *entity.InventoryMovement) error
	GetByID(id string) (*entity.InventoryMovement, error)
	ListByProduct(productID string, limit, offset int) ([]*entity.InventoryMovement, error)
}
