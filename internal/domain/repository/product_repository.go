package repository

import "github.com/jhoicas/pos-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
// UpdateStock existe solo para el ledger de inventario: ningún otro caso de uso
// debe decrementar stock directamente.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	// GetForUpdate lee el producto bloqueando la fila (SELECT FOR UPDATE).
	// Solo tiene sentido dentro de una transacción activa.
	GetForUpdate(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	UpdateStock(productID string, quantity int) error
	List(onlyActive bool, limit, offset int) ([]*entity.Product, error)
	ListLowStock(limit int) ([]*entity.Product, error)
	Count() (int, error)
	CountLowStock() (int, error)
	SetActive(id string, active bool) error
}
