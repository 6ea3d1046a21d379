package repository

import "github.com/jhoicas/pos-api/internal/domain/entity"

// SaleRepository define el puerto de persistencia para Sale y SaleItem.
// Create retorna domain.ErrConflict ante una colisión del número de transacción
// (violación de unicidad): es transitoria y el orquestador puede reintentar.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	CreateItem(item *entity.SaleItem) error
	GetByID(id string) (*entity.Sale, error)
	GetByTransactionNumber(number string) (*entity.Sale, error)
	GetItemsBySaleID(saleID string) ([]*entity.SaleItem, error)
	List(limit, offset int) ([]*entity.Sale, error)
}
