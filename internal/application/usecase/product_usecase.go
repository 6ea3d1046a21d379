package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/application/inventory"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// ProductUseCase CRUD de productos. El stock nunca se edita aquí: el alta con
// stock inicial pasa por el ledger (movimiento stock_in) y las correcciones
// posteriores por el caso de uso de movimientos.
type ProductUseCase struct {
	txRunner     inventory.TxRunner
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	ledger       *inventory.StockLedger
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	txRunner inventory.TxRunner,
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	ledger *inventory.StockLedger,
) *ProductUseCase {
	return &ProductUseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		ledger:       ledger,
	}
}

// Create da de alta un producto. Si trae stock inicial, el producto nace con
// stock 0 y el stock inicial entra como movimiento stock_in en la misma
// transacción, de modo que el ledger reproduce el stock desde cero.
func (uc *ProductUseCase) Create(ctx context.Context, userID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.SKU == "" {
		return nil, domain.NewValidationError("sku", "SKU requerido")
	}
	if in.Name == "" {
		return nil, domain.NewValidationError("name", "nombre requerido")
	}
	if in.Price.IsNegative() {
		return nil, domain.NewValidationError("price", "debe ser >= 0")
	}
	if in.InitialStock < 0 {
		return nil, domain.NewValidationError("initial_stock", "debe ser >= 0")
	}
	if in.LowStockThreshold < 0 {
		return nil, domain.NewValidationError("low_stock_threshold", "debe ser >= 0")
	}
	if in.CategoryID != "" {
		category, err := uc.categoryRepo.GetByID(in.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, domain.ErrNotFound
		}
	}
	existing, err := uc.productRepo.GetBySKU(in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	product := &entity.Product{
		ID:                uuid.New().String(),
		SKU:               in.SKU,
		Name:              in.Name,
		Description:       in.Description,
		Price:             in.Price.Round(2),
		StockQuantity:     0,
		LowStockThreshold: in.LowStockThreshold,
		CategoryID:        in.CategoryID,
		IsActive:          true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	err = uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movRepo repository.InventoryMovementRepository,
	) error {
		if err := productRepo.Create(product); err != nil {
			return err
		}
		if in.InitialStock > 0 {
			mov, err := uc.ledger.Apply(productRepo, movRepo, inventory.MovementInput{
				ProductID:      product.ID,
				UserID:         userID,
				Type:           entity.MovementTypeStockIn,
				QuantityChange: in.InitialStock,
				Reason:         "Initial stock",
			}, now)
			if err != nil {
				return err
			}
			product.StockQuantity = mov.StockAfter
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Update modifica los campos editables del producto. No toca stock.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name == "" {
		return nil, domain.NewValidationError("name", "nombre requerido")
	}
	if in.Price.IsNegative() {
		return nil, domain.NewValidationError("price", "debe ser >= 0")
	}
	if in.LowStockThreshold < 0 {
		return nil, domain.NewValidationError("low_stock_threshold", "debe ser >= 0")
	}
	product.Name = in.Name
	product.Description = in.Description
	product.Price = in.Price.Round(2)
	product.LowStockThreshold = in.LowStockThreshold
	product.CategoryID = in.CategoryID
	if in.IsActive != nil {
		product.IsActive = *in.IsActive
	}
	product.UpdatedAt = time.Now()
	if err := uc.productRepo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// List lista productos; onlyActive filtra los inactivos (pantalla del POS).
func (uc *ProductUseCase) List(ctx context.Context, onlyActive bool, page dto.PageRequest) ([]*dto.ProductResponse, error) {
	page.DefaultPage()
	products, err := uc.productRepo.List(onlyActive, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out, nil
}

// Deactivate desactiva un producto (no se borra: lo referencian ventas y
// movimientos).
func (uc *ProductUseCase) Deactivate(ctx context.Context, id string) error {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.productRepo.SetActive(id, false)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:                p.ID,
		SKU:               p.SKU,
		Name:              p.Name,
		Description:       p.Description,
		Price:             p.Price,
		StockQuantity:     p.StockQuantity,
		LowStockThreshold: p.LowStockThreshold,
		CategoryID:        p.CategoryID,
		IsActive:          p.IsActive,
		LowStock:          p.IsLowStock(),
	}
}
