package sales

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/application/inventory"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
	domainsale "github.com/jhoicas/pos-api/internal/domain/sale"
	"github.com/jhoicas/pos-api/pkg/logger"
)

// CommitSaleUseCase orquesta el commit de una venta: Building → Reserving →
// Committed, con Aborted como estado absorbente. Building valida y totaliza el
// carrito antes de tocar storage; Reserving abre una transacción, crea la
// venta, y por cada línea aplica el movimiento de stock vía StockLedger y crea
// el SaleItem; Committed es el Commit único de la tx. Cualquier fallo en el
// camino descarta la unidad de trabajo completa.
type CommitSaleUseCase struct {
	txRunner   TxRunner
	builder    *domainsale.Builder
	numbers    *domainsale.NumberGenerator
	ledger     *inventory.StockLedger
	saleRepo   repository.SaleRepository // atado al pool, solo lecturas
	log        *logger.Logger
	maxRetries int
	now        func() time.Time
}

// NewCommitSaleUseCase construye el caso de uso. maxRetries acota los
// reintentos ante conflictos transitorios (colisión de número de transacción,
// contención de locks); los errores de negocio nunca reintentan.
func NewCommitSaleUseCase(
	txRunner TxRunner,
	builder *domainsale.Builder,
	numbers *domainsale.NumberGenerator,
	ledger *inventory.StockLedger,
	saleRepo repository.SaleRepository,
	log *logger.Logger,
	maxRetries int,
) *CommitSaleUseCase {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &CommitSaleUseCase{
		txRunner:   txRunner,
		builder:    builder,
		numbers:    numbers,
		ledger:     ledger,
		saleRepo:   saleRepo,
		log:        log,
		maxRetries: maxRetries,
		now:        time.Now,
	}
}

// CommitSale ejecuta el protocolo completo. Devuelve la venta persistida o un
// error tipado; ante error no queda nada observable en storage.
func (uc *CommitSaleUseCase) CommitSale(ctx context.Context, userID string, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	// Building: validación y totales fuera de la transacción.
	cart := make([]domainsale.CartItem, 0, len(in.Items))
	for _, it := range in.Items {
		cart = append(cart, domainsale.CartItem{
			ProductID:  it.ProductID,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
			TotalPrice: it.TotalPrice,
		})
	}
	aggregate, items, err := uc.builder.Build(userID, cart, domainsale.Payment{
		Method:         in.PaymentMethod,
		AmountPaid:     in.AmountPaid,
		DiscountAmount: in.DiscountAmount,
		Notes:          in.Notes,
	})
	if err != nil {
		return nil, err
	}

	// Reserving/Committed: cada intento es una unidad de trabajo nueva con un
	// número de transacción fresco; el agregado ya validado se reutiliza tal
	// cual (revalidar no aporta y obligaría a re-digitar el carrito).
	for attempt := 0; ; attempt++ {
		sale, saleItems, err := uc.tryCommit(ctx, aggregate, items)
		if err == nil {
			uc.log.Info().
				Str("transaction_number", sale.TransactionNumber).
				Str("user_id", userID).
				Int("items", len(saleItems)).
				Str("total", sale.Total.StringFixed(2)).
				Msg("venta confirmada")
			return toSaleResponse(sale, saleItems), nil
		}
		if !errors.Is(err, domain.ErrConflict) {
			return nil, err
		}
		if attempt >= uc.maxRetries {
			return nil, fmt.Errorf("commit de venta agotó %d reintentos: %w", uc.maxRetries, domain.ErrConflict)
		}
		uc.log.Warn().
			Int("attempt", attempt+1).
			Err(err).
			Msg("conflicto transitorio en commit de venta, reintentando")
	}
}

// tryCommit ejecuta un intento del protocolo Reserving dentro de una
// transacción. Las líneas se procesan en el orden de entrada, sin reordenar,
// para que las trazas del ledger sean deterministas.
func (uc *CommitSaleUseCase) tryCommit(ctx context.Context, aggregate *entity.Sale, items []*entity.SaleItem) (*entity.Sale, []*entity.SaleItem, error) {
	now := uc.now()
	sale := *aggregate
	sale.ID = uuid.New().String()
	sale.TransactionNumber = uc.numbers.Next()
	sale.CreatedAt = now
	sale.UpdatedAt = now

	persisted := make([]*entity.SaleItem, 0, len(items))
	err := uc.txRunner.RunSale(ctx, func(
		saleRepo repository.SaleRepository,
		productRepo repository.ProductRepository,
		movRepo repository.InventoryMovementRepository,
	) error {
		if err := saleRepo.Create(&sale); err != nil {
			return err
		}
		for _, it := range items {
			if _, err := uc.ledger.Apply(productRepo, movRepo, inventory.MovementInput{
				ProductID:       it.ProductID,
				UserID:          sale.UserID,
				Type:            entity.MovementTypeSale,
				QuantityChange:  -it.Quantity,
				Reason:          "Product sold",
				ReferenceNumber: sale.TransactionNumber,
			}, now); err != nil {
				return err
			}
			item := *it
			item.ID = uuid.New().String()
			item.SaleID = sale.ID
			if err := saleRepo.CreateItem(&item); err != nil {
				return err
			}
			persisted = append(persisted, &item)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return &sale, persisted, nil
}

// GetSale obtiene una venta por ID con sus líneas.
func (uc *CommitSaleUseCase) GetSale(ctx context.Context, id string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.saleRepo.GetItemsBySaleID(id)
	if err != nil {
		return nil, err
	}
	return toSaleResponse(sale, items), nil
}

// ListSales lista ventas recientes (más nuevas primero) para la pantalla de
// historial.
func (uc *CommitSaleUseCase) ListSales(ctx context.Context, page dto.PageRequest) ([]*dto.SaleResponse, error) {
	page.DefaultPage()
	salesList, err := uc.saleRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.SaleResponse, 0, len(salesList))
	for _, s := range salesList {
		items, err := uc.saleRepo.GetItemsBySaleID(s.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, toSaleResponse(s, items))
	}
	return out, nil
}

func toSaleResponse(s *entity.Sale, items []*entity.SaleItem) *dto.SaleResponse {
	resp := &dto.SaleResponse{
		ID:                s.ID,
		TransactionNumber: s.TransactionNumber,
		UserID:            s.UserID,
		Subtotal:          s.Subtotal,
		TaxAmount:         s.TaxAmount,
		DiscountAmount:    s.DiscountAmount,
		Total:             s.Total,
		AmountPaid:        s.AmountPaid,
		ChangeAmount:      s.ChangeAmount,
		PaymentMethod:     s.PaymentMethod,
		Status:            s.Status,
		Notes:             s.Notes,
		CreatedAt:         s.CreatedAt.Format(time.RFC3339),
		Items:             make([]dto.SaleItemResponse, 0, len(items)),
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.SaleItemResponse{
			ID:         it.ID,
			ProductID:  it.ProductID,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
			TotalPrice: it.TotalPrice,
		})
	}
	return resp
}
