package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = `id, transaction_number, user_id, subtotal, tax_amount, discount_amount, total, amount_paid, change_amount, payment_method, status, notes, created_at, updated_at`

// SaleRepo implementación de SaleRepository sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste la cabecera de la venta. Una colisión del número de
// transacción (unique_violation) se reporta como domain.ErrConflict: es
// transitoria y el orquestador reintenta con un número nuevo.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	query := `
		INSERT INTO sales (` + saleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	notes := (*string)(nil)
	if sale.Notes != "" {
		notes = &sale.Notes
	}
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.TransactionNumber, sale.UserID, sale.Subtotal, sale.TaxAmount,
		sale.DiscountAmount, sale.Total, sale.AmountPaid, sale.ChangeAmount,
		sale.PaymentMethod, sale.Status, notes, sale.CreatedAt, sale.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: número de transacción %s ya existe", domain.ErrConflict, sale.TransactionNumber)
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de venta.
func (r *SaleRepo) CreateItem(item *entity.SaleItem) error {
	query := `
		INSERT INTO sale_items (id, sale_id, product_id, quantity, unit_price, total_price)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.SaleID, item.ProductID, item.Quantity, item.UnitPrice, item.TotalPrice,
	)
	if err != nil {
		return fmt.Errorf("insert sale item: %w", err)
	}
	return nil
}

// GetByID obtiene una venta por ID.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1`
	return scanSale(r.q.QueryRow(context.Background(), query, id), "get sale")
}

// GetByTransactionNumber obtiene una venta por su número de transacción.
func (r *SaleRepo) GetByTransactionNumber(number string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE transaction_number = $1`
	return scanSale(r.q.QueryRow(context.Background(), query, number), "get sale by transaction number")
}

// GetItemsBySaleID obtiene las líneas de una venta en orden de inserción.
func (r *SaleRepo) GetItemsBySaleID(saleID string) ([]*entity.SaleItem, error) {
	query := `
		SELECT id, sale_id, product_id, quantity, unit_price, total_price
		FROM sale_items WHERE sale_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, saleID)
	if err != nil {
		return nil, fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()
	var list []*entity.SaleItem
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.ProductID, &it.Quantity, &it.UnitPrice, &it.TotalPrice); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// List lista ventas, más recientes primero.
func (r *SaleRepo) List(limit, offset int) ([]*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		s, err := scanSaleFromRows(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func scanSale(row pgx.Row, op string) (*entity.Sale, error) {
	var s entity.Sale
	var notes *string
	err := row.Scan(
		&s.ID, &s.TransactionNumber, &s.UserID, &s.Subtotal, &s.TaxAmount,
		&s.DiscountAmount, &s.Total, &s.AmountPaid, &s.ChangeAmount,
		&s.PaymentMethod, &s.Status, &notes, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if notes != nil {
		s.Notes = *notes
	}
	return &s, nil
}

func scanSaleFromRows(rows pgx.Rows) (*entity.Sale, error) {
	var s entity.Sale
	var notes *string
	if err := rows.Scan(
		&s.ID, &s.TransactionNumber, &s.UserID, &s.Subtotal, &s.TaxAmount,
		&s.DiscountAmount, &s.Total, &s.AmountPaid, &s.ChangeAmount,
		&s.PaymentMethod, &s.Status, &notes, &s.CreatedAt, &s.UpdatedAt,
	); err != nil {
		return nil, fmt.Errorf("scan sale: %w", err)
	}
	if notes != nil {
		s.Notes = *notes
	}
	return &s, nil
}
