package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura para reportes y dashboard.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador. Pasar el pool (no requiere tx).
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// DailySales serie diaria de ventas completadas de los últimos `days` días.
func (r *ReportRepo) DailySales(ctx context.Context, days int) ([]repository.DailySalesRow, error) {
	query := `
		SELECT DATE(created_at) AS date, COALESCE(SUM(total), 0), COUNT(*)
		FROM sales
		WHERE status = $1 AND created_at >= CURRENT_DATE - ($2 - 1) * INTERVAL '1 day'
		GROUP BY DATE(created_at)
		ORDER BY date`
	rows, err := r.q.Query(ctx, query, entity.SaleStatusCompleted, days)
	if err != nil {
		return nil, fmt.Errorf("daily sales: %w", err)
	}
	defer rows.Close()
	var list []repository.DailySalesRow
	for rows.Next() {
		var row repository.DailySalesRow
		if err := rows.Scan(&row.Date, &row.TotalSales, &row.TransactionCount); err != nil {
			return nil, fmt.Errorf("scan daily sales: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// BestSellingProducts top `limit` productos por unidades vendidas en los
// últimos `days` días.
func (r *ReportRepo) BestSellingProducts(ctx context.Context, days, limit int) ([]repository.BestSellerRow, error) {
	query := `
		SELECT p.id, p.name, p.price,
		       COALESCE(SUM(si.quantity), 0) AS total_sold,
		       COALESCE(SUM(si.total_price), 0) AS total_revenue
		FROM sale_items si
		JOIN products p ON p.id = si.product_id
		JOIN sales s ON s.id = si.sale_id
		WHERE s.status = $1 AND s.created_at >= now() - $2 * INTERVAL '1 day'
		GROUP BY p.id, p.name, p.price
		ORDER BY total_sold DESC
		LIMIT $3`
	rows, err := r.q.Query(ctx, query, entity.SaleStatusCompleted, days, limit)
	if err != nil {
		return nil, fmt.Errorf("best selling products: %w", err)
	}
	defer rows.Close()
	var list []repository.BestSellerRow
	for rows.Next() {
		var row repository.BestSellerRow
		if err := rows.Scan(&row.ProductID, &row.ProductName, &row.Price, &row.TotalSold, &row.TotalRevenue); err != nil {
			return nil, fmt.Errorf("scan best seller: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// PaymentMethodBreakdown desglose por método de pago de los últimos `days` días.
func (r *ReportRepo) PaymentMethodBreakdown(ctx context.Context, days int) ([]repository.PaymentMethodRow, error) {
	query := `
		SELECT payment_method, COUNT(*), COALESCE(SUM(total), 0)
		FROM sales
		WHERE status = $1 AND created_at >= now() - $2 * INTERVAL '1 day'
		GROUP BY payment_method`
	rows, err := r.q.Query(ctx, query, entity.SaleStatusCompleted, days)
	if err != nil {
		return nil, fmt.Errorf("payment method breakdown: %w", err)
	}
	defer rows.Close()
	var list []repository.PaymentMethodRow
	for rows.Next() {
		var row repository.PaymentMethodRow
		if err := rows.Scan(&row.PaymentMethod, &row.Count, &row.TotalAmount); err != nil {
			return nil, fmt.Errorf("scan payment method: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// SalesSummaryBetween total y conteo de ventas completadas en [from, to).
// COALESCE para devolver cero si no hay ventas en el período.
func (r *ReportRepo) SalesSummaryBetween(ctx context.Context, from, to time.Time) (repository.SalesSummary, error) {
	query := `
		SELECT COALESCE(SUM(total), 0), COUNT(*)
		FROM sales
		WHERE status = $1 AND created_at >= $2 AND created_at < $3`
	var s repository.SalesSummary
	err := r.q.QueryRow(ctx, query, entity.SaleStatusCompleted, from, to).Scan(&s.TotalSales, &s.TransactionCount)
	if err != nil {
		return repository.SalesSummary{}, fmt.Errorf("sales summary: %w", err)
	}
	return s, nil
}

// SalesSummaryForUser igual que SalesSummaryBetween pero de un solo operador.
func (r *ReportRepo) SalesSummaryForUser(ctx context.Context, userID string, from, to time.Time) (repository.SalesSummary, error) {
	query := `
		SELECT COALESCE(SUM(total), 0), COUNT(*)
		FROM sales
		WHERE status = $1 AND user_id = $2 AND created_at >= $3 AND created_at < $4`
	var s repository.SalesSummary
	err := r.q.QueryRow(ctx, query, entity.SaleStatusCompleted, userID, from, to).Scan(&s.TotalSales, &s.TransactionCount)
	if err != nil {
		return repository.SalesSummary{}, fmt.Errorf("sales summary for user: %w", err)
	}
	return s, nil
}
