package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// DailySalesRow total vendido y número de transacciones de un día.
type DailySalesRow struct {
	Date             time.Time
	TotalSales       decimal.Decimal
	TransactionCount int
}

// BestSellerRow producto ordenado por unidades vendidas.
type BestSellerRow struct {
	ProductID    string
	ProductName  string
	Price        decimal.Decimal
	TotalSold    int
	TotalRevenue decimal.Decimal
}

// PaymentMethodRow desglose por método de pago.
type PaymentMethodRow struct {
	PaymentMethod string
	Count         int
	TotalAmount   decimal.Decimal
}

// SalesSummary total y cantidad de ventas completadas en un rango.
type SalesSummary struct {
	TotalSales       decimal.Decimal
	TransactionCount int
}

// ReportRepository define las consultas de solo lectura para reportes y
// dashboard. Operan sobre ventas completadas y no imponen invariantes
// adicionales al núcleo transaccional.
type ReportRepository interface {
	// DailySales serie diaria de los últimos `days` días (incluye hoy).
	DailySales(ctx context.Context, days int) ([]DailySalesRow, error)
	// BestSellingProducts top `limit` por unidades vendidas en los últimos `days` días.
	BestSellingProducts(ctx context.Context, days, limit int) ([]BestSellerRow, error)
	// PaymentMethodBreakdown desglose por método de pago de los últimos `days` días.
	PaymentMethodBreakdown(ctx context.Context, days int) ([]PaymentMethodRow, error)
	// SalesSummaryBetween total y conteo de ventas completadas en [from, to).
	SalesSummaryBetween(ctx context.Context, from, to time.Time) (SalesSummary, error)
	// SalesSummaryForUser igual que SalesSummaryBetween pero de un solo operador.
	SalesSummaryForUser(ctx context.Context, userID string, from, to time.Time) (SalesSummary, error)
}
