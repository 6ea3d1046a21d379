package dto

import "github.com/shopspring/decimal"

// DailySalesDTO punto de la serie diaria de ventas.
type DailySalesDTO struct {
	Date             string          `json:"date"`
	TotalSales       decimal.Decimal `json:"total_sales"`
	TransactionCount int             `json:"transaction_count"`
}

// BestSellerDTO producto más vendido.
type BestSellerDTO struct {
	ProductID    string          `json:"product_id"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	TotalSold    int             `json:"total_sold"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
}

// PaymentMethodDTO desglose por método de pago.
type PaymentMethodDTO struct {
	PaymentMethod string          `json:"payment_method"`
	Count         int             `json:"count"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
}

// PeriodSummaryDTO resumen de un período (hoy, mes).
type PeriodSummaryDTO struct {
	TotalSales       decimal.Decimal `json:"total_sales"`
	TransactionCount int             `json:"transaction_count"`
}

// ReportsResponse payload completo de la pantalla de reportes.
type ReportsResponse struct {
	DailySales          []DailySalesDTO    `json:"daily_sales"`
	BestSellingProducts []BestSellerDTO    `json:"best_selling_products"`
	PaymentMethods      []PaymentMethodDTO `json:"payment_methods"`
	TodayStats          PeriodSummaryDTO   `json:"today_stats"`
	MonthStats          PeriodSummaryDTO   `json:"month_stats"`
	Period              string             `json:"period"`
}

// DashboardResponse payload del dashboard, compuesto por rol fuera del núcleo
// transaccional. Los campos específicos de rol van en omitempty.
type DashboardResponse struct {
	TotalProducts    int              `json:"total_products"`
	LowStockProducts int              `json:"low_stock_products"`
	// Solo administrator:
	TodaySales   *decimal.Decimal `json:"today_sales,omitempty"`
	MonthlySales *decimal.Decimal `json:"monthly_sales,omitempty"`
	TotalUsers   *int             `json:"total_users,omitempty"`
	// Solo cashier:
	MyTodaySales *decimal.Decimal `json:"my_today_sales,omitempty"`
	MyTotalSales *int             `json:"my_total_sales,omitempty"`
}
