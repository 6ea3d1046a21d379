package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// ReportUseCase lado de lectura: reportes y dashboard sobre las tablas que
// deja el commit de ventas. Solo consultas; no impone invariantes al núcleo.
type ReportUseCase struct {
	reportRepo  repository.ReportRepository
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(
	reportRepo repository.ReportRepository,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
) *ReportUseCase {
	return &ReportUseCase{
		reportRepo:  reportRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
	}
}

// Reports arma la pantalla de reportes: serie diaria (7 o 30 días según
// period), más vendidos, desglose por método de pago y resúmenes de hoy y del
// mes.
func (uc *ReportUseCase) Reports(ctx context.Context, period string) (*dto.ReportsResponse, error) {
	days := 7
	if period == "month" {
		days = 30
	} else {
		period = "week"
	}

	daily, err := uc.reportRepo.DailySales(ctx, days)
	if err != nil {
		return nil, err
	}
	best, err := uc.reportRepo.BestSellingProducts(ctx, 30, 10)
	if err != nil {
		return nil, err
	}
	methods, err := uc.reportRepo.PaymentMethodBreakdown(ctx, 30)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	today, err := uc.reportRepo.SalesSummaryBetween(ctx, startOfDay, now)
	if err != nil {
		return nil, err
	}
	month, err := uc.reportRepo.SalesSummaryBetween(ctx, startOfMonth, now)
	if err != nil {
		return nil, err
	}

	resp := &dto.ReportsResponse{
		DailySales:          make([]dto.DailySalesDTO, 0, len(daily)),
		BestSellingProducts: make([]dto.BestSellerDTO, 0, len(best)),
		PaymentMethods:      make([]dto.PaymentMethodDTO, 0, len(methods)),
		TodayStats:          dto.PeriodSummaryDTO{TotalSales: today.TotalSales, TransactionCount: today.TransactionCount},
		MonthStats:          dto.PeriodSummaryDTO{TotalSales: month.TotalSales, TransactionCount: month.TransactionCount},
		Period:              period,
	}
	for _, d := range daily {
		resp.DailySales = append(resp.DailySales, dto.DailySalesDTO{
			Date:             d.Date.Format("2006-01-02"),
			TotalSales:       d.TotalSales,
			TransactionCount: d.TransactionCount,
		})
	}
	for _, b := range best {
		resp.BestSellingProducts = append(resp.BestSellingProducts, dto.BestSellerDTO{
			ProductID:    b.ProductID,
			Name:         b.ProductName,
			Price:        b.Price,
			TotalSold:    b.TotalSold,
			TotalRevenue: b.TotalRevenue,
		})
	}
	for _, m := range methods {
		resp.PaymentMethods = append(resp.PaymentMethods, dto.PaymentMethodDTO{
			PaymentMethod: m.PaymentMethod,
			Count:         m.Count,
			TotalAmount:   m.TotalAmount,
		})
	}
	return resp, nil
}

// Dashboard compone el payload según el rol del operador. La variación por rol
// es composición de UI, resuelta aquí, completamente fuera del núcleo
// transaccional.
func (uc *ReportUseCase) Dashboard(ctx context.Context, userID, role string) (*dto.DashboardResponse, error) {
	totalProducts, err := uc.productRepo.Count()
	if err != nil {
		return nil, err
	}
	lowStock, err := uc.productRepo.CountLowStock()
	if err != nil {
		return nil, err
	}
	resp := &dto.DashboardResponse{
		TotalProducts:    totalProducts,
		LowStockProducts: lowStock,
	}

	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	switch role {
	case entity.RoleAdministrator:
		today, err := uc.reportRepo.SalesSummaryBetween(ctx, startOfDay, now)
		if err != nil {
			return nil, err
		}
		month, err := uc.reportRepo.SalesSummaryBetween(ctx, startOfMonth, now)
		if err != nil {
			return nil, err
		}
		totalUsers, err := uc.userRepo.Count()
		if err != nil {
			return nil, err
		}
		resp.TodaySales = &today.TotalSales
		resp.MonthlySales = &month.TotalSales
		resp.TotalUsers = &totalUsers
	case entity.RoleCashier:
		mine, err := uc.reportRepo.SalesSummaryForUser(ctx, userID, startOfDay, now)
		if err != nil {
			return nil, err
		}
		allTime, err := uc.reportRepo.SalesSummaryForUser(ctx, userID, time.Time{}, now)
		if err != nil {
			return nil, err
		}
		resp.MyTodaySales = &mine.TotalSales
		resp.MyTotalSales = &allTime.TransactionCount
	}
	return resp, nil
}

// LowStockProducts lista los productos en o bajo su umbral (pantalla de
// reposición).
func (uc *ReportUseCase) LowStockProducts(ctx context.Context, limit int) ([]*dto.ProductResponse, error) {
	if limit <= 0 {
		limit = 50
	}
	products, err := uc.productRepo.ListLowStock(limit)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out, nil
}
