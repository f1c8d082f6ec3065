package service

import (
	"context"
	"sort"
	"time"

	"shopforge/internal/dto"
	"shopforge/internal/model"
	"shopforge/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Caps on the movement and dashboard projections.
const (
	movementEntryCap   = 100
	dashboardRecentCap = 10
	dashboardAlertCap  = 10
	trendWindowDays    = 30
)

// ReportService builds the five read-only projections over the ledger and
// product tables. All reads are on-demand and synchronous; a failed read
// surfaces as an error with no retry.
type ReportService interface {
	CurrentStock(ctx context.Context, categoryID *uuid.UUID) (*dto.CurrentStockReport, error)
	LowStock(ctx context.Context) (*dto.LowStockReport, error)
	Valuation(ctx context.Context, categoryID *uuid.UUID) (*dto.ValuationReport, error)
	Movement(ctx context.Context, start, end time.Time) (*dto.MovementReport, error)
	Dashboard(ctx context.Context, categoryID *uuid.UUID) (*dto.DashboardReport, error)
}

type reportService struct {
	products repository.ProductRepository
	history  repository.StockHistoryRepository
	alerts   repository.StockAlertRepository
}

func NewReportService(
	products repository.ProductRepository,
	history repository.StockHistoryRepository,
	alerts repository.StockAlertRepository,
) ReportService {
	return &reportService{products: products, history: history, alerts: alerts}
}

// thresholdMap indexes explicit alert thresholds by product id.
func (s *reportService) thresholdMap(ctx context.Context) (map[uuid.UUID]*model.StockAlert, error) {
	alerts, err := s.alerts.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	m := make(map[uuid.UUID]*model.StockAlert, len(alerts))
	for i := range alerts {
		m[alerts[i].ProductID] = &alerts[i]
	}
	return m, nil
}

// ─── current-stock ───────────────────────────────────────────────────────────

func (s *reportService) CurrentStock(ctx context.Context, categoryID *uuid.UUID) (*dto.CurrentStockReport, error) {
	products, err := s.products.ListForReport(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	thresholds, err := s.thresholdMap(ctx)
	if err != nil {
		return nil, err
	}

	report := &dto.CurrentStockReport{Products: make([]dto.ProductStockItem, 0, len(products))}
	for i := range products {
		p := &products[i]
		variantStock := 0
		for _, v := range p.Variants {
			variantStock += v.Stock
		}
		level := ClassifyStockLevel(p.Stock, ResolveThreshold(thresholds[p.ID]))

		report.Products = append(report.Products, dto.ProductStockItem{
			ProductID:    p.ID.String(),
			SKU:          p.SKU,
			Name:         p.Name,
			Stock:        p.Stock,
			VariantStock: variantStock,
			TotalStock:   p.Stock + variantStock,
			HasLowStock:  level != LevelOK,
		})

		report.TotalStock += p.Stock + variantStock
		switch level {
		case LevelOut:
			report.ProductsOutOfStock++
		case LevelLow:
			report.ProductsLowStock++
			report.ProductsInStock++
		default:
			report.ProductsInStock++
		}
	}
	return report, nil
}

// ─── low-stock ───────────────────────────────────────────────────────────────

// LowStock unions products with an explicit alert at or below threshold and
// products without one at or below the default threshold. One pass over the
// product set keeps the result free of duplicates by construction.
func (s *reportService) LowStock(ctx context.Context) (*dto.LowStockReport, error) {
	products, err := s.products.ListForReport(ctx, nil)
	if err != nil {
		return nil, err
	}
	thresholds, err := s.thresholdMap(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]dto.StockAlertResponse, 0)
	for i := range products {
		p := &products[i]
		alert := thresholds[p.ID]
		threshold := ResolveThreshold(alert)
		level := ClassifyStockLevel(p.Stock, threshold)
		if level == LevelOK {
			continue
		}
		enabled := alert == nil || alert.Enabled
		items = append(items, dto.StockAlertResponse{
			ProductID:   p.ID.String(),
			ProductName: p.Name,
			Stock:       p.Stock,
			Threshold:   threshold,
			Enabled:     enabled,
			Level:       string(level),
		})
	}

	sort.Slice(items, func(i, j int) bool { return items[i].Stock < items[j].Stock })
	return &dto.LowStockReport{Products: items}, nil
}

// ─── valuation ───────────────────────────────────────────────────────────────

func (s *reportService) Valuation(ctx context.Context, categoryID *uuid.UUID) (*dto.ValuationReport, error) {
	products, err := s.products.ListForReport(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	report := &dto.ValuationReport{
		Products:            make([]dto.ProductValuationItem, 0, len(products)),
		TotalInventoryValue: decimal.Zero,
	}
	for i := range products {
		p := &products[i]
		value := productValue(p)
		report.Products = append(report.Products, dto.ProductValuationItem{
			ProductID: p.ID.String(),
			Name:      p.Name,
			Stock:     p.Stock,
			UnitPrice: p.Price,
			Value:     value,
		})
		report.TotalInventoryValue = report.TotalInventoryValue.Add(value)
	}

	sort.Slice(report.Products, func(i, j int) bool {
		return report.Products[i].Value.GreaterThan(report.Products[j].Value)
	})
	return report, nil
}

// productValue is stock×price plus each variant's stock×price.
func productValue(p *model.Product) decimal.Decimal {
	value := p.Price.Mul(decimal.NewFromInt(int64(p.Stock)))
	for _, v := range p.Variants {
		value = value.Add(v.Price.Mul(decimal.NewFromInt(int64(v.Stock))))
	}
	return value
}

// ─── movement ────────────────────────────────────────────────────────────────

func (s *reportService) Movement(ctx context.Context, start, end time.Time) (*dto.MovementReport, error) {
	entries, err := s.history.ListBetween(ctx, start, end, movementEntryCap)
	if err != nil {
		return nil, err
	}

	report := &dto.MovementReport{
		ByType:  make(map[string]dto.MovementTypeSummary),
		Entries: make([]dto.StockHistoryResponse, 0, len(entries)),
	}
	byDate := make(map[string]*dto.DailyMovement)

	for i := range entries {
		e := &entries[i]
		report.Entries = append(report.Entries, stockHistoryToResponse(e))

		summary := report.ByType[e.ChangeType]
		summary.Count++
		summary.NetQuantity += e.QuantityChange
		report.ByType[e.ChangeType] = summary

		date := e.CreatedAt.UTC().Format("2006-01-02")
		day, ok := byDate[date]
		if !ok {
			day = &dto.DailyMovement{Date: date}
			byDate[date] = day
		}
		// Sign of the change decides the bucket.
		if e.QuantityChange >= 0 {
			day.StockIn += e.QuantityChange
		} else {
			day.StockOut += -e.QuantityChange
		}
	}

	report.ByDate = make([]dto.DailyMovement, 0, len(byDate))
	for _, day := range byDate {
		report.ByDate = append(report.ByDate, *day)
	}
	sort.Slice(report.ByDate, func(i, j int) bool { return report.ByDate[i].Date < report.ByDate[j].Date })
	return report, nil
}

// ─── dashboard ───────────────────────────────────────────────────────────────

func (s *reportService) Dashboard(ctx context.Context, categoryID *uuid.UUID) (*dto.DashboardReport, error) {
	current, err := s.CurrentStock(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	valuation, err := s.Valuation(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	low, err := s.LowStock(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := s.history.Recent(ctx, dashboardRecentCap)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	trendReport, err := s.Movement(ctx, now.AddDate(0, 0, -trendWindowDays), now)
	if err != nil {
		return nil, err
	}

	byCategory, err := s.categoryBreakdown(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	alerts := low.Products
	if len(alerts) > dashboardAlertCap {
		alerts = alerts[:dashboardAlertCap]
	}

	recentResp := make([]dto.StockHistoryResponse, 0, len(recent))
	for i := range recent {
		recentResp = append(recentResp, stockHistoryToResponse(&recent[i]))
	}

	return &dto.DashboardReport{
		TotalStock:          current.TotalStock,
		ProductsInStock:     current.ProductsInStock,
		ProductsOutOfStock:  current.ProductsOutOfStock,
		ProductsLowStock:    current.ProductsLowStock,
		TotalInventoryValue: valuation.TotalInventoryValue,
		RecentMovements:     recentResp,
		LowStockAlerts:      alerts,
		Trend:               trendReport.ByDate,
		ByCategory:          byCategory,
	}, nil
}

func (s *reportService) categoryBreakdown(ctx context.Context, categoryID *uuid.UUID) ([]dto.CategoryBreakdown, error) {
	products, err := s.products.ListForReport(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	grouped := make(map[string]*dto.CategoryBreakdown)
	for i := range products {
		p := &products[i]
		key, name := "", "Uncategorized"
		if p.CategoryID != nil {
			key = p.CategoryID.String()
			if p.Category != nil {
				name = p.Category.Name
			}
		}
		entry, ok := grouped[key]
		if !ok {
			entry = &dto.CategoryBreakdown{CategoryID: key, Name: name, Value: decimal.Zero}
			grouped[key] = entry
		}
		variantStock := 0
		for _, v := range p.Variants {
			variantStock += v.Stock
		}
		entry.Stock += p.Stock + variantStock
		entry.Value = entry.Value.Add(productValue(p))
	}

	result := make([]dto.CategoryBreakdown, 0, len(grouped))
	for _, entry := range grouped {
		result = append(result, *entry)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}
