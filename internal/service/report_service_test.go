package service

import (
	"context"
	"testing"
	"time"

	"shopforge/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReportFixture() (*stubProductRepo, *stubHistoryRepo, *stubAlertRepo, ReportService) {
	products := newStubProductRepo()
	history := newStubHistoryRepo()
	alerts := newStubAlertRepo()
	svc := NewReportService(products, history, alerts)
	return products, history, alerts, svc
}

func priceProduct(products *stubProductRepo, name string, stock int, price int64) *model.Product {
	return products.add(&model.Product{
		SKU:    "SKU-" + name,
		Name:   name,
		Price:  decimal.NewFromInt(price),
		Stock:  stock,
		Active: true,
	})
}

func TestCurrentStockCounts(t *testing.T) {
	products, _, alerts, svc := newReportFixture()
	priceProduct(products, "Plenty", 50, 10)
	low := priceProduct(products, "Scarce", 4, 10)  // default threshold 10 → LOW
	priceProduct(products, "Gone", 0, 10)           // OUT
	high := priceProduct(products, "Watched", 20, 10)
	require.NoError(t, alerts.Create(context.Background(), &model.StockAlert{
		ProductID: high.ID, Threshold: 30, Enabled: true, // 20 <= 30 → LOW
	}))

	report, err := svc.CurrentStock(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, 74, report.TotalStock)
	assert.Equal(t, 3, report.ProductsInStock, "LOW products still count as in stock")
	assert.Equal(t, 1, report.ProductsOutOfStock)
	assert.Equal(t, 2, report.ProductsLowStock)

	for _, item := range report.Products {
		switch item.ProductID {
		case low.ID.String(), high.ID.String():
			assert.True(t, item.HasLowStock, item.Name)
		}
	}
}

func TestCurrentStockIncludesVariants(t *testing.T) {
	products, _, _, svc := newReportFixture()
	p := priceProduct(products, "Shirt", 5, 20)
	p.Variants = []model.ProductVariant{
		{ProductID: p.ID, Name: "S", SKU: "SHIRT-S", Price: decimal.NewFromInt(20), Stock: 3},
		{ProductID: p.ID, Name: "M", SKU: "SHIRT-M", Price: decimal.NewFromInt(22), Stock: 2},
	}

	report, err := svc.CurrentStock(context.Background(), nil)
	require.NoError(t, err)

	require.Len(t, report.Products, 1)
	assert.Equal(t, 5, report.Products[0].Stock)
	assert.Equal(t, 5, report.Products[0].VariantStock)
	assert.Equal(t, 10, report.Products[0].TotalStock)
	assert.Equal(t, 10, report.TotalStock)
}

func TestLowStockUnionWithoutDuplicates(t *testing.T) {
	products, _, alerts, svc := newReportFixture()
	a := priceProduct(products, "Alpha", 2, 10) // default threshold → LOW
	b := priceProduct(products, "Beta", 15, 10)
	require.NoError(t, alerts.Create(context.Background(), &model.StockAlert{
		ProductID: b.ID, Threshold: 20, Enabled: true, // explicit → LOW
	}))
	// Explicit alert AND under default threshold: must appear exactly once.
	c := priceProduct(products, "Gamma", 1, 10)
	require.NoError(t, alerts.Create(context.Background(), &model.StockAlert{
		ProductID: c.ID, Threshold: 5, Enabled: true,
	}))
	priceProduct(products, "Delta", 99, 10) // OK — excluded

	report, err := svc.LowStock(context.Background())
	require.NoError(t, err)

	require.Len(t, report.Products, 3)

	seen := make(map[string]int)
	for _, item := range report.Products {
		seen[item.ProductID]++
	}
	assert.Equal(t, 1, seen[a.ID.String()])
	assert.Equal(t, 1, seen[b.ID.String()])
	assert.Equal(t, 1, seen[c.ID.String()])

	// Ascending by stock: Gamma(1), Alpha(2), Beta(15).
	assert.Equal(t, c.ID.String(), report.Products[0].ProductID)
	assert.Equal(t, a.ID.String(), report.Products[1].ProductID)
	assert.Equal(t, b.ID.String(), report.Products[2].ProductID)
}

func TestLowStockUsesExplicitThresholdOverDefault(t *testing.T) {
	products, _, alerts, svc := newReportFixture()
	p := priceProduct(products, "Tight", 8, 10)
	// Explicit threshold below current stock: product is OK even though the
	// default threshold would flag it.
	require.NoError(t, alerts.Create(context.Background(), &model.StockAlert{
		ProductID: p.ID, Threshold: 5, Enabled: true,
	}))

	report, err := svc.LowStock(context.Background())
	require.NoError(t, err)
	assert.Empty(t, report.Products)
}

func TestValuationOrderingAndTotal(t *testing.T) {
	products, _, _, svc := newReportFixture()
	priceProduct(products, "Cheap", 10, 2)      // value 20
	priceProduct(products, "Expensive", 3, 100) // value 300
	withVariants := priceProduct(products, "Mixed", 1, 50) // 50 + variants
	withVariants.Variants = []model.ProductVariant{
		{ProductID: withVariants.ID, Name: "XL", SKU: "MIX-XL", Price: decimal.NewFromInt(60), Stock: 2}, // 120
	}

	report, err := svc.Valuation(context.Background(), nil)
	require.NoError(t, err)

	require.Len(t, report.Products, 3)
	assert.Equal(t, "Expensive", report.Products[0].Name)
	assert.Equal(t, "Mixed", report.Products[1].Name)
	assert.Equal(t, "Cheap", report.Products[2].Name)

	assert.True(t, report.Products[1].Value.Equal(decimal.NewFromInt(170)))
	assert.True(t, report.TotalInventoryValue.Equal(decimal.NewFromInt(490)))
}

func TestMovementAggregation(t *testing.T) {
	products, history, _, svc := newReportFixture()
	p := priceProduct(products, "Widget", 10, 5)

	day1 := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 8, 2, 10, 0, 0, 0, time.UTC)
	entries := []model.StockHistory{
		{ProductID: p.ID, ChangeType: model.ChangePurchaseReceived, QuantityBefore: 0, QuantityAfter: 10, QuantityChange: 10, CreatedAt: day1},
		{ProductID: p.ID, ChangeType: model.ChangeOrderPlaced, QuantityBefore: 10, QuantityAfter: 7, QuantityChange: -3, CreatedAt: day1.Add(time.Hour)},
		{ProductID: p.ID, ChangeType: model.ChangeOrderPlaced, QuantityBefore: 7, QuantityAfter: 5, QuantityChange: -2, CreatedAt: day2},
		{ProductID: p.ID, ChangeType: model.ChangeReturnRestocked, QuantityBefore: 5, QuantityAfter: 6, QuantityChange: 1, CreatedAt: day2.Add(time.Hour)},
	}
	for i := range entries {
		entries[i].ID = uuid.New()
		history.entries = append(history.entries, entries[i])
	}

	report, err := svc.Movement(context.Background(),
		time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Len(t, report.Entries, 4)

	orders := report.ByType[model.ChangeOrderPlaced]
	assert.Equal(t, 2, orders.Count)
	assert.Equal(t, -5, orders.NetQuantity)
	received := report.ByType[model.ChangePurchaseReceived]
	assert.Equal(t, 1, received.Count)
	assert.Equal(t, 10, received.NetQuantity)

	require.Len(t, report.ByDate, 2)
	assert.Equal(t, "2026-08-01", report.ByDate[0].Date)
	assert.Equal(t, 10, report.ByDate[0].StockIn)
	assert.Equal(t, 3, report.ByDate[0].StockOut)
	assert.Equal(t, "2026-08-02", report.ByDate[1].Date)
	assert.Equal(t, 1, report.ByDate[1].StockIn)
	assert.Equal(t, 2, report.ByDate[1].StockOut)
}

func TestMovementWindowExcludesOutside(t *testing.T) {
	products, history, _, svc := newReportFixture()
	p := priceProduct(products, "Widget", 10, 5)

	inside := time.Date(2026, 8, 5, 12, 0, 0, 0, time.UTC)
	before := inside.AddDate(0, -1, 0)
	history.entries = append(history.entries,
		model.StockHistory{ID: uuid.New(), ProductID: p.ID, ChangeType: model.ChangeManualAdjustment, QuantityChange: 1, QuantityAfter: 1, CreatedAt: inside},
		model.StockHistory{ID: uuid.New(), ProductID: p.ID, ChangeType: model.ChangeManualAdjustment, QuantityChange: 5, QuantityAfter: 5, CreatedAt: before},
	)

	report, err := svc.Movement(context.Background(),
		time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Len(t, report.Entries, 1)
}

func TestDashboardComposition(t *testing.T) {
	products, history, alerts, svc := newReportFixture()
	p := priceProduct(products, "Widget", 4, 25) // LOW under default threshold
	priceProduct(products, "Other", 40, 10)
	require.NoError(t, alerts.Create(context.Background(), &model.StockAlert{
		ProductID: p.ID, Threshold: 6, Enabled: true,
	}))
	history.entries = append(history.entries, model.StockHistory{
		ID: uuid.New(), ProductID: p.ID, ChangeType: model.ChangeOrderPlaced,
		QuantityBefore: 5, QuantityAfter: 4, QuantityChange: -1,
		CreatedAt: time.Now().UTC().Add(-time.Hour),
	})

	report, err := svc.Dashboard(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, 44, report.TotalStock)
	assert.Equal(t, 2, report.ProductsInStock)
	assert.Equal(t, 0, report.ProductsOutOfStock)
	assert.Equal(t, 1, report.ProductsLowStock)
	assert.True(t, report.TotalInventoryValue.Equal(decimal.NewFromInt(500)))
	require.Len(t, report.RecentMovements, 1)
	require.Len(t, report.LowStockAlerts, 1)
	assert.Equal(t, p.ID.String(), report.LowStockAlerts[0].ProductID)
	require.Len(t, report.ByCategory, 1)
	assert.Equal(t, "Uncategorized", report.ByCategory[0].Name)
	assert.Equal(t, 44, report.ByCategory[0].Stock)
}
