package service

import (
	"context"
	"testing"

	"shopforge/internal/dto"
	"shopforge/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInventoryFixture() (*stubProductRepo, *stubHistoryRepo, *stubAlertRepo, InventoryService) {
	products := newStubProductRepo()
	history := newStubHistoryRepo()
	alerts := newStubAlertRepo()
	svc := NewInventoryService(products, history, alerts, nil)
	return products, history, alerts, svc
}

func seedProduct(products *stubProductRepo, name string, stock int) *model.Product {
	return products.add(&model.Product{
		SKU:    "SKU-" + name,
		Name:   name,
		Price:  decimal.NewFromInt(10),
		Stock:  stock,
		Active: true,
	})
}

func TestClassifyStockLevel(t *testing.T) {
	assert.Equal(t, LevelOut, ClassifyStockLevel(0, 10))
	assert.Equal(t, LevelOut, ClassifyStockLevel(0, 0), "zero stock is OUT even with a zero threshold")
	assert.Equal(t, LevelLow, ClassifyStockLevel(1, 10))
	assert.Equal(t, LevelLow, ClassifyStockLevel(10, 10), "boundary: stock == threshold is LOW")
	assert.Equal(t, LevelOK, ClassifyStockLevel(11, 10))
	assert.Equal(t, LevelOK, ClassifyStockLevel(1, 0), "threshold 0 means only OUT can trigger")
}

func TestResolveThreshold(t *testing.T) {
	assert.Equal(t, DefaultLowStockThreshold, ResolveThreshold(nil))
	assert.Equal(t, 25, ResolveThreshold(&model.StockAlert{Threshold: 25}))
	assert.Equal(t, 0, ResolveThreshold(&model.StockAlert{Threshold: 0}), "an explicit zero is honored, not defaulted")
}

func TestRecordStockChangeLedgerArithmetic(t *testing.T) {
	products, history, _, svc := newInventoryFixture()
	p := seedProduct(products, "Widget", 10)

	resp, err := svc.RecordStockChange(context.Background(), StockChange{
		ProductID:      p.ID,
		ChangeType:     model.ChangeManualAdjustment,
		QuantityChange: -4,
		Note:           "damaged in transit",
	})
	require.NoError(t, err)

	assert.Equal(t, 10, resp.QuantityBefore)
	assert.Equal(t, 6, resp.QuantityAfter)
	assert.Equal(t, -4, resp.QuantityChange)
	assert.Equal(t, resp.QuantityAfter-resp.QuantityBefore, resp.QuantityChange)

	// The counter is a cache of the ledger tail.
	assert.Equal(t, 6, products.products[p.ID].Stock)
	require.Len(t, history.entries, 1)
	assert.Equal(t, model.ChangeManualAdjustment, history.entries[0].ChangeType)
}

func TestRecordStockChangeSequence(t *testing.T) {
	products, history, _, svc := newInventoryFixture()
	p := seedProduct(products, "Widget", 0)

	deltas := []int{5, -2, 12, -15}
	expected := []struct{ before, after int }{{0, 5}, {5, 3}, {3, 15}, {15, 0}}

	for i, d := range deltas {
		resp, err := svc.RecordStockChange(context.Background(), StockChange{
			ProductID:      p.ID,
			ChangeType:     model.ChangeManualAdjustment,
			QuantityChange: d,
		})
		require.NoError(t, err)
		assert.Equal(t, expected[i].before, resp.QuantityBefore)
		assert.Equal(t, expected[i].after, resp.QuantityAfter)
	}

	assert.Equal(t, 0, products.products[p.ID].Stock)
	assert.Len(t, history.entries, len(deltas))
}

func TestRecordStockChangeInsufficientStock(t *testing.T) {
	products, history, _, svc := newInventoryFixture()
	p := seedProduct(products, "Widget", 3)

	_, err := svc.RecordStockChange(context.Background(), StockChange{
		ProductID:      p.ID,
		ChangeType:     model.ChangeOrderPlaced,
		QuantityChange: -5,
	})
	assert.ErrorIs(t, err, ErrInsufficientStock)

	// Nothing persisted: counter untouched, ledger empty.
	assert.Equal(t, 3, products.products[p.ID].Stock)
	assert.Empty(t, history.entries)
}

func TestRecordStockChangeUnknownType(t *testing.T) {
	products, history, _, svc := newInventoryFixture()
	p := seedProduct(products, "Widget", 3)

	_, err := svc.RecordStockChange(context.Background(), StockChange{
		ProductID:      p.ID,
		ChangeType:     "SHRINKAGE",
		QuantityChange: -1,
	})
	assert.ErrorIs(t, err, ErrUnknownChangeType)
	assert.Equal(t, 3, products.products[p.ID].Stock)
	assert.Empty(t, history.entries)
}

func TestRecordStockChangeZeroAllowedAtBoundary(t *testing.T) {
	products, _, _, svc := newInventoryFixture()
	p := seedProduct(products, "Widget", 5)

	// Draining to exactly zero is fine; it is going below that is rejected.
	resp, err := svc.RecordStockChange(context.Background(), StockChange{
		ProductID:      p.ID,
		ChangeType:     model.ChangeOrderPlaced,
		QuantityChange: -5,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.QuantityAfter)
}

func TestCreateAlertRejectsDuplicate(t *testing.T) {
	products, _, _, svc := newInventoryFixture()
	p := seedProduct(products, "Widget", 5)

	_, err := svc.CreateAlert(context.Background(), dto.CreateStockAlertRequest{
		ProductID: p.ID.String(),
		Threshold: 7,
	})
	require.NoError(t, err)

	_, err = svc.CreateAlert(context.Background(), dto.CreateStockAlertRequest{
		ProductID: p.ID.String(),
		Threshold: 9,
	})
	assert.Error(t, err)
}

func TestUpdateAlertAndLevel(t *testing.T) {
	products, _, _, svc := newInventoryFixture()
	p := seedProduct(products, "Widget", 5)

	created, err := svc.CreateAlert(context.Background(), dto.CreateStockAlertRequest{
		ProductID: p.ID.String(),
		Threshold: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, string(LevelOK), created.Level, "stock 5 over threshold 3")

	newThreshold := 8
	enabled := false
	updated, err := svc.UpdateAlert(context.Background(), p.ID, dto.UpdateStockAlertRequest{
		Threshold: &newThreshold,
		Enabled:   &enabled,
	})
	require.NoError(t, err)
	assert.Equal(t, 8, updated.Threshold)
	assert.False(t, updated.Enabled)
	// Disabling suppresses notifications only; classification still applies.
	assert.Equal(t, string(LevelLow), updated.Level)
}

func TestListMovementsFilters(t *testing.T) {
	products, _, _, svc := newInventoryFixture()
	p1 := seedProduct(products, "Widget", 10)
	p2 := seedProduct(products, "Gadget", 10)

	changes := []StockChange{
		{ProductID: p1.ID, ChangeType: model.ChangeManualAdjustment, QuantityChange: 2},
		{ProductID: p1.ID, ChangeType: model.ChangeOrderPlaced, QuantityChange: -1},
		{ProductID: p2.ID, ChangeType: model.ChangeOrderPlaced, QuantityChange: -3},
	}
	for _, ch := range changes {
		_, err := svc.RecordStockChange(context.Background(), ch)
		require.NoError(t, err)
	}

	byProduct, err := svc.ListMovements(context.Background(), dto.MovementFilter{ProductID: p1.ID.String()})
	require.NoError(t, err)
	assert.Equal(t, int64(2), byProduct.Total)

	byType, err := svc.ListMovements(context.Background(), dto.MovementFilter{ChangeType: model.ChangeOrderPlaced})
	require.NoError(t, err)
	assert.Equal(t, int64(2), byType.Total)
}
