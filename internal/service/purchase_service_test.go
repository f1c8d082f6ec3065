package service

import (
	"context"
	"testing"

	"shopforge/internal/dto"
	"shopforge/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustUUID(t *testing.T, s string) uuid.UUID {
	t.Helper()
	id, err := uuid.Parse(s)
	require.NoError(t, err)
	return id
}

func newPurchaseFixture() (*stubProductRepo, *stubHistoryRepo, *stubPurchaseRepo, *stubSupplierRepo, PurchaseService) {
	products := newStubProductRepo()
	history := newStubHistoryRepo()
	alerts := newStubAlertRepo()
	purchases := newStubPurchaseRepo()
	suppliers := newStubSupplierRepo()
	inventory := NewInventoryService(products, history, alerts, nil)
	svc := NewPurchaseService(purchases, suppliers, products, inventory)
	return products, history, purchases, suppliers, svc
}

func createOrder(t *testing.T, svc PurchaseService, suppliers *stubSupplierRepo, products *stubProductRepo, qty int) (*dto.PurchaseOrderResponse, *model.Product) {
	t.Helper()
	supplier := suppliers.add(&model.Supplier{Name: "Acme", TaxID: "30-111", Active: true})
	product := seedProduct(products, "Widget", 5)

	po, err := svc.Create(context.Background(), dto.CreatePurchaseOrderRequest{
		SupplierID: supplier.ID.String(),
		Items: []dto.PurchaseOrderItemRequest{
			{ProductID: product.ID.String(), Quantity: qty, UnitCost: decimal.NewFromInt(9)},
		},
	})
	require.NoError(t, err)
	return po, product
}

func TestPurchaseReceiveBooksLedger(t *testing.T) {
	products, history, purchases, suppliers, svc := newPurchaseFixture()
	po, product := createOrder(t, svc, suppliers, products, 30)

	id := mustUUID(t, po.ID)
	received, err := svc.Receive(context.Background(), id, nil)
	require.NoError(t, err)

	assert.Equal(t, model.POStatusReceived, received.Status)
	assert.NotNil(t, received.ReceivedAt)
	assert.Equal(t, 35, products.products[product.ID].Stock)

	require.Len(t, history.entries, 1)
	entry := history.entries[0]
	assert.Equal(t, model.ChangePurchaseReceived, entry.ChangeType)
	assert.Equal(t, 5, entry.QuantityBefore)
	assert.Equal(t, 35, entry.QuantityAfter)
	require.NotNil(t, entry.SupplierID)
	assert.Equal(t, model.POStatusReceived, purchases.orders[id].Status)
}

func TestPurchaseReceiveTwiceRejected(t *testing.T) {
	products, history, _, suppliers, svc := newPurchaseFixture()
	po, product := createOrder(t, svc, suppliers, products, 30)

	id := mustUUID(t, po.ID)
	_, err := svc.Receive(context.Background(), id, nil)
	require.NoError(t, err)

	_, err = svc.Receive(context.Background(), id, nil)
	assert.EqualError(t, err, "purchase order already received")

	// Stock applied exactly once.
	assert.Equal(t, 35, products.products[product.ID].Stock)
	assert.Len(t, history.entries, 1)
}

func TestPurchaseReceiveStaleReadGuarded(t *testing.T) {
	products, history, purchases, suppliers, svc := newPurchaseFixture()
	po, product := createOrder(t, svc, suppliers, products, 30)
	id := mustUUID(t, po.ID)

	// Replay the losing side of a concurrent receive: this caller loaded the
	// order while it was still ordered, but the other receive committed
	// first. The conditional status flip runs before any ledger append, so
	// the stale caller books nothing.
	stale, err := purchases.FindByID(context.Background(), id)
	require.NoError(t, err)
	require.NoError(t, purchases.MarkReceivedTx(nil, id))
	purchases.staleRead = stale
	history.entries = nil
	products.products[product.ID].Stock = 35

	_, err = svc.Receive(context.Background(), id, nil)
	assert.EqualError(t, err, "purchase order already received")
	assert.Empty(t, history.entries, "a lost race must not append ledger rows")
	assert.Equal(t, 35, products.products[product.ID].Stock)
}

func TestPurchaseCreateAllocatesNumbers(t *testing.T) {
	products, _, _, suppliers, svc := newPurchaseFixture()
	supplier := suppliers.add(&model.Supplier{Name: "Acme", TaxID: "30-222", Active: true})
	product := seedProduct(products, "Widget", 0)

	req := dto.CreatePurchaseOrderRequest{
		SupplierID: supplier.ID.String(),
		Items: []dto.PurchaseOrderItemRequest{
			{ProductID: product.ID.String(), Quantity: 1, UnitCost: decimal.NewFromInt(1)},
		},
	}
	first, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, int64(1), first.Number)
	assert.Equal(t, int64(2), second.Number)
	assert.Equal(t, model.POStatusOrdered, first.Status)
}
