package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type PurchaseOrderItemRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid"`
	Quantity  int             `json:"quantity"   validate:"required,gt=0"`
	UnitCost  decimal.Decimal `json:"unit_cost"  validate:"required"`
}

type CreatePurchaseOrderRequest struct {
	SupplierID string                     `json:"supplier_id" validate:"required,uuid"`
	Items      []PurchaseOrderItemRequest `json:"items"       validate:"required,min=1,dive"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type PurchaseOrderItemResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name,omitempty"`
	Quantity    int             `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
}

type PurchaseOrderResponse struct {
	ID         string                      `json:"id"`
	Number     int64                       `json:"number"`
	SupplierID string                      `json:"supplier_id"`
	Status     string                      `json:"status"`
	Items      []PurchaseOrderItemResponse `json:"items"`
	ReceivedAt *string                     `json:"received_at"`
	CreatedAt  string                      `json:"created_at"`
}
