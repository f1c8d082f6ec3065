package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

// RecordStockChangeRequest appends one ledger entry. QuantityChange is signed:
// positive = stock in, negative = stock out.
type RecordStockChangeRequest struct {
	ProductID      string  `json:"product_id"      validate:"required,uuid"`
	ChangeType     string  `json:"change_type"     validate:"required"`
	QuantityChange int     `json:"quantity_change" validate:"required,ne=0"`
	SupplierID     *string `json:"supplier_id"     validate:"omitempty,uuid"`
	Note           string  `json:"note"            validate:"max=240"`
}

type CreateStockAlertRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Threshold int    `json:"threshold"  validate:"min=0"`
	Enabled   *bool  `json:"enabled"`
}

type UpdateStockAlertRequest struct {
	Threshold *int  `json:"threshold" validate:"omitempty,min=0"`
	Enabled   *bool `json:"enabled"`
}

// MovementFilter narrows the paginated ledger listing.
type MovementFilter struct {
	ProductID  string `form:"product_id"`
	ChangeType string `form:"change_type"`
	Page       int    `form:"page,default=1"   validate:"min=1"`
	Limit      int    `form:"limit,default=50" validate:"min=1,max=500"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type StockHistoryResponse struct {
	ID             string  `json:"id"`
	ProductID      string  `json:"product_id"`
	ProductName    string  `json:"product_name,omitempty"`
	ChangeType     string  `json:"change_type"`
	QuantityBefore int     `json:"quantity_before"`
	QuantityAfter  int     `json:"quantity_after"`
	QuantityChange int     `json:"quantity_change"`
	SupplierID     *string `json:"supplier_id,omitempty"`
	UserID         *string `json:"user_id,omitempty"`
	Note           string  `json:"note,omitempty"`
	CreatedAt      string  `json:"created_at"`
}

type MovementListResponse struct {
	Data  []StockHistoryResponse `json:"data"`
	Total int64                  `json:"total"`
	Page  int                    `json:"page"`
	Limit int                    `json:"limit"`
}

type StockAlertResponse struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name,omitempty"`
	Stock       int    `json:"stock"`
	Threshold   int    `json:"threshold"`
	Enabled     bool   `json:"enabled"`
	Level       string `json:"level"` // OK | LOW | OUT
}
