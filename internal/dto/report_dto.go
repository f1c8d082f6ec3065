package dto

import "github.com/shopspring/decimal"

// Report type discriminators accepted by GET /api/admin/inventory/reports.
const (
	ReportCurrentStock = "current-stock"
	ReportLowStock     = "low-stock"
	ReportValuation    = "valuation"
	ReportMovement     = "movement"
	ReportDashboard    = "dashboard"
)

// ReportFilter carries the query parameters shared by all report types.
// StartDate/EndDate apply to the movement and dashboard projections,
// CategoryID to the product-scoped ones.
type ReportFilter struct {
	Type       string `form:"type"       validate:"required"`
	StartDate  string `form:"startDate"  validate:"omitempty,datetime=2006-01-02"`
	EndDate    string `form:"endDate"    validate:"omitempty,datetime=2006-01-02"`
	CategoryID string `form:"categoryId" validate:"omitempty,uuid"`
}

// ─── current-stock ───────────────────────────────────────────────────────────

type ProductStockItem struct {
	ProductID    string `json:"product_id"`
	SKU          string `json:"sku"`
	Name         string `json:"name"`
	Stock        int    `json:"stock"`
	VariantStock int    `json:"variant_stock"`
	TotalStock   int    `json:"total_stock"`
	HasLowStock  bool   `json:"has_low_stock"`
}

type CurrentStockReport struct {
	Products           []ProductStockItem `json:"products"`
	TotalStock         int                `json:"total_stock"`
	ProductsInStock    int                `json:"products_in_stock"`
	ProductsOutOfStock int                `json:"products_out_of_stock"`
	ProductsLowStock   int                `json:"products_low_stock"`
}

// ─── low-stock ───────────────────────────────────────────────────────────────

type LowStockReport struct {
	Products []StockAlertResponse `json:"products"` // sorted ascending by stock
}

// ─── valuation ───────────────────────────────────────────────────────────────

type ProductValuationItem struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Stock     int             `json:"stock"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Value     decimal.Decimal `json:"value"` // stock×price + variant contributions
}

type ValuationReport struct {
	Products            []ProductValuationItem `json:"products"` // sorted descending by value
	TotalInventoryValue decimal.Decimal        `json:"total_inventory_value"`
}

// ─── movement ────────────────────────────────────────────────────────────────

type MovementTypeSummary struct {
	Count       int `json:"count"`
	NetQuantity int `json:"net_quantity"`
}

// DailyMovement buckets a calendar date's entries by the sign of the change.
type DailyMovement struct {
	Date     string `json:"date"` // YYYY-MM-DD
	StockIn  int    `json:"stock_in"`
	StockOut int    `json:"stock_out"`
}

type MovementReport struct {
	ByType  map[string]MovementTypeSummary `json:"by_type"`
	ByDate  []DailyMovement                `json:"by_date"` // ascending by date
	Entries []StockHistoryResponse         `json:"entries"` // capped at 100 most recent
}

// ─── dashboard ───────────────────────────────────────────────────────────────

type CategoryBreakdown struct {
	CategoryID string          `json:"category_id"`
	Name       string          `json:"name"`
	Stock      int             `json:"stock"`
	Value      decimal.Decimal `json:"value"`
}

type DashboardReport struct {
	TotalStock          int                    `json:"total_stock"`
	ProductsInStock     int                    `json:"products_in_stock"`
	ProductsOutOfStock  int                    `json:"products_out_of_stock"`
	ProductsLowStock    int                    `json:"products_low_stock"`
	TotalInventoryValue decimal.Decimal        `json:"total_inventory_value"`
	RecentMovements     []StockHistoryResponse `json:"recent_movements"`  // 10 most recent
	LowStockAlerts      []StockAlertResponse   `json:"low_stock_alerts"`  // top 10, ascending stock
	Trend               []DailyMovement        `json:"trend"`             // last 30 days
	ByCategory          []CategoryBreakdown    `json:"by_category"`
}
