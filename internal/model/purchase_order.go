package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Purchase order states.
const (
	POStatusDraft    = "draft"
	POStatusOrdered  = "ordered"
	POStatusReceived = "received"
)

// PurchaseOrder is a replenishment order against a supplier. Receiving it
// appends one PURCHASE_RECEIVED ledger entry per line item.
type PurchaseOrder struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Number     int64     `gorm:"uniqueIndex;not null"`
	SupplierID uuid.UUID `gorm:"type:uuid;not null;index"`
	Status     string    `gorm:"type:varchar(20);not null;default:'draft'"`
	ReceivedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Supplier *Supplier           `gorm:"foreignKey:SupplierID"`
	Items    []PurchaseOrderItem `gorm:"foreignKey:PurchaseOrderID"`
}

// PurchaseOrderItem is one product line on a purchase order.
type PurchaseOrderItem struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PurchaseOrderID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID       uuid.UUID       `gorm:"type:uuid;not null"`
	Quantity        int             `gorm:"not null"`
	UnitCost        decimal.Decimal `gorm:"type:decimal(10,2);not null"`

	Product *Product `gorm:"foreignKey:ProductID"`
}
