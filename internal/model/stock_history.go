package model

import (
	"time"

	"github.com/google/uuid"
)

// Stock change types. The sign convention lives in QuantityChange itself:
// positive = stock in, negative = stock out.
const (
	ChangeManualAdjustment = "MANUAL_ADJUSTMENT"
	ChangeOrderPlaced      = "ORDER_PLACED"
	ChangeOrderCancelled   = "ORDER_CANCELLED"
	ChangePurchaseReceived = "PURCHASE_RECEIVED"
	ChangeReturnRestocked  = "RETURN_RESTOCKED"
)

// ValidChangeType reports whether t is one of the known change types.
func ValidChangeType(t string) bool {
	switch t {
	case ChangeManualAdjustment, ChangeOrderPlaced, ChangeOrderCancelled,
		ChangePurchaseReceived, ChangeReturnRestocked:
		return true
	}
	return false
}

// StockHistory is one immutable entry of the append-only stock ledger.
// Rows are never updated or deleted; insertion order (CreatedAt) defines
// the audit trail. For every row QuantityAfter-QuantityBefore == QuantityChange.
type StockHistory struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	ChangeType     string     `gorm:"not null;index"`
	QuantityBefore int        `gorm:"not null"`
	QuantityAfter  int        `gorm:"not null"`
	QuantityChange int        `gorm:"not null"`
	SupplierID     *uuid.UUID `gorm:"type:uuid"`
	UserID         *uuid.UUID `gorm:"type:uuid"`
	Note           string
	CreatedAt      time.Time `gorm:"index"`

	Product  *Product  `gorm:"foreignKey:ProductID"`
	Supplier *Supplier `gorm:"foreignKey:SupplierID"`
	User     *User     `gorm:"foreignKey:UserID"`
}

func (StockHistory) TableName() string { return "stock_history" }
