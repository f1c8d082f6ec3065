package model

import (
	"time"

	"github.com/google/uuid"
)

// Supplier is referenced by purchase orders and by PURCHASE_RECEIVED
// ledger entries.
type Supplier struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string    `gorm:"not null"`
	TaxID        string    `gorm:"column:tax_id;uniqueIndex;not null"`
	ContactEmail *string
	Phone        *string
	Address      *string
	Active       bool `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Products []Product `gorm:"foreignKey:SupplierID"`
}
