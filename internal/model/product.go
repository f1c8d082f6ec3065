package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is the catalog unit whose Stock column caches the tail of the
// stock ledger: it must always equal the QuantityAfter of the product's
// most recent StockHistory entry.
type Product struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SKU         string    `gorm:"uniqueIndex;not null"`
	Name        string    `gorm:"index;not null"`
	Description *string
	CategoryID  *uuid.UUID      `gorm:"type:uuid;index"`
	SupplierID  *uuid.UUID      `gorm:"type:uuid;index"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CostPrice   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Stock       int             `gorm:"not null;default:0"`
	Active      bool            `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Category *Category        `gorm:"foreignKey:CategoryID"`
	Supplier *Supplier        `gorm:"foreignKey:SupplierID"`
	Variants []ProductVariant `gorm:"foreignKey:ProductID"`
}

// ProductVariant holds per-variant stock and price. Variant stock counts
// toward the current-stock and valuation reports but is not ledger-tracked;
// only the parent product's Stock column is.
type ProductVariant struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name      string          `gorm:"not null"`
	SKU       string          `gorm:"uniqueIndex;not null"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Stock     int             `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
