package model

import (
	"time"

	"github.com/google/uuid"
)

// StockAlert is an optional per-product low-stock threshold. A product with
// no alert row still participates in low-stock classification under the
// system-wide default threshold.
type StockAlert struct {
	ProductID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Threshold int       `gorm:"not null"`
	Enabled   bool      `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
}
