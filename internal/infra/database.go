package infra

import (
	"fmt"

	"shopforge/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies the idempotent SQL patches that GORM
// cannot express (partial indexes, CHECK constraints on the ledger).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}

	return db, nil
}

// RunMigrations creates or updates the schema. Also used by integration tests
// against a throwaway container database.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Supplier{},
		&model.Product{},
		&model.ProductVariant{},
		&model.StockHistory{},
		&model.StockAlert{},
		&model.CheckoutSettings{},
		&model.PurchaseOrder{},
		&model.PurchaseOrderItem{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot express.
// The CHECK constraints turn the ledger bookkeeping rules into database
// guarantees: every row balances and no snapshot is ever negative, even if a
// future code path bypasses the service layer.
func applySchemaPatches(db *gorm.DB) error {
	patches := []struct{ descr, sql string }{
		{"stock_history balance check", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_stock_history_balance') THEN
    ALTER TABLE stock_history
      ADD CONSTRAINT chk_stock_history_balance
      CHECK (quantity_after - quantity_before = quantity_change);
  END IF;
END $$`},
		{"stock_history non-negative check", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_stock_history_non_negative') THEN
    ALTER TABLE stock_history
      ADD CONSTRAINT chk_stock_history_non_negative
      CHECK (quantity_after >= 0);
  END IF;
END $$`},
		{"products non-negative stock check", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_products_stock_non_negative') THEN
    ALTER TABLE products
      ADD CONSTRAINT chk_products_stock_non_negative
      CHECK (stock >= 0);
  END IF;
END $$`},
		// Movement history is always read newest-first per product or per range.
		{"stock_history product/date index", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_stock_history_product_created') THEN
    CREATE INDEX idx_stock_history_product_created
        ON stock_history (product_id, created_at DESC);
  END IF;
END $$`},
		// The low-stock report joins alerts to products; only enabled rows matter
		// for notifications.
		{"stock_alerts enabled partial index", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_stock_alerts_enabled') THEN
    CREATE INDEX idx_stock_alerts_enabled
        ON stock_alerts (product_id)
        WHERE enabled;
  END IF;
END $$`},
	}

	for _, p := range patches {
		if err := db.Exec(p.sql).Error; err != nil {
			return fmt.Errorf("schema patch %q: %w", p.descr, err)
		}
	}
	return nil
}
