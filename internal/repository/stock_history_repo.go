package repository

import (
	"context"
	"time"

	"shopforge/internal/dto"
	"shopforge/internal/model"

	"gorm.io/gorm"
)

// StockHistoryRepository is append-only: entries are created (always inside
// the same transaction that moves the product counter) and read back for the
// audit trail and reports. There is deliberately no Update or Delete.
type StockHistoryRepository interface {
	CreateTx(tx *gorm.DB, entry *model.StockHistory) error
	List(ctx context.Context, filter dto.MovementFilter) ([]model.StockHistory, int64, error)
	// ListBetween returns entries in [start, end), newest first, capped at limit.
	ListBetween(ctx context.Context, start, end time.Time, limit int) ([]model.StockHistory, error)
	Recent(ctx context.Context, n int) ([]model.StockHistory, error)
}

type stockHistoryRepo struct{ db *gorm.DB }

func NewStockHistoryRepository(db *gorm.DB) StockHistoryRepository {
	return &stockHistoryRepo{db: db}
}

func (r *stockHistoryRepo) CreateTx(tx *gorm.DB, entry *model.StockHistory) error {
	return tx.Create(entry).Error
}

func (r *stockHistoryRepo) List(ctx context.Context, filter dto.MovementFilter) ([]model.StockHistory, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.StockHistory{}).Preload("Product")
	if filter.ProductID != "" {
		q = q.Where("product_id = ?", filter.ProductID)
	}
	if filter.ChangeType != "" {
		q = q.Where("change_type = ?", filter.ChangeType)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	limit := filter.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 500 {
		limit = 50
	}
	offset := (page - 1) * limit

	var entries []model.StockHistory
	err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&entries).Error
	return entries, total, err
}

func (r *stockHistoryRepo) ListBetween(ctx context.Context, start, end time.Time, limit int) ([]model.StockHistory, error) {
	var entries []model.StockHistory
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("created_at >= ? AND created_at < ?", start, end).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}

func (r *stockHistoryRepo) Recent(ctx context.Context, n int) ([]model.StockHistory, error) {
	var entries []model.StockHistory
	err := r.db.WithContext(ctx).
		Preload("Product").
		Order("created_at DESC").
		Limit(n).
		Find(&entries).Error
	return entries, err
}
