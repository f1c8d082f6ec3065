package repository

import (
	"context"

	"shopforge/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StockAlertRepository interface {
	Create(ctx context.Context, a *model.StockAlert) error
	FindByProductID(ctx context.Context, productID uuid.UUID) (*model.StockAlert, error)
	Update(ctx context.Context, a *model.StockAlert) error
	// ListAll returns every alert row with its product preloaded.
	ListAll(ctx context.Context) ([]model.StockAlert, error)
}

type stockAlertRepo struct{ db *gorm.DB }

func NewStockAlertRepository(db *gorm.DB) StockAlertRepository {
	return &stockAlertRepo{db: db}
}

func (r *stockAlertRepo) Create(ctx context.Context, a *model.StockAlert) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *stockAlertRepo) FindByProductID(ctx context.Context, productID uuid.UUID) (*model.StockAlert, error) {
	var a model.StockAlert
	err := r.db.WithContext(ctx).Where("product_id = ?", productID).First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *stockAlertRepo) Update(ctx context.Context, a *model.StockAlert) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *stockAlertRepo) ListAll(ctx context.Context) ([]model.StockAlert, error) {
	var alerts []model.StockAlert
	err := r.db.WithContext(ctx).Preload("Product").Find(&alerts).Error
	return alerts, err
}
