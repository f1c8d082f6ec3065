package repository

import (
	"context"

	"shopforge/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PurchaseOrderRepository interface {
	Create(ctx context.Context, po *model.PurchaseOrder) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.PurchaseOrder, error)
	List(ctx context.Context) ([]model.PurchaseOrder, error)
	// NextNumber allocates a monotonically increasing order number.
	NextNumber(ctx context.Context) (int64, error)
	// MarkReceivedTx flips the order to received only if it is not already;
	// a lost race reports gorm.ErrRecordNotFound so concurrent receives
	// cannot book the same items twice.
	MarkReceivedTx(tx *gorm.DB, id uuid.UUID) error
	DB() *gorm.DB
}

type purchaseOrderRepo struct{ db *gorm.DB }

func NewPurchaseOrderRepository(db *gorm.DB) PurchaseOrderRepository {
	return &purchaseOrderRepo{db: db}
}

func (r *purchaseOrderRepo) Create(ctx context.Context, po *model.PurchaseOrder) error {
	return r.db.WithContext(ctx).Create(po).Error
}

func (r *purchaseOrderRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.PurchaseOrder, error) {
	var po model.PurchaseOrder
	err := r.db.WithContext(ctx).
		Preload("Items").Preload("Items.Product").Preload("Supplier").
		First(&po, id).Error
	if err != nil {
		return nil, err
	}
	return &po, nil
}

func (r *purchaseOrderRepo) List(ctx context.Context) ([]model.PurchaseOrder, error) {
	var orders []model.PurchaseOrder
	err := r.db.WithContext(ctx).
		Preload("Items").Preload("Supplier").
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

func (r *purchaseOrderRepo) NextNumber(ctx context.Context) (int64, error) {
	var next int64
	err := r.db.WithContext(ctx).Raw(
		"SELECT COALESCE(MAX(number), 0) + 1 FROM purchase_orders").Scan(&next).Error
	return next, err
}

func (r *purchaseOrderRepo) MarkReceivedTx(tx *gorm.DB, id uuid.UUID) error {
	res := tx.Model(&model.PurchaseOrder{}).
		Where("id = ? AND status <> ?", id, model.POStatusReceived).
		Updates(map[string]interface{}{
			"status":      model.POStatusReceived,
			"received_at": gorm.Expr("NOW()"),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *purchaseOrderRepo) DB() *gorm.DB { return r.db }
