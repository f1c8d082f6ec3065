package repository

import (
	"context"

	"shopforge/internal/model"

	"gorm.io/gorm"
)

// CheckoutSettingsRepository accesses the single settings row under its
// well-known key. Get returns gorm.ErrRecordNotFound when the row has not
// been lazily created yet; the service decides what the default looks like.
type CheckoutSettingsRepository interface {
	Get(ctx context.Context) (*model.CheckoutSettings, error)
	Upsert(ctx context.Context, s *model.CheckoutSettings) error
}

type checkoutSettingsRepo struct{ db *gorm.DB }

func NewCheckoutSettingsRepository(db *gorm.DB) CheckoutSettingsRepository {
	return &checkoutSettingsRepo{db: db}
}

func (r *checkoutSettingsRepo) Get(ctx context.Context) (*model.CheckoutSettings, error) {
	var s model.CheckoutSettings
	err := r.db.WithContext(ctx).Where("key = ?", model.CheckoutSettingsKey).First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *checkoutSettingsRepo) Upsert(ctx context.Context, s *model.CheckoutSettings) error {
	s.Key = model.CheckoutSettingsKey
	return r.db.WithContext(ctx).Save(s).Error
}
