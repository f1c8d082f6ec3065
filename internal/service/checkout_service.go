package service

import (
	"context"
	"errors"
	"time"

	"shopforge/internal/dto"
	"shopforge/internal/model"
	"shopforge/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// CheckoutCacheKey is the Redis key under which the storefront-facing copy
// of the settings is cached. Writes invalidate it (best effort).
const CheckoutCacheKey = "checkout:settings"

// ValidateFieldVisibility enforces the minimum-viable-checkout invariant:
// at least one visible+required field in each of the three buckets
// (email / name / address). Only a nil config means the caller accepts the
// system defaults; an explicit empty map is a real configuration in which
// every field is absent, and absence counts as {visible:false,
// required:false} — so it fails all three buckets.
//
// Pure function; must run before any persistence I/O so a rejected
// configuration never reaches storage.
func ValidateFieldVisibility(cfg model.FieldVisibilityConfig) error {
	if cfg == nil {
		return nil
	}

	var hasEmail, hasName, hasAddress bool
	for field, setting := range cfg {
		if !setting.Visible || !setting.Required {
			continue
		}
		switch field {
		case model.FieldEmail:
			hasEmail = true
		case model.FieldFirstName, model.FieldLastName:
			hasName = true
		case model.FieldAddress, model.FieldCity:
			hasAddress = true
		}
	}

	if !hasEmail || !hasName || !hasAddress {
		return ErrCheckoutFieldsIncomplete
	}
	return nil
}

// CheckoutService manages the per-store checkout configuration singleton.
type CheckoutService interface {
	Get(ctx context.Context) (*dto.CheckoutSettingsResponse, error)
	Update(ctx context.Context, req dto.UpdateCheckoutSettingsRequest) (*dto.CheckoutSettingsResponse, error)
	// Reset restores premium fields to hard-coded defaults, preserving the
	// basic fields. Idempotent.
	Reset(ctx context.Context) (*dto.CheckoutSettingsResponse, error)
}

type checkoutService struct {
	repo repository.CheckoutSettingsRepository
	rdb  *redis.Client
}

func NewCheckoutService(repo repository.CheckoutSettingsRepository, rdb *redis.Client) CheckoutService {
	return &checkoutService{repo: repo, rdb: rdb}
}

func defaultSettings() *model.CheckoutSettings {
	return &model.CheckoutSettings{
		Key:             model.CheckoutSettingsKey,
		GuestCheckout:   true,
		OrderNotes:      false,
		FieldVisibility: model.DefaultFieldVisibility(),
		TrustBadges:     false,
		DiscountCodes:   true,
	}
}

// getOrCreate lazily materializes the settings row on first read.
func (s *checkoutService) getOrCreate(ctx context.Context) (*model.CheckoutSettings, error) {
	settings, err := s.repo.Get(ctx)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = defaultSettings()
		if err := s.repo.Upsert(ctx, settings); err != nil {
			return nil, err
		}
		return settings, nil
	}
	if err != nil {
		return nil, err
	}
	return settings, nil
}

func (s *checkoutService) Get(ctx context.Context) (*dto.CheckoutSettingsResponse, error) {
	settings, err := s.getOrCreate(ctx)
	if err != nil {
		return nil, err
	}
	return mapSettings(settings), nil
}

func (s *checkoutService) Update(ctx context.Context, req dto.UpdateCheckoutSettingsRequest) (*dto.CheckoutSettingsResponse, error) {
	// Reject unknown field names before the invariant check so a typo'd key
	// cannot silently fail to contribute to any bucket.
	for field := range req.FieldVisibility {
		if !field.Valid() {
			return nil, ErrUnknownCheckoutField
		}
	}
	// Gate: the invariant check runs before any persistence I/O.
	if req.FieldVisibility != nil {
		if err := ValidateFieldVisibility(req.FieldVisibility); err != nil {
			return nil, err
		}
	}

	settings, err := s.getOrCreate(ctx)
	if err != nil {
		return nil, err
	}

	if req.GuestCheckout != nil {
		settings.GuestCheckout = *req.GuestCheckout
	}
	if req.OrderNotes != nil {
		settings.OrderNotes = *req.OrderNotes
	}
	if req.FieldVisibility != nil {
		settings.FieldVisibility = req.FieldVisibility
	}
	if req.BannerMessage != nil {
		settings.BannerMessage = req.BannerMessage
	}
	if req.TrustBadges != nil {
		settings.TrustBadges = *req.TrustBadges
	}
	if req.DiscountCodes != nil {
		settings.DiscountCodes = *req.DiscountCodes
	}

	if err := s.repo.Upsert(ctx, settings); err != nil {
		return nil, err
	}
	s.invalidateCache(ctx)
	return mapSettings(settings), nil
}

func (s *checkoutService) Reset(ctx context.Context) (*dto.CheckoutSettingsResponse, error) {
	settings, err := s.getOrCreate(ctx)
	if err != nil {
		return nil, err
	}

	defaults := defaultSettings()
	settings.FieldVisibility = defaults.FieldVisibility
	settings.BannerMessage = nil
	settings.TrustBadges = defaults.TrustBadges
	settings.DiscountCodes = defaults.DiscountCodes
	// GuestCheckout and OrderNotes are basic fields — preserved.

	if err := s.repo.Upsert(ctx, settings); err != nil {
		return nil, err
	}
	s.invalidateCache(ctx)
	return mapSettings(settings), nil
}

// invalidateCache drops the storefront cache entry. Best effort: a failed
// invalidation only extends staleness until the TTL expires.
func (s *checkoutService) invalidateCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, CheckoutCacheKey).Err(); err != nil {
		log.Warn().Err(err).Msg("checkout settings cache invalidation failed")
	}
}

func mapSettings(m *model.CheckoutSettings) *dto.CheckoutSettingsResponse {
	return &dto.CheckoutSettingsResponse{
		GuestCheckout:   m.GuestCheckout,
		OrderNotes:      m.OrderNotes,
		FieldVisibility: m.FieldVisibility,
		BannerMessage:   m.BannerMessage,
		TrustBadges:     m.TrustBadges,
		DiscountCodes:   m.DiscountCodes,
		UpdatedAt:       m.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
