package dto

import "shopforge/internal/model"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// UpdateCheckoutSettingsRequest carries a partial settings update. Nil fields
// are left untouched; FieldVisibility, when present, must pass the minimum
// checkout-field validation before anything is persisted.
type UpdateCheckoutSettingsRequest struct {
	GuestCheckout   *bool                        `json:"guest_checkout"`
	OrderNotes      *bool                        `json:"order_notes"`
	FieldVisibility model.FieldVisibilityConfig  `json:"field_visibility"`
	BannerMessage   *string                      `json:"banner_message" validate:"omitempty,max=240"`
	TrustBadges     *bool                        `json:"trust_badges"`
	DiscountCodes   *bool                        `json:"discount_codes"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type CheckoutSettingsResponse struct {
	GuestCheckout   bool                        `json:"guest_checkout"`
	OrderNotes      bool                        `json:"order_notes"`
	FieldVisibility model.FieldVisibilityConfig `json:"field_visibility"`
	BannerMessage   *string                     `json:"banner_message"`
	TrustBadges     bool                        `json:"trust_badges"`
	DiscountCodes   bool                        `json:"discount_codes"`
	UpdatedAt       string                      `json:"updated_at"`
}
