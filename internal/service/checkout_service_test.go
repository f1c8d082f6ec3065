package service

import (
	"context"
	"testing"

	"shopforge/internal/dto"
	"shopforge/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vr(visible, required bool) model.FieldSetting {
	return model.FieldSetting{Visible: visible, Required: required}
}

func TestValidateFieldVisibility(t *testing.T) {
	cases := []struct {
		name    string
		cfg     model.FieldVisibilityConfig
		wantErr bool
	}{
		{"nil config accepts defaults", nil, false},
		{"empty map hides every field and fails all buckets", model.FieldVisibilityConfig{}, true},
		{"defaults are valid", model.DefaultFieldVisibility(), false},
		{
			"minimal valid: email, lastName, city",
			model.FieldVisibilityConfig{
				model.FieldEmail:    vr(true, true),
				model.FieldLastName: vr(true, true),
				model.FieldCity:     vr(true, true),
			},
			false,
		},
		{
			"address via street line instead of city",
			model.FieldVisibilityConfig{
				model.FieldEmail:     vr(true, true),
				model.FieldFirstName: vr(true, true),
				model.FieldAddress:   vr(true, true),
			},
			false,
		},
		{
			"email visible but optional fails the email bucket",
			model.FieldVisibilityConfig{
				model.FieldEmail:     vr(true, false),
				model.FieldFirstName: vr(true, true),
				model.FieldAddress:   vr(true, true),
			},
			true,
		},
		{
			"email required but hidden fails the email bucket",
			model.FieldVisibilityConfig{
				model.FieldEmail:     vr(false, true),
				model.FieldFirstName: vr(true, true),
				model.FieldAddress:   vr(true, true),
			},
			true,
		},
		{
			"no name field at all",
			model.FieldVisibilityConfig{
				model.FieldEmail:   vr(true, true),
				model.FieldAddress: vr(true, true),
				model.FieldPhone:   vr(true, true),
			},
			true,
		},
		{
			"apartment and postal code do not satisfy the address bucket",
			model.FieldVisibilityConfig{
				model.FieldEmail:      vr(true, true),
				model.FieldFirstName:  vr(true, true),
				model.FieldApartment:  vr(true, true),
				model.FieldPostalCode: vr(true, true),
			},
			true,
		},
		{
			"everything hidden",
			model.FieldVisibilityConfig{
				model.FieldEmail:     vr(false, false),
				model.FieldFirstName: vr(false, false),
				model.FieldAddress:   vr(false, false),
			},
			true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateFieldVisibility(tc.cfg)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrCheckoutFieldsIncomplete)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCheckoutGetLazilyCreatesDefaults(t *testing.T) {
	repo := newStubSettingsRepo()
	svc := NewCheckoutService(repo, nil)

	resp, err := svc.Get(context.Background())
	require.NoError(t, err)

	assert.True(t, resp.GuestCheckout)
	assert.False(t, resp.OrderNotes)
	assert.True(t, resp.DiscountCodes)
	assert.Equal(t, model.DefaultFieldVisibility(), resp.FieldVisibility)
	assert.Equal(t, 1, repo.upserts, "first read materializes the row")

	// Second read hits the existing row, no extra write.
	_, err = svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, repo.upserts)
}

func TestCheckoutUpdateRejectsUnknownField(t *testing.T) {
	repo := newStubSettingsRepo()
	svc := NewCheckoutService(repo, nil)

	_, err := svc.Update(context.Background(), dto.UpdateCheckoutSettingsRequest{
		FieldVisibility: model.FieldVisibilityConfig{
			"emial":          vr(true, true),
			model.FieldEmail: vr(true, true),
		},
	})
	assert.ErrorIs(t, err, ErrUnknownCheckoutField)
	assert.Equal(t, 0, repo.upserts, "rejected config must not touch storage")
}

func TestCheckoutUpdateInvalidConfigNotPersisted(t *testing.T) {
	repo := newStubSettingsRepo()
	svc := NewCheckoutService(repo, nil)

	_, err := svc.Update(context.Background(), dto.UpdateCheckoutSettingsRequest{
		FieldVisibility: model.FieldVisibilityConfig{
			model.FieldEmail: vr(true, false),
		},
	})
	assert.ErrorIs(t, err, ErrCheckoutFieldsIncomplete)
	assert.Equal(t, 0, repo.upserts)
	assert.Nil(t, repo.settings, "row must not even be lazily created on a rejected update")
}

func TestCheckoutUpdateEmptyVisibilityMapRejected(t *testing.T) {
	repo := newStubSettingsRepo()
	svc := NewCheckoutService(repo, nil)

	// An explicit empty map is not "accept defaults": it is a configuration
	// with zero visible+required fields and must never be persisted.
	_, err := svc.Update(context.Background(), dto.UpdateCheckoutSettingsRequest{
		FieldVisibility: model.FieldVisibilityConfig{},
	})
	assert.ErrorIs(t, err, ErrCheckoutFieldsIncomplete)
	assert.Equal(t, 0, repo.upserts)
	assert.Nil(t, repo.settings)
}

func TestCheckoutUpdatePartial(t *testing.T) {
	repo := newStubSettingsRepo()
	svc := NewCheckoutService(repo, nil)

	banner := "free shipping this week"
	guest := false
	resp, err := svc.Update(context.Background(), dto.UpdateCheckoutSettingsRequest{
		GuestCheckout: &guest,
		BannerMessage: &banner,
	})
	require.NoError(t, err)

	assert.False(t, resp.GuestCheckout)
	require.NotNil(t, resp.BannerMessage)
	assert.Equal(t, banner, *resp.BannerMessage)
	// Untouched fields keep their defaults.
	assert.True(t, resp.DiscountCodes)
	assert.Equal(t, model.DefaultFieldVisibility(), resp.FieldVisibility)
}

func TestCheckoutResetRestoresPremiumPreservesBasic(t *testing.T) {
	repo := newStubSettingsRepo()
	svc := NewCheckoutService(repo, nil)

	banner := "sale!"
	guest := false
	notes := true
	badges := true
	discounts := false
	_, err := svc.Update(context.Background(), dto.UpdateCheckoutSettingsRequest{
		GuestCheckout: &guest,
		OrderNotes:    &notes,
		BannerMessage: &banner,
		TrustBadges:   &badges,
		DiscountCodes: &discounts,
		FieldVisibility: model.FieldVisibilityConfig{
			model.FieldEmail:    vr(true, true),
			model.FieldLastName: vr(true, true),
			model.FieldCity:     vr(true, true),
		},
	})
	require.NoError(t, err)

	resp, err := svc.Reset(context.Background())
	require.NoError(t, err)

	// Premium fields back to defaults.
	assert.Nil(t, resp.BannerMessage)
	assert.False(t, resp.TrustBadges)
	assert.True(t, resp.DiscountCodes)
	assert.Equal(t, model.DefaultFieldVisibility(), resp.FieldVisibility)
	// Basic fields preserved.
	assert.False(t, resp.GuestCheckout)
	assert.True(t, resp.OrderNotes)

	// Idempotent: a second reset changes nothing.
	again, err := svc.Reset(context.Background())
	require.NoError(t, err)
	assert.Equal(t, resp.FieldVisibility, again.FieldVisibility)
	assert.Equal(t, resp.GuestCheckout, again.GuestCheckout)
	assert.Equal(t, resp.OrderNotes, again.OrderNotes)
}
