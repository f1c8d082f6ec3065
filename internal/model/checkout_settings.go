package model

import (
	"time"
)

// CheckoutField is the closed set of checkout form field names. Using a
// named type (rather than free-form strings) means a typo'd key can be
// rejected at the boundary instead of silently failing to satisfy any
// validator bucket.
type CheckoutField string

const (
	FieldEmail      CheckoutField = "email"
	FieldFirstName  CheckoutField = "firstName"
	FieldLastName   CheckoutField = "lastName"
	FieldAddress    CheckoutField = "address"
	FieldApartment  CheckoutField = "apartment"
	FieldCity       CheckoutField = "city"
	FieldPostalCode CheckoutField = "postalCode"
	FieldCountry    CheckoutField = "country"
	FieldPhone      CheckoutField = "phone"
	FieldCompany    CheckoutField = "company"
)

// CheckoutFields lists every known field, in form display order.
var CheckoutFields = []CheckoutField{
	FieldEmail, FieldFirstName, FieldLastName, FieldAddress, FieldApartment,
	FieldCity, FieldPostalCode, FieldCountry, FieldPhone, FieldCompany,
}

// Valid reports whether f names a known checkout field.
func (f CheckoutField) Valid() bool {
	for _, known := range CheckoutFields {
		if f == known {
			return true
		}
	}
	return false
}

// FieldSetting controls one form field. A field absent from the config map
// behaves exactly like {Visible:false, Required:false}.
type FieldSetting struct {
	Visible  bool `json:"visible"`
	Required bool `json:"required"`
}

// FieldVisibilityConfig maps checkout fields to their settings. Stored as a
// JSONB column on the settings row.
type FieldVisibilityConfig map[CheckoutField]FieldSetting

// CheckoutSettingsKey is the well-known primary key of the single settings
// row. A fixed key keeps the singleton explicit instead of relying on
// "first row in table".
const CheckoutSettingsKey = "store"

// CheckoutSettings is the per-store checkout configuration singleton.
// Created lazily on first read; premium fields reset to defaults on DELETE
// while basic fields are preserved.
type CheckoutSettings struct {
	Key string `gorm:"primaryKey;type:varchar(32)"`

	// Basic fields — survive a premium reset.
	GuestCheckout bool `gorm:"not null;default:true"`
	OrderNotes    bool `gorm:"not null;default:false"`

	// Premium fields.
	FieldVisibility FieldVisibilityConfig `gorm:"type:jsonb;serializer:json"`
	BannerMessage   *string
	TrustBadges     bool `gorm:"not null;default:false"`
	DiscountCodes   bool `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (CheckoutSettings) TableName() string { return "checkout_settings" }

// DefaultFieldVisibility returns the hard-coded premium default: contact and
// shipping essentials mandatory, convenience fields visible but optional.
func DefaultFieldVisibility() FieldVisibilityConfig {
	return FieldVisibilityConfig{
		FieldEmail:      {Visible: true, Required: true},
		FieldFirstName:  {Visible: true, Required: true},
		FieldLastName:   {Visible: true, Required: true},
		FieldAddress:    {Visible: true, Required: true},
		FieldApartment:  {Visible: true, Required: false},
		FieldCity:       {Visible: true, Required: true},
		FieldPostalCode: {Visible: true, Required: true},
		FieldCountry:    {Visible: true, Required: true},
		FieldPhone:      {Visible: true, Required: false},
		FieldCompany:    {Visible: false, Required: false},
	}
}
