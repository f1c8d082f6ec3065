package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateSupplierRequest struct {
	Name         string  `json:"name"          validate:"required,min=2,max=120"`
	TaxID        string  `json:"tax_id"        validate:"required,min=5,max=32"`
	ContactEmail *string `json:"contact_email" validate:"omitempty,email"`
	Phone        *string `json:"phone"`
	Address      *string `json:"address"`
}

type UpdateSupplierRequest struct {
	Name         *string `json:"name"          validate:"omitempty,min=2,max=120"`
	ContactEmail *string `json:"contact_email" validate:"omitempty,email"`
	Phone        *string `json:"phone"`
	Address      *string `json:"address"`
	Active       *bool   `json:"active"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type SupplierResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	TaxID        string  `json:"tax_id"`
	ContactEmail *string `json:"contact_email"`
	Phone        *string `json:"phone"`
	Address      *string `json:"address"`
	Active       bool    `json:"active"`
}
