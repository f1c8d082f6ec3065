package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateProductRequest struct {
	SKU         string          `json:"sku"          validate:"required,min=2,max=64"`
	Name        string          `json:"name"         validate:"required,min=2,max=120"`
	Description *string         `json:"description"`
	CategoryID  *string         `json:"category_id"  validate:"omitempty,uuid"`
	SupplierID  *string         `json:"supplier_id"  validate:"omitempty,uuid"`
	Price       decimal.Decimal `json:"price"        validate:"required"`
	CostPrice   decimal.Decimal `json:"cost_price"   validate:"required"`
	Stock       int             `json:"stock"        validate:"min=0"`
}

type UpdateProductRequest struct {
	Name        *string          `json:"name"        validate:"omitempty,min=2,max=120"`
	Description *string          `json:"description"`
	CategoryID  *string          `json:"category_id" validate:"omitempty,uuid"`
	SupplierID  *string          `json:"supplier_id" validate:"omitempty,uuid"`
	Price       *decimal.Decimal `json:"price"`
	CostPrice   *decimal.Decimal `json:"cost_price"`
}

type CreateCategoryRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=80"`
	Description *string `json:"description"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=2,max=80"`
	Description *string `json:"description"`
	Active      *bool   `json:"active"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type ProductFilter struct {
	SKU        string `form:"sku"`
	Name       string `form:"name"`
	CategoryID string `form:"category_id"`
	SupplierID string `form:"supplier_id"`
	Active     string `form:"active"` // "false" | "all" | default active-only
	Page       int    `form:"page,default=1"   validate:"min=1"`
	Limit      int    `form:"limit,default=20" validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductResponse struct {
	ID          string          `json:"id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	CategoryID  *string         `json:"category_id"`
	SupplierID  *string         `json:"supplier_id"`
	Price       decimal.Decimal `json:"price"`
	CostPrice   decimal.Decimal `json:"cost_price"`
	Stock       int             `json:"stock"`
	Active      bool            `json:"active"`
}

type ProductListResponse struct {
	Data  []ProductResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

type CategoryResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Active      bool    `json:"active"`
}
