package service

// In-memory repository stubs shared by the service unit tests. They honor the
// same contracts as the GORM implementations (guarded stock updates, record
// not found semantics) so services behave identically against them.

import (
	"context"
	"sort"
	"time"

	"shopforge/internal/dto"
	"shopforge/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ── ProductRepository stub ────────────────────────────────────────────────────

type stubProductRepo struct {
	products map[uuid.UUID]*model.Product
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[uuid.UUID]*model.Product)}
}

func (r *stubProductRepo) add(p *model.Product) *model.Product {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.products[p.ID] = p
	return p
}

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	r.add(p)
	return nil
}

func (r *stubProductRepo) CreateTx(_ *gorm.DB, p *model.Product) error {
	r.add(p)
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductRepo) FindBySKU(_ context.Context, sku string) (*model.Product, error) {
	for _, p := range r.products {
		if p.SKU == sku && p.Active {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProductRepo) List(_ context.Context, _ dto.ProductFilter) ([]model.Product, int64, error) {
	var result []model.Product
	for _, p := range r.products {
		if p.Active {
			result = append(result, *p)
		}
	}
	return result, int64(len(result)), nil
}

func (r *stubProductRepo) ListForReport(_ context.Context, categoryID *uuid.UUID) ([]model.Product, error) {
	var result []model.Product
	for _, p := range r.products {
		if !p.Active {
			continue
		}
		if categoryID != nil && (p.CategoryID == nil || *p.CategoryID != *categoryID) {
			continue
		}
		result = append(result, *p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (r *stubProductRepo) Update(_ context.Context, p *model.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	p, ok := r.products[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Active = false
	return nil
}

func (r *stubProductRepo) Reactivate(_ context.Context, id uuid.UUID) error {
	p, ok := r.products[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Active = true
	return nil
}

func (r *stubProductRepo) FindForUpdateTx(_ *gorm.DB, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *stubProductRepo) AdjustStockTx(_ *gorm.DB, id uuid.UUID, delta int) error {
	p, ok := r.products[id]
	if !ok || p.Stock+delta < 0 {
		// Same contract as the SQL guard: no row matched.
		return gorm.ErrRecordNotFound
	}
	p.Stock += delta
	return nil
}

func (r *stubProductRepo) DB() *gorm.DB { return nil }

// ── StockHistoryRepository stub ───────────────────────────────────────────────

type stubHistoryRepo struct {
	entries   []model.StockHistory
	createErr error // when set, CreateTx fails with it
}

func newStubHistoryRepo() *stubHistoryRepo { return &stubHistoryRepo{} }

func (r *stubHistoryRepo) CreateTx(_ *gorm.DB, entry *model.StockHistory) error {
	if r.createErr != nil {
		return r.createErr
	}
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *stubHistoryRepo) List(_ context.Context, filter dto.MovementFilter) ([]model.StockHistory, int64, error) {
	var result []model.StockHistory
	for _, e := range r.entries {
		if filter.ProductID != "" && e.ProductID.String() != filter.ProductID {
			continue
		}
		if filter.ChangeType != "" && e.ChangeType != filter.ChangeType {
			continue
		}
		result = append(result, e)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, int64(len(result)), nil
}

func (r *stubHistoryRepo) ListBetween(_ context.Context, start, end time.Time, limit int) ([]model.StockHistory, error) {
	var result []model.StockHistory
	for _, e := range r.entries {
		if e.CreatedAt.Before(start) || !e.CreatedAt.Before(end) {
			continue
		}
		result = append(result, e)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (r *stubHistoryRepo) Recent(_ context.Context, n int) ([]model.StockHistory, error) {
	result := make([]model.StockHistory, len(r.entries))
	copy(result, r.entries)
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	if len(result) > n {
		result = result[:n]
	}
	return result, nil
}

// ── StockAlertRepository stub ─────────────────────────────────────────────────

type stubAlertRepo struct {
	alerts map[uuid.UUID]*model.StockAlert
}

func newStubAlertRepo() *stubAlertRepo {
	return &stubAlertRepo{alerts: make(map[uuid.UUID]*model.StockAlert)}
}

func (r *stubAlertRepo) Create(_ context.Context, a *model.StockAlert) error {
	r.alerts[a.ProductID] = a
	return nil
}

func (r *stubAlertRepo) FindByProductID(_ context.Context, productID uuid.UUID) (*model.StockAlert, error) {
	a, ok := r.alerts[productID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return a, nil
}

func (r *stubAlertRepo) Update(_ context.Context, a *model.StockAlert) error {
	r.alerts[a.ProductID] = a
	return nil
}

func (r *stubAlertRepo) ListAll(_ context.Context) ([]model.StockAlert, error) {
	var result []model.StockAlert
	for _, a := range r.alerts {
		result = append(result, *a)
	}
	return result, nil
}

// ── SupplierRepository stub (lookups only) ────────────────────────────────────

type stubSupplierRepo struct {
	suppliers map[uuid.UUID]*model.Supplier
}

func newStubSupplierRepo() *stubSupplierRepo {
	return &stubSupplierRepo{suppliers: make(map[uuid.UUID]*model.Supplier)}
}

func (r *stubSupplierRepo) add(s *model.Supplier) *model.Supplier {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.suppliers[s.ID] = s
	return s
}

func (r *stubSupplierRepo) Create(_ context.Context, s *model.Supplier) error {
	r.add(s)
	return nil
}

func (r *stubSupplierRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Supplier, error) {
	s, ok := r.suppliers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *stubSupplierRepo) FindByTaxID(_ context.Context, taxID string) (*model.Supplier, error) {
	for _, s := range r.suppliers {
		if s.TaxID == taxID {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubSupplierRepo) List(_ context.Context) ([]model.Supplier, error) {
	var result []model.Supplier
	for _, s := range r.suppliers {
		result = append(result, *s)
	}
	return result, nil
}

func (r *stubSupplierRepo) Update(_ context.Context, s *model.Supplier) error {
	r.suppliers[s.ID] = s
	return nil
}

func (r *stubSupplierRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	s, ok := r.suppliers[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	s.Active = false
	return nil
}

// ── PurchaseOrderRepository stub ──────────────────────────────────────────────

type stubPurchaseRepo struct {
	orders map[uuid.UUID]*model.PurchaseOrder
	// staleRead, when set, is what FindByID returns — used to replay a
	// reader that loaded the order before a concurrent receive committed.
	staleRead *model.PurchaseOrder
}

func newStubPurchaseRepo() *stubPurchaseRepo {
	return &stubPurchaseRepo{orders: make(map[uuid.UUID]*model.PurchaseOrder)}
}

func (r *stubPurchaseRepo) Create(_ context.Context, po *model.PurchaseOrder) error {
	if po.ID == uuid.Nil {
		po.ID = uuid.New()
	}
	po.CreatedAt = time.Now().UTC()
	r.orders[po.ID] = po
	return nil
}

func (r *stubPurchaseRepo) FindByID(_ context.Context, id uuid.UUID) (*model.PurchaseOrder, error) {
	if r.staleRead != nil {
		cp := *r.staleRead
		return &cp, nil
	}
	po, ok := r.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *po
	return &cp, nil
}

func (r *stubPurchaseRepo) List(_ context.Context) ([]model.PurchaseOrder, error) {
	var result []model.PurchaseOrder
	for _, po := range r.orders {
		result = append(result, *po)
	}
	return result, nil
}

func (r *stubPurchaseRepo) NextNumber(_ context.Context) (int64, error) {
	var max int64
	for _, po := range r.orders {
		if po.Number > max {
			max = po.Number
		}
	}
	return max + 1, nil
}

func (r *stubPurchaseRepo) MarkReceivedTx(_ *gorm.DB, id uuid.UUID) error {
	po, ok := r.orders[id]
	if !ok || po.Status == model.POStatusReceived {
		// Same contract as the conditional UPDATE: no row matched.
		return gorm.ErrRecordNotFound
	}
	po.Status = model.POStatusReceived
	now := time.Now().UTC()
	po.ReceivedAt = &now
	return nil
}

func (r *stubPurchaseRepo) DB() *gorm.DB { return nil }

// ── CheckoutSettingsRepository stub ───────────────────────────────────────────

type stubSettingsRepo struct {
	settings *model.CheckoutSettings
	upserts  int
}

func newStubSettingsRepo() *stubSettingsRepo { return &stubSettingsRepo{} }

func (r *stubSettingsRepo) Get(_ context.Context) (*model.CheckoutSettings, error) {
	if r.settings == nil {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *r.settings
	return &cp, nil
}

func (r *stubSettingsRepo) Upsert(_ context.Context, s *model.CheckoutSettings) error {
	s.Key = model.CheckoutSettingsKey
	s.UpdatedAt = time.Now().UTC()
	cp := *s
	r.settings = &cp
	r.upserts++
	return nil
}
