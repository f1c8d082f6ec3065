package service

import (
	"context"
	"errors"
	"time"

	"shopforge/internal/dto"
	"shopforge/internal/model"
	"shopforge/internal/repository"
	"shopforge/internal/worker"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StockLevel classifies a product's stock against its threshold.
type StockLevel string

const (
	LevelOK  StockLevel = "OK"
	LevelLow StockLevel = "LOW"
	LevelOut StockLevel = "OUT"
)

// DefaultLowStockThreshold applies to products without an explicit alert row.
const DefaultLowStockThreshold = 10

// ClassifyStockLevel derives the stock level at a point in time. OUT wins
// over LOW: a product with stock 0 is OUT regardless of threshold.
func ClassifyStockLevel(stock, threshold int) StockLevel {
	switch {
	case stock == 0:
		return LevelOut
	case stock > 0 && stock <= threshold:
		return LevelLow
	default:
		return LevelOK
	}
}

// ResolveThreshold makes the default-threshold fallback explicit: a missing
// alert row means the system-wide default applies, it does not mean stock
// tracking is disabled.
func ResolveThreshold(alert *model.StockAlert) int {
	if alert == nil {
		return DefaultLowStockThreshold
	}
	return alert.Threshold
}

// StockChange is the service-level input for one ledger append.
type StockChange struct {
	ProductID      uuid.UUID
	ChangeType     string
	QuantityChange int // signed: positive = stock in, negative = stock out
	SupplierID     *uuid.UUID
	UserID         *uuid.UUID
	Note           string
}

// InventoryService maintains the append-only stock ledger and the derived
// alert state. The product Stock column is a cache of the ledger tail and
// only ever moves together with a new ledger row.
type InventoryService interface {
	RecordStockChange(ctx context.Context, change StockChange) (*dto.StockHistoryResponse, error)
	// RecordStockChangeTx performs the append inside a caller-owned
	// transaction (e.g. purchase-order receipt covering several items).
	RecordStockChangeTx(tx *gorm.DB, change StockChange) (*model.StockHistory, error)
	ListMovements(ctx context.Context, filter dto.MovementFilter) (*dto.MovementListResponse, error)

	CreateAlert(ctx context.Context, req dto.CreateStockAlertRequest) (*dto.StockAlertResponse, error)
	UpdateAlert(ctx context.Context, productID uuid.UUID, req dto.UpdateStockAlertRequest) (*dto.StockAlertResponse, error)
	ListAlerts(ctx context.Context) ([]dto.StockAlertResponse, error)
}

type inventoryService struct {
	products   repository.ProductRepository
	history    repository.StockHistoryRepository
	alerts     repository.StockAlertRepository
	dispatcher *worker.Dispatcher // nil in unit tests — notification is best effort
}

func NewInventoryService(
	products repository.ProductRepository,
	history repository.StockHistoryRepository,
	alerts repository.StockAlertRepository,
	dispatcher *worker.Dispatcher,
) InventoryService {
	return &inventoryService{products: products, history: history, alerts: alerts, dispatcher: dispatcher}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

func (s *inventoryService) RecordStockChange(ctx context.Context, change StockChange) (*dto.StockHistoryResponse, error) {
	var entry *model.StockHistory
	txErr := runTx(ctx, s.products.DB(), func(tx *gorm.DB) error {
		var err error
		entry, err = s.RecordStockChangeTx(tx, change)
		return err
	})
	if txErr != nil {
		return nil, txErr
	}

	s.notifyIfLow(ctx, change.ProductID, entry.QuantityAfter)

	resp := stockHistoryToResponse(entry)
	return &resp, nil
}

// RecordStockChangeTx appends one ledger row and moves the product counter
// in the same transaction. The product row is locked for the duration so
// two concurrent appends for the same product serialize; the storage-layer
// update additionally refuses to take the counter negative.
func (s *inventoryService) RecordStockChangeTx(tx *gorm.DB, change StockChange) (*model.StockHistory, error) {
	if !model.ValidChangeType(change.ChangeType) {
		return nil, ErrUnknownChangeType
	}

	product, err := s.products.FindForUpdateTx(tx, change.ProductID)
	if err != nil {
		return nil, err
	}

	before := product.Stock
	after := before + change.QuantityChange
	if after < 0 {
		return nil, ErrInsufficientStock
	}

	if err := s.products.AdjustStockTx(tx, change.ProductID, change.QuantityChange); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Conditional-update guard fired: someone else moved the counter
			// below what the locked read saw. Treat as insufficient stock.
			return nil, ErrInsufficientStock
		}
		return nil, err
	}

	entry := &model.StockHistory{
		ProductID:      change.ProductID,
		ChangeType:     change.ChangeType,
		QuantityBefore: before,
		QuantityAfter:  after,
		QuantityChange: change.QuantityChange,
		SupplierID:     change.SupplierID,
		UserID:         change.UserID,
		Note:           change.Note,
	}
	if err := s.history.CreateTx(tx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// notifyIfLow enqueues a low-stock notification when the append left the
// product at or below its alert threshold and an enabled alert exists.
// Fire-and-forget: a queue failure never affects the committed append.
func (s *inventoryService) notifyIfLow(ctx context.Context, productID uuid.UUID, stock int) {
	if s.dispatcher == nil {
		return
	}
	alert, err := s.alerts.FindByProductID(ctx, productID)
	if err != nil || !alert.Enabled {
		return
	}
	if ClassifyStockLevel(stock, alert.Threshold) == LevelOK {
		return
	}
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return
	}
	_ = s.dispatcher.EnqueueLowStock(ctx, worker.LowStockPayload{
		ProductID:   productID.String(),
		ProductName: product.Name,
		Stock:       stock,
		Threshold:   alert.Threshold,
	})
}

func (s *inventoryService) ListMovements(ctx context.Context, filter dto.MovementFilter) (*dto.MovementListResponse, error) {
	entries, total, err := s.history.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.StockHistoryResponse, 0, len(entries))
	for i := range entries {
		data = append(data, stockHistoryToResponse(&entries[i]))
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	return &dto.MovementListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

// ─── Alerts ───────────────────────────────────────────────────────────────────

func (s *inventoryService) CreateAlert(ctx context.Context, req dto.CreateStockAlertRequest) (*dto.StockAlertResponse, error) {
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, err
	}
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, errors.New("product not found")
	}
	if _, err := s.alerts.FindByProductID(ctx, productID); err == nil {
		return nil, errors.New("an alert already exists for this product")
	}

	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}
	alert := &model.StockAlert{ProductID: productID, Threshold: req.Threshold, Enabled: enabled}
	if err := s.alerts.Create(ctx, alert); err != nil {
		return nil, err
	}
	resp := alertToResponse(alert, product)
	return &resp, nil
}

func (s *inventoryService) UpdateAlert(ctx context.Context, productID uuid.UUID, req dto.UpdateStockAlertRequest) (*dto.StockAlertResponse, error) {
	alert, err := s.alerts.FindByProductID(ctx, productID)
	if err != nil {
		return nil, errors.New("alert not found")
	}
	if req.Threshold != nil {
		alert.Threshold = *req.Threshold
	}
	if req.Enabled != nil {
		alert.Enabled = *req.Enabled
	}
	if err := s.alerts.Update(ctx, alert); err != nil {
		return nil, err
	}
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	resp := alertToResponse(alert, product)
	return &resp, nil
}

func (s *inventoryService) ListAlerts(ctx context.Context) ([]dto.StockAlertResponse, error) {
	alerts, err := s.alerts.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]dto.StockAlertResponse, 0, len(alerts))
	for i := range alerts {
		a := &alerts[i]
		result = append(result, alertToResponse(a, a.Product))
	}
	return result, nil
}

// ─── Mappers ──────────────────────────────────────────────────────────────────

func alertToResponse(a *model.StockAlert, p *model.Product) dto.StockAlertResponse {
	resp := dto.StockAlertResponse{
		ProductID: a.ProductID.String(),
		Threshold: a.Threshold,
		Enabled:   a.Enabled,
	}
	if p != nil {
		resp.ProductName = p.Name
		resp.Stock = p.Stock
		resp.Level = string(ClassifyStockLevel(p.Stock, a.Threshold))
	}
	return resp
}

func stockHistoryToResponse(e *model.StockHistory) dto.StockHistoryResponse {
	resp := dto.StockHistoryResponse{
		ID:             e.ID.String(),
		ProductID:      e.ProductID.String(),
		ChangeType:     e.ChangeType,
		QuantityBefore: e.QuantityBefore,
		QuantityAfter:  e.QuantityAfter,
		QuantityChange: e.QuantityChange,
		Note:           e.Note,
		CreatedAt:      e.CreatedAt.UTC().Format(time.RFC3339),
	}
	if e.Product != nil {
		resp.ProductName = e.Product.Name
	}
	if e.SupplierID != nil {
		id := e.SupplierID.String()
		resp.SupplierID = &id
	}
	if e.UserID != nil {
		id := e.UserID.String()
		resp.UserID = &id
	}
	return resp
}
