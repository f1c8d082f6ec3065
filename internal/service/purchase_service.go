package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shopforge/internal/dto"
	"shopforge/internal/model"
	"shopforge/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PurchaseService manages replenishment orders. Receiving an order is the
// PURCHASE_RECEIVED producer for the stock ledger: one entry per line item,
// all inside a single transaction together with the status flip.
type PurchaseService interface {
	Create(ctx context.Context, req dto.CreatePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.PurchaseOrderResponse, error)
	List(ctx context.Context) ([]dto.PurchaseOrderResponse, error)
	Receive(ctx context.Context, id uuid.UUID, userID *uuid.UUID) (*dto.PurchaseOrderResponse, error)
}

type purchaseService struct {
	repo      repository.PurchaseOrderRepository
	suppliers repository.SupplierRepository
	products  repository.ProductRepository
	inventory InventoryService
}

func NewPurchaseService(
	repo repository.PurchaseOrderRepository,
	suppliers repository.SupplierRepository,
	products repository.ProductRepository,
	inventory InventoryService,
) PurchaseService {
	return &purchaseService{repo: repo, suppliers: suppliers, products: products, inventory: inventory}
}

func (s *purchaseService) Create(ctx context.Context, req dto.CreatePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	supplierID, err := uuid.Parse(req.SupplierID)
	if err != nil {
		return nil, errors.New("invalid supplier id")
	}
	if _, err := s.suppliers.FindByID(ctx, supplierID); err != nil {
		return nil, errors.New("supplier not found")
	}

	po := &model.PurchaseOrder{
		SupplierID: supplierID,
		Status:     model.POStatusOrdered,
	}
	for _, item := range req.Items {
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			return nil, errors.New("invalid product id")
		}
		if _, err := s.products.FindByID(ctx, productID); err != nil {
			return nil, fmt.Errorf("product %s not found", item.ProductID)
		}
		po.Items = append(po.Items, model.PurchaseOrderItem{
			ProductID: productID,
			Quantity:  item.Quantity,
			UnitCost:  item.UnitCost,
		})
	}

	number, err := s.repo.NextNumber(ctx)
	if err != nil {
		return nil, err
	}
	po.Number = number

	if err := s.repo.Create(ctx, po); err != nil {
		return nil, err
	}
	return purchaseOrderToResponse(po), nil
}

func (s *purchaseService) GetByID(ctx context.Context, id uuid.UUID) (*dto.PurchaseOrderResponse, error) {
	po, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("purchase order not found")
	}
	return purchaseOrderToResponse(po), nil
}

func (s *purchaseService) List(ctx context.Context) ([]dto.PurchaseOrderResponse, error) {
	orders, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]dto.PurchaseOrderResponse, 0, len(orders))
	for i := range orders {
		result = append(result, *purchaseOrderToResponse(&orders[i]))
	}
	return result, nil
}

// Receive flips the order to received and appends one PURCHASE_RECEIVED
// ledger entry per line item. Single transaction: either the whole receipt
// lands (status + every ledger row + every counter) or none of it does.
// The status flip runs first with a not-already-received predicate, so of
// two concurrent receives exactly one books the stock.
func (s *purchaseService) Receive(ctx context.Context, id uuid.UUID, userID *uuid.UUID) (*dto.PurchaseOrderResponse, error) {
	po, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("purchase order not found")
	}
	if po.Status == model.POStatusReceived {
		return nil, errors.New("purchase order already received")
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.MarkReceivedTx(tx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("purchase order already received")
			}
			return err
		}
		for _, item := range po.Items {
			supplierID := po.SupplierID
			_, err := s.inventory.RecordStockChangeTx(tx, StockChange{
				ProductID:      item.ProductID,
				ChangeType:     model.ChangePurchaseReceived,
				QuantityChange: item.Quantity,
				SupplierID:     &supplierID,
				UserID:         userID,
				Note:           fmt.Sprintf("purchase order #%d", po.Number),
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	po.Status = model.POStatusReceived
	now := time.Now().UTC()
	po.ReceivedAt = &now
	return purchaseOrderToResponse(po), nil
}

func purchaseOrderToResponse(po *model.PurchaseOrder) *dto.PurchaseOrderResponse {
	items := make([]dto.PurchaseOrderItemResponse, 0, len(po.Items))
	for _, item := range po.Items {
		name := ""
		if item.Product != nil {
			name = item.Product.Name
		}
		items = append(items, dto.PurchaseOrderItemResponse{
			ProductID:   item.ProductID.String(),
			ProductName: name,
			Quantity:    item.Quantity,
			UnitCost:    item.UnitCost,
		})
	}
	resp := &dto.PurchaseOrderResponse{
		ID:         po.ID.String(),
		Number:     po.Number,
		SupplierID: po.SupplierID.String(),
		Status:     po.Status,
		Items:      items,
		CreatedAt:  po.CreatedAt.UTC().Format(time.RFC3339),
	}
	if po.ReceivedAt != nil {
		t := po.ReceivedAt.UTC().Format(time.RFC3339)
		resp.ReceivedAt = &t
	}
	return resp
}
