package service

import (
	"context"
	"errors"

	"shopforge/internal/dto"
	"shopforge/internal/model"
	"shopforge/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductService defines the business logic contract for catalog products.
// Initial stock set at creation is recorded as a MANUAL_ADJUSTMENT ledger
// entry so the audit trail starts at the first unit.
type ProductService interface {
	Create(ctx context.Context, userID *uuid.UUID, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)
	List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
	Reactivate(ctx context.Context, id uuid.UUID) error
}

type productService struct {
	repo      repository.ProductRepository
	inventory InventoryService
}

func NewProductService(repo repository.ProductRepository, inventory InventoryService) ProductService {
	return &productService{repo: repo, inventory: inventory}
}

func (s *productService) Create(ctx context.Context, userID *uuid.UUID, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if _, err := s.repo.FindBySKU(ctx, req.SKU); err == nil {
		return nil, errors.New("a product with this SKU already exists")
	}

	p := &model.Product{
		SKU:         req.SKU,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		CostPrice:   req.CostPrice,
		Active:      true,
	}
	if req.CategoryID != nil {
		id, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return nil, errors.New("invalid category id")
		}
		p.CategoryID = &id
	}
	if req.SupplierID != nil {
		id, err := uuid.Parse(*req.SupplierID)
		if err != nil {
			return nil, errors.New("invalid supplier id")
		}
		p.SupplierID = &id
	}

	// Opening stock goes through the ledger so Stock stays a pure cache of
	// the ledger tail from day one. Insert and append share one transaction:
	// a failed append leaves no orphaned product row behind.
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateTx(tx, p); err != nil {
			return err
		}
		if req.Stock > 0 {
			entry, err := s.inventory.RecordStockChangeTx(tx, StockChange{
				ProductID:      p.ID,
				ChangeType:     model.ChangeManualAdjustment,
				QuantityChange: req.Stock,
				UserID:         userID,
				Note:           "opening stock",
			})
			if err != nil {
				return err
			}
			p.Stock = entry.QuantityAfter
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	resp := productToResponse(p)
	return &resp, nil
}

func (s *productService) GetByID(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("product not found")
		}
		return nil, err
	}
	resp := productToResponse(p)
	return &resp, nil
}

func (s *productService) List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	products, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		data = append(data, productToResponse(&products[i]))
	}
	return &dto.ProductListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *productService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("product not found")
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = req.Description
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.CostPrice != nil {
		p.CostPrice = *req.CostPrice
	}
	if req.CategoryID != nil {
		cid, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return nil, errors.New("invalid category id")
		}
		p.CategoryID = &cid
	}
	if req.SupplierID != nil {
		sid, err := uuid.Parse(*req.SupplierID)
		if err != nil {
			return nil, errors.New("invalid supplier id")
		}
		p.SupplierID = &sid
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	resp := productToResponse(p)
	return &resp, nil
}

func (s *productService) Deactivate(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return errors.New("product not found")
	}
	return s.repo.SoftDelete(ctx, id)
}

func (s *productService) Reactivate(ctx context.Context, id uuid.UUID) error {
	return s.repo.Reactivate(ctx, id)
}

func productToResponse(p *model.Product) dto.ProductResponse {
	resp := dto.ProductResponse{
		ID:          p.ID.String(),
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		CostPrice:   p.CostPrice,
		Stock:       p.Stock,
		Active:      p.Active,
	}
	if p.CategoryID != nil {
		id := p.CategoryID.String()
		resp.CategoryID = &id
	}
	if p.SupplierID != nil {
		id := p.SupplierID.String()
		resp.SupplierID = &id
	}
	return resp
}
