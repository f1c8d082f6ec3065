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

type SupplierService interface {
	Create(ctx context.Context, req dto.CreateSupplierRequest) (*dto.SupplierResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.SupplierResponse, error)
	List(ctx context.Context) ([]dto.SupplierResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateSupplierRequest) (*dto.SupplierResponse, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type supplierService struct {
	repo repository.SupplierRepository
}

func NewSupplierService(repo repository.SupplierRepository) SupplierService {
	return &supplierService{repo: repo}
}

func (s *supplierService) Create(ctx context.Context, req dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	existing, err := s.repo.FindByTaxID(ctx, req.TaxID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, errors.New("a supplier with this tax id already exists")
	}

	supplier := &model.Supplier{
		Name:         req.Name,
		TaxID:        req.TaxID,
		ContactEmail: req.ContactEmail,
		Phone:        req.Phone,
		Address:      req.Address,
		Active:       true,
	}
	if err := s.repo.Create(ctx, supplier); err != nil {
		return nil, err
	}
	resp := supplierToResponse(supplier)
	return &resp, nil
}

func (s *supplierService) GetByID(ctx context.Context, id uuid.UUID) (*dto.SupplierResponse, error) {
	supplier, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("supplier not found")
	}
	resp := supplierToResponse(supplier)
	return &resp, nil
}

func (s *supplierService) List(ctx context.Context) ([]dto.SupplierResponse, error) {
	suppliers, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]dto.SupplierResponse, 0, len(suppliers))
	for i := range suppliers {
		result = append(result, supplierToResponse(&suppliers[i]))
	}
	return result, nil
}

func (s *supplierService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateSupplierRequest) (*dto.SupplierResponse, error) {
	supplier, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("supplier not found")
	}

	if req.Name != nil {
		supplier.Name = *req.Name
	}
	if req.ContactEmail != nil {
		supplier.ContactEmail = req.ContactEmail
	}
	if req.Phone != nil {
		supplier.Phone = req.Phone
	}
	if req.Address != nil {
		supplier.Address = req.Address
	}
	if req.Active != nil {
		supplier.Active = *req.Active
	}

	if err := s.repo.Update(ctx, supplier); err != nil {
		return nil, err
	}
	resp := supplierToResponse(supplier)
	return &resp, nil
}

func (s *supplierService) Deactivate(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return errors.New("supplier not found")
	}
	return s.repo.SoftDelete(ctx, id)
}

func supplierToResponse(s *model.Supplier) dto.SupplierResponse {
	return dto.SupplierResponse{
		ID:           s.ID.String(),
		Name:         s.Name,
		TaxID:        s.TaxID,
		ContactEmail: s.ContactEmail,
		Phone:        s.Phone,
		Address:      s.Address,
		Active:       s.Active,
	}
}
