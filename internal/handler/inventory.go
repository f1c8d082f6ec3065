package handler

import (
	"errors"
	"net/http"

	"shopforge/internal/apierror"
	"shopforge/internal/dto"
	"shopforge/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InventoryHandler struct{ svc service.InventoryService }

func NewInventoryHandler(svc service.InventoryService) *InventoryHandler {
	return &InventoryHandler{svc: svc}
}

// RecordStockChange appends one ledger entry. A change that would take stock
// negative is rejected with 409 and leaves no trace in the ledger.
func (h *InventoryHandler) RecordStockChange(c *gin.Context) {
	var req dto.RecordStockChangeRequest
	if !bindAndValidate(c, &req) {
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid product id"))
		return
	}
	change := service.StockChange{
		ProductID:      productID,
		ChangeType:     req.ChangeType,
		QuantityChange: req.QuantityChange,
		UserID:         currentUserID(c),
		Note:           req.Note,
	}
	if req.SupplierID != nil {
		supplierID, err := uuid.Parse(*req.SupplierID)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("invalid supplier id"))
			return
		}
		change.SupplierID = &supplierID
	}

	resp, err := h.svc.RecordStockChange(c.Request.Context(), change)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInsufficientStock):
			c.JSON(http.StatusConflict, apierror.New(err.Error()))
		case errors.Is(err, service.ErrUnknownChangeType):
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, apierror.New("product not found"))
		default:
			c.JSON(http.StatusInternalServerError, apierror.New("failed to record stock change"))
		}
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListMovements returns the paginated ledger, newest first.
func (h *InventoryHandler) ListMovements(c *gin.Context) {
	var filter dto.MovementFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}
	resp, err := h.svc.ListMovements(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list movements"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InventoryHandler) CreateAlert(c *gin.Context) {
	var req dto.CreateStockAlertRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateAlert(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *InventoryHandler) UpdateAlert(c *gin.Context) {
	productID, ok := pathUUID(c, "product_id")
	if !ok {
		return
	}
	var req dto.UpdateStockAlertRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateAlert(c.Request.Context(), productID, req)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InventoryHandler) ListAlerts(c *gin.Context) {
	resp, err := h.svc.ListAlerts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list alerts"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
