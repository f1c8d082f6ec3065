package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"shopforge/internal/apierror"
	"shopforge/internal/config"
	"shopforge/internal/dto"
	"shopforge/internal/infra"
	"shopforge/internal/service"
	"shopforge/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// defaultReportWindowDays is the movement window when no dates are supplied.
const defaultReportWindowDays = 30

type ReportHandler struct {
	svc        service.ReportService
	dispatcher *worker.Dispatcher
	cfg        *config.Config
}

func NewReportHandler(svc service.ReportService, dispatcher *worker.Dispatcher, cfg *config.Config) *ReportHandler {
	return &ReportHandler{svc: svc, dispatcher: dispatcher, cfg: cfg}
}

// Get dispatches on ?type= to one of the five projections.
func (h *ReportHandler) Get(c *gin.Context) {
	var filter dto.ReportFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}

	categoryID, ok := h.parseCategoryID(c, filter.CategoryID)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	switch filter.Type {
	case dto.ReportCurrentStock:
		resp, err := h.svc.CurrentStock(ctx, categoryID)
		h.respond(c, resp, err)
	case dto.ReportLowStock:
		resp, err := h.svc.LowStock(ctx)
		h.respond(c, resp, err)
	case dto.ReportValuation:
		resp, err := h.svc.Valuation(ctx, categoryID)
		h.respond(c, resp, err)
	case dto.ReportMovement:
		start, end, ok := h.parseDateRange(c, filter.StartDate, filter.EndDate)
		if !ok {
			return
		}
		resp, err := h.svc.Movement(ctx, start, end)
		h.respond(c, resp, err)
	case dto.ReportDashboard:
		resp, err := h.svc.Dashboard(ctx, categoryID)
		h.respond(c, resp, err)
	default:
		c.JSON(http.StatusBadRequest, apierror.New(service.ErrUnknownReportType.Error()))
	}
}

// ExportValuation renders the valuation report as a PDF. With ?email= set the
// file is queued for delivery instead of returned inline.
func (h *ReportHandler) ExportValuation(c *gin.Context) {
	categoryID, ok := h.parseCategoryID(c, c.Query("categoryId"))
	if !ok {
		return
	}

	report, err := h.svc.Valuation(c.Request.Context(), categoryID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to build valuation report"))
		return
	}

	path, err := infra.GenerateValuationPDF(report, h.cfg.StoreName, h.cfg.StoragePath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to generate PDF"))
		return
	}

	if to := c.Query("email"); to != "" {
		payload := worker.EmailJobPayload{
			ToEmail: to,
			Subject: fmt.Sprintf("[%s] Inventory valuation report", h.cfg.StoreName),
			Body:    "The requested inventory valuation report is attached.",
			PDFPath: path,
		}
		if err := h.dispatcher.EnqueueEmail(c.Request.Context(), payload); err != nil {
			c.JSON(http.StatusInternalServerError, apierror.New("failed to queue report email"))
			return
		}
		c.JSON(http.StatusAccepted, gin.H{"queued": true, "to": to})
		return
	}

	c.FileAttachment(path, "valuation.pdf")
}

func (h *ReportHandler) respond(c *gin.Context, resp interface{}, err error) {
	if err != nil {
		if errors.Is(err, service.ErrUnknownReportType) {
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("failed to build report"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReportHandler) parseCategoryID(c *gin.Context, raw string) (*uuid.UUID, bool) {
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid category id"))
		return nil, false
	}
	return &id, true
}

// parseDateRange resolves the movement window. Missing bounds default to the
// last 30 days; the end date is inclusive (extended to end of day).
func (h *ReportHandler) parseDateRange(c *gin.Context, startStr, endStr string) (time.Time, time.Time, bool) {
	now := time.Now().UTC()
	start := now.AddDate(0, 0, -defaultReportWindowDays)
	end := now

	if startStr != "" {
		t, err := time.Parse("2006-01-02", startStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("invalid startDate, expected YYYY-MM-DD"))
			return time.Time{}, time.Time{}, false
		}
		start = t
	}
	if endStr != "" {
		t, err := time.Parse("2006-01-02", endStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("invalid endDate, expected YYYY-MM-DD"))
			return time.Time{}, time.Time{}, false
		}
		end = t.Add(24*time.Hour - time.Nanosecond)
	}
	if end.Before(start) {
		c.JSON(http.StatusBadRequest, apierror.New("endDate must not precede startDate"))
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}
