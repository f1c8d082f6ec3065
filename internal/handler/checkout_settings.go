package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"shopforge/internal/apierror"
	"shopforge/internal/dto"
	"shopforge/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// publicSettingsTTL bounds storefront staleness when a write-side cache
// invalidation is missed.
const publicSettingsTTL = 5 * time.Minute

type CheckoutSettingsHandler struct {
	svc service.CheckoutService
	rdb *redis.Client
}

func NewCheckoutSettingsHandler(svc service.CheckoutService, rdb *redis.Client) *CheckoutSettingsHandler {
	return &CheckoutSettingsHandler{svc: svc, rdb: rdb}
}

// Get returns the current settings for the admin UI. Reads through to the
// database; the first read materializes the defaults.
func (h *CheckoutSettingsHandler) Get(c *gin.Context) {
	resp, err := h.svc.Get(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to load checkout settings"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Update applies a partial settings update. A field-visibility config that
// breaks the minimum checkout contract is rejected before persistence.
func (h *CheckoutSettingsHandler) Update(c *gin.Context) {
	var req dto.UpdateCheckoutSettingsRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCheckoutFieldsIncomplete),
			errors.Is(err, service.ErrUnknownCheckoutField):
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, apierror.New("failed to update checkout settings"))
		}
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Reset restores the premium fields to defaults (basic fields preserved).
func (h *CheckoutSettingsHandler) Reset(c *gin.Context) {
	resp, err := h.svc.Reset(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to reset checkout settings"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetPublic serves the storefront copy through a short-TTL Redis cache. The
// storefront hits this on every checkout render, so a cache miss falls back
// to the database and repopulates.
func (h *CheckoutSettingsHandler) GetPublic(c *gin.Context) {
	ctx := c.Request.Context()

	if h.rdb != nil {
		if cached, err := h.rdb.Get(ctx, service.CheckoutCacheKey).Bytes(); err == nil {
			c.Data(http.StatusOK, "application/json", cached)
			return
		}
	}

	resp, err := h.svc.Get(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to load checkout settings"))
		return
	}

	if h.rdb != nil {
		if data, err := json.Marshal(resp); err == nil {
			if err := h.rdb.Set(ctx, service.CheckoutCacheKey, data, publicSettingsTTL).Err(); err != nil {
				log.Warn().Err(err).Msg("checkout settings cache write failed")
			}
		}
	}
	c.JSON(http.StatusOK, resp)
}
