package rest

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"smartCanteen/domain"
	"smartCanteen/pkg/logger"
	"smartCanteen/pkg/metrics"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type CatalogService interface {
	GetPersonalizedMenu(ctx context.Context, userID, merchantID uint) (domain.MenuQuote, error)
	CreateItem(ctx context.Context, item *domain.MenuItem) error
	UpdateItem(ctx context.Context, merchantID uint, item *domain.MenuItem) error
	DeleteItem(ctx context.Context, merchantID, itemID uint) error
}

type CatalogHandler struct {
	catalogService CatalogService
	validator      *validator.Validate
	timeout        time.Duration
}

func NewCatalogHandler(catalogService CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		validator:      validator.New(),
		timeout:        10 * time.Second,
	}
}

type MenuItemRequest struct {
	Name      string  `json:"name" validate:"required"`
	ImageURL  string  `json:"image_url"`
	BasePrice float64 `json:"base_price" validate:"required,gte=0"`
}

// GetMenu returns a merchant's menu priced for the authenticated user
func (h *CatalogHandler) GetMenu(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	merchantID64, err := strconv.ParseUint(c.Param("merchant_id"), 10, 64)
	if err != nil {
		logger.Error("Invalid merchant id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid merchant ID"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	start := time.Now()
	quote, err := h.catalogService.GetPersonalizedMenu(ctx, userID, uint(merchantID64))
	if err != nil {
		logger.Error("Failed to quote menu", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}
	metrics.QuoteMenuLatency.Observe(time.Since(start).Seconds())

	return c.JSON(http.StatusOK, fres.Response.StatusOK(quote))
}

// CreateItem adds an item to the authenticated merchant's menu
func (h *CatalogHandler) CreateItem(c echo.Context) error {
	merchantID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req MenuItemRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate menu item", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	item := domain.MenuItem{
		MerchantID: merchantID,
		Name:       req.Name,
		ImageURL:   req.ImageURL,
		BasePrice:  req.BasePrice,
	}

	if err := h.catalogService.CreateItem(ctx, &item); err != nil {
		logger.Error("Failed to create menu item", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(item))
}

// UpdateItem updates one of the authenticated merchant's items
func (h *CatalogHandler) UpdateItem(c echo.Context) error {
	merchantID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	itemID64, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		logger.Error("Invalid item id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid item ID"})
	}

	var req MenuItemRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate menu item", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	item := domain.MenuItem{
		ID:        uint(itemID64),
		Name:      req.Name,
		ImageURL:  req.ImageURL,
		BasePrice: req.BasePrice,
	}

	if err := h.catalogService.UpdateItem(ctx, merchantID, &item); err != nil {
		logger.Error("Failed to update menu item", err)
		if strings.Contains(err.Error(), "not belong") {
			return c.JSON(http.StatusForbidden, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(item))
}

// DeleteItem removes one of the authenticated merchant's items
func (h *CatalogHandler) DeleteItem(c echo.Context) error {
	merchantID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	itemID64, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		logger.Error("Invalid item id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid item ID"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.catalogService.DeleteItem(ctx, merchantID, uint(itemID64)); err != nil {
		logger.Error("Failed to delete menu item", err)
		if strings.Contains(err.Error(), "not belong") {
			return c.JSON(http.StatusForbidden, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("Menu item deleted successfully"))
}
