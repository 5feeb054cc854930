package rest

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"smartCanteen/business/orders"
	"smartCanteen/domain"
	"smartCanteen/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	OrdersHandler struct {
		validate      *validator.Validate
		ordersService OrdersService
		timeout       time.Duration
	}

	OrdersService interface {
		CreateOrder(ctx context.Context, userID, merchantID uint, lines []orders.OrderLine) (orders.OrderReceipt, error)
		GetUserOrders(ctx context.Context, userID uint) ([]domain.Order, error)
		GetMerchantOrders(ctx context.Context, merchantID uint) ([]domain.Order, error)
		GetOrder(ctx context.Context, orderID, userID uint) (domain.Order, error)
		UpdateOrderStatus(ctx context.Context, orderID, merchantID uint, status string) error
	}

	CreateOrderRequest struct {
		MerchantID uint               `json:"merchant_id" validate:"required"`
		Items      []orders.OrderLine `json:"items" validate:"required,min=1,dive"`
	}

	UpdateOrderStatusRequest struct {
		Status string `json:"status" validate:"required"`
	}
)

func NewOrdersHandler(ordersService OrdersService) *OrdersHandler {
	return &OrdersHandler{
		validate:      validator.New(),
		ordersService: ordersService,
		timeout:       10 * time.Second,
	}
}

func (h *OrdersHandler) CreateOrder(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var request CreateOrderRequest

	if err := c.Bind(&request); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validate.Struct(&request); err != nil {
		logger.Error("Failed to validate order request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	receipt, err := h.ordersService.CreateOrder(ctx, userID, request.MerchantID, request.Items)
	if err != nil {
		logger.Error("Failed to create order", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(receipt))
}

func (h *OrdersHandler) GetAllOrders(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	userOrders, err := h.ordersService.GetUserOrders(ctx, userID)
	if err != nil {
		logger.Error("Failed to get all orders", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(userOrders))
}

// GetMerchantOrders lists the incoming orders of the authenticated merchant
func (h *OrdersHandler) GetMerchantOrders(c echo.Context) error {
	merchantID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	merchantOrders, err := h.ordersService.GetMerchantOrders(ctx, merchantID)
	if err != nil {
		logger.Error("Failed to get merchant orders", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(merchantOrders))
}

func (h *OrdersHandler) GetOrderByID(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	orderID64, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		logger.Error("Invalid order id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid order ID"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	order, err := h.ordersService.GetOrder(ctx, uint(orderID64), userID)
	if err != nil {
		logger.Error("Failed to get order by id", err)
		return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(order))
}

// UpdateOrderStatus lets a merchant move one of its own orders through the
// lifecycle
func (h *OrdersHandler) UpdateOrderStatus(c echo.Context) error {
	merchantID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	orderID64, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		logger.Error("Invalid order id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid order ID"})
	}

	var request UpdateOrderStatusRequest

	if err := c.Bind(&request); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validate.Struct(&request); err != nil {
		logger.Error("Failed to validate status request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.ordersService.UpdateOrderStatus(ctx, uint(orderID64), merchantID, request.Status); err != nil {
		logger.Error("Failed to update order status", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("Order updated successfully"))
}
