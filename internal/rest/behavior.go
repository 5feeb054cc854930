package rest

import (
	"context"
	"net/http"
	"time"

	"smartCanteen/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type BehaviorService interface {
	LogEvent(ctx context.Context, userID, merchantID uint, actionType string, eventCtx map[string]any) error
}

type BehaviorHandler struct {
	behaviorService BehaviorService
	validator       *validator.Validate
	timeout         time.Duration
}

func NewBehaviorHandler(behaviorService BehaviorService) *BehaviorHandler {
	return &BehaviorHandler{
		behaviorService: behaviorService,
		validator:       validator.New(),
		timeout:         10 * time.Second,
	}
}

type LogEventRequest struct {
	MerchantID uint           `json:"merchant_id" validate:"required"`
	ActionType string         `json:"action_type" validate:"required"`
	Context    map[string]any `json:"context"`
}

// LogEvent records a view_item or add_to_cart interaction for the
// authenticated user
func (h *BehaviorHandler) LogEvent(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req LogEventRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate behavior event", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.behaviorService.LogEvent(ctx, userID, req.MerchantID, req.ActionType, req.Context); err != nil {
		logger.Error("Failed to log behavior event", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated("Event logged"))
}
