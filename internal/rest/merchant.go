package rest

import (
	"context"
	"net/http"
	"time"

	"smartCanteen/business/merchant"
	"smartCanteen/domain"
	"smartCanteen/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type MerchantService interface {
	Register(ctx context.Context, merchant *domain.Merchant) (domain.Merchant, error)
	Login(ctx context.Context, email, password string) (string, domain.Merchant, error)
	GetAllMerchants(ctx context.Context) ([]domain.Merchant, error)
	ListRules(ctx context.Context, merchantID uint) ([]domain.DiscountRule, error)
	ReplaceRules(ctx context.Context, merchantID uint, rules []domain.DiscountRule) error
	GetStats(ctx context.Context, merchantID uint) (merchant.MerchantStats, error)
}

type MerchantHandler struct {
	merchantService MerchantService
	validator       *validator.Validate
	timeout         time.Duration
}

func NewMerchantHandler(merchantService MerchantService) *MerchantHandler {
	return &MerchantHandler{
		merchantService: merchantService,
		validator:       validator.New(),
		timeout:         10 * time.Second,
	}
}

type MerchantRegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Location string `json:"location"`
	ImageURL string `json:"image_url"`
}

type MerchantLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type DiscountRuleInput struct {
	Tier       int     `json:"tier" validate:"required,min=1,max=5"`
	Multiplier float64 `json:"multiplier" validate:"required,gt=0"`
}

type ReplaceRulesRequest struct {
	Rules []DiscountRuleInput `json:"rules" validate:"required,dive"`
}

func (h *MerchantHandler) Register(c echo.Context) error {
	var req MerchantRegisterRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate merchant register", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	m, err := h.merchantService.Register(ctx, &domain.Merchant{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Location: req.Location,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		logger.Error("Failed to register merchant", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":  "Registration successful",
		"merchant": m,
	})
}

func (h *MerchantHandler) Login(c echo.Context) error {
	var req MerchantLoginRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate merchant login", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	token, m, err := h.merchantService.Login(ctx, req.Email, req.Password)
	if err != nil {
		logger.Error("Failed to login merchant", err)
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":  "Login successful",
		"token":    token,
		"merchant": m,
	})
}

func (h *MerchantHandler) GetAllMerchants(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	merchants, err := h.merchantService.GetAllMerchants(ctx)
	if err != nil {
		logger.Error("Failed to get all merchants", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(merchants))
}

// GetRules returns the authenticated merchant's discount rules
func (h *MerchantHandler) GetRules(c echo.Context) error {
	merchantID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	rules, err := h.merchantService.ListRules(ctx, merchantID)
	if err != nil {
		logger.Error("Failed to list discount rules", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(rules))
}

// ReplaceRules swaps the authenticated merchant's whole rule set
func (h *MerchantHandler) ReplaceRules(c echo.Context) error {
	merchantID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req ReplaceRulesRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate discount rules", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	rules := make([]domain.DiscountRule, 0, len(req.Rules))
	for _, in := range req.Rules {
		rules = append(rules, domain.DiscountRule{
			Tier:       in.Tier,
			Multiplier: in.Multiplier,
		})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.merchantService.ReplaceRules(ctx, merchantID, rules); err != nil {
		logger.Error("Failed to replace discount rules", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("Discount rules updated successfully"))
}

// GetStats returns the merchant dashboard aggregates
func (h *MerchantHandler) GetStats(c echo.Context) error {
	merchantID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	stats, err := h.merchantService.GetStats(ctx, merchantID)
	if err != nil {
		logger.Error("Failed to load merchant stats", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(stats))
}
