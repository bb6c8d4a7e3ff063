package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
	"github.com/aaravmahajanofficial/storefront/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type OrderHandler struct {
	orderService OrderService
	validator    *validator.Validate
}

func NewOrderHandler(orderService OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService, validator: validator.New()}
}

// CheckoutContext returns the cart, saved addresses and totals the checkout
// page renders.
func (h *OrderHandler) CheckoutContext() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		checkout, err := h.orderService.CheckoutContext(r.Context())
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Warn("Failed to load checkout", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, checkout)
	}
}

func (h *OrderHandler) Checkout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.CheckoutRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid checkout input")
			return
		}

		result, err := h.orderService.Checkout(r.Context(), &req)
		if err != nil {
			logger.Warn("Checkout failed", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Order placed", slog.Float64("total", result.Total))
		response.Success(w, http.StatusCreated, result)
	}
}

// for eg: GET /api/v1/orders?page=2
func (h *OrderHandler) ListOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		page, err := queryInt(r, "page", 1)
		if err != nil {
			response.Error(w, err)
			return
		}

		orders, err := h.orderService.ListOrders(r.Context(), page)
		if err != nil {
			logger.Warn("Failed to list orders", slog.Int("page", page), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, orders)
	}
}
