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

// CartHandler renders the cart mirror. Every mutation answers with the
// snapshot taken after the store's refresh, success or not.
type CartHandler struct {
	cartService CartService
	validator   *validator.Validate
}

func NewCartHandler(cartService CartService) *CartHandler {
	return &CartHandler{cartService: cartService, validator: validator.New()}
}

func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.Success(w, http.StatusOK, h.cartService.Snapshot())
	}
}

func (h *CartHandler) Refresh() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		if err := h.cartService.Refresh(r.Context()); err != nil {
			logger.Warn("Cart refresh failed", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, h.cartService.Snapshot())
	}
}

func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.AddItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid add item input")
			return
		}

		product := models.Product{ID: req.ProductID, Name: req.Name, Price: req.Price}

		if err := h.cartService.AddItem(r.Context(), product, req.Quantity); err != nil {
			logger.Warn("Failed to add item", slog.String("productId", req.ProductID), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Item added to cart", slog.String("productId", req.ProductID))
		response.Success(w, http.StatusOK, h.cartService.Snapshot())
	}
}

// UpdateQuantity sets a line's quantity. Zero or less removes the line.
func (h *CartHandler) UpdateQuantity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		lineID, err := pathID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		var req models.UpdateQuantityRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid update quantity input")
			return
		}

		if err := h.cartService.UpdateQuantity(r.Context(), lineID, *req.Quantity); err != nil {
			logger.Warn("Failed to update line", slog.Int64("lineId", lineID), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, h.cartService.Snapshot())
	}
}

func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		lineID, err := pathID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		if err := h.cartService.RemoveItem(r.Context(), lineID); err != nil {
			logger.Warn("Failed to remove line", slog.Int64("lineId", lineID), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, h.cartService.Snapshot())
	}
}

func (h *CartHandler) Clear() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		if err := h.cartService.Clear(r.Context()); err != nil {
			logger.Warn("Failed to clear cart", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, h.cartService.Snapshot())
	}
}
