package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront/internal/utils/response"
)

const defaultNewArrivalsPerPage = 8

type ProductHandler struct {
	catalogService CatalogService
}

func NewProductHandler(catalogService CatalogService) *ProductHandler {
	return &ProductHandler{catalogService: catalogService}
}

// ListProducts lists the whole catalog, or one category with ?category=.
func (h *ProductHandler) ListProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())
		categoryID := r.URL.Query().Get("category")

		products, err := h.catalogService.ListProducts(r.Context(), categoryID)
		if err != nil {
			logger.Warn("Failed to list products", slog.String("category", categoryID), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, products)
	}
}

func (h *ProductHandler) GetProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())
		publicID := r.PathValue("id")

		product, err := h.catalogService.GetProduct(r.Context(), publicID)
		if err != nil {
			logger.Warn("Failed to get product", slog.String("productId", publicID), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, product)
	}
}

// for eg: GET /api/v1/products/new-arrivals?page=2&per_page=8
func (h *ProductHandler) NewArrivals() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		page, err := queryInt(r, "page", 1)
		if err != nil {
			response.Error(w, err)
			return
		}

		perPage, err := queryInt(r, "per_page", defaultNewArrivalsPerPage)
		if err != nil {
			response.Error(w, err)
			return
		}

		products, err := h.catalogService.NewArrivals(r.Context(), page, perPage)
		if err != nil {
			logger.Warn("Failed to load new arrivals", slog.Int("page", page), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, products)
	}
}

func (h *ProductHandler) Categories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		categories, err := h.catalogService.Categories(r.Context())
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Warn("Failed to list categories", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, categories)
	}
}

func (h *ProductHandler) Breadcrumbs() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		crumbs := h.catalogService.Breadcrumbs(r.Context(), r.PathValue("id"), r.URL.Query().Get("sub"))
		response.Success(w, http.StatusOK, crumbs)
	}
}
