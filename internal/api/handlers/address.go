package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront/internal/utils/response"
)

type AddressHandler struct {
	addressService AddressService
}

func NewAddressHandler(addressService AddressService) *AddressHandler {
	return &AddressHandler{addressService: addressService}
}

func (h *AddressHandler) ListAddresses() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		addresses, err := h.addressService.Load(r.Context())
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Warn("Failed to load addresses", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, addresses)
	}
}

func (h *AddressHandler) DeleteAddress() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := pathID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		if err := h.addressService.Delete(r.Context(), id); err != nil {
			logger.Warn("Failed to delete address", slog.Int64("addressId", id), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Address deleted", slog.Int64("addressId", id))
		w.WriteHeader(http.StatusNoContent)
	}
}

// for eg: GET /api/v1/addresses/suggest?q=talat
func (h *AddressHandler) Suggest() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.Success(w, http.StatusOK, h.addressService.Suggest(r.URL.Query().Get("q")))
	}
}
