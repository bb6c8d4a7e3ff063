package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront/internal/utils/response"
)

type LocationHandler struct {
	locationService LocationService
}

func NewLocationHandler(locationService LocationService) *LocationHandler {
	return &LocationHandler{locationService: locationService}
}

// for eg: GET /api/v1/locations/reverse?lat=-8.83&lon=13.23
func (h *LocationHandler) Reverse() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		lat, err := queryFloat(r, "lat")
		if err != nil {
			response.Error(w, err)
			return
		}

		lon, err := queryFloat(r, "lon")
		if err != nil {
			response.Error(w, err)
			return
		}

		address, err := h.locationService.Reverse(r.Context(), lat, lon)
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Warn("Reverse geocoding failed", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, address)
	}
}

func (h *LocationHandler) Search() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		location, err := h.locationService.Search(r.Context(), r.URL.Query().Get("q"))
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Warn("Location search failed", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, location)
	}
}
