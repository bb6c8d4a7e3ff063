package handlers

import (
	"net/http"

	"github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/utils/response"
	"github.com/google/uuid"
)

type AlertHandler struct {
	alertService AlertService
}

func NewAlertHandler(alertService AlertService) *AlertHandler {
	return &AlertHandler{alertService: alertService}
}

func (h *AlertHandler) ListAlerts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.Success(w, http.StatusOK, h.alertService.List())
	}
}

func (h *AlertHandler) DismissAlert() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			response.Error(w, errors.BadRequestError("Invalid alert ID format"))
			return
		}

		if err := h.alertService.Dismiss(id); err != nil {
			response.Error(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
