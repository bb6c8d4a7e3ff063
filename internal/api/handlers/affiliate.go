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

var applicationFields = []string{"bi_front", "bi_back", "selfie"}

type AffiliateHandler struct {
	affiliateService AffiliateService
	validator        *validator.Validate
}

func NewAffiliateHandler(affiliateService AffiliateService) *AffiliateHandler {
	return &AffiliateHandler{affiliateService: affiliateService, validator: validator.New()}
}

func (h *AffiliateHandler) Me() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		affiliate, err := h.affiliateService.Me(r.Context())
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Warn("Failed to load affiliate", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, affiliate)
	}
}

// Apply takes the multipart form with the front and back of the ID card and
// a selfie.
func (h *AffiliateHandler) Apply() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		if err := parseMultipart(w, r); err != nil {
			logger.Warn("Invalid application form", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		documents := make([]models.Document, len(applicationFields))
		for i, field := range applicationFields {
			content, filename, err := formFile(r, field)
			if err != nil {
				response.Error(w, err)
				return
			}
			documents[i] = models.Document{Filename: filename, Content: content}
		}

		application := &models.AffiliateApplication{BIFront: documents[0], BIBack: documents[1], Selfie: documents[2]}

		message, err := h.affiliateService.Apply(r.Context(), application)
		if err != nil {
			logger.Warn("Affiliate application failed", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Affiliate application sent")
		response.Success(w, http.StatusAccepted, messageResponse{Message: message})
	}
}

func (h *AffiliateHandler) Withdraw() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.WithdrawalRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid withdrawal input")
			return
		}

		message, err := h.affiliateService.Withdraw(r.Context(), &req)
		if err != nil {
			logger.Warn("Withdrawal failed", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Withdrawal requested", slog.Float64("amount", req.Amount))
		response.Success(w, http.StatusAccepted, messageResponse{Message: message})
	}
}

// ShareLink answers with the product link to share, tagged with the user's
// referral code when they are an approved affiliate.
func (h *AffiliateHandler) ShareLink() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.Success(w, http.StatusOK, h.affiliateService.ShareLink(r.Context(), r.PathValue("id")))
	}
}
