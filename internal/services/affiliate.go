package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
)

type AffiliateService struct {
	repo          repository.AffiliateRepository
	session       SessionSource
	notifier      Notifier
	publicURL     string
	minWithdrawal float64
	logger        *slog.Logger
}

func NewAffiliateService(repo repository.AffiliateRepository, session SessionSource, notifier Notifier, publicURL string, minWithdrawal float64, logger *slog.Logger) *AffiliateService {
	if logger == nil {
		logger = slog.Default()
	}

	return &AffiliateService{
		repo:          repo,
		session:       session,
		notifier:      notifier,
		publicURL:     strings.TrimRight(publicURL, "/"),
		minWithdrawal: minWithdrawal,
		logger:        logger.With(slog.String("component", "affiliates")),
	}
}

func (s *AffiliateService) Me(ctx context.Context) (*models.Affiliate, error) {

	if s.session.Current() == nil {
		return nil, appErrors.UnauthorizedError("Please log in to see the affiliate program")
	}

	affiliate, err := s.repo.Me(ctx)
	if err != nil {
		s.logger.Warn("Failed to load affiliate data", slog.Any("error", err))
		s.notifier.Error("Could not load affiliate data, please try again")
		return nil, err
	}

	return affiliate, nil
}

// Apply submits the three identity documents the program requires.
func (s *AffiliateService) Apply(ctx context.Context, application *models.AffiliateApplication) (string, error) {

	if s.session.Current() == nil {
		return "", s.reject(appErrors.UnauthorizedError("Please log in to apply"))
	}

	if len(application.BIFront.Content) == 0 || len(application.BIBack.Content) == 0 || len(application.Selfie.Content) == 0 {
		return "", s.reject(appErrors.ValidationError("Send the front and back of your ID card and a selfie"))
	}

	message, err := s.repo.Apply(ctx, application)
	if err != nil {
		s.logger.Warn("Affiliate application failed", slog.Any("error", err))
		s.notifier.Error(userMessage(err))
		return "", err
	}

	if message == "" {
		message = "Application sent, we will review your documents shortly"
	}
	s.notifier.Success(message)

	return message, nil
}

func (s *AffiliateService) Withdraw(ctx context.Context, req *models.WithdrawalRequest) (string, error) {

	user := s.session.Current()
	if user == nil {
		return "", s.reject(appErrors.UnauthorizedError("Please log in to withdraw"))
	}

	if req.Amount < s.minWithdrawal {
		return "", s.reject(appErrors.ValidationError(fmt.Sprintf("The minimum withdrawal is %.0f", s.minWithdrawal)))
	}

	if user.Phone == "" {
		return "", s.reject(appErrors.ValidationError("Add a phone number to your profile before withdrawing"))
	}

	message, err := s.repo.Withdraw(ctx, req)
	if err != nil {
		s.logger.Warn("Withdrawal failed", slog.Any("error", err))
		s.notifier.Error(userMessage(err))
		return "", err
	}

	if message == "" {
		message = "Withdrawal requested"
	}
	s.notifier.Success(message)

	return message, nil
}

// ReferralLink builds the storefront link carrying a referral code. With a
// product it points at that product's page, otherwise at the home page.
func (s *AffiliateService) ReferralLink(code, productPublicID string) models.ReferralLink {

	link, err := url.Parse(s.publicURL)
	if err != nil || s.publicURL == "" {
		link = &url.URL{Path: "/"}
	}

	if productPublicID != "" {
		link = link.JoinPath("produto", productPublicID)
	}

	if code != "" {
		query := link.Query()
		query.Set("r", code)
		link.RawQuery = query.Encode()
	}

	return models.ReferralLink{Code: code, URL: link.String()}
}

// ShareLink is the link to share for a product: referral-tagged when the
// current user is an approved affiliate, plain otherwise.
func (s *AffiliateService) ShareLink(ctx context.Context, productPublicID string) models.ReferralLink {

	if s.session.Current() == nil {
		return s.ReferralLink("", productPublicID)
	}

	affiliate, err := s.repo.Me(ctx)
	if err != nil || !affiliate.IsApproved() {
		return s.ReferralLink("", productPublicID)
	}

	return s.ReferralLink(affiliate.Code(), productPublicID)
}

func (s *AffiliateService) reject(err *appErrors.AppError) error {
	s.notifier.Error(err.Message)
	return err
}
