package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
)

type AffiliateRepository interface {
	Me(ctx context.Context) (*models.Affiliate, error)
	Apply(ctx context.Context, application *models.AffiliateApplication) (string, error)
	Withdraw(ctx context.Context, req *models.WithdrawalRequest) (string, error)
}

type affiliateRepository struct {
	client *Client
}

func NewAffiliateRepo(client *Client) AffiliateRepository {
	return &affiliateRepository{client: client}
}

// Me accepts the affiliate payload bare or wrapped in `{error, message, data}`.
func (r *affiliateRepository) Me(ctx context.Context) (*models.Affiliate, error) {
	upstreamCtx, cancel := utils.WithUpstreamTimeout(ctx)
	defer cancel()

	var raw json.RawMessage

	if err := r.client.getJSON(upstreamCtx, "affiliates.me", "/affiliates/me", nil, &raw); err != nil {
		return nil, err
	}

	var wrapped struct {
		models.Envelope
		Data json.RawMessage `json:"data"`
	}

	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, appErrors.TransportError("Unexpected response from the storefront").WithError(err)
	}

	if err := rejection(wrapped.Error, wrapped.Message); err != nil {
		return nil, err
	}

	body := raw
	if data := bytes.TrimSpace(wrapped.Data); len(data) > 0 && !bytes.Equal(data, []byte("null")) {
		body = data
	}

	var affiliate models.Affiliate
	if err := json.Unmarshal(body, &affiliate); err != nil {
		return nil, appErrors.TransportError("Unexpected response from the storefront").WithError(err)
	}

	return &affiliate, nil
}

func (r *affiliateRepository) Apply(ctx context.Context, application *models.AffiliateApplication) (string, error) {
	upstreamCtx, cancel := utils.WithUpstreamTimeout(ctx)
	defer cancel()

	files := []filePart{
		{field: "bi_front", filename: orDefault(application.BIFront.Filename, "bi_front"), content: application.BIFront.Content},
		{field: "bi_back", filename: orDefault(application.BIBack.Filename, "bi_back"), content: application.BIBack.Content},
		{field: "selfie", filename: orDefault(application.Selfie.Filename, "selfie"), content: application.Selfie.Content},
	}

	var resp models.Envelope

	if err := r.client.sendMultipart(upstreamCtx, "affiliates.apply", http.MethodPost, "/affiliates/apply", nil, files, &resp); err != nil {
		return "", err
	}

	if err := rejection(resp.Error, resp.Message); err != nil {
		return "", err
	}

	return resp.Message, nil
}

func (r *affiliateRepository) Withdraw(ctx context.Context, req *models.WithdrawalRequest) (string, error) {
	upstreamCtx, cancel := utils.WithUpstreamTimeout(ctx)
	defer cancel()

	var resp models.Envelope

	if err := r.client.sendJSON(upstreamCtx, "affiliates.withdraw", http.MethodPost, "/affiliates/withdraw", req, &resp); err != nil {
		return "", err
	}

	if err := rejection(resp.Error, resp.Message); err != nil {
		return "", err
	}

	return resp.Message, nil
}
