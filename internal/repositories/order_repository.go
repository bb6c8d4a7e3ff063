package repository

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
)

type OrderRepository interface {
	CreateOrder(ctx context.Context, payload *models.CreateOrderPayload) (string, error)
	ListOrders(ctx context.Context, page int) (*models.OrderHistoryResponse, error)
}

type orderRepository struct {
	client *Client
}

func NewOrderRepo(client *Client) OrderRepository {
	return &orderRepository{client: client}
}

func (r *orderRepository) CreateOrder(ctx context.Context, payload *models.CreateOrderPayload) (string, error) {
	upstreamCtx, cancel := utils.WithUpstreamTimeout(ctx)
	defer cancel()

	var resp models.Envelope

	if err := r.client.sendJSON(upstreamCtx, "orders.create", http.MethodPost, "/orders", payload, &resp); err != nil {
		return "", err
	}

	if err := rejection(resp.Error, resp.Message); err != nil {
		return "", err
	}

	return resp.Message, nil
}

// ListOrders accepts `{orders, pagination}`, `{data, pagination}` or a bare array.
func (r *orderRepository) ListOrders(ctx context.Context, page int) (*models.OrderHistoryResponse, error) {
	upstreamCtx, cancel := utils.WithUpstreamTimeout(ctx)
	defer cancel()

	var raw json.RawMessage

	if err := r.client.getJSON(upstreamCtx, "orders.list", "/orders", url.Values{"page": {strconv.Itoa(page)}}, &raw); err != nil {
		return nil, err
	}

	orders, pagination, err := decodeList[models.Order](raw, "orders", "data")
	if err != nil {
		return nil, err
	}

	if orders == nil {
		orders = []models.Order{}
	}

	return &models.OrderHistoryResponse{Orders: orders, Pagination: pagination}, nil
}
