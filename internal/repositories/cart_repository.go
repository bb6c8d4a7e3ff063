package repository

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
)

// CartRepository is the remote cart service. Mutations return the server's
// message on success; a business rejection comes back as a ValidationError
// carrying the server's message.
type CartRepository interface {
	GetCart(ctx context.Context, userID string) (*models.Cart, error)
	AddItem(ctx context.Context, userID, productID string, quantity int) (string, error)
	UpdateItem(ctx context.Context, userID string, lineID int64, quantity int) (string, error)
	RemoveItem(ctx context.Context, userID string, lineID int64) (string, error)
	Clear(ctx context.Context, userID string) (string, error)
}

type cartRepository struct {
	client *Client
}

func NewCartRepo(client *Client) CartRepository {
	return &cartRepository{client: client}
}

// GetCart returns nil when the user has no cart yet.
func (r *cartRepository) GetCart(ctx context.Context, userID string) (*models.Cart, error) {
	upstreamCtx, cancel := utils.WithUpstreamTimeout(ctx)
	defer cancel()

	var resp models.CartResponse

	if err := r.client.getJSON(upstreamCtx, "cart.get", "/carts/user/cart", url.Values{"user_id": {userID}}, &resp); err != nil {
		return nil, err
	}

	if resp.Cart.IsNull() {
		return nil, nil
	}

	return resp.Cart, nil
}

func (r *cartRepository) AddItem(ctx context.Context, userID, productID string, quantity int) (string, error) {
	payload := models.AddCartItemPayload{UserID: userID, ProductID: productID, Quantity: quantity}
	return r.mutate(ctx, "cart.add", http.MethodPost, "/carts/add", payload)
}

func (r *cartRepository) UpdateItem(ctx context.Context, userID string, lineID int64, quantity int) (string, error) {
	payload := models.UpdateCartItemPayload{UserID: userID, Quantity: quantity}
	return r.mutate(ctx, "cart.update", http.MethodPut, "/carts/update/"+strconv.FormatInt(lineID, 10), payload)
}

func (r *cartRepository) RemoveItem(ctx context.Context, userID string, lineID int64) (string, error) {
	payload := models.CartOwnerPayload{UserID: userID}
	return r.mutate(ctx, "cart.remove", http.MethodDelete, "/carts/remove/"+strconv.FormatInt(lineID, 10), payload)
}

func (r *cartRepository) Clear(ctx context.Context, userID string) (string, error) {
	return r.mutate(ctx, "cart.clear", http.MethodPost, "/carts/clear", models.CartOwnerPayload{UserID: userID})
}

func (r *cartRepository) mutate(ctx context.Context, op, method, path string, payload any) (string, error) {
	upstreamCtx, cancel := utils.WithUpstreamTimeout(ctx)
	defer cancel()

	var resp models.CartMutationResponse

	if err := r.client.sendJSON(upstreamCtx, op, method, path, payload, &resp); err != nil {
		return "", err
	}

	if err := rejection(resp.Error, resp.Message); err != nil {
		return "", err
	}

	return resp.Message, nil
}
