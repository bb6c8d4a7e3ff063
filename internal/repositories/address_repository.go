package repository

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
)

type AddressRepository interface {
	ListAddresses(ctx context.Context) ([]models.Address, error)
	DeleteAddress(ctx context.Context, id int64) error
}

type addressRepository struct {
	client *Client
}

func NewAddressRepo(client *Client) AddressRepository {
	return &addressRepository{client: client}
}

func (r *addressRepository) ListAddresses(ctx context.Context) ([]models.Address, error) {
	upstreamCtx, cancel := utils.WithUpstreamTimeout(ctx)
	defer cancel()

	var raw json.RawMessage

	if err := r.client.getJSON(upstreamCtx, "addresses.list", "/addresses", nil, &raw); err != nil {
		return nil, err
	}

	addresses, _, err := decodeList[models.Address](raw, "addresses")
	if err != nil {
		return nil, err
	}

	if addresses == nil {
		addresses = []models.Address{}
	}

	return addresses, nil
}

func (r *addressRepository) DeleteAddress(ctx context.Context, id int64) error {
	upstreamCtx, cancel := utils.WithUpstreamTimeout(ctx)
	defer cancel()

	var resp models.Envelope

	if err := r.client.sendJSON(upstreamCtx, "addresses.delete", http.MethodDelete, "/addresses/"+strconv.FormatInt(id, 10), nil, &resp); err != nil {
		return err
	}

	return rejection(resp.Error, resp.Message)
}
