package repository

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"

	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
)

type ProductRepository interface {
	ListProducts(ctx context.Context, categoryID string) ([]models.Product, error)
	GetProduct(ctx context.Context, publicID string) (*models.Product, error)
	NewArrivals(ctx context.Context, page, perPage int) (*models.ProductListResponse, error)
	Categories(ctx context.Context) ([]models.Category, error)
}

type productRepository struct {
	client *Client
}

func NewProductRepo(client *Client) ProductRepository {
	return &productRepository{client: client}
}

func (r *productRepository) ListProducts(ctx context.Context, categoryID string) ([]models.Product, error) {
	upstreamCtx, cancel := utils.WithUpstreamTimeout(ctx)
	defer cancel()

	path := "/products"
	if categoryID != "" {
		path = "/products/category/" + url.PathEscape(categoryID)
	}

	var raw json.RawMessage

	if err := r.client.getJSON(upstreamCtx, "products.list", path, nil, &raw); err != nil {
		return nil, err
	}

	products, _, err := decodeList[models.Product](raw, "products")
	if err != nil {
		return nil, err
	}

	if products == nil {
		products = []models.Product{}
	}

	return products, nil
}

func (r *productRepository) GetProduct(ctx context.Context, publicID string) (*models.Product, error) {
	upstreamCtx, cancel := utils.WithUpstreamTimeout(ctx)
	defer cancel()

	var resp models.ProductResponse

	if err := r.client.getJSON(upstreamCtx, "products.get", "/products/"+url.PathEscape(publicID), nil, &resp); err != nil {
		return nil, err
	}

	if resp.Product == nil {
		return nil, appErrors.NotFoundError("Product not found")
	}

	return resp.Product, nil
}

func (r *productRepository) NewArrivals(ctx context.Context, page, perPage int) (*models.ProductListResponse, error) {
	upstreamCtx, cancel := utils.WithUpstreamTimeout(ctx)
	defer cancel()

	query := url.Values{
		"page":     {strconv.Itoa(page)},
		"per_page": {strconv.Itoa(perPage)},
	}

	var resp models.ProductListResponse

	if err := r.client.getJSON(upstreamCtx, "products.new_arrivals", "/products/new-arrivals", query, &resp); err != nil {
		return nil, err
	}

	if resp.Products == nil {
		resp.Products = []models.Product{}
	}

	return &resp, nil
}

func (r *productRepository) Categories(ctx context.Context) ([]models.Category, error) {
	upstreamCtx, cancel := utils.WithUpstreamTimeout(ctx)
	defer cancel()

	var resp models.CategoryListResponse

	if err := r.client.getJSON(upstreamCtx, "categories.list", "/categories", nil, &resp); err != nil {
		return nil, err
	}

	if resp.Categories == nil {
		resp.Categories = []models.Category{}
	}

	return resp.Categories, nil
}
