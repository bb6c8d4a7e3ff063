package handlers

import (
	"context"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/google/uuid"
)

// The handlers only see the slice of each service they render.

type SessionService interface {
	View() models.SessionView
	Login(ctx context.Context, credential string) (*models.User, error)
	Logout(ctx context.Context)
	UpdateProfile(ctx context.Context, req *models.UpdateProfileRequest) (*models.User, error)
}

type CartService interface {
	Snapshot() models.CartSnapshot
	Refresh(ctx context.Context) error
	AddItem(ctx context.Context, product models.Product, quantity int) error
	UpdateQuantity(ctx context.Context, lineID int64, quantity int) error
	RemoveItem(ctx context.Context, lineID int64) error
	Clear(ctx context.Context) error
}

type CatalogService interface {
	ListProducts(ctx context.Context, categoryID string) ([]models.Product, error)
	GetProduct(ctx context.Context, publicID string) (*models.Product, error)
	NewArrivals(ctx context.Context, page, perPage int) (*models.ProductListResponse, error)
	Categories(ctx context.Context) ([]models.Category, error)
	Breadcrumbs(ctx context.Context, categoryID, subcategoryID string) []models.Breadcrumb
}

type OrderService interface {
	Checkout(ctx context.Context, req *models.CheckoutRequest) (*models.CheckoutResult, error)
	ListOrders(ctx context.Context, page int) (*models.OrderHistoryResponse, error)
	CheckoutContext(ctx context.Context) (*models.CheckoutContext, error)
}

type AddressService interface {
	Load(ctx context.Context) ([]models.Address, error)
	Delete(ctx context.Context, id int64) error
	Suggest(query string) []models.Address
}

type AffiliateService interface {
	Me(ctx context.Context) (*models.Affiliate, error)
	Apply(ctx context.Context, application *models.AffiliateApplication) (string, error)
	Withdraw(ctx context.Context, req *models.WithdrawalRequest) (string, error)
	ShareLink(ctx context.Context, productPublicID string) models.ReferralLink
}

type LocationService interface {
	Reverse(ctx context.Context, lat, lon float64) (*models.Address, error)
	Search(ctx context.Context, query string) (*models.Location, error)
}

type AlertService interface {
	List() []models.Alert
	Dismiss(id uuid.UUID) error
}
