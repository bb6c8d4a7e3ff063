package repository

import "github.com/aaravmahajanofficial/storefront/internal/config"

// Repositories bundles every backend repository over one shared Client.
type Repositories struct {
	Client    *Client
	Cart      CartRepository
	User      UserRepository
	Product   ProductRepository
	Order     OrderRepository
	Address   AddressRepository
	Affiliate AffiliateRepository
}

func New(cfg *config.Config) (*Repositories, error) {

	client, err := NewClient(cfg.Upstream, cfg.Breaker)
	if err != nil {
		return nil, err
	}

	return &Repositories{
		Client:    client,
		Cart:      NewCartRepo(client),
		User:      NewUserRepo(client, cfg.Upstream.SessionCookie),
		Product:   NewProductRepo(client),
		Order:     NewOrderRepo(client),
		Address:   NewAddressRepo(client),
		Affiliate: NewAffiliateRepo(client),
	}, nil
}
