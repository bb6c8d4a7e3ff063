package service

import (
	"context"
	"log/slog"

	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	"golang.org/x/sync/errgroup"
)

type OrderService struct {
	repo        repository.OrderRepository
	cart        *CartStore
	addresses   *AddressBook
	session     SessionSource
	notifier    Notifier
	shippingFee float64
	logger      *slog.Logger
}

func NewOrderService(repo repository.OrderRepository, cart *CartStore, addresses *AddressBook, session SessionSource, notifier Notifier, shippingFee float64, logger *slog.Logger) *OrderService {
	if logger == nil {
		logger = slog.Default()
	}

	return &OrderService{
		repo:        repo,
		cart:        cart,
		addresses:   addresses,
		session:     session,
		notifier:    notifier,
		shippingFee: shippingFee,
		logger:      logger.With(slog.String("component", "orders")),
	}
}

// Checkout places an order for the whole cart mirror and clears the cart
// once the backend accepts it.
func (s *OrderService) Checkout(ctx context.Context, req *models.CheckoutRequest) (*models.CheckoutResult, error) {

	user := s.session.Current()
	if user == nil {
		return nil, s.reject(appErrors.UnauthorizedError("Please log in to place an order"))
	}

	if user.Phone == "" {
		return nil, s.reject(appErrors.ValidationError("Add a phone number to your profile before ordering"))
	}

	if req.Address.Name == "" {
		return nil, s.reject(appErrors.ValidationError("Choose a delivery address"))
	}

	cart := s.cart.Cart()
	if cart == nil || len(cart.Lines) == 0 {
		return nil, s.reject(appErrors.ValidationError("Your cart is empty"))
	}

	subtotal := cart.Subtotal()
	total := subtotal + s.shippingFee

	payload := &models.CreateOrderPayload{
		Items:       cart.Lines,
		Address:     req.Address,
		Phone:       user.Phone,
		TotalPrice:  total,
		ShippingFee: s.shippingFee,
	}

	message, err := s.repo.CreateOrder(ctx, payload)
	if err != nil {
		s.logger.Warn("Order was not created", slog.String("user_id", user.PublicID), slog.Any("error", err))
		s.notifier.Error(userMessage(err))
		return nil, err
	}

	if message == "" {
		message = "Order placed"
	}
	s.notifier.Success(message)
	s.logger.Info("Order placed", slog.String("user_id", user.PublicID), slog.Float64("total", total))

	if err := s.cart.clearSilently(ctx); err != nil {
		s.logger.Warn("Cart was not cleared after checkout", slog.Any("error", err))
	}

	return &models.CheckoutResult{
		Message:     message,
		Subtotal:    subtotal,
		ShippingFee: s.shippingFee,
		Total:       total,
	}, nil
}

func (s *OrderService) ListOrders(ctx context.Context, page int) (*models.OrderHistoryResponse, error) {

	if s.session.Current() == nil {
		return nil, appErrors.UnauthorizedError("Please log in to see your orders")
	}

	if page < 1 {
		page = 1
	}

	history, err := s.repo.ListOrders(ctx, page)
	if err != nil {
		if appErrors.HasCode(err, appErrors.ErrCodeTransport) {
			s.notifier.Error("Could not load your orders")
		}
		return nil, err
	}

	return history, nil
}

// CheckoutContext loads the cart and the address book together.
func (s *OrderService) CheckoutContext(ctx context.Context) (*models.CheckoutContext, error) {

	if s.session.Current() == nil {
		return nil, appErrors.UnauthorizedError("Please log in to check out")
	}

	// A plain group: cancelling the cart refresh would empty the mirror.
	var g errgroup.Group

	g.Go(func() error {
		return s.cart.Refresh(ctx)
	})

	// Only the cart can fail the page; without saved addresses the user
	// still types one in.
	var addresses []models.Address
	g.Go(func() error {
		loaded, err := s.addresses.Load(ctx)
		if err != nil {
			s.logger.Warn("Addresses unavailable for checkout", slog.Any("error", err))
			loaded = []models.Address{}
		}
		addresses = loaded
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	snapshot := s.cart.Snapshot()

	return &models.CheckoutContext{
		Cart:        snapshot,
		Addresses:   addresses,
		ShippingFee: s.shippingFee,
		Total:       snapshot.Subtotal + s.shippingFee,
	}, nil
}

func (s *OrderService) reject(err *appErrors.AppError) error {
	s.notifier.Error(err.Message)
	return err
}
