package service

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
)

// AddressBook mirrors the user's saved delivery addresses.
type AddressBook struct {
	repo     repository.AddressRepository
	session  SessionSource
	notifier Notifier
	logger   *slog.Logger

	mu        sync.RWMutex
	addresses []models.Address
}

func NewAddressBook(repo repository.AddressRepository, session SessionSource, notifier Notifier, logger *slog.Logger) *AddressBook {
	if logger == nil {
		logger = slog.Default()
	}

	return &AddressBook{
		repo:     repo,
		session:  session,
		notifier: notifier,
		logger:   logger.With(slog.String("component", "address_book")),
	}
}

func (b *AddressBook) Load(ctx context.Context) ([]models.Address, error) {

	if b.session.Current() == nil {
		return nil, appErrors.UnauthorizedError("Please log in to see your addresses")
	}

	addresses, err := b.repo.ListAddresses(ctx)
	if err != nil {
		b.replace(nil)
		b.logger.Warn("Failed to load addresses", slog.Any("error", err))

		if appErrors.HasCode(err, appErrors.ErrCodeTransport) {
			b.notifier.Error("Could not load your addresses")
		}
		return nil, err
	}

	b.replace(addresses)

	return b.List(), nil
}

func (b *AddressBook) List() []models.Address {
	b.mu.RLock()
	defer b.mu.RUnlock()

	addresses := make([]models.Address, len(b.addresses))
	copy(addresses, b.addresses)

	return addresses
}

// Delete drops the address locally before asking the backend, and puts the
// previous list back if the backend refuses.
func (b *AddressBook) Delete(ctx context.Context, id int64) error {

	if b.session.Current() == nil {
		err := appErrors.UnauthorizedError("Please log in to manage your addresses")
		b.notifier.Error(err.Message)
		return err
	}

	b.mu.Lock()
	previous := b.addresses
	kept := make([]models.Address, 0, len(previous))
	for _, address := range previous {
		if address.ID != id {
			kept = append(kept, address)
		}
	}
	b.addresses = kept
	b.mu.Unlock()

	if err := b.repo.DeleteAddress(ctx, id); err != nil {
		b.replace(previous)
		b.logger.Warn("Failed to delete address", slog.Int64("address_id", id), slog.Any("error", err))
		b.notifier.Error("Could not delete the address")
		return err
	}

	b.notifier.Success("Address deleted")

	return nil
}

// Suggest returns saved addresses whose name contains query, ignoring case.
func (b *AddressBook) Suggest(query string) []models.Address {

	query = strings.ToLower(strings.TrimSpace(query))
	suggestions := []models.Address{}

	if query == "" {
		return suggestions
	}

	for _, address := range b.List() {
		if strings.Contains(strings.ToLower(address.Name), query) {
			suggestions = append(suggestions, address)
		}
	}

	return suggestions
}

// OnSessionChange forgets the previous user's addresses.
func (b *AddressBook) OnSessionChange(_ context.Context, _ *models.User) {
	b.replace(nil)
}

func (b *AddressBook) replace(addresses []models.Address) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.addresses = append([]models.Address(nil), addresses...)
}
