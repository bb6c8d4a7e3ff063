package service

import (
	"context"
	"log/slog"
	"sync"

	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/metrics"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
)

// SessionSource supplies the identity the cart belongs to. Nil means
// nobody is logged in.
type SessionSource interface {
	Current() *models.User
}

// Notifier receives the user-facing outcome of every cart mutation.
type Notifier interface {
	Success(message string)
	Error(message string)
}

const (
	opAdd    = "add"
	opUpdate = "update"
	opRemove = "remove"
	opClear  = "clear"

	msgLoginRequired = "Please log in to manage your cart"
	msgUnexpected    = "Something went wrong, please try again"
)

var defaultSuccess = map[string]string{
	opAdd:    "Item added to cart",
	opUpdate: "Cart updated",
	opRemove: "Item removed from cart",
	opClear:  "Cart cleared",
}

// CartStore owns the local mirror of the server cart. Every mutation is
// followed by a refresh; the mirror is only ever replaced by a whole server
// snapshot. Lines touched by an in-flight mutation are flagged pending in
// snapshots, which never changes the totals.
type CartStore struct {
	remote   repository.CartRepository
	session  SessionSource
	notifier Notifier
	logger   *slog.Logger

	mu         sync.RWMutex
	cart       *models.Cart
	owner      string
	epoch      uint64
	inflight   int
	pending    map[int64]int
	pendingAll int
}

func NewCartStore(remote repository.CartRepository, session SessionSource, notifier Notifier, logger *slog.Logger) *CartStore {
	if logger == nil {
		logger = slog.Default()
	}

	return &CartStore{
		remote:   remote,
		session:  session,
		notifier: notifier,
		logger:   logger.With(slog.String("component", "cart_store")),
		pending:  make(map[int64]int),
	}
}

// Refresh replaces the mirror with the server's cart. Without a session the
// mirror is emptied and no request is made. A failed fetch also empties the
// mirror; the error is logged and returned but not notified.
func (s *CartStore) Refresh(ctx context.Context) error {

	user := s.session.Current()
	if user == nil {
		s.mu.Lock()
		if s.owner != "" {
			s.epoch++
		}
		s.resetLocked()
		s.mu.Unlock()

		metrics.CartRefreshed("unbound", 0)
		return nil
	}

	s.mu.Lock()
	if s.owner != "" && s.owner != user.PublicID {
		s.epoch++
		s.cart = nil
		s.clearPendingLocked()
	}
	s.owner = user.PublicID
	epoch := s.epoch
	s.inflight++
	s.mu.Unlock()

	cart, err := s.remote.GetCart(ctx, user.PublicID)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.inflight--

	if epoch != s.epoch {
		s.logger.Debug("Discarding cart fetched under a previous session")
		metrics.CartRefreshed("discarded", s.cart.TotalItems())
		return nil
	}

	if err != nil {
		s.cart = nil
		s.logger.Error("Failed to refresh cart", slog.String("user_id", user.PublicID), slog.Any("error", err))
		metrics.CartRefreshed("error", 0)

		if _, ok := appErrors.IsAppError(err); ok {
			return err
		}
		return appErrors.TransportError("Could not load your cart").WithError(err)
	}

	s.cart = applyServerCart(cart)
	metrics.CartRefreshed("success", s.cart.TotalItems())

	return nil
}

// AddItem asks the server to add quantity units of product. Merging into an
// existing line is the server's business; the mirror learns the result from
// the refresh that always follows.
func (s *CartStore) AddItem(ctx context.Context, product models.Product, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}

	return s.mutate(ctx, opAdd, s.lineForProduct(product), func(userID string) (string, error) {
		return s.remote.AddItem(ctx, userID, product.ID, quantity)
	})
}

// RemoveItem deletes a line. A line the server no longer knows counts as
// removed.
func (s *CartStore) RemoveItem(ctx context.Context, lineID int64) error {
	return s.mutate(ctx, opRemove, lineID, func(userID string) (string, error) {
		message, err := s.remote.RemoveItem(ctx, userID, lineID)
		if appErrors.HasCode(err, appErrors.ErrCodeNotFound) {
			return "", nil
		}
		return message, err
	})
}

// UpdateQuantity sets a line's quantity. Anything below 1 removes the line.
func (s *CartStore) UpdateQuantity(ctx context.Context, lineID int64, quantity int) error {
	if quantity < 1 {
		return s.RemoveItem(ctx, lineID)
	}

	return s.mutate(ctx, opUpdate, lineID, func(userID string) (string, error) {
		return s.remote.UpdateItem(ctx, userID, lineID, quantity)
	})
}

func (s *CartStore) Clear(ctx context.Context) error {
	return s.mutate(ctx, opClear, allLines, func(userID string) (string, error) {
		return s.remote.Clear(ctx, userID)
	})
}

// clearSilently empties the cart without raising alerts, for flows such as
// checkout that report their own outcome.
func (s *CartStore) clearSilently(ctx context.Context) error {
	return s.run(ctx, opClear, allLines, true, func(userID string) (string, error) {
		return s.remote.Clear(ctx, userID)
	})
}

// OnSessionChange must be called whenever the logged-in identity changes.
// Refreshes that started before the change are discarded when they land.
func (s *CartStore) OnSessionChange(ctx context.Context, user *models.User) error {

	s.mu.Lock()
	s.epoch++
	if user == nil {
		s.resetLocked()
	} else {
		s.cart = nil
		s.owner = user.PublicID
		s.clearPendingLocked()
	}
	s.mu.Unlock()

	if user == nil {
		metrics.CartRefreshed("unbound", 0)
		return nil
	}

	return s.Refresh(ctx)
}

func (s *CartStore) State() models.CartState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.stateLocked()
}

// Snapshot returns a copy of the mirror safe to hand to consumers.
func (s *CartStore) Snapshot() models.CartSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return buildSnapshot(s.cart, s.stateLocked(), s.pending, s.pendingAll > 0)
}

// Cart returns a deep copy of the mirror, or nil for the null cart.
func (s *CartStore) Cart() *models.Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.cart.IsNull() {
		return nil
	}

	return applyServerCart(s.cart)
}

const allLines int64 = -1

func (s *CartStore) mutate(ctx context.Context, op string, lineID int64, call func(userID string) (string, error)) error {
	return s.run(ctx, op, lineID, false, call)
}

func (s *CartStore) run(ctx context.Context, op string, lineID int64, quiet bool, call func(userID string) (string, error)) error {

	user := s.session.Current()
	if user == nil {
		s.logger.Info("Cart mutation attempted without a session", slog.String("operation", op))
		metrics.CartMutation(op, "unauthenticated")
		s.notifier.Error(msgLoginRequired)

		return appErrors.UnauthorizedError(msgLoginRequired)
	}

	epoch := s.markPending(lineID)

	message, err := call(user.PublicID)

	// Reconcile even when the caller has gone away.
	if refreshErr := s.Refresh(context.WithoutCancel(ctx)); refreshErr != nil {
		s.logger.Warn("Cart refresh after mutation failed", slog.String("operation", op), slog.Any("error", refreshErr))
	}

	s.unmarkPending(lineID, epoch)

	if err != nil {
		metrics.CartMutation(op, outcomeOf(err))
		s.logger.Warn("Cart mutation failed", slog.String("operation", op), slog.Any("error", err))
		if !quiet {
			s.notifier.Error(userMessage(err))
		}

		if _, ok := appErrors.IsAppError(err); ok {
			return err
		}
		return appErrors.TransportError(msgUnexpected).WithError(err)
	}

	metrics.CartMutation(op, metrics.OutcomeSuccess)

	if quiet {
		return nil
	}

	if message == "" {
		message = defaultSuccess[op]
	}
	s.notifier.Success(message)

	return nil
}

// markPending flags lineID as being mutated and returns the session epoch
// the flag belongs to.
func (s *CartStore) markPending(lineID int64) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case lineID == allLines:
		s.pendingAll++
	case lineID > 0:
		s.pending[lineID]++
	}

	return s.epoch
}

// unmarkPending drops a flag set by markPending. Flags from an earlier epoch
// were already wiped with that session.
func (s *CartStore) unmarkPending(lineID int64, epoch uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if epoch != s.epoch {
		return
	}

	switch {
	case lineID == allLines:
		s.pendingAll = max(s.pendingAll-1, 0)
	case lineID > 0:
		s.pending[lineID]--
		if s.pending[lineID] <= 0 {
			delete(s.pending, lineID)
		}
	}
}

func (s *CartStore) lineForProduct(product models.Product) int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.cart == nil {
		return 0
	}

	for _, line := range s.cart.Lines {
		if (product.ID != "" && line.Product.ID == product.ID) || (product.PublicID != "" && line.Product.PublicID == product.PublicID) {
			return line.ID
		}
	}

	return 0
}

func (s *CartStore) resetLocked() {
	s.cart = nil
	s.owner = ""
	s.clearPendingLocked()
}

func (s *CartStore) clearPendingLocked() {
	s.pending = make(map[int64]int)
	s.pendingAll = 0
}

func (s *CartStore) stateLocked() models.CartState {
	switch {
	case s.owner == "":
		return models.CartStateUnbound
	case s.inflight > 0:
		return models.CartStateSyncing
	default:
		return models.CartStateBound
	}
}

// applyServerCart copies a server cart into a value the store can own.
func applyServerCart(server *models.Cart) *models.Cart {
	if server.IsNull() {
		return nil
	}

	lines := make([]models.CartLine, len(server.Lines))
	copy(lines, server.Lines)

	return &models.Cart{PublicID: server.PublicID, Lines: lines}
}

func buildSnapshot(cart *models.Cart, state models.CartState, pending map[int64]int, allPending bool) models.CartSnapshot {

	snapshot := models.CartSnapshot{
		State: state,
		Lines: []models.CartLineView{},
	}

	if cart.IsNull() {
		return snapshot
	}

	snapshot.CartID = cart.PublicID

	for _, line := range cart.Lines {
		snapshot.Lines = append(snapshot.Lines, models.CartLineView{
			CartLine:  line,
			LineTotal: line.LineTotal(),
			Pending:   allPending || pending[line.ID] > 0,
		})
	}

	snapshot.TotalItems = cart.TotalItems()
	snapshot.Subtotal = cart.Subtotal()

	return snapshot
}

func outcomeOf(err error) string {
	if appErrors.HasCode(err, appErrors.ErrCodeTransport) {
		return metrics.OutcomeTransport
	}
	return metrics.OutcomeRejected
}

func userMessage(err error) string {
	return appErrors.MessageOf(err, msgUnexpected)
}
