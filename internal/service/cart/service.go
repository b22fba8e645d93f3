// Package cart implements the storefront cart store: product-quantity
// bookkeeping, derived totals and persist-on-mutate semantics.
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"go.uber.org/zap"

	"dulces-storefront/internal/domain"
	"dulces-storefront/internal/storage"
)

const storageKey = "cart"

// Store is the single source of truth for the shopping cart. Every mutation
// persists the item list before returning; persistence failures are logged
// and swallowed, never surfaced to the caller.
type Store struct {
	mu      sync.Mutex
	items   []domain.CartItem
	open    bool
	storage storage.Store
	logger  *zap.SugaredLogger
}

// New builds a Store, rehydrating previously persisted items. A corrupt or
// unreadable stored cart falls back to an empty one.
func New(ctx context.Context, st storage.Store, logger *zap.SugaredLogger) *Store {
	s := &Store{storage: st, logger: logger}
	raw, err := st.Get(ctx, storageKey)
	switch {
	case errors.Is(err, domain.ErrNotFound):
	case err != nil:
		logger.Warnw("load cart from storage", "error", err)
	default:
		if err := json.Unmarshal(raw, &s.items); err != nil {
			logger.Warnw("failed to parse cart from storage, starting empty", "error", err)
			s.items = nil
		}
	}
	return s
}

// Add puts one unit of product into the cart, merging with an existing line
// for the same product id. Add always succeeds.
func (s *Store) Add(ctx context.Context, product domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == product.ID {
			s.items[i].Quantity++
			s.persist(ctx)
			return
		}
	}
	s.items = append(s.items, domain.CartItem{Product: product, Quantity: 1})
	s.persist(ctx)
}

// Remove drops the line for productID. Removing an absent product is a no-op.
func (s *Store) Remove(ctx context.Context, productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(ctx, productID)
}

// UpdateQuantity sets the line quantity for productID. Quantities below 1
// remove the line instead; there is no upper clamp.
func (s *Store) UpdateQuantity(ctx context.Context, productID string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if quantity < 1 {
		s.removeLocked(ctx, productID)
		return
	}
	for i := range s.items {
		if s.items[i].ID == productID {
			s.items[i].Quantity = quantity
			s.persist(ctx)
			return
		}
	}
}

// Clear empties the cart.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.persist(ctx)
}

// Items returns a copy of the current line items in insertion order.
func (s *Store) Items() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.CartItem, len(s.items))
	copy(out, s.items)
	return out
}

// Total is the sum of price times quantity over all lines, recomputed on
// every call.
func (s *Store) Total() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total int64
	for _, item := range s.items {
		total += item.LineTotal()
	}
	return total
}

// Count is the sum of quantities over all lines, recomputed on every call.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}

// IsOpen reports whether the cart overview UI is shown.
func (s *Store) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

// SetOpen toggles the cart overview UI. The flag is not persisted.
func (s *Store) SetOpen(open bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = open
}

func (s *Store) removeLocked(ctx context.Context, productID string) {
	for i := range s.items {
		if s.items[i].ID == productID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.persist(ctx)
			return
		}
	}
}

func (s *Store) persist(ctx context.Context) {
	items := s.items
	if items == nil {
		items = []domain.CartItem{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		s.logger.Warnw("encode cart", "error", err)
		return
	}
	if err := s.storage.Put(ctx, storageKey, raw); err != nil {
		s.logger.Warnw("persist cart", "error", err)
	}
}
