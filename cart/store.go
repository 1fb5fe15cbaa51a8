package cart

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"gofalre.io/storefront/models"
)

// Store 維護當前會話的購物車狀態，並將每次變更鏡射到持久化快照。
//
// Identity rule: at most one line may exist per (ProductID, SelectedOptions)
// pair, where the option comparison is strict and order-sensitive. Adding a
// matching identity merges quantities instead of creating a duplicate.
//
// Mutations never fail: a persistence write that cannot complete is logged
// and dropped, and the in-memory state stays authoritative for the session.
type Store struct {
	mu     sync.Mutex
	lines  []models.CartLine
	repo   Repository
	logger *zap.Logger
}

// NewStore builds a store over the given snapshot repository. repo may be nil
// when no persistence medium is available; the store then runs purely
// in-memory and Load is a no-op.
func NewStore(repo Repository, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		repo:   repo,
		logger: logger,
	}
}

// Load rehydrates in-memory state from the persisted snapshot. Idempotent;
// any read failure falls back to the empty cart.
func (s *Store) Load(ctx context.Context) {
	if s.repo == nil {
		return
	}

	lines, err := s.repo.Load(ctx)
	if err != nil {
		s.logger.Warn("Failed to load cart, starting empty", zap.Error(err))
		lines = nil
	}

	s.mu.Lock()
	s.lines = lines
	s.mu.Unlock()
}

// Add inserts the item with quantity 1, or increments the matching line when
// the same (product, options) identity is already in the cart.
func (s *Store) Add(ctx context.Context, item models.CartLine) {
	s.mu.Lock()

	if existing := s.find(item.ProductID, item.SelectedOptions); existing != nil {
		existing.Quantity++
	} else {
		item.Quantity = 1
		s.lines = append(s.lines, item)
	}

	s.mu.Unlock()
	s.persist(ctx)
}

// Decrease decrements the matching line by 1, removing it entirely when the
// quantity reaches zero. Absent identities are a no-op.
func (s *Store) Decrease(ctx context.Context, productID string, options []models.SelectedOption) {
	s.mu.Lock()

	existing := s.find(productID, options)
	if existing == nil {
		s.mu.Unlock()
		return
	}

	if existing.Quantity > 1 {
		existing.Quantity--
	} else {
		s.remove(productID, options)
	}

	s.mu.Unlock()
	s.persist(ctx)
}

// Delete removes the matching line regardless of quantity.
func (s *Store) Delete(ctx context.Context, productID string, options []models.SelectedOption) {
	s.mu.Lock()
	s.remove(productID, options)
	s.mu.Unlock()
	s.persist(ctx)
}

// BulkUpdate applies a signed quantity delta to the matching line. A result
// of zero or below removes the line. When no line matches and the delta is
// positive, the supplied record is inserted with quantity = delta. This is
// the one-shot insert-or-adjust used by quantity steppers.
func (s *Store) BulkUpdate(ctx context.Context, item models.CartLine, delta int64) {
	s.mu.Lock()

	if existing := s.find(item.ProductID, item.SelectedOptions); existing != nil {
		next := int64(existing.Quantity) + delta
		if next <= 0 {
			s.remove(item.ProductID, item.SelectedOptions)
		} else {
			existing.Quantity = uint64(next)
		}
	} else if delta > 0 {
		item.Quantity = uint64(delta)
		s.lines = append(s.lines, item)
	}

	s.mu.Unlock()
	s.persist(ctx)
}

// Clear empties the cart and removes the persisted snapshot entirely.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	s.lines = nil
	s.mu.Unlock()

	if s.repo == nil {
		return
	}
	if err := s.repo.Delete(ctx); err != nil {
		s.logger.Warn("Failed to remove cart snapshot", zap.Error(err))
	}
}

// Lines returns a copy of the current cart contents.
func (s *Store) Lines() []models.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// TotalQuantity 計算購物車內的商品總數
func (s *Store) TotalQuantity() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total uint64
	for i := range s.lines {
		total += s.lines[i].Quantity
	}
	return total
}

// Subtotal 計算購物車小計（以 final unit price 計）
func (s *Store) Subtotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var subtotal float64
	for i := range s.lines {
		subtotal += s.lines[i].LineSubtotal()
	}
	return subtotal
}

// find returns a pointer into s.lines for in-place mutation. Caller holds mu.
func (s *Store) find(productID string, options []models.SelectedOption) *models.CartLine {
	for i := range s.lines {
		if s.lines[i].SameIdentity(productID, options) {
			return &s.lines[i]
		}
	}
	return nil
}

// remove drops the matching line, if any. Caller holds mu.
func (s *Store) remove(productID string, options []models.SelectedOption) {
	for i := range s.lines {
		if s.lines[i].SameIdentity(productID, options) {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			return
		}
	}
}

// persist overwrites the snapshot with the full current list. Failures are
// logged and swallowed so the in-memory cart stays usable.
func (s *Store) persist(ctx context.Context) {
	if s.repo == nil {
		return
	}

	if err := s.repo.Save(ctx, s.Lines()); err != nil {
		s.logger.Warn("Failed to persist cart", zap.Error(err))
	}
}
