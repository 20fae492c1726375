package cart

import (
	"context"
	"sync"
	"time"

	"florist-api-io/api/pkg/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const persistTimeout = 3 * time.Second

// PersistResult reports the outcome of the write that follows a mutation.
// A failed write never undoes the mutation.
type PersistResult struct {
	Err error
	At  time.Time
}

func (r PersistResult) OK() bool {
	return r.Err == nil
}

// State is one shopper's cart: three line collections and the panel flag.
// Every mutation rewrites the whole cart to the store.
type State struct {
	mu     sync.RWMutex
	key    string
	store  Store
	logger *zap.Logger

	lines  map[models.CartCategory][]models.CartLineItem
	isOpen bool
	last   PersistResult
}

// NewState returns an empty cart bound to key in store.
func NewState(key string, store Store, logger *zap.Logger) *State {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &State{
		key:    key,
		store:  store,
		logger: logger,
		lines:  make(map[models.CartCategory][]models.CartLineItem, len(models.CartCategories)),
	}
	s.replace(models.EmptyCartSnapshot())
	return s
}

// Hydrate builds the cart from whatever the store holds under key. It never
// fails: unreadable data is logged and treated as an empty cart.
func Hydrate(ctx context.Context, key string, store Store, logger *zap.Logger) *State {
	s := NewState(key, store, logger)

	snapshot, err := Load(ctx, store, key)
	if err != nil {
		s.logger.Warn("discarding stored cart", zap.String("key", key), zap.Error(err))
	}
	s.replace(snapshot)
	return s
}

func (s *State) replace(snapshot models.CartSnapshot) {
	s.lines[models.CartFlower] = snapshot.Flowers
	s.lines[models.CartComplement] = snapshot.Complements
	s.lines[models.CartBreakfast] = snapshot.Breakfasts
}

// AddLine merges item into category: an existing line with the same id gets
// the quantities summed, otherwise the item is appended.
func (s *State) AddLine(ctx context.Context, category models.CartCategory, item models.CartLineItem) PersistResult {
	if item.Quantity < 1 {
		item.Quantity = 1
	}
	if category != models.CartFlower {
		item.DiscountPercentage = nil
		item.FinalUnitPrice = nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.lines[category]
	if idx := indexOf(lines, item.Id); idx >= 0 {
		lines[idx].Quantity += item.Quantity
	} else {
		s.lines[category] = append(lines, item)
	}
	return s.persist(ctx)
}

// RemoveLine deletes the line with id; absent ids are ignored.
func (s *State) RemoveLine(ctx context.Context, category models.CartCategory, id int) PersistResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.removeLocked(category, id)
	return s.persist(ctx)
}

// SetQuantity overwrites the quantity of the line with id. A quantity of zero
// or less removes the line; absent ids are ignored.
func (s *State) SetQuantity(ctx context.Context, category models.CartCategory, id, quantity int) PersistResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		s.removeLocked(category, id)
		return s.persist(ctx)
	}

	lines := s.lines[category]
	if idx := indexOf(lines, id); idx >= 0 {
		lines[idx].Quantity = quantity
	}
	return s.persist(ctx)
}

// Clear empties every collection.
func (s *State) Clear(ctx context.Context) PersistResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.replace(models.EmptyCartSnapshot())
	return s.persist(ctx)
}

func (s *State) removeLocked(category models.CartCategory, id int) {
	lines := s.lines[category]
	idx := indexOf(lines, id)
	if idx < 0 {
		return
	}
	s.lines[category] = append(lines[:idx:idx], lines[idx+1:]...)
}

// ItemCount sums quantities across all collections.
func (s *State) ItemCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.itemCountLocked()
}

func (s *State) itemCountLocked() int {
	count := 0
	for _, category := range models.CartCategories {
		for _, line := range s.lines[category] {
			count += line.Quantity
		}
	}
	return count
}

// Subtotal is the exact sum of effective price times quantity over every
// line, rounded to cents once at the end.
func (s *State) Subtotal() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.subtotalLocked()
}

func (s *State) subtotalLocked() decimal.Decimal {
	total := decimal.Zero
	for _, category := range models.CartCategories {
		for _, line := range s.lines[category] {
			total = total.Add(line.EffectivePrice().Mul(decimal.NewFromInt(int64(line.Quantity))))
		}
	}
	return total.Round(2)
}

// Lines returns a copy of one collection.
func (s *State) Lines(category models.CartCategory) []models.CartLineItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]models.CartLineItem{}, s.lines[category]...)
}

// Snapshot returns a copy of the persisted part of the cart.
func (s *State) Snapshot() models.CartSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.snapshotLocked()
}

func (s *State) snapshotLocked() models.CartSnapshot {
	return models.CartSnapshot{
		Flowers:     append([]models.CartLineItem{}, s.lines[models.CartFlower]...),
		Complements: append([]models.CartLineItem{}, s.lines[models.CartComplement]...),
		Breakfasts:  append([]models.CartLineItem{}, s.lines[models.CartBreakfast]...),
	}
}

// NextSyntheticID returns an id lower than any line in category and below
// zero, so generated lines never merge with catalog products.
func (s *State) NextSyntheticID(category models.CartCategory) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lowest := 0
	for _, line := range s.lines[category] {
		if line.Id < lowest {
			lowest = line.Id
		}
	}
	return lowest - 1
}

func (s *State) OpenPanel() {
	s.mu.Lock()
	s.isOpen = true
	s.mu.Unlock()
}

func (s *State) ClosePanel() {
	s.mu.Lock()
	s.isOpen = false
	s.mu.Unlock()
}

func (s *State) TogglePanel() {
	s.mu.Lock()
	s.isOpen = !s.isOpen
	s.mu.Unlock()
}

func (s *State) IsOpen() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isOpen
}

// LastPersist reports the most recent write.
func (s *State) LastPersist() PersistResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last
}

// Summary bundles the collections, derived totals and flags.
func (s *State) Summary() models.CartSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return models.CartSummary{
		CartSnapshot: s.snapshotLocked(),
		ItemCount:    s.itemCountLocked(),
		Subtotal:     s.subtotalLocked(),
		IsOpen:       s.isOpen,
		Persisted:    s.last.OK(),
	}
}

// persist must be called with s.mu held.
func (s *State) persist(ctx context.Context) PersistResult {
	ctx, cancel := context.WithTimeout(ctx, persistTimeout)
	defer cancel()

	err := Save(ctx, s.store, s.key, s.snapshotLocked())
	if err != nil {
		s.logger.Error("cart persist failed", zap.String("key", s.key), zap.Error(err))
	}
	s.last = PersistResult{Err: err, At: time.Now()}
	return s.last
}

func indexOf(lines []models.CartLineItem, id int) int {
	for i, line := range lines {
		if line.Id == id {
			return i
		}
	}
	return -1
}
