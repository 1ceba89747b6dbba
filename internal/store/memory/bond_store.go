package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/alanyoungcy/databond/internal/domain"
)

// BondStore is an in-memory domain.BondStore.
type BondStore struct {
	mu    sync.RWMutex
	bonds map[string]domain.LiquidityBond
	order []string
}

// NewBondStore creates an empty BondStore.
func NewBondStore() *BondStore {
	return &BondStore{
		bonds: make(map[string]domain.LiquidityBond),
	}
}

// Insert stores a new bond keyed by its ID.
func (s *BondStore) Insert(_ context.Context, bond domain.LiquidityBond) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.bonds[bond.BondID]; !exists {
		s.order = append(s.order, bond.BondID)
	}
	s.bonds[bond.BondID] = bond
	return nil
}

// Update replaces an existing bond record.
func (s *BondStore) Update(_ context.Context, bond domain.LiquidityBond) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.bonds[bond.BondID]; !exists {
		return fmt.Errorf("bond %s: %w", bond.BondID, domain.ErrNotFound)
	}
	s.bonds[bond.BondID] = bond
	return nil
}

// Get returns the bond for the given ID, or domain.ErrNotFound.
func (s *BondStore) Get(_ context.Context, id string) (domain.LiquidityBond, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	bond, ok := s.bonds[id]
	if !ok {
		return domain.LiquidityBond{}, fmt.Errorf("bond %s: %w", id, domain.ErrNotFound)
	}
	return bond, nil
}

// List returns all bonds in insertion order.
func (s *BondStore) List(_ context.Context) ([]domain.LiquidityBond, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.LiquidityBond, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.bonds[id])
	}
	return out, nil
}

// ListByStatus returns bonds with an exact status match, in insertion order.
func (s *BondStore) ListByStatus(_ context.Context, status domain.BondStatus) ([]domain.LiquidityBond, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.LiquidityBond
	for _, id := range s.order {
		if b := s.bonds[id]; b.Status == status {
			out = append(out, b)
		}
	}
	return out, nil
}

// Count returns the number of stored bonds.
func (s *BondStore) Count(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.bonds)), nil
}

var _ domain.BondStore = (*BondStore)(nil)
