// Package memory implements the domain store interfaces with mutex-guarded
// in-process maps. Iteration order is insertion order, so listings are
// stable across calls.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/alanyoungcy/databond/internal/domain"
)

// AssetStore is an in-memory domain.AssetStore.
type AssetStore struct {
	mu     sync.RWMutex
	assets map[string]domain.DataAsset
	order  []string
}

// NewAssetStore creates an empty AssetStore.
func NewAssetStore() *AssetStore {
	return &AssetStore{
		assets: make(map[string]domain.DataAsset),
	}
}

// Put inserts or replaces the asset keyed by its ID. Re-registering an
// existing ID overwrites the record in place and keeps its original position
// in the listing order.
func (s *AssetStore) Put(_ context.Context, asset domain.DataAsset) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.assets[asset.AssetID]; !exists {
		s.order = append(s.order, asset.AssetID)
	}
	s.assets[asset.AssetID] = asset
	return nil
}

// Get returns the asset for the given ID, or domain.ErrNotFound.
func (s *AssetStore) Get(_ context.Context, id string) (domain.DataAsset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	asset, ok := s.assets[id]
	if !ok {
		return domain.DataAsset{}, fmt.Errorf("asset %s: %w", id, domain.ErrNotFound)
	}
	return asset, nil
}

// List returns all assets in registration order.
func (s *AssetStore) List(_ context.Context) ([]domain.DataAsset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.DataAsset, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.assets[id])
	}
	return out, nil
}

// Count returns the number of registered assets.
func (s *AssetStore) Count(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.assets)), nil
}

var _ domain.AssetStore = (*AssetStore)(nil)
