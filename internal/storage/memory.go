package storage

import (
	"context"
	"sort"
	"sync"

	"neuroviz/internal/model"
	"neuroviz/internal/nn"
)

type MemoryStore struct {
	mu       sync.RWMutex
	networks map[string]model.Network
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.networks = make(map[string]model.Network)
	return nil
}

func (s *MemoryStore) SaveNetwork(_ context.Context, name string, net model.Network) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.networks[name] = nn.Clone(net)
	return nil
}

func (s *MemoryStore) GetNetwork(_ context.Context, name string) (model.Network, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	net, ok := s.networks[name]
	if !ok {
		return model.Network{}, false, nil
	}
	return nn.Clone(net), true, nil
}

func (s *MemoryStore) DeleteNetwork(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.networks, name)
	return nil
}

func (s *MemoryStore) ListNetworks(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.networks))
	for name := range s.networks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
