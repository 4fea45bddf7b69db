package storage

import (
	"context"

	"neuroviz/internal/model"
)

// Store persists network snapshots by session name. Get reports absence with
// the boolean so callers can distinguish "no such session" from a real
// failure.
type Store interface {
	Init(ctx context.Context) error
	SaveNetwork(ctx context.Context, name string, net model.Network) error
	GetNetwork(ctx context.Context, name string) (model.Network, bool, error)
	DeleteNetwork(ctx context.Context, name string) error
	ListNetworks(ctx context.Context) ([]string, error)
}
