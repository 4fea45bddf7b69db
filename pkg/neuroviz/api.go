// Package neuroviz is the public facade over the network model, graph
// editor, propagation engine and session store. A UI holds one Client and
// drives a named session: every mutating call loads the current snapshot,
// applies one operation, persists the result and returns it.
package neuroviz

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"neuroviz/internal/editor"
	"neuroviz/internal/engine"
	"neuroviz/internal/model"
	"neuroviz/internal/nn"
	"neuroviz/internal/storage"
)

var ErrSessionNotFound = errors.New("session not found")

type Options struct {
	StoreKind string
	DBPath    string
	// RandSeed fixes the weight source for reproducible runs; 0 seeds from
	// the clock.
	RandSeed int64
}

type Client struct {
	store storage.Store
	rng   *rand.Rand
	ids   func() string
}

func New(ctx context.Context, opts Options) (*Client, error) {
	store, err := storage.NewStore(opts.StoreKind, opts.DBPath)
	if err != nil {
		return nil, err
	}
	if err := store.Init(ctx); err != nil {
		return nil, err
	}

	seed := opts.RandSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Client{
		store: store,
		rng:   rand.New(rand.NewSource(seed)),
		ids:   uuid.NewString,
	}, nil
}

func (c *Client) Close() error {
	return storage.CloseIfSupported(c.store)
}

// Create starts a session from the deterministic seed topology.
func (c *Client) Create(ctx context.Context, name string) (model.Network, error) {
	net := nn.Seed()
	if err := c.store.SaveNetwork(ctx, name, net); err != nil {
		return model.Network{}, err
	}
	return net, nil
}

func (c *Client) Get(ctx context.Context, name string) (model.Network, bool, error) {
	return c.store.GetNetwork(ctx, name)
}

func (c *Client) List(ctx context.Context) ([]string, error) {
	return c.store.ListNetworks(ctx)
}

func (c *Client) Delete(ctx context.Context, name string) error {
	return c.store.DeleteNetwork(ctx, name)
}

func (c *Client) AddLayer(ctx context.Context, name string) (model.Network, error) {
	return c.apply(ctx, name, editor.AddLayer{Rand: c.rng, IDs: c.ids})
}

func (c *Client) RemoveLayer(ctx context.Context, name string) (model.Network, error) {
	return c.apply(ctx, name, editor.RemoveLayer{Rand: c.rng, IDs: c.ids})
}

func (c *Client) AddNeuron(ctx context.Context, name string, layerIndex int) (model.Network, error) {
	return c.apply(ctx, name, editor.AddNeuron{LayerIndex: layerIndex, Rand: c.rng, IDs: c.ids})
}

func (c *Client) RemoveNeuron(ctx context.Context, name, neuronID string) (model.Network, error) {
	return c.apply(ctx, name, editor.RemoveNeuron{NeuronID: neuronID})
}

func (c *Client) Connect(ctx context.Context, name, fromID, toID string) (model.Network, error) {
	return c.apply(ctx, name, editor.Connect{FromID: fromID, ToID: toID, Rand: c.rng, IDs: c.ids})
}

func (c *Client) Disconnect(ctx context.Context, name, connectionID string) (model.Network, error) {
	return c.apply(ctx, name, editor.Disconnect{ConnectionID: connectionID})
}

// SetNeuronField writes one inspector field (bias, activation, target) of
// the named neuron.
func (c *Client) SetNeuronField(ctx context.Context, name, neuronID, key string, value float64) (model.Network, error) {
	net, err := c.load(ctx, name)
	if err != nil {
		return model.Network{}, err
	}
	updated := nn.SetNeuronField(net, neuronID, key, value)
	return updated, c.store.SaveNetwork(ctx, name, updated)
}

// SetConnectionField writes one inspector field (weight) of the named
// connection.
func (c *Client) SetConnectionField(ctx context.Context, name, connectionID, key string, value float64) (model.Network, error) {
	net, err := c.load(ctx, name)
	if err != nil {
		return model.Network{}, err
	}
	updated := nn.SetConnectionField(net, connectionID, key, value)
	return updated, c.store.SaveNetwork(ctx, name, updated)
}

func (c *Client) Forward(ctx context.Context, name string) (model.Network, error) {
	net, err := c.load(ctx, name)
	if err != nil {
		return model.Network{}, err
	}
	updated, err := engine.Forward(net)
	if err != nil {
		return model.Network{}, err
	}
	return updated, c.store.SaveNetwork(ctx, name, updated)
}

// ForwardUntil propagates through untilLayer only; an animating caller
// invokes it with increasing layer indexes on its own timer.
func (c *Client) ForwardUntil(ctx context.Context, name string, untilLayer int) (model.Network, error) {
	net, err := c.load(ctx, name)
	if err != nil {
		return model.Network{}, err
	}
	updated, err := engine.ForwardUntil(net, untilLayer)
	if err != nil {
		return model.Network{}, err
	}
	return updated, c.store.SaveNetwork(ctx, name, updated)
}

func (c *Client) Train(ctx context.Context, name string, learningRate float64) (model.Network, float64, error) {
	net, err := c.load(ctx, name)
	if err != nil {
		return model.Network{}, 0, err
	}
	updated, loss, err := engine.TrainStep(net, learningRate)
	if err != nil {
		return model.Network{}, 0, err
	}
	return updated, loss, c.store.SaveNetwork(ctx, name, updated)
}

func (c *Client) Reset(ctx context.Context, name string) (model.Network, error) {
	net, err := c.load(ctx, name)
	if err != nil {
		return model.Network{}, err
	}
	updated := nn.ResetActivations(net)
	return updated, c.store.SaveNetwork(ctx, name, updated)
}

// Export returns the session's interchange JSON document.
func (c *Client) Export(ctx context.Context, name string) ([]byte, error) {
	net, err := c.load(ctx, name)
	if err != nil {
		return nil, err
	}
	return storage.EncodeNetwork(net)
}

// Import replaces the session with a parsed and validated document. A
// malformed document leaves the session untouched.
func (c *Client) Import(ctx context.Context, name string, data []byte) (model.Network, error) {
	net, err := storage.DecodeNetwork(data)
	if err != nil {
		return model.Network{}, err
	}
	return net, c.store.SaveNetwork(ctx, name, net)
}

func (c *Client) apply(ctx context.Context, name string, op editor.Operator) (model.Network, error) {
	net, err := c.load(ctx, name)
	if err != nil {
		return model.Network{}, err
	}
	updated := op.Apply(net)
	return updated, c.store.SaveNetwork(ctx, name, updated)
}

func (c *Client) load(ctx context.Context, name string) (model.Network, error) {
	net, ok, err := c.store.GetNetwork(ctx, name)
	if err != nil {
		return model.Network{}, err
	}
	if !ok {
		return model.Network{}, fmt.Errorf("%w: %s", ErrSessionNotFound, name)
	}
	return net, nil
}
