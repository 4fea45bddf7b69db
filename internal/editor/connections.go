package editor

import (
	"math/rand"

	"neuroviz/internal/model"
	"neuroviz/internal/nn"
)

// Connect creates a random-weight connection between two existing neurons.
// Rejected when either endpoint is unknown, when the edge would not point
// strictly forward, or when the pair is already connected; dragging a
// connection backward is a routine gesture and must simply do nothing.
type Connect struct {
	FromID string
	ToID   string
	Rand   *rand.Rand
	IDs    func() string
}

func (Connect) Name() string {
	return "create_connection"
}

func (o Connect) Applicable(net model.Network) bool {
	fromLayer, ok := nn.LayerOf(net, o.FromID)
	if !ok {
		return false
	}
	toLayer, ok := nn.LayerOf(net, o.ToID)
	if !ok {
		return false
	}
	if fromLayer >= toLayer {
		return false
	}
	return !nn.HasConnection(net, o.FromID, o.ToID)
}

func (o Connect) Apply(net model.Network) model.Network {
	if !o.Applicable(net) {
		return net
	}

	out := nn.Clone(net)
	out.Connections = append(out.Connections, model.Connection{
		ID:           newID(o.IDs),
		FromNeuronID: o.FromID,
		ToNeuronID:   o.ToID,
		Weight:       randWeight(o.Rand),
	})
	return out
}

// Disconnect removes the named connection.
type Disconnect struct {
	ConnectionID string
}

func (Disconnect) Name() string {
	return "delete_connection"
}

func (o Disconnect) Applicable(net model.Network) bool {
	_, ok := nn.FindConnection(net, o.ConnectionID)
	return ok
}

func (o Disconnect) Apply(net model.Network) model.Network {
	if !o.Applicable(net) {
		return net
	}

	out := nn.Clone(net)
	dropConnections(&out, func(conn model.Connection) bool {
		return conn.ID == o.ConnectionID
	})
	return out
}
