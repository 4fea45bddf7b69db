package nn

import (
	"neuroviz/internal/model"
)

// Clone returns a fully independent copy of the network. Propagation and
// editing always go through a clone so callers can hold the prior snapshot
// (for undo or step-by-step animation) without aliasing.
func Clone(net model.Network) model.Network {
	out := net
	out.Layers = make([]model.Layer, len(net.Layers))
	for li, layer := range net.Layers {
		cloned := layer
		cloned.Neurons = make([]model.Neuron, len(layer.Neurons))
		for ni, neuron := range layer.Neurons {
			cloned.Neurons[ni] = cloneNeuron(neuron)
		}
		out.Layers[li] = cloned
	}
	out.Connections = make([]model.Connection, len(net.Connections))
	for ci, conn := range net.Connections {
		out.Connections[ci] = cloneConnection(conn)
	}
	return out
}

func cloneNeuron(n model.Neuron) model.Neuron {
	out := n
	out.Target = cloneFloatPtr(n.Target)
	out.Error = cloneFloatPtr(n.Error)
	out.Delta = cloneFloatPtr(n.Delta)
	return out
}

func cloneConnection(c model.Connection) model.Connection {
	out := c
	out.Gradient = cloneFloatPtr(c.Gradient)
	return out
}

func cloneFloatPtr(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
