package nn

import (
	"neuroviz/internal/model"
)

// Canvas geometry shared by the seed network and the editor: layers advance
// left to right, neurons stack top to bottom.
const (
	LayerSpacingX  = 160.0
	NeuronSpacingY = 90.0
	OriginX        = 120.0
	OriginY        = 120.0
)

// Seed builds the fixed 2-2-1 starting topology: two input neurons with
// activations 1 and 0, two hidden neurons, one output neuron with target 1,
// fully connected with fixed weights and sigmoid activation. Every id is
// deterministic so tests can reproduce runs exactly.
func Seed() model.Network {
	target := 1.0
	layers := []model.Layer{
		{ID: "layer-in", Neurons: []model.Neuron{
			{ID: "in-0", LayerIndex: 0, NeuronIndex: 0, X: OriginX, Y: OriginY, Activation: 1},
			{ID: "in-1", LayerIndex: 0, NeuronIndex: 1, X: OriginX, Y: OriginY + NeuronSpacingY, Activation: 0},
		}},
		{ID: "layer-hid", Neurons: []model.Neuron{
			{ID: "hid-0", LayerIndex: 1, NeuronIndex: 0, X: OriginX + LayerSpacingX, Y: OriginY},
			{ID: "hid-1", LayerIndex: 1, NeuronIndex: 1, X: OriginX + LayerSpacingX, Y: OriginY + NeuronSpacingY},
		}},
		{ID: "layer-out", Neurons: []model.Neuron{
			{ID: "out-0", LayerIndex: 2, NeuronIndex: 0, X: OriginX + 2*LayerSpacingX, Y: OriginY + NeuronSpacingY/2, Target: &target},
		}},
	}
	connections := []model.Connection{
		{ID: "conn-0", FromNeuronID: "in-0", ToNeuronID: "hid-0", Weight: 0.5},
		{ID: "conn-1", FromNeuronID: "in-1", ToNeuronID: "hid-0", Weight: 0.8},
		{ID: "conn-2", FromNeuronID: "in-0", ToNeuronID: "hid-1", Weight: -0.3},
		{ID: "conn-3", FromNeuronID: "in-1", ToNeuronID: "hid-1", Weight: 0.2},
		{ID: "conn-4", FromNeuronID: "hid-0", ToNeuronID: "out-0", Weight: 0.7},
		{ID: "conn-5", FromNeuronID: "hid-1", ToNeuronID: "out-0", Weight: -0.4},
	}
	return model.Network{
		Layers:             layers,
		Connections:        connections,
		ActivationFunction: "sigmoid",
	}
}

// FindNeuron scans all layers for the neuron with the given id. Absence is a
// normal outcome for callers holding stale selections.
func FindNeuron(net model.Network, id string) (model.Neuron, bool) {
	for _, layer := range net.Layers {
		for _, neuron := range layer.Neurons {
			if neuron.ID == id {
				return neuron, true
			}
		}
	}
	return model.Neuron{}, false
}

// FindConnection looks up a connection by id.
func FindConnection(net model.Network, id string) (model.Connection, bool) {
	for _, conn := range net.Connections {
		if conn.ID == id {
			return conn, true
		}
	}
	return model.Connection{}, false
}

// NeuronAt returns the neuron at (layerIndex, neuronIndex).
func NeuronAt(net model.Network, layerIndex, neuronIndex int) (model.Neuron, bool) {
	if layerIndex < 0 || layerIndex >= len(net.Layers) {
		return model.Neuron{}, false
	}
	layer := net.Layers[layerIndex]
	if neuronIndex < 0 || neuronIndex >= len(layer.Neurons) {
		return model.Neuron{}, false
	}
	return layer.Neurons[neuronIndex], true
}

// AllNeurons flattens every layer's neurons into one slice in layer order.
func AllNeurons(net model.Network) []model.Neuron {
	total := 0
	for _, layer := range net.Layers {
		total += len(layer.Neurons)
	}
	out := make([]model.Neuron, 0, total)
	for _, layer := range net.Layers {
		out = append(out, layer.Neurons...)
	}
	return out
}

// IncomingConnections returns every connection whose destination is the
// given neuron.
func IncomingConnections(net model.Network, neuronID string) []model.Connection {
	var out []model.Connection
	for _, conn := range net.Connections {
		if conn.ToNeuronID == neuronID {
			out = append(out, conn)
		}
	}
	return out
}

// OutgoingConnections returns every connection whose source is the given
// neuron.
func OutgoingConnections(net model.Network, neuronID string) []model.Connection {
	var out []model.Connection
	for _, conn := range net.Connections {
		if conn.FromNeuronID == neuronID {
			out = append(out, conn)
		}
	}
	return out
}

// LayerOf returns the index of the layer owning the neuron.
func LayerOf(net model.Network, neuronID string) (int, bool) {
	for li, layer := range net.Layers {
		for _, neuron := range layer.Neurons {
			if neuron.ID == neuronID {
				return li, true
			}
		}
	}
	return 0, false
}

// HasConnection reports whether a (from, to) pair already exists.
func HasConnection(net model.Network, fromID, toID string) bool {
	for _, conn := range net.Connections {
		if conn.FromNeuronID == fromID && conn.ToNeuronID == toID {
			return true
		}
	}
	return false
}

// ResetActivations returns a copy with every non-input activation set back to
// zero and all transient training outputs (error, delta, gradient) cleared.
// Weights, biases, targets and topology are untouched. Calling it twice is
// the same as calling it once.
func ResetActivations(net model.Network) model.Network {
	out := Clone(net)
	for li := 1; li < len(out.Layers); li++ {
		for ni := range out.Layers[li].Neurons {
			out.Layers[li].Neurons[ni].Activation = 0
		}
	}
	for li := range out.Layers {
		for ni := range out.Layers[li].Neurons {
			out.Layers[li].Neurons[ni].Error = nil
			out.Layers[li].Neurons[ni].Delta = nil
		}
	}
	for ci := range out.Connections {
		out.Connections[ci].Gradient = nil
	}
	return out
}
