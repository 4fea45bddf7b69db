// Package engine computes activations and training updates over a network.
// It never mutates structure and never mutates the caller's snapshot: every
// operation works on an independent clone so the previous state stays intact
// for undo and staged animation.
package engine

import (
	"fmt"

	"neuroviz/internal/model"
	"neuroviz/internal/nn"
)

// Forward computes activations for every layer after the input layer.
func Forward(net model.Network) (model.Network, error) {
	return ForwardUntil(net, len(net.Layers)-1)
}

// ForwardUntil computes activations layer by layer from layer 1 up to and
// including untilLayer (clamped to the last layer). Layer 0 activations are
// caller-supplied inputs and are never recomputed. Each neuron sums
// weight times current source activation over its incoming connections,
// adds its bias, and applies the network's global activation function.
// Layers are processed in increasing order so sources are already updated.
func ForwardUntil(net model.Network, untilLayer int) (model.Network, error) {
	spec, err := nn.GetActivation(net.ActivationFunction)
	if err != nil {
		return model.Network{}, fmt.Errorf("forward propagation: %w", err)
	}

	out := nn.Clone(net)
	last := len(out.Layers) - 1
	if untilLayer > last {
		untilLayer = last
	}

	values := make(map[string]float64)
	for _, neuron := range nn.AllNeurons(out) {
		values[neuron.ID] = neuron.Activation
	}
	incoming := make(map[string][]model.Connection)
	for _, conn := range out.Connections {
		incoming[conn.ToNeuronID] = append(incoming[conn.ToNeuronID], conn)
	}

	for li := 1; li <= untilLayer; li++ {
		for ni := range out.Layers[li].Neurons {
			neuron := &out.Layers[li].Neurons[ni]
			total := neuron.Bias
			for _, conn := range incoming[neuron.ID] {
				total += values[conn.FromNeuronID] * conn.Weight
			}
			neuron.Activation = spec.Value(total)
			values[neuron.ID] = neuron.Activation
		}
	}
	return out, nil
}
