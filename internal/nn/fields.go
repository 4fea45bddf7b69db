package nn

import (
	"neuroviz/internal/model"
)

// Property-panel field keys. The inspector writes a single numeric field of
// the selected element by key; unknown ids and keys are ignored so a stale
// selection can never corrupt the network.
const (
	FieldWeight     = "weight"
	FieldBias       = "bias"
	FieldActivation = "activation"
	FieldTarget     = "target"
)

// SetNeuronField returns a copy with one field of the named neuron replaced.
// Supported keys: bias, activation, target. The input is returned unchanged
// when the neuron or key is unknown.
func SetNeuronField(net model.Network, neuronID, key string, value float64) model.Network {
	switch key {
	case FieldBias, FieldActivation, FieldTarget:
	default:
		return net
	}
	if _, ok := FindNeuron(net, neuronID); !ok {
		return net
	}

	out := Clone(net)
	for li := range out.Layers {
		for ni := range out.Layers[li].Neurons {
			if out.Layers[li].Neurons[ni].ID != neuronID {
				continue
			}
			switch key {
			case FieldBias:
				out.Layers[li].Neurons[ni].Bias = value
			case FieldActivation:
				out.Layers[li].Neurons[ni].Activation = value
			case FieldTarget:
				v := value
				out.Layers[li].Neurons[ni].Target = &v
			}
			return out
		}
	}
	return net
}

// SetConnectionField returns a copy with one field of the named connection
// replaced. The only supported key is weight.
func SetConnectionField(net model.Network, connectionID, key string, value float64) model.Network {
	if key != FieldWeight {
		return net
	}
	if _, ok := FindConnection(net, connectionID); !ok {
		return net
	}

	out := Clone(net)
	for ci := range out.Connections {
		if out.Connections[ci].ID == connectionID {
			out.Connections[ci].Weight = value
			return out
		}
	}
	return net
}
