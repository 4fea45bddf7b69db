package editor

import (
	"math/rand"

	"neuroviz/internal/model"
	"neuroviz/internal/nn"
)

// AddNeuron appends one neuron to the named layer and wires it to every
// neuron of the neighboring layers with fresh random weights.
type AddNeuron struct {
	LayerIndex int
	Rand       *rand.Rand
	IDs        func() string
}

func (AddNeuron) Name() string {
	return "add_neuron"
}

func (o AddNeuron) Applicable(net model.Network) bool {
	return o.LayerIndex >= 0 && o.LayerIndex < len(net.Layers)
}

func (o AddNeuron) Apply(net model.Network) model.Network {
	if !o.Applicable(net) {
		return net
	}

	out := nn.Clone(net)
	layer := &out.Layers[o.LayerIndex]
	last := layer.Neurons[len(layer.Neurons)-1]

	neuron := model.Neuron{
		ID:          newID(o.IDs),
		LayerIndex:  o.LayerIndex,
		NeuronIndex: len(layer.Neurons),
		X:           last.X,
		Y:           last.Y + nn.NeuronSpacingY,
	}
	layer.Neurons = append(layer.Neurons, neuron)

	if o.LayerIndex > 0 {
		for _, src := range out.Layers[o.LayerIndex-1].Neurons {
			out.Connections = append(out.Connections, model.Connection{
				ID:           newID(o.IDs),
				FromNeuronID: src.ID,
				ToNeuronID:   neuron.ID,
				Weight:       randWeight(o.Rand),
			})
		}
	}
	if o.LayerIndex < len(out.Layers)-1 {
		for _, dst := range out.Layers[o.LayerIndex+1].Neurons {
			out.Connections = append(out.Connections, model.Connection{
				ID:           newID(o.IDs),
				FromNeuronID: neuron.ID,
				ToNeuronID:   dst.ID,
				Weight:       randWeight(o.Rand),
			})
		}
	}
	return out
}

// RemoveNeuron deletes the named neuron and every connection touching it.
// The last neuron of a layer cannot be removed: every layer keeps at least
// one neuron at all times.
type RemoveNeuron struct {
	NeuronID string
}

func (RemoveNeuron) Name() string {
	return "remove_neuron"
}

func (o RemoveNeuron) Applicable(net model.Network) bool {
	layerIdx, ok := nn.LayerOf(net, o.NeuronID)
	if !ok {
		return false
	}
	return len(net.Layers[layerIdx].Neurons) > 1
}

func (o RemoveNeuron) Apply(net model.Network) model.Network {
	if !o.Applicable(net) {
		return net
	}

	out := nn.Clone(net)
	layerIdx, _ := nn.LayerOf(out, o.NeuronID)
	layer := &out.Layers[layerIdx]
	kept := layer.Neurons[:0]
	for _, neuron := range layer.Neurons {
		if neuron.ID == o.NeuronID {
			continue
		}
		kept = append(kept, neuron)
	}
	layer.Neurons = kept

	dropConnections(&out, func(conn model.Connection) bool {
		return conn.FromNeuronID == o.NeuronID || conn.ToNeuronID == o.NeuronID
	})
	reindex(&out)
	return out
}
