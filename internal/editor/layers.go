package editor

import (
	"math/rand"

	"neuroviz/internal/model"
	"neuroviz/internal/nn"
)

// AddLayer inserts one new hidden layer immediately before the output layer.
// The new layer copies the neuron count of the layer that was previously
// last-before-output, removes the connections that would now skip a layer,
// and fully connects both sides with fresh random weights.
type AddLayer struct {
	Rand *rand.Rand
	IDs  func() string
}

func (AddLayer) Name() string {
	return "add_layer"
}

func (AddLayer) Applicable(net model.Network) bool {
	return len(net.Layers) >= model.MinLayers && len(net.Layers) < model.MaxLayers
}

func (o AddLayer) Apply(net model.Network) model.Network {
	if !o.Applicable(net) {
		return net
	}

	out := nn.Clone(net)
	outputIdx := len(out.Layers) - 1
	ref := out.Layers[outputIdx-1]

	// Center the new neurons on the reference layer, one layer spacing to
	// the right; the output layer slides right to make room.
	centerY := meanY(ref)
	newX := meanX(ref) + nn.LayerSpacingX
	startY := centerY - float64(len(ref.Neurons)-1)*nn.NeuronSpacingY/2

	newLayer := model.Layer{ID: newID(o.IDs)}
	for i := 0; i < len(ref.Neurons); i++ {
		newLayer.Neurons = append(newLayer.Neurons, model.Neuron{
			ID: newID(o.IDs),
			X:  newX,
			Y:  startY + float64(i)*nn.NeuronSpacingY,
		})
	}

	refIDs := neuronIDSet(ref)
	outputIDs := neuronIDSet(out.Layers[outputIdx])
	dropConnections(&out, func(conn model.Connection) bool {
		_, fromRef := refIDs[conn.FromNeuronID]
		_, toOutput := outputIDs[conn.ToNeuronID]
		return fromRef && toOutput
	})

	for ni := range out.Layers[outputIdx].Neurons {
		out.Layers[outputIdx].Neurons[ni].X += nn.LayerSpacingX
	}

	out.Layers = append(out.Layers[:outputIdx], append([]model.Layer{newLayer}, out.Layers[outputIdx:]...)...)
	reindex(&out)

	inserted := out.Layers[len(out.Layers)-2]
	fullyConnect(&out, out.Layers[len(out.Layers)-3], inserted, o.Rand, o.IDs)
	fullyConnect(&out, inserted, out.Layers[len(out.Layers)-1], o.Rand, o.IDs)
	return out
}

// RemoveLayer deletes the last hidden layer together with every connection
// touching it, then reconnects the layer before it to the output layer so no
// gap remains.
type RemoveLayer struct {
	Rand *rand.Rand
	IDs  func() string
}

func (RemoveLayer) Name() string {
	return "remove_layer"
}

func (RemoveLayer) Applicable(net model.Network) bool {
	return len(net.Layers) > model.MinLayers
}

func (o RemoveLayer) Apply(net model.Network) model.Network {
	if !o.Applicable(net) {
		return net
	}

	out := nn.Clone(net)
	removedIdx := len(out.Layers) - 2
	removedIDs := neuronIDSet(out.Layers[removedIdx])

	dropConnections(&out, func(conn model.Connection) bool {
		_, fromRemoved := removedIDs[conn.FromNeuronID]
		_, toRemoved := removedIDs[conn.ToNeuronID]
		return fromRemoved || toRemoved
	})

	out.Layers = append(out.Layers[:removedIdx], out.Layers[removedIdx+1:]...)
	reindex(&out)

	outputIdx := len(out.Layers) - 1
	for ni := range out.Layers[outputIdx].Neurons {
		out.Layers[outputIdx].Neurons[ni].X -= nn.LayerSpacingX
	}

	fullyConnect(&out, out.Layers[outputIdx-1], out.Layers[outputIdx], o.Rand, o.IDs)
	return out
}
