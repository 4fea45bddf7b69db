// Package editor holds the structural mutation operators applied to a
// network by direct user gestures. Every operator is a no-op when its
// precondition fails: a rejected edit is an ordinary outcome in an
// interactive session, not a fault, so Apply returns the input unchanged
// instead of erroring.
package editor

import (
	"math/rand"

	"github.com/google/uuid"

	"neuroviz/internal/model"
	"neuroviz/internal/nn"
)

// Operator is one structural edit. Applicable reports whether Apply would
// change the network; Apply clones before mutating and never touches the
// caller's snapshot.
type Operator interface {
	Name() string
	Applicable(net model.Network) bool
	Apply(net model.Network) model.Network
}

// randWeight draws a fresh connection weight uniformly from [-1, 1].
func randWeight(rng *rand.Rand) float64 {
	if rng == nil {
		return rand.Float64()*2 - 1
	}
	return rng.Float64()*2 - 1
}

// newID resolves the id source, defaulting to UUIDs.
func newID(ids func() string) string {
	if ids == nil {
		return uuid.NewString()
	}
	return ids()
}

// reindex recomputes every LayerIndex and NeuronIndex after a structural
// change so the dense-index invariant holds again.
func reindex(net *model.Network) {
	for li := range net.Layers {
		for ni := range net.Layers[li].Neurons {
			net.Layers[li].Neurons[ni].LayerIndex = li
			net.Layers[li].Neurons[ni].NeuronIndex = ni
		}
	}
}

// dropConnections removes every connection matching the predicate.
func dropConnections(net *model.Network, match func(model.Connection) bool) {
	kept := net.Connections[:0]
	for _, conn := range net.Connections {
		if match(conn) {
			continue
		}
		kept = append(kept, conn)
	}
	net.Connections = kept
}

// fullyConnect adds a random-weight connection for every (from, to) pair of
// the two layers, skipping pairs that already exist.
func fullyConnect(net *model.Network, from, to model.Layer, rng *rand.Rand, ids func() string) {
	for _, src := range from.Neurons {
		for _, dst := range to.Neurons {
			if nn.HasConnection(*net, src.ID, dst.ID) {
				continue
			}
			net.Connections = append(net.Connections, model.Connection{
				ID:           newID(ids),
				FromNeuronID: src.ID,
				ToNeuronID:   dst.ID,
				Weight:       randWeight(rng),
			})
		}
	}
}

// neuronIDSet collects the ids of a layer's neurons.
func neuronIDSet(layer model.Layer) map[string]struct{} {
	out := make(map[string]struct{}, len(layer.Neurons))
	for _, neuron := range layer.Neurons {
		out[neuron.ID] = struct{}{}
	}
	return out
}

// meanY returns the vertical center of a layer's neurons.
func meanY(layer model.Layer) float64 {
	if len(layer.Neurons) == 0 {
		return 0
	}
	sum := 0.0
	for _, neuron := range layer.Neurons {
		sum += neuron.Y
	}
	return sum / float64(len(layer.Neurons))
}

// meanX returns the horizontal center of a layer's neurons.
func meanX(layer model.Layer) float64 {
	if len(layer.Neurons) == 0 {
		return 0
	}
	sum := 0.0
	for _, neuron := range layer.Neurons {
		sum += neuron.X
	}
	return sum / float64(len(layer.Neurons))
}
