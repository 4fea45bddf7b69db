package model

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrLayerCount        = errors.New("layer count out of range")
	ErrEmptyLayer        = errors.New("layer has no neurons")
	ErrIndexMismatch     = errors.New("neuron index mismatch")
	ErrDanglingEndpoint  = errors.New("connection references unknown neuron")
	ErrBackwardEdge      = errors.New("connection is not strictly forward")
	ErrDuplicateEdge     = errors.New("duplicate connection pair")
	ErrDuplicateID       = errors.New("duplicate identifier")
	ErrNonFiniteValue    = errors.New("non-finite numeric value")
	ErrUnknownActivation = errors.New("unknown activation kind")
)

// validActivations mirrors the built-in registry names; Validate checks the
// persisted kind without importing the registry to keep model dependency-free.
var validActivations = map[string]struct{}{
	"sigmoid": {},
	"relu":    {},
	"tanh":    {},
}

// Validate checks every structural invariant of the aggregate and returns the
// first violation. A nil result means the network is safe to edit and
// propagate.
func Validate(net Network) error {
	if len(net.Layers) < MinLayers || len(net.Layers) > MaxLayers {
		return fmt.Errorf("%w: %d", ErrLayerCount, len(net.Layers))
	}
	if _, ok := validActivations[net.ActivationFunction]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownActivation, net.ActivationFunction)
	}

	layerByNeuron := make(map[string]int)
	for li, layer := range net.Layers {
		if len(layer.Neurons) == 0 {
			return fmt.Errorf("%w: layer %d", ErrEmptyLayer, li)
		}
		for ni, neuron := range layer.Neurons {
			if neuron.ID == "" {
				return fmt.Errorf("%w: empty neuron id in layer %d", ErrDuplicateID, li)
			}
			if _, seen := layerByNeuron[neuron.ID]; seen {
				return fmt.Errorf("%w: neuron %s", ErrDuplicateID, neuron.ID)
			}
			layerByNeuron[neuron.ID] = li
			if neuron.LayerIndex != li || neuron.NeuronIndex != ni {
				return fmt.Errorf("%w: neuron %s has layer=%d index=%d, want layer=%d index=%d",
					ErrIndexMismatch, neuron.ID, neuron.LayerIndex, neuron.NeuronIndex, li, ni)
			}
			if !isFinite(neuron.X) || !isFinite(neuron.Y) {
				return fmt.Errorf("%w: neuron %s position", ErrNonFiniteValue, neuron.ID)
			}
		}
	}

	seenPairs := make(map[[2]string]struct{}, len(net.Connections))
	seenIDs := make(map[string]struct{}, len(net.Connections))
	for _, conn := range net.Connections {
		if _, dup := seenIDs[conn.ID]; dup {
			return fmt.Errorf("%w: connection %s", ErrDuplicateID, conn.ID)
		}
		seenIDs[conn.ID] = struct{}{}

		fromLayer, ok := layerByNeuron[conn.FromNeuronID]
		if !ok {
			return fmt.Errorf("%w: %s -> %s (from)", ErrDanglingEndpoint, conn.FromNeuronID, conn.ToNeuronID)
		}
		toLayer, ok := layerByNeuron[conn.ToNeuronID]
		if !ok {
			return fmt.Errorf("%w: %s -> %s (to)", ErrDanglingEndpoint, conn.FromNeuronID, conn.ToNeuronID)
		}
		if fromLayer >= toLayer {
			return fmt.Errorf("%w: %s (layer %d) -> %s (layer %d)",
				ErrBackwardEdge, conn.FromNeuronID, fromLayer, conn.ToNeuronID, toLayer)
		}
		pair := [2]string{conn.FromNeuronID, conn.ToNeuronID}
		if _, dup := seenPairs[pair]; dup {
			return fmt.Errorf("%w: %s -> %s", ErrDuplicateEdge, conn.FromNeuronID, conn.ToNeuronID)
		}
		seenPairs[pair] = struct{}{}
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
