package model

import (
	"errors"
	"math"
	"testing"
)

func validNetwork() Network {
	return Network{
		ActivationFunction: "sigmoid",
		Layers: []Layer{
			{ID: "l0", Neurons: []Neuron{
				{ID: "a", LayerIndex: 0, NeuronIndex: 0},
				{ID: "b", LayerIndex: 0, NeuronIndex: 1},
			}},
			{ID: "l1", Neurons: []Neuron{
				{ID: "c", LayerIndex: 1, NeuronIndex: 0},
			}},
		},
		Connections: []Connection{
			{ID: "e0", FromNeuronID: "a", ToNeuronID: "c", Weight: 0.5},
			{ID: "e1", FromNeuronID: "b", ToNeuronID: "c", Weight: -0.5},
		},
	}
}

func TestValidateAcceptsWellFormedNetwork(t *testing.T) {
	if err := Validate(validNetwork()); err != nil {
		t.Fatalf("expected valid network, got: %v", err)
	}
}

func TestValidateRejections(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Network)
		wantErr error
	}{
		{
			name:    "single layer",
			mutate:  func(n *Network) { n.Layers = n.Layers[:1] },
			wantErr: ErrLayerCount,
		},
		{
			name: "too many layers",
			mutate: func(n *Network) {
				for len(n.Layers) <= MaxLayers {
					n.Layers = append(n.Layers, Layer{ID: "extra", Neurons: []Neuron{{ID: "x"}}})
				}
			},
			wantErr: ErrLayerCount,
		},
		{
			name:    "empty layer",
			mutate:  func(n *Network) { n.Layers[1].Neurons = nil },
			wantErr: ErrEmptyLayer,
		},
		{
			name:    "unknown activation",
			mutate:  func(n *Network) { n.ActivationFunction = "softplus" },
			wantErr: ErrUnknownActivation,
		},
		{
			name:    "stale layer index",
			mutate:  func(n *Network) { n.Layers[1].Neurons[0].LayerIndex = 3 },
			wantErr: ErrIndexMismatch,
		},
		{
			name:    "sparse neuron index",
			mutate:  func(n *Network) { n.Layers[0].Neurons[1].NeuronIndex = 5 },
			wantErr: ErrIndexMismatch,
		},
		{
			name:    "dangling endpoint",
			mutate:  func(n *Network) { n.Connections[0].ToNeuronID = "ghost" },
			wantErr: ErrDanglingEndpoint,
		},
		{
			name: "backward edge",
			mutate: func(n *Network) {
				n.Connections[0].FromNeuronID = "c"
				n.Connections[0].ToNeuronID = "a"
			},
			wantErr: ErrBackwardEdge,
		},
		{
			name: "lateral edge",
			mutate: func(n *Network) {
				n.Connections[0].FromNeuronID = "a"
				n.Connections[0].ToNeuronID = "b"
			},
			wantErr: ErrBackwardEdge,
		},
		{
			name: "duplicate pair",
			mutate: func(n *Network) {
				n.Connections = append(n.Connections, Connection{ID: "e2", FromNeuronID: "a", ToNeuronID: "c"})
			},
			wantErr: ErrDuplicateEdge,
		},
		{
			name: "duplicate connection id",
			mutate: func(n *Network) {
				n.Connections[1].ID = "e0"
			},
			wantErr: ErrDuplicateID,
		},
		{
			name:    "duplicate neuron id",
			mutate:  func(n *Network) { n.Layers[1].Neurons[0].ID = "a" },
			wantErr: ErrDuplicateID,
		},
		{
			name:    "non-finite position",
			mutate:  func(n *Network) { n.Layers[0].Neurons[0].X = math.NaN() },
			wantErr: ErrNonFiniteValue,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			net := validNetwork()
			tc.mutate(&net)
			err := Validate(net)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got: %v", tc.wantErr, err)
			}
		})
	}
}
