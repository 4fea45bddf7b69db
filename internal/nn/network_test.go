package nn

import (
	"testing"

	"neuroviz/internal/model"
)

func TestSeedShape(t *testing.T) {
	net := Seed()

	if err := model.Validate(net); err != nil {
		t.Fatalf("seed network invalid: %v", err)
	}
	if len(net.Layers) != 3 {
		t.Fatalf("expected 3 layers, got %d", len(net.Layers))
	}
	for i, want := range []int{2, 2, 1} {
		if got := len(net.Layers[i].Neurons); got != want {
			t.Fatalf("layer %d: expected %d neurons, got %d", i, want, got)
		}
	}
	if len(net.Connections) != 6 {
		t.Fatalf("expected 6 connections, got %d", len(net.Connections))
	}
	if net.ActivationFunction != "sigmoid" {
		t.Fatalf("expected sigmoid, got %s", net.ActivationFunction)
	}
	if net.Layers[0].Neurons[0].Activation != 1 || net.Layers[0].Neurons[1].Activation != 0 {
		t.Fatalf("unexpected input activations: %+v", net.Layers[0].Neurons)
	}
	output := net.Layers[2].Neurons[0]
	if output.Target == nil || *output.Target != 1 {
		t.Fatalf("expected output target 1, got %+v", output.Target)
	}
}

func TestSeedIsDeterministic(t *testing.T) {
	a, b := Seed(), Seed()
	for i := range a.Connections {
		if a.Connections[i] != b.Connections[i] {
			t.Fatalf("seed connections differ at %d: %+v vs %+v", i, a.Connections[i], b.Connections[i])
		}
	}
}

func TestLookupsFailSoftly(t *testing.T) {
	net := Seed()

	if _, ok := FindNeuron(net, "missing"); ok {
		t.Fatal("expected neuron lookup miss")
	}
	if _, ok := FindConnection(net, "missing"); ok {
		t.Fatal("expected connection lookup miss")
	}
	if _, ok := NeuronAt(net, 7, 0); ok {
		t.Fatal("expected out-of-range layer miss")
	}
	if _, ok := NeuronAt(net, 0, 9); ok {
		t.Fatal("expected out-of-range neuron miss")
	}
	if _, ok := LayerOf(net, "missing"); ok {
		t.Fatal("expected layer-of miss")
	}

	neuron, ok := FindNeuron(net, "hid-1")
	if !ok || neuron.LayerIndex != 1 || neuron.NeuronIndex != 1 {
		t.Fatalf("unexpected hid-1 lookup: %+v ok=%v", neuron, ok)
	}
}

func TestConnectionQueries(t *testing.T) {
	net := Seed()

	if got := len(IncomingConnections(net, "out-0")); got != 2 {
		t.Fatalf("expected 2 incoming to out-0, got %d", got)
	}
	if got := len(OutgoingConnections(net, "in-0")); got != 2 {
		t.Fatalf("expected 2 outgoing from in-0, got %d", got)
	}
	if !HasConnection(net, "in-0", "hid-0") {
		t.Fatal("expected in-0 -> hid-0 to exist")
	}
	if HasConnection(net, "hid-0", "in-0") {
		t.Fatal("did not expect reversed pair")
	}
}

func TestAllNeuronsFlattensInLayerOrder(t *testing.T) {
	net := Seed()
	neurons := AllNeurons(net)
	if len(neurons) != 5 {
		t.Fatalf("expected 5 neurons, got %d", len(neurons))
	}
	for i := 1; i < len(neurons); i++ {
		if neurons[i-1].LayerIndex > neurons[i].LayerIndex {
			t.Fatalf("neurons not in layer order: %+v", neurons)
		}
	}
}

func TestCloneIsIndependent(t *testing.T) {
	net := Seed()
	cloned := Clone(net)

	cloned.Layers[1].Neurons[0].Bias = 99
	cloned.Connections[0].Weight = 99
	*cloned.Layers[2].Neurons[0].Target = 99

	if net.Layers[1].Neurons[0].Bias == 99 {
		t.Fatal("clone shares neuron storage")
	}
	if net.Connections[0].Weight == 99 {
		t.Fatal("clone shares connection storage")
	}
	if *net.Layers[2].Neurons[0].Target == 99 {
		t.Fatal("clone shares target pointer")
	}
}

func TestResetActivationsIdempotent(t *testing.T) {
	net := Seed()
	net.Layers[1].Neurons[0].Activation = 0.75
	errValue, delta, gradient := 0.1, 0.2, 0.3
	net.Layers[2].Neurons[0].Error = &errValue
	net.Layers[2].Neurons[0].Delta = &delta
	net.Connections[4].Gradient = &gradient

	once := ResetActivations(net)
	if once.Layers[1].Neurons[0].Activation != 0 {
		t.Fatal("expected hidden activation cleared")
	}
	if once.Layers[0].Neurons[0].Activation != 1 {
		t.Fatal("input activations must survive reset")
	}
	if once.Layers[2].Neurons[0].Error != nil || once.Layers[2].Neurons[0].Delta != nil {
		t.Fatal("expected transient training outputs cleared")
	}
	if once.Connections[4].Gradient != nil {
		t.Fatal("expected gradient cleared")
	}
	if once.Layers[2].Neurons[0].Target == nil {
		t.Fatal("target must survive reset")
	}

	twice := ResetActivations(once)
	for li := range twice.Layers {
		for ni := range twice.Layers[li].Neurons {
			if twice.Layers[li].Neurons[ni].Activation != once.Layers[li].Neurons[ni].Activation {
				t.Fatal("second reset changed activations")
			}
		}
	}
}

func TestSetNeuronField(t *testing.T) {
	net := Seed()

	updated := SetNeuronField(net, "hid-0", FieldBias, 0.25)
	neuron, _ := FindNeuron(updated, "hid-0")
	if neuron.Bias != 0.25 {
		t.Fatalf("expected bias 0.25, got %f", neuron.Bias)
	}
	if got, _ := FindNeuron(net, "hid-0"); got.Bias != 0 {
		t.Fatal("SetNeuronField mutated the input network")
	}

	updated = SetNeuronField(net, "in-1", FieldActivation, 0.9)
	if neuron, _ := FindNeuron(updated, "in-1"); neuron.Activation != 0.9 {
		t.Fatalf("expected activation 0.9, got %f", neuron.Activation)
	}

	updated = SetNeuronField(net, "hid-1", FieldTarget, 0.4)
	if neuron, _ := FindNeuron(updated, "hid-1"); neuron.Target == nil || *neuron.Target != 0.4 {
		t.Fatalf("expected target 0.4, got %+v", neuron.Target)
	}
}

func TestSetNeuronFieldRejections(t *testing.T) {
	net := Seed()

	if updated := SetNeuronField(net, "missing", FieldBias, 1); !sameNetwork(t, net, updated) {
		t.Fatal("unknown id must be a no-op")
	}
	if updated := SetNeuronField(net, "hid-0", "weight", 1); !sameNetwork(t, net, updated) {
		t.Fatal("weight is not a neuron key")
	}
	if updated := SetConnectionField(net, "conn-0", "bias", 1); !sameNetwork(t, net, updated) {
		t.Fatal("bias is not a connection key")
	}
	if updated := SetConnectionField(net, "missing", FieldWeight, 1); !sameNetwork(t, net, updated) {
		t.Fatal("unknown connection must be a no-op")
	}
}

func TestSetConnectionField(t *testing.T) {
	net := Seed()
	updated := SetConnectionField(net, "conn-2", FieldWeight, -0.9)
	conn, _ := FindConnection(updated, "conn-2")
	if conn.Weight != -0.9 {
		t.Fatalf("expected weight -0.9, got %f", conn.Weight)
	}
	if original, _ := FindConnection(net, "conn-2"); original.Weight != -0.3 {
		t.Fatal("SetConnectionField mutated the input network")
	}
}

func sameNetwork(t *testing.T, a, b model.Network) bool {
	t.Helper()
	if len(a.Layers) != len(b.Layers) || len(a.Connections) != len(b.Connections) {
		return false
	}
	for li := range a.Layers {
		if len(a.Layers[li].Neurons) != len(b.Layers[li].Neurons) {
			return false
		}
		for ni := range a.Layers[li].Neurons {
			x, y := a.Layers[li].Neurons[ni], b.Layers[li].Neurons[ni]
			if x.ID != y.ID || x.Bias != y.Bias || x.Activation != y.Activation {
				return false
			}
		}
	}
	for ci := range a.Connections {
		if a.Connections[ci].ID != b.Connections[ci].ID || a.Connections[ci].Weight != b.Connections[ci].Weight {
			return false
		}
	}
	return true
}
