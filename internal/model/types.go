package model

// Neuron is one computational unit. LayerIndex and NeuronIndex locate it in
// the topology; X and Y are presentation coordinates with no semantic weight.
// Target, Error and Delta are optional: Target is only meaningful on the
// output layer, Error and Delta are transient training-step outputs kept for
// inspection.
type Neuron struct {
	ID          string   `json:"id"`
	LayerIndex  int      `json:"layerIndex"`
	NeuronIndex int      `json:"neuronIndex"`
	X           float64  `json:"x"`
	Y           float64  `json:"y"`
	Bias        float64  `json:"bias"`
	Activation  float64  `json:"activation"`
	Target      *float64 `json:"target,omitempty"`
	Error       *float64 `json:"error,omitempty"`
	Delta       *float64 `json:"delta,omitempty"`
}

// Connection is a directed weighted edge between neurons in strictly
// increasing layers. Gradient is a transient training-step output.
type Connection struct {
	ID           string   `json:"id"`
	FromNeuronID string   `json:"fromNeuronId"`
	ToNeuronID   string   `json:"toNeuronId"`
	Weight       float64  `json:"weight"`
	Gradient     *float64 `json:"gradient,omitempty"`
}

// Layer is an ordered group of neurons at one depth. Order determines
// NeuronIndex assignment and default visual stacking.
type Layer struct {
	ID      string   `json:"id"`
	Neurons []Neuron `json:"neurons"`
}

// Network is the root aggregate: layer 0 is input, the last layer is output,
// interior layers are hidden. Connections reference neurons by id only.
// ActivationFunction names the single activation kind applied to every
// non-input neuron.
type Network struct {
	Layers             []Layer      `json:"layers"`
	Connections        []Connection `json:"connections"`
	ActivationFunction string       `json:"activationFunction"`
}

// MaxLayers caps the interactive topology depth; MinLayers keeps at least the
// input and output layers alive.
const (
	MinLayers = 2
	MaxLayers = 10
)
