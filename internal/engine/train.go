package engine

import (
	"fmt"

	"neuroviz/internal/model"
	"neuroviz/internal/nn"
)

// TrainStep performs exactly one forward pass, one backward error
// propagation, and one weight/bias update against the network's current
// input and target values. It returns the updated network and the
// mean-squared error over the output layer. Derivatives are evaluated on the
// already-computed activation output, the convention the activation registry
// documents.
func TrainStep(net model.Network, learningRate float64) (model.Network, float64, error) {
	spec, err := nn.GetActivation(net.ActivationFunction)
	if err != nil {
		return model.Network{}, 0, fmt.Errorf("training step: %w", err)
	}

	out, err := Forward(net)
	if err != nil {
		return model.Network{}, 0, err
	}

	outputIdx := len(out.Layers) - 1
	deltaByID := make(map[string]float64)

	// Output layer: error against target (0 when unset), delta scaled by the
	// local derivative, squared errors accumulated into the loss.
	sumSquaredError := 0.0
	for ni := range out.Layers[outputIdx].Neurons {
		neuron := &out.Layers[outputIdx].Neurons[ni]
		target := 0.0
		if neuron.Target != nil {
			target = *neuron.Target
		}
		errValue := target - neuron.Activation
		delta := errValue * spec.Derivative(neuron.Activation)
		neuron.Error = &errValue
		neuron.Delta = &delta
		deltaByID[neuron.ID] = delta
		sumSquaredError += errValue * errValue
	}
	loss := sumSquaredError / float64(len(out.Layers[outputIdx].Neurons))

	outgoing := make(map[string][]model.Connection)
	for _, conn := range out.Connections {
		outgoing[conn.FromNeuronID] = append(outgoing[conn.FromNeuronID], conn)
	}

	// Hidden layers, second-to-last down to the first hidden layer: each
	// delta is the weighted sum of downstream deltas times the local
	// derivative.
	for li := outputIdx - 1; li >= 1; li-- {
		for ni := range out.Layers[li].Neurons {
			neuron := &out.Layers[li].Neurons[ni]
			sum := 0.0
			for _, conn := range outgoing[neuron.ID] {
				if downstream, ok := deltaByID[conn.ToNeuronID]; ok {
					sum += conn.Weight * downstream
				}
			}
			delta := sum * spec.Derivative(neuron.Activation)
			neuron.Delta = &delta
			deltaByID[neuron.ID] = delta
		}
	}

	activationByID := make(map[string]float64)
	for _, neuron := range nn.AllNeurons(out) {
		activationByID[neuron.ID] = neuron.Activation
	}

	// Weight update. The gradient stays unset when the destination carries
	// no delta so inspection shows exactly what the step touched.
	for ci := range out.Connections {
		conn := &out.Connections[ci]
		delta, ok := deltaByID[conn.ToNeuronID]
		if !ok {
			continue
		}
		gradient := activationByID[conn.FromNeuronID] * delta
		conn.Gradient = &gradient
		conn.Weight += learningRate * gradient
	}

	// Bias update for every non-input neuron with a computed delta.
	for li := 1; li <= outputIdx; li++ {
		for ni := range out.Layers[li].Neurons {
			neuron := &out.Layers[li].Neurons[ni]
			if neuron.Delta == nil {
				continue
			}
			neuron.Bias += learningRate * *neuron.Delta
		}
	}
	return out, loss, nil
}
