package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"neuroviz/internal/model"
)

const (
	ansiReset = "\033[0m"
	ansiCyan  = "\033[36m"
	ansiGreen = "\033[32m"
	ansiDim   = "\033[2m"
)

// renderNetwork prints a plain-text view of the network: one block per layer
// with its neurons, then the connection list. Colors are used only when
// stdout is a terminal.
func renderNetwork(w io.Writer, net model.Network, wantColor bool) {
	color := wantColor && isTerminal(w)
	header := func(s string) string {
		if color {
			return ansiCyan + s + ansiReset
		}
		return s
	}
	value := func(s string) string {
		if color {
			return ansiGreen + s + ansiReset
		}
		return s
	}
	dim := func(s string) string {
		if color {
			return ansiDim + s + ansiReset
		}
		return s
	}

	fmt.Fprintf(w, "%s\n", header(fmt.Sprintf("network activation=%s layers=%d connections=%d",
		net.ActivationFunction, len(net.Layers), len(net.Connections))))

	for li, layer := range net.Layers {
		role := "hidden"
		switch li {
		case 0:
			role = "input"
		case len(net.Layers) - 1:
			role = "output"
		}
		fmt.Fprintf(w, "%s\n", header(fmt.Sprintf("layer %d (%s)", li, role)))
		for _, neuron := range layer.Neurons {
			line := fmt.Sprintf("  %s  act=%s bias=%.4f", neuron.ID, value(fmt.Sprintf("%.4f", neuron.Activation)), neuron.Bias)
			if neuron.Target != nil {
				line += fmt.Sprintf(" target=%.4f", *neuron.Target)
			}
			if neuron.Error != nil {
				line += fmt.Sprintf(" error=%.4f", *neuron.Error)
			}
			if neuron.Delta != nil {
				line += fmt.Sprintf(" delta=%.4f", *neuron.Delta)
			}
			fmt.Fprintln(w, line)
		}
	}

	fmt.Fprintf(w, "%s\n", header("connections"))
	for _, conn := range net.Connections {
		line := fmt.Sprintf("  %s  %s -> %s  weight=%.4f", conn.ID, conn.FromNeuronID, conn.ToNeuronID, conn.Weight)
		if conn.Gradient != nil {
			line += dim(fmt.Sprintf(" gradient=%.4f", *conn.Gradient))
		}
		fmt.Fprintln(w, line)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func countNeurons(net model.Network) int {
	total := 0
	for _, layer := range net.Layers {
		total += len(layer.Neurons)
	}
	return total
}
