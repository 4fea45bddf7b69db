package engine

import "math"

// LossHistory accumulates the per-step loss of a training run so a chart
// or status line can summarize it without re-running the steps.
type LossHistory struct {
	losses []float64
}

type LossPoint struct {
	Step  int     `json:"step"`
	Value float64 `json:"value"`
}

type LossSummary struct {
	Steps int     `json:"steps"`
	First float64 `json:"first"`
	Last  float64 `json:"last"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Avg   float64 `json:"avg"`
	Std   float64 `json:"std"`
}

func (h *LossHistory) Record(loss float64) {
	h.losses = append(h.losses, loss)
}

func (h *LossHistory) Len() int {
	return len(h.losses)
}

func (h *LossHistory) Summary() LossSummary {
	if len(h.losses) == 0 {
		return LossSummary{}
	}
	summary := LossSummary{
		Steps: len(h.losses),
		First: h.losses[0],
		Last:  h.losses[len(h.losses)-1],
		Min:   minFloat(h.losses),
		Max:   maxFloat(h.losses),
	}
	summary.Avg, summary.Std = avgStd(h.losses)
	return summary
}

// Points downsamples the history to every step-th loss, always keeping the
// final one so the curve ends at the current loss.
func (h *LossHistory) Points(step int) []LossPoint {
	if step <= 0 {
		step = 1
	}
	points := make([]LossPoint, 0, len(h.losses)/step+1)
	for i, loss := range h.losses {
		if i%step == 0 || i == len(h.losses)-1 {
			points = append(points, LossPoint{Step: i + 1, Value: loss})
		}
	}
	return points
}

func avgStd(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	sum := 0.0
	for _, value := range values {
		sum += value
	}
	avg := sum / float64(len(values))
	acc := 0.0
	for _, value := range values {
		diff := value - avg
		acc += diff * diff
	}
	return avg, math.Sqrt(acc / float64(len(values)))
}

func maxFloat(values []float64) float64 {
	max := values[0]
	for _, value := range values[1:] {
		if value > max {
			max = value
		}
	}
	return max
}

func minFloat(values []float64) float64 {
	min := values[0]
	for _, value := range values[1:] {
		if value < min {
			min = value
		}
	}
	return min
}
