package nn

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"
)

var (
	ErrActivationExists   = errors.New("activation already registered")
	ErrActivationNotFound = errors.New("activation not found")
)

type ActivationFunc func(x float64) float64

// ActivationSpec pairs an activation with its derivative. Derivative takes
// the already-computed output y, not the pre-activation sum; for sigmoid,
// relu and tanh the local derivative has an exact closed form in y and the
// backward pass depends on that convention.
type ActivationSpec struct {
	Name       string
	Value      ActivationFunc
	Derivative ActivationFunc
}

var activationRegistry = struct {
	mu sync.RWMutex
	m  map[string]ActivationSpec
}{
	m: make(map[string]ActivationSpec),
}

func init() {
	initializeBuiltInActivations()
}

func initializeBuiltInActivations() {
	MustRegisterActivation(ActivationSpec{
		Name: "sigmoid",
		Value: func(x float64) float64 {
			return 1.0 / (1.0 + math.Exp(-x))
		},
		Derivative: func(y float64) float64 {
			return y * (1 - y)
		},
	})
	MustRegisterActivation(ActivationSpec{
		Name: "relu",
		Value: func(x float64) float64 {
			if x < 0 {
				return 0
			}
			return x
		},
		Derivative: func(y float64) float64 {
			if y > 0 {
				return 1
			}
			return 0
		},
	})
	MustRegisterActivation(ActivationSpec{
		Name:  "tanh",
		Value: math.Tanh,
		Derivative: func(y float64) float64 {
			return 1 - y*y
		},
	})
}

func RegisterActivation(spec ActivationSpec) error {
	if spec.Name == "" {
		return errors.New("activation name is required")
	}
	if spec.Value == nil {
		return errors.New("activation value function is required")
	}
	if spec.Derivative == nil {
		return errors.New("activation derivative function is required")
	}

	activationRegistry.mu.Lock()
	defer activationRegistry.mu.Unlock()

	if _, exists := activationRegistry.m[spec.Name]; exists {
		return fmt.Errorf("%w: %s", ErrActivationExists, spec.Name)
	}
	activationRegistry.m[spec.Name] = spec
	return nil
}

func MustRegisterActivation(spec ActivationSpec) {
	if err := RegisterActivation(spec); err != nil {
		panic(err)
	}
}

func GetActivation(name string) (ActivationSpec, error) {
	activationRegistry.mu.RLock()
	spec, ok := activationRegistry.m[name]
	activationRegistry.mu.RUnlock()
	if !ok {
		return ActivationSpec{}, fmt.Errorf("%w: %s", ErrActivationNotFound, name)
	}
	return spec, nil
}

func ListActivations() []string {
	activationRegistry.mu.RLock()
	defer activationRegistry.mu.RUnlock()

	names := make([]string, 0, len(activationRegistry.m))
	for name := range activationRegistry.m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func resetActivationRegistryForTests() {
	activationRegistry.mu.Lock()
	activationRegistry.m = make(map[string]ActivationSpec)
	activationRegistry.mu.Unlock()
	initializeBuiltInActivations()
}
