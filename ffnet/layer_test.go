package ffnet

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestInputLayer(t *testing.T) {
	l, err := NewInputLayer(3, true)
	if err != nil {
		t.Fatalf("NewInputLayer: %v", err)
	}

	if l.Len() != 4 || l.FanOut() != 4 || l.Size() != 3 {
		t.Errorf("Len=%d FanOut=%d Size=%d, want 4 4 3", l.Len(), l.FanOut(), l.Size())
	}
	if diff := cmp.Diff(l.ValuesAsVector(), []float32{0, 0, 0, 1}); diff != "" {
		t.Errorf("Wrong initial values; diff (-got +want)\n%s", diff)
	}

	if err := l.SetInputs([]float32{0.1, 0.2, 0.3}); err != nil {
		t.Fatalf("SetInputs: %v", err)
	}
	if diff := cmp.Diff(l.ValuesAsVector(), []float32{0.1, 0.2, 0.3, 1}); diff != "" {
		t.Errorf("Wrong values after SetInputs; diff (-got +want)\n%s", diff)
	}

	if err := l.SetInputs([]float32{0.1, 0.2, 0.3, 0.4}); !errors.Is(err, ErrConfiguration) {
		t.Errorf("SetInputs with bias slot filled: error = %v, want ErrConfiguration", err)
	}
	if err := l.SetInputs([]float32{0.1}); !errors.Is(err, ErrConfiguration) {
		t.Errorf("SetInputs too short: error = %v, want ErrConfiguration", err)
	}

	if l.ActivationDerivative()(42) != 1 {
		t.Errorf("input layer derivative is not identity")
	}
}

func TestInputLayerWithoutBias(t *testing.T) {
	l, err := NewInputLayer(2, false)
	if err != nil {
		t.Fatalf("NewInputLayer: %v", err)
	}
	if l.Len() != 2 || l.HasBias() {
		t.Errorf("Len=%d HasBias=%v, want 2 false", l.Len(), l.HasBias())
	}

	if _, err := NewInputLayer(-1, false); !errors.Is(err, ErrConfiguration) {
		t.Errorf("NewInputLayer(-1) error = %v, want ErrConfiguration", err)
	}
}

func TestGetOutOfRange(t *testing.T) {
	l, _ := NewInputLayer(2, true)

	if n, err := l.Get(2); err != nil || n.Kind() != BiasNeuron {
		t.Errorf("Get(2) = %v, %v; want bias neuron", n, err)
	}
	for _, i := range []int{-1, 3, 100} {
		if _, err := l.Get(i); !errors.Is(err, ErrIndex) {
			t.Errorf("Get(%d) error = %v, want ErrIndex", i, err)
		}
	}
}

func TestHiddenLayerFanIn(t *testing.T) {
	r := rand.New(rand.NewSource(12345))

	for _, width := range []int{0, 1, 3, 8} {
		for _, bias := range []bool{false, true} {
			prev, err := NewInputLayer(width, bias)
			if err != nil {
				t.Fatalf("NewInputLayer: %v", err)
			}

			h, err := NewHiddenLayer(ConfigFor(5, true, Sigmoid, XavierInit), prev, r)
			if err != nil {
				t.Fatalf("NewHiddenLayer: %v", err)
			}
			if h.Len() != 6 {
				t.Errorf("hidden Len() = %d, want 6", h.Len())
			}

			for i, n := range h.All() {
				if i == 5 {
					if n.Kind() != BiasNeuron {
						t.Errorf("last neuron kind = %v, want bias", n.Kind())
					}
					continue
				}
				w, err := n.Weights()
				if err != nil {
					t.Fatalf("neuron %d: %v", i, err)
				}
				if len(w) != prev.FanOut() {
					t.Errorf("width=%d bias=%v neuron %d has %d weights, want %d", width, bias, i, len(w), prev.FanOut())
				}
			}
		}
	}
}

func TestOutputLayer(t *testing.T) {
	prev, _ := NewInputLayer(2, true)

	out, err := NewOutputLayer(ConfigFor(3, false, Identity, ZeroInit), prev, nil)
	if err != nil {
		t.Fatalf("NewOutputLayer: %v", err)
	}
	if out.Len() != 3 || out.HasBias() {
		t.Errorf("Len=%d HasBias=%v, want 3 false", out.Len(), out.HasBias())
	}
	for _, n := range out.All() {
		if n.Kind() != OutputNeuron {
			t.Errorf("neuron kind = %v, want output", n.Kind())
		}
	}

	if _, err := NewOutputLayer(ConfigFor(3, true, Identity, ZeroInit), prev, nil); !errors.Is(err, ErrConfiguration) {
		t.Errorf("output layer with bias: error = %v, want ErrConfiguration", err)
	}
}

func TestLayerConfigValidation(t *testing.T) {
	prev, _ := NewInputLayer(2, false)
	good := ConfigFor(2, false, Tanh, XavierInit)

	badInit := good
	badInit.WeightInit = func(fanIn int, _ *rand.Rand) []float32 {
		return make([]float32, fanIn+1)
	}
	noActivation := good
	noActivation.Activation = nil
	noDerivative := good
	noDerivative.ActivationDerivative = nil
	noInit := good
	noInit.WeightInit = nil
	negative := good
	negative.Size = -2

	testCases := []struct {
		name string
		cfg  LayerConfig
		prev Layer
	}{
		{name: "initializer wrong length", cfg: badInit, prev: prev},
		{name: "no activation", cfg: noActivation, prev: prev},
		{name: "no derivative", cfg: noDerivative, prev: prev},
		{name: "no initializer", cfg: noInit, prev: prev},
		{name: "negative size", cfg: negative, prev: prev},
		{name: "no previous layer", cfg: good, prev: nil},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewHiddenLayer(tc.cfg, tc.prev, nil); !errors.Is(err, ErrConfiguration) {
				t.Errorf("NewHiddenLayer error = %v, want ErrConfiguration", err)
			}
		})
	}
}

func TestWeightedLayerPropagate(t *testing.T) {
	prev, _ := NewInputLayer(2, true)
	h, err := NewHiddenLayer(ConfigFor(2, true, Identity, ZeroInit), prev, nil)
	if err != nil {
		t.Fatalf("NewHiddenLayer: %v", err)
	}
	copy(h.neurons[0].weights, []float32{1, 2, 3})
	copy(h.neurons[1].weights, []float32{-1, 0, 0.5})

	h.propagate([]float32{0.5, 1, 1})

	if diff := cmp.Diff(h.ValuesAsVector(), []float32{5.5, 0, 1}); diff != "" {
		t.Errorf("Wrong output; diff (-got +want)\n%s", diff)
	}
}
