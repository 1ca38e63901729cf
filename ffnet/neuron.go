package ffnet

import "fmt"

type NeuronKind int

const (
	InputNeuron NeuronKind = iota
	BiasNeuron
	HiddenNeuron
	OutputNeuron
)

func (k NeuronKind) String() string {
	switch k {
	case InputNeuron:
		return "input"
	case BiasNeuron:
		return "bias"
	case HiddenNeuron:
		return "hidden"
	case OutputNeuron:
		return "output"
	default:
		return fmt.Sprintf("NeuronKind(%d)", int(k))
	}
}

// Neuron is one computational unit.  Kind selects the variant:
//
//   - Input: output value supplied from outside, no weights.
//   - Bias: output value fixed at 1, no weights.
//   - Hidden, Output: pre-activation input, activated output, and one incoming
//     weight per neuron of the previous layer.
//
// The weights slice is owned by the neuron and is never reallocated after
// construction.
type Neuron struct {
	kind    NeuronKind
	input   float32
	output  float32
	weights []float32
}

func NewInputNeuron() Neuron {
	return Neuron{kind: InputNeuron}
}

func NewBiasNeuron() Neuron {
	return Neuron{kind: BiasNeuron, output: 1}
}

func NewHiddenNeuron(weights []float32) Neuron {
	return Neuron{kind: HiddenNeuron, weights: weights}
}

func NewOutputNeuron(weights []float32) Neuron {
	return Neuron{kind: OutputNeuron, weights: weights}
}

func (n *Neuron) Kind() NeuronKind {
	return n.kind
}

// HasWeights reports whether the neuron has incoming weights.
func (n *Neuron) HasWeights() bool {
	switch n.kind {
	case InputNeuron, BiasNeuron:
		return false
	case HiddenNeuron, OutputNeuron:
		return true
	default:
		panic("unhandled neuron kind")
	}
}

func (n *Neuron) OutputValue() float32 {
	return n.output
}

func (n *Neuron) SetOutputValue(v float32) error {
	switch n.kind {
	case BiasNeuron:
		return ErrBiasFixed
	case InputNeuron, HiddenNeuron, OutputNeuron:
		n.output = v
		return nil
	default:
		panic("unhandled neuron kind")
	}
}

// InputValue returns the pre-activation input.  Input and bias neurons have
// identity activation, so for them it is the output value.
func (n *Neuron) InputValue() float32 {
	switch n.kind {
	case InputNeuron, BiasNeuron:
		return n.output
	case HiddenNeuron, OutputNeuron:
		return n.input
	default:
		panic("unhandled neuron kind")
	}
}

func (n *Neuron) SetInputValue(v float32) error {
	switch n.kind {
	case InputNeuron, BiasNeuron:
		return fmt.Errorf("%v neuron has no pre-activation input: %w", n.kind, ErrConfiguration)
	case HiddenNeuron, OutputNeuron:
		n.input = v
		return nil
	default:
		panic("unhandled neuron kind")
	}
}

// Weights returns the neuron's incoming weights.  The returned slice aliases
// the neuron's storage; writes through it update the neuron.
func (n *Neuron) Weights() ([]float32, error) {
	switch n.kind {
	case InputNeuron, BiasNeuron:
		return nil, fmt.Errorf("%v neuron: %w", n.kind, ErrNoWeights)
	case HiddenNeuron, OutputNeuron:
		return n.weights, nil
	default:
		panic("unhandled neuron kind")
	}
}

// activate sets the pre-activation input to dot(values, weights) and the
// output to f of it.  Only valid for weighted neurons.
func (n *Neuron) activate(values []float32, f ActivationFunc) {
	n.input = denseDot(values, n.weights)
	n.output = f(n.input)
}
