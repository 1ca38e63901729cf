package ffnet

import (
	"fmt"

	"github.com/chewxy/math32"
)

// Network is a fully-connected feedforward pipeline: one input layer, one or
// more hidden layers, and one output layer.  A Network is not safe for
// concurrent use.
type Network struct {
	input  *InputLayer
	hidden []*HiddenLayer
	output *OutputLayer

	learningRate float32
}

// NewNetwork assembles pre-built layers and runs Validate on the result.
// learningRate is the step size used by BackwardPass.
func NewNetwork(input *InputLayer, hidden []*HiddenLayer, output *OutputLayer, learningRate float32) (*Network, error) {
	net := &Network{
		input:        input,
		hidden:       hidden,
		output:       output,
		learningRate: learningRate,
	}
	if err := net.Validate(); err != nil {
		return nil, err
	}
	return net, nil
}

// Validate checks that every weighted neuron's fan-in matches the fan-out of
// the layer before it.
func (net *Network) Validate() error {
	if net.input == nil {
		return fmt.Errorf("missing input layer: %w", ErrConfiguration)
	}
	if len(net.hidden) == 0 {
		return fmt.Errorf("network needs at least one hidden layer: %w", ErrConfiguration)
	}
	if net.output == nil {
		return fmt.Errorf("missing output layer: %w", ErrConfiguration)
	}
	if net.output.HasBias() {
		return fmt.Errorf("output layer cannot have a bias neuron: %w", ErrConfiguration)
	}
	if math32.IsNaN(net.learningRate) || math32.IsInf(net.learningRate, 0) {
		return fmt.Errorf("learning rate %v is not finite: %w", net.learningRate, ErrConfiguration)
	}

	var prev Layer = net.input
	for i, h := range net.hidden {
		if h == nil {
			return fmt.Errorf("missing hidden layer %d: %w", i, ErrConfiguration)
		}
		if err := checkFanIn(&h.weightedLayer, prev); err != nil {
			return fmt.Errorf("hidden layer %d: %w", i, err)
		}
		prev = h
	}
	if err := checkFanIn(&net.output.weightedLayer, prev); err != nil {
		return fmt.Errorf("output layer: %w", err)
	}

	return nil
}

func checkFanIn(l *weightedLayer, prev Layer) error {
	for i := range l.neurons {
		n := &l.neurons[i]
		if !n.HasWeights() {
			continue
		}
		if len(n.weights) != prev.FanOut() {
			return fmt.Errorf("neuron %d has fan-in %d, previous %v layer has fan-out %d: %w", i, len(n.weights), prev.Kind(), prev.FanOut(), ErrConfiguration)
		}
	}
	return nil
}

func (net *Network) InputLayer() *InputLayer {
	return net.input
}

func (net *Network) HiddenLayers() []*HiddenLayer {
	return net.hidden
}

func (net *Network) OutputLayer() *OutputLayer {
	return net.output
}

// Layers returns every layer in pipeline order.
func (net *Network) Layers() []Layer {
	layers := make([]Layer, 0, len(net.hidden)+2)
	layers = append(layers, net.input)
	for _, h := range net.hidden {
		layers = append(layers, h)
	}
	layers = append(layers, net.output)
	return layers
}

func (net *Network) LearningRate() float32 {
	return net.learningRate
}

func (net *Network) SetInputs(values []float32) error {
	return net.input.SetInputs(values)
}

// Outputs returns the output layer's current values.
func (net *Network) Outputs() []float32 {
	return net.output.ValuesAsVector()
}

// ForwardPass evaluates the network from the current input values.  Each
// layer reads the values of the layer before it; no layer is skipped.
func (net *Network) ForwardPass() {
	values := net.input.ValuesAsVector()
	for _, h := range net.hidden {
		h.propagate(values)
		values = h.ValuesAsVector()
	}
	net.output.propagate(values)
}

// BackwardPass applies one step of backpropagation toward expected using the
// network's learning rate.  It must follow a ForwardPass on the same inputs.
// The returned value is the total error of the outputs before the update.
func (net *Network) BackwardPass(expected []float32) (float32, error) {
	return net.BackwardPassRate(expected, net.learningRate)
}

// BackwardPassRate is BackwardPass with an explicit learning rate.
func (net *Network) BackwardPassRate(expected []float32, learningRate float32) (float32, error) {
	if len(expected) != net.output.Len() {
		return 0, fmt.Errorf("got %d expected values, output layer has %d neurons: %w", len(expected), net.output.Len(), ErrConfiguration)
	}

	var globalError float32

	// Output layer.  neuronDeltas[k] accumulates the error propagated to
	// neuron k of the last hidden layer, using each weight before it is
	// updated.
	last := net.hidden[len(net.hidden)-1]
	prevValues := last.ValuesAsVector()
	neuronDeltas := make([]float32, last.Len())
	for i := range net.output.neurons {
		n := &net.output.neurons[i]
		diff := n.output - expected[i]
		globalError += 0.5 * diff * diff

		delta := diff * net.output.derivativeAt(n)
		for k, w := range n.weights {
			neuronDeltas[k] += delta * w
			n.weights[k] = w - learningRate*delta*prevValues[k]
		}
	}

	// Hidden layers, last to first.  The deltas landing on a bias neuron are
	// dropped; it has no incoming weights.
	for l := len(net.hidden) - 1; l >= 0; l-- {
		layer := net.hidden[l]

		var prev Layer = net.input
		if l > 0 {
			prev = net.hidden[l-1]
		}
		prevValues := prev.ValuesAsVector()
		tempDeltas := make([]float32, prev.Len())

		for k := range layer.neurons {
			n := &layer.neurons[k]
			if !n.HasWeights() {
				continue
			}

			delta := neuronDeltas[k] * layer.derivativeAt(n)
			for j, w := range n.weights {
				tempDeltas[j] += w * delta
				n.weights[j] = w - learningRate*delta*prevValues[j]
			}
		}

		neuronDeltas = tempDeltas
	}

	return globalError, nil
}

// CalcTotalError returns the sum over outputs of 0.5*(output-expected)^2.  It
// does not modify the network.
func (net *Network) CalcTotalError(expected []float32) (float32, error) {
	if len(expected) != net.output.Len() {
		return 0, fmt.Errorf("got %d expected values, output layer has %d neurons: %w", len(expected), net.output.Len(), ErrConfiguration)
	}

	var total float32
	for i := range net.output.neurons {
		diff := net.output.neurons[i].output - expected[i]
		total += 0.5 * diff * diff
	}
	return total, nil
}
