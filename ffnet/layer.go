package ffnet

import (
	"fmt"
	"math/rand"
)

type LayerKind int

const (
	InputLayerKind LayerKind = iota
	HiddenLayerKind
	OutputLayerKind
)

func (k LayerKind) String() string {
	switch k {
	case InputLayerKind:
		return "input"
	case HiddenLayerKind:
		return "hidden"
	case OutputLayerKind:
		return "output"
	default:
		return fmt.Sprintf("LayerKind(%d)", int(k))
	}
}

// Layer is the read/write surface shared by InputLayer, HiddenLayer, and
// OutputLayer.
type Layer interface {
	Kind() LayerKind

	// Size is the declared neuron count, not counting the bias neuron.
	Size() int
	HasBias() bool

	// Len is the neuron count including the bias neuron, if any.
	Len() int

	// FanOut is the weight-vector length each neuron of the next layer must
	// have.  Always equal to Len().
	FanOut() int

	Get(i int) (*Neuron, error)
	All() []*Neuron

	// ValuesAsVector returns a fresh slice of every neuron's output value, in
	// order.
	ValuesAsVector() []float32

	ActivationDerivative() ActivationFunc
}

// LayerConfig is the construction-time configuration of a hidden or output
// layer.
type LayerConfig struct {
	Size int
	Bias bool

	Activation           ActivationFunc
	ActivationDerivative ActivationFunc

	// DerivativeOnInput makes the backward pass evaluate ActivationDerivative
	// on the pre-activation input instead of the activated output.
	DerivativeOnInput bool

	WeightInit WeightInitFunc
}

// ConfigFor returns a LayerConfig using the function pair of a named
// activation.
func ConfigFor(size int, bias bool, activation ActivationType, weightInit WeightInitFunc) LayerConfig {
	f, df, onInput := activation.Funcs()
	return LayerConfig{
		Size:                 size,
		Bias:                 bias,
		Activation:           f,
		ActivationDerivative: df,
		DerivativeOnInput:    onInput,
		WeightInit:           weightInit,
	}
}

func (c LayerConfig) validate() error {
	if c.Size < 0 {
		return fmt.Errorf("negative layer size %d: %w", c.Size, ErrConfiguration)
	}
	if c.Activation == nil {
		return fmt.Errorf("missing activation function: %w", ErrConfiguration)
	}
	if c.ActivationDerivative == nil {
		return fmt.Errorf("missing activation derivative: %w", ErrConfiguration)
	}
	if c.WeightInit == nil {
		return fmt.Errorf("missing weight initializer: %w", ErrConfiguration)
	}
	return nil
}

// neuronSet holds the neurons of a layer and implements the parts of Layer
// that do not depend on the layer kind.
type neuronSet struct {
	neurons []Neuron
	bias    bool
}

func (s *neuronSet) Size() int {
	if s.bias {
		return len(s.neurons) - 1
	}
	return len(s.neurons)
}

func (s *neuronSet) HasBias() bool {
	return s.bias
}

func (s *neuronSet) Len() int {
	return len(s.neurons)
}

func (s *neuronSet) FanOut() int {
	return len(s.neurons)
}

func (s *neuronSet) Get(i int) (*Neuron, error) {
	if i < 0 || i >= len(s.neurons) {
		return nil, fmt.Errorf("neuron %d of %d: %w", i, len(s.neurons), ErrIndex)
	}
	return &s.neurons[i], nil
}

func (s *neuronSet) All() []*Neuron {
	all := make([]*Neuron, len(s.neurons))
	for i := range s.neurons {
		all[i] = &s.neurons[i]
	}
	return all
}

func (s *neuronSet) ValuesAsVector() []float32 {
	values := make([]float32, len(s.neurons))
	for i := range s.neurons {
		values[i] = s.neurons[i].output
	}
	return values
}

type InputLayer struct {
	neuronSet
}

var _ Layer = (*InputLayer)(nil)

// NewInputLayer returns a layer of size input slots, all zero, followed by a
// bias neuron iff bias is set.
func NewInputLayer(size int, bias bool) (*InputLayer, error) {
	if size < 0 {
		return nil, fmt.Errorf("negative layer size %d: %w", size, ErrConfiguration)
	}

	l := &InputLayer{neuronSet{bias: bias}}
	for i := 0; i < size; i++ {
		l.neurons = append(l.neurons, NewInputNeuron())
	}
	if bias {
		l.neurons = append(l.neurons, NewBiasNeuron())
	}
	return l, nil
}

func (l *InputLayer) Kind() LayerKind {
	return InputLayerKind
}

func (l *InputLayer) ActivationDerivative() ActivationFunc {
	return IdentityDerivative
}

// SetInputs copies values into the non-bias neurons.  len(values) must equal
// the declared size of the layer.
func (l *InputLayer) SetInputs(values []float32) error {
	if len(values) != l.Size() {
		return fmt.Errorf("got %d input values, layer has %d inputs: %w", len(values), l.Size(), ErrConfiguration)
	}
	for i, v := range values {
		l.neurons[i].output = v
	}
	return nil
}

// weightedLayer is the shared part of hidden and output layers: neurons with
// incoming weights and a single activation.
type weightedLayer struct {
	neuronSet

	activation        ActivationFunc
	derivative        ActivationFunc
	derivativeOnInput bool
}

func makeWeightedLayer(cfg LayerConfig, prev Layer, r *rand.Rand, newNeuron func([]float32) Neuron) (weightedLayer, error) {
	if err := cfg.validate(); err != nil {
		return weightedLayer{}, err
	}
	if prev == nil {
		return weightedLayer{}, fmt.Errorf("missing previous layer: %w", ErrConfiguration)
	}

	wl := weightedLayer{
		neuronSet:         neuronSet{bias: cfg.Bias},
		activation:        cfg.Activation,
		derivative:        cfg.ActivationDerivative,
		derivativeOnInput: cfg.DerivativeOnInput,
	}

	fanIn := prev.FanOut()
	for i := 0; i < cfg.Size; i++ {
		w := cfg.WeightInit(fanIn, r)
		if len(w) != fanIn {
			return weightedLayer{}, fmt.Errorf("weight initializer returned %d weights for fan-in %d: %w", len(w), fanIn, ErrConfiguration)
		}
		wl.neurons = append(wl.neurons, newNeuron(w))
	}
	if cfg.Bias {
		wl.neurons = append(wl.neurons, NewBiasNeuron())
	}
	return wl, nil
}

func (l *weightedLayer) ActivationDerivative() ActivationFunc {
	return l.derivative
}

func (l *weightedLayer) Activation() ActivationFunc {
	return l.activation
}

// propagate recomputes every weighted neuron from the previous layer's
// output values.  Bias neurons keep their constant output.
func (l *weightedLayer) propagate(values []float32) {
	for i := range l.neurons {
		n := &l.neurons[i]
		if !n.HasWeights() {
			continue
		}
		n.activate(values, l.activation)
	}
}

// derivativeAt evaluates the activation derivative for n, on its input or
// output as the layer was configured.
func (l *weightedLayer) derivativeAt(n *Neuron) float32 {
	if l.derivativeOnInput {
		return l.derivative(n.input)
	}
	return l.derivative(n.output)
}

type HiddenLayer struct {
	weightedLayer
}

var _ Layer = (*HiddenLayer)(nil)

// NewHiddenLayer builds cfg.Size hidden neurons, each with cfg.WeightInit
// weights of length prev.FanOut(), followed by a bias neuron iff cfg.Bias.
func NewHiddenLayer(cfg LayerConfig, prev Layer, r *rand.Rand) (*HiddenLayer, error) {
	wl, err := makeWeightedLayer(cfg, prev, r, NewHiddenNeuron)
	if err != nil {
		return nil, fmt.Errorf("while building hidden layer: %w", err)
	}
	return &HiddenLayer{wl}, nil
}

func (l *HiddenLayer) Kind() LayerKind {
	return HiddenLayerKind
}

type OutputLayer struct {
	weightedLayer
}

var _ Layer = (*OutputLayer)(nil)

// NewOutputLayer builds cfg.Size output neurons the same way NewHiddenLayer
// does.  Output layers never carry a bias neuron; cfg.Bias must be false.
func NewOutputLayer(cfg LayerConfig, prev Layer, r *rand.Rand) (*OutputLayer, error) {
	if cfg.Bias {
		return nil, fmt.Errorf("output layer cannot have a bias neuron: %w", ErrConfiguration)
	}
	wl, err := makeWeightedLayer(cfg, prev, r, NewOutputNeuron)
	if err != nil {
		return nil, fmt.Errorf("while building output layer: %w", err)
	}
	return &OutputLayer{wl}, nil
}

func (l *OutputLayer) Kind() LayerKind {
	return OutputLayerKind
}
