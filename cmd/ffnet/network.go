package main

import (
	"flag"
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/ahmedtd/nn/ffnet"
)

// networkFlags describes the shape of a network.  Shared by every subcommand
// that builds one.
type networkFlags struct {
	hidden           string
	hiddenActivation string
	outputActivation string
	bias             bool
	weightInit       string
	learningRate     float64
	seed             int64
}

func (nf *networkFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&nf.hidden, "hidden", "2", "Comma-separated hidden layer sizes")
	f.StringVar(&nf.hiddenActivation, "hidden-activation", "sigmoid", "Hidden layer activation (identity, sigmoid, tanh, relu, swish)")
	f.StringVar(&nf.outputActivation, "output-activation", "identity", "Output layer activation (identity, sigmoid, tanh, relu, swish)")
	f.BoolVar(&nf.bias, "bias", true, "Append a bias neuron to the input and hidden layers")
	f.StringVar(&nf.weightInit, "weight-init", "xavier", "Weight initializer (xavier, zero)")
	f.Float64Var(&nf.learningRate, "learning-rate", 0.1, "Gradient descent step size")
	f.Int64Var(&nf.seed, "seed", 12345, "Seed for weight initialization and sample shuffling")
}

func parseLayerSizes(s string) ([]int, error) {
	sizes := []int{}
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		n, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("while parsing layer size %q: %w", field, err)
		}
		if n <= 0 {
			return nil, fmt.Errorf("layer size %d must be positive", n)
		}
		sizes = append(sizes, n)
	}
	if len(sizes) == 0 {
		return nil, fmt.Errorf("need at least one hidden layer size")
	}
	return sizes, nil
}

func parseWeightInit(s string) (ffnet.WeightInitFunc, error) {
	switch strings.ToLower(s) {
	case "xavier":
		return ffnet.XavierInit, nil
	case "zero":
		return ffnet.ZeroInit, nil
	default:
		return nil, fmt.Errorf("unknown weight initializer %q", s)
	}
}

// build constructs a network with the given input and output widths, layers
// built in dependency order.
func (nf *networkFlags) build(inputs, outputs int, r *rand.Rand) (*ffnet.Network, error) {
	sizes, err := parseLayerSizes(nf.hidden)
	if err != nil {
		return nil, err
	}
	hiddenActivation, err := ffnet.ParseActivationType(nf.hiddenActivation)
	if err != nil {
		return nil, fmt.Errorf("while parsing hidden activation: %w", err)
	}
	outputActivation, err := ffnet.ParseActivationType(nf.outputActivation)
	if err != nil {
		return nil, fmt.Errorf("while parsing output activation: %w", err)
	}
	weightInit, err := parseWeightInit(nf.weightInit)
	if err != nil {
		return nil, err
	}

	in, err := ffnet.NewInputLayer(inputs, nf.bias)
	if err != nil {
		return nil, fmt.Errorf("while building input layer: %w", err)
	}

	var prev ffnet.Layer = in
	hidden := []*ffnet.HiddenLayer{}
	for _, size := range sizes {
		h, err := ffnet.NewHiddenLayer(ffnet.ConfigFor(size, nf.bias, hiddenActivation, weightInit), prev, r)
		if err != nil {
			return nil, err
		}
		hidden = append(hidden, h)
		prev = h
	}

	out, err := ffnet.NewOutputLayer(ffnet.ConfigFor(outputs, false, outputActivation, weightInit), prev, r)
	if err != nil {
		return nil, err
	}

	net, err := ffnet.NewNetwork(in, hidden, out, float32(nf.learningRate))
	if err != nil {
		return nil, fmt.Errorf("while assembling network: %w", err)
	}
	return net, nil
}
