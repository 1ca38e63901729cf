package ffnet

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration is returned when a network, layer, or input vector does
	// not have the shape it was declared with.
	ErrConfiguration = errors.New("configuration error")

	// ErrIndex is returned by indexed neuron access with an out-of-range index.
	ErrIndex = errors.New("index out of range")

	ErrNoWeights = fmt.Errorf("%w: neuron has no weights", ErrConfiguration)
	ErrBiasFixed = fmt.Errorf("%w: bias neuron output is fixed", ErrConfiguration)
)
