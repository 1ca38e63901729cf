package ffnet

import (
	"fmt"
	"strings"

	"github.com/chewxy/math32"
)

// ActivationFunc is a scalar function applied elementwise.  Derivatives share
// the same type.
type ActivationFunc func(float32) float32

type ActivationType int

const (
	Identity ActivationType = iota
	Sigmoid
	Tanh
	ReLU
	Swish
)

func (a ActivationType) String() string {
	switch a {
	case Identity:
		return "identity"
	case Sigmoid:
		return "sigmoid"
	case Tanh:
		return "tanh"
	case ReLU:
		return "relu"
	case Swish:
		return "swish"
	default:
		return fmt.Sprintf("ActivationType(%d)", int(a))
	}
}

func ParseActivationType(s string) (ActivationType, error) {
	switch strings.ToLower(s) {
	case "identity", "linear":
		return Identity, nil
	case "sigmoid":
		return Sigmoid, nil
	case "tanh":
		return Tanh, nil
	case "relu":
		return ReLU, nil
	case "swish":
		return Swish, nil
	default:
		return 0, fmt.Errorf("unknown activation %q: %w", s, ErrConfiguration)
	}
}

// Funcs returns the activation and its derivative.  onInput reports whether
// the derivative must be evaluated on the pre-activation input instead of the
// activated output.
func (a ActivationType) Funcs() (f, df ActivationFunc, onInput bool) {
	switch a {
	case Identity:
		return IdentityActivation, IdentityDerivative, false
	case Sigmoid:
		return SigmoidActivation, SigmoidDerivative, false
	case Tanh:
		return TanhActivation, TanhDerivative, false
	case ReLU:
		return ReLUActivation, ReLUDerivative, false
	case Swish:
		return SwishActivation, SwishDerivative, true
	default:
		panic("unhandled activation function")
	}
}

func IdentityActivation(x float32) float32 {
	return x
}

func IdentityDerivative(float32) float32 {
	return 1
}

func SigmoidActivation(x float32) float32 {
	return 1 / (1 + math32.Exp(-x))
}

// SigmoidDerivative takes the activated output y = sigmoid(x).
func SigmoidDerivative(y float32) float32 {
	return y * (1 - y)
}

func TanhActivation(x float32) float32 {
	return math32.Tanh(x)
}

// TanhDerivative takes the activated output y = tanh(x).
func TanhDerivative(y float32) float32 {
	return 1 - y*y
}

func ReLUActivation(x float32) float32 {
	if x < 0 {
		return 0
	}
	return x
}

// ReLUDerivative branches on the sign of its argument.  Since relu(x) > 0
// exactly when x > 0, it gives the same answer for the pre-activation input
// and for the activated output.
func ReLUDerivative(x float32) float32 {
	if x <= 0 {
		return 0
	}
	return 1
}

func SwishActivation(x float32) float32 {
	return x * SigmoidActivation(x)
}

// SwishDerivative takes the pre-activation input x; swish has no closed-form
// derivative in terms of its output.
func SwishDerivative(x float32) float32 {
	s := SigmoidActivation(x)
	return s + x*s*(1-s)
}
