package ffnet

import (
	"math/rand"

	"github.com/chewxy/math32"
)

// WeightInitFunc produces the initial incoming weights for one neuron.  The
// result always has length fanIn.  A nil r means the package-level source.
type WeightInitFunc func(fanIn int, r *rand.Rand) []float32

// XavierInit draws fanIn samples uniformly from [-1/sqrt(fanIn), 1/sqrt(fanIn)).
func XavierInit(fanIn int, r *rand.Rand) []float32 {
	w := make([]float32, fanIn)
	if fanIn == 0 {
		return w
	}

	bound := 1 / math32.Sqrt(float32(fanIn))
	for i := range w {
		var u float32
		if r != nil {
			u = r.Float32()
		} else {
			u = rand.Float32()
		}
		w[i] = (2*u - 1) * bound
	}
	return w
}

func ZeroInit(fanIn int, _ *rand.Rand) []float32 {
	return make([]float32, fanIn)
}
