package ffnet

func denseDot(x []float32, y []float32) float32 {
	if len(x) != len(y) {
		panic("mismatched length")
	}
	var sum float32
	for i := 0; i < len(x); i++ {
		sum += x[i] * y[i]
	}
	return sum
}
