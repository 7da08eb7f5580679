package detection

import (
	"fmt"
	"math"
	"math/rand"
)

// MLP is a two-layer perceptron with a single output:
//
//	out = W2 · relu(W1 · x + b1) + b2
//
// Weights are drawn once at construction and never modified, so one MLP can
// serve concurrent Forward calls.
type MLP struct {
	inputs int
	w1     [][]float64 // hidden × inputs
	b1     []float64
	w2     []float64 // hidden
	b2     float64
}

// NewMLP builds an untrained network with inputs → hidden → 1 units.
//
// Each layer is initialised uniformly in [-1/√fan_in, 1/√fan_in] for both
// weights and biases, the default for freshly constructed linear layers in
// common deep-learning frameworks. The same seed always yields the same
// weights.
func NewMLP(inputs, hidden int, seed int64) *MLP {
	rng := rand.New(rand.NewSource(seed))

	bound1 := 1 / math.Sqrt(float64(inputs))
	w1 := make([][]float64, hidden)
	for h := range w1 {
		w1[h] = make([]float64, inputs)
		for i := range w1[h] {
			w1[h][i] = uniform(rng, bound1)
		}
	}
	b1 := make([]float64, hidden)
	for h := range b1 {
		b1[h] = uniform(rng, bound1)
	}

	bound2 := 1 / math.Sqrt(float64(hidden))
	w2 := make([]float64, hidden)
	for h := range w2 {
		w2[h] = uniform(rng, bound2)
	}

	return &MLP{
		inputs: inputs,
		w1:     w1,
		b1:     b1,
		w2:     w2,
		b2:     uniform(rng, bound2),
	}
}

// Inputs is the expected length of the vector passed to Forward.
func (m *MLP) Inputs() int {
	return m.inputs
}

// Forward runs one inference pass.
func (m *MLP) Forward(x []float64) (float64, error) {
	if len(x) != m.inputs {
		return 0, fmt.Errorf("input has %d values, network expects %d", len(x), m.inputs)
	}

	out := m.b2
	for h, row := range m.w1 {
		act := m.b1[h]
		for i, w := range row {
			act += w * x[i]
		}
		if act > 0 {
			out += m.w2[h] * act
		}
	}
	return out, nil
}

func uniform(rng *rand.Rand, bound float64) float64 {
	return (rng.Float64()*2 - 1) * bound
}
