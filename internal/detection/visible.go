package detection

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"go.uber.org/zap"

	"github.com/ironsheep/usv-vision/internal/command"
	"github.com/ironsheep/usv-vision/internal/imaging"
)

// Ranges for synthesised detections.
const (
	maxDetections = 2

	originMin = 100
	originMax = 500

	widthMin  = 100
	widthMax  = 200
	heightMin = 100
	heightMax = 150

	confidenceMin = 0.85
	confidenceMax = 0.99
)

// VisibleIdentifier produces synthetic vessel detections for visible-light
// imagery. The image is decoded to confirm it is readable, then zero to two
// detections are drawn at random.
type VisibleIdentifier struct {
	newRand func() *rand.Rand
	log     *zap.Logger
}

// IdentifierOption customises a VisibleIdentifier.
type IdentifierOption func(*VisibleIdentifier)

// WithRandSource replaces the per-call generator factory. Each Identify call
// invokes fn once, so returning a fixed-seed generator makes output
// reproducible.
func WithRandSource(fn func() *rand.Rand) IdentifierOption {
	return func(v *VisibleIdentifier) {
		v.newRand = fn
	}
}

// NewVisibleIdentifier creates an identifier whose per-call generators are
// seeded from the shared top-level source, so concurrent calls never share a
// seed.
func NewVisibleIdentifier(log *zap.Logger, opts ...IdentifierOption) *VisibleIdentifier {
	if log == nil {
		log = zap.NewNop()
	}
	v := &VisibleIdentifier{
		newRand: func() *rand.Rand {
			return rand.New(rand.NewSource(rand.Int63()))
		},
		log: log,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Identify implements Identifier. The returned slice is never nil.
func (v *VisibleIdentifier) Identify(ctx context.Context, imagePath string) ([]command.Detection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	v.log.Debug("visible identify: analysing image", zap.String("image_path", imagePath))

	if _, err := imaging.Load(imagePath); err != nil {
		return nil, err
	}

	rng := v.newRand()
	n := rng.Intn(maxDetections + 1)
	detections := make([]command.Detection, 0, n)
	for i := 0; i < n; i++ {
		x1 := between(rng, originMin, originMax)
		y1 := between(rng, originMin, originMax)
		x2 := x1 + between(rng, widthMin, widthMax)
		y2 := y1 + between(rng, heightMin, heightMax)
		conf := confidenceMin + rng.Float64()*(confidenceMax-confidenceMin)

		detections = append(detections, command.Detection{
			Identity:   fmt.Sprintf("USV_%d", i+1),
			Box:        [4]int{x1, y1, x2, y2},
			Confidence: math.Round(conf*100) / 100,
		})
	}

	v.log.Debug("visible identify: done",
		zap.String("image_path", imagePath),
		zap.Int("detections", len(detections)))
	return detections, nil
}

// between returns a uniform integer in [lo, hi].
func between(rng *rand.Rand, lo, hi int) int {
	return lo + rng.Intn(hi-lo+1)
}

var _ Identifier = (*VisibleIdentifier)(nil)
