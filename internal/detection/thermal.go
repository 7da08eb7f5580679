package detection

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/ironsheep/usv-vision/internal/imaging"
)

// Default thermal network shape.
const (
	DefaultThermalInputSize = 28
	DefaultThermalHidden    = 64
)

// ThermalConfig configures a ThermalCounter.
type ThermalConfig struct {
	// InputSize is the side of the square the image is resized to.
	// Zero means DefaultThermalInputSize.
	InputSize int

	// Hidden is the hidden layer width. Zero means DefaultThermalHidden.
	Hidden int

	// Seed fixes the network weights.
	Seed int64
}

// ThermalCounter counts vessels in thermal imagery with a small untrained
// perceptron. The count is round(|out|), so it is always non-negative.
type ThermalCounter struct {
	net       *MLP
	inputSize int
	log       *zap.Logger
}

// NewThermalCounter builds the network described by cfg.
func NewThermalCounter(cfg ThermalConfig, log *zap.Logger) *ThermalCounter {
	if cfg.InputSize <= 0 {
		cfg.InputSize = DefaultThermalInputSize
	}
	if cfg.Hidden <= 0 {
		cfg.Hidden = DefaultThermalHidden
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &ThermalCounter{
		net:       NewMLP(cfg.InputSize*cfg.InputSize, cfg.Hidden, cfg.Seed),
		inputSize: cfg.InputSize,
		log:       log,
	}
}

// Count implements Counter. Errors wrap imaging.ErrNotFound or
// imaging.ErrDecode when the image cannot be read.
func (c *ThermalCounter) Count(ctx context.Context, imagePath string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	c.log.Debug("thermal count: analysing image", zap.String("image_path", imagePath))

	img, err := imaging.Load(imagePath)
	if err != nil {
		return 0, err
	}

	vec, err := imaging.ThermalTensor(img, c.inputSize)
	if err != nil {
		return 0, err
	}

	out, err := c.net.Forward(vec)
	if err != nil {
		return 0, fmt.Errorf("thermal inference: %w", err)
	}

	count := int(math.RoundToEven(math.Abs(out)))
	c.log.Debug("thermal count: done",
		zap.String("image_path", imagePath),
		zap.Float64("raw_output", out),
		zap.Int("detected_count", count))
	return count, nil
}

var _ Counter = (*ThermalCounter)(nil)
