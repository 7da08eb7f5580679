package detection

import (
	"context"

	"github.com/ironsheep/usv-vision/internal/command"
)

// Counter counts vessels in the image at imagePath.
type Counter interface {
	Count(ctx context.Context, imagePath string) (int, error)
}

// Identifier locates and labels vessels in the image at imagePath.
type Identifier interface {
	Identify(ctx context.Context, imagePath string) ([]command.Detection, error)
}
