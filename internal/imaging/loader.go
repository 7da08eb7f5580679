package imaging

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
)

// Sentinel errors returned (wrapped) by Load. Match them with errors.Is.
var (
	// ErrNotFound means the path does not exist or cannot be accessed.
	ErrNotFound = errors.New("image file not found or access denied")

	// ErrDecode means the path exists but cannot be read or decoded.
	ErrDecode = errors.New("failed to process image file")
)

// Load reads and decodes the image at path.
//
// Supported formats are PNG, JPEG, and GIF. The two failure modes are kept
// apart so callers can report them differently:
//
//   - a path that cannot be stat'ed wraps ErrNotFound
//   - an existing path that cannot be opened or decoded wraps ErrDecode
//
// Nothing is cached; every call reads from disk.
func Load(path string) (image.Image, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	return img, nil
}
