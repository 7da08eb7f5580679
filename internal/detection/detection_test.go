package detection

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math/rand"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ironsheep/usv-vision/internal/imaging"
)

// createTestImage writes a gradient PNG into a temp dir and returns its path.
func createTestImage(t *testing.T, width, height int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{uint8(x % 256), uint8(y % 256), 200, 255})
		}
	}

	path := filepath.Join(t.TempDir(), "frame.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func writeGarbage(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "broken.png")
	require.NoError(t, os.WriteFile(path, []byte{0x89, 'P', 'N', 'G', 0, 1, 2}, 0o644))
	return path
}

func TestThermalCounter_Count(t *testing.T) {
	path := createTestImage(t, 320, 240)
	c := NewThermalCounter(ThermalConfig{Seed: 1}, nil)

	n, err := c.Count(context.Background(), path)
	require.NoError(t, err)
	require.GreaterOrEqual(t, n, 0)
}

func TestThermalCounter_Deterministic(t *testing.T) {
	path := createTestImage(t, 64, 64)
	a, err := NewThermalCounter(ThermalConfig{Seed: 9}, nil).Count(context.Background(), path)
	require.NoError(t, err)
	b, err := NewThermalCounter(ThermalConfig{Seed: 9}, nil).Count(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestThermalCounter_ManySeedsNonNegative(t *testing.T) {
	path := createTestImage(t, 50, 50)
	for seed := int64(0); seed < 20; seed++ {
		n, err := NewThermalCounter(ThermalConfig{Seed: seed, InputSize: 8, Hidden: 4}, nil).
			Count(context.Background(), path)
		require.NoError(t, err)
		require.GreaterOrEqual(t, n, 0, "seed %d", seed)
	}
}

func TestThermalCounter_Defaults(t *testing.T) {
	c := NewThermalCounter(ThermalConfig{}, nil)
	require.Equal(t, DefaultThermalInputSize, c.inputSize)
	require.Equal(t, DefaultThermalInputSize*DefaultThermalInputSize, c.net.Inputs())
	require.Len(t, c.net.w1, DefaultThermalHidden)
}

func TestThermalCounter_Errors(t *testing.T) {
	c := NewThermalCounter(ThermalConfig{Seed: 1}, nil)

	_, err := c.Count(context.Background(), "/nonexistent/thermal.png")
	require.True(t, errors.Is(err, imaging.ErrNotFound))

	_, err = c.Count(context.Background(), writeGarbage(t))
	require.True(t, errors.Is(err, imaging.ErrDecode))
}

func TestThermalCounter_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewThermalCounter(ThermalConfig{Seed: 1}, nil).Count(ctx, createTestImage(t, 10, 10))
	require.ErrorIs(t, err, context.Canceled)
}

func TestVisibleIdentifier_Properties(t *testing.T) {
	path := createTestImage(t, 800, 600)

	seen := map[int]bool{}
	for seed := int64(0); seed < 200; seed++ {
		seed := seed
		v := NewVisibleIdentifier(nil, WithRandSource(func() *rand.Rand {
			return rand.New(rand.NewSource(seed))
		}))

		dets, err := v.Identify(context.Background(), path)
		require.NoError(t, err)
		require.NotNil(t, dets)
		require.LessOrEqual(t, len(dets), 2)
		seen[len(dets)] = true

		for i, d := range dets {
			x1, y1, x2, y2 := d.Box[0], d.Box[1], d.Box[2], d.Box[3]
			require.Greater(t, x2, x1)
			require.Greater(t, y2, y1)
			require.GreaterOrEqual(t, x1, 100)
			require.LessOrEqual(t, x1, 500)
			require.GreaterOrEqual(t, y1, 100)
			require.LessOrEqual(t, y1, 500)
			require.GreaterOrEqual(t, x2-x1, 100)
			require.LessOrEqual(t, x2-x1, 200)
			require.GreaterOrEqual(t, y2-y1, 100)
			require.LessOrEqual(t, y2-y1, 150)
			require.GreaterOrEqual(t, d.Confidence, 0.85)
			require.LessOrEqual(t, d.Confidence, 0.99)
			require.Equal(t, []string{"USV_1", "USV_2"}[i], d.Identity)
		}
	}

	// 200 seeds are plenty to hit every count.
	require.True(t, seen[0])
	require.True(t, seen[1])
	require.True(t, seen[2])
}

func TestVisibleIdentifier_Reproducible(t *testing.T) {
	path := createTestImage(t, 40, 40)
	src := func() *rand.Rand { return rand.New(rand.NewSource(1234)) }

	a, err := NewVisibleIdentifier(nil, WithRandSource(src)).Identify(context.Background(), path)
	require.NoError(t, err)
	b, err := NewVisibleIdentifier(nil, WithRandSource(src)).Identify(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestVisibleIdentifier_Errors(t *testing.T) {
	v := NewVisibleIdentifier(nil)

	_, err := v.Identify(context.Background(), "/nonexistent/visible.jpg")
	require.True(t, errors.Is(err, imaging.ErrNotFound))

	_, err = v.Identify(context.Background(), writeGarbage(t))
	require.True(t, errors.Is(err, imaging.ErrDecode))
}

func TestVisibleIdentifier_ConcurrentGeneratorsDiffer(t *testing.T) {
	v := NewVisibleIdentifier(nil)

	const n = 64
	firsts := make([]int64, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			firsts[i] = v.newRand().Int63()
		}(i)
	}
	wg.Wait()

	seen := make(map[int64]bool, n)
	for _, f := range firsts {
		require.False(t, seen[f], "two generators produced the same sequence")
		seen[f] = true
	}
}
