package spectrum

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

// gradientImage returns a w x h CV_8UC1 image with a diagonal ramp.
func gradientImage(t *testing.T, w, h int) gocv.Mat {
	t.Helper()
	img := gocv.NewMatWithSize(h, w, gocv.MatTypeCV8UC1)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetUCharAt(y, x, uint8((x*7+y*3)%256))
		}
	}
	t.Cleanup(func() { img.Close() })
	return img
}

func uniformImage(t *testing.T, w, h int, v uint8) gocv.Mat {
	t.Helper()
	img := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(float64(v), 0, 0, 0), h, w, gocv.MatTypeCV8UC1)
	t.Cleanup(func() { img.Close() })
	return img
}

func forward(t *testing.T, src gocv.Mat, backend string) gocv.Mat {
	t.Helper()
	buffer, err := BuildComplex(src)
	require.NoError(t, err)
	defer buffer.Close()

	tr, err := Lookup(backend)
	require.NoError(t, err)
	freq, err := tr.Forward(buffer)
	require.NoError(t, err)
	t.Cleanup(func() { freq.Close() })
	return freq
}

func isSmooth(n int) bool {
	for _, p := range []int{2, 3, 5} {
		for n%p == 0 {
			n /= p
		}
	}
	return n == 1
}
