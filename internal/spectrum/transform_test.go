package spectrum

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

func TestRegistry(t *testing.T) {
	assert.Equal(t, []string{"godsp", "gonum", "opencv"}, Names())

	for _, name := range Names() {
		tr, ok := Get(name)
		require.True(t, ok)
		assert.Equal(t, name, tr.Name())
	}

	_, err := Lookup("fftw")
	assert.ErrorIs(t, err, ErrUnknownBackend)
}

func TestRoundTripReproducesInput(t *testing.T) {
	src := gradientImage(t, 45, 30)

	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			tr, err := Lookup(name)
			require.NoError(t, err)

			freq := forward(t, src, name)
			inverse, err := tr.Inverse(freq)
			require.NoError(t, err)
			defer inverse.Close()

			assert.Equal(t, freq.Rows(), inverse.Rows())
			assert.Equal(t, freq.Cols(), inverse.Cols())

			plane, err := RealPlane(inverse, src.Cols(), src.Rows())
			require.NoError(t, err)
			defer plane.Close()

			scale := float64(inverse.Rows() * inverse.Cols())
			for y := 0; y < src.Rows(); y++ {
				for x := 0; x < src.Cols(); x++ {
					got := float64(plane.GetFloatAt(y, x)) / scale
					require.InDelta(t, float64(src.GetUCharAt(y, x)), got, 0.05, "sample at (%d,%d)", x, y)
				}
			}
		})
	}
}

func TestBackendsAgreeWithOpenCV(t *testing.T) {
	src := gradientImage(t, 40, 24)
	want, err := toComplex(forward(t, src, "opencv"))
	require.NoError(t, err)

	peak := 0.0
	for _, v := range want {
		peak = math.Max(peak, cmplx.Abs(v))
	}

	for _, name := range []string{"gonum", "godsp"} {
		got, err := toComplex(forward(t, src, name))
		require.NoError(t, err)
		require.Len(t, got, len(want))

		for i := range want {
			require.LessOrEqual(t, cmplx.Abs(got[i]-want[i]), peak*1e-4, "%s: bin %d", name, i)
		}
	}
}

func TestTransformRejectsRealBuffer(t *testing.T) {
	realOnly := gocv.NewMatWithSize(4, 4, gocv.MatTypeCV32F)
	defer realOnly.Close()

	for _, name := range Names() {
		tr, _ := Get(name)
		out, err := tr.Forward(realOnly)
		assert.ErrorIs(t, err, ErrNotComplex, name)
		out.Close()
	}
}
