// Circular frequency masks and masked spectrum copies
package filter

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

// DefaultRadius is the disk radius, in frequency bins, of the low-pass mask.
const DefaultRadius = 70

const maxRadius = 4096

var (
	// ErrSizeMismatch is returned when a mask and a spectrum differ in size.
	ErrSizeMismatch = errors.New("filter: mask and spectrum sizes differ")

	// ErrInvalidMask is returned for empty or non 8-bit masks.
	ErrInvalidMask = errors.New("filter: invalid mask")
)

var maskOn = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// Params configures mask construction.
type Params struct {
	Radius int
}

func DefaultParams() Params {
	return Params{Radius: DefaultRadius}
}

func (p Params) Validate() error {
	if p.Radius < 1 || p.Radius > maxRadius {
		return fmt.Errorf("radius must be between 1 and %d, got %d", maxRadius, p.Radius)
	}
	return nil
}

// LowPassMask builds a rows x cols CV_8UC1 mask that is 255 inside four
// filled disks centred on the buffer corners and 0 elsewhere. An unshifted
// DFT keeps its low frequencies at those corners.
func LowPassMask(rows, cols, radius int) gocv.Mat {
	mask := gocv.Zeros(rows, cols, gocv.MatTypeCV8UC1)

	corners := []image.Point{
		image.Pt(0, 0),
		image.Pt(cols-1, 0),
		image.Pt(0, rows-1),
		image.Pt(cols-1, rows-1),
	}
	for _, c := range corners {
		gocv.Circle(&mask, c, radius, maskOn, -1)
	}

	return mask
}

// HighPassMask returns the bitwise complement of a low-pass mask.
func HighPassMask(low gocv.Mat) gocv.Mat {
	high := gocv.NewMat()
	gocv.BitwiseNot(low, &high)
	return high
}

// Apply copies the spectrum samples selected by mask into a zeroed buffer
// of the same size and type. The caller owns the returned Mat.
func Apply(spectrum, mask gocv.Mat) (gocv.Mat, error) {
	if mask.Empty() || mask.Type() != gocv.MatTypeCV8UC1 {
		return gocv.NewMat(), ErrInvalidMask
	}
	if spectrum.Empty() {
		return gocv.NewMat(), fmt.Errorf("filter: empty spectrum")
	}
	if spectrum.Rows() != mask.Rows() || spectrum.Cols() != mask.Cols() {
		return gocv.NewMat(), fmt.Errorf("%w: spectrum %dx%d, mask %dx%d",
			ErrSizeMismatch, spectrum.Cols(), spectrum.Rows(), mask.Cols(), mask.Rows())
	}

	out := gocv.Zeros(spectrum.Rows(), spectrum.Cols(), spectrum.Type())
	spectrum.CopyToWithMask(&out, mask)
	return out, nil
}

// Pair holds complementary low-pass and high-pass masks.
type Pair struct {
	Low  gocv.Mat
	High gocv.Mat
}

// NewPair builds both masks for a spectrum of the given size.
func NewPair(rows, cols int, params Params) (*Pair, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrSizeMismatch, cols, rows)
	}

	low := LowPassMask(rows, cols, params.Radius)
	return &Pair{Low: low, High: HighPassMask(low)}, nil
}

func (p *Pair) Close() {
	p.Low.Close()
	p.High.Close()
}
