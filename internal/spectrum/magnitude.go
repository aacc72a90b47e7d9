// Power spectrum visualization
package spectrum

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// Magnitude converts a complex spectrum into a displayable image:
// log(1 + |F|), cropped to even dimensions, quadrant-swapped so the zero
// frequency sits in the centre, and min-max normalized to [0,1].
func Magnitude(spectrum gocv.Mat) (gocv.Mat, error) {
	if err := checkComplex(spectrum); err != nil {
		return gocv.NewMat(), err
	}
	if spectrum.Rows() < 2 || spectrum.Cols() < 2 {
		return gocv.NewMat(), fmt.Errorf("%w: %dx%d spectrum has no quadrants", ErrInvalidSize, spectrum.Cols(), spectrum.Rows())
	}

	planes := gocv.Split(spectrum)
	defer closeAll(planes)

	mag := gocv.NewMat()
	defer mag.Close()
	gocv.Magnitude(planes[0], planes[1], &mag)
	mag.AddFloat(1)

	logMag := gocv.NewMat()
	defer logMag.Close()
	gocv.Log(mag, &logMag)

	swapped := SwapQuadrants(logMag)
	defer swapped.Close()

	out := gocv.NewMat()
	gocv.Normalize(swapped, &out, 0, 1, gocv.NormMinMax)
	if out.Empty() {
		out.Close()
		return gocv.NewMat(), fmt.Errorf("spectrum: normalizing magnitude failed")
	}
	return out, nil
}

// SwapQuadrants drops an odd trailing row and column, then exchanges the
// top-left with the bottom-right quadrant and the top-right with the
// bottom-left one. Applying it twice restores an even-sized input.
func SwapQuadrants(src gocv.Mat) gocv.Mat {
	cols := src.Cols() &^ 1
	rows := src.Rows() &^ 1
	if rows == 0 || cols == 0 {
		return gocv.NewMat()
	}

	cropped := src.Region(image.Rect(0, 0, cols, rows))
	defer cropped.Close()

	out := cropped.Clone()
	hw, hh := cols/2, rows/2
	quadrants := [4]image.Rectangle{
		image.Rect(0, 0, hw, hh),
		image.Rect(hw, 0, cols, hh),
		image.Rect(0, hh, hw, rows),
		image.Rect(hw, hh, cols, rows),
	}

	// q0 <-> q3, q1 <-> q2
	for i, dst := range quadrants {
		from := cropped.Region(quadrants[3-i])
		to := out.Region(dst)
		from.CopyTo(&to)
		from.Close()
		to.Close()
	}

	return out
}
