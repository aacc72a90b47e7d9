// Complex buffer construction for the forward transform
package spectrum

import (
	"fmt"
	"image/color"

	"gocv.io/x/gocv"
)

// OptimalSize returns the smallest transform length >= n that OpenCV
// considers efficient (a product of powers of 2, 3 and 5).
func OptimalSize(n int) int {
	return gocv.GetOptimalDFTSize(n)
}

// BuildComplex pads a grayscale image on the bottom and right with zeros up
// to the optimal transform size and packs it as the real plane of a CV_32FC2
// buffer whose imaginary plane is zero. The caller owns the returned Mat.
func BuildComplex(src gocv.Mat) (gocv.Mat, error) {
	if src.Empty() {
		return gocv.NewMat(), ErrEmptyInput
	}
	if src.Channels() != 1 {
		return gocv.NewMat(), fmt.Errorf("%w: %d channels", ErrNotGrayscale, src.Channels())
	}

	rows := OptimalSize(src.Rows())
	cols := OptimalSize(src.Cols())

	padded := gocv.NewMat()
	defer padded.Close()
	gocv.CopyMakeBorder(src, &padded,
		0, rows-src.Rows(),
		0, cols-src.Cols(),
		gocv.BorderConstant, color.RGBA{})

	re := gocv.NewMat()
	defer re.Close()
	padded.ConvertTo(&re, gocv.MatTypeCV32F)

	im := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), rows, cols, gocv.MatTypeCV32F)
	defer im.Close()

	out := gocv.NewMat()
	gocv.Merge([]gocv.Mat{re, im}, &out)
	if out.Empty() || out.Rows() != rows || out.Cols() != cols {
		out.Close()
		return gocv.NewMat(), fmt.Errorf("spectrum: building %dx%d complex buffer failed", cols, rows)
	}

	return out, nil
}

func checkComplex(m gocv.Mat) error {
	if m.Empty() {
		return ErrEmptyInput
	}
	if m.Type() != gocv.MatTypeCV32FC2 {
		return fmt.Errorf("%w: got type %v", ErrNotComplex, m.Type())
	}
	return nil
}

func closeAll(mats []gocv.Mat) {
	for i := range mats {
		mats[i].Close()
	}
}
