package spectrum

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// RealPlane returns a copy of the real plane of an inverse-transformed
// buffer cropped to width x height, without any scaling.
func RealPlane(spectrum gocv.Mat, width, height int) (gocv.Mat, error) {
	if err := checkComplex(spectrum); err != nil {
		return gocv.NewMat(), err
	}
	if width <= 0 || height <= 0 || width > spectrum.Cols() || height > spectrum.Rows() {
		return gocv.NewMat(), fmt.Errorf("%w: crop %dx%d from %dx%d", ErrInvalidSize, width, height, spectrum.Cols(), spectrum.Rows())
	}

	planes := gocv.Split(spectrum)
	defer closeAll(planes)

	valid := planes[0].Region(image.Rect(0, 0, width, height))
	defer valid.Close()

	return valid.Clone(), nil
}

// Reconstruct crops the real plane to the original image size and
// min-max normalizes it to [0,1] for display.
func Reconstruct(spectrum gocv.Mat, width, height int) (gocv.Mat, error) {
	plane, err := RealPlane(spectrum, width, height)
	if err != nil {
		return gocv.NewMat(), err
	}
	defer plane.Close()

	out := gocv.NewMat()
	gocv.Normalize(plane, &out, 0, 1, gocv.NormMinMax)
	if out.Empty() {
		out.Close()
		return gocv.NewMat(), fmt.Errorf("spectrum: normalizing reconstruction failed")
	}
	return out, nil
}
