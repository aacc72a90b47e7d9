package spectrum

import (
	"fmt"

	"gocv.io/x/gocv"
)

// toComplex copies a CV_32FC2 Mat into a row-major slice.
func toComplex(m gocv.Mat) ([]complex128, error) {
	if err := checkComplex(m); err != nil {
		return nil, err
	}

	src := m
	if !m.IsContinuous() {
		src = m.Clone()
		defer src.Close()
	}

	data, err := src.DataPtrFloat32()
	if err != nil {
		return nil, fmt.Errorf("spectrum: reading complex buffer: %w", err)
	}

	out := make([]complex128, src.Rows()*src.Cols())
	for i := range out {
		out[i] = complex(float64(data[2*i]), float64(data[2*i+1]))
	}
	return out, nil
}

// fromComplex builds a CV_32FC2 Mat from a row-major slice, multiplying
// every sample by scale.
func fromComplex(values []complex128, rows, cols int, scale float64) (gocv.Mat, error) {
	if len(values) != rows*cols {
		return gocv.NewMat(), fmt.Errorf("%w: %d samples for %dx%d", ErrInvalidSize, len(values), cols, rows)
	}

	out := gocv.NewMatWithSize(rows, cols, gocv.MatTypeCV32FC2)
	data, err := out.DataPtrFloat32()
	if err != nil {
		out.Close()
		return gocv.NewMat(), fmt.Errorf("spectrum: writing complex buffer: %w", err)
	}

	for i, v := range values {
		data[2*i] = float32(real(v) * scale)
		data[2*i+1] = float32(imag(v) * scale)
	}
	return out, nil
}
