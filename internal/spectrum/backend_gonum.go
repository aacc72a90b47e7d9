package spectrum

import (
	"gocv.io/x/gocv"
	"gonum.org/v1/gonum/dsp/fourier"
)

// GonumTransformer runs separable row and column passes of
// gonum's complex FFT.
type GonumTransformer struct{}

func (GonumTransformer) Name() string { return "gonum" }

func (t GonumTransformer) Forward(src gocv.Mat) (gocv.Mat, error) {
	return t.run(src, false)
}

func (t GonumTransformer) Inverse(src gocv.Mat) (gocv.Mat, error) {
	return t.run(src, true)
}

func (GonumTransformer) run(src gocv.Mat, inverse bool) (gocv.Mat, error) {
	values, err := toComplex(src)
	if err != nil {
		return gocv.NewMat(), err
	}

	rows, cols := src.Rows(), src.Cols()
	pass := func(fft *fourier.CmplxFFT, seq []complex128) {
		if inverse {
			fft.Sequence(seq, seq)
		} else {
			fft.Coefficients(seq, seq)
		}
	}

	rowFFT := fourier.NewCmplxFFT(cols)
	for r := 0; r < rows; r++ {
		pass(rowFFT, values[r*cols:(r+1)*cols])
	}

	colFFT := fourier.NewCmplxFFT(rows)
	column := make([]complex128, rows)
	for c := 0; c < cols; c++ {
		for r := 0; r < rows; r++ {
			column[r] = values[r*cols+c]
		}
		pass(colFFT, column)
		for r := 0; r < rows; r++ {
			values[r*cols+c] = column[r]
		}
	}

	return fromComplex(values, rows, cols, 1)
}
