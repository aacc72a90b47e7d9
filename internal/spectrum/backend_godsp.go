package spectrum

import (
	"github.com/mjibson/go-dsp/fft"
	"gocv.io/x/gocv"
)

// GoDSPTransformer uses go-dsp's 2D FFT. go-dsp normalizes IFFT2 by
// 1/(rows*cols), so the inverse is scaled back up to keep the
// Transformer contract.
type GoDSPTransformer struct{}

func (GoDSPTransformer) Name() string { return "godsp" }

func (t GoDSPTransformer) Forward(src gocv.Mat) (gocv.Mat, error) {
	return t.run(src, false)
}

func (t GoDSPTransformer) Inverse(src gocv.Mat) (gocv.Mat, error) {
	return t.run(src, true)
}

func (GoDSPTransformer) run(src gocv.Mat, inverse bool) (gocv.Mat, error) {
	values, err := toComplex(src)
	if err != nil {
		return gocv.NewMat(), err
	}

	rows, cols := src.Rows(), src.Cols()
	grid := make([][]complex128, rows)
	for r := range grid {
		grid[r] = values[r*cols : (r+1)*cols]
	}

	var result [][]complex128
	scale := 1.0
	if inverse {
		result = fft.IFFT2(grid)
		scale = float64(rows * cols)
	} else {
		result = fft.FFT2(grid)
	}

	flat := make([]complex128, 0, rows*cols)
	for _, row := range result {
		flat = append(flat, row...)
	}
	return fromComplex(flat, rows, cols, scale)
}
