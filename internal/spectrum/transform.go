// Forward and inverse 2D transforms with pluggable backends
package spectrum

import (
	"fmt"
	"sort"

	"gocv.io/x/gocv"
)

// DefaultBackend is the transform used when none is configured.
const DefaultBackend = "opencv"

// Transformer computes the 2D DFT of a CV_32FC2 buffer and its inverse.
//
// Neither direction scales its output: Inverse(Forward(x)) equals x
// multiplied by rows*cols, which matches cv::idft without DFT_SCALE.
// Outputs always have the input's dimensions and are owned by the caller.
type Transformer interface {
	Name() string
	Forward(src gocv.Mat) (gocv.Mat, error)
	Inverse(src gocv.Mat) (gocv.Mat, error)
}

var backends = make(map[string]Transformer)

func Register(name string, t Transformer) {
	backends[name] = t
}

func Get(name string) (Transformer, bool) {
	t, exists := backends[name]
	return t, exists
}

// Lookup is Get with an error naming the known backends.
func Lookup(name string) (Transformer, error) {
	t, exists := backends[name]
	if !exists {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownBackend, name, Names())
	}
	return t, nil
}

// Names returns the registered backend names in sorted order.
func Names() []string {
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func init() {
	Register("opencv", OpenCVTransformer{})
	Register("gonum", GonumTransformer{})
	Register("godsp", GoDSPTransformer{})
}

// OpenCVTransformer delegates to cv::dft.
type OpenCVTransformer struct{}

func (OpenCVTransformer) Name() string { return "opencv" }

func (t OpenCVTransformer) Forward(src gocv.Mat) (gocv.Mat, error) {
	return t.run(src, gocv.DftForward)
}

func (t OpenCVTransformer) Inverse(src gocv.Mat) (gocv.Mat, error) {
	return t.run(src, gocv.DftInverse)
}

func (OpenCVTransformer) run(src gocv.Mat, flags gocv.DftFlags) (gocv.Mat, error) {
	if err := checkComplex(src); err != nil {
		return gocv.NewMat(), err
	}

	dst := gocv.NewMat()
	gocv.DFT(src, &dst, flags)
	if dst.Empty() || dst.Type() != gocv.MatTypeCV32FC2 {
		dst.Close()
		return gocv.NewMat(), fmt.Errorf("spectrum: opencv dft (flags %d) produced no complex output", flags)
	}
	return dst, nil
}
