// Reconstruction quality metrics
package metrics

import (
	"errors"
	"fmt"
	"sort"

	"gocv.io/x/gocv"
)

var (
	// ErrEmptyImage is returned when either operand is empty.
	ErrEmptyImage = errors.New("metrics: empty image")

	// ErrSizeMismatch is returned when operands differ in size.
	ErrSizeMismatch = errors.New("metrics: image dimensions mismatch")
)

// Metric compares an original 8-bit image with a processed one.
type Metric interface {
	// Calculate computes the metric value
	Calculate(original, processed gocv.Mat) (float64, error)

	GetName() string
	GetDescription() string

	// IsHigherBetter returns true if higher values indicate better quality
	IsHigherBetter() bool
}

// Evaluator manages and calculates multiple metrics
type Evaluator struct {
	metrics map[string]Metric
}

// NewEvaluator creates an evaluator with PSNR, MSE and SSIM registered.
func NewEvaluator() *Evaluator {
	e := &Evaluator{
		metrics: make(map[string]Metric),
	}
	e.RegisterDefaultMetrics()
	return e
}

func (e *Evaluator) RegisterDefaultMetrics() {
	e.Register("psnr", NewPSNR())
	e.Register("mse", NewMSE())
	e.Register("ssim", NewSSIM())
}

func (e *Evaluator) Register(name string, metric Metric) {
	e.metrics[name] = metric
}

// Names returns the registered metric names in sorted order.
func (e *Evaluator) Names() []string {
	names := make([]string, 0, len(e.metrics))
	for name := range e.metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (e *Evaluator) Calculate(name string, original, processed gocv.Mat) (float64, error) {
	metric, exists := e.metrics[name]
	if !exists {
		return 0, fmt.Errorf("metric not found: %s", name)
	}
	return metric.Calculate(original, processed)
}

// CalculateAll calculates all registered metrics, skipping failures
func (e *Evaluator) CalculateAll(original, processed gocv.Mat) map[string]float64 {
	results := make(map[string]float64)
	for name, metric := range e.metrics {
		if value, err := metric.Calculate(original, processed); err == nil {
			results[name] = value
		}
	}
	return results
}

// CompareNormalized scores a [0,1] float reconstruction against the 8-bit
// original after scaling it back to 0..255.
func (e *Evaluator) CompareNormalized(original, normalized gocv.Mat) map[string]float64 {
	scaled := gocv.NewMat()
	defer scaled.Close()
	normalized.ConvertToWithParams(&scaled, gocv.MatTypeCV8U, 255, 0)

	return e.CalculateAll(original, scaled)
}

func validatePair(original, processed gocv.Mat) error {
	if original.Empty() || processed.Empty() {
		return ErrEmptyImage
	}
	if original.Rows() != processed.Rows() || original.Cols() != processed.Cols() {
		return fmt.Errorf("%w: %dx%d vs %dx%d", ErrSizeMismatch,
			original.Cols(), original.Rows(), processed.Cols(), processed.Rows())
	}
	return nil
}
