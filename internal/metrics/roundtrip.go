package metrics

import (
	"fmt"
	"math"
	"time"

	"gocv.io/x/gocv"
	"gonum.org/v1/gonum/stat"

	"dft-image-filtering/internal/spectrum"
)

// RoundTripStats describes how far an unscaled inverse transform, divided
// by the transform size, lands from the original samples.
type RoundTripStats struct {
	MaxAbsError float64 `json:"max_abs_error"`
	MeanError   float64 `json:"mean_error"`
	StdDevError float64 `json:"stddev_error"`
}

// RoundTrip compares an 8-bit original with the raw inverse of its
// unmodified spectrum.
func RoundTrip(original, inverse gocv.Mat) (RoundTripStats, error) {
	if original.Empty() || inverse.Empty() {
		return RoundTripStats{}, ErrEmptyImage
	}

	plane, err := spectrum.RealPlane(inverse, original.Cols(), original.Rows())
	if err != nil {
		return RoundTripStats{}, fmt.Errorf("metrics: round trip: %w", err)
	}
	defer plane.Close()

	restored, err := samples(plane)
	if err != nil {
		return RoundTripStats{}, err
	}
	want, err := samples(original)
	if err != nil {
		return RoundTripStats{}, err
	}

	scale := 1 / float64(inverse.Rows()*inverse.Cols())
	residuals := make([]float64, len(want))
	maxAbs := 0.0
	for i := range want {
		residuals[i] = restored[i]*scale - want[i]
		maxAbs = math.Max(maxAbs, math.Abs(residuals[i]))
	}

	mean, std := stat.MeanStdDev(residuals, nil)
	return RoundTripStats{
		MaxAbsError: maxAbs,
		MeanError:   mean,
		StdDevError: std,
	}, nil
}

// QualityReport collects the quality figures of one pipeline run.
type QualityReport struct {
	RoundTrip       RoundTripStats                `json:"round_trip"`
	Reconstructions map[string]map[string]float64 `json:"reconstructions"`
	Timestamp       string                        `json:"timestamp"`
}

func NewQualityReport() *QualityReport {
	return &QualityReport{
		Reconstructions: make(map[string]map[string]float64),
		Timestamp:       time.Now().Format("2006-01-02 15:04:05"),
	}
}
