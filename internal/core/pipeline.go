// internal/core/pipeline.go
// Single forward pass: load, transform, mask, invert, reconstruct
package core

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"

	"dft-image-filtering/internal/filter"
	"dft-image-filtering/internal/io"
	"dft-image-filtering/internal/metrics"
	"dft-image-filtering/internal/spectrum"
)

// Options selects the transform backend and mask parameters.
type Options struct {
	Backend string
	Filter  filter.Params
	Quality bool
}

func DefaultOptions() Options {
	return Options{
		Backend: spectrum.DefaultBackend,
		Filter:  filter.DefaultParams(),
		Quality: true,
	}
}

// Pipeline runs the frequency-domain filtering demonstration.
type Pipeline struct {
	loader      *io.ImageLoader
	transformer spectrum.Transformer
	params      filter.Params
	evaluator   *metrics.Evaluator
	logger      logrus.FieldLogger
}

func NewPipeline(loader *io.ImageLoader, logger logrus.FieldLogger, opts Options) (*Pipeline, error) {
	transformer, err := spectrum.Lookup(opts.Backend)
	if err != nil {
		return nil, err
	}
	if err := opts.Filter.Validate(); err != nil {
		return nil, fmt.Errorf("invalid filter parameters: %w", err)
	}

	p := &Pipeline{
		loader:      loader,
		transformer: transformer,
		params:      opts.Filter,
		logger:      logger,
	}
	if opts.Quality {
		p.evaluator = metrics.NewEvaluator()
	}
	return p, nil
}

// Run loads the image at path and processes it. Load failures keep
// io.ErrUnreadableImage in their chain.
func (p *Pipeline) Run(path string) (*Result, error) {
	original, err := p.loader.LoadImageGrayscale(path)
	if err != nil {
		return nil, err
	}
	defer original.Close()

	result, err := p.Process(original)
	if err != nil {
		return nil, err
	}
	result.Source = path
	return result, nil
}

// Process runs every stage on an 8-bit grayscale image. The input is
// cloned; the caller owns the returned Result and must Close it.
func (p *Pipeline) Process(original gocv.Mat) (*Result, error) {
	if original.Empty() {
		return nil, spectrum.ErrEmptyInput
	}

	r := &Result{Original: original.Clone()}
	success := false
	defer func() {
		if !success {
			r.Close()
		}
	}()

	width, height := original.Cols(), original.Rows()
	p.logger.WithFields(logrus.Fields{
		"width":   width,
		"height":  height,
		"backend": p.transformer.Name(),
		"radius":  p.params.Radius,
	}).Info("PIPELINE: Starting frequency filtering")

	// Every stage helper returns a valid (possibly empty) Mat alongside its
	// error, so results are deferred for closing before the error check.
	done := p.track("forward_dft")
	buffer, err := spectrum.BuildComplex(original)
	defer buffer.Close()
	if err != nil {
		return nil, p.fail("forward_dft", err)
	}
	freq, err := p.transformer.Forward(buffer)
	defer freq.Close()
	if err != nil {
		return nil, p.fail("forward_dft", err)
	}
	done()

	r.Metadata = ImageMetadata{
		Width:        width,
		Height:       height,
		PaddedWidth:  freq.Cols(),
		PaddedHeight: freq.Rows(),
		Backend:      p.transformer.Name(),
		Radius:       p.params.Radius,
	}

	done = p.track("magnitude")
	if r.Magnitude, err = spectrum.Magnitude(freq); err != nil {
		return nil, p.fail("magnitude", err)
	}
	done()

	done = p.track("mask_filter")
	masks, err := filter.NewPair(freq.Rows(), freq.Cols(), p.params)
	if err != nil {
		return nil, p.fail("mask_filter", err)
	}
	r.LowMask, r.HighMask = masks.Low, masks.High

	lowFreq, err := filter.Apply(freq, r.LowMask)
	defer lowFreq.Close()
	if err != nil {
		return nil, p.fail("mask_filter", err)
	}
	highFreq, err := filter.Apply(freq, r.HighMask)
	defer highFreq.Close()
	if err != nil {
		return nil, p.fail("mask_filter", err)
	}
	if r.LowSpectrum, err = spectrum.Magnitude(lowFreq); err != nil {
		return nil, p.fail("mask_filter", err)
	}
	if r.HighSpectrum, err = spectrum.Magnitude(highFreq); err != nil {
		return nil, p.fail("mask_filter", err)
	}
	done()

	done = p.track("inverse_dft")
	inverse, err := p.transformer.Inverse(freq)
	defer inverse.Close()
	if err != nil {
		return nil, p.fail("inverse_dft", err)
	}
	if r.IDFT, err = spectrum.Reconstruct(inverse, width, height); err != nil {
		return nil, p.fail("inverse_dft", err)
	}
	if r.IDFTLow, err = p.invert(lowFreq, width, height); err != nil {
		return nil, p.fail("inverse_dft", err)
	}
	if r.IDFTHigh, err = p.invert(highFreq, width, height); err != nil {
		return nil, p.fail("inverse_dft", err)
	}
	done()

	if p.evaluator != nil {
		r.Quality = p.evaluate(r, inverse)
	}

	success = true
	p.logger.WithFields(logrus.Fields{
		"padded_width":  r.Metadata.PaddedWidth,
		"padded_height": r.Metadata.PaddedHeight,
	}).Info("PIPELINE: Frequency filtering completed")
	return r, nil
}

func (p *Pipeline) invert(freq gocv.Mat, width, height int) (gocv.Mat, error) {
	inverse, err := p.transformer.Inverse(freq)
	if err != nil {
		return gocv.NewMat(), err
	}
	defer inverse.Close()
	return spectrum.Reconstruct(inverse, width, height)
}

// evaluate never fails the run; problems are logged and the figure skipped.
func (p *Pipeline) evaluate(r *Result, inverse gocv.Mat) *metrics.QualityReport {
	report := metrics.NewQualityReport()

	roundTrip, err := metrics.RoundTrip(r.Original, inverse)
	if err != nil {
		p.logger.WithError(err).Warn("PIPELINE: Round trip check failed")
	} else {
		report.RoundTrip = roundTrip
	}

	for _, view := range r.Views()[1:] {
		if view.Title == TitleDFT {
			continue
		}
		report.Reconstructions[view.Title] = p.evaluator.CompareNormalized(r.Original, view.Image)
	}

	p.logger.WithFields(logrus.Fields{
		"round_trip_max_abs": report.RoundTrip.MaxAbsError,
		"idft":               report.Reconstructions[TitleIDFT],
		"idft_lpf":           report.Reconstructions[TitleIDFTLow],
		"idft_hpf":           report.Reconstructions[TitleIDFTHigh],
	}).Info("PIPELINE: Reconstruction quality")
	return report
}

// track returns a func that logs the stage duration at debug level.
func (p *Pipeline) track(name string) func() {
	start := time.Now()
	return func() {
		p.logger.WithFields(logrus.Fields{
			"stage":    name,
			"duration": time.Since(start),
		}).Debug("PIPELINE: Stage completed")
	}
}

func (p *Pipeline) fail(stage string, err error) error {
	p.logger.WithField("stage", stage).WithError(err).Error("PIPELINE: Stage failed")
	return fmt.Errorf("%s: %w", stage, err)
}
