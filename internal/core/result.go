// Pipeline products, display views and output files
package core

import (
	"fmt"
	"path/filepath"

	"gocv.io/x/gocv"

	"dft-image-filtering/internal/io"
	"dft-image-filtering/internal/metrics"
)

// Window titles, in display order.
const (
	TitleOriginal = "original"
	TitleDFT      = "dft"
	TitleIDFT     = "idft"
	TitleIDFTLow  = "idft_lpf"
	TitleIDFTHigh = "idft_hpf"
)

// ImageMetadata contains image and transform information
type ImageMetadata struct {
	Width        int
	Height       int
	PaddedWidth  int
	PaddedHeight int
	Backend      string
	Radius       int
}

// Result owns every image produced by one pipeline run.
//
// Original, LowMask and HighMask are CV_8UC1. Magnitude, LowSpectrum and
// HighSpectrum are float32 spectrum views in [0,1] at the (even-cropped)
// padded size. IDFT, IDFTLow and IDFTHigh are float32 in [0,1] at the
// original size.
type Result struct {
	Source   string
	Metadata ImageMetadata

	Original     gocv.Mat
	Magnitude    gocv.Mat
	LowMask      gocv.Mat
	HighMask     gocv.Mat
	LowSpectrum  gocv.Mat
	HighSpectrum gocv.Mat
	IDFT         gocv.Mat
	IDFTLow      gocv.Mat
	IDFTHigh     gocv.Mat

	Quality *metrics.QualityReport
}

// View is a titled image for interactive display.
type View struct {
	Title string
	Image gocv.Mat
}

// Views returns the five display images in window order.
func (r *Result) Views() []View {
	return []View{
		{Title: TitleOriginal, Image: r.Original},
		{Title: TitleDFT, Image: r.Magnitude},
		{Title: TitleIDFT, Image: r.IDFT},
		{Title: TitleIDFTLow, Image: r.IDFTLow},
		{Title: TitleIDFTHigh, Image: r.IDFTHigh},
	}
}

// Output is one file written after display.
type Output struct {
	Path  string
	Image gocv.Mat

	// Normalized images hold [0,1] floats and are scaled by 255 on write.
	Normalized bool
}

// Outputs lists the eight result files. With an empty outDir the mask and
// masked-spectrum files land in the working directory and the others next
// to the source path; otherwise everything goes to outDir.
func (r *Result) Outputs(outDir string) []Output {
	derived := func(suffix string) string {
		if outDir == "" {
			return r.Source + suffix
		}
		return filepath.Join(outDir, filepath.Base(r.Source)+suffix)
	}
	fixed := func(name string) string {
		return filepath.Join(outDir, name)
	}

	return []Output{
		{Path: fixed("LPF.jpg"), Image: r.LowMask},
		{Path: fixed("HPF.jpg"), Image: r.HighMask},
		{Path: fixed("LPF_spectrum.jpg"), Image: r.LowSpectrum, Normalized: true},
		{Path: fixed("HPF_spectrum.jpg"), Image: r.HighSpectrum, Normalized: true},
		{Path: derived("_dft.jpg"), Image: r.Magnitude, Normalized: true},
		{Path: derived("_idft.jpg"), Image: r.IDFT, Normalized: true},
		{Path: derived("_idft_lpf.jpg"), Image: r.IDFTLow, Normalized: true},
		{Path: derived("_idft_hpf.jpg"), Image: r.IDFTHigh, Normalized: true},
	}
}

// WriteOutputs saves every output and stops at the first failure.
func WriteOutputs(loader *io.ImageLoader, outputs []Output) error {
	for _, out := range outputs {
		var err error
		if out.Normalized {
			err = loader.SaveNormalized(out.Image, out.Path)
		} else {
			err = loader.SaveImage(out.Image, out.Path)
		}
		if err != nil {
			return fmt.Errorf("writing %s: %w", out.Path, err)
		}
	}
	return nil
}

// Close releases all images. It is safe on a partially built Result.
func (r *Result) Close() {
	for _, m := range []*gocv.Mat{
		&r.Original, &r.Magnitude, &r.LowMask, &r.HighMask,
		&r.LowSpectrum, &r.HighSpectrum, &r.IDFT, &r.IDFTLow, &r.IDFTHigh,
	} {
		if m.Ptr() != nil {
			m.Close()
		}
	}
}
