package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"

	"dft-image-filtering/internal/filter"
	"dft-image-filtering/internal/io"
	"dft-image-filtering/internal/spectrum"
)

func newTestPipeline(t *testing.T, opts Options) (*Pipeline, *io.ImageLoader) {
	t.Helper()
	logger, _ := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	loader := io.NewImageLoader(logger)
	p, err := NewPipeline(loader, logger, opts)
	require.NoError(t, err)
	return p, loader
}

func checkerboard(t *testing.T, w, h int) gocv.Mat {
	t.Helper()
	img := gocv.NewMatWithSize(h, w, gocv.MatTypeCV8UC1)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint8(0)
			if (x/8+y/8)%2 == 0 {
				v = 255
			}
			img.SetUCharAt(y, x, v)
		}
	}
	t.Cleanup(func() { img.Close() })
	return img
}

func TestProcessProducesAllImages(t *testing.T) {
	for _, backend := range spectrum.Names() {
		t.Run(backend, func(t *testing.T) {
			opts := DefaultOptions()
			opts.Backend = backend
			p, _ := newTestPipeline(t, opts)

			src := checkerboard(t, 100, 75)
			r, err := p.Process(src)
			require.NoError(t, err)
			defer r.Close()

			assert.Equal(t, ImageMetadata{
				Width: 100, Height: 75,
				PaddedWidth: 100, PaddedHeight: 75,
				Backend: backend, Radius: filter.DefaultRadius,
			}, r.Metadata)

			for _, m := range []gocv.Mat{r.LowMask, r.HighMask} {
				assert.Equal(t, 75, m.Rows())
				assert.Equal(t, 100, m.Cols())
			}
			for _, m := range []gocv.Mat{r.Magnitude, r.LowSpectrum, r.HighSpectrum} {
				assert.Equal(t, 74, m.Rows())
				assert.Equal(t, 100, m.Cols())
			}
			for _, m := range []gocv.Mat{r.IDFT, r.IDFTLow, r.IDFTHigh} {
				assert.Equal(t, 75, m.Rows())
				assert.Equal(t, 100, m.Cols())
				minVal, maxVal, _, _ := gocv.MinMaxLoc(m)
				assert.GreaterOrEqual(t, minVal, float32(0))
				assert.LessOrEqual(t, maxVal, float32(1))
			}

			require.NotNil(t, r.Quality)
			assert.Less(t, r.Quality.RoundTrip.MaxAbsError, 0.05)
			assert.Greater(t, r.Quality.Reconstructions[TitleIDFT]["psnr"], 40.0)
			assert.Contains(t, r.Quality.Reconstructions, TitleIDFTLow)
			assert.Contains(t, r.Quality.Reconstructions, TitleIDFTHigh)
		})
	}
}

func TestProcessPadsToOptimalSize(t *testing.T) {
	p, _ := newTestPipeline(t, DefaultOptions())

	r, err := p.Process(checkerboard(t, 181, 257))
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, 192, r.Metadata.PaddedWidth)
	assert.Equal(t, 270, r.Metadata.PaddedHeight)
	assert.Equal(t, 270, r.LowMask.Rows())
	assert.Equal(t, 192, r.LowMask.Cols())
	assert.Equal(t, 181, r.IDFT.Cols())
	assert.Equal(t, 257, r.IDFT.Rows())
}

func TestProcessWithoutQuality(t *testing.T) {
	opts := DefaultOptions()
	opts.Quality = false
	p, _ := newTestPipeline(t, opts)

	r, err := p.Process(checkerboard(t, 32, 32))
	require.NoError(t, err)
	defer r.Close()
	assert.Nil(t, r.Quality)
}

func TestProcessEmptyImage(t *testing.T) {
	p, _ := newTestPipeline(t, DefaultOptions())
	empty := gocv.NewMat()
	defer empty.Close()

	_, err := p.Process(empty)
	assert.ErrorIs(t, err, spectrum.ErrEmptyInput)
}

func TestNewPipelineValidatesOptions(t *testing.T) {
	logger, _ := test.NewNullLogger()
	loader := io.NewImageLoader(logger)

	opts := DefaultOptions()
	opts.Backend = "nope"
	_, err := NewPipeline(loader, logger, opts)
	assert.ErrorIs(t, err, spectrum.ErrUnknownBackend)

	opts = DefaultOptions()
	opts.Filter.Radius = 0
	_, err = NewPipeline(loader, logger, opts)
	assert.Error(t, err)
}

func TestRunUnreadableImage(t *testing.T) {
	p, _ := newTestPipeline(t, DefaultOptions())
	path := filepath.Join(t.TempDir(), "nothing.png")

	_, err := p.Run(path)
	require.Error(t, err)
	assert.True(t, IsUnreadable(err))
	assert.Contains(t, err.Error(), path)
}

func TestViewsOrder(t *testing.T) {
	p, _ := newTestPipeline(t, DefaultOptions())
	r, err := p.Process(checkerboard(t, 16, 16))
	require.NoError(t, err)
	defer r.Close()

	var titles []string
	for _, v := range r.Views() {
		titles = append(titles, v.Title)
		assert.False(t, v.Image.Empty(), v.Title)
	}
	assert.Equal(t, []string{"original", "dft", "idft", "idft_lpf", "idft_hpf"}, titles)
}

func TestOutputsNaming(t *testing.T) {
	r := &Result{Source: filepath.Join("images", "lena.png")}

	var paths []string
	for _, out := range r.Outputs("") {
		paths = append(paths, out.Path)
	}
	assert.Equal(t, []string{
		"LPF.jpg",
		"HPF.jpg",
		"LPF_spectrum.jpg",
		"HPF_spectrum.jpg",
		filepath.Join("images", "lena.png_dft.jpg"),
		filepath.Join("images", "lena.png_idft.jpg"),
		filepath.Join("images", "lena.png_idft_lpf.jpg"),
		filepath.Join("images", "lena.png_idft_hpf.jpg"),
	}, paths)

	paths = paths[:0]
	for _, out := range r.Outputs("out") {
		paths = append(paths, out.Path)
	}
	assert.Equal(t, filepath.Join("out", "LPF.jpg"), paths[0])
	assert.Equal(t, filepath.Join("out", "lena.png_idft_hpf.jpg"), paths[7])
}

func TestRunAndWriteOutputs(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "board.png")
	src := checkerboard(t, 64, 48)
	require.True(t, gocv.IMWrite(input, src))

	p, loader := newTestPipeline(t, DefaultOptions())
	r, err := p.Run(input)
	require.NoError(t, err)
	defer r.Close()
	assert.Equal(t, input, r.Source)

	outDir := filepath.Join(dir, "results")
	require.NoError(t, os.MkdirAll(outDir, 0o755))
	require.NoError(t, WriteOutputs(loader, r.Outputs(outDir)))

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	assert.Len(t, entries, 8)

	mask, err := loader.LoadImageGrayscale(filepath.Join(outDir, "LPF.jpg"))
	require.NoError(t, err)
	defer mask.Close()
	assert.Equal(t, 64, mask.Cols())
	assert.Equal(t, 48, mask.Rows())
}

func TestResultCloseIsSafeWhenPartial(t *testing.T) {
	r := &Result{Original: gocv.NewMat()}
	assert.NotPanics(t, r.Close)
}
