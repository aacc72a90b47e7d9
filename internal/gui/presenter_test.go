package gui

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"

	"dft-image-filtering/internal/core"
)

func sampleViews(t *testing.T) []core.View {
	t.Helper()
	gray := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(100, 0, 0, 0), 20, 30, gocv.MatTypeCV8UC1)
	unit := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0.25, 0, 0, 0), 20, 30, gocv.MatTypeCV32F)
	t.Cleanup(func() {
		gray.Close()
		unit.Close()
	})

	return []core.View{
		{Title: core.TitleOriginal, Image: gray},
		{Title: core.TitleDFT, Image: unit},
		{Title: core.TitleIDFT, Image: unit},
		{Title: core.TitleIDFTLow, Image: unit},
		{Title: core.TitleIDFTHigh, Image: unit},
	}
}

func TestNewPresenter(t *testing.T) {
	logger, _ := logtest.NewNullLogger()

	p, err := NewPresenter(ViewerNone, logger)
	require.NoError(t, err)
	assert.IsType(t, &HeadlessPresenter{}, p)

	p, err = NewPresenter(ViewerOpenCV, logger)
	require.NoError(t, err)
	assert.IsType(t, &WindowPresenter{}, p)

	_, err = NewPresenter("tk", logger)
	assert.ErrorIs(t, err, ErrUnknownViewer)
}

func TestHeadlessPresenter(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	p := NewHeadlessPresenter(logger)
	require.NoError(t, p.Present(sampleViews(t)))
	assert.Len(t, hook.AllEntries(), 5)

	empty := gocv.NewMat()
	defer empty.Close()
	err := p.Present([]core.View{{Title: "broken", Image: empty}})
	assert.ErrorContains(t, err, "broken")
}

func TestFynePresenterBuildsOneWindowPerView(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	logger, _ := logtest.NewNullLogger()
	fp := NewFynePresenter(a, logger)
	quits := 0
	fp.quit = func() { quits++ }

	views := sampleViews(t)
	windows, err := fp.BuildWindows(views)
	require.NoError(t, err)
	require.Len(t, windows, len(views))

	for i, w := range windows {
		assert.Equal(t, views[i].Title, w.Title())
		require.NotNil(t, w.Content())
	}

	windows[3].Canvas().OnTypedKey()(&fyne.KeyEvent{Name: fyne.KeySpace})
	assert.Equal(t, 1, quits)
}

func TestToImage(t *testing.T) {
	views := sampleViews(t)

	img, err := toImage(views[0].Image)
	require.NoError(t, err)
	assert.Equal(t, 30, img.Bounds().Dx())
	assert.Equal(t, 20, img.Bounds().Dy())

	img, err = toImage(views[1].Image)
	require.NoError(t, err)
	r, _, _, _ := img.At(0, 0).RGBA()
	assert.Equal(t, uint32(64)*0x101, r)

	empty := gocv.NewMat()
	defer empty.Close()
	_, err = toImage(empty)
	assert.Error(t, err)
}
