package gui

import (
	"fmt"
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"

	"dft-image-filtering/internal/core"
	"dft-image-filtering/internal/io"
)

// FynePresenter shows each view in its own fyne window. Typing any key in
// one of them quits the application, which returns from Present.
type FynePresenter struct {
	app    fyne.App
	logger logrus.FieldLogger
	quit   func()
}

func NewFynePresenter(a fyne.App, logger logrus.FieldLogger) *FynePresenter {
	return &FynePresenter{
		app:    a,
		logger: logger,
		quit:   a.Quit,
	}
}

func (fp *FynePresenter) Present(views []core.View) error {
	windows, err := fp.BuildWindows(views)
	if err != nil {
		return err
	}
	for _, w := range windows {
		w.Show()
	}

	fp.logger.WithField("windows", len(windows)).Info("GUI: Press any key in a window to continue")
	fp.app.Run()
	return nil
}

// BuildWindows creates, without showing them, one window per view.
func (fp *FynePresenter) BuildWindows(views []core.View) ([]fyne.Window, error) {
	windows := make([]fyne.Window, 0, len(views))
	for _, v := range views {
		img, err := toImage(v.Image)
		if err != nil {
			return nil, fmt.Errorf("view %q: %w", v.Title, err)
		}

		picture := canvas.NewImageFromImage(img)
		picture.FillMode = canvas.ImageFillOriginal
		picture.ScaleMode = canvas.ImageScalePixels

		w := fp.app.NewWindow(v.Title)
		w.SetContent(picture)
		w.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
			fp.logger.WithField("key", ev.Name).Debug("GUI: Key pressed")
			fp.quit()
		})
		windows = append(windows, w)
	}
	return windows, nil
}

// toImage converts an 8-bit or [0,1] float Mat to a Go image.
func toImage(m gocv.Mat) (image.Image, error) {
	if m.Empty() {
		return nil, fmt.Errorf("empty image")
	}

	display := io.ToDisplay(m)
	defer display.Close()
	return display.ToImage()
}
