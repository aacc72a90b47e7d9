package gui

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"

	"dft-image-filtering/internal/core"
)

// WindowPresenter opens one OpenCV highgui window per view and blocks
// until a key is pressed in any of them.
type WindowPresenter struct {
	logger logrus.FieldLogger
}

func NewWindowPresenter(logger logrus.FieldLogger) *WindowPresenter {
	return &WindowPresenter{logger: logger}
}

func (wp *WindowPresenter) Present(views []core.View) error {
	if len(views) == 0 {
		return nil
	}

	windows := make([]*gocv.Window, 0, len(views))
	defer func() {
		for _, w := range windows {
			w.Close()
		}
	}()

	for _, v := range views {
		if v.Image.Empty() {
			return fmt.Errorf("view %q has no image", v.Title)
		}
		w := gocv.NewWindow(v.Title)
		w.IMShow(v.Image)
		windows = append(windows, w)
	}

	wp.logger.WithField("windows", len(windows)).Info("GUI: Press any key in a window to continue")
	key := windows[0].WaitKey(0)
	wp.logger.WithField("key", key).Debug("GUI: Key pressed")
	return nil
}
