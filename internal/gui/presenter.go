// Interactive and headless presentation of pipeline results
package gui

import (
	"errors"
	"fmt"

	"fyne.io/fyne/v2/app"
	"github.com/sirupsen/logrus"

	"dft-image-filtering/internal/core"
)

const AppID = "com.dft-image-filtering.viewer"

// Viewer kinds accepted by NewPresenter.
const (
	ViewerOpenCV = "opencv"
	ViewerFyne   = "fyne"
	ViewerNone   = "none"
)

var ErrUnknownViewer = errors.New("unknown viewer")

// Presenter shows the result views and returns once the user dismisses them.
type Presenter interface {
	Present(views []core.View) error
}

// NewPresenter returns the presenter for kind.
func NewPresenter(kind string, logger logrus.FieldLogger) (Presenter, error) {
	switch kind {
	case ViewerOpenCV:
		return NewWindowPresenter(logger), nil
	case ViewerFyne:
		return NewFynePresenter(app.NewWithID(AppID), logger), nil
	case ViewerNone:
		return NewHeadlessPresenter(logger), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownViewer, kind)
	}
}

// HeadlessPresenter only logs what would have been shown.
type HeadlessPresenter struct {
	logger logrus.FieldLogger
}

func NewHeadlessPresenter(logger logrus.FieldLogger) *HeadlessPresenter {
	return &HeadlessPresenter{logger: logger}
}

func (hp *HeadlessPresenter) Present(views []core.View) error {
	for _, v := range views {
		if v.Image.Empty() {
			return fmt.Errorf("view %q has no image", v.Title)
		}
		hp.logger.WithFields(logrus.Fields{
			"title":  v.Title,
			"width":  v.Image.Cols(),
			"height": v.Image.Rows(),
		}).Debug("GUI: Skipping display")
	}
	return nil
}
