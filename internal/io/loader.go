// Grayscale image loading and result saving
package io

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"
)

var (
	// ErrUnreadableImage is returned when OpenCV cannot decode the input file.
	ErrUnreadableImage = errors.New("can't read image")

	// ErrUnsupportedFormat is returned when the output extension has no encoder.
	ErrUnsupportedFormat = errors.New("unsupported image format")

	// ErrEmptyImage is returned when an empty Mat is passed for saving.
	ErrEmptyImage = errors.New("cannot save empty image")
)

// ImageLoader handles image file operations
type ImageLoader struct {
	logger logrus.FieldLogger
}

func NewImageLoader(logger logrus.FieldLogger) *ImageLoader {
	return &ImageLoader{
		logger: logger,
	}
}

// LoadImageGrayscale decodes any raster format OpenCV understands into a
// single channel 8-bit Mat. The caller owns the returned Mat.
func (il *ImageLoader) LoadImageGrayscale(filepath string) (gocv.Mat, error) {
	il.logger.WithField("filepath", filepath).Debug("Loading image as grayscale")

	mat := gocv.IMRead(filepath, gocv.IMReadGrayScale)
	if mat.Empty() {
		mat.Close()
		return gocv.NewMat(), fmt.Errorf("%w: %s", ErrUnreadableImage, filepath)
	}

	il.logger.WithFields(logrus.Fields{
		"filepath": filepath,
		"width":    mat.Cols(),
		"height":   mat.Rows(),
		"channels": mat.Channels(),
	}).Info("Grayscale image loaded successfully")

	return mat, nil
}

func (il *ImageLoader) SaveImage(mat gocv.Mat, filepath string) error {
	il.logger.WithField("filepath", filepath).Debug("Saving image")

	if mat.Empty() {
		return ErrEmptyImage
	}

	if !il.isSupportedImageFormat(filepath) {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath)
	}

	if !gocv.IMWrite(filepath, mat) {
		return fmt.Errorf("failed to save image: %s", filepath)
	}

	il.logger.WithFields(logrus.Fields{
		"filepath": filepath,
		"width":    mat.Cols(),
		"height":   mat.Rows(),
		"channels": mat.Channels(),
	}).Info("Image saved successfully")

	return nil
}

// SaveNormalized writes a float image holding values in [0,1] after scaling
// it to the 8-bit range.
func (il *ImageLoader) SaveNormalized(mat gocv.Mat, filepath string) error {
	if mat.Empty() {
		return ErrEmptyImage
	}

	scaled := ToDisplay(mat)
	defer scaled.Close()

	return il.SaveImage(scaled, filepath)
}

// ToDisplay converts a [0,1] float image into CV_8U by scaling with 255.
// 8-bit input is cloned unchanged.
func ToDisplay(mat gocv.Mat) gocv.Mat {
	if mat.Type() == gocv.MatTypeCV8U {
		return mat.Clone()
	}

	out := gocv.NewMat()
	mat.ConvertToWithParams(&out, gocv.MatTypeCV8U, 255, 0)
	return out
}

func (il *ImageLoader) isSupportedImageFormat(filepath string) bool {
	ext := strings.ToLower(getFileExtension(filepath))
	supportedFormats := []string{".jpg", ".jpeg", ".png", ".tiff", ".tif", ".bmp", ".pgm", ".webp"}

	for _, format := range supportedFormats {
		if ext == format {
			return true
		}
	}

	return false
}

func getFileExtension(filepath string) string {
	for i := len(filepath) - 1; i >= 0; i-- {
		if filepath[i] == '.' {
			return filepath[i:]
		}
		if filepath[i] == '/' || filepath[i] == '\\' {
			break
		}
	}
	return ""
}
