package spectrum

import "errors"

var (
	// ErrEmptyInput is returned when a stage receives an empty Mat.
	ErrEmptyInput = errors.New("spectrum: empty input")

	// ErrNotGrayscale is returned when the builder receives a multi-channel image.
	ErrNotGrayscale = errors.New("spectrum: input is not single channel")

	// ErrNotComplex is returned when a buffer is not a two channel float32 Mat.
	ErrNotComplex = errors.New("spectrum: buffer is not CV_32FC2")

	// ErrInvalidSize is returned when a crop size does not fit the buffer.
	ErrInvalidSize = errors.New("spectrum: invalid size")

	// ErrUnknownBackend is returned for transform backends that were never registered.
	ErrUnknownBackend = errors.New("spectrum: unknown transform backend")
)
