package core

import (
	"errors"

	"dft-image-filtering/internal/io"
)

// IsUnreadable reports whether err comes from decoding the input image.
func IsUnreadable(err error) bool {
	return errors.Is(err, io.ErrUnreadableImage)
}
