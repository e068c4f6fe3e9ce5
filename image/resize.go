package image

import (
	"image"
	"math"

	"github.com/nfnt/resize"
)

// ScaleHeight keeps the aspect ratio of ow x oh at width, rounding half to even
func ScaleHeight(ow, oh int, width uint) uint {
	if ow <= 0 || oh <= 0 {
		return 0
	}
	h := math.RoundToEven(float64(width) * float64(oh) / float64(ow))
	if h < 1 {
		return 1
	}
	return uint(h)
}

// ResizeImage scales m to width with Lanczos3 resampling
func ResizeImage(m image.Image, width uint) (image.Image, error) {
	if width == 0 {
		return nil, ErrWidth
	}
	b := m.Bounds()
	height := ScaleHeight(b.Dx(), b.Dy(), width)
	if height == 0 {
		return nil, ErrorFormat
	}
	return resize.Resize(width, height, m, resize.Lanczos3), nil
}

// Resize reads src, scales it to width and writes the result to dest,
// the format of dest follows its extension
func Resize(src, dest string, width uint, opt WriteOption) (*Attr, error) {
	im, _, err := Open(src)
	if err != nil {
		logger().Infow("open fail", "src", src, "err", err)
		return nil, err
	}

	m, err := ResizeImage(im, width)
	if err != nil {
		return nil, &DecodeError{Path: src, Err: err}
	}

	ia, err := SaveFile(dest, m, opt)
	if err != nil {
		logger().Infow("save fail", "dest", dest, "err", err)
		return nil, err
	}
	logger().Debugw("resized", "src", src, "dest", dest, "attr", ia)
	return ia, nil
}
