//go:build !cgo

package image

import (
	"image"
	"io"

	_ "golang.org/x/image/webp" // decode only
)

// WebpEncodable reports whether this build can write webp files
const WebpEncodable = false

func encodeWebp(w io.Writer, m image.Image, quality int) error {
	return ErrorFormat
}
