//go:build cgo

package exif

import (
	"github.com/chai2010/webp"
)

func embedWebp(data, block []byte) ([]byte, error) {
	return webp.SetMetadata(data, block, chunkWebpEXIF)
}
