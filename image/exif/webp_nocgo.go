//go:build !cgo

package exif

import "fmt"

func embedWebp(data, block []byte) ([]byte, error) {
	return nil, fmt.Errorf("%w: WEBP without cgo", ErrUnsupported)
}
