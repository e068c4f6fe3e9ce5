package exif

import (
	"bytes"
	"errors"
	"fmt"

	exifv3 "github.com/dsoprea/go-exif/v3"
	pngstructure "github.com/dsoprea/go-png-image-structure/v2"
)

func parsePNG(data []byte) (*pngstructure.ChunkSlice, error) {
	mc, err := pngstructure.NewPngMediaParser().ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrFormat, err)
	}
	cs, ok := mc.(*pngstructure.ChunkSlice)
	if !ok {
		return nil, ErrFormat
	}
	return cs, nil
}

// embedPNG sets the eXIf chunk, a new one goes right after IHDR
func embedPNG(data []byte, ib *exifv3.IfdBuilder) ([]byte, error) {
	cs, err := parsePNG(data)
	if err != nil {
		return nil, err
	}
	if err = cs.SetExif(ib); err != nil {
		return nil, err
	}

	var out bytes.Buffer
	out.Grow(len(data) + 256)
	if err = cs.WriteTo(&out); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func findPNGExif(data []byte) ([]byte, error) {
	cs, err := parsePNG(data)
	if err != nil {
		return nil, err
	}
	c, err := cs.FindExif()
	if errors.Is(err, exifv3.ErrNoExif) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c.Data, nil
}
