package exif

import (
	"bytes"
	"fmt"

	exifv3 "github.com/dsoprea/go-exif/v3"
	jpegstructure "github.com/dsoprea/go-jpeg-image-structure/v2"
)

// segment length field counts itself
const maxSegment = 0xffff

// embedJPEG sets the Exif APP1 segment, a new one goes right after SOI
func embedJPEG(data []byte, ib *exifv3.IfdBuilder) ([]byte, error) {
	block, err := encode(ib)
	if err != nil {
		return nil, err
	}
	if 2+len(exifHeader)+len(block) > maxSegment {
		return nil, ErrTooLarge
	}

	mc, err := jpegstructure.NewJpegMediaParser().ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrFormat, err)
	}
	sl, ok := mc.(*jpegstructure.SegmentList)
	if !ok {
		return nil, ErrFormat
	}
	if err = sl.SetExif(ib); err != nil {
		return nil, err
	}

	var out bytes.Buffer
	out.Grow(len(data) + len(block) + 16)
	if err = sl.Write(&out); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
