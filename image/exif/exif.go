// Package exif builds a minimal EXIF block carrying a UserComment and
// splices it into image containers without touching pixel data.
package exif

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	exifv3 "github.com/dsoprea/go-exif/v3"
	exifcommon "github.com/dsoprea/go-exif/v3/common"
	exifundefined "github.com/dsoprea/go-exif/v3/undefined"
	goexif "github.com/rwcarlsen/goexif/exif"

	"github.com/go-imsto/imresize/image"
)

const ifdPathExif = "IFD/Exif"

// exifHeader prefixes the TIFF block inside JPEG APP1 segments
const exifHeader = "Exif\x00\x00"

// undefinedCode is the 8 byte character code of an UserComment with
// application defined encoding, the payload itself is UTF-8
var undefinedCode = []byte{0, 0, 0, 0, 0, 0, 0, 0}

var (
	ErrUnsupported = errors.New("format has no exif metadata slot")
	ErrTooLarge    = errors.New("exif block too large for container")
	ErrFormat      = errors.New("malformed image container")
	ErrNotFound    = errors.New("no user comment found")
)

// newBuilder returns a root IFD whose Exif IFD holds comment as UserComment
func newBuilder(comment []byte) (*exifv3.IfdBuilder, error) {
	im, err := exifcommon.NewIfdMappingWithStandard()
	if err != nil {
		return nil, err
	}
	ti := exifv3.NewTagIndex()
	rootIb := exifv3.NewIfdBuilder(im, ti, exifcommon.IfdStandardIfdIdentity, exifcommon.EncodeDefaultByteOrder)

	ib, err := exifv3.GetOrCreateIbFromRootIb(rootIb, ifdPathExif)
	if err != nil {
		return nil, err
	}
	uc := exifundefined.Tag9286UserComment{
		EncodingType:  exifundefined.TagUndefinedType_9286_UserComment_Encoding_UNDEFINED,
		EncodingBytes: comment,
	}
	if err = ib.SetStandardWithName("UserComment", uc); err != nil {
		return nil, err
	}
	return rootIb, nil
}

func encode(ib *exifv3.IfdBuilder) ([]byte, error) {
	return exifv3.NewIfdByteEncoder().EncodeToExif(ib)
}

// Build returns a big-endian TIFF structure with one Exif IFD holding comment as UserComment
func Build(comment []byte) ([]byte, error) {
	ib, err := newBuilder(comment)
	if err != nil {
		return nil, err
	}
	return encode(ib)
}

// Embed returns data with comment embedded, the container format is sniffed from data
func Embed(data, comment []byte) ([]byte, error) {
	format := image.GuessFormat(data)
	switch format {
	case image.FormatJPEG, image.FormatPNG, image.FormatWEBP:
	case "":
		return nil, ErrFormat
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, format)
	}

	ib, err := newBuilder(comment)
	if err != nil {
		return nil, err
	}
	switch format {
	case image.FormatJPEG:
		return embedJPEG(data, ib)
	case image.FormatPNG:
		return embedPNG(data, ib)
	default:
		block, err := encode(ib)
		if err != nil {
			return nil, err
		}
		return embedWebp(data, block)
	}
}

// UserComment reads the UserComment payload embedded in an image
func UserComment(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var block []byte
	switch format := image.GuessFormat(data); format {
	case image.FormatJPEG:
		block = data
	case image.FormatPNG:
		block, err = findPNGExif(data)
	case image.FormatWEBP:
		block, err = findWebpExif(data)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, format)
	}
	if err != nil {
		return nil, err
	}
	block = bytes.TrimPrefix(block, []byte(exifHeader))

	x, err := goexif.Decode(bytes.NewReader(block))
	if err != nil {
		return nil, err
	}
	tag, err := x.Get(goexif.UserComment)
	if err != nil {
		return nil, ErrNotFound
	}
	val := tag.Val
	if len(val) >= len(undefinedCode) {
		val = val[len(undefinedCode):]
	}
	return val, nil
}
