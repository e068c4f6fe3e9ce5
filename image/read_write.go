package image

import (
	"bufio"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"mime"
	"os"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/go-imsto/imresize/utils"
)

const (
	DefaultJPEGQuality = 90
	MinJPEGQuality     = jpeg.DefaultQuality // 75
)

// WriteOption ...
type WriteOption struct {
	Format  string // target format name, empty means JPEG
	Quality int    // jpeg or webp quality
}

func (o WriteOption) quality() int {
	if o.Quality <= 0 {
		return DefaultJPEGQuality
	}
	if o.Quality < MinJPEGQuality {
		return MinJPEGQuality
	}
	if o.Quality > 100 {
		return 100
	}
	return o.Quality
}

// Decode reads a whole image from r
func Decode(r io.Reader) (image.Image, *Attr, error) {
	m, format, err := image.Decode(r)
	if err != nil {
		return nil, nil, err
	}
	b := m.Bounds()
	return m, newAttr(b.Dx(), b.Dy(), format), nil
}

// Open decodes the image file name
func Open(name string) (image.Image, *Attr, error) {
	f, size, err := openFile(name)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	m, ia, err := Decode(bufio.NewReader(f))
	if err != nil {
		return nil, nil, &DecodeError{Path: name, Err: err}
	}
	ia.Size = Size(size)
	return m, ia, nil
}

// Stat reads dimensions and format from the image header only
func Stat(name string) (*Attr, error) {
	f, size, err := openFile(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	c, format, err := image.DecodeConfig(bufio.NewReader(f))
	if err != nil {
		return nil, &DecodeError{Path: name, Err: err}
	}
	ia := newAttr(c.Width, c.Height, format)
	ia.Size = Size(size)
	return ia, nil
}

func openFile(name string) (*os.File, int64, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, 0, &DecodeError{Path: name, Err: err}
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, &DecodeError{Path: name, Err: err}
	}
	if fi.Size() == 0 {
		f.Close()
		return nil, 0, &DecodeError{Path: name, Err: ErrEmpty}
	}
	return f, fi.Size(), nil
}

func newAttr(w, h int, format string) *Attr {
	ia := NewAttr(uint(w), uint(h), FormatName(format))
	ia.Ext = FormatExt(ia.Format)
	ia.Mime = mime.TypeByExtension(ia.Ext)
	return ia
}

// SaveTo encodes m into w, returns written bytes
func SaveTo(w io.Writer, m image.Image, opt WriteOption) (int, error) {
	cw := NewCountWriter(w)
	var err error
	switch FormatName(opt.Format) {
	case FormatJPEG, "":
		err = jpeg.Encode(cw, m, &jpeg.Options{Quality: opt.quality()})
	case FormatPNG:
		err = png.Encode(cw, m)
	case FormatGIF:
		err = gif.Encode(cw, m, nil)
	case FormatTIFF:
		err = tiff.Encode(cw, m, &tiff.Options{Compression: tiff.Deflate})
	case FormatBMP:
		err = bmp.Encode(cw, m)
	case FormatWEBP:
		err = encodeWebp(cw, m, opt.quality())
	default:
		err = ErrorFormat
	}
	return cw.Len(), err
}

// SaveFile encodes m into the file name with format implied by its extension
func SaveFile(name string, m image.Image, opt WriteOption) (ia *Attr, err error) {
	if opt.Format == "" {
		opt.Format = PathFormat(name)
	}
	if opt.Format == "" {
		return nil, &EncodeError{Path: name, Err: ErrorFormat}
	}
	if err = utils.ReadyDir(name); err != nil {
		return nil, &EncodeError{Path: name, Err: err}
	}

	out, err := os.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, os.FileMode(0644))
	if err != nil {
		return nil, &EncodeError{Path: name, Err: err}
	}
	bw := bufio.NewWriter(out)
	n, err := SaveTo(bw, m, opt)
	if err == nil {
		err = bw.Flush()
	}
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return nil, &EncodeError{Path: name, Err: err}
	}

	b := m.Bounds()
	ia = newAttr(b.Dx(), b.Dy(), opt.Format)
	ia.Size = Size(n)
	return ia, nil
}
