package image

import (
	"path/filepath"
	"strings"
)

// Format names as reported in metadata
const (
	FormatJPEG = "JPEG"
	FormatPNG  = "PNG"
	FormatGIF  = "GIF"
	FormatTIFF = "TIFF"
	FormatBMP  = "BMP"
	FormatWEBP = "WEBP"
)

const (
	SIG_GIF  = "GIF8"
	SIG_JPG  = "\xff\xd8\xff"
	SIG_PNG  = "\211PNG\r\n\032\n"
	SIG_RIFF = "RIFF"
	SIG_BMP  = "BM"
)

var extFormats = map[string]string{
	".jpg":  FormatJPEG,
	".jpeg": FormatJPEG,
	".png":  FormatPNG,
	".gif":  FormatGIF,
	".tif":  FormatTIFF,
	".tiff": FormatTIFF,
	".bmp":  FormatBMP,
	".webp": FormatWEBP,
}

var formatExts = map[string]string{
	FormatJPEG: ".jpg",
	FormatPNG:  ".png",
	FormatGIF:  ".gif",
	FormatTIFF: ".tiff",
	FormatBMP:  ".bmp",
	FormatWEBP: ".webp",
}

// Ext2Format returns format name by file extension (with or without dot), or empty
func Ext2Format(ext string) string {
	ext = strings.ToLower(ext)
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return extFormats[ext]
}

// PathFormat returns format name by the extension of path
func PathFormat(name string) string {
	return Ext2Format(filepath.Ext(name))
}

// FormatExt ...
func FormatExt(format string) string {
	return formatExts[strings.ToUpper(format)]
}

// FormatName normalizes a decoder name, eg: jpeg -> JPEG
func FormatName(name string) string {
	return strings.ToUpper(name)
}

// GuessFormat sniffs format name from leading bytes
func GuessFormat(head []byte) string {
	s := string(head)
	switch {
	case strings.HasPrefix(s, SIG_JPG):
		return FormatJPEG
	case strings.HasPrefix(s, SIG_PNG):
		return FormatPNG
	case strings.HasPrefix(s, SIG_GIF):
		return FormatGIF
	case strings.HasPrefix(s, "II*\x00"), strings.HasPrefix(s, "MM\x00*"):
		return FormatTIFF
	case strings.HasPrefix(s, SIG_BMP):
		return FormatBMP
	case len(s) >= 12 && s[0:4] == SIG_RIFF && s[8:12] == "WEBP":
		return FormatWEBP
	}
	return ""
}
