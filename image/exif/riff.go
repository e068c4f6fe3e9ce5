package exif

import (
	"bytes"
	"encoding/binary"
)

const chunkWebpEXIF = "EXIF"

// findWebpExif returns the payload of the first EXIF chunk of a WEBP file
func findWebpExif(data []byte) ([]byte, error) {
	if len(data) < 12 || !bytes.Equal(data[8:12], []byte("WEBP")) {
		return nil, ErrFormat
	}
	pos := 12
	for pos+8 <= len(data) {
		typ := string(data[pos : pos+4])
		n := int(binary.LittleEndian.Uint32(data[pos+4:]))
		end := pos + 8 + n
		if end > len(data) {
			return nil, ErrFormat
		}
		if typ == chunkWebpEXIF {
			return data[pos+8 : end], nil
		}
		pos = end + n&1 // chunks are padded to even size
	}
	return nil, ErrNotFound
}
