package image

import (
	"errors"
	"fmt"
)

var (
	ErrorFormat = errors.New("Invalid or unsupported Image Format")
	ErrEmpty    = errors.New("empty image file")
	ErrWidth    = errors.New("target width must be positive")
)

// DecodeError source can not be read as an image
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %s", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// EncodeError destination can not be written
type EncodeError struct {
	Path string
	Err  error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("encode %s: %s", e.Path, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }
