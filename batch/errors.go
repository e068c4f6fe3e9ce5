package batch

import (
	"errors"
	"fmt"
)

var (
	ErrNoBase    = errors.New("nil metadata base")
	ErrNoWidth   = errors.New("target width must be positive")
	ErrSameDir   = errors.New("output directory is the input directory")
	ErrNotExists = errors.New("neither a file nor a directory")
)

// InvalidPathError the input path can not be processed at all
type InvalidPathError struct {
	Path string
	Err  error
}

func (e *InvalidPathError) Error() string {
	return fmt.Sprintf("invalid path %q: %s", e.Path, e.Err)
}

func (e *InvalidPathError) Unwrap() error { return e.Err }
