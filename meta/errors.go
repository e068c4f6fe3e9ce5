package meta

import (
	"errors"
	"fmt"
)

var (
	ErrMissingGroup = errors.New("missing required group")
	ErrMissingKey   = errors.New("missing required key")
)

// ConfigError the configuration document is unreadable or incomplete
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	if e.Path == "" {
		return "config: " + e.Err.Error()
	}
	return fmt.Sprintf("config %s: %s", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// SourceReadError the original image can not be reopened
type SourceReadError struct {
	Path string
	Err  error
}

func (e *SourceReadError) Error() string {
	return fmt.Sprintf("read source %s: %s", e.Path, e.Err)
}

func (e *SourceReadError) Unwrap() error { return e.Err }

// WriteError the sidecar document can not be written
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write sidecar %s: %s", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// EmbedError the output image can not be saved with metadata,
// the sidecar was already written when this is returned
type EmbedError struct {
	Path string
	Err  error
}

func (e *EmbedError) Error() string {
	return fmt.Sprintf("embed metadata %s: %s", e.Path, e.Err)
}

func (e *EmbedError) Unwrap() error { return e.Err }
