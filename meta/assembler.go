// Package meta assembles the metadata record of processed images and
// writes it to sidecar documents and into the images themselves.
package meta

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/go-imsto/imresize/hash"
	"github.com/go-imsto/imresize/image"
)

// TimeLayout of processing.timestamp
const TimeLayout = time.RFC3339

// Option ...
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock replaces time.Now for the processing timestamp
func WithClock(fn func() time.Time) Option {
	return func(o *options) {
		if fn != nil {
			o.now = fn
		}
	}
}

// Base holds the immutable part of the record shared by a whole run
type Base struct {
	rec    *Record
	format string
}

type document struct {
	Project    Group `yaml:"project"`
	Parameters Group `yaml:"parameters"`
	Contact    Group `yaml:"contact"`
}

// required scalars are read as nodes to keep their literal text, eg: 1.0
type requiredKeys struct {
	Project struct {
		Version yaml.Node `yaml:"version"`
	} `yaml:"project"`
	Parameters struct {
		Format yaml.Node `yaml:"format"`
	} `yaml:"parameters"`
}

// Load reads the configuration document from name
func Load(name string, opts ...Option) (*Base, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, &ConfigError{Path: name, Err: err}
	}
	b, err := New(data, opts...)
	if err != nil {
		if ce, ok := err.(*ConfigError); ok {
			ce.Path = name
		}
		return nil, err
	}
	logger().Debugw("config loaded", "path", name, "version", b.Version())
	return b, nil
}

// New parses the configuration document and captures the processing timestamp
func New(data []byte, opts ...Option) (*Base, error) {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &ConfigError{Err: err}
	}
	for name, g := range map[string]Group{
		"project":    doc.Project,
		"parameters": doc.Parameters,
		"contact":    doc.Contact,
	} {
		if g == nil {
			return nil, &ConfigError{Err: fmt.Errorf("%w: %s", ErrMissingGroup, name)}
		}
	}

	var req requiredKeys
	if err := yaml.Unmarshal(data, &req); err != nil {
		return nil, &ConfigError{Err: err}
	}
	version, err := scalar(&req.Project.Version, "project.version")
	if err != nil {
		return nil, err
	}
	format, err := scalar(&req.Parameters.Format, "parameters.format")
	if err != nil {
		return nil, err
	}

	return &Base{
		rec: &Record{
			Project:    doc.Project,
			Parameters: doc.Parameters,
			Contact:    doc.Contact,
			Processing: Processing{
				Timestamp:       o.now().Format(TimeLayout),
				SoftwareVersion: version,
			},
		},
		format: format,
	}, nil
}

func scalar(n *yaml.Node, key string) (string, error) {
	if n.Kind != yaml.ScalarNode || n.Value == "" || n.Tag == "!!null" {
		return "", &ConfigError{Err: fmt.Errorf("%w: %s", ErrMissingKey, key)}
	}
	return n.Value, nil
}

// Version ...
func (b *Base) Version() string {
	return b.rec.Processing.SoftwareVersion
}

// Format is the configured output format recorded for processed images
func (b *Base) Format() string {
	return b.format
}

// Record returns a copy of the base record, without image
func (b *Base) Record() *Record {
	return b.rec.clone()
}

// Attach derives the record of one file, originalPath is reopened to read
// its intrinsic dimensions and format
func (b *Base) Attach(originalPath string, processed *image.Attr) (*Record, error) {
	if processed == nil {
		return nil, fmt.Errorf("attach %s: nil processed image", originalPath)
	}
	ia, err := image.Stat(originalPath)
	if err != nil {
		return nil, &SourceReadError{Path: originalPath, Err: err}
	}
	sum, err := hash.SumFile(originalPath)
	if err != nil {
		return nil, &SourceReadError{Path: originalPath, Err: err}
	}

	r := b.rec.clone()
	r.Image = &Image{
		Original: Original{
			Path:       originalPath,
			Dimensions: ia.Dimensions(),
			Format:     ia.Format,
			Size:       int64(ia.Size),
			Checksum:   sum,
		},
		Processed: Processed{
			Dimensions: processed.Dimensions(),
			Format:     b.format,
		},
	}
	return r, nil
}
